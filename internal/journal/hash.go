package journal

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainSession is the domain prefix for session identity hashing.
// The version suffix enables future algorithm migration.
const DomainSession = "almanac/session/v1"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SessionID computes the content-addressed ID for a resolution session.
// The ID covers the inputs only (chronology, strictness, ordered
// ordinal/value pairs), so the same request maps to the same session
// regardless of when it is submitted. Rule names are display metadata and
// are excluded; the ordinal is the durable identity.
func SessionID(chronology, strictness string, fields []FieldEntry) (string, error) {
	pairs := make([]any, len(fields))
	for i, f := range fields {
		pairs[i] = map[string]any{
			"ordinal": f.Ordinal,
			"value":   f.Value,
		}
	}

	obj := map[string]any{
		"chronology": chronology,
		"strictness": strictness,
		"fields":     pairs,
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("SessionID: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainSession, canonical), nil
}

// MustSessionID is like SessionID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustSessionID(chronology, strictness string, fields []FieldEntry) string {
	id, err := SessionID(chronology, strictness, fields)
	if err != nil {
		panic(err)
	}
	return id
}
