// Package testutil provides deterministic substitutes for the identity
// generators tests depend on.
package testutil

import (
	"fmt"
	"sync"
)

// FixedTokens issues a predetermined sequence of session tokens.
//
// Tests substitute it for the UUIDv7 generator so journal writes produce
// byte-identical rows run after run. Unlike the production generator it is
// finite: requesting more tokens than were loaded panics, so a test that
// writes more sessions than it expects fails fast.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type FixedTokens struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedTokens creates a generator that returns the given tokens in order.
func NewFixedTokens(tokens ...string) *FixedTokens {
	return &FixedTokens{tokens: tokens}
}

// SequentialTokens creates a generator of n zero-padded tokens:
// "token-0001", "token-0002", and so on.
func SequentialTokens(n int) *FixedTokens {
	tokens := make([]string, n)
	for i := range tokens {
		tokens[i] = fmt.Sprintf("token-%04d", i+1)
	}
	return &FixedTokens{tokens: tokens}
}

// Generate returns the next token in sequence.
//
// Implements journal.TokenGenerator. Panics when the sequence is exhausted.
func (g *FixedTokens) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.tokens) {
		panic(fmt.Sprintf("testutil.FixedTokens: all %d tokens issued", len(g.tokens)))
	}
	token := g.tokens[g.idx]
	g.idx++
	return token
}

// Remaining returns how many tokens are left to issue.
func (g *FixedTokens) Remaining() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.tokens) - g.idx
}

// Issued returns how many tokens have been handed out.
func (g *FixedTokens) Issued() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.idx
}
