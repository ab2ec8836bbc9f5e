package journal

// EngineVersion identifies the resolution engine that produced a session.
// Stored on every session row so replay can surface version drift when a
// stored outcome no longer matches.
const EngineVersion = "0.1.0"
