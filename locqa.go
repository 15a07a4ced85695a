// Package locqa provides a local, CLI-based question answering tool.
// It answers natural language questions against two kinds of corpora:
// a vectorized knowledge base built from cleaned HTML documentation,
// and a raw source code tree. A bounded agentic loop decides per query
// whether retrieval is needed, gathers the minimum sufficient context,
// and self-assesses answers until it is confident or out of iterations.
//
// This package contains domain types, interfaces, and dependency-free
// logic following Ben Johnson's Standard Package Layout. Implementations
// live in subdirectories named after their primary dependency
// (e.g., sqlite/, gemini/, ollama/).
package locqa
