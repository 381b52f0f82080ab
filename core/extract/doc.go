// Package extract locates a well-formed JSON or XML payload inside
// arbitrarily messy surrounding text, typically a raw LLM reply. A fixed,
// ordered sequence of tactics runs until one produces text that parses
// under the target grammar; the first success wins and later tactics are
// never consulted. Extraction is a separate fault boundary from schema
// conversion: a payload that parses but does not match a schema is not an
// extraction failure.
//
// JSON tactics, in order: direct parse, fenced code block, balanced object
// span, character-filter plus repair, and (opt-in, for top-level list
// targets) balanced array span. XML replaces span scanning with tag
// matching and has no array tactic.
package extract
