// Package tree defines the untyped value tree that sits between payload
// extraction and schema-driven conversion. A tree is produced fresh from a
// single JSON or XML payload and is owned by the call that created it.
//
// Unlike a plain map[string]any, object nodes preserve key order as it
// appeared in the source document, and numbers keep their literal form so
// the integer/floating distinction survives until conversion time.
package tree
