// Package typecast is the high-level entry point for turning noisy model
// output into typed Go values. It composes the two core stages: payload
// extraction, which locates and cleans a JSON or XML document buried in
// surrounding prose, and structural conversion, which checks the parsed
// document against the reflected shape of a target type and builds an
// instance of it.
//
// The common path is a single call:
//
//	type Review struct {
//	    ProductName string `json:"product_name" typecast:"required"`
//	    Rating      int    `json:"rating"`
//	    Summary     *string `json:"summary"`
//	}
//
//	review, err := typecast.Extract[Review](modelOutput)
//
// Extraction is forgiving: a fixed cascade of fallback tactics handles
// fenced code blocks, payloads embedded mid-sentence, and common syntax
// damage. Conversion is not: by default every scalar must match its
// declared kind exactly, and failures carry the path to the offending
// value. [WithFlexibleMode] relaxes scalar matching for sources that quote
// their numbers; [WithStrategy] switches the payload grammar to XML.
//
// The two failure classes stay distinguishable with errors.As:
// *extract.ExtractionError means no payload was found,
// *convert.ConversionError means a payload was found but did not fit.
package typecast
