// Package utils provides shared low-level helpers used throughout the
// typecast internals: generic pointer helpers and string utilities for
// safe log output.
//
// Key entry points: [Ptr] for converting values to pointers, [JSONToString]
// for log-safe JSON rendering, and [TruncateString] for bounding payload
// excerpts in log attributes.
package utils
