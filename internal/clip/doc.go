// Package clip defines the typed clip model and the boundary coercion from
// the analysis service's wire payload.
//
// Wire payloads are tolerant (IDs may arrive as numbers or strings, optional
// fields may be absent); Coerce converts them into immutable Clip values and
// drops records that fail structural requirements instead of letting
// malformed data propagate. Identifier comparison is normalizing: two IDs are
// equal when their numeric values match or their trimmed text matches.
package clip
