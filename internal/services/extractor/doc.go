// Package extractor implements the HTTP client for the remote viral-clip
// analysis service.
//
// The service contract is JSON-first: every response body is checked for a
// JSON content type before parsing, and an unstructured body on an otherwise
// successful path is classified as a protocol failure rather than parsed.
// Structured error payloads surface their message verbatim; everything else
// maps onto the shared services error taxonomy.
package extractor
