// Package services defines the shared error taxonomy for components that talk
// to the remote analysis service or act on its results.
//
// Errors are tagged with sentinel markers so callers can classify failures
// with errors.Is without parsing messages: validation failures never reach the
// network, transport and protocol failures produce generic user messages, and
// service failures surface the server-supplied message verbatim.
package services
