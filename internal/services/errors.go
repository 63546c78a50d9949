package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks input rejected before any network call.
	ErrValidation = errors.New("validation error")
	// ErrTransport marks network-level failures (unreachable host, timeout).
	ErrTransport = errors.New("transport error")
	// ErrProtocol marks responses that are not the structured payload the
	// service contract promises (non-JSON body, malformed payload).
	ErrProtocol = errors.New("protocol error")
	// ErrService marks structured error payloads returned by the service; the
	// embedded message is safe to surface verbatim.
	ErrService = errors.New("service error")
	// ErrExport marks clipboard or media-download failures. These never affect
	// session or clip store state.
	ErrExport = errors.New("export error")
	// ErrSessionBusy marks a submit attempted while another is in flight.
	ErrSessionBusy = errors.New("analysis already in progress")
	// ErrNotFound marks lookups for clips that are not in the current result set.
	ErrNotFound = errors.New("not found")
)

// RemoteError carries a human-readable message supplied by the analysis
// service. It matches ErrService under errors.Is.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string { return e.Message }

func (e *RemoteError) Is(target error) bool { return target == ErrService }

// Remote wraps a server-supplied message with component context.
func Remote(component, operation, message string) error {
	if strings.TrimSpace(message) == "" {
		message = "the analysis service reported a failure"
	}
	return Wrap(nil, component, operation, "", &RemoteError{Message: message})
}

// Validation builds a pre-network rejection whose message is shown to the
// user as-is.
func Validation(message string) error {
	return Wrap(ErrValidation, "", "", message, nil)
}

// Wrap builds an error that includes component context while tagging it with
// the provided marker for later classification. The marker should be one of
// the exported sentinel errors above; a nil marker is used when err already
// carries its own classification.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		if err != nil {
			return fmt.Errorf("%s: %w", detail, err)
		}
		marker = ErrTransport
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// UserMessage reduces an error to the text shown to the user. Service errors
// surface their message verbatim; transport and protocol failures get a
// generic line per failure class so internals do not leak into the UI.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote.Message
	}
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrSessionBusy), errors.Is(err, ErrNotFound), errors.Is(err, ErrExport):
		return trimMarkers(err.Error())
	case errors.Is(err, ErrProtocol):
		return "The analysis service returned an unexpected response. Please try again."
	case errors.Is(err, ErrTransport):
		return "Could not reach the analysis service. Check your connection and try again."
	default:
		return trimMarkers(err.Error())
	}
}

func trimMarkers(msg string) string {
	for _, marker := range []error{ErrValidation, ErrSessionBusy, ErrNotFound, ErrExport} {
		prefix := marker.Error() + ": "
		if strings.HasPrefix(msg, prefix) {
			return strings.TrimPrefix(msg, prefix)
		}
	}
	return msg
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
