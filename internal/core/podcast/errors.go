package podcast

import "fmt"

// ConfigError means the credentials or speaker configuration are unusable.
// It is raised before any network activity and is not retryable.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "podcast config: " + e.Reason }

// ValidationError means the caller's input was rejected before a connection
// was opened, e.g. a script with no recognized dialogue lines.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "podcast request: " + e.Reason }

// ProtocolError carries an error frame returned by the remote service. Code
// and message are propagated verbatim; the failure is terminal for the
// invocation.
type ProtocolError struct {
	Code    uint32
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("podcast server error %d: %s", e.Code, e.Message)
}

// TransportError wraps a socket-level failure: dial, send, receive, or a
// bounded wait expiring.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return "podcast transport: " + e.Op + ": " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }
