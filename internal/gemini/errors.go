package gemini

import "fmt"

// TransportError reports a failure to complete a transaction: name
// resolution, connect, TLS handshake or stream I/O.
type TransportError struct {
	Op   string
	Host string
	Err  error
}

func (e *TransportError) Error() string {
	if e.Host == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Host, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError reports a response that does not follow the wire format.
type ProtocolError struct {
	Reason string
}

func (e *ProtocolError) Error() string {
	return "malformed response: " + e.Reason
}
