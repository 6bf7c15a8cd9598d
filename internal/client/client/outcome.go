package client

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// OutcomeKind tags the result of a request.
type OutcomeKind int

const (
	// OutcomeSuccess means the backend answered with anything but 401.
	// The status may still be an application error.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeAuthRequired means the credential was missing or rejected;
	// the session is cleared and navigation to sign-in was issued.
	OutcomeAuthRequired
	// OutcomeTransportError means no usable response was obtained.
	OutcomeTransportError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeAuthRequired:
		return "auth_required"
	case OutcomeTransportError:
		return "transport_error"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome is what a request produced. Response is set only for
// OutcomeSuccess, Err only for OutcomeTransportError.
type Outcome struct {
	Kind     OutcomeKind
	Response *Response
	Err      error
}

// Result converts the outcome to Go error style. Auth-required outcomes
// yield ErrAuthRequired; transport failures wrap ErrTransport.
func (o Outcome) Result() (*Response, error) {
	switch o.Kind {
	case OutcomeSuccess:
		return o.Response, nil
	case OutcomeAuthRequired:
		return nil, ErrAuthRequired
	default:
		return nil, o.Err
	}
}

func authRequired() Outcome {
	return Outcome{Kind: OutcomeAuthRequired}
}

func transportFailure(err error) Outcome {
	return Outcome{Kind: OutcomeTransportError, Err: fmt.Errorf("%w: %w", ErrTransport, err)}
}

// Response is a fully read backend response, unchanged.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// DecodeJSON unmarshals the body into v. A malformed body is a transport
// failure.
func (r *Response) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: malformed response body: %w", ErrTransport, err)
	}
	return nil
}

// Err returns nil for 2xx and an *APIError carrying the server's detail
// message otherwise. fallback is used when the server sent no message.
func (r *Response) Err(fallback string) error {
	if r.OK() {
		return nil
	}
	return newAPIError(r.StatusCode, r.Body, fallback)
}
