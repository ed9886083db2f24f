package groq

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrNotStream reports that the streaming path was entered with a request not
// flagged for streaming. It signals a programming error at the call site.
var ErrNotStream = errors.New("groq: request is not flagged for streaming")

// ErrNoMessages reports that a request was built with an empty message list.
var ErrNoMessages = errors.New("groq: at least one message is required")

// APIError is a structured error reported by the service on a non-200
// completion. StatusCode is the transport-observed HTTP status and is
// authoritative: it overwrites any status embedded in the response body.
type APIError struct {
	StatusCode int

	// Type and Code are the service's error classification.
	Type string
	Code string

	// Message is the human-readable error message.
	Message string

	// RequestID is the request trace id, when the service returned one.
	RequestID string

	// RetryAfter is the wait hinted by the Retry-After header. The client
	// never retries; this is data for the caller.
	RetryAfter time.Duration

	// Raw is the original response body.
	Raw []byte
}

func (e *APIError) Error() string {
	if e == nil {
		return "<nil>"
	}

	var b strings.Builder
	b.WriteString("groq: ")
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, "http %d", e.StatusCode)
	} else {
		b.WriteString("http error")
	}

	msg := strings.TrimSpace(e.Message)
	if msg == "" && e.StatusCode != 0 {
		msg = http.StatusText(e.StatusCode)
	}
	if msg != "" {
		b.WriteString(": ")
		b.WriteString(msg)
	}

	if code := strings.TrimSpace(e.Code); code != "" {
		b.WriteString(" (")
		b.WriteString(code)
		b.WriteString(")")
	}
	if id := strings.TrimSpace(e.RequestID); id != "" {
		b.WriteString(" request_id=")
		b.WriteString(id)
	}

	return b.String()
}

func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsRateLimit reports whether err is a rate-limit rejection.
func IsRateLimit(err error) bool {
	ae, ok := AsAPIError(err)
	if !ok {
		return false
	}
	if ae.StatusCode == http.StatusTooManyRequests {
		return true
	}
	code := strings.ToLower(strings.TrimSpace(ae.Code))
	return code == "rate_limit" || code == "rate_limit_exceeded"
}

// IsAuth reports whether err is an authentication or authorization failure.
func IsAuth(err error) bool {
	ae, ok := AsAPIError(err)
	if !ok {
		return false
	}
	return ae.StatusCode == http.StatusUnauthorized || ae.StatusCode == http.StatusForbidden
}

// IsTemporary reports whether err looks transient. Callers decide whether to
// retry; the client itself never does.
func IsTemporary(err error) bool {
	ae, ok := AsAPIError(err)
	if !ok {
		return false
	}
	switch ae.StatusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// DecodeError reports a payload that could not be decoded into the expected
// shape: a malformed response body, error envelope, or stream event. It is a
// local protocol failure, distinct from an APIError.
type DecodeError struct {
	Raw   []byte
	Cause error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("groq: decode response: %v", e.Cause)
	}
	return "groq: decode response"
}

func (e *DecodeError) Unwrap() error { return e.Cause }

func AsDecodeError(err error) (*DecodeError, bool) {
	var de *DecodeError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// errorEnvelope is the service's error body shape.
type errorEnvelope struct {
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error"`
}

// decodeAPIError turns a non-200 body into an *APIError carrying the observed
// status, or a *DecodeError when the body is not a recognizable envelope.
func decodeAPIError(status int, header http.Header, body []byte) error {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &DecodeError{Raw: append([]byte(nil), body...), Cause: err}
	}
	if env.Error == nil {
		return &DecodeError{Raw: append([]byte(nil), body...), Cause: errors.New("missing error envelope")}
	}

	ae := &APIError{
		StatusCode: status,
		Type:       env.Error.Type,
		Code:       stringify(env.Error.Code),
		Message:    env.Error.Message,
		Raw:        append([]byte(nil), body...),
	}
	if header != nil {
		ae.RequestID = header.Get("X-Request-Id")
		ae.RetryAfter = parseRetryAfter(header.Get("Retry-After"))
	}
	return ae
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		b, _ := json.Marshal(x)
		return string(b)
	}
}

func parseRetryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil && secs > 0 {
		return time.Duration(secs * float64(time.Second))
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
