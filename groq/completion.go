package groq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lgc202/groqkit/groq/internal/transport"
)

// OutcomeKind discriminates the two completion shapes.
type OutcomeKind int

const (
	// OutcomeNonStream carries a single complete Response.
	OutcomeNonStream OutcomeKind = iota
	// OutcomeStream carries the ordered chunks of a streamed completion.
	OutcomeStream
)

// Outcome is the unified result of a Create call: exactly one of a complete
// Response or an ordered StreamChunk sequence, selected by Kind.
type Outcome struct {
	kind     OutcomeKind
	response *Response
	chunks   []StreamChunk
}

func (o Outcome) Kind() OutcomeKind { return o.kind }

// Response returns the complete response for OutcomeNonStream.
func (o Outcome) Response() (*Response, bool) {
	return o.response, o.kind == OutcomeNonStream && o.response != nil
}

// Chunks returns the streamed chunks, in arrival order, for OutcomeStream.
func (o Outcome) Chunks() ([]StreamChunk, bool) {
	if o.kind != OutcomeStream {
		return nil, false
	}
	return o.chunks, true
}

// Text joins the completion text of the first choice: the full message for a
// non-streamed outcome, the concatenated deltas for a streamed one.
func (o Outcome) Text() string {
	switch o.kind {
	case OutcomeNonStream:
		if o.response == nil {
			return ""
		}
		return o.response.FirstText()
	case OutcomeStream:
		var b strings.Builder
		for _, chunk := range o.chunks {
			for _, choice := range chunk.Choices {
				if choice.Index == 0 {
					b.WriteString(choice.Delta.Content)
				}
			}
		}
		return b.String()
	default:
		return ""
	}
}

// Create runs one completion: it merges the pending buffer ahead of the
// history into the builder's request (draining the buffer before any I/O),
// then dispatches on the request's stream flag.
func (c *Client) Create(ctx context.Context, b *RequestBuilder) (Outcome, error) {
	req := b.Build(c.takeRequestMessages())
	if len(req.Messages) == 0 {
		return Outcome{}, ErrNoMessages
	}

	if req.IsStream() {
		return c.createStreamCompletion(ctx, req)
	}
	return c.createCompletion(ctx, req)
}

func (c *Client) createCompletion(ctx context.Context, req Request) (Outcome, error) {
	raw, err := c.tr.DoJSON(ctx, http.MethodPost, completionsPath, c.headers("application/json"), req)
	if err != nil {
		return Outcome{}, c.mapTransportError(err)
	}

	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return Outcome{}, &DecodeError{Raw: raw, Cause: err}
	}
	return Outcome{kind: OutcomeNonStream, response: &resp}, nil
}

func (c *Client) createStreamCompletion(ctx context.Context, req Request) (Outcome, error) {
	if !req.IsStream() {
		return Outcome{}, ErrNotStream
	}

	resp, err := c.tr.DoStream(ctx, http.MethodPost, completionsPath, c.headers("text/event-stream"), req)
	if err != nil {
		return Outcome{}, c.mapTransportError(err)
	}

	chunks, err := c.collectChunks(resp)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{kind: OutcomeStream, chunks: chunks}, nil
}

// mapTransportError classifies a failed exchange: a non-200 status becomes an
// *APIError built from the error envelope (the observed status wins over any
// code in the body); everything else is a wrapped transport failure.
func (c *Client) mapTransportError(err error) error {
	var se *transport.StatusError
	if errors.As(err, &se) {
		return decodeAPIError(se.StatusCode, se.Header, se.Body)
	}
	return fmt.Errorf("groq: completion request: %w", err)
}
