package groq

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// doneSentinel is the literal end-of-stream marker. It is checked before any
// chunk decoding: the sentinel is not valid chunk JSON.
var doneSentinel = []byte("[DONE]")

// collectChunks consumes the event stream until the [DONE] sentinel or a
// clean EOF and returns every decoded chunk in arrival order.
//
// Accumulation is all-or-nothing: a read error or a malformed event discards
// everything collected so far and fails the call. The response body is closed
// on every exit path.
func (c *Client) collectChunks(resp *http.Response) ([]StreamChunk, error) {
	defer resp.Body.Close()

	dec := newSSEDecoder(resp.Body)
	var chunks []StreamChunk
	for {
		data, err := dec.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				// The server closed the stream without sending [DONE];
				// treat it as normal termination.
				break
			}
			return nil, fmt.Errorf("groq: read event stream: %w", err)
		}

		data = bytes.TrimSpace(data)
		if bytes.Equal(data, doneSentinel) {
			break
		}

		// Mid-stream application errors arrive as data events too.
		var env errorEnvelope
		if err := json.Unmarshal(data, &env); err == nil && env.Error != nil {
			return nil, &APIError{
				StatusCode: resp.StatusCode,
				Type:       env.Error.Type,
				Code:       stringify(env.Error.Code),
				Message:    env.Error.Message,
				Raw:        append([]byte(nil), data...),
			}
		}

		var chunk StreamChunk
		if err := json.Unmarshal(data, &chunk); err != nil {
			return nil, &DecodeError{Raw: append([]byte(nil), data...), Cause: err}
		}
		chunks = append(chunks, chunk)
	}

	c.tr.Logger.Debug("groq stream done", "chunks", len(chunks))
	return chunks, nil
}
