package groq

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

func chunkJSON(content, finish string) string {
	return `{"id":"s1","object":"chat.completion.chunk","created":1,"model":"m",` +
		`"choices":[{"index":0,"delta":{"content":"` + content + `"},"finish_reason":"` + finish + `"}]}`
}

func sseEvents(events ...string) string {
	var b strings.Builder
	for _, ev := range events {
		b.WriteString("data: ")
		b.WriteString(ev)
		b.WriteString("\n\n")
	}
	return b.String()
}

func streamResponse(body io.Reader, r *http.Request) *http.Response {
	h := make(http.Header)
	h.Set("Content-Type", "text/event-stream")
	return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(body), Header: h, Request: r}
}

func TestCreate_StreamCollectsChunks(t *testing.T) {
	c := newTestClient(t, "k", func(r *http.Request) (*http.Response, error) {
		if got := r.Header.Get("Accept"); got != "text/event-stream" {
			t.Fatalf("Accept=%q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"stream":true`) {
			t.Fatalf("request body not flagged for streaming: %s", body)
		}
		payload := sseEvents(chunkJSON("Hello", ""), chunkJSON(" world", "stop"), "[DONE]")
		return streamResponse(strings.NewReader(payload), r), nil
	})
	c.AddMessage(User("hi"))

	out, err := c.Create(context.Background(), NewRequest("m").WithStream(true))
	if err != nil {
		t.Fatalf("Create() err=%v", err)
	}
	if out.Kind() != OutcomeStream {
		t.Fatalf("Kind=%v", out.Kind())
	}
	chunks, ok := out.Chunks()
	if !ok || len(chunks) != 2 {
		t.Fatalf("chunks=%d ok=%v", len(chunks), ok)
	}
	if got := out.Text(); got != "Hello world" {
		t.Fatalf("Text=%q", got)
	}
	if chunks[1].Choices[0].FinishReason != FinishReasonStop {
		t.Fatalf("finish=%q", chunks[1].Choices[0].FinishReason)
	}
}

// Events after the sentinel are never read: a malformed trailing event must
// not fail the call.
func TestCreate_StreamSentinelStopsReading(t *testing.T) {
	c := newTestClient(t, "k", func(r *http.Request) (*http.Response, error) {
		payload := sseEvents(chunkJSON("a", ""), chunkJSON("b", ""), "[DONE]", `{malformed`)
		return streamResponse(strings.NewReader(payload), r), nil
	})
	c.AddMessage(User("hi"))

	out, err := c.Create(context.Background(), NewRequest("m").WithStream(true))
	if err != nil {
		t.Fatalf("Create() err=%v", err)
	}
	if chunks, _ := out.Chunks(); len(chunks) != 2 {
		t.Fatalf("chunks=%d", len(chunks))
	}
}

// failingBody yields its buffered bytes, then a read error instead of EOF.
type failingBody struct {
	r   io.Reader
	err error
}

func (f *failingBody) Read(p []byte) (int, error) {
	n, err := f.r.Read(p)
	if errors.Is(err, io.EOF) {
		return n, f.err
	}
	return n, err
}

func TestCreate_StreamAllOrNothing(t *testing.T) {
	readErr := errors.New("connection reset")
	c := newTestClient(t, "k", func(r *http.Request) (*http.Response, error) {
		payload := sseEvents(chunkJSON("a", ""), chunkJSON("b", ""))
		return streamResponse(&failingBody{r: strings.NewReader(payload), err: readErr}, r), nil
	})
	c.AddMessage(User("hi"))

	out, err := c.Create(context.Background(), NewRequest("m").WithStream(true))
	if err == nil {
		t.Fatalf("expected failure, got %d chunks", len(out.chunks))
	}
	if !errors.Is(err, readErr) {
		t.Fatalf("stream cause lost: %v", err)
	}
	// No partial result escapes.
	if chunks, ok := out.Chunks(); ok || chunks != nil {
		t.Fatalf("partial chunks leaked: %v", chunks)
	}
}

func TestCreate_StreamMalformedChunk(t *testing.T) {
	c := newTestClient(t, "k", func(r *http.Request) (*http.Response, error) {
		payload := sseEvents(chunkJSON("a", ""), `{bad json`, chunkJSON("c", ""))
		return streamResponse(strings.NewReader(payload), r), nil
	})
	c.AddMessage(User("hi"))

	_, err := c.Create(context.Background(), NewRequest("m").WithStream(true))
	de, ok := AsDecodeError(err)
	if !ok {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if string(de.Raw) != `{bad json` {
		t.Fatalf("Raw=%q", de.Raw)
	}
}

func TestCreate_StreamEOFWithoutSentinel(t *testing.T) {
	c := newTestClient(t, "k", func(r *http.Request) (*http.Response, error) {
		return streamResponse(strings.NewReader(sseEvents(chunkJSON("only", "stop"))), r), nil
	})
	c.AddMessage(User("hi"))

	out, err := c.Create(context.Background(), NewRequest("m").WithStream(true))
	if err != nil {
		t.Fatalf("Create() err=%v", err)
	}
	if chunks, _ := out.Chunks(); len(chunks) != 1 {
		t.Fatalf("chunks=%d", len(chunks))
	}
}

func TestCreate_StreamErrorEvent(t *testing.T) {
	c := newTestClient(t, "k", func(r *http.Request) (*http.Response, error) {
		payload := sseEvents(chunkJSON("a", ""), `{"error":{"message":"boom","type":"server_error"}}`)
		return streamResponse(strings.NewReader(payload), r), nil
	})
	c.AddMessage(User("hi"))

	_, err := c.Create(context.Background(), NewRequest("m").WithStream(true))
	ae, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if ae.Message != "boom" || ae.Type != "server_error" {
		t.Fatalf("APIError=%+v", ae)
	}
}

func TestCreate_StreamHTTPError(t *testing.T) {
	c := newTestClient(t, "", func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized,
			`{"error":{"message":"invalid api key","type":"invalid_request_error","code":"invalid_api_key"}}`, r), nil
	})
	c.AddTmpMessage(User("hi"))

	_, err := c.Create(context.Background(), NewRequest("m").WithStream(true))
	if !IsAuth(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if _, ok := c.PendingMessages(); ok {
		t.Fatalf("pending should be drained despite the failure")
	}
}

func TestCreateStreamCompletion_Precondition(t *testing.T) {
	c := newTestClient(t, "k", func(r *http.Request) (*http.Response, error) {
		t.Fatalf("no request should be sent")
		return nil, nil
	})

	_, err := c.createStreamCompletion(context.Background(), NewRequest("m").Build([]Message{User("hi")}))
	if !errors.Is(err, ErrNotStream) {
		t.Fatalf("err=%v", err)
	}
}
