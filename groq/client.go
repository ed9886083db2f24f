package groq

import (
	"encoding/json"
	"hash/fnv"
	"io"
	"log/slog"
	"net/http"

	"github.com/lgc202/groqkit/groq/internal/transport"
)

const (
	defaultBaseURL  = "https://api.groq.com/openai"
	completionsPath = "/v1/chat/completions"

	// historyFloor is the capacity the history slice shrinks to on clear.
	historyFloor = 3
)

// Client holds one conversation: the credential, the persistent message
// history, and a pending buffer of one-shot messages consumed by exactly one
// Create call. Mutators return the client for chaining.
type Client struct {
	apiKey  string
	history []Message
	pending []Message

	tr *transport.Client
}

type Option func(*Client) error

func New(apiKey string, opts ...Option) (*Client, error) {
	tr, err := transport.New(defaultBaseURL, nil)
	if err != nil {
		return nil, err
	}

	c := &Client{apiKey: apiKey, tr: tr}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func WithBaseURL(baseURL string) Option {
	return func(c *Client) error {
		tr, err := transport.New(baseURL, c.tr.HTTPClient)
		if err != nil {
			return err
		}
		tr.DefaultHeaders = c.tr.DefaultHeaders.Clone()
		tr.UserAgent = c.tr.UserAgent
		tr.Logger = c.tr.Logger
		c.tr = tr
		return nil
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		c.tr.HTTPClient = hc
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger != nil {
			c.tr.Logger = logger
		}
		return nil
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		c.tr.UserAgent = ua
		return nil
	}
}

func WithDefaultHeader(key, value string) Option {
	return func(c *Client) error {
		c.tr.DefaultHeaders.Add(key, value)
		return nil
	}
}

// AddMessage appends one message to the persistent history.
func (c *Client) AddMessage(msg Message) *Client {
	c.history = append(c.history, msg)
	return c
}

// AddMessages appends messages to the persistent history, order preserved.
func (c *Client) AddMessages(msgs []Message) *Client {
	c.history = append(c.history, msgs...)
	return c
}

// AddTmpMessage appends one message to the pending buffer; it is consumed by
// the next Create call, whether or not that call succeeds.
func (c *Client) AddTmpMessage(msg Message) *Client {
	c.pending = append(c.pending, msg)
	return c
}

// AddTmpMessages appends messages to the pending buffer.
func (c *Client) AddTmpMessages(msgs []Message) *Client {
	c.pending = append(c.pending, msgs...)
	return c
}

// ClearMessages empties the history and shrinks its reserved capacity back to
// a small floor, so a long conversation does not pin memory after a reset.
func (c *Client) ClearMessages() *Client {
	c.history = make([]Message, 0, historyFloor)
	return c
}

func (c *Client) clearTmpMessages() {
	c.pending = c.pending[:0]
}

// PendingMessages returns a copy of the pending buffer, or (nil, false) when
// it is empty. It never mutates client state.
func (c *Client) PendingMessages() ([]Message, bool) {
	if len(c.pending) == 0 {
		return nil, false
	}
	return cloneMessages(c.pending), true
}

// History returns a copy of the persistent history.
func (c *Client) History() []Message {
	return cloneMessages(c.history)
}

// requestMessages builds the message list for one outgoing request: pending
// messages first, then the history; an independent copy in both cases.
func (c *Client) requestMessages() []Message {
	if len(c.pending) == 0 {
		return cloneMessages(c.history)
	}
	out := make([]Message, 0, len(c.pending)+len(c.history))
	for _, m := range c.pending {
		out = append(out, m.Clone())
	}
	for _, m := range c.history {
		out = append(out, m.Clone())
	}
	return out
}

// takeRequestMessages drains the pending buffer as part of producing the
// request list. The drain happens before any I/O, so a failed request still
// consumes the one-shot messages.
func (c *Client) takeRequestMessages() []Message {
	all := c.requestMessages()
	c.clearTmpMessages()
	return all
}

// Hash is a structural fingerprint over the history and the credential. Two
// identically-built clients hash equal regardless of their transport state.
func (c *Client) Hash() uint64 {
	h := fnv.New64a()
	enc := json.NewEncoder(h)
	for _, m := range c.history {
		_ = enc.Encode(m)
	}
	_, _ = io.WriteString(h, c.apiKey)
	return h.Sum64()
}

func (c *Client) headers(accept string) http.Header {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	if accept != "" {
		h.Set("Accept", accept)
	}
	h.Set("Authorization", "Bearer "+c.apiKey)
	return h
}
