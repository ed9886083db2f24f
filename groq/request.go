package groq

import "encoding/json"

// Request is the completion request body. Field order mirrors the wire
// payload; fields without omitempty always serialize with their defaults.
type Request struct {
	LogitBias        json.RawMessage `json:"logit_bias,omitempty"`
	LogProbs         bool            `json:"logprobs"`
	FrequencyPenalty float64         `json:"frequency_penalty"`
	MaxTokens        *int            `json:"max_tokens,omitempty"`
	Messages         []Message       `json:"messages"`
	Model            string          `json:"model"`
	N                int             `json:"n"`
	PresencePenalty  float64         `json:"presence_penalty"`
	ResponseFormat   ResponseFormat  `json:"response_format"`
	Seed             *int            `json:"seed,omitempty"`

	// Stop is either a single string or a list of strings.
	Stop any `json:"stop,omitempty"`

	Stream      bool    `json:"stream"`
	Temperature float64 `json:"temperature"`

	// ToolChoice is either a mode string ("auto", "none", "required") or a
	// Tool selecting a specific function.
	ToolChoice any `json:"tool_choice,omitempty"`

	Tools       []Tool  `json:"tools,omitempty"`
	TopLogProbs *int    `json:"top_logprobs,omitempty"`
	TopP        float64 `json:"top_p"`
	User        string  `json:"user,omitempty"`
}

func (r Request) IsStream() bool { return r.Stream }

type ResponseFormat struct {
	Type string `json:"type"`
}

// RequestBuilder accumulates request parameters; every With* method returns
// the builder for chaining. Messages are injected by the client at send time,
// so a builder is a reusable template for one conversation.
type RequestBuilder struct {
	req Request
}

// NewRequest returns a builder with the API defaults: n=1, temperature=1,
// top_p=1, text response format, streaming off.
func NewRequest(model string) *RequestBuilder {
	return &RequestBuilder{req: Request{
		Model:          model,
		N:              1,
		ResponseFormat: ResponseFormat{Type: "text"},
		Temperature:    1,
		TopP:           1,
	}}
}

func (b *RequestBuilder) WithModel(model string) *RequestBuilder {
	b.req.Model = model
	return b
}

func (b *RequestBuilder) WithStream(on bool) *RequestBuilder {
	b.req.Stream = on
	return b
}

func (b *RequestBuilder) WithMaxTokens(n int) *RequestBuilder {
	b.req.MaxTokens = &n
	return b
}

func (b *RequestBuilder) WithTemperature(v float64) *RequestBuilder {
	b.req.Temperature = v
	return b
}

func (b *RequestBuilder) WithTopP(v float64) *RequestBuilder {
	b.req.TopP = v
	return b
}

func (b *RequestBuilder) WithN(n int) *RequestBuilder {
	b.req.N = n
	return b
}

func (b *RequestBuilder) WithSeed(seed int) *RequestBuilder {
	b.req.Seed = &seed
	return b
}

func (b *RequestBuilder) WithPresencePenalty(v float64) *RequestBuilder {
	b.req.PresencePenalty = v
	return b
}

func (b *RequestBuilder) WithFrequencyPenalty(v float64) *RequestBuilder {
	b.req.FrequencyPenalty = v
	return b
}

func (b *RequestBuilder) WithStop(token string) *RequestBuilder {
	b.req.Stop = token
	return b
}

func (b *RequestBuilder) WithStops(tokens []string) *RequestBuilder {
	b.req.Stop = append([]string(nil), tokens...)
	return b
}

func (b *RequestBuilder) WithLogProbs(on bool) *RequestBuilder {
	b.req.LogProbs = on
	return b
}

func (b *RequestBuilder) WithTopLogProbs(n int) *RequestBuilder {
	b.req.TopLogProbs = &n
	return b
}

func (b *RequestBuilder) WithLogitBias(bias json.RawMessage) *RequestBuilder {
	b.req.LogitBias = append(json.RawMessage(nil), bias...)
	return b
}

// WithJSONMode asks the model to emit a single JSON object.
func (b *RequestBuilder) WithJSONMode() *RequestBuilder {
	b.req.ResponseFormat = ResponseFormat{Type: "json_object"}
	return b
}

func (b *RequestBuilder) WithTools(tools ...Tool) *RequestBuilder {
	b.req.Tools = append([]Tool(nil), tools...)
	return b
}

func (b *RequestBuilder) WithToolChoice(mode string) *RequestBuilder {
	b.req.ToolChoice = mode
	return b
}

func (b *RequestBuilder) WithToolChoiceTool(tool Tool) *RequestBuilder {
	b.req.ToolChoice = tool
	return b
}

func (b *RequestBuilder) WithUser(user string) *RequestBuilder {
	b.req.User = user
	return b
}

func (b *RequestBuilder) IsStream() bool { return b.req.Stream }

// Build copies the template and injects the message list.
func (b *RequestBuilder) Build(messages []Message) Request {
	req := b.req
	req.Messages = messages
	if req.Tools != nil {
		req.Tools = append([]Tool(nil), req.Tools...)
	}
	return req
}
