// Package groq is a client for the Groq chat-completions API.
//
// Design goals:
//   - Conversation-first: a Client owns the message history and a one-shot
//     pending buffer; both are merged into each outgoing request.
//   - Explicit outcomes: Create returns an Outcome that is either a single
//     Response or the ordered chunks of a streamed completion.
//   - Stable errors: remote failures surface as *APIError, malformed payloads
//     as *DecodeError, and network failures as wrapped transport errors, so
//     callers can branch on the failure kind.
//
// A Client is not safe for concurrent Create calls; serialize calls per
// instance or give each conversation its own Client. The underlying HTTP
// connection pool is shared safely across instances.
package groq
