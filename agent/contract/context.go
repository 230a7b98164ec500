package contract

import "strings"

// Context keys the orchestration core understands. Callers may attach
// arbitrary extra hints; they are serialized verbatim into the model context.
const (
	CtxSessionID   = "session_id"
	CtxClientID    = "client_id"
	CtxClientEmail = "client_email"
	CtxChatHistory = "chat_history"
)

// DefaultSessionID is used when the caller supplied no session id.
const DefaultSessionID = "default"

// Context is the transient per-request key/value map assembled by the caller
// and threaded through router and agent. It is never persisted; only the
// side effects of the tool calls it feeds are.
type Context map[string]any

// SessionID returns the session key, falling back to DefaultSessionID.
func (c Context) SessionID() string {
	if c == nil {
		return DefaultSessionID
	}
	if v, ok := c[CtxSessionID].(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return DefaultSessionID
}

// ClientID returns the pre-authenticated customer id, when present.
func (c Context) ClientID() (int64, bool) {
	if c == nil {
		return 0, false
	}
	switch v := c[CtxClientID].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), v == float64(int64(v))
	}
	return 0, false
}

// ClientEmail returns the caller-supplied customer email, when present.
func (c Context) ClientEmail() string {
	if c == nil {
		return ""
	}
	if v, ok := c[CtxClientEmail].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// History returns the trailing conversation window attached by the
// orchestrator, or nil.
func (c Context) History() []ConversationTurn {
	if c == nil {
		return nil
	}
	if v, ok := c[CtxChatHistory].([]ConversationTurn); ok {
		return v
	}
	return nil
}

// WithHistory returns a shallow copy of the context carrying window as the
// trailing history. The receiver is left untouched.
func (c Context) WithHistory(window []ConversationTurn) Context {
	out := make(Context, len(c)+1)
	for k, v := range c {
		out[k] = v
	}
	out[CtxChatHistory] = window
	return out
}

// WithoutHistory returns a copy suitable for verbatim serialization into a
// prompt without duplicating the turns already rendered as messages.
func (c Context) WithoutHistory() Context {
	out := make(Context, len(c))
	for k, v := range c {
		if k == CtxChatHistory {
			continue
		}
		out[k] = v
	}
	return out
}
