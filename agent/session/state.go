package session

import (
	"time"

	contractx "github.com/dlimars/centralai/agent/contract"
)

// HistoryWindow is the number of trailing turns shown to the router and the
// agents. The persisted history is never truncated; only the view handed to
// the models is bounded. The window counts persisted turns only: the
// in-flight user message is carried separately and is not part of the five,
// so the models see it alongside — not inside — the window.
const HistoryWindow = 5

// State is a session's short-term conversational memory. It is owned by the
// Store: the orchestrator loads a copy, appends turns, and writes the whole
// structure back. Concurrent saves for one session id are last-write-wins.
type State struct {
	SessionID string                       `json:"session_id"`
	History   []contractx.ConversationTurn `json:"history,omitempty"`
	UpdatedAt time.Time                    `json:"updated_at"`
}

// NewState creates an empty session for id.
func NewState(id string, now time.Time) *State {
	return &State{
		SessionID: id,
		UpdatedAt: now.UTC(),
	}
}

// AppendUser appends a user turn.
func (s *State) AppendUser(content string) {
	s.History = append(s.History, contractx.ConversationTurn{
		Role:    contractx.RoleUser,
		Content: content,
	})
}

// AppendAssistant appends an assistant turn attributed to agent.
func (s *State) AppendAssistant(content string, agent contractx.AgentName) {
	s.History = append(s.History, contractx.ConversationTurn{
		Role:    contractx.RoleAssistant,
		Content: content,
		Agent:   agent,
	})
}

// Window returns the last n turns of history. The returned slice aliases the
// stored history and must be treated as read-only.
func (s *State) Window(n int) []contractx.ConversationTurn {
	if s == nil || n <= 0 || len(s.History) == 0 {
		return nil
	}
	if len(s.History) <= n {
		return s.History
	}
	return s.History[len(s.History)-n:]
}

// Touch refreshes the bookkeeping timestamp.
func (s *State) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}
