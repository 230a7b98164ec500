package contract

import "testing"

func TestContextSessionIDFallback(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		ctx  Context
		want string
	}{
		{name: "nil context", ctx: nil, want: DefaultSessionID},
		{name: "missing key", ctx: Context{}, want: DefaultSessionID},
		{name: "blank value", ctx: Context{CtxSessionID: "   "}, want: DefaultSessionID},
		{name: "wrong type", ctx: Context{CtxSessionID: 42}, want: DefaultSessionID},
		{name: "trimmed", ctx: Context{CtxSessionID: " abc "}, want: "abc"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.ctx.SessionID(); got != tc.want {
				t.Fatalf("SessionID() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestContextClientID(t *testing.T) {
	t.Parallel()

	if _, ok := (Context{}).ClientID(); ok {
		t.Fatal("ClientID() on empty context reported ok")
	}

	if id, ok := (Context{CtxClientID: int64(9)}).ClientID(); !ok || id != 9 {
		t.Fatalf("ClientID(int64) = %d, %v", id, ok)
	}
	if id, ok := (Context{CtxClientID: 9}).ClientID(); !ok || id != 9 {
		t.Fatalf("ClientID(int) = %d, %v", id, ok)
	}
	// JSON-decoded contexts carry numbers as float64.
	if id, ok := (Context{CtxClientID: 9.0}).ClientID(); !ok || id != 9 {
		t.Fatalf("ClientID(float64) = %d, %v", id, ok)
	}
	if _, ok := (Context{CtxClientID: 9.5}).ClientID(); ok {
		t.Fatal("ClientID(9.5) reported ok for a fractional id")
	}
}

func TestContextWithHistoryCopies(t *testing.T) {
	t.Parallel()

	base := Context{CtxSessionID: "s1"}
	window := []ConversationTurn{{Role: RoleUser, Content: "oi"}}

	derived := base.WithHistory(window)
	if len(derived.History()) != 1 {
		t.Fatalf("derived history length = %d, want 1", len(derived.History()))
	}
	if base.History() != nil {
		t.Fatal("WithHistory() mutated the receiver")
	}

	stripped := derived.WithoutHistory()
	if stripped.History() != nil {
		t.Fatal("WithoutHistory() kept the history key")
	}
	if stripped.SessionID() != "s1" {
		t.Fatalf("WithoutHistory() dropped other keys: SessionID = %q", stripped.SessionID())
	}
}

func TestIsRegistered(t *testing.T) {
	t.Parallel()

	for _, name := range RoutableAgents() {
		if !IsRegistered(name) {
			t.Fatalf("IsRegistered(%s) = false", name)
		}
	}
	if IsRegistered(AgentSystemError) {
		t.Fatal("IsRegistered(system_error) = true, it must never be dispatchable")
	}
	if IsRegistered("billing_agent") {
		t.Fatal("IsRegistered(billing_agent) = true")
	}
}
