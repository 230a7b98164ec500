package contract

import "context"

// Router maps a raw message (plus optional caller context) to a routing
// decision. Implementations recover classification failures internally and
// fall back to DefaultAgent; an error that still escapes Route aborts the
// turn and surfaces to the caller as the system_error envelope.
type Router interface {
	Route(ctx context.Context, message string, actx Context) (RoutingDecision, error)
}

// Responder is one conversational agent: it runs a full LLM turn, including
// any tool-call exchanges, and returns the final natural-language reply.
type Responder interface {
	Respond(ctx context.Context, message string, actx Context) (string, error)
}

// Registry resolves agent names to responders.
type Registry interface {
	Responder(name AgentName) (Responder, bool)
}
