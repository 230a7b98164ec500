package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	contractx "github.com/dlimars/centralai/agent/contract"
	sessionx "github.com/dlimars/centralai/agent/session"
)

type graphInput struct {
	Message string
	Ctx     contractx.Context
}

// graphState is threaded through the pipeline nodes of one turn.
type graphState struct {
	message  string
	actx     contractx.Context
	state    *sessionx.State
	decision contractx.RoutingDecision
	reply    string
}

func (o *Orchestrator) compileProcessGraph(
	ctx context.Context,
) (compose.Runnable[graphInput, contractx.Envelope], error) {
	graph := compose.NewGraph[graphInput, contractx.Envelope]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in graphInput) (*graphState, error) {
			return validateRequest(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("load_or_create_session",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			return loadOrCreateSession(ctx, in, o.store, o.now)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node load_or_create_session: %w", err)
	}

	if err := graph.AddLambdaNode("route",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			return route(ctx, in, o.router)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node route: %w", err)
	}

	if err := graph.AddLambdaNode("dispatch_agent",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			return dispatchAgent(ctx, in, o.agents)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node dispatch_agent: %w", err)
	}

	if err := graph.AddLambdaNode("persist_session",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			return persistSession(ctx, in, o.store, o.now)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node persist_session: %w", err)
	}

	if err := graph.AddLambdaNode("finalize_envelope",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (contractx.Envelope, error) {
			return finalizeEnvelope(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize_envelope: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "load_or_create_session"},
		{"load_or_create_session", "route"},
		{"route", "dispatch_agent"},
		{"dispatch_agent", "persist_session"},
		{"persist_session", "finalize_envelope"},
		{"finalize_envelope", compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("orchestrator.process"))
	if err != nil {
		return nil, fmt.Errorf("compile orchestrator graph: %w", err)
	}
	return runner, nil
}

func validateRequest(in graphInput) (*graphState, error) {
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return nil, fmt.Errorf("%w: mensagem vazia", contractx.ErrValidation)
	}
	actx := in.Ctx
	if actx == nil {
		actx = contractx.Context{}
	}
	return &graphState{message: message, actx: actx}, nil
}

func loadOrCreateSession(ctx context.Context, in *graphState, store sessionx.Store, now func() time.Time) (*graphState, error) {
	sessionID := in.actx.SessionID()
	state, err := store.Load(ctx, sessionID)
	switch {
	case errors.Is(err, sessionx.ErrStateNotFound):
		state = sessionx.NewState(sessionID, now())
	case err != nil:
		log.Warn().Err(err).Str("session_id", sessionID).Msg("orchestrator: session load failed, starting fresh")
		state = sessionx.NewState(sessionID, now())
	}
	in.state = state
	in.actx = in.actx.WithHistory(state.Window(sessionx.HistoryWindow))
	return in, nil
}

// route classifies the message. The router recovers classification failures
// internally; an error still escaping it aborts the turn and surfaces as the
// system_error envelope. An unknown agent in an otherwise valid decision is
// substituted defensively.
func route(ctx context.Context, in *graphState, router contractx.Router) (*graphState, error) {
	decision, err := router.Route(ctx, in.message, in.actx)
	if err != nil {
		return nil, fmt.Errorf("route message: %w", err)
	}
	if !contractx.IsRegistered(decision.Agent) {
		log.Warn().Str("agent", string(decision.Agent)).Msg("orchestrator: unregistered agent in decision, using default agent")
		decision.Agent = contractx.DefaultAgent
	}
	in.decision = decision
	return in, nil
}

func dispatchAgent(ctx context.Context, in *graphState, agents contractx.Registry) (*graphState, error) {
	responder, ok := agents.Responder(in.decision.Agent)
	if !ok {
		return nil, fmt.Errorf("%w: agente %s não registrado", contractx.ErrValidation, in.decision.Agent)
	}
	reply, err := responder.Respond(ctx, in.message, in.actx)
	if err != nil {
		return nil, fmt.Errorf("agent=%s respond: %w", in.decision.Agent, err)
	}
	in.reply = reply
	return in, nil
}

// persistSession appends the exchange to the full history and saves it. A
// store failure costs persistence, never the reply.
func persistSession(ctx context.Context, in *graphState, store sessionx.Store, now func() time.Time) (*graphState, error) {
	in.state.AppendUser(in.message)
	in.state.AppendAssistant(in.reply, in.decision.Agent)
	in.state.Touch(now())
	if err := store.Save(ctx, in.state); err != nil {
		log.Error().Err(err).Str("session_id", in.state.SessionID).Msg("orchestrator: session save failed")
	}
	return in, nil
}

func finalizeEnvelope(in *graphState) (contractx.Envelope, error) {
	return contractx.Envelope{
		Response:         in.reply,
		AgentUsed:        in.decision.Agent,
		Confidence:       in.decision.Confidence,
		RoutingReasoning: in.decision.Reasoning,
	}, nil
}
