// Package orchestrator coordinates one conversation turn: session lookup,
// intent classification, agent dispatch and persistence, folded into the
// uniform response envelope.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	contractx "github.com/dlimars/centralai/agent/contract"
	sessionx "github.com/dlimars/centralai/agent/session"
)

// systemErrorReply is the only text a customer ever sees for an internal
// failure.
const systemErrorReply = "Desculpe, ocorreu um erro interno ao processar sua mensagem."

// DefaultTurnTimeout bounds one full Process call, tool rounds included.
const DefaultTurnTimeout = 2 * time.Minute

type Config struct {
	TurnTimeout time.Duration
}

type Orchestrator struct {
	store  sessionx.Store
	router contractx.Router
	agents contractx.Registry

	graphRunner compose.Runnable[graphInput, contractx.Envelope]

	turnTimeout time.Duration
	now         func() time.Time
}

func New(
	store sessionx.Store,
	router contractx.Router,
	agents contractx.Registry,
	cfg Config,
) (*Orchestrator, error) {
	if store == nil {
		return nil, errors.New("session store is required")
	}
	if router == nil {
		return nil, errors.New("router is required")
	}
	if agents == nil {
		return nil, errors.New("agent registry is required")
	}

	timeout := cfg.TurnTimeout
	if timeout <= 0 {
		timeout = DefaultTurnTimeout
	}

	o := &Orchestrator{
		store:       store,
		router:      router,
		agents:      agents,
		turnTimeout: timeout,
		now:         time.Now,
	}

	graphRunner, err := o.compileProcessGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// Process handles one customer message and always returns a complete
// envelope. It never returns an error and never panics outward: any failure
// past routing produces the system_error envelope with a fixed apology and
// the diagnostic tucked into Error.
func (o *Orchestrator) Process(ctx context.Context, message string, actx contractx.Context) (env contractx.Envelope) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Any("panic", r).Msg("orchestrator: panic while processing message")
			env = systemErrorEnvelope(panicDiagnostic(r))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, o.turnTimeout)
	defer cancel()

	out, err := o.graphRunner.Invoke(ctx, graphInput{Message: message, Ctx: actx})
	if err != nil {
		log.Error().Err(err).Msg("orchestrator: turn failed")
		return systemErrorEnvelope(err.Error())
	}
	return out
}

func systemErrorEnvelope(diag string) contractx.Envelope {
	return contractx.Envelope{
		Response:  systemErrorReply,
		AgentUsed: contractx.AgentSystemError,
		Error:     diag,
	}
}

func panicDiagnostic(r any) string {
	return fmt.Sprintf("panic: %v", r)
}
