package persona

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"

	contractx "github.com/dlimars/centralai/agent/contract"
	llmx "github.com/dlimars/centralai/agent/llm"
	toolx "github.com/dlimars/centralai/agent/tool"
)

// ModelFactory builds the chat model one persona runs on. Production wires
// OpenRouterFactory; tests inject fakes.
type ModelFactory func(ctx context.Context, name contractx.AgentName) (einomodel.ToolCallingChatModel, error)

// OpenRouterFactory resolves each persona's model and temperature from cfg.
func OpenRouterFactory(cfg llmx.Config) ModelFactory {
	return func(ctx context.Context, name contractx.AgentName) (einomodel.ToolCallingChatModel, error) {
		mcfg := cfg.ForAgent(name)
		return mcfg.New(ctx)
	}
}

// Registry holds the four built responders and satisfies contract.Registry.
type Registry struct {
	responders map[contractx.AgentName]contractx.Responder
}

var _ contractx.Registry = (*Registry)(nil)

// NewRegistry builds one responder per persona.
func NewRegistry(ctx context.Context, factory ModelFactory, tools *toolx.Registry) (*Registry, error) {
	responders := make(map[contractx.AgentName]contractx.Responder)
	for _, p := range Personas() {
		chatModel, err := factory(ctx, p.Name)
		if err != nil {
			return nil, fmt.Errorf("build model for agent=%s: %w", p.Name, err)
		}
		responder, err := NewResponder(p, chatModel, tools)
		if err != nil {
			return nil, err
		}
		responders[p.Name] = responder
	}
	return &Registry{responders: responders}, nil
}

// Responder returns the agent behind name.
func (r *Registry) Responder(name contractx.AgentName) (contractx.Responder, bool) {
	responder, ok := r.responders[name]
	return responder, ok
}
