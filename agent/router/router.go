// Package router classifies each customer message into the specialized
// agent that should answer it. Classification runs on a small structured
// LLM call; every failure mode degrades to the default agent so the
// conversation never stops on a routing problem.
package router

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	contractx "github.com/dlimars/centralai/agent/contract"
	promptx "github.com/dlimars/centralai/agent/prompt"
)

// llmDecision mirrors the JSON the classifier model is instructed to emit.
// Confidence is a pointer so an omitted field is distinguishable from an
// explicit 0.
type llmDecision struct {
	Agent      string   `json:"agent"`
	Confidence *float64 `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
}

// Router implements contract.Router on top of a compiled classification
// graph. The invoke field is the only seam tests need.
type Router struct {
	invoke func(ctx context.Context, input map[string]any) (llmDecision, error)
}

var _ contractx.Router = (*Router)(nil)

// New compiles the classification graph against the given chat model.
func New(ctx context.Context, chatModel einomodel.BaseChatModel) (*Router, error) {
	runner, err := compileClassifierGraph(ctx, chatModel)
	if err != nil {
		return nil, fmt.Errorf("compile classifier graph: %w", err)
	}
	return &Router{
		invoke: func(ctx context.Context, input map[string]any) (llmDecision, error) {
			return runner.Invoke(ctx, input)
		},
	}, nil
}

// Route classifies message. It always returns a usable decision: model,
// parse and schema failures fall back to the default agent with zero
// confidence, unknown agent names are substituted by the default agent
// (with a neutral 0.5 when the model omitted confidence entirely), and
// confidence is clamped to [0, 1].
func (r *Router) Route(ctx context.Context, message string, actx contractx.Context) (contractx.RoutingDecision, error) {
	out, err := r.invoke(ctx, map[string]any{
		"agents": agentListing(),
		"input":  classifierInput(message, actx),
	})
	if err != nil {
		log.Warn().Err(err).Msg("router: classification failed, using default agent")
		return contractx.RoutingDecision{
			Agent:      contractx.DefaultAgent,
			Confidence: 0,
			Reasoning:  fmt.Sprintf("falha na classificação, usando agente padrão: %v", err),
		}, nil
	}

	decision := contractx.RoutingDecision{
		Agent:     contractx.AgentName(out.Agent),
		Reasoning: out.Reasoning,
	}
	if out.Confidence != nil {
		decision.Confidence = clamp01(*out.Confidence)
	}
	if !contractx.IsRegistered(decision.Agent) {
		log.Warn().Str("agent", out.Agent).Msg("router: unknown agent in classification, using default agent")
		decision.Agent = contractx.DefaultAgent
		if out.Confidence == nil {
			decision.Confidence = 0.5
		}
		if decision.Reasoning == "" {
			decision.Reasoning = fmt.Sprintf("agente desconhecido %q, usando agente padrão", out.Agent)
		}
	}
	return decision, nil
}

func compileClassifierGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
) (compose.Runnable[map[string]any, llmDecision], error) {
	template := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage(promptx.LoadPromptSet().Router),
		schema.UserMessage("{input}"),
	)

	parser := schema.NewMessageJSONParser[llmDecision](&schema.MessageJSONParseConfig{
		ParseFrom: schema.MessageParseFromContent,
	})

	graph := compose.NewGraph[map[string]any, llmDecision]()
	if err := graph.AddChatTemplateNode("prompt", template); err != nil {
		return nil, fmt.Errorf("add classifier prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add classifier model node: %w", err)
	}
	if err := graph.AddLambdaNode("parse_json", compose.MessageParser(parser)); err != nil {
		return nil, fmt.Errorf("add classifier parser node: %w", err)
	}
	if err := graph.AddEdge(compose.START, "prompt"); err != nil {
		return nil, fmt.Errorf("add classifier edge start->prompt: %w", err)
	}
	if err := graph.AddEdge("prompt", "model"); err != nil {
		return nil, fmt.Errorf("add classifier edge prompt->model: %w", err)
	}
	if err := graph.AddEdge("model", "parse_json"); err != nil {
		return nil, fmt.Errorf("add classifier edge model->parse: %w", err)
	}
	if err := graph.AddEdge("parse_json", compose.END); err != nil {
		return nil, fmt.Errorf("add classifier edge parse->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("intent_classifier"))
	if err != nil {
		return nil, fmt.Errorf("compile classifier: %w", err)
	}
	return runner, nil
}

// agentListing renders the routable agents for the classifier prompt.
func agentListing() string {
	var b strings.Builder
	for _, name := range contractx.RoutableAgents() {
		fmt.Fprintf(&b, "- %s: %s\n", name, contractx.RegisteredAgents[name])
	}
	return strings.TrimRight(b.String(), "\n")
}

// classifierInput prepends the recent history window so the classifier
// can keep the customer with the same agent across a conversation.
func classifierInput(message string, actx contractx.Context) string {
	window := actx.History()
	if len(window) == 0 {
		return message
	}
	var b strings.Builder
	b.WriteString("Histórico recente:\n")
	for _, turn := range window {
		fmt.Fprintf(&b, "%s: %s\n", turn.Role, turn.Content)
	}
	b.WriteString("\nMensagem atual: ")
	b.WriteString(message)
	return b.String()
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
