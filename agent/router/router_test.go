package router

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "github.com/dlimars/centralai/agent/contract"
)

func conf(v float64) *float64 { return &v }

func TestRouteKnownAgent(t *testing.T) {
	t.Parallel()

	r := &Router{invoke: func(ctx context.Context, input map[string]any) (llmDecision, error) {
		return llmDecision{Agent: "financial_agent", Confidence: conf(0.93), Reasoning: "fatura e boleto"}, nil
	}}

	decision, err := r.Route(context.Background(), "quero a segunda via do boleto", contractx.Context{})
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if decision.Agent != contractx.AgentFinancial {
		t.Fatalf("Route().Agent = %q, want financial_agent", decision.Agent)
	}
	if decision.Confidence != 0.93 {
		t.Fatalf("Route().Confidence = %v, want 0.93", decision.Confidence)
	}
	if decision.Reasoning != "fatura e boleto" {
		t.Fatalf("Route().Reasoning = %q", decision.Reasoning)
	}
}

func TestRouteUnknownAgentFallsBackToDefault(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		confidence *float64
		want       float64
	}{
		{name: "explicit confidence kept", confidence: conf(0.8), want: 0.8},
		{name: "explicit out-of-range clamped", confidence: conf(1.4), want: 1},
		{name: "omitted confidence defaults to neutral", confidence: nil, want: 0.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := &Router{invoke: func(ctx context.Context, input map[string]any) (llmDecision, error) {
				return llmDecision{Agent: "billing_agent", Confidence: tc.confidence, Reasoning: "cobrança"}, nil
			}}

			decision, err := r.Route(context.Background(), "qual o valor da fatura?", contractx.Context{})
			if err != nil {
				t.Fatalf("Route() error = %v", err)
			}
			if decision.Agent != contractx.DefaultAgent {
				t.Fatalf("Route().Agent = %q, want default agent", decision.Agent)
			}
			if decision.Confidence != tc.want {
				t.Fatalf("Route().Confidence = %v, want %v", decision.Confidence, tc.want)
			}
			if decision.Reasoning != "cobrança" {
				t.Fatalf("Route().Reasoning = %q, want original reasoning preserved", decision.Reasoning)
			}
		})
	}
}

func TestRouteModelFailureFallsBackToDefault(t *testing.T) {
	t.Parallel()

	r := &Router{invoke: func(ctx context.Context, input map[string]any) (llmDecision, error) {
		return llmDecision{}, errors.New("upstream timeout")
	}}

	decision, err := r.Route(context.Background(), "oi", contractx.Context{})
	if err != nil {
		t.Fatalf("Route() error = %v, fallback must not surface errors", err)
	}
	if decision.Agent != contractx.DefaultAgent {
		t.Fatalf("Route().Agent = %q, want default agent", decision.Agent)
	}
	if decision.Confidence != 0 {
		t.Fatalf("Route().Confidence = %v, want 0", decision.Confidence)
	}
	if decision.Reasoning == "" {
		t.Fatal("Route().Reasoning is empty, want diagnostic text")
	}
}

func TestRouteClampsConfidence(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "above one", in: 1.7, want: 1},
		{name: "negative", in: -0.3, want: 0},
		{name: "in range", in: 0.4, want: 0.4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := &Router{invoke: func(ctx context.Context, input map[string]any) (llmDecision, error) {
				return llmDecision{Agent: "general_agent", Confidence: conf(tc.in)}, nil
			}}

			decision, err := r.Route(context.Background(), "bom dia", contractx.Context{})
			if err != nil {
				t.Fatalf("Route() error = %v", err)
			}
			if decision.Confidence != tc.want {
				t.Fatalf("Route().Confidence = %v, want %v", decision.Confidence, tc.want)
			}
		})
	}
}

func TestClassifierInputIncludesHistory(t *testing.T) {
	t.Parallel()

	actx := contractx.Context{}.WithHistory([]contractx.ConversationTurn{
		{Role: contractx.RoleUser, Content: "minha internet caiu"},
		{Role: contractx.RoleAssistant, Content: "já reiniciou o roteador?", Agent: contractx.AgentTechnical},
	})

	input := classifierInput("já sim e nada", actx)
	if !strings.Contains(input, "minha internet caiu") {
		t.Fatalf("classifierInput() missing history: %q", input)
	}
	if !strings.Contains(input, "Mensagem atual: já sim e nada") {
		t.Fatalf("classifierInput() missing current message: %q", input)
	}
}

func TestAgentListingEnumeratesRoutableAgents(t *testing.T) {
	t.Parallel()

	listing := agentListing()
	for _, name := range contractx.RoutableAgents() {
		if !strings.Contains(listing, string(name)) {
			t.Fatalf("agentListing() missing %s: %q", name, listing)
		}
	}
	if strings.Contains(listing, string(contractx.AgentSystemError)) {
		t.Fatal("agentListing() must not offer system_error")
	}
}
