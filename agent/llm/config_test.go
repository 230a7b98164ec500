package llm

import (
	"testing"

	contractx "github.com/dlimars/centralai/agent/contract"
)

func baseConfig() Config {
	return Config{
		BaseURL:              "https://openrouter.ai/api/v1",
		APIKey:               "key",
		Model:                "openai/gpt-4o-mini",
		MaxCompletionToken:   2000,
		RouterTemperature:    0.2,
		RouterMaxToken:       200,
		FinancialTemperature: 0.3,
		TechnicalTemperature: 0.2,
		SalesTemperature:     0.7,
		GeneralTemperature:   0.5,
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	cfg.APIKey = "  "
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() without api key = nil, want error")
	}

	cfg = baseConfig()
	cfg.Model = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() without model = nil, want error")
	}
}

func TestForAgentTemperatures(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cases := []struct {
		agent contractx.AgentName
		want  float32
	}{
		{contractx.AgentFinancial, 0.3},
		{contractx.AgentTechnical, 0.2},
		{contractx.AgentSales, 0.7},
		{contractx.AgentGeneral, 0.5},
	}
	for _, tc := range cases {
		got := cfg.ForAgent(tc.agent)
		if got.Temperature != tc.want {
			t.Fatalf("ForAgent(%s).Temperature = %v, want %v", tc.agent, got.Temperature, tc.want)
		}
		if got.Model != cfg.Model {
			t.Fatalf("ForAgent(%s).Model = %q, want default model", tc.agent, got.Model)
		}
	}
}

func TestForAgentModelOverride(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.SalesModel = "meta-llama/llama-3.3-70b-instruct"
	got := cfg.ForAgent(contractx.AgentSales)
	if got.Model != "meta-llama/llama-3.3-70b-instruct" {
		t.Fatalf("ForAgent(sales).Model = %q, want override", got.Model)
	}
	if other := cfg.ForAgent(contractx.AgentFinancial); other.Model != cfg.Model {
		t.Fatalf("ForAgent(financial).Model = %q, override leaked", other.Model)
	}
}

func TestRouterConfig(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	rc := cfg.RouterConfig()
	if rc.Model != cfg.Model {
		t.Fatalf("RouterConfig().Model = %q, want default model", rc.Model)
	}
	if rc.Temperature != 0.2 {
		t.Fatalf("RouterConfig().Temperature = %v, want 0.2", rc.Temperature)
	}
	if rc.MaxCompletionToken == nil || *rc.MaxCompletionToken != 200 {
		t.Fatalf("RouterConfig().MaxCompletionToken = %v, want 200", rc.MaxCompletionToken)
	}

	cfg.RouterModel = "google/gemini-flash"
	if got := cfg.RouterConfig().Model; got != "google/gemini-flash" {
		t.Fatalf("RouterConfig().Model = %q, want override", got)
	}
}
