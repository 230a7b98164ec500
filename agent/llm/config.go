package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/dlimars/centralai/agent/contract"
	openrouterx "github.com/dlimars/centralai/pkg/openrouter"
)

// Config selects the model and sampling parameters for the router and each
// persona. The router runs cold with a tight token cap; persona temperatures
// follow their roles (sales is the only deliberately warm one).
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`

	RouterModel       string  `envconfig:"ROUTER_MODEL" split_words:"true"`
	RouterTemperature float32 `envconfig:"ROUTER_TEMPERATURE" split_words:"true" default:"0.2"`
	RouterMaxToken    int     `envconfig:"ROUTER_MAX_TOKEN" split_words:"true" default:"200"`

	FinancialModel       string  `envconfig:"FINANCIAL_MODEL" split_words:"true"`
	TechnicalModel       string  `envconfig:"TECHNICAL_MODEL" split_words:"true"`
	SalesModel           string  `envconfig:"SALES_MODEL" split_words:"true"`
	GeneralModel         string  `envconfig:"GENERAL_MODEL" split_words:"true"`
	FinancialTemperature float32 `envconfig:"FINANCIAL_TEMPERATURE" split_words:"true" default:"0.3"`
	TechnicalTemperature float32 `envconfig:"TECHNICAL_TEMPERATURE" split_words:"true" default:"0.2"`
	SalesTemperature     float32 `envconfig:"SALES_TEMPERATURE" split_words:"true" default:"0.7"`
	GeneralTemperature   float32 `envconfig:"GENERAL_TEMPERATURE" split_words:"true" default:"0.5"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: openrouter api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	return nil
}

// RouterConfig returns the classifier's model configuration: low sampling
// temperature and a small output cap, it only ever emits one JSON object.
func (c Config) RouterConfig() openrouterx.Config {
	model := strings.TrimSpace(c.RouterModel)
	if model == "" {
		model = strings.TrimSpace(c.Model)
	}
	maxToken := c.RouterMaxToken
	if maxToken <= 0 {
		maxToken = 200
	}
	return c.base(model, c.RouterTemperature, maxToken)
}

// ForAgent returns the model configuration of one persona.
func (c Config) ForAgent(name contractx.AgentName) openrouterx.Config {
	model := strings.TrimSpace(c.Model)
	temp := c.GeneralTemperature

	switch name {
	case contractx.AgentFinancial:
		temp = c.FinancialTemperature
		if v := strings.TrimSpace(c.FinancialModel); v != "" {
			model = v
		}
	case contractx.AgentTechnical:
		temp = c.TechnicalTemperature
		if v := strings.TrimSpace(c.TechnicalModel); v != "" {
			model = v
		}
	case contractx.AgentSales:
		temp = c.SalesTemperature
		if v := strings.TrimSpace(c.SalesModel); v != "" {
			model = v
		}
	case contractx.AgentGeneral:
		if v := strings.TrimSpace(c.GeneralModel); v != "" {
			model = v
		}
	}

	return c.base(model, temp, c.MaxCompletionToken)
}

func (c Config) base(model string, temperature float32, maxToken int) openrouterx.Config {
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              model,
		MaxCompletionToken: &maxToken,
		Temperature:        temperature,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}
