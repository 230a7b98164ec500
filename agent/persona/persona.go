// Package persona implements the specialized conversational agents. All four
// share one responder implementation; what distinguishes them is data: the
// system prompt, the sampling temperature and the tool subset each one binds.
package persona

import (
	contractx "github.com/dlimars/centralai/agent/contract"
	promptx "github.com/dlimars/centralai/agent/prompt"
)

// Persona is the declarative part of an agent.
type Persona struct {
	Name         contractx.AgentName
	SystemPrompt string
}

// Personas returns the four dispatchable personas bound to the embedded
// prompts.
func Personas() []Persona {
	set := promptx.LoadPromptSet()
	return []Persona{
		{Name: contractx.AgentFinancial, SystemPrompt: set.Financial},
		{Name: contractx.AgentTechnical, SystemPrompt: set.Technical},
		{Name: contractx.AgentSales, SystemPrompt: set.Sales},
		{Name: contractx.AgentGeneral, SystemPrompt: set.General},
	}
}
