package contract

// AgentName identifies a registered conversational agent.
type AgentName string

const (
	AgentFinancial AgentName = "financial_agent"
	AgentTechnical AgentName = "technical_agent"
	AgentSales     AgentName = "sales_agent"
	AgentGeneral   AgentName = "general_agent"

	// AgentSystemError is never dispatched to; it only appears in the
	// envelope when processing failed before a reply could be produced.
	AgentSystemError AgentName = "system_error"
)

// DefaultAgent receives every message the classifier cannot place.
const DefaultAgent = AgentGeneral

// RegisteredAgents maps each dispatchable agent to the one-line capability
// description the router prompt enumerates.
var RegisteredAgents = map[AgentName]string{
	AgentFinancial: "Boletos, pagamentos, faturas, cobranças, parcelamentos",
	AgentTechnical: "Problemas técnicos, quedas de serviço, erros, suporte",
	AgentSales:     "Upgrades, downgrades, novos planos, cancelamentos, comercial",
	AgentGeneral:   "Dúvidas gerais, agradecimentos, saudações, FAQ",
}

// IsRegistered reports whether name belongs to the dispatchable agent set.
func IsRegistered(name AgentName) bool {
	_, ok := RegisteredAgents[name]
	return ok
}

// RoutableAgents returns the dispatchable agents in stable order, for
// prompt and log rendering.
func RoutableAgents() []AgentName {
	return []AgentName{AgentFinancial, AgentTechnical, AgentSales, AgentGeneral}
}

// RoutingDecision is the classifier's verdict for one message. Confidence is
// advisory only: it is surfaced to the caller but never gates dispatch.
type RoutingDecision struct {
	Agent      AgentName `json:"agent"`
	Confidence float64   `json:"confidence"`
	Reasoning  string    `json:"reasoning,omitempty"`
}

// Role of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is one user message or one assistant reply. Assistant
// turns record which agent produced them.
type ConversationTurn struct {
	Role    Role      `json:"role"`
	Content string    `json:"content"`
	Agent   AgentName `json:"agent,omitempty"`
}

// Envelope is the uniform result of Orchestrator.Process. Response always
// holds human-readable text; AgentUsed == AgentSystemError is the only
// signal of an internal failure, with the diagnostic in Error.
type Envelope struct {
	Response         string    `json:"response"`
	AgentUsed        AgentName `json:"agent_used"`
	Confidence       float64   `json:"confidence"`
	RoutingReasoning string    `json:"routing_reasoning,omitempty"`
	Error            string    `json:"error,omitempty"`
}

// ToolResult is what a tool handler hands back to the model. Exactly one of
// Result or Error is set; handler failures are carried as short error
// strings, never as Go errors, so the model can phrase them for the user.
type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}
