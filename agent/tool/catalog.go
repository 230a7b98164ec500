package tool

import (
	"errors"
	"fmt"

	servicex "github.com/dlimars/centralai/service"
)

// Tool names as exposed to the model.
const (
	ToolGenerateBoleto     = "generate_boleto"
	ToolCheckPayment       = "check_payment_status"
	ToolListInvoices       = "list_invoices"
	ToolIdentifyClient     = "identify_client"
	ToolSearchKnowledge    = "search_knowledge_base"
	ToolSystemStatus       = "check_system_status"
	ToolListOpenTickets    = "list_open_tickets"
	ToolCreateTicket       = "create_ticket"
	ToolUpdateTicket       = "update_ticket"
	ToolCustomerProfile    = "get_customer_profile"
	ToolListPlans          = "list_plans"
	ToolUpgradeCost        = "calculate_upgrade_cost"
	ToolChangePlan         = "change_plan"
	ToolRetentionDiscount  = "apply_retention_discount"
	ToolSearchFAQ          = "search_faq"
	ToolCompanyInfo        = "get_company_info"
)

// NewRegistry wires every tool to the domain services and assigns each
// agent its subset.
func NewRegistry(deps Deps) *Registry {
	r := newRegistry()

	registerSharedTools(r, deps)
	registerFinancialTools(r, deps)
	registerTechnicalTools(r, deps)
	registerSalesTools(r, deps)
	registerGeneralTools(r, deps)

	return r
}

// domainError converts service sentinel errors into the short strings the
// model incorporates into its reply. Anything unexpected is flattened to a
// generic message so internals never leak through a tool result.
func domainError(err error) error {
	switch {
	case errors.Is(err, servicex.ErrCustomerNotFound):
		return fmt.Errorf("cliente não encontrado")
	case errors.Is(err, servicex.ErrNoPendingInvoice):
		return fmt.Errorf("nenhum boleto pendente encontrado para este cliente")
	case errors.Is(err, servicex.ErrInvoiceNotFound):
		return fmt.Errorf("fatura não encontrada")
	case errors.Is(err, servicex.ErrPlanNotFound):
		return fmt.Errorf("plano não encontrado")
	case errors.Is(err, servicex.ErrNoActiveContract):
		return fmt.Errorf("cliente sem contrato ativo")
	case errors.Is(err, servicex.ErrTicketNotFound):
		return fmt.Errorf("chamado não encontrado")
	case errors.Is(err, servicex.ErrMissingCustomerID):
		return errClientNotIdentified
	}
	return fmt.Errorf("erro interno ao consultar o serviço")
}

var errClientNotIdentified = fmt.Errorf("cliente não identificado; peça o email e use identify_client")

// requireClient resolves the customer id for the current turn: either it was
// already identified (context or a previous identify_client call) or the
// tool must refuse and steer the model to ask for the email.
func requireClient(call *CallState) (int64, error) {
	if call != nil && call.ClientID > 0 {
		return call.ClientID, nil
	}
	return 0, errClientNotIdentified
}
