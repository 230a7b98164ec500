package tool

import (
	"context"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"

	contractx "github.com/dlimars/centralai/agent/contract"
	servicex "github.com/dlimars/centralai/service"
)

type fakeCustomers struct {
	customer *servicex.Customer
	err      error
	profile  *servicex.Profile
}

func (f *fakeCustomers) FindByEmail(_ context.Context, email string) (*servicex.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.customer, nil
}

func (f *fakeCustomers) Profile(_ context.Context, _ int64) (*servicex.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

type fakeBilling struct {
	boleto       *servicex.Boleto
	boletoErr    error
	status       string
	invoices     []servicex.Invoice
	gotClientID  int64
	gotEmail     string
	gotInvoiceID int64
}

func (f *fakeBilling) PendingBoleto(_ context.Context, email string) (*servicex.Boleto, error) {
	f.gotEmail = email
	if f.boletoErr != nil {
		return nil, f.boletoErr
	}
	return f.boleto, nil
}

func (f *fakeBilling) PaymentStatus(_ context.Context, invoiceID int64) (string, error) {
	f.gotInvoiceID = invoiceID
	return f.status, nil
}

func (f *fakeBilling) ListInvoices(_ context.Context, customerID int64, _ int) ([]servicex.Invoice, error) {
	f.gotClientID = customerID
	return f.invoices, nil
}

type fakeTickets struct {
	open    []servicex.Ticket
	created *servicex.Ticket
	updated *servicex.Ticket
	gotID   int64
	gotUpd  servicex.TicketUpdate
}

func (f *fakeTickets) Open(_ context.Context, _ int64, _, _, _ string) (*servicex.Ticket, error) {
	return f.created, nil
}

func (f *fakeTickets) ListOpen(_ context.Context, _ int64) ([]servicex.Ticket, error) {
	return f.open, nil
}

func (f *fakeTickets) Update(_ context.Context, ticketID int64, upd servicex.TicketUpdate) (*servicex.Ticket, error) {
	f.gotID = ticketID
	f.gotUpd = upd
	return f.updated, nil
}

type fakeKnowledge struct {
	faq      []servicex.FAQEntry
	articles []servicex.TroubleshootingArticle
}

func (f *fakeKnowledge) SearchFAQ(_ string) []servicex.FAQEntry { return f.faq }
func (f *fakeKnowledge) CompanyInfo(_ string) string            { return "Atendemos de segunda a sexta." }
func (f *fakeKnowledge) SearchArticles(_ string) []servicex.TroubleshootingArticle {
	return f.articles
}
func (f *fakeKnowledge) SystemStatus() map[string]string {
	return map[string]string{"internet_fiber": "operational"}
}

func TestCatalogPerAgentSubsets(t *testing.T) {
	t.Parallel()

	r := NewRegistry(Deps{})

	cases := []struct {
		agent   contractx.AgentName
		want    []string
		exclude []string
	}{
		{
			agent:   contractx.AgentFinancial,
			want:    []string{ToolIdentifyClient, ToolGenerateBoleto, ToolCheckPayment, ToolListInvoices},
			exclude: []string{ToolChangePlan, ToolCreateTicket, ToolSearchFAQ},
		},
		{
			agent:   contractx.AgentTechnical,
			want:    []string{ToolIdentifyClient, ToolSearchKnowledge, ToolSystemStatus, ToolListOpenTickets, ToolCreateTicket, ToolUpdateTicket},
			exclude: []string{ToolGenerateBoleto, ToolChangePlan},
		},
		{
			agent:   contractx.AgentSales,
			want:    []string{ToolIdentifyClient, ToolListPlans, ToolCustomerProfile, ToolUpgradeCost, ToolChangePlan, ToolRetentionDiscount, ToolCreateTicket},
			exclude: []string{ToolGenerateBoleto, ToolUpdateTicket},
		},
		{
			agent:   contractx.AgentGeneral,
			want:    []string{ToolSearchFAQ, ToolCompanyInfo, ToolListPlans, ToolGenerateBoleto},
			exclude: []string{ToolIdentifyClient, ToolChangePlan, ToolCreateTicket},
		},
	}

	for _, tc := range cases {
		t.Run(string(tc.agent), func(t *testing.T) {
			t.Parallel()

			allowed := r.Allowed(tc.agent)
			for _, name := range tc.want {
				if _, ok := allowed[name]; !ok {
					t.Errorf("agent %s missing tool %s", tc.agent, name)
				}
			}
			for _, name := range tc.exclude {
				if _, ok := allowed[name]; ok {
					t.Errorf("agent %s must not expose tool %s", tc.agent, name)
				}
			}

			infos := r.Catalog(tc.agent)
			if len(infos) != len(allowed) {
				t.Fatalf("Catalog() length = %d, Allowed() length = %d", len(infos), len(allowed))
			}
			for _, info := range infos {
				if info.Name == "" || info.Desc == "" {
					t.Fatalf("tool %q missing name or description", info.Name)
				}
			}
		})
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	t.Parallel()

	r := NewRegistry(Deps{})
	result := r.Execute(context.Background(), &CallState{}, "transfer_funds", nil)
	if result.Error == "" {
		t.Fatal("Execute() with unknown tool must return an error result")
	}
	if !strings.Contains(result.Error, "ferramenta desconhecida") {
		t.Fatalf("Execute() error = %q", result.Error)
	}
}

func TestExecuteMissingRequiredArgument(t *testing.T) {
	t.Parallel()

	r := NewRegistry(Deps{Customers: &fakeCustomers{}})
	result := r.Execute(context.Background(), &CallState{}, ToolIdentifyClient, map[string]any{})
	if !strings.Contains(result.Error, "argumento obrigatório ausente: email") {
		t.Fatalf("Execute() error = %q", result.Error)
	}
}

func TestExecuteCoercesIntegerArguments(t *testing.T) {
	t.Parallel()

	billing := &fakeBilling{status: servicex.InvoicePaid}
	r := NewRegistry(Deps{Billing: billing})

	// Models send integers as JSON numbers and sometimes as strings.
	for _, raw := range []any{float64(42), "42"} {
		result := r.Execute(context.Background(), &CallState{}, ToolCheckPayment, map[string]any{"invoice_id": raw})
		if result.Error != "" {
			t.Fatalf("Execute(%v) error = %q", raw, result.Error)
		}
		if billing.gotInvoiceID != 42 {
			t.Fatalf("invoice id = %d, want 42", billing.gotInvoiceID)
		}
	}

	result := r.Execute(context.Background(), &CallState{}, ToolCheckPayment, map[string]any{"invoice_id": 42.5})
	if result.Error == "" {
		t.Fatal("Execute() with fractional id must fail validation")
	}
}

func TestIdentifyClientRecordsCallState(t *testing.T) {
	t.Parallel()

	r := NewRegistry(Deps{
		Customers: &fakeCustomers{customer: &servicex.Customer{ID: 7, Name: "Ana Lima", Email: "ana@exemplo.com"}},
		Tickets:   &fakeTickets{open: []servicex.Ticket{{ID: 1, Protocol: "20250601120000-ABCD", Status: servicex.TicketOpen}}},
	})

	call := &CallState{}
	result := r.Execute(context.Background(), call, ToolIdentifyClient, map[string]any{"email": "ana@exemplo.com"})
	if result.Error != "" {
		t.Fatalf("identify_client error = %q", result.Error)
	}
	if call.ClientID != 7 {
		t.Fatalf("call.ClientID = %d, want 7", call.ClientID)
	}

	// Identification unlocks the customer-scoped tools within the same turn.
	listed := r.Execute(context.Background(), call, ToolListOpenTickets, nil)
	if listed.Error != "" {
		t.Fatalf("list_open_tickets error = %q", listed.Error)
	}
}

func TestCustomerScopedToolWithoutIdentification(t *testing.T) {
	t.Parallel()

	r := NewRegistry(Deps{Tickets: &fakeTickets{}})
	result := r.Execute(context.Background(), &CallState{}, ToolListOpenTickets, nil)
	if !strings.Contains(result.Error, "cliente não identificado") {
		t.Fatalf("Execute() error = %q, want identification refusal", result.Error)
	}
}

func TestCallStateDoesNotLeakAcrossTurns(t *testing.T) {
	t.Parallel()

	r := NewRegistry(Deps{
		Customers: &fakeCustomers{customer: &servicex.Customer{ID: 7, Name: "Ana Lima", Email: "ana@exemplo.com"}},
		Tickets:   &fakeTickets{},
	})

	first := NewCallState(contractx.Context{})
	r.Execute(context.Background(), first, ToolIdentifyClient, map[string]any{"email": "ana@exemplo.com"})
	if first.ClientID != 7 {
		t.Fatalf("first turn ClientID = %d, want 7", first.ClientID)
	}

	second := NewCallState(contractx.Context{})
	if second.ClientID != 0 {
		t.Fatalf("fresh call state ClientID = %d, want 0", second.ClientID)
	}
	result := r.Execute(context.Background(), second, ToolListOpenTickets, nil)
	if result.Error == "" {
		t.Fatal("second turn must require identification again")
	}
}

func TestNewCallStateSeedsFromContext(t *testing.T) {
	t.Parallel()

	call := NewCallState(contractx.Context{
		contractx.CtxClientID:    int64(12),
		contractx.CtxClientEmail: "joao@exemplo.com",
	})
	if call.ClientID != 12 {
		t.Fatalf("ClientID = %d, want 12", call.ClientID)
	}
	if call.ClientEmail != "joao@exemplo.com" {
		t.Fatalf("ClientEmail = %q", call.ClientEmail)
	}
}

func TestGenerateBoletoFallsBackToIdentifiedEmail(t *testing.T) {
	t.Parallel()

	billing := &fakeBilling{boleto: &servicex.Boleto{Message: "2ª via gerada com sucesso", Amount: 89.9}}
	r := NewRegistry(Deps{Billing: billing})

	call := &CallState{ClientEmail: "ana@exemplo.com"}
	result := r.Execute(context.Background(), call, ToolGenerateBoleto, map[string]any{"email": ""})
	if result.Error != "" {
		t.Fatalf("generate_boleto error = %q", result.Error)
	}
	if billing.gotEmail != "ana@exemplo.com" {
		t.Fatalf("billing email = %q, want identified email", billing.gotEmail)
	}
}

func TestDomainErrorMapsSentinels(t *testing.T) {
	t.Parallel()

	r := NewRegistry(Deps{
		Customers: &fakeCustomers{err: servicex.ErrCustomerNotFound},
	})

	result := r.Execute(context.Background(), &CallState{}, ToolIdentifyClient, map[string]any{"email": "x@y.com"})
	if result.Error != "cliente não encontrado" {
		t.Fatalf("Execute() error = %q, want mapped sentinel text", result.Error)
	}
}

func TestUpdateTicketRequiresAField(t *testing.T) {
	t.Parallel()

	tickets := &fakeTickets{updated: &servicex.Ticket{ID: 3, Status: servicex.TicketResolved}}
	r := NewRegistry(Deps{Tickets: tickets})

	result := r.Execute(context.Background(), &CallState{}, ToolUpdateTicket, map[string]any{"ticket_id": float64(3)})
	if !strings.Contains(result.Error, "informe ao menos um campo") {
		t.Fatalf("Execute() error = %q", result.Error)
	}

	result = r.Execute(context.Background(), &CallState{}, ToolUpdateTicket, map[string]any{
		"ticket_id": float64(3),
		"status":    "resolvido",
	})
	if result.Error != "" {
		t.Fatalf("Execute() error = %q", result.Error)
	}
	if tickets.gotUpd.Status == nil || *tickets.gotUpd.Status != "resolvido" {
		t.Fatalf("update status = %#v, want resolvido", tickets.gotUpd.Status)
	}
}

func TestCatalogParamsRenderSchema(t *testing.T) {
	t.Parallel()

	r := NewRegistry(Deps{})
	var identify *schema.ToolInfo
	for _, info := range r.Catalog(contractx.AgentFinancial) {
		if info.Name == ToolIdentifyClient {
			identify = info
		}
	}
	if identify == nil {
		t.Fatal("identify_client missing from financial catalog")
	}
	if identify.ParamsOneOf == nil {
		t.Fatal("identify_client has no parameter schema")
	}
}
