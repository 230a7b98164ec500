package tool

import (
	"context"

	servicex "github.com/dlimars/centralai/service"
)

// The registry consumes the domain services through narrow interfaces so
// tests can fake the record store.

type CustomerDirectory interface {
	FindByEmail(ctx context.Context, email string) (*servicex.Customer, error)
	Profile(ctx context.Context, customerID int64) (*servicex.Profile, error)
}

type BillingDesk interface {
	PendingBoleto(ctx context.Context, email string) (*servicex.Boleto, error)
	PaymentStatus(ctx context.Context, invoiceID int64) (string, error)
	ListInvoices(ctx context.Context, customerID int64, limit int) ([]servicex.Invoice, error)
}

type PlanDesk interface {
	List(ctx context.Context) ([]servicex.Plan, error)
	UpgradeCost(ctx context.Context, currentName, newName string) (float64, error)
	ChangePlan(ctx context.Context, customerID int64, planName string) (*servicex.PlanChange, error)
	ApplyRetentionDiscount(ctx context.Context, customerID int64) (*servicex.RetentionDiscount, error)
}

type TicketDesk interface {
	Open(ctx context.Context, customerID int64, description, priority, category string) (*servicex.Ticket, error)
	ListOpen(ctx context.Context, customerID int64) ([]servicex.Ticket, error)
	Update(ctx context.Context, ticketID int64, upd servicex.TicketUpdate) (*servicex.Ticket, error)
}

type KnowledgeDesk interface {
	SearchFAQ(query string) []servicex.FAQEntry
	CompanyInfo(topic string) string
	SearchArticles(query string) []servicex.TroubleshootingArticle
	SystemStatus() map[string]string
}

// Deps bundles every domain collaborator the tools call into.
type Deps struct {
	Customers CustomerDirectory
	Billing   BillingDesk
	Plans     PlanDesk
	Tickets   TicketDesk
	Knowledge KnowledgeDesk
}
