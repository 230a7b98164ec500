package service

import (
	"errors"
	"time"

	"github.com/uptrace/bun"
)

var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrNoPendingInvoice  = errors.New("no pending invoice")
	ErrInvoiceNotFound   = errors.New("invoice not found")
	ErrPlanNotFound      = errors.New("plan not found")
	ErrNoActiveContract  = errors.New("no active contract")
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrMissingCustomerID = errors.New("customer id is required")
)

const (
	ContractActive    = "ativo"
	ContractCancelled = "cancelado"
	ContractSuspended = "suspenso"

	InvoicePending   = "pendente"
	InvoicePaid      = "pago"
	InvoiceOverdue   = "atrasado"
	InvoiceCancelled = "cancelado"

	TicketOpen      = "aberto"
	TicketResolved  = "resolvido"
	TicketForwarded = "encaminhado"
)

type Customer struct {
	bun.BaseModel `bun:"table:clientes,alias:cli"`

	ID               int64     `bun:"id,pk,autoincrement" json:"id"`
	Name             string    `bun:"nome,notnull" json:"name"`
	Email            string    `bun:"email,notnull,unique" json:"email"`
	Phone            string    `bun:"telefone" json:"phone,omitempty"`
	PreferredChannel string    `bun:"canal_preferido" json:"preferred_channel,omitempty"`
	CreatedAt        time.Time `bun:"data_criacao,nullzero,notnull,default:current_timestamp" json:"-"`
}

type Plan struct {
	bun.BaseModel `bun:"table:planos,alias:pl"`

	PlanID      int64   `bun:"plano_id,pk,autoincrement" json:"-"`
	Name        string  `bun:"nome,notnull" json:"name"`
	Description string  `bun:"descricao" json:"description,omitempty"`
	Speed       string  `bun:"velocidade" json:"speed,omitempty"`
	Price       float64 `bun:"preco,notnull" json:"price"`
	Type        string  `bun:"tipo,notnull" json:"type"`
}

type Contract struct {
	bun.BaseModel `bun:"table:contratos,alias:ct"`

	ContractID  int64      `bun:"contrato_id,pk,autoincrement"`
	CustomerID  int64      `bun:"cliente_id,notnull"`
	PlanID      int64      `bun:"plano_id,notnull"`
	StartDate   time.Time  `bun:"data_inicio,notnull"`
	EndDate     *time.Time `bun:"data_fim"`
	Status      string     `bun:"status"`
	ServiceType string     `bun:"tipo_servico"`
}

type Invoice struct {
	bun.BaseModel `bun:"table:faturas,alias:fat"`

	InvoiceID  int64     `bun:"fatura_id,pk,autoincrement" json:"id"`
	ContractID int64     `bun:"contrato_id,notnull" json:"-"`
	IssuedAt   time.Time `bun:"data_emissao,notnull" json:"issued_at"`
	DueAt      time.Time `bun:"data_vencimento,notnull" json:"due_at"`
	Amount     float64   `bun:"valor,notnull" json:"amount"`
	Status     string    `bun:"status" json:"status"`
}

// Ticket payloads expose the protocol, never the internal customer id: the
// model only ever sees identifiers a customer can quote back.
type Ticket struct {
	bun.BaseModel `bun:"table:chamados,alias:ch"`

	ID          int64      `bun:"id,pk,autoincrement" json:"ticket_id"`
	Protocol    string     `bun:"protocolo,notnull" json:"protocol"`
	CustomerID  int64      `bun:"cliente_id,notnull" json:"-"`
	Channel     string     `bun:"canal,notnull" json:"channel"`
	Description string     `bun:"mensagem,notnull" json:"description"`
	Status      string     `bun:"status" json:"status"`
	Priority    string     `bun:"prioridade" json:"priority"`
	Category    string     `bun:"categoria" json:"category,omitempty"`
	Note        string     `bun:"resolucao" json:"note,omitempty"`
	CreatedAt   time.Time  `bun:"data_criacao,nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time  `bun:"data_atualizacao,nullzero,notnull,default:current_timestamp" json:"updated_at"`
	ClosedAt    *time.Time `bun:"data_fechamento" json:"closed_at,omitempty"`
}
