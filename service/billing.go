package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// BillingService reads invoices and renders boleto payloads.
type BillingService struct {
	db        *bun.DB
	customers *CustomerService
	timeout   time.Duration
	baseURL   string
}

func NewBillingService(db *bun.DB, customers *CustomerService, timeout time.Duration) *BillingService {
	return &BillingService{
		db:        db,
		customers: customers,
		timeout:   timeout,
		baseURL:   "https://central.dlimars.dev/faturas",
	}
}

// Boleto is the second-copy payment slip payload handed to the model.
type Boleto struct {
	Message string  `json:"message"`
	Barcode string  `json:"barcode"`
	PDFLink string  `json:"pdf_link"`
	Amount  float64 `json:"amount"`
	DueDate string  `json:"due_date"`
}

// PendingBoleto finds the customer's earliest pending invoice and renders a
// second-copy boleto for it.
func (s *BillingService) PendingBoleto(ctx context.Context, email string) (*Boleto, error) {
	customer, err := s.customers.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	ctx, cancel := queryTimeout(ctx, s.timeout)
	defer cancel()

	var invoice Invoice
	err = s.db.NewSelect().
		Model(&invoice).
		Join("JOIN contratos AS ct ON ct.contrato_id = fat.contrato_id").
		Where("ct.cliente_id = ?", customer.ID).
		Where("fat.status = ?", InvoicePending).
		Order("fat.data_vencimento ASC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoPendingInvoice
	}
	if err != nil {
		return nil, fmt.Errorf("find pending invoice: %w", err)
	}

	return &Boleto{
		Message: "2ª via gerada com sucesso",
		Barcode: fmt.Sprintf("34191.79001 01043.510047 91020.150008 8 %d0000015000", invoice.InvoiceID),
		PDFLink: fmt.Sprintf("%s/%d.pdf", s.baseURL, invoice.InvoiceID),
		Amount:  invoice.Amount,
		DueDate: invoice.DueAt.Format("02/01/2006"),
	}, nil
}

// PaymentStatus returns the status of one invoice.
func (s *BillingService) PaymentStatus(ctx context.Context, invoiceID int64) (string, error) {
	ctx, cancel := queryTimeout(ctx, s.timeout)
	defer cancel()

	var invoice Invoice
	err := s.db.NewSelect().
		Model(&invoice).
		Where("fat.fatura_id = ?", invoiceID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrInvoiceNotFound
	}
	if err != nil {
		return "", fmt.Errorf("find invoice: %w", err)
	}
	return invoice.Status, nil
}

// ListInvoices returns the customer's most recent invoices, newest due first.
func (s *BillingService) ListInvoices(ctx context.Context, customerID int64, limit int) ([]Invoice, error) {
	if customerID <= 0 {
		return nil, ErrMissingCustomerID
	}
	if limit <= 0 {
		limit = 5
	}

	ctx, cancel := queryTimeout(ctx, s.timeout)
	defer cancel()

	var invoices []Invoice
	err := s.db.NewSelect().
		Model(&invoices).
		Join("JOIN contratos AS ct ON ct.contrato_id = fat.contrato_id").
		Where("ct.cliente_id = ?", customerID).
		Order("fat.data_vencimento DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return invoices, nil
}
