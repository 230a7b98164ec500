package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// TicketService opens, lists and updates support tickets.
type TicketService struct {
	db      *bun.DB
	timeout time.Duration
	now     func() time.Time
}

func NewTicketService(db *bun.DB, timeout time.Duration) *TicketService {
	return &TicketService{db: db, timeout: timeout, now: time.Now}
}

// Open creates a ticket for the customer on the AI chat channel and returns
// it with the generated protocol.
func (s *TicketService) Open(ctx context.Context, customerID int64, description, priority, category string) (*Ticket, error) {
	if customerID <= 0 {
		return nil, ErrMissingCustomerID
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("ticket description is required")
	}
	if strings.TrimSpace(priority) == "" {
		priority = "normal"
	}

	now := s.now().UTC()
	ticket := &Ticket{
		Protocol:    NewProtocol(now),
		CustomerID:  customerID,
		Channel:     "chat_ia",
		Description: description,
		Status:      TicketOpen,
		Priority:    priority,
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ctx, cancel := queryTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.db.NewInsert().Model(ticket).Exec(ctx); err != nil {
		return nil, fmt.Errorf("open ticket: %w", err)
	}
	return ticket, nil
}

// ListOpen returns the customer's open tickets, oldest first.
func (s *TicketService) ListOpen(ctx context.Context, customerID int64) ([]Ticket, error) {
	if customerID <= 0 {
		return nil, ErrMissingCustomerID
	}

	ctx, cancel := queryTimeout(ctx, s.timeout)
	defer cancel()

	var tickets []Ticket
	err := s.db.NewSelect().
		Model(&tickets).
		Where("ch.cliente_id = ?", customerID).
		Where("ch.status = ?", TicketOpen).
		Order("ch.data_criacao ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list open tickets: %w", err)
	}
	return tickets, nil
}

// TicketUpdate carries the optional fields of an update; nil means keep.
type TicketUpdate struct {
	Status   *string
	Priority *string
	Note     *string
}

// Update applies the given fields to a ticket and returns the updated row.
// Resolving a ticket stamps its closing time.
func (s *TicketService) Update(ctx context.Context, ticketID int64, upd TicketUpdate) (*Ticket, error) {
	if upd.Status == nil && upd.Priority == nil && upd.Note == nil {
		return nil, fmt.Errorf("ticket update has no fields")
	}

	ctx, cancel := queryTimeout(ctx, s.timeout)
	defer cancel()

	now := s.now().UTC()
	q := s.db.NewUpdate().
		Model((*Ticket)(nil)).
		Set("data_atualizacao = ?", now).
		Where("id = ?", ticketID)

	if upd.Status != nil {
		q = q.Set("status = ?", *upd.Status)
		if *upd.Status == TicketResolved {
			q = q.Set("data_fechamento = ?", now)
		}
	}
	if upd.Priority != nil {
		q = q.Set("prioridade = ?", *upd.Priority)
	}
	if upd.Note != nil {
		q = q.Set("resolucao = ?", *upd.Note)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("update ticket: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return nil, ErrTicketNotFound
	}

	var ticket Ticket
	err = s.db.NewSelect().
		Model(&ticket).
		Where("ch.id = ?", ticketID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reload ticket: %w", err)
	}
	return &ticket, nil
}
