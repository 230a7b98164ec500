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

// CustomerService resolves customers and their commercial profile.
type CustomerService struct {
	db      *bun.DB
	timeout time.Duration
}

func NewCustomerService(db *bun.DB, timeout time.Duration) *CustomerService {
	return &CustomerService{db: db, timeout: timeout}
}

// FindByEmail resolves a customer by email, the only identifier agents are
// allowed to ask for.
func (s *CustomerService) FindByEmail(ctx context.Context, email string) (*Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrCustomerNotFound
	}

	ctx, cancel := queryTimeout(ctx, s.timeout)
	defer cancel()

	var customer Customer
	err := s.db.NewSelect().
		Model(&customer).
		Where("lower(cli.email) = ?", email).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find customer by email: %w", err)
	}
	return &customer, nil
}

// Profile is the commercial summary the sales agent works from.
type Profile struct {
	CurrentPlan   Plan   `json:"current_plan"`
	ContractStart string `json:"contract_start"`
	ServiceType   string `json:"service_type,omitempty"`
}

// Profile returns the active contract and its plan for a customer.
func (s *CustomerService) Profile(ctx context.Context, customerID int64) (*Profile, error) {
	if customerID <= 0 {
		return nil, ErrMissingCustomerID
	}

	ctx, cancel := queryTimeout(ctx, s.timeout)
	defer cancel()

	var contract Contract
	err := s.db.NewSelect().
		Model(&contract).
		Where("ct.cliente_id = ?", customerID).
		Where("ct.status = ?", ContractActive).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoActiveContract
	}
	if err != nil {
		return nil, fmt.Errorf("find active contract: %w", err)
	}

	var plan Plan
	err = s.db.NewSelect().
		Model(&plan).
		Where("pl.plano_id = ?", contract.PlanID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find contract plan: %w", err)
	}

	return &Profile{
		CurrentPlan:   plan,
		ContractStart: contract.StartDate.Format("2006-01-02"),
		ServiceType:   contract.ServiceType,
	}, nil
}
