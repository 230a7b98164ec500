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

// PlanService lists plans and executes plan changes on the active contract.
type PlanService struct {
	db      *bun.DB
	timeout time.Duration
}

func NewPlanService(db *bun.DB, timeout time.Duration) *PlanService {
	return &PlanService{db: db, timeout: timeout}
}

// List returns every plan in the catalog, cheapest first.
func (s *PlanService) List(ctx context.Context) ([]Plan, error) {
	ctx, cancel := queryTimeout(ctx, s.timeout)
	defer cancel()

	var plans []Plan
	err := s.db.NewSelect().
		Model(&plans).
		Order("pl.preco ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return plans, nil
}

// ByName resolves a plan by fuzzy name match.
func (s *PlanService) ByName(ctx context.Context, name string) (*Plan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPlanNotFound
	}

	ctx, cancel := queryTimeout(ctx, s.timeout)
	defer cancel()

	var plan Plan
	err := s.db.NewSelect().
		Model(&plan).
		Where("pl.nome ILIKE ?", "%"+name+"%").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find plan by name: %w", err)
	}
	return &plan, nil
}

// UpgradeCost returns the monthly price difference between two plans,
// positive when the new plan costs more.
func (s *PlanService) UpgradeCost(ctx context.Context, currentName, newName string) (float64, error) {
	current, err := s.ByName(ctx, currentName)
	if err != nil {
		return 0, fmt.Errorf("current plan: %w", err)
	}
	target, err := s.ByName(ctx, newName)
	if err != nil {
		return 0, fmt.Errorf("target plan: %w", err)
	}
	return target.Price - current.Price, nil
}

// PlanChange confirms an executed plan change.
type PlanChange struct {
	NewPlan       Plan   `json:"new_plan"`
	EffectiveNote string `json:"effective_note"`
}

// ChangePlan moves the customer's active contract to the named plan.
func (s *PlanService) ChangePlan(ctx context.Context, customerID int64, planName string) (*PlanChange, error) {
	if customerID <= 0 {
		return nil, ErrMissingCustomerID
	}

	plan, err := s.ByName(ctx, planName)
	if err != nil {
		return nil, err
	}

	ctx, cancel := queryTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.db.NewUpdate().
		Model((*Contract)(nil)).
		Set("plano_id = ?", plan.PlanID).
		Set("tipo_servico = ?", plan.Type).
		Where("cliente_id = ?", customerID).
		Where("status = ?", ContractActive).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("change plan: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return nil, ErrNoActiveContract
	}

	return &PlanChange{
		NewPlan:       *plan,
		EffectiveNote: "Atualização efetivada; a nova velocidade é liberada em até 2 horas, sem troca de equipamento.",
	}, nil
}

// RetentionDiscount is the last-resort retention offer.
type RetentionDiscount struct {
	Percent  int    `json:"percent"`
	Months   int    `json:"months"`
	Protocol string `json:"protocol"`
	Message  string `json:"message"`
}

// ApplyRetentionDiscount registers the 20%-for-6-months retention offer on
// the customer's active contract and returns its confirmation protocol.
func (s *PlanService) ApplyRetentionDiscount(ctx context.Context, customerID int64) (*RetentionDiscount, error) {
	if customerID <= 0 {
		return nil, ErrMissingCustomerID
	}

	ctx, cancel := queryTimeout(ctx, s.timeout)
	defer cancel()

	exists, err := s.db.NewSelect().
		Model((*Contract)(nil)).
		Where("cliente_id = ?", customerID).
		Where("status = ?", ContractActive).
		Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("check active contract: %w", err)
	}
	if !exists {
		return nil, ErrNoActiveContract
	}

	return &RetentionDiscount{
		Percent:  20,
		Months:   6,
		Protocol: NewProtocol(time.Now()),
		Message:  "Desconto de retenção de 20% aplicado às próximas 6 mensalidades.",
	}, nil
}
