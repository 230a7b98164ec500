package tool

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"

	contractx "github.com/dlimars/centralai/agent/contract"
)

// identify_client is shared by every agent that acts on a specific customer.
// It is the only path from an email to an id, and it records the resolved id
// on the per-turn CallState.
func registerSharedTools(r *Registry, deps Deps) {
	r.register(Definition{
		Name: ToolIdentifyClient,
		Desc: "Identifica o cliente pelo email para habilitar operações na conta.",
		Params: map[string]*schema.ParameterInfo{
			"email": {Type: schema.String, Desc: "Email cadastrado do cliente", Required: true},
		},
		Handler: func(ctx context.Context, call *CallState, args map[string]any) (any, error) {
			email := stringArg(args, "email")
			customer, err := deps.Customers.FindByEmail(ctx, email)
			if err != nil {
				return nil, domainError(err)
			}
			if call != nil {
				call.ClientID = customer.ID
				call.ClientEmail = customer.Email
			}
			return map[string]any{
				"identified": true,
				"name":       customer.Name,
				"email":      customer.Email,
			}, nil
		},
	}, contractx.AgentFinancial, contractx.AgentTechnical, contractx.AgentSales)

	r.register(Definition{
		Name: ToolListPlans,
		Desc: "Lista todos os planos de internet, TV e telefone disponíveis.",
		Params: map[string]*schema.ParameterInfo{},
		Handler: func(ctx context.Context, _ *CallState, _ map[string]any) (any, error) {
			plans, err := deps.Plans.List(ctx)
			if err != nil {
				return nil, domainError(err)
			}
			if len(plans) == 0 {
				return nil, fmt.Errorf("nenhum plano disponível no catálogo")
			}
			return plans, nil
		},
	}, contractx.AgentSales, contractx.AgentGeneral)
}
