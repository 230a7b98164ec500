package tool

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"

	contractx "github.com/dlimars/centralai/agent/contract"
)

func registerSalesTools(r *Registry, deps Deps) {
	r.register(Definition{
		Name:   ToolCustomerProfile,
		Desc:   "Obtém o plano atual e o perfil comercial do cliente identificado.",
		Params: map[string]*schema.ParameterInfo{},
		Handler: func(ctx context.Context, call *CallState, _ map[string]any) (any, error) {
			clientID, err := requireClient(call)
			if err != nil {
				return nil, err
			}
			profile, err := deps.Customers.Profile(ctx, clientID)
			if err != nil {
				return nil, domainError(err)
			}
			return profile, nil
		},
	}, contractx.AgentSales)

	r.register(Definition{
		Name: ToolUpgradeCost,
		Desc: "Calcula a diferença mensal de valor entre o plano atual e o desejado.",
		Params: map[string]*schema.ParameterInfo{
			"current_plan": {Type: schema.String, Desc: "Nome do plano atual", Required: true},
			"new_plan":     {Type: schema.String, Desc: "Nome do plano desejado", Required: true},
		},
		Handler: func(ctx context.Context, _ *CallState, args map[string]any) (any, error) {
			diff, err := deps.Plans.UpgradeCost(ctx, stringArg(args, "current_plan"), stringArg(args, "new_plan"))
			if err != nil {
				return nil, domainError(err)
			}

			var summary string
			switch {
			case diff > 0:
				summary = fmt.Sprintf("O upgrade custará R$ %.2f a mais por mês.", diff)
			case diff < 0:
				summary = fmt.Sprintf("O novo plano custa R$ %.2f a menos por mês.", -diff)
			default:
				summary = "Os planos têm o mesmo valor mensal."
			}
			return map[string]any{"monthly_difference": diff, "summary": summary}, nil
		},
	}, contractx.AgentSales)

	r.register(Definition{
		Name: ToolChangePlan,
		Desc: "Efetiva a troca de plano do cliente identificado.",
		Params: map[string]*schema.ParameterInfo{
			"plan_name": {Type: schema.String, Desc: "Nome do novo plano", Required: true},
		},
		Handler: func(ctx context.Context, call *CallState, args map[string]any) (any, error) {
			clientID, err := requireClient(call)
			if err != nil {
				return nil, err
			}
			change, err := deps.Plans.ChangePlan(ctx, clientID, stringArg(args, "plan_name"))
			if err != nil {
				return nil, domainError(err)
			}
			return change, nil
		},
	}, contractx.AgentSales)

	r.register(Definition{
		Name:   ToolRetentionDiscount,
		Desc:   "Aplica o desconto de retenção (20% por 6 meses). Último recurso antes de um cancelamento.",
		Params: map[string]*schema.ParameterInfo{},
		Handler: func(ctx context.Context, call *CallState, _ map[string]any) (any, error) {
			clientID, err := requireClient(call)
			if err != nil {
				return nil, err
			}
			discount, err := deps.Plans.ApplyRetentionDiscount(ctx, clientID)
			if err != nil {
				return nil, domainError(err)
			}
			return discount, nil
		},
	}, contractx.AgentSales)
}
