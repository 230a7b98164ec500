package tool

import (
	"context"

	"github.com/cloudwego/eino/schema"

	contractx "github.com/dlimars/centralai/agent/contract"
)

func registerFinancialTools(r *Registry, deps Deps) {
	r.register(Definition{
		Name: ToolGenerateBoleto,
		Desc: "Gera a 2ª via do boleto pendente do cliente a partir do email.",
		Params: map[string]*schema.ParameterInfo{
			"email": {Type: schema.String, Desc: "Email cadastrado do cliente", Required: true},
		},
		Handler: func(ctx context.Context, call *CallState, args map[string]any) (any, error) {
			email := stringArg(args, "email")
			if email == "" && call != nil {
				email = call.ClientEmail
			}
			boleto, err := deps.Billing.PendingBoleto(ctx, email)
			if err != nil {
				return nil, domainError(err)
			}
			return boleto, nil
		},
	}, contractx.AgentFinancial, contractx.AgentGeneral)

	r.register(Definition{
		Name: ToolCheckPayment,
		Desc: "Verifica o status de pagamento de uma fatura pelo número.",
		Params: map[string]*schema.ParameterInfo{
			"invoice_id": {Type: schema.Integer, Desc: "Número da fatura", Required: true},
		},
		Handler: func(ctx context.Context, _ *CallState, args map[string]any) (any, error) {
			id, _ := intArg(args, "invoice_id")
			status, err := deps.Billing.PaymentStatus(ctx, id)
			if err != nil {
				return nil, domainError(err)
			}
			return map[string]any{"invoice_id": id, "status": status}, nil
		},
	}, contractx.AgentFinancial)

	r.register(Definition{
		Name:   ToolListInvoices,
		Desc:   "Lista as faturas recentes do cliente identificado.",
		Params: map[string]*schema.ParameterInfo{},
		Handler: func(ctx context.Context, call *CallState, _ map[string]any) (any, error) {
			clientID, err := requireClient(call)
			if err != nil {
				return nil, err
			}
			invoices, err := deps.Billing.ListInvoices(ctx, clientID, 5)
			if err != nil {
				return nil, domainError(err)
			}
			return invoices, nil
		},
	}, contractx.AgentFinancial)
}
