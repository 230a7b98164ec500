package tool

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"

	contractx "github.com/dlimars/centralai/agent/contract"
	servicex "github.com/dlimars/centralai/service"
)

func registerTechnicalTools(r *Registry, deps Deps) {
	r.register(Definition{
		Name: ToolSearchKnowledge,
		Desc: "Busca soluções na base de conhecimento técnica.",
		Params: map[string]*schema.ParameterInfo{
			"query": {Type: schema.String, Desc: "Descrição do problema", Required: true},
		},
		Handler: func(ctx context.Context, _ *CallState, args map[string]any) (any, error) {
			articles := deps.Knowledge.SearchArticles(stringArg(args, "query"))
			if len(articles) == 0 {
				return nil, fmt.Errorf("nenhum artigo encontrado para este problema")
			}
			return articles, nil
		},
	}, contractx.AgentTechnical)

	r.register(Definition{
		Name:   ToolSystemStatus,
		Desc:   "Verifica o status operacional dos sistemas e serviços.",
		Params: map[string]*schema.ParameterInfo{},
		Handler: func(ctx context.Context, _ *CallState, _ map[string]any) (any, error) {
			return deps.Knowledge.SystemStatus(), nil
		},
	}, contractx.AgentTechnical)

	r.register(Definition{
		Name:   ToolListOpenTickets,
		Desc:   "Lista os chamados abertos do cliente identificado. Use no início do atendimento.",
		Params: map[string]*schema.ParameterInfo{},
		Handler: func(ctx context.Context, call *CallState, _ map[string]any) (any, error) {
			clientID, err := requireClient(call)
			if err != nil {
				return nil, err
			}
			tickets, err := deps.Tickets.ListOpen(ctx, clientID)
			if err != nil {
				return nil, domainError(err)
			}
			if len(tickets) == 0 {
				return map[string]any{"open_tickets": []servicex.Ticket{}, "message": "o cliente não possui chamados abertos"}, nil
			}
			return tickets, nil
		},
	}, contractx.AgentTechnical)

	r.register(Definition{
		Name: ToolCreateTicket,
		Desc: "Abre um chamado para o cliente identificado. Use apenas se não houver chamado aberto para o mesmo problema.",
		Params: map[string]*schema.ParameterInfo{
			"description": {Type: schema.String, Desc: "Descrição detalhada do problema", Required: true},
			"priority":    {Type: schema.String, Desc: "Prioridade: baixa, normal ou alta", Required: false},
			"category":    {Type: schema.String, Desc: "Categoria do chamado (tecnico, comercial, financeiro)", Required: false},
		},
		Handler: func(ctx context.Context, call *CallState, args map[string]any) (any, error) {
			clientID, err := requireClient(call)
			if err != nil {
				return nil, err
			}
			category := stringArg(args, "category")
			if category == "" {
				category = "tecnico"
			}
			ticket, err := deps.Tickets.Open(ctx, clientID, stringArg(args, "description"), stringArg(args, "priority"), category)
			if err != nil {
				return nil, domainError(err)
			}
			return map[string]any{
				"ticket":              ticket,
				"estimated_wait_time": "4 horas",
			}, nil
		},
	}, contractx.AgentTechnical, contractx.AgentSales)

	r.register(Definition{
		Name: ToolUpdateTicket,
		Desc: "Atualiza um chamado existente: status, prioridade ou nota.",
		Params: map[string]*schema.ParameterInfo{
			"ticket_id": {Type: schema.Integer, Desc: "Número do chamado", Required: true},
			"status":    {Type: schema.String, Desc: "Novo status (ex: resolvido)", Required: false},
			"priority":  {Type: schema.String, Desc: "Nova prioridade (ex: alta)", Required: false},
			"note":      {Type: schema.String, Desc: "Nota ou observação a registrar", Required: false},
		},
		Handler: func(ctx context.Context, _ *CallState, args map[string]any) (any, error) {
			id, _ := intArg(args, "ticket_id")

			var upd servicex.TicketUpdate
			if v := stringArg(args, "status"); v != "" {
				upd.Status = &v
			}
			if v := stringArg(args, "priority"); v != "" {
				upd.Priority = &v
			}
			if v := stringArg(args, "note"); v != "" {
				upd.Note = &v
			}

			if upd.Status == nil && upd.Priority == nil && upd.Note == nil {
				return nil, fmt.Errorf("informe ao menos um campo para atualizar")
			}

			ticket, err := deps.Tickets.Update(ctx, id, upd)
			if err != nil {
				return nil, domainError(err)
			}
			return ticket, nil
		},
	}, contractx.AgentTechnical)
}
