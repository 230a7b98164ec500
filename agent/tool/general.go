package tool

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"

	contractx "github.com/dlimars/centralai/agent/contract"
)

func registerGeneralTools(r *Registry, deps Deps) {
	r.register(Definition{
		Name: ToolSearchFAQ,
		Desc: "Busca respostas para perguntas frequentes (FAQ).",
		Params: map[string]*schema.ParameterInfo{
			"query": {Type: schema.String, Desc: "Pergunta ou termo de busca", Required: true},
		},
		Handler: func(ctx context.Context, _ *CallState, args map[string]any) (any, error) {
			results := deps.Knowledge.SearchFAQ(stringArg(args, "query"))
			if len(results) == 0 {
				return nil, fmt.Errorf("nenhuma resposta encontrada na FAQ")
			}
			return results, nil
		},
	}, contractx.AgentGeneral)

	r.register(Definition{
		Name: ToolCompanyInfo,
		Desc: "Obtém informações institucionais: horário, endereço, contato.",
		Params: map[string]*schema.ParameterInfo{
			"topic": {Type: schema.String, Desc: "Tópico desejado", Required: true},
		},
		Handler: func(ctx context.Context, _ *CallState, args map[string]any) (any, error) {
			return map[string]any{"info": deps.Knowledge.CompanyInfo(stringArg(args, "topic"))}, nil
		},
	}, contractx.AgentGeneral)
}
