package persona

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	contractx "github.com/dlimars/centralai/agent/contract"
	toolx "github.com/dlimars/centralai/agent/tool"
)

// maxToolRounds bounds the generate/execute loop of one turn. A model that
// keeps requesting tools past this point is stuck; the turn fails instead of
// spinning.
const maxToolRounds = 8

// Responder runs one persona: system prompt, bound tool subset and the
// bounded tool-calling loop around the chat model.
type Responder struct {
	persona  Persona
	generate func(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error)
	tools    *toolx.Registry
	allowed  map[string]struct{}
}

var _ contractx.Responder = (*Responder)(nil)

// NewResponder binds the persona's tool catalog to chatModel.
func NewResponder(persona Persona, chatModel einomodel.ToolCallingChatModel, tools *toolx.Registry) (*Responder, error) {
	catalog := tools.Catalog(persona.Name)
	bound, err := chatModel.WithTools(catalog)
	if err != nil {
		return nil, fmt.Errorf("%w: bind tools for agent=%s: %v", contractx.ErrModelInvoke, persona.Name, err)
	}
	return &Responder{
		persona:  persona,
		generate: bound.Generate,
		tools:    tools,
		allowed:  tools.Allowed(persona.Name),
	}, nil
}

// Respond produces the persona's reply to message. Tool calls requested by
// the model are validated, executed and fed back as tool messages; handler
// failures come back as error strings inside the result payload so the model
// can phrase them, they never abort the turn.
func (r *Responder) Respond(ctx context.Context, message string, actx contractx.Context) (string, error) {
	call := toolx.NewCallState(actx)
	messages := r.openingMessages(message, actx)

	for round := 0; round < maxToolRounds; round++ {
		out, err := r.generate(ctx, messages)
		if err != nil {
			return "", fmt.Errorf("%w: agent=%s generate: %v", contractx.ErrModelInvoke, r.persona.Name, err)
		}
		if out == nil {
			return "", fmt.Errorf("%w: agent=%s returned no message", contractx.ErrSchemaViolation, r.persona.Name)
		}

		if len(out.ToolCalls) == 0 {
			content := strings.TrimSpace(out.Content)
			if content == "" {
				return "", fmt.Errorf("%w: agent=%s returned empty reply", contractx.ErrSchemaViolation, r.persona.Name)
			}
			return content, nil
		}

		messages = append(messages, out)
		for _, tc := range out.ToolCalls {
			result := r.runToolCall(ctx, call, tc)
			payload, err := json.Marshal(result)
			if err != nil {
				payload = []byte(fmt.Sprintf(`{"tool":%q,"error":"falha ao serializar resultado"}`, result.Tool))
			}
			messages = append(messages, schema.ToolMessage(string(payload), tc.ID))
		}
	}

	return "", fmt.Errorf("%w: agent=%s exceeded %d tool rounds", contractx.ErrToolLoopExceeded, r.persona.Name, maxToolRounds)
}

func (r *Responder) runToolCall(ctx context.Context, call *toolx.CallState, tc schema.ToolCall) contractx.ToolResult {
	name := strings.TrimSpace(tc.Function.Name)
	if name == "" {
		return contractx.ToolResult{Tool: name, Error: "chamada de ferramenta sem nome"}
	}
	if _, ok := r.allowed[name]; !ok {
		log.Warn().Str("agent", string(r.persona.Name)).Str("tool", name).Msg("persona: model requested tool outside its catalog")
		return contractx.ToolResult{Tool: name, Error: fmt.Sprintf("ferramenta não disponível para este agente: %s", name)}
	}

	args := map[string]any{}
	if raw := strings.TrimSpace(tc.Function.Arguments); raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return contractx.ToolResult{Tool: name, Error: fmt.Sprintf("argumentos inválidos para %s", name)}
		}
	}

	return r.tools.Execute(ctx, call, name, args)
}

// openingMessages renders the system prompt, the caller context note and the
// trailing history window followed by the current user message.
func (r *Responder) openingMessages(message string, actx contractx.Context) []*schema.Message {
	history := actx.History()
	messages := make([]*schema.Message, 0, len(history)+3)
	messages = append(messages, schema.SystemMessage(r.persona.SystemPrompt))

	if note := contextNote(actx); note != "" {
		messages = append(messages, schema.SystemMessage(note))
	}
	for _, turn := range history {
		switch turn.Role {
		case contractx.RoleAssistant:
			messages = append(messages, schema.AssistantMessage(turn.Content, nil))
		default:
			messages = append(messages, schema.UserMessage(turn.Content))
		}
	}
	return append(messages, schema.UserMessage(message))
}

// contextNote serializes the caller-supplied hints (minus the history, which
// is already rendered as messages) for the model.
func contextNote(actx contractx.Context) string {
	extra := actx.WithoutHistory()
	delete(extra, contractx.CtxSessionID)
	if len(extra) == 0 {
		return ""
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("Contexto do atendimento:")
	for _, k := range keys {
		fmt.Fprintf(&b, "\n- %s: %v", k, extra[k])
	}
	return b.String()
}
