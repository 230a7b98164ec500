package tool

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	contractx "github.com/dlimars/centralai/agent/contract"
)

// CallState is the mutable slot some tools use to remember which customer
// was resolved mid-conversation. It is created fresh for every agent turn
// and discarded with it; it must never live on a shared agent instance.
type CallState struct {
	ClientID    int64
	ClientEmail string
}

// NewCallState seeds the per-turn state from the request context.
func NewCallState(actx contractx.Context) *CallState {
	call := &CallState{ClientEmail: actx.ClientEmail()}
	if id, ok := actx.ClientID(); ok {
		call.ClientID = id
	}
	return call
}

// Handler executes one tool invocation. A returned error is diagnostic only;
// Execute converts it into a ToolResult error string and never lets it
// escape to the model loop.
type Handler func(ctx context.Context, call *CallState, args map[string]any) (any, error)

// Definition describes one callable tool: what the model sees (name,
// description, parameter schema) plus the handler behind it.
type Definition struct {
	Name    string
	Desc    string
	Params  map[string]*schema.ParameterInfo
	Handler Handler
}

// Registry holds every tool definition and the per-agent catalogs.
type Registry struct {
	defs     map[string]Definition
	catalogs map[contractx.AgentName][]string
}

func newRegistry() *Registry {
	return &Registry{
		defs:     make(map[string]Definition),
		catalogs: make(map[contractx.AgentName][]string),
	}
}

func (r *Registry) register(def Definition, agents ...contractx.AgentName) {
	r.defs[def.Name] = def
	for _, agent := range agents {
		r.catalogs[agent] = append(r.catalogs[agent], def.Name)
	}
}

// Catalog renders the tool subset bound to agent as the schema handed to the
// model.
func (r *Registry) Catalog(agent contractx.AgentName) []*schema.ToolInfo {
	names := r.catalogs[agent]
	infos := make([]*schema.ToolInfo, 0, len(names))
	for _, name := range names {
		def, ok := r.defs[name]
		if !ok {
			continue
		}
		infos = append(infos, &schema.ToolInfo{
			Name:        def.Name,
			Desc:        def.Desc,
			ParamsOneOf: schema.NewParamsOneOfByParams(def.Params),
		})
	}
	return infos
}

// Allowed returns the set of tool names agent may invoke.
func (r *Registry) Allowed(agent contractx.AgentName) map[string]struct{} {
	allowed := make(map[string]struct{}, len(r.catalogs[agent]))
	for _, name := range r.catalogs[agent] {
		allowed[name] = struct{}{}
	}
	return allowed
}

// Execute validates the arguments against the declared schema and runs the
// handler. It never returns a Go error to the caller: every failure becomes
// a short structured error string the model can phrase for the user.
func (r *Registry) Execute(ctx context.Context, call *CallState, name string, args map[string]any) contractx.ToolResult {
	def, ok := r.defs[name]
	if !ok {
		return contractx.ToolResult{Tool: name, Error: fmt.Sprintf("ferramenta desconhecida: %s", name)}
	}

	coerced, err := coerceArgs(def.Params, args)
	if err != nil {
		return contractx.ToolResult{Tool: name, Error: err.Error()}
	}

	result, err := def.Handler(ctx, call, coerced)
	if err != nil {
		log.Debug().Str("tool", name).Err(err).Msg("tool handler returned domain error")
		return contractx.ToolResult{Tool: name, Error: err.Error()}
	}
	return contractx.ToolResult{Tool: name, Result: result}
}

// coerceArgs checks required parameters and normalizes model-supplied values
// to the declared types. Models frequently send numbers as strings and ids
// as floats; both are accepted.
func coerceArgs(params map[string]*schema.ParameterInfo, args map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(args))

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		info := params[name]
		raw, present := args[name]
		if !present || raw == nil {
			if info.Required {
				return nil, fmt.Errorf("argumento obrigatório ausente: %s", name)
			}
			continue
		}

		value, err := coerceValue(info.Type, raw)
		if err != nil {
			return nil, fmt.Errorf("argumento %s inválido: %v", name, err)
		}
		out[name] = value
	}
	return out, nil
}

func coerceValue(t schema.DataType, raw any) (any, error) {
	switch t {
	case schema.String:
		switch v := raw.(type) {
		case string:
			return v, nil
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), nil
		}
		return nil, fmt.Errorf("esperava texto, recebeu %T", raw)
	case schema.Integer:
		switch v := raw.(type) {
		case float64:
			if v != math.Trunc(v) {
				return nil, fmt.Errorf("esperava inteiro, recebeu %v", v)
			}
			return int64(v), nil
		case int64:
			return v, nil
		case int:
			return int64(v), nil
		case string:
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("esperava inteiro, recebeu %q", v)
			}
			return n, nil
		}
		return nil, fmt.Errorf("esperava inteiro, recebeu %T", raw)
	case schema.Number:
		switch v := raw.(type) {
		case float64:
			return v, nil
		case int64:
			return float64(v), nil
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("esperava número, recebeu %q", v)
			}
			return f, nil
		}
		return nil, fmt.Errorf("esperava número, recebeu %T", raw)
	case schema.Boolean:
		if v, ok := raw.(bool); ok {
			return v, nil
		}
		return nil, fmt.Errorf("esperava booleano, recebeu %T", raw)
	}
	return raw, nil
}

func stringArg(args map[string]any, name string) string {
	v, _ := args[name].(string)
	return strings.TrimSpace(v)
}

func intArg(args map[string]any, name string) (int64, bool) {
	v, ok := args[name].(int64)
	return v, ok
}
