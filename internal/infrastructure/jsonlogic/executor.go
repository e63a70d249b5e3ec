package jsonlogic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/diegoholiveira/jsonlogic/v3"
)

var ErrRuleExecutionFailed = errors.New("rule execution failed")

// Operator é um operador fora do vocabulário JsonLogic, aplicado aos argumentos já avaliados.
type Operator func(args ...any) (any, error)

// Executor avalia regras JsonLogic. Operadores customizados só são reconhecidos na raiz da regra.
type Executor struct {
	customOps map[string]Operator
}

func NewExecutor() *Executor {
	e := &Executor{customOps: map[string]Operator{}}
	e.RegisterCustomOperator("round", Round)
	return e
}

func (e *Executor) RegisterCustomOperator(name string, op Operator) {
	e.customOps[name] = op
}

func (e *Executor) Execute(ctx context.Context, logic map[string]any, data map[string]any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(logic) == 1 {
		for name, raw := range logic {
			if op, ok := e.customOps[name]; ok {
				return e.applyCustom(name, op, raw, data)
			}
		}
	}
	return apply(logic, data)
}

func (e *Executor) applyCustom(name string, op Operator, raw any, data map[string]any) (any, error) {
	args, ok := raw.([]any)
	if !ok {
		args = []any{raw}
	}
	params := make([]any, 0, len(args))
	for _, arg := range args {
		v, err := e.evalArg(arg, data)
		if err != nil {
			return nil, err
		}
		params = append(params, v)
	}
	out, err := op(params...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRuleExecutionFailed, name, err)
	}
	return out, nil
}

func (e *Executor) evalArg(arg any, data map[string]any) (any, error) {
	m, ok := arg.(map[string]any)
	if !ok {
		return arg, nil
	}
	return e.Execute(context.Background(), m, data)
}

func apply(logic map[string]any, data map[string]any) (any, error) {
	ruleJSON, err := json.Marshal(logic)
	if err != nil {
		return nil, fmt.Errorf("%w: encode rule: %v", ErrRuleExecutionFailed, err)
	}
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: encode data: %v", ErrRuleExecutionFailed, err)
	}

	var out bytes.Buffer
	if err := jsonlogic.Apply(bytes.NewReader(ruleJSON), bytes.NewReader(dataJSON), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRuleExecutionFailed, err)
	}
	res := bytes.TrimSpace(out.Bytes())
	if len(res) == 0 || string(res) == "null" {
		return nil, nil
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(res))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: decode result: %v", ErrRuleExecutionFailed, err)
	}
	return finalizeValue(v), nil
}

func finalizeValue(v any) any {
	if n, ok := v.(json.Number); ok {
		if f, err := n.Float64(); err == nil {
			return f
		}
	}
	return v
}
