package model

import (
	"encoding/json"
	"fmt"
)

// Input é o input no formato externo (aninhado), tal como chega da API.
type Input map[string]any

// FlatInput associa cada campo presente no input ao seu valor em JSON.
// Um campo presente com valor null fica registado como "null".
type FlatInput map[Field]json.RawMessage

func ParseInput(data []byte) (Input, error) {
	if len(data) == 0 {
		return Input{}, nil
	}
	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("invalid bspaoh input: %w", err)
	}
	return in, nil
}

// Flatten converte o input aninhado para o espaço de nomes plano do registo.
// Um objeto intermédio a null torna ausentes todas as suas folhas.
func (in Input) Flatten() (FlatInput, error) {
	flat := FlatInput{}
	if in == nil {
		return flat, nil
	}
	for _, a := range accessors {
		if !a.Editable {
			continue
		}
		v, ok := lookup(in, a.Path)
		if !ok {
			continue
		}
		if a.Field == WastePackagings {
			v = withPackagingIDs(v)
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("flatten %s: %w", a.Field, err)
		}
		flat[a.Field] = raw
	}
	return flat, nil
}

func (f FlatInput) Has(field Field) bool {
	_, ok := f[field]
	return ok
}

// Apply escreve os campos presentes no registo.
func (f FlatInput) Apply(b *Bspaoh) error {
	for _, a := range accessors {
		raw, ok := f[a.Field]
		if !ok {
			continue
		}
		if err := a.Decode(b, raw); err != nil {
			return fmt.Errorf("invalid value for %s: %w", a.ExternalPath(), err)
		}
	}
	return nil
}

func lookup(in map[string]any, path []string) (any, bool) {
	var cur any = map[string]any(in)
	for _, p := range path {
		var m map[string]any
		switch t := cur.(type) {
		case map[string]any:
			m = t
		case Input:
			m = t
		default:
			return nil, false
		}
		v, exists := m[p]
		if !exists {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// Os conditionnements recebidos do input são identificados pela sua posição.
func withPackagingIDs(v any) any {
	items, ok := v.([]any)
	if !ok {
		return v
	}
	out := make([]any, len(items))
	for idx, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			out[idx] = item
			continue
		}
		cp := make(map[string]any, len(m)+1)
		for k, val := range m {
			cp[k] = val
		}
		cp["id"] = fmt.Sprintf("packaging_%d", idx)
		out[idx] = cp
	}
	return out
}
