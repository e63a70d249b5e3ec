package infrastructure

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
)

// MergePatch devolve o JSON merge patch (RFC 7386) que leva before a after.
// Sem before, o patch é o documento inteiro.
func MergePatch(before, after *model.Bspaoh) (json.RawMessage, error) {
	afterJSON, err := json.Marshal(after)
	if err != nil {
		return nil, fmt.Errorf("falha ao serializar documento: %w", err)
	}
	if before == nil {
		return afterJSON, nil
	}
	beforeJSON, err := json.Marshal(before)
	if err != nil {
		return nil, fmt.Errorf("falha ao serializar documento: %w", err)
	}
	patch, err := jsonpatch.CreateMergePatch(beforeJSON, afterJSON)
	if err != nil {
		return nil, fmt.Errorf("falha ao criar patch: %w", err)
	}
	return patch, nil
}

// ApplyMergePatch reconstrói um documento a partir de um estado anterior e de um patch.
func ApplyMergePatch(original *model.Bspaoh, patch []byte) (*model.Bspaoh, error) {
	base := []byte("{}")
	if original != nil {
		var err error
		if base, err = json.Marshal(original); err != nil {
			return nil, fmt.Errorf("falha ao serializar documento: %w", err)
		}
	}
	merged, err := jsonpatch.MergePatch(base, patch)
	if err != nil {
		return nil, fmt.Errorf("falha ao aplicar patch: %w", err)
	}
	var out model.Bspaoh
	if err := json.Unmarshal(merged, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// HasChanges indica se um merge patch altera alguma coisa.
func HasChanges(patch json.RawMessage) bool {
	return len(patch) > 2
}
