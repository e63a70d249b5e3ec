package engine

import (
	"context"

	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
)

// RuleExecutor avalia uma regra JsonLogic sobre um conjunto de dados.
type RuleExecutor interface {
	Execute(ctx context.Context, logic map[string]any, data map[string]any) (any, error)
}

// Differ calcula os campos cujo valor muda entre o input e o registo persistido.
type Differ interface {
	UpdatedFields(input model.FlatInput, persisted *model.Bspaoh) ([]model.Field, error)
}
