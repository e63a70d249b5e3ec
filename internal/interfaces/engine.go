package interfaces

import (
	"context"
	"fmt"

	"github.com/go-kit/log"

	"github.com/Victor-armando18/service-bspaoh/internal/domain"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/engine"
	"github.com/Victor-armando18/service-bspaoh/internal/infrastructure"
	"github.com/Victor-armando18/service-bspaoh/internal/infrastructure/diff"
	"github.com/Victor-armando18/service-bspaoh/internal/infrastructure/jsonlogic"
)

// NewEngine monta o motor de validação com o rule pack embutido da versão pedida.
func NewEngine(ctx context.Context, rulesVersion string, directory domain.CompanyDirectory, logger log.Logger) (*engine.Engine, error) {
	return NewEngineWithLoader(ctx, infrastructure.NewEmbeddedRuleLoader(), rulesVersion, directory, logger)
}

func NewEngineWithLoader(ctx context.Context, loader RulePackLoader, rulesVersion string, directory domain.CompanyDirectory, logger log.Logger) (*engine.Engine, error) {
	pack, err := loader.Load(ctx, rulesVersion)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	return engine.New(pack, jsonlogic.NewExecutor(), diff.New(), directory, logger), nil
}
