package interfaces

import (
	"context"
	"time"

	"github.com/Victor-armando18/service-bspaoh/internal/domain"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/engine"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
)

// RulePackLoader define o contrato para carregar os RulePacks (embutidos, disco, etc.).
type RulePackLoader interface {
	Load(ctx context.Context, version string) (engine.RulePack, error)
}

// Repository guarda os bordereaux e o respetivo log de eventos.
// Get devolve *domain.NotFoundError quando o id não existe ou o registo foi apagado.
type Repository interface {
	Get(ctx context.Context, id string) (*model.Bspaoh, error)
	Create(ctx context.Context, b *model.Bspaoh, ev domain.Event) error
	// Update só escreve se o estado persistido for expected; caso contrário devolve domain.ErrStatusConflict.
	Update(ctx context.Context, b *model.Bspaoh, expected domain.BspaohStatus, ev domain.Event) error
	Events(ctx context.Context, id string) ([]domain.Event, error)
}

// Validator é a parte do motor de que os casos de uso precisam.
type Validator interface {
	Validate(ctx context.Context, input model.Input, persisted *model.Bspaoh, vctx domain.ValidationContext) (*engine.Result, error)
	RulesVersion() string
}

type SignatureInput struct {
	Type   domain.SignatureType `json:"type"`
	Author string               `json:"author"`
	Date   *time.Time           `json:"date,omitempty"`
}

// BspaohFacade é a porta de entrada da aplicação.
type BspaohFacade interface {
	Create(ctx context.Context, userID string, input model.Input, isDraft bool) (*model.Bspaoh, error)
	Update(ctx context.Context, userID, id string, input model.Input) (*model.Bspaoh, error)
	Publish(ctx context.Context, userID, id string) (*model.Bspaoh, error)
	Duplicate(ctx context.Context, userID, id string) (*model.Bspaoh, error)
	Sign(ctx context.Context, userID, id string, sig SignatureInput) (*model.Bspaoh, error)
	Get(ctx context.Context, id string) (*model.Bspaoh, error)
	SealedFields(ctx context.Context, userID, id string) ([]string, error)
}
