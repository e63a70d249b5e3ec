package readiness

import (
	"context"
	"errors"

	"github.com/Victor-armando18/service-bspaoh/internal/domain"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
	"github.com/Victor-armando18/service-bspaoh/internal/interfaces"
)

// UseCase diz que problemas um bordereau levantaria se fosse assinado numa dada etapa.
type UseCase struct {
	Repository interfaces.Repository
	Validator  interfaces.Validator
}

type Report struct {
	ID           string               `json:"id"`
	Stage        domain.SignatureType `json:"stage"`
	Ready        bool                 `json:"ready"`
	Issues       []domain.Issue       `json:"issues"`
	RulesVersion string               `json:"rulesVersion"`
}

func (u *UseCase) Check(ctx context.Context, id string, stage domain.SignatureType) (*Report, error) {
	b, err := u.Repository.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	report := &Report{ID: id, Stage: stage, Issues: []domain.Issue{}, RulesVersion: u.Validator.RulesVersion()}

	_, err = u.Validator.Validate(ctx, model.Input{}, b, domain.ValidationContext{CurrentSignatureType: stage})
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		report.Issues = verr.Issues
	case err != nil:
		return nil, err
	default:
		report.Ready = true
	}
	return report, nil
}
