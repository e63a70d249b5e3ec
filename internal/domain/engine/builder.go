package engine

import (
	"github.com/Victor-armando18/service-bspaoh/internal/domain"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
)

// BuildUnparsed junta o registo persistido, o input achatado e a flag de rascunho num candidato.
// Não altera os argumentos; duas chamadas iguais dão candidatos iguais.
func BuildUnparsed(persisted *model.Bspaoh, input model.FlatInput, isDraft *bool) (*model.Bspaoh, error) {
	var candidate *model.Bspaoh
	if persisted != nil {
		c, err := persisted.Clone()
		if err != nil {
			return nil, err
		}
		candidate = c
	} else {
		candidate = &model.Bspaoh{BspaohTransporter: model.BspaohTransporter{TransporterNumber: 1}}
	}

	if err := input.Apply(candidate); err != nil {
		return nil, err
	}

	if persisted == nil && candidate.WasteType == nil {
		candidate.WasteType = model.Ptr(domain.WastePaoh)
	}
	if candidate.WastePackagings == nil {
		candidate.WastePackagings = []model.Packaging{}
	}
	if candidate.TransporterTransportPlates == nil {
		candidate.TransporterTransportPlates = []string{}
	}

	switch {
	case isDraft != nil:
		candidate.IsDraft = *isDraft
	case persisted != nil:
		candidate.IsDraft = persisted.Status == domain.StatusDraft
	default:
		candidate.IsDraft = false
	}
	return candidate, nil
}
