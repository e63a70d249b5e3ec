package engine

import (
	"strings"

	"github.com/Victor-armando18/service-bspaoh/internal/domain"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
)

// PredicateID identifica uma condição de regra. O valor vazio é sempre verdadeiro.
type PredicateID string

const (
	WhenAlways                       PredicateID = ""
	WhenEmitterWeightIsEstimateSet   PredicateID = "emitterWeightIsEstimateSet"
	WhenNoEmitterWeight              PredicateID = "noEmitterWeight"
	WhenDestinationSealed            PredicateID = "destinationSealed"
	WhenRefusedOrPartiallyRefused    PredicateID = "refusedOrPartiallyRefused"
	WhenNotRefused                   PredicateID = "notRefused"
	WhenNoTransporterVat             PredicateID = "noTransporterVat"
	WhenNoTransporterSiret           PredicateID = "noTransporterSiret"
	WhenTransporterRecepisseRequired PredicateID = "transporterRecepisseRequired"
	WhenRoadTransport                PredicateID = "roadTransport"
	WhenNoReceptionQuantity          PredicateID = "noReceptionQuantity"
)

// RefinementID identifica uma validação própria de campos do tipo lista.
type RefinementID string

const (
	RefineNone               RefinementID = ""
	RefinePackagingsNotEmpty RefinementID = "packagingsNotEmpty"
	RefinePlatesNotEmpty     RefinementID = "platesNotEmpty"
)

func evalPredicate(id PredicateID, b *model.Bspaoh, uf domain.UserFunctions) bool {
	switch id {
	case WhenAlways:
		return true
	case WhenEmitterWeightIsEstimateSet:
		return b.EmitterWasteWeightIsEstimate != nil
	case WhenNoEmitterWeight:
		return b.EmitterWasteWeightValue == nil || *b.EmitterWasteWeightValue == 0
	case WhenDestinationSealed:
		// o emissor pode corrigir o destino enquanto o transportador não assinou
		return !(uf.IsEmitter && b.TransporterTransportSignatureDate == nil)
	case WhenRefusedOrPartiallyRefused:
		s := b.DestinationReceptionAcceptationStatus
		return s != nil && (*s == domain.AcceptationRefused || *s == domain.AcceptationPartiallyRefused)
	case WhenNotRefused:
		s := b.DestinationReceptionAcceptationStatus
		return s == nil || *s != domain.AcceptationRefused
	case WhenNoTransporterVat:
		return blank(b.TransporterCompanyVatNumber)
	case WhenNoTransporterSiret:
		return blank(b.TransporterCompanySiret)
	case WhenTransporterRecepisseRequired:
		exempted := b.TransporterRecepisseIsExempted != nil && *b.TransporterRecepisseIsExempted
		vat := ""
		if b.TransporterCompanyVatNumber != nil {
			vat = *b.TransporterCompanyVatNumber
		}
		return !exempted && isRoad(b) && !domain.IsForeignVat(vat)
	case WhenRoadTransport:
		return isRoad(b)
	case WhenNoReceptionQuantity:
		return b.DestinationReceptionWasteQuantityValue == nil
	}
	return false
}

// applyRefinement corre a validação de lista associada a uma regra.
func applyRefinement(id RefinementID, b *model.Bspaoh, issues *[]domain.Issue) {
	switch id {
	case RefinePackagingsNotEmpty:
		if b.WastePackagings != nil && len(b.WastePackagings) == 0 {
			*issues = append(*issues, domain.Issue{
				Field:   string(model.WastePackagings),
				Path:    model.PathOf(model.WastePackagings),
				Message: "Le conditionnement est obligatoire",
			})
		}
	case RefinePlatesNotEmpty:
		if b.TransporterTransportPlates == nil {
			return
		}
		// basta uma plaque não vazia; espaços contam como valor
		for _, p := range b.TransporterTransportPlates {
			if p != "" {
				return
			}
		}
		*issues = append(*issues, domain.Issue{
			Field:   string(model.TransporterTransportPlates),
			Path:    []string{string(model.TransporterTransportPlates)},
			Message: "La plaque d'immatriculation est requise",
		})
	}
}

func isRoad(b *model.Bspaoh) bool {
	return b.TransporterTransportMode != nil && *b.TransporterTransportMode == domain.TransportRoad
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
