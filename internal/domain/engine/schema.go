package engine

import (
	"fmt"
	"regexp"

	"github.com/Victor-armando18/service-bspaoh/internal/domain"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
)

var siretPattern = regexp.MustCompile(`^[0-9]{14}$`)

// checkFormats valida o formato dos valores presentes, independentemente da etapa.
func checkFormats(b *model.Bspaoh) []domain.Issue {
	issues := []domain.Issue{}
	add := func(f model.Field, msg string) {
		issues = append(issues, domain.Issue{Field: string(f), Path: model.PathOf(f), Message: msg})
	}

	for _, f := range []model.Field{model.EmitterCompanySiret, model.DestinationCompanySiret, model.TransporterCompanySiret} {
		if s, ok := b.Value(f).(*string); ok && s != nil && !siretPattern.MatchString(*s) {
			add(f, fmt.Sprintf("%s n'est pas un numéro de SIRET valide", *s))
		}
	}
	if v := b.TransporterCompanyVatNumber; v != nil && domain.IsFrenchVat(*v) {
		add(model.TransporterCompanyVatNumber,
			"Impossible d'utiliser le numéro de TVA pour un établissement français, veuillez renseigner son SIRET uniquement")
	}

	if c := b.WasteCode; c != nil && *c != domain.WasteCodeAnatomical {
		add(model.WasteCode, fmt.Sprintf("Le code déchet %s n'est pas autorisé, seul le code %s est accepté", *c, domain.WasteCodeAnatomical))
	}
	if t := b.WasteType; t != nil && *t != domain.WastePaoh && *t != domain.WasteFoetus {
		add(model.WasteType, fmt.Sprintf("Le type de déchet %q n'existe pas", *t))
	}
	if m := b.TransporterTransportMode; m != nil {
		switch *m {
		case domain.TransportRoad, domain.TransportRail, domain.TransportAir, domain.TransportRiver,
			domain.TransportSea, domain.TransportOther:
		default:
			add(model.TransporterTransportMode, fmt.Sprintf("Le mode de transport %q n'existe pas", *m))
		}
	}
	if s := b.DestinationReceptionAcceptationStatus; s != nil {
		switch *s {
		case domain.AcceptationAccepted, domain.AcceptationRefused, domain.AcceptationPartiallyRefused:
		default:
			add(model.DestinationReceptionAcceptationStatus, fmt.Sprintf("Le statut d'acceptation %q n'existe pas", *s))
		}
	}

	foetus := b.WasteType != nil && *b.WasteType == domain.WasteFoetus
	for _, p := range b.WastePackagings {
		switch p.Type {
		case domain.PackagingReliquaire, domain.PackagingLittleBox, domain.PackagingBigBox:
		default:
			add(model.WastePackagings, fmt.Sprintf("Le type de conditionnement %q n'existe pas", p.Type))
		}
		switch p.Consistence {
		case domain.ConsistenceSolide, domain.ConsistenceLiquide:
		default:
			add(model.WastePackagings, fmt.Sprintf("La consistance %q n'existe pas", p.Consistence))
		}
		if foetus && p.Consistence == domain.ConsistenceLiquide {
			add(model.WastePackagings, "La consistance ne peut être liquide pour ce type de déchet")
		}
		if len(p.IdentificationCodes) == 0 {
			add(model.WastePackagings, "Au moins un code est requis")
		}
		if p.Quantity < 0 {
			add(model.WastePackagings, "La quantité d'un conditionnement doit être supérieure ou égale à 0")
		}
		if p.Volume != nil && *p.Volume < 0 {
			add(model.WastePackagings, "Le volume d'un conditionnement doit être supérieur ou égal à 0")
		}
	}
	for _, pa := range b.DestinationReceptionWastePackagingsAcceptation {
		switch pa.Acceptation {
		case domain.PackagingPending, domain.PackagingAccepted, domain.PackagingRefused:
		default:
			add(model.DestinationReceptionWastePackagingsAcceptation,
				fmt.Sprintf("Le statut d'acceptation %q n'existe pas", pa.Acceptation))
		}
	}

	for _, f := range []model.Field{
		model.EmitterWasteWeightValue,
		model.DestinationReceptionWasteReceivedWeightValue,
		model.DestinationReceptionWasteRefusedWeightValue,
	} {
		if v, ok := b.Value(f).(*float64); ok && v != nil && *v < 0 {
			rule, _ := RuleFor(f)
			add(f, rule.Description()+" doit être supérieur ou égal à 0")
		}
	}
	for _, f := range []model.Field{model.EmitterWasteQuantityValue, model.DestinationReceptionWasteQuantityValue} {
		if v, ok := b.Value(f).(*int); ok && v != nil && *v < 0 {
			rule, _ := RuleFor(f)
			add(f, rule.Description()+" doit être supérieure ou égale à 0")
		}
	}
	return issues
}
