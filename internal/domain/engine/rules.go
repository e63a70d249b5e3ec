package engine

import (
	"unicode"

	"github.com/Victor-armando18/service-bspaoh/internal/domain"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
)

const recepisseSuffix = "L'établissement doit renseigner son récépissé dans Trackdéchets"

// FieldCheck diz a partir de que assinatura uma condição se aplica a um campo.
type FieldCheck struct {
	From   domain.SignatureType
	When   PredicateID
	Refine RefinementID
	Suffix string
}

// EditionRule descreve quando um campo fica selado e quando passa a ser obrigatório.
// Required nil significa que o campo nunca é obrigatório.
type EditionRule struct {
	Field        model.Field
	ReadableName string
	Sealed       FieldCheck
	Required     *FieldCheck
}

func sealedFrom(t domain.SignatureType) FieldCheck { return FieldCheck{From: t} }

func requiredFrom(t domain.SignatureType) *FieldCheck { return &FieldCheck{From: t} }

var editionRules = []EditionRule{
	{Field: model.WasteAdr, ReadableName: "Le code ADR", Sealed: sealedFrom(domain.SignatureEmission)},
	{Field: model.WasteType, ReadableName: "Le type de déchet", Sealed: sealedFrom(domain.SignatureEmission), Required: requiredFrom(domain.SignatureEmission)},
	{Field: model.WasteCode, ReadableName: "Le code famille", Sealed: sealedFrom(domain.SignatureEmission), Required: requiredFrom(domain.SignatureEmission)},
	{
		Field:        model.WastePackagings,
		ReadableName: "Le conditionnement",
		Sealed:       sealedFrom(domain.SignatureEmission),
		Required:     &FieldCheck{From: domain.SignatureEmission, Refine: RefinePackagingsNotEmpty},
	},

	{Field: model.EmitterCompanyName, ReadableName: "Le nom de l'entreprise émettrice", Sealed: sealedFrom(domain.SignatureEmission), Required: requiredFrom(domain.SignatureEmission)},
	{Field: model.EmitterCompanySiret, ReadableName: "Le SIRET de l'entreprise émettrice", Sealed: sealedFrom(domain.SignatureEmission), Required: requiredFrom(domain.SignatureEmission)},
	{Field: model.EmitterCompanyAddress, ReadableName: "L'adresse de l'entreprise émettrice", Sealed: sealedFrom(domain.SignatureEmission), Required: requiredFrom(domain.SignatureEmission)},
	{Field: model.EmitterCompanyContact, ReadableName: "Le nom de contact de l'entreprise émettrice", Sealed: sealedFrom(domain.SignatureEmission), Required: requiredFrom(domain.SignatureEmission)},
	{Field: model.EmitterCompanyPhone, ReadableName: "Le téléphone de l'entreprise émettrice", Sealed: sealedFrom(domain.SignatureEmission), Required: requiredFrom(domain.SignatureEmission)},
	{Field: model.EmitterCompanyMail, ReadableName: "L'email de l'entreprise émettrice", Sealed: sealedFrom(domain.SignatureEmission), Required: requiredFrom(domain.SignatureEmission)},
	{Field: model.EmitterCustomInfo, ReadableName: "Les champs d'informations complémentaires de l'entreprise émettrice", Sealed: sealedFrom(domain.SignatureEmission)},
	{Field: model.EmitterPickupSiteName, ReadableName: "Le nom de l'adresse de chantier ou de collecte", Sealed: sealedFrom(domain.SignatureEmission)},
	{Field: model.EmitterPickupSiteAddress, ReadableName: "L'adresse de collecte ou de chantier", Sealed: sealedFrom(domain.SignatureEmission)},
	{Field: model.EmitterPickupSiteCity, ReadableName: "La ville de l'adresse de collecte ou de chantier", Sealed: sealedFrom(domain.SignatureEmission)},
	{Field: model.EmitterPickupSitePostalCode, ReadableName: "Le code postal de l'adresse de collecte ou de chantier", Sealed: sealedFrom(domain.SignatureEmission)},
	{Field: model.EmitterPickupSiteInfos, ReadableName: "Les informations de l'adresse de collecte", Sealed: sealedFrom(domain.SignatureEmission)},
	{
		Field:        model.EmitterWasteWeightValue,
		ReadableName: "Le poids du déchet émis",
		Sealed:       sealedFrom(domain.SignatureEmission),
		Required:     &FieldCheck{From: domain.SignatureEmission, When: WhenEmitterWeightIsEstimateSet},
	},
	{Field: model.EmitterWasteWeightIsEstimate, ReadableName: "La quantité émise", Sealed: sealedFrom(domain.SignatureEmission)},
	{
		Field:        model.EmitterWasteQuantityValue,
		ReadableName: "La quantité émise (nombre)",
		Sealed:       sealedFrom(domain.SignatureEmission),
		Required:     &FieldCheck{From: domain.SignatureEmission, When: WhenNoEmitterWeight},
	},

	{Field: model.DestinationCompanyName, ReadableName: "Le nom de l'entreprise de destination", Sealed: FieldCheck{From: domain.SignatureEmission, When: WhenDestinationSealed}, Required: requiredFrom(domain.SignatureEmission)},
	{Field: model.DestinationCompanySiret, ReadableName: "Le SIRET de l'entreprise de destination", Sealed: FieldCheck{From: domain.SignatureEmission, When: WhenDestinationSealed}, Required: requiredFrom(domain.SignatureEmission)},
	{Field: model.DestinationCompanyAddress, ReadableName: "L'adresse de l'entreprise de destination", Sealed: FieldCheck{From: domain.SignatureEmission, When: WhenDestinationSealed}, Required: requiredFrom(domain.SignatureEmission)},
	{Field: model.DestinationCompanyContact, ReadableName: "Le nom de contact de l'entreprise de destination", Sealed: FieldCheck{From: domain.SignatureEmission, When: WhenDestinationSealed}, Required: requiredFrom(domain.SignatureEmission)},
	{Field: model.DestinationCompanyPhone, ReadableName: "Le téléphone de l'entreprise de destination", Sealed: FieldCheck{From: domain.SignatureEmission, When: WhenDestinationSealed}, Required: requiredFrom(domain.SignatureEmission)},
	{Field: model.DestinationCompanyMail, ReadableName: "L'email de l'entreprise de destination", Sealed: FieldCheck{From: domain.SignatureEmission, When: WhenDestinationSealed}, Required: requiredFrom(domain.SignatureEmission)},
	{Field: model.DestinationCustomInfo, ReadableName: "Les champs d'informations complémentaires de l'entreprise de destination", Sealed: sealedFrom(domain.SignatureOperation)},
	{Field: model.DestinationCap, ReadableName: "Le CAP du destinataire", Sealed: sealedFrom(domain.SignatureTransport)},

	{
		Field:        model.DestinationReceptionWasteReceivedWeightValue,
		ReadableName: "Le poids du déchet reçu",
		Sealed:       sealedFrom(domain.SignatureReception),
		Required:     &FieldCheck{From: domain.SignatureReception, When: WhenNoReceptionQuantity},
	},
	{Field: model.DestinationReceptionWasteAcceptedWeightValue, ReadableName: "Le poids du déchet accepté", Sealed: sealedFrom(domain.SignatureReception)},
	{Field: model.DestinationReceptionWasteRefusedWeightValue, ReadableName: "Le poids du déchet refusé", Sealed: sealedFrom(domain.SignatureReception)},
	{Field: model.DestinationReceptionWasteQuantityValue, ReadableName: "La quantité remise (nombre)", Sealed: sealedFrom(domain.SignatureReception)},
	{Field: model.DestinationReceptionAcceptationStatus, ReadableName: "Le champ d'acceptation du déchet", Sealed: sealedFrom(domain.SignatureReception), Required: requiredFrom(domain.SignatureReception)},
	{
		Field:        model.DestinationReceptionWasteRefusalReason,
		ReadableName: "La raison du refus",
		Sealed:       sealedFrom(domain.SignatureReception),
		Required:     &FieldCheck{From: domain.SignatureReception, When: WhenRefusedOrPartiallyRefused},
	},
	{Field: model.DestinationReceptionDate, ReadableName: "La date de réception", Sealed: sealedFrom(domain.SignatureReception), Required: requiredFrom(domain.SignatureReception)},
	{Field: model.DestinationReceptionWastePackagingsAcceptation, ReadableName: "Le detail des conditionnements reçus", Sealed: sealedFrom(domain.SignatureReception), Required: requiredFrom(domain.SignatureReception)},
	{Field: model.DestinationOperationCode, ReadableName: "Le code d'opération de la destination", Sealed: sealedFrom(domain.SignatureOperation), Required: requiredFrom(domain.SignatureOperation)},
	{
		Field:    model.DestinationOperationDate,
		Sealed:   sealedFrom(domain.SignatureOperation),
		Required: &FieldCheck{From: domain.SignatureOperation, When: WhenNotRefused},
	},

	{Field: model.TransporterCompanyName, ReadableName: "Le nom du transporteur", Sealed: sealedFrom(domain.SignatureTransport), Required: requiredFrom(domain.SignatureTransport)},
	{
		Field:        model.TransporterCompanySiret,
		ReadableName: "Le SIRET du transporteur",
		Sealed:       sealedFrom(domain.SignatureTransport),
		Required:     &FieldCheck{From: domain.SignatureEmission, When: WhenNoTransporterVat},
	},
	{Field: model.TransporterTakenOverAt, ReadableName: "La date de prise en charge par le transporteur", Sealed: sealedFrom(domain.SignatureTransport), Required: requiredFrom(domain.SignatureTransport)},
	{Field: model.TransporterCompanyAddress, ReadableName: "L'adresse du transporteur", Sealed: sealedFrom(domain.SignatureTransport), Required: requiredFrom(domain.SignatureTransport)},
	{Field: model.TransporterCompanyContact, ReadableName: "Le nom de contact du transporteur", Sealed: sealedFrom(domain.SignatureTransport), Required: requiredFrom(domain.SignatureTransport)},
	{Field: model.TransporterCompanyPhone, ReadableName: "Le téléphone du transporteur", Sealed: sealedFrom(domain.SignatureTransport), Required: requiredFrom(domain.SignatureTransport)},
	{Field: model.TransporterCompanyMail, ReadableName: "L'email du transporteur", Sealed: sealedFrom(domain.SignatureTransport), Required: requiredFrom(domain.SignatureTransport)},
	{
		Field:        model.TransporterCompanyVatNumber,
		ReadableName: "Le numéro de TVA du transporteur",
		Sealed:       sealedFrom(domain.SignatureTransport),
		Required:     &FieldCheck{From: domain.SignatureTransport, When: WhenNoTransporterSiret},
	},
	{Field: model.TransporterCustomInfo, ReadableName: "Les champs d'informations complémentaires du transporteur", Sealed: sealedFrom(domain.SignatureTransport)},
	{Field: model.TransporterRecepisseIsExempted, ReadableName: "L'exemption de récépissé du transporteur", Sealed: sealedFrom(domain.SignatureTransport), Required: requiredFrom(domain.SignatureTransport)},
	{
		Field:        model.TransporterRecepisseNumber,
		ReadableName: "Le numéro de récépissé du transporteur",
		Sealed:       sealedFrom(domain.SignatureTransport),
		Required:     &FieldCheck{From: domain.SignatureTransport, When: WhenTransporterRecepisseRequired, Suffix: recepisseSuffix},
	},
	{
		Field:        model.TransporterRecepisseDepartment,
		ReadableName: "Le département de récépissé du transporteur",
		Sealed:       sealedFrom(domain.SignatureTransport),
		Required:     &FieldCheck{From: domain.SignatureTransport, When: WhenTransporterRecepisseRequired, Suffix: recepisseSuffix},
	},
	{
		Field:        model.TransporterRecepisseValidityLimit,
		ReadableName: "La date de validaté du récépissé du transporteur",
		Sealed:       sealedFrom(domain.SignatureTransport),
		Required:     &FieldCheck{From: domain.SignatureTransport, When: WhenTransporterRecepisseRequired, Suffix: recepisseSuffix},
	},
	{Field: model.TransporterTransportMode, ReadableName: "Le mode de transport", Sealed: sealedFrom(domain.SignatureTransport), Required: requiredFrom(domain.SignatureTransport)},
	{
		Field:        model.TransporterTransportPlates,
		ReadableName: "La plaque d'immatriculation",
		Sealed:       sealedFrom(domain.SignatureTransport),
		Required:     &FieldCheck{From: domain.SignatureTransport, When: WhenRoadTransport, Refine: RefinePlatesNotEmpty},
	},
}

// EditionRules devolve uma cópia da tabela de regras.
func EditionRules() []EditionRule {
	out := make([]EditionRule, len(editionRules))
	copy(out, editionRules)
	return out
}

func RuleFor(f model.Field) (EditionRule, bool) {
	for _, r := range editionRules {
		if r.Field == f {
			return r, true
		}
	}
	return EditionRule{}, false
}

func (r EditionRule) Description() string {
	if r.ReadableName == "" {
		return "Le champ " + string(r.Field)
	}
	return capitalize(r.ReadableName)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	rs := []rune(s)
	rs[0] = unicode.ToUpper(rs[0])
	return string(rs)
}
