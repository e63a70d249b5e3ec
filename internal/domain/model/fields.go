package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Victor-armando18/service-bspaoh/internal/domain"
)

// Field é o nome técnico (plano) de um campo do bordereau.
type Field string

const (
	WasteCode       Field = "wasteCode"
	WasteAdr        Field = "wasteAdr"
	WasteType       Field = "wasteType"
	WastePackagings Field = "wastePackagings"

	EmitterCompanyName             Field = "emitterCompanyName"
	EmitterCompanySiret            Field = "emitterCompanySiret"
	EmitterCompanyAddress          Field = "emitterCompanyAddress"
	EmitterCompanyContact          Field = "emitterCompanyContact"
	EmitterCompanyPhone            Field = "emitterCompanyPhone"
	EmitterCompanyMail             Field = "emitterCompanyMail"
	EmitterCustomInfo              Field = "emitterCustomInfo"
	EmitterPickupSiteName          Field = "emitterPickupSiteName"
	EmitterPickupSiteAddress       Field = "emitterPickupSiteAddress"
	EmitterPickupSiteCity          Field = "emitterPickupSiteCity"
	EmitterPickupSitePostalCode    Field = "emitterPickupSitePostalCode"
	EmitterPickupSiteInfos         Field = "emitterPickupSiteInfos"
	EmitterWasteWeightValue        Field = "emitterWasteWeightValue"
	EmitterWasteWeightIsEstimate   Field = "emitterWasteWeightIsEstimate"
	EmitterWasteQuantityValue      Field = "emitterWasteQuantityValue"
	EmitterEmissionSignatureDate   Field = "emitterEmissionSignatureDate"
	EmitterEmissionSignatureAuthor Field = "emitterEmissionSignatureAuthor"

	DestinationCompanyName    Field = "destinationCompanyName"
	DestinationCompanySiret   Field = "destinationCompanySiret"
	DestinationCompanyAddress Field = "destinationCompanyAddress"
	DestinationCompanyContact Field = "destinationCompanyContact"
	DestinationCompanyPhone   Field = "destinationCompanyPhone"
	DestinationCompanyMail    Field = "destinationCompanyMail"
	DestinationCustomInfo     Field = "destinationCustomInfo"
	DestinationCap            Field = "destinationCap"

	HandedOverToDestinationDate            Field = "handedOverToDestinationDate"
	HandedOverToDestinationSignatureDate   Field = "handedOverToDestinationSignatureDate"
	HandedOverToDestinationSignatureAuthor Field = "handedOverToDestinationSignatureAuthor"

	DestinationReceptionDate                       Field = "destinationReceptionDate"
	DestinationReceptionAcceptationStatus          Field = "destinationReceptionAcceptationStatus"
	DestinationReceptionWasteRefusalReason         Field = "destinationReceptionWasteRefusalReason"
	DestinationReceptionWastePackagingsAcceptation Field = "destinationReceptionWastePackagingsAcceptation"
	DestinationReceptionWasteReceivedWeightValue   Field = "destinationReceptionWasteReceivedWeightValue"
	DestinationReceptionWasteAcceptedWeightValue   Field = "destinationReceptionWasteAcceptedWeightValue"
	DestinationReceptionWasteRefusedWeightValue    Field = "destinationReceptionWasteRefusedWeightValue"
	DestinationReceptionWasteQuantityValue         Field = "destinationReceptionWasteQuantityValue"
	DestinationReceptionSignatureDate              Field = "destinationReceptionSignatureDate"
	DestinationReceptionSignatureAuthor            Field = "destinationReceptionSignatureAuthor"

	DestinationOperationCode            Field = "destinationOperationCode"
	DestinationOperationDate            Field = "destinationOperationDate"
	DestinationOperationSignatureDate   Field = "destinationOperationSignatureDate"
	DestinationOperationSignatureAuthor Field = "destinationOperationSignatureAuthor"

	TransporterCompanyName              Field = "transporterCompanyName"
	TransporterCompanySiret             Field = "transporterCompanySiret"
	TransporterCompanyVatNumber         Field = "transporterCompanyVatNumber"
	TransporterCompanyAddress           Field = "transporterCompanyAddress"
	TransporterCompanyContact           Field = "transporterCompanyContact"
	TransporterCompanyPhone             Field = "transporterCompanyPhone"
	TransporterCompanyMail              Field = "transporterCompanyMail"
	TransporterCustomInfo               Field = "transporterCustomInfo"
	TransporterRecepisseIsExempted      Field = "transporterRecepisseIsExempted"
	TransporterRecepisseNumber          Field = "transporterRecepisseNumber"
	TransporterRecepisseDepartment      Field = "transporterRecepisseDepartment"
	TransporterRecepisseValidityLimit   Field = "transporterRecepisseValidityLimit"
	TransporterTransportMode            Field = "transporterTransportMode"
	TransporterTransportPlates          Field = "transporterTransportPlates"
	TransporterTakenOverAt              Field = "transporterTakenOverAt"
	TransporterTransportSignatureDate   Field = "transporterTransportSignatureDate"
	TransporterTransportSignatureAuthor Field = "transporterTransportSignatureAuthor"
)

// Accessor liga um campo ao registo tipado sem reflexão.
type Accessor struct {
	Field Field
	// Path é o caminho externo (ex.: emitter.company.siret).
	Path []string
	// Editable indica que o campo pode vir de um input.
	Editable bool

	get    func(b *Bspaoh) any
	null   func(b *Bspaoh) bool
	decode func(b *Bspaoh, raw []byte) error
	clear  func(b *Bspaoh)
}

func (a Accessor) Get(b *Bspaoh) any                  { return a.get(b) }
func (a Accessor) IsNull(b *Bspaoh) bool              { return a.null(b) }
func (a Accessor) Decode(b *Bspaoh, raw []byte) error { return a.decode(b, raw) }
func (a Accessor) Clear(b *Bspaoh)                    { a.clear(b) }

func (a Accessor) ExternalPath() string { return strings.Join(a.Path, ".") }

func scalar[T any](f Field, path string, editable bool, ref func(b *Bspaoh) **T) Accessor {
	return Accessor{
		Field:    f,
		Path:     strings.Split(path, "."),
		Editable: editable,
		get:      func(b *Bspaoh) any { return *ref(b) },
		null:     func(b *Bspaoh) bool { return *ref(b) == nil },
		decode: func(b *Bspaoh, raw []byte) error {
			var v *T
			if err := json.Unmarshal(raw, &v); err != nil {
				return fmt.Errorf("%s: %w", f, err)
			}
			// texto vazio conta como ausente
			if s, ok := any(v).(*string); ok && s != nil && strings.TrimSpace(*s) == "" {
				v = nil
			}
			*ref(b) = v
			return nil
		},
		clear: func(b *Bspaoh) { *ref(b) = nil },
	}
}

func list[T any](f Field, path string, editable bool, ref func(b *Bspaoh) *[]T) Accessor {
	return Accessor{
		Field:    f,
		Path:     strings.Split(path, "."),
		Editable: editable,
		get:      func(b *Bspaoh) any { return *ref(b) },
		null:     func(b *Bspaoh) bool { return *ref(b) == nil },
		decode: func(b *Bspaoh, raw []byte) error {
			var v []T
			if err := json.Unmarshal(raw, &v); err != nil {
				return fmt.Errorf("%s: %w", f, err)
			}
			*ref(b) = v
			return nil
		},
		clear: func(b *Bspaoh) { *ref(b) = nil },
	}
}

var accessors = []Accessor{
	scalar(WasteCode, "waste.code", true, func(b *Bspaoh) **string { return &b.WasteCode }),
	scalar(WasteAdr, "waste.adr", true, func(b *Bspaoh) **string { return &b.WasteAdr }),
	scalar(WasteType, "waste.type", true, func(b *Bspaoh) **domain.WasteType { return &b.WasteType }),
	list(WastePackagings, "waste.packagings", true, func(b *Bspaoh) *[]Packaging { return &b.WastePackagings }),

	scalar(EmitterCompanyName, "emitter.company.name", true, func(b *Bspaoh) **string { return &b.EmitterCompanyName }),
	scalar(EmitterCompanySiret, "emitter.company.siret", true, func(b *Bspaoh) **string { return &b.EmitterCompanySiret }),
	scalar(EmitterCompanyAddress, "emitter.company.address", true, func(b *Bspaoh) **string { return &b.EmitterCompanyAddress }),
	scalar(EmitterCompanyContact, "emitter.company.contact", true, func(b *Bspaoh) **string { return &b.EmitterCompanyContact }),
	scalar(EmitterCompanyPhone, "emitter.company.phone", true, func(b *Bspaoh) **string { return &b.EmitterCompanyPhone }),
	scalar(EmitterCompanyMail, "emitter.company.mail", true, func(b *Bspaoh) **string { return &b.EmitterCompanyMail }),
	scalar(EmitterCustomInfo, "emitter.customInfo", true, func(b *Bspaoh) **string { return &b.EmitterCustomInfo }),
	scalar(EmitterPickupSiteName, "emitter.pickupSite.name", true, func(b *Bspaoh) **string { return &b.EmitterPickupSiteName }),
	scalar(EmitterPickupSiteAddress, "emitter.pickupSite.address", true, func(b *Bspaoh) **string { return &b.EmitterPickupSiteAddress }),
	scalar(EmitterPickupSiteCity, "emitter.pickupSite.city", true, func(b *Bspaoh) **string { return &b.EmitterPickupSiteCity }),
	scalar(EmitterPickupSitePostalCode, "emitter.pickupSite.postalCode", true, func(b *Bspaoh) **string { return &b.EmitterPickupSitePostalCode }),
	scalar(EmitterPickupSiteInfos, "emitter.pickupSite.infos", true, func(b *Bspaoh) **string { return &b.EmitterPickupSiteInfos }),
	scalar(EmitterWasteWeightValue, "emitter.emission.detail.weight.value", true, func(b *Bspaoh) **float64 { return &b.EmitterWasteWeightValue }),
	scalar(EmitterWasteWeightIsEstimate, "emitter.emission.detail.weight.isEstimate", true, func(b *Bspaoh) **bool { return &b.EmitterWasteWeightIsEstimate }),
	scalar(EmitterWasteQuantityValue, "emitter.emission.detail.quantity", true, func(b *Bspaoh) **int { return &b.EmitterWasteQuantityValue }),
	scalar(EmitterEmissionSignatureDate, "emitter.emission.signature.date", false, func(b *Bspaoh) **time.Time { return &b.EmitterEmissionSignatureDate }),
	scalar(EmitterEmissionSignatureAuthor, "emitter.emission.signature.author", false, func(b *Bspaoh) **string { return &b.EmitterEmissionSignatureAuthor }),

	scalar(DestinationCompanyName, "destination.company.name", true, func(b *Bspaoh) **string { return &b.DestinationCompanyName }),
	scalar(DestinationCompanySiret, "destination.company.siret", true, func(b *Bspaoh) **string { return &b.DestinationCompanySiret }),
	scalar(DestinationCompanyAddress, "destination.company.address", true, func(b *Bspaoh) **string { return &b.DestinationCompanyAddress }),
	scalar(DestinationCompanyContact, "destination.company.contact", true, func(b *Bspaoh) **string { return &b.DestinationCompanyContact }),
	scalar(DestinationCompanyPhone, "destination.company.phone", true, func(b *Bspaoh) **string { return &b.DestinationCompanyPhone }),
	scalar(DestinationCompanyMail, "destination.company.mail", true, func(b *Bspaoh) **string { return &b.DestinationCompanyMail }),
	scalar(DestinationCustomInfo, "destination.customInfo", true, func(b *Bspaoh) **string { return &b.DestinationCustomInfo }),
	scalar(DestinationCap, "destination.cap", true, func(b *Bspaoh) **string { return &b.DestinationCap }),

	scalar(HandedOverToDestinationDate, "destination.handedOverToDestination.date", true, func(b *Bspaoh) **time.Time { return &b.HandedOverToDestinationDate }),
	scalar(HandedOverToDestinationSignatureDate, "destination.handedOverToDestination.signature.date", false, func(b *Bspaoh) **time.Time { return &b.HandedOverToDestinationSignatureDate }),
	scalar(HandedOverToDestinationSignatureAuthor, "destination.handedOverToDestination.signature.author", false, func(b *Bspaoh) **string { return &b.HandedOverToDestinationSignatureAuthor }),

	scalar(DestinationReceptionDate, "destination.reception.date", true, func(b *Bspaoh) **time.Time { return &b.DestinationReceptionDate }),
	scalar(DestinationReceptionAcceptationStatus, "destination.reception.acceptation.status", true, func(b *Bspaoh) **domain.AcceptationStatus { return &b.DestinationReceptionAcceptationStatus }),
	scalar(DestinationReceptionWasteRefusalReason, "destination.reception.acceptation.refusalReason", true, func(b *Bspaoh) **string { return &b.DestinationReceptionWasteRefusalReason }),
	list(DestinationReceptionWastePackagingsAcceptation, "destination.reception.acceptation.packagings", true, func(b *Bspaoh) *[]PackagingAcceptation {
		return &b.DestinationReceptionWastePackagingsAcceptation
	}),
	scalar(DestinationReceptionWasteReceivedWeightValue, "destination.reception.detail.receivedWeight", true, func(b *Bspaoh) **float64 { return &b.DestinationReceptionWasteReceivedWeightValue }),
	scalar(DestinationReceptionWasteAcceptedWeightValue, "destination.reception.detail.acceptedWeight", false, func(b *Bspaoh) **float64 { return &b.DestinationReceptionWasteAcceptedWeightValue }),
	scalar(DestinationReceptionWasteRefusedWeightValue, "destination.reception.detail.refusedWeight", true, func(b *Bspaoh) **float64 { return &b.DestinationReceptionWasteRefusedWeightValue }),
	scalar(DestinationReceptionWasteQuantityValue, "destination.reception.detail.quantity", true, func(b *Bspaoh) **int { return &b.DestinationReceptionWasteQuantityValue }),
	scalar(DestinationReceptionSignatureDate, "destination.reception.signature.date", false, func(b *Bspaoh) **time.Time { return &b.DestinationReceptionSignatureDate }),
	scalar(DestinationReceptionSignatureAuthor, "destination.reception.signature.author", false, func(b *Bspaoh) **string { return &b.DestinationReceptionSignatureAuthor }),

	scalar(DestinationOperationCode, "destination.operation.code", true, func(b *Bspaoh) **string { return &b.DestinationOperationCode }),
	scalar(DestinationOperationDate, "destination.operation.date", true, func(b *Bspaoh) **time.Time { return &b.DestinationOperationDate }),
	scalar(DestinationOperationSignatureDate, "destination.operation.signature.date", false, func(b *Bspaoh) **time.Time { return &b.DestinationOperationSignatureDate }),
	scalar(DestinationOperationSignatureAuthor, "destination.operation.signature.author", false, func(b *Bspaoh) **string { return &b.DestinationOperationSignatureAuthor }),

	scalar(TransporterCompanyName, "transporter.company.name", true, func(b *Bspaoh) **string { return &b.TransporterCompanyName }),
	scalar(TransporterCompanySiret, "transporter.company.siret", true, func(b *Bspaoh) **string { return &b.TransporterCompanySiret }),
	scalar(TransporterCompanyVatNumber, "transporter.company.vatNumber", true, func(b *Bspaoh) **string { return &b.TransporterCompanyVatNumber }),
	scalar(TransporterCompanyAddress, "transporter.company.address", true, func(b *Bspaoh) **string { return &b.TransporterCompanyAddress }),
	scalar(TransporterCompanyContact, "transporter.company.contact", true, func(b *Bspaoh) **string { return &b.TransporterCompanyContact }),
	scalar(TransporterCompanyPhone, "transporter.company.phone", true, func(b *Bspaoh) **string { return &b.TransporterCompanyPhone }),
	scalar(TransporterCompanyMail, "transporter.company.mail", true, func(b *Bspaoh) **string { return &b.TransporterCompanyMail }),
	scalar(TransporterCustomInfo, "transporter.customInfo", true, func(b *Bspaoh) **string { return &b.TransporterCustomInfo }),
	scalar(TransporterRecepisseIsExempted, "transporter.recepisse.isExempted", true, func(b *Bspaoh) **bool { return &b.TransporterRecepisseIsExempted }),
	scalar(TransporterRecepisseNumber, "transporter.recepisse.number", false, func(b *Bspaoh) **string { return &b.TransporterRecepisseNumber }),
	scalar(TransporterRecepisseDepartment, "transporter.recepisse.department", false, func(b *Bspaoh) **string { return &b.TransporterRecepisseDepartment }),
	scalar(TransporterRecepisseValidityLimit, "transporter.recepisse.validityLimit", false, func(b *Bspaoh) **time.Time { return &b.TransporterRecepisseValidityLimit }),
	scalar(TransporterTransportMode, "transporter.transport.mode", true, func(b *Bspaoh) **domain.TransportMode { return &b.TransporterTransportMode }),
	list(TransporterTransportPlates, "transporter.transport.plates", true, func(b *Bspaoh) *[]string { return &b.TransporterTransportPlates }),
	scalar(TransporterTakenOverAt, "transporter.transport.takenOverAt", true, func(b *Bspaoh) **time.Time { return &b.TransporterTakenOverAt }),
	scalar(TransporterTransportSignatureDate, "transporter.transport.signature.date", false, func(b *Bspaoh) **time.Time { return &b.TransporterTransportSignatureDate }),
	scalar(TransporterTransportSignatureAuthor, "transporter.transport.signature.author", false, func(b *Bspaoh) **string { return &b.TransporterTransportSignatureAuthor }),
}

var accessorIndex = func() map[Field]Accessor {
	m := make(map[Field]Accessor, len(accessors))
	for _, a := range accessors {
		m[a.Field] = a
	}
	return m
}()

// Accessors devolve a tabela completa, pela ordem de declaração.
func Accessors() []Accessor {
	out := make([]Accessor, len(accessors))
	copy(out, accessors)
	return out
}

func AccessorFor(f Field) (Accessor, bool) {
	a, ok := accessorIndex[f]
	return a, ok
}

// PathOf devolve o caminho externo de um campo, ou o próprio nome se o campo não for conhecido.
func PathOf(f Field) []string {
	if a, ok := accessorIndex[f]; ok {
		return append([]string(nil), a.Path...)
	}
	return []string{string(f)}
}

// FieldForPath faz a conversão inversa (emitter.company.siret -> emitterCompanySiret).
func FieldForPath(path string) (Field, bool) {
	for _, a := range accessors {
		if a.ExternalPath() == path {
			return a.Field, true
		}
	}
	return "", false
}

// IsNull indica se o campo não tem valor no registo.
func (b *Bspaoh) IsNull(f Field) bool {
	a, ok := accessorIndex[f]
	if !ok {
		return true
	}
	return a.IsNull(b)
}

func (b *Bspaoh) Value(f Field) any {
	a, ok := accessorIndex[f]
	if !ok {
		return nil
	}
	return a.Get(b)
}
