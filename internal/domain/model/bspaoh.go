package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Victor-armando18/service-bspaoh/internal/domain"
)

// Bspaoh é o registo plano do bordereau. O bloco transportador vive num sub-registo (number = 1).
type Bspaoh struct {
	ID            string              `json:"id"`
	Status        domain.BspaohStatus `json:"status"`
	IsDraft       bool                `json:"-"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
	IsDeleted     bool                `json:"isDeleted"`
	IsDuplicateOf *string             `json:"isDuplicateOf"`

	// CreatorOrgIDs são as empresas que criaram o rascunho; só elas o podem alterar.
	CreatorOrgIDs []string `json:"creatorOrgIds,omitempty"`

	WasteCode       *string           `json:"wasteCode"`
	WasteAdr        *string           `json:"wasteAdr"`
	WasteType       *domain.WasteType `json:"wasteType"`
	WastePackagings []Packaging       `json:"wastePackagings"`

	EmitterCompanyName             *string    `json:"emitterCompanyName"`
	EmitterCompanySiret            *string    `json:"emitterCompanySiret"`
	EmitterCompanyAddress          *string    `json:"emitterCompanyAddress"`
	EmitterCompanyContact          *string    `json:"emitterCompanyContact"`
	EmitterCompanyPhone            *string    `json:"emitterCompanyPhone"`
	EmitterCompanyMail             *string    `json:"emitterCompanyMail"`
	EmitterCustomInfo              *string    `json:"emitterCustomInfo"`
	EmitterPickupSiteName          *string    `json:"emitterPickupSiteName"`
	EmitterPickupSiteAddress       *string    `json:"emitterPickupSiteAddress"`
	EmitterPickupSiteCity          *string    `json:"emitterPickupSiteCity"`
	EmitterPickupSitePostalCode    *string    `json:"emitterPickupSitePostalCode"`
	EmitterPickupSiteInfos         *string    `json:"emitterPickupSiteInfos"`
	EmitterWasteWeightValue        *float64   `json:"emitterWasteWeightValue"`
	EmitterWasteWeightIsEstimate   *bool      `json:"emitterWasteWeightIsEstimate"`
	EmitterWasteQuantityValue      *int       `json:"emitterWasteQuantityValue"`
	EmitterEmissionSignatureDate   *time.Time `json:"emitterEmissionSignatureDate"`
	EmitterEmissionSignatureAuthor *string    `json:"emitterEmissionSignatureAuthor"`

	DestinationCompanyName    *string `json:"destinationCompanyName"`
	DestinationCompanySiret   *string `json:"destinationCompanySiret"`
	DestinationCompanyAddress *string `json:"destinationCompanyAddress"`
	DestinationCompanyContact *string `json:"destinationCompanyContact"`
	DestinationCompanyPhone   *string `json:"destinationCompanyPhone"`
	DestinationCompanyMail    *string `json:"destinationCompanyMail"`
	DestinationCustomInfo     *string `json:"destinationCustomInfo"`
	DestinationCap            *string `json:"destinationCap"`

	HandedOverToDestinationDate            *time.Time `json:"handedOverToDestinationDate"`
	HandedOverToDestinationSignatureDate   *time.Time `json:"handedOverToDestinationSignatureDate"`
	HandedOverToDestinationSignatureAuthor *string    `json:"handedOverToDestinationSignatureAuthor"`

	DestinationReceptionDate                       *time.Time                `json:"destinationReceptionDate"`
	DestinationReceptionAcceptationStatus          *domain.AcceptationStatus `json:"destinationReceptionAcceptationStatus"`
	DestinationReceptionWasteRefusalReason         *string                   `json:"destinationReceptionWasteRefusalReason"`
	DestinationReceptionWastePackagingsAcceptation []PackagingAcceptation    `json:"destinationReceptionWastePackagingsAcceptation"`
	DestinationReceptionWasteReceivedWeightValue   *float64                  `json:"destinationReceptionWasteReceivedWeightValue"`
	DestinationReceptionWasteAcceptedWeightValue   *float64                  `json:"destinationReceptionWasteAcceptedWeightValue"`
	DestinationReceptionWasteRefusedWeightValue    *float64                  `json:"destinationReceptionWasteRefusedWeightValue"`
	DestinationReceptionWasteQuantityValue         *int                      `json:"destinationReceptionWasteQuantityValue"`
	DestinationReceptionSignatureDate              *time.Time                `json:"destinationReceptionSignatureDate"`
	DestinationReceptionSignatureAuthor            *string                   `json:"destinationReceptionSignatureAuthor"`

	DestinationOperationCode            *string    `json:"destinationOperationCode"`
	DestinationOperationDate            *time.Time `json:"destinationOperationDate"`
	DestinationOperationSignatureDate   *time.Time `json:"destinationOperationSignatureDate"`
	DestinationOperationSignatureAuthor *string    `json:"destinationOperationSignatureAuthor"`

	BspaohTransporter
}

type BspaohTransporter struct {
	TransporterNumber                   int                   `json:"transporterNumber"`
	TransporterCompanyName              *string               `json:"transporterCompanyName"`
	TransporterCompanySiret             *string               `json:"transporterCompanySiret"`
	TransporterCompanyVatNumber         *string               `json:"transporterCompanyVatNumber"`
	TransporterCompanyAddress           *string               `json:"transporterCompanyAddress"`
	TransporterCompanyContact           *string               `json:"transporterCompanyContact"`
	TransporterCompanyPhone             *string               `json:"transporterCompanyPhone"`
	TransporterCompanyMail              *string               `json:"transporterCompanyMail"`
	TransporterCustomInfo               *string               `json:"transporterCustomInfo"`
	TransporterRecepisseIsExempted      *bool                 `json:"transporterRecepisseIsExempted"`
	TransporterRecepisseNumber          *string               `json:"transporterRecepisseNumber"`
	TransporterRecepisseDepartment      *string               `json:"transporterRecepisseDepartment"`
	TransporterRecepisseValidityLimit   *time.Time            `json:"transporterRecepisseValidityLimit"`
	TransporterTransportMode            *domain.TransportMode `json:"transporterTransportMode"`
	TransporterTransportPlates          []string              `json:"transporterTransportPlates"`
	TransporterTakenOverAt              *time.Time            `json:"transporterTakenOverAt"`
	TransporterTransportSignatureDate   *time.Time            `json:"transporterTransportSignatureDate"`
	TransporterTransportSignatureAuthor *string               `json:"transporterTransportSignatureAuthor"`
}

type Packaging struct {
	ID                  string               `json:"id"`
	Type                domain.PackagingType `json:"type"`
	Volume              *float64             `json:"volume"`
	ContainerNumber     string               `json:"containerNumber"`
	Quantity            int                  `json:"quantity"`
	Consistence         domain.Consistence   `json:"consistence"`
	IdentificationCodes []string             `json:"identificationCodes"`
}

type PackagingAcceptation struct {
	ID          string                            `json:"id"`
	Acceptation domain.PackagingAcceptationStatus `json:"acceptation"`
}

// Clone devolve uma cópia profunda do registo.
func (b *Bspaoh) Clone() (*Bspaoh, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("clone bspaoh: %w", err)
	}
	var out Bspaoh
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("clone bspaoh: %w", err)
	}
	out.IsDraft = b.IsDraft
	return &out, nil
}

func (b *Bspaoh) ToMap() map[string]any {
	data, _ := json.Marshal(b)
	var m map[string]any
	_ = json.Unmarshal(data, &m)
	return m
}

// TransporterOrgID devolve o SIRET do transportador ou, na sua falta, o número de TVA.
func (b *Bspaoh) TransporterOrgID() string {
	if s := deref(b.TransporterCompanySiret); s != "" {
		return s
	}
	return deref(b.TransporterCompanyVatNumber)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func Ptr[T any](v T) *T { return &v }
