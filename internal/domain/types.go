package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// --- Estados e eventos do ciclo de vida ---

type BspaohStatus string

const (
	StatusDraft            BspaohStatus = "DRAFT"
	StatusInitial          BspaohStatus = "INITIAL"
	StatusSignedByProducer BspaohStatus = "SIGNED_BY_PRODUCER"
	StatusSent             BspaohStatus = "SENT"
	StatusReceived         BspaohStatus = "RECEIVED"
	StatusPartiallyRefused BspaohStatus = "PARTIALLY_REFUSED"
	StatusRefused          BspaohStatus = "REFUSED"
	StatusProcessed        BspaohStatus = "PROCESSED"
	StatusCanceled         BspaohStatus = "CANCELED"
)

func (s BspaohStatus) IsTerminal() bool {
	return s == StatusRefused || s == StatusProcessed || s == StatusCanceled
}

func (s BspaohStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusInitial, StatusSignedByProducer, StatusSent, StatusReceived,
		StatusPartiallyRefused, StatusRefused, StatusProcessed, StatusCanceled:
		return true
	}
	return false
}

// SignatureType identifica uma etapa de assinatura. O valor vazio significa "nenhuma etapa".
type SignatureType string

const (
	SignatureEmission  SignatureType = "EMISSION"
	SignatureTransport SignatureType = "TRANSPORT"
	SignatureDelivery  SignatureType = "DELIVERY"
	SignatureReception SignatureType = "RECEPTION"
	SignatureOperation SignatureType = "OPERATION"
)

func ParseSignatureType(s string) (SignatureType, error) {
	st := SignatureType(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case SignatureEmission, SignatureTransport, SignatureDelivery, SignatureReception, SignatureOperation:
		return st, nil
	}
	return "", fmt.Errorf("unknown signature type %q", s)
}

type AcceptationStatus string

const (
	AcceptationAccepted         AcceptationStatus = "ACCEPTED"
	AcceptationRefused          AcceptationStatus = "REFUSED"
	AcceptationPartiallyRefused AcceptationStatus = "PARTIALLY_REFUSED"
)

type PackagingAcceptationStatus string

const (
	PackagingPending  PackagingAcceptationStatus = "PENDING"
	PackagingAccepted PackagingAcceptationStatus = "ACCEPTED"
	PackagingRefused  PackagingAcceptationStatus = "REFUSED"
)

type TransportMode string

const (
	TransportRoad  TransportMode = "ROAD"
	TransportRail  TransportMode = "RAIL"
	TransportAir   TransportMode = "AIR"
	TransportRiver TransportMode = "RIVER"
	TransportSea   TransportMode = "SEA"
	TransportOther TransportMode = "OTHER"
)

type WasteType string

const (
	WastePaoh   WasteType = "PAOH"
	WasteFoetus WasteType = "FOETUS"
)

// WasteCodeAnatomical é o único código de resíduo admitido num BSPAOH.
const WasteCodeAnatomical = "18 01 02"

type PackagingType string

const (
	PackagingReliquaire PackagingType = "RELIQUAIRE"
	PackagingLittleBox  PackagingType = "LITTLE_BOX"
	PackagingBigBox     PackagingType = "BIG_BOX"
)

type Consistence string

const (
	ConsistenceSolide  Consistence = "SOLIDE"
	ConsistenceLiquide Consistence = "LIQUIDE"
)

type CompanyType string

const (
	CompanyProducer       CompanyType = "PRODUCER"
	CompanyTransporter    CompanyType = "TRANSPORTER"
	CompanyCrematorium    CompanyType = "CREMATORIUM"
	CompanyWasteProcessor CompanyType = "WASTEPROCESSOR"
)

type WasteProcessorType string

const (
	ProcessorCremation WasteProcessorType = "CREMATION"
)

// --- Contexto de validação ---

// User é o utilizador que executa a mutação e as organizações (SIRET ou TVA) a que pertence.
type User struct {
	ID     string
	OrgIDs []string
}

func (u *User) BelongsTo(orgID string) bool {
	if u == nil || orgID == "" {
		return false
	}
	for _, id := range u.OrgIDs {
		if id == orgID {
			return true
		}
	}
	return false
}

type UserFunctions struct {
	IsEmitter     bool
	IsTransporter bool
	IsDestination bool
}

func (f UserFunctions) Any() bool {
	return f.IsEmitter || f.IsTransporter || f.IsDestination
}

// ValidationContext é criado por chamada e descartado no fim.
type ValidationContext struct {
	CurrentSignatureType         SignatureType
	IsCreation                   bool
	EnableCompletionTransformers bool
	User                         *User
	// IsDraft sobrepõe o estado de rascunho deduzido do registo persistido.
	IsDraft *bool
}

// Issue descreve uma violação encontrada durante a validação.
type Issue struct {
	Field       string        `json:"field"`
	Path        []string      `json:"path"`
	Message     string        `json:"message"`
	RequiredFor SignatureType `json:"requiredFor,omitempty"`
}

// --- Diretório de empresas ---

type TransporterReceipt struct {
	Number        string    `json:"receiptNumber"`
	Department    string    `json:"department"`
	ValidityLimit time.Time `json:"validityLimit"`
}

type Company struct {
	OrgID               string               `json:"orgId"`
	Siret               string               `json:"siret,omitempty"`
	VatNumber           string               `json:"vatNumber,omitempty"`
	Name                string               `json:"name"`
	Address             string               `json:"address"`
	CompanyTypes        []CompanyType        `json:"companyTypes"`
	WasteProcessorTypes []WasteProcessorType `json:"wasteProcessorTypes,omitempty"`
	TransporterReceipt  *TransporterReceipt  `json:"transporterReceipt,omitempty"`
}

func (c *Company) HasType(t CompanyType) bool {
	for _, ct := range c.CompanyTypes {
		if ct == t {
			return true
		}
	}
	return false
}

func (c *Company) HasProcessorType(t WasteProcessorType) bool {
	for _, pt := range c.WasteProcessorTypes {
		if pt == t {
			return true
		}
	}
	return false
}

// CompanyDirectory resolve uma empresa por SIRET ou TVA. Devolve ErrCompanyNotFound quando não existe.
type CompanyDirectory interface {
	Lookup(ctx context.Context, orgID string) (*Company, error)
}

// UserResolver devolve as organizações a que um utilizador pertence.
type UserResolver interface {
	Resolve(ctx context.Context, userID string) (*User, error)
}

// --- Constantes e Erros ---
var (
	ErrCompanyNotFound = fmt.Errorf("company not found")
	ErrUserNotFound    = fmt.Errorf("user not found")
)

// IsForeignVat indica um número de TVA intracomunitário não francês.
func IsForeignVat(vat string) bool {
	v := strings.ToUpper(strings.ReplaceAll(vat, " ", ""))
	return len(v) >= 2 && !strings.HasPrefix(v, "FR") && isAlpha(v[:2])
}

func IsFrenchVat(vat string) bool {
	v := strings.ToUpper(strings.ReplaceAll(vat, " ", ""))
	return strings.HasPrefix(v, "FR")
}

func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
