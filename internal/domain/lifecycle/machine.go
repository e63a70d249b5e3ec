package lifecycle

import (
	"github.com/Victor-armando18/service-bspaoh/internal/domain"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/engine"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
)

type Guard string

const (
	GuardNone              Guard = ""
	GuardRefused           Guard = "refused"
	GuardPartiallyRefused  Guard = "partiallyRefused"
	GuardHandoverNotSigned Guard = "handoverNotSigned"
)

// Transition é uma aresta permitida da máquina de estados.
type Transition struct {
	From  domain.BspaohStatus
	Event domain.SignatureType
	To    domain.BspaohStatus
	Guard Guard
}

// A ordem importa: a primeira transição cujo guard passa é escolhida.
var transitionsTable = []Transition{
	{From: domain.StatusInitial, Event: domain.SignatureEmission, To: domain.StatusSignedByProducer},
	{From: domain.StatusSignedByProducer, Event: domain.SignatureTransport, To: domain.StatusSent},
	{From: domain.StatusSent, Event: domain.SignatureReception, To: domain.StatusRefused, Guard: GuardRefused},
	{From: domain.StatusSent, Event: domain.SignatureReception, To: domain.StatusPartiallyRefused, Guard: GuardPartiallyRefused},
	{From: domain.StatusSent, Event: domain.SignatureReception, To: domain.StatusReceived},
	{From: domain.StatusSent, Event: domain.SignatureDelivery, To: domain.StatusSent, Guard: GuardHandoverNotSigned},
	{From: domain.StatusReceived, Event: domain.SignatureOperation, To: domain.StatusProcessed},
	{From: domain.StatusPartiallyRefused, Event: domain.SignatureOperation, To: domain.StatusProcessed},
}

func Transitions() []Transition {
	out := make([]Transition, len(transitionsTable))
	copy(out, transitionsTable)
	return out
}

// Next devolve o estado seguinte para (from, event), ou false se nenhuma aresta se aplica.
func Next(from domain.BspaohStatus, event domain.SignatureType, b *model.Bspaoh) (domain.BspaohStatus, bool) {
	for _, tr := range transitionsTable {
		if tr.From == from && tr.Event == event && guardPasses(tr.Guard, b) {
			return tr.To, true
		}
	}
	return "", false
}

// NextStatus calcula o novo estado de um bordereau após a assinatura event.
// Falha logo no primeiro problema: assinatura já presente ou transição inexistente.
func NextStatus(b *model.Bspaoh, event domain.SignatureType) (domain.BspaohStatus, error) {
	if b == nil {
		return "", &domain.InvalidTransitionError{Event: event}
	}
	// DELIVERY repetida cai na transição inválida, não em AlreadySigned
	if event != domain.SignatureDelivery && engine.IsSigned(b, event) {
		return "", &domain.AlreadySignedError{Type: event}
	}
	next, ok := Next(b.Status, event, b)
	if !ok {
		return "", &domain.InvalidTransitionError{From: b.Status, Event: event}
	}
	return next, nil
}

func guardPasses(g Guard, b *model.Bspaoh) bool {
	switch g {
	case GuardNone:
		return true
	case GuardRefused:
		return acceptation(b) == domain.AcceptationRefused
	case GuardPartiallyRefused:
		return acceptation(b) == domain.AcceptationPartiallyRefused
	case GuardHandoverNotSigned:
		return b.HandedOverToDestinationSignatureDate == nil
	}
	return false
}

func acceptation(b *model.Bspaoh) domain.AcceptationStatus {
	if b.DestinationReceptionAcceptationStatus == nil {
		return ""
	}
	return *b.DestinationReceptionAcceptationStatus
}
