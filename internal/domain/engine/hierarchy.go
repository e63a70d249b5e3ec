package engine

import (
	"github.com/Victor-armando18/service-bspaoh/internal/domain"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
)

type SignatureStage struct {
	Type   domain.SignatureType
	Marker model.Field
	Author model.Field
	Next   domain.SignatureType
}

var signatureHierarchy = map[domain.SignatureType]SignatureStage{
	domain.SignatureEmission: {
		Type:   domain.SignatureEmission,
		Marker: model.EmitterEmissionSignatureDate,
		Author: model.EmitterEmissionSignatureAuthor,
		Next:   domain.SignatureTransport,
	},
	domain.SignatureTransport: {
		Type:   domain.SignatureTransport,
		Marker: model.TransporterTransportSignatureDate,
		Author: model.TransporterTransportSignatureAuthor,
		Next:   domain.SignatureDelivery,
	},
	domain.SignatureDelivery: {
		Type:   domain.SignatureDelivery,
		Marker: model.HandedOverToDestinationSignatureDate,
		Author: model.HandedOverToDestinationSignatureAuthor,
		Next:   domain.SignatureReception,
	},
	domain.SignatureReception: {
		Type:   domain.SignatureReception,
		Marker: model.DestinationReceptionSignatureDate,
		Author: model.DestinationReceptionSignatureAuthor,
		Next:   domain.SignatureOperation,
	},
	domain.SignatureOperation: {
		Type:   domain.SignatureOperation,
		Marker: model.DestinationOperationSignatureDate,
		Author: model.DestinationOperationSignatureAuthor,
	},
}

var signatureOrder = []domain.SignatureType{
	domain.SignatureEmission,
	domain.SignatureTransport,
	domain.SignatureDelivery,
	domain.SignatureReception,
	domain.SignatureOperation,
}

func StageFor(t domain.SignatureType) (SignatureStage, bool) {
	s, ok := signatureHierarchy[t]
	return s, ok
}

// AncestorsOf devolve as etapas anteriores a target, target incluído, da mais antiga para a mais recente.
func AncestorsOf(target domain.SignatureType) []domain.SignatureType {
	if _, ok := signatureHierarchy[target]; !ok {
		return []domain.SignatureType{}
	}
	chain := []domain.SignatureType{target}
	cur := target
	for {
		parent, ok := parentOf(cur)
		if !ok {
			break
		}
		chain = append([]domain.SignatureType{parent}, chain...)
		cur = parent
	}
	return chain
}

func parentOf(t domain.SignatureType) (domain.SignatureType, bool) {
	for _, s := range signatureOrder {
		if signatureHierarchy[s].Next == t {
			return s, true
		}
	}
	return "", false
}

// CurrentSignatureType devolve a última etapa assinada no bordereau, ou "" se nenhuma.
func CurrentSignatureType(b *model.Bspaoh) domain.SignatureType {
	if b == nil {
		return ""
	}
	var current domain.SignatureType
	for _, s := range signatureOrder {
		if !b.IsNull(signatureHierarchy[s].Marker) {
			current = s
		}
	}
	return current
}

// SignedStages devolve as etapas cujo marcador já está preenchido.
func SignedStages(b *model.Bspaoh) []domain.SignatureType {
	out := []domain.SignatureType{}
	if b == nil {
		return out
	}
	for _, s := range signatureOrder {
		if !b.IsNull(signatureHierarchy[s].Marker) {
			out = append(out, s)
		}
	}
	return out
}

func IsSigned(b *model.Bspaoh, t domain.SignatureType) bool {
	s, ok := signatureHierarchy[t]
	if !ok || b == nil {
		return false
	}
	return !b.IsNull(s.Marker)
}

func containsStage(stages []domain.SignatureType, t domain.SignatureType) bool {
	for _, s := range stages {
		if s == t {
			return true
		}
	}
	return false
}
