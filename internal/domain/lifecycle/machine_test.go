package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Victor-armando18/service-bspaoh/internal/domain"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
)

func doc(status domain.BspaohStatus) *model.Bspaoh {
	return &model.Bspaoh{ID: "PAOH-1", Status: status}
}

func TestNextStatus_Transitions(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name  string
		doc   func() *model.Bspaoh
		event domain.SignatureType
		want  domain.BspaohStatus
	}{
		{"emission", func() *model.Bspaoh { return doc(domain.StatusInitial) }, domain.SignatureEmission, domain.StatusSignedByProducer},
		{"transport", func() *model.Bspaoh {
			b := doc(domain.StatusSignedByProducer)
			b.EmitterEmissionSignatureDate = &now
			return b
		}, domain.SignatureTransport, domain.StatusSent},
		{"delivery keeps SENT", func() *model.Bspaoh { return doc(domain.StatusSent) }, domain.SignatureDelivery, domain.StatusSent},
		{"reception accepted", func() *model.Bspaoh {
			b := doc(domain.StatusSent)
			b.DestinationReceptionAcceptationStatus = model.Ptr(domain.AcceptationAccepted)
			return b
		}, domain.SignatureReception, domain.StatusReceived},
		{"reception refused", func() *model.Bspaoh {
			b := doc(domain.StatusSent)
			b.DestinationReceptionAcceptationStatus = model.Ptr(domain.AcceptationRefused)
			return b
		}, domain.SignatureReception, domain.StatusRefused},
		{"reception partially refused", func() *model.Bspaoh {
			b := doc(domain.StatusSent)
			b.DestinationReceptionAcceptationStatus = model.Ptr(domain.AcceptationPartiallyRefused)
			return b
		}, domain.SignatureReception, domain.StatusPartiallyRefused},
		{"reception without status", func() *model.Bspaoh { return doc(domain.StatusSent) }, domain.SignatureReception, domain.StatusReceived},
		{"operation after reception", func() *model.Bspaoh { return doc(domain.StatusReceived) }, domain.SignatureOperation, domain.StatusProcessed},
		{"operation after partial refusal", func() *model.Bspaoh { return doc(domain.StatusPartiallyRefused) }, domain.SignatureOperation, domain.StatusProcessed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NextStatus(tc.doc(), tc.event)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNextStatus_InvalidTransitions(t *testing.T) {
	cases := []struct {
		status domain.BspaohStatus
		event  domain.SignatureType
	}{
		{domain.StatusDraft, domain.SignatureEmission},
		{domain.StatusInitial, domain.SignatureTransport},
		{domain.StatusSignedByProducer, domain.SignatureReception},
		{domain.StatusReceived, domain.SignatureReception},
		{domain.StatusRefused, domain.SignatureOperation},
		{domain.StatusProcessed, domain.SignatureOperation},
		{domain.StatusCanceled, domain.SignatureEmission},
	}
	for _, tc := range cases {
		t.Run(string(tc.status)+"/"+string(tc.event), func(t *testing.T) {
			_, err := NextStatus(doc(tc.status), tc.event)
			var inv *domain.InvalidTransitionError
			require.True(t, errors.As(err, &inv), "got %v", err)
			assert.Equal(t, tc.status, inv.From)
			assert.Equal(t, domain.KindInvalidTransition, domain.KindOf(err))
		})
	}
}

func TestNextStatus_AlreadySigned(t *testing.T) {
	now := time.Now()
	b := doc(domain.StatusInitial)
	b.EmitterEmissionSignatureDate = &now

	_, err := NextStatus(b, domain.SignatureEmission)
	var signed *domain.AlreadySignedError
	require.True(t, errors.As(err, &signed))
	assert.Equal(t, domain.SignatureEmission, signed.Type)
}

func TestNextStatus_RepeatedDeliveryIsInvalidTransition(t *testing.T) {
	now := time.Now()
	b := doc(domain.StatusSent)
	b.HandedOverToDestinationSignatureDate = &now

	_, err := NextStatus(b, domain.SignatureDelivery)
	assert.Equal(t, domain.KindInvalidTransition, domain.KindOf(err))
}

func TestNextStatus_NilDocument(t *testing.T) {
	_, err := NextStatus(nil, domain.SignatureEmission)
	var invalid *domain.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, domain.SignatureEmission, invalid.Event)
}

func TestTransitionsTableHasNoTerminalSource(t *testing.T) {
	for _, tr := range Transitions() {
		assert.False(t, tr.From.IsTerminal(), "transition out of %s", tr.From)
		assert.NotEqual(t, domain.StatusDraft, tr.From)
	}
}
