package readiness

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Victor-armando18/service-bspaoh/internal/domain"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
	"github.com/Victor-armando18/service-bspaoh/internal/infrastructure/memory"
	"github.com/Victor-armando18/service-bspaoh/internal/interfaces"
)

func storedDoc(t *testing.T, repo *memory.Repository) *model.Bspaoh {
	t.Helper()
	now := time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC)
	b := &model.Bspaoh{
		ID:        "PAOH-20240502-0A1B2C3D",
		Status:    domain.StatusInitial,
		CreatedAt: now,
		UpdatedAt: now,

		WasteCode: model.Ptr("18 01 02"),
		WasteType: model.Ptr(domain.WastePaoh),
		WastePackagings: []model.Packaging{
			{ID: "packaging_0", Type: domain.PackagingBigBox, Quantity: 2, Consistence: domain.ConsistenceSolide, IdentificationCodes: []string{"BX-1", "BX-2"}},
		},
		EmitterCompanyName:        model.Ptr("Clinique du Parc"),
		EmitterCompanySiret:       model.Ptr("11111111111111"),
		EmitterCompanyAddress:     model.Ptr("4 rue du Parc 69006 Lyon"),
		EmitterCompanyContact:     model.Ptr("Anne Roux"),
		EmitterCompanyPhone:       model.Ptr("0478000000"),
		EmitterCompanyMail:        model.Ptr("anne@clinique.fr"),
		EmitterWasteQuantityValue: model.Ptr(2),

		DestinationCompanyName:    model.Ptr("Crématorium de Lyon"),
		DestinationCompanySiret:   model.Ptr("33333333333333"),
		DestinationCompanyAddress: model.Ptr("Route de Vienne 69008 Lyon"),
		DestinationCompanyContact: model.Ptr("Marc Blanc"),
		DestinationCompanyPhone:   model.Ptr("0472000000"),
		DestinationCompanyMail:    model.Ptr("marc@crematorium.fr"),
	}
	b.TransporterNumber = 1
	b.TransporterCompanySiret = model.Ptr("22222222222222")
	require.NoError(t, repo.Create(context.Background(), b, domain.Event{ID: "ev-1", StreamID: b.ID, Type: domain.EventCreated}))
	return b
}

func newUseCase(t *testing.T) (*UseCase, *memory.Repository) {
	t.Helper()
	dir := memory.NewDirectory(
		domain.Company{Siret: "22222222222222", Name: "Transports Rhône", CompanyTypes: []domain.CompanyType{domain.CompanyTransporter}},
		domain.Company{Siret: "33333333333333", Name: "Crématorium de Lyon", CompanyTypes: []domain.CompanyType{domain.CompanyCrematorium}},
	)
	eng, err := interfaces.NewEngine(context.Background(), "v1", dir, nil)
	require.NoError(t, err)
	repo := memory.NewRepository()
	return &UseCase{Repository: repo, Validator: eng}, repo
}

func TestCheck_ReadyForEmission(t *testing.T) {
	uc, repo := newUseCase(t)
	b := storedDoc(t, repo)

	report, err := uc.Check(context.Background(), b.ID, domain.SignatureEmission)
	require.NoError(t, err)
	assert.True(t, report.Ready)
	assert.Empty(t, report.Issues)
	assert.Equal(t, "v1", report.RulesVersion)
}

func TestCheck_ListsMissingTransportFields(t *testing.T) {
	uc, repo := newUseCase(t)
	b := storedDoc(t, repo)

	report, err := uc.Check(context.Background(), b.ID, domain.SignatureTransport)
	require.NoError(t, err)
	assert.False(t, report.Ready)

	msgs := make([]string, 0, len(report.Issues))
	for _, i := range report.Issues {
		msgs = append(msgs, i.Message)
	}
	assert.Contains(t, msgs, "Le nom du transporteur est obligatoire.")
	assert.Contains(t, msgs, "La date de prise en charge par le transporteur est obligatoire.")
	assert.Contains(t, msgs, "Le mode de transport est obligatoire.")
}

func TestCheck_UnknownDocument(t *testing.T) {
	uc, _ := newUseCase(t)

	_, err := uc.Check(context.Background(), "PAOH-00000000-NOPE", domain.SignatureEmission)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
