package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Victor-armando18/service-bspaoh/internal/domain"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/engine"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
	"github.com/Victor-armando18/service-bspaoh/internal/infrastructure"
	"github.com/Victor-armando18/service-bspaoh/internal/infrastructure/diff"
	"github.com/Victor-armando18/service-bspaoh/internal/infrastructure/jsonlogic"
	"github.com/Victor-armando18/service-bspaoh/internal/infrastructure/memory"
)

const (
	emitterSiret     = "11111111111111"
	transporterSiret = "22222222222222"
	destinationSiret = "33333333333333"
)

var day = time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC)

func directory() *memory.Directory {
	return memory.NewDirectory(
		domain.Company{
			Siret: emitterSiret, Name: "Hôpital Saint-Louis", Address: "1 avenue Claude Vellefaux 75010 Paris",
			CompanyTypes: []domain.CompanyType{domain.CompanyProducer},
		},
		domain.Company{
			Siret: transporterSiret, Name: "Transports Funéraires du Nord", Address: "12 rue du Quai 59000 Lille",
			CompanyTypes: []domain.CompanyType{domain.CompanyTransporter},
			TransporterReceipt: &domain.TransporterReceipt{
				Number: "REC-59-0042", Department: "59", ValidityLimit: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		domain.Company{
			Siret: destinationSiret, Name: "Crématorium de l'Est", Address: "3 route de Metz 57000 Metz",
			CompanyTypes: []domain.CompanyType{domain.CompanyCrematorium},
		},
	)
}

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	pack, err := infrastructure.NewEmbeddedRuleLoader().Load(context.Background(), "v1")
	require.NoError(t, err)
	return engine.New(pack, jsonlogic.NewExecutor(), diff.New(), directory(), nil)
}

// initialDoc devolve um bordereau completo para a etapa EMISSION, ainda sem assinaturas.
func initialDoc() *model.Bspaoh {
	b := &model.Bspaoh{
		ID:        "PAOH-20240502-0A1B2C3D",
		Status:    domain.StatusInitial,
		CreatedAt: day,
		UpdatedAt: day,

		WasteCode: model.Ptr("18 01 02"),
		WasteType: model.Ptr(domain.WastePaoh),
		WastePackagings: []model.Packaging{
			{ID: "packaging_0", Type: domain.PackagingReliquaire, Volume: model.Ptr(10.0), Quantity: 1, Consistence: domain.ConsistenceSolide, IdentificationCodes: []string{"A1"}},
		},

		EmitterCompanyName:           model.Ptr("Hôpital Saint-Louis"),
		EmitterCompanySiret:          model.Ptr(emitterSiret),
		EmitterCompanyAddress:        model.Ptr("1 avenue Claude Vellefaux 75010 Paris"),
		EmitterCompanyContact:        model.Ptr("Jeanne Martin"),
		EmitterCompanyPhone:          model.Ptr("0102030405"),
		EmitterCompanyMail:           model.Ptr("jeanne@hopital.fr"),
		EmitterWasteWeightValue:      model.Ptr(12.5),
		EmitterWasteWeightIsEstimate: model.Ptr(false),

		DestinationCompanyName:    model.Ptr("Crématorium de l'Est"),
		DestinationCompanySiret:   model.Ptr(destinationSiret),
		DestinationCompanyAddress: model.Ptr("3 route de Metz 57000 Metz"),
		DestinationCompanyContact: model.Ptr("Paul Durand"),
		DestinationCompanyPhone:   model.Ptr("0387000000"),
		DestinationCompanyMail:    model.Ptr("paul@crematorium.fr"),
	}
	b.TransporterNumber = 1
	b.TransporterCompanyName = model.Ptr("Transports Funéraires du Nord")
	b.TransporterCompanySiret = model.Ptr(transporterSiret)
	b.TransporterCompanyAddress = model.Ptr("12 rue du Quai 59000 Lille")
	b.TransporterCompanyContact = model.Ptr("Luc Bernard")
	b.TransporterCompanyPhone = model.Ptr("0320000000")
	b.TransporterCompanyMail = model.Ptr("luc@transports.fr")
	b.TransporterRecepisseIsExempted = model.Ptr(false)
	b.TransporterRecepisseNumber = model.Ptr("REC-59-0042")
	b.TransporterRecepisseDepartment = model.Ptr("59")
	b.TransporterRecepisseValidityLimit = model.Ptr(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	b.TransporterTransportMode = model.Ptr(domain.TransportRoad)
	b.TransporterTransportPlates = []string{"AB-123-CD"}
	b.TransporterTakenOverAt = model.Ptr(day)
	return b
}

func signedByProducerDoc() *model.Bspaoh {
	b := initialDoc()
	b.Status = domain.StatusSignedByProducer
	b.EmitterEmissionSignatureDate = model.Ptr(day)
	b.EmitterEmissionSignatureAuthor = model.Ptr("Jeanne Martin")
	return b
}

// sentDoc devolve um bordereau enviado, com a receção já preenchida (aceite).
func sentDoc() *model.Bspaoh {
	b := signedByProducerDoc()
	b.Status = domain.StatusSent
	b.TransporterTransportSignatureDate = model.Ptr(day)
	b.TransporterTransportSignatureAuthor = model.Ptr("Luc Bernard")

	b.DestinationReceptionDate = model.Ptr(day.Add(4 * time.Hour))
	b.DestinationReceptionAcceptationStatus = model.Ptr(domain.AcceptationAccepted)
	b.DestinationReceptionWastePackagingsAcceptation = []model.PackagingAcceptation{
		{ID: "packaging_0", Acceptation: domain.PackagingAccepted},
	}
	b.DestinationReceptionWasteReceivedWeightValue = model.Ptr(12.0)
	return b
}

func user(orgIDs ...string) *domain.User {
	return &domain.User{ID: "u-" + orgIDs[0], OrgIDs: orgIDs}
}

func input(t *testing.T, raw string) model.Input {
	t.Helper()
	in, err := model.ParseInput([]byte(raw))
	require.NoError(t, err)
	return in
}

func messages(issues []domain.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Message)
	}
	return out
}
