package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Victor-armando18/service-bspaoh/internal/domain"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
	"github.com/Victor-armando18/service-bspaoh/internal/infrastructure/memory"
	"github.com/Victor-armando18/service-bspaoh/internal/interfaces"
)

const (
	emitterSiret     = "11111111111111"
	transporterSiret = "22222222222222"
	destinationSiret = "33333333333333"

	emitterUser     = "u-emitter"
	transporterUser = "u-transporter"
	destinationUser = "u-destination"
)

var clock = time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC)

const fullInput = `{
	"waste": {
		"code": "18 01 02",
		"type": "PAOH",
		"packagings": [{"type": "RELIQUAIRE", "volume": 10, "quantity": 1, "consistence": "SOLIDE", "identificationCodes": ["A1"]}]
	},
	"emitter": {
		"company": {"siret": "11111111111111", "name": "Nom saisi", "contact": "Jeanne Martin", "phone": "0102030405", "mail": "jeanne@hopital.fr"},
		"emission": {"detail": {"weight": {"value": 12.5, "isEstimate": false}}}
	},
	"destination": {
		"company": {"siret": "33333333333333", "contact": "Paul Durand", "phone": "0387000000", "mail": "paul@crematorium.fr"}
	},
	"transporter": {
		"company": {"siret": "22222222222222", "contact": "Luc Bernard", "phone": "0320000000", "mail": "luc@transports.fr"},
		"recepisse": {"isExempted": false},
		"transport": {"mode": "ROAD", "plates": ["AB-123-CD"]}
	}
}`

type fixture struct {
	svc  *BspaohService
	repo *memory.Repository
	dir  *memory.Directory
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := memory.NewDirectory(
		domain.Company{Siret: emitterSiret, Name: "Hôpital Saint-Louis", Address: "1 avenue Claude Vellefaux 75010 Paris",
			CompanyTypes: []domain.CompanyType{domain.CompanyProducer}},
		domain.Company{Siret: transporterSiret, Name: "Transports Funéraires du Nord", Address: "12 rue du Quai 59000 Lille",
			CompanyTypes: []domain.CompanyType{domain.CompanyTransporter},
			TransporterReceipt: &domain.TransporterReceipt{Number: "REC-59-0042", Department: "59",
				ValidityLimit: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}},
		domain.Company{Siret: destinationSiret, Name: "Crématorium de l'Est", Address: "3 route de Metz 57000 Metz",
			CompanyTypes: []domain.CompanyType{domain.CompanyCrematorium}},
	)
	users := memory.NewUsers().
		Add(emitterUser, emitterSiret).
		Add(transporterUser, transporterSiret).
		Add(destinationUser, destinationSiret)

	eng, err := interfaces.NewEngine(context.Background(), "v1", dir, nil)
	require.NoError(t, err)

	repo := memory.NewRepository()
	svc := NewBspaohService(repo, eng, users, nil)
	svc.now = func() time.Time { return clock }
	return fixture{svc: svc, repo: repo, dir: dir}
}

func parse(t *testing.T, raw string) model.Input {
	t.Helper()
	in, err := model.ParseInput([]byte(raw))
	require.NoError(t, err)
	return in
}

func sign(t *testing.T, f fixture, user, id string, typ domain.SignatureType) *model.Bspaoh {
	t.Helper()
	b, err := f.svc.Sign(context.Background(), user, id, interfaces.SignatureInput{Type: typ, Author: "Signataire"})
	require.NoError(t, err, "sign %s", typ)
	return b
}

func TestCreate_FillsCompaniesAndStartsInitial(t *testing.T) {
	f := newFixture(t)

	b, err := f.svc.Create(context.Background(), emitterUser, parse(t, fullInput), false)
	require.NoError(t, err)

	assert.Regexp(t, `^PAOH-20240502-[0-9A-F]{8}$`, b.ID)
	assert.Equal(t, domain.StatusInitial, b.Status)
	assert.Equal(t, "Hôpital Saint-Louis", *b.EmitterCompanyName)
	assert.Equal(t, "Crématorium de l'Est", *b.DestinationCompanyName)
	assert.Equal(t, "REC-59-0042", *b.TransporterRecepisseNumber)

	stored, err := f.svc.Get(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ToMap(), stored.ToMap())

	events, err := f.repo.Events(context.Background(), b.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventCreated, events[0].Type)
	assert.Equal(t, emitterUser, events[0].Actor)
}

func TestCreate_RejectsUserOutsideTheDocument(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), "u-unknown", parse(t, fullInput), false)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	assert.EqualError(t, err, msgCreateNotMember)
}

func TestCreate_NonDraftRequiresEmissionFields(t *testing.T) {
	f := newFixture(t)
	in := parse(t, `{"emitter":{"company":{"siret":"11111111111111"}}}`)

	_, err := f.svc.Create(context.Background(), emitterUser, in, false)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	msgs := make([]string, 0, len(verr.Issues))
	for _, i := range verr.Issues {
		assert.NotContains(t, i.Message, "verrouillé", "nothing is sealed before the document exists")
		msgs = append(msgs, i.Message)
	}
	assert.Contains(t, msgs, "Le code famille est obligatoire.")

	b, err := f.svc.Create(context.Background(), emitterUser, in, true)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, b.Status)
	assert.True(t, b.IsDraft)
}

func TestPublish(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	incomplete, err := f.svc.Create(ctx, emitterUser, parse(t, `{"emitter":{"company":{"siret":"11111111111111"}}}`), true)
	require.NoError(t, err)
	_, err = f.svc.Publish(ctx, emitterUser, incomplete.ID)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	draft, err := f.svc.Create(ctx, emitterUser, parse(t, fullInput), true)
	require.NoError(t, err)
	published, err := f.svc.Publish(ctx, emitterUser, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInitial, published.Status)
	assert.False(t, published.IsDraft)

	_, err = f.svc.Publish(ctx, emitterUser, draft.ID)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	assert.EqualError(t, err, msgNotDraft)
}

func TestFullLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, emitterUser, parse(t, fullInput), false)
	require.NoError(t, err)
	id := b.ID

	b = sign(t, f, emitterUser, id, domain.SignatureEmission)
	assert.Equal(t, domain.StatusSignedByProducer, b.Status)
	assert.Equal(t, "Signataire", *b.EmitterEmissionSignatureAuthor)

	b = sign(t, f, transporterUser, id, domain.SignatureTransport)
	assert.Equal(t, domain.StatusSent, b.Status)
	require.NotNil(t, b.TransporterTakenOverAt)
	assert.True(t, clock.Equal(*b.TransporterTakenOverAt))

	b = sign(t, f, transporterUser, id, domain.SignatureDelivery)
	assert.Equal(t, domain.StatusSent, b.Status)
	assert.NotNil(t, b.HandedOverToDestinationDate)

	_, err = f.svc.Sign(ctx, transporterUser, id, interfaces.SignatureInput{Type: domain.SignatureDelivery, Author: "Signataire"})
	assert.Equal(t, domain.KindInvalidTransition, domain.KindOf(err))

	_, err = f.svc.Update(ctx, destinationUser, id, parse(t, `{"destination":{"reception":{
		"date":"2024-05-02T12:00:00Z",
		"acceptation":{"status":"ACCEPTED","packagings":[{"id":"packaging_0","acceptation":"ACCEPTED"}]},
		"detail":{"receivedWeight":12}}}}`))
	require.NoError(t, err)

	b = sign(t, f, destinationUser, id, domain.SignatureReception)
	assert.Equal(t, domain.StatusReceived, b.Status)
	assert.Equal(t, 12.0, *b.DestinationReceptionWasteAcceptedWeightValue)

	_, err = f.svc.Update(ctx, destinationUser, id, parse(t, `{"destination":{"operation":{"code":"R 1","date":"2024-05-03T09:00:00Z"}}}`))
	require.NoError(t, err)

	b = sign(t, f, destinationUser, id, domain.SignatureOperation)
	assert.Equal(t, domain.StatusProcessed, b.Status)

	_, err = f.svc.Sign(ctx, destinationUser, id, interfaces.SignatureInput{Type: domain.SignatureOperation, Author: "Signataire"})
	assert.Equal(t, domain.KindAlreadySigned, domain.KindOf(err))

	events, err := f.repo.Events(ctx, id)
	require.NoError(t, err)
	assert.Len(t, events, 8)
	last := events[len(events)-1]
	assert.Equal(t, domain.EventSigned, last.Type)
	var patch map[string]any
	require.NoError(t, json.Unmarshal(last.Data, &patch))
	assert.Equal(t, "PROCESSED", patch["status"])
}

func TestUpdate_SealedEmitterFieldAfterEmission(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, emitterUser, parse(t, fullInput), false)
	require.NoError(t, err)
	sign(t, f, emitterUser, b.ID, domain.SignatureEmission)

	_, err = f.svc.Update(ctx, transporterUser, b.ID, parse(t, `{"emitter":{"company":{"siret":"44444444444444"}}}`))
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Issues, 1)
	assert.Equal(t, "Le SIRET de l'entreprise émettrice a été verrouillé via signature et ne peut pas être modifié.", verr.Issues[0].Message)

	// l'émetteur peut encore corriger ses propres champs tant que le transporteur n'a pas signé
	updated, err := f.svc.Update(ctx, emitterUser, b.ID, parse(t, `{"emitter":{"company":{"contact":"Claire Petit"}}}`))
	require.NoError(t, err)
	assert.Equal(t, "Claire Petit", *updated.EmitterCompanyContact)
}

func TestUpdate_Forbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, emitterUser, parse(t, fullInput), false)
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, "u-unknown", b.ID, parse(t, `{"waste":{"adr":"UN 3291"}}`))
	assert.EqualError(t, err, msgUpdateNotMember)

	_, err = f.svc.Update(ctx, emitterUser, b.ID, parse(t, `{"emitter":{"company":{"siret":"44444444444444"}}}`))
	assert.EqualError(t, err, msgRemoveOwnCompany)

	_, err = f.svc.Update(ctx, emitterUser, "PAOH-00000000-MISSING", model.Input{})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestSign_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, emitterUser, parse(t, fullInput), false)
	require.NoError(t, err)

	_, err = f.svc.Sign(ctx, emitterUser, b.ID, interfaces.SignatureInput{Type: domain.SignatureEmission, Author: "  "})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = f.svc.Sign(ctx, transporterUser, b.ID, interfaces.SignatureInput{Type: domain.SignatureEmission, Author: "Luc"})
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))

	_, err = f.svc.Sign(ctx, transporterUser, b.ID, interfaces.SignatureInput{Type: domain.SignatureTransport, Author: "Luc"})
	assert.Equal(t, domain.KindInvalidTransition, domain.KindOf(err))

	sign(t, f, emitterUser, b.ID, domain.SignatureEmission)
	_, err = f.svc.Sign(ctx, emitterUser, b.ID, interfaces.SignatureInput{Type: domain.SignatureEmission, Author: "Jeanne"})
	assert.Equal(t, domain.KindAlreadySigned, domain.KindOf(err))

	stored, err := f.svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSignedByProducer, stored.Status)
}

func TestSign_UsesGivenDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, emitterUser, parse(t, fullInput), false)
	require.NoError(t, err)

	at := time.Date(2024, 4, 30, 16, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	signed, err := f.svc.Sign(ctx, emitterUser, b.ID, interfaces.SignatureInput{Type: domain.SignatureEmission, Author: "Jeanne", Date: &at})
	require.NoError(t, err)
	assert.True(t, at.Equal(*signed.EmitterEmissionSignatureDate))
}

func TestSealedFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, emitterUser, parse(t, fullInput), false)
	require.NoError(t, err)

	none, err := f.svc.SealedFields(ctx, transporterUser, b.ID)
	require.NoError(t, err)
	assert.Empty(t, none)

	sign(t, f, emitterUser, b.ID, domain.SignatureEmission)

	forTransporter, err := f.svc.SealedFields(ctx, transporterUser, b.ID)
	require.NoError(t, err)
	assert.Contains(t, forTransporter, "emitter.company.siret")
	assert.Contains(t, forTransporter, "destination.company.siret")
	assert.NotContains(t, forTransporter, "transporter.transport.plates")

	forEmitter, err := f.svc.SealedFields(ctx, emitterUser, b.ID)
	require.NoError(t, err)
	assert.Contains(t, forEmitter, "emitter.company.siret")
	assert.NotContains(t, forEmitter, "destination.company.siret")
}

func TestDraft_RestrictedToCreatingCompanies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	draft, err := f.svc.Create(ctx, emitterUser, parse(t, fullInput), true)
	require.NoError(t, err)
	assert.Equal(t, []string{emitterSiret}, draft.CreatorOrgIDs)

	_, err = f.svc.Update(ctx, transporterUser, draft.ID, parse(t, `{"transporter":{"customInfo":"plop"}}`))
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	assert.EqualError(t, err, msgUpdateNotMember)

	_, err = f.svc.Publish(ctx, transporterUser, draft.ID)
	assert.EqualError(t, err, msgUpdateNotMember)

	_, err = f.svc.Update(ctx, emitterUser, draft.ID, parse(t, `{"emitter":{"customInfo":"plop"}}`))
	require.NoError(t, err)

	published, err := f.svc.Publish(ctx, emitterUser, draft.ID)
	require.NoError(t, err)
	assert.Empty(t, published.CreatorOrgIDs)

	_, err = f.svc.Update(ctx, transporterUser, draft.ID, parse(t, `{"transporter":{"customInfo":"plop"}}`))
	assert.NoError(t, err)
}

func TestDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.svc.Create(ctx, emitterUser, parse(t, fullInput), false)
	require.NoError(t, err)
	sign(t, f, emitterUser, b.ID, domain.SignatureEmission)
	sign(t, f, transporterUser, b.ID, domain.SignatureTransport)

	// os dados do registo mudaram depois da criação
	f.dir.Register(domain.Company{Siret: emitterSiret, Name: "Hôpital Saint-Louis (AP-HP)", Address: "2 place du Docteur Fournier 75010 Paris",
		CompanyTypes: []domain.CompanyType{domain.CompanyProducer}})
	f.dir.Register(domain.Company{Siret: transporterSiret, Name: "TFN", Address: "12 rue du Quai 59000 Lille",
		CompanyTypes: []domain.CompanyType{domain.CompanyTransporter}})

	dup, err := f.svc.Duplicate(ctx, emitterUser, b.ID)
	require.NoError(t, err)

	assert.NotEqual(t, b.ID, dup.ID)
	assert.Equal(t, domain.StatusDraft, dup.Status)
	assert.True(t, dup.IsDraft)
	require.NotNil(t, dup.IsDuplicateOf)
	assert.Equal(t, b.ID, *dup.IsDuplicateOf)
	assert.Equal(t, []string{emitterSiret}, dup.CreatorOrgIDs)

	assert.Nil(t, dup.EmitterEmissionSignatureDate)
	assert.Nil(t, dup.TransporterTransportSignatureDate)
	assert.Nil(t, dup.TransporterTakenOverAt)
	assert.Equal(t, "18 01 02", *dup.WasteCode)
	assert.Equal(t, []string{"AB-123-CD"}, dup.TransporterTransportPlates)

	assert.Equal(t, "Hôpital Saint-Louis (AP-HP)", *dup.EmitterCompanyName)
	assert.Equal(t, "2 place du Docteur Fournier 75010 Paris", *dup.EmitterCompanyAddress)
	assert.Equal(t, "TFN", *dup.TransporterCompanyName)
	assert.Nil(t, dup.TransporterRecepisseNumber)

	source, err := f.svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSent, source.Status)

	events, err := f.repo.Events(ctx, dup.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventDuplicated, events[0].Type)

	_, err = f.svc.Duplicate(ctx, "u-unknown", b.ID)
	assert.EqualError(t, err, msgDuplicateMember)
}
