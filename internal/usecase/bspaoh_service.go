package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"

	"github.com/Victor-armando18/service-bspaoh/internal/domain"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/engine"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/lifecycle"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
	"github.com/Victor-armando18/service-bspaoh/internal/infrastructure"
	"github.com/Victor-armando18/service-bspaoh/internal/interfaces"
)

const (
	msgCreateNotMember  = "Vous ne pouvez pas créer un bordereau sur lequel votre entreprise n'apparait pas"
	msgUpdateNotMember  = "Vous ne pouvez pas modifier un bordereau sur lequel votre entreprise n'apparait pas"
	msgDuplicateMember  = "Vous ne pouvez pas dupliquer un bordereau sur lequel votre entreprise n'apparait pas"
	msgRemoveOwnCompany = "Vous ne pouvez pas enlever votre établissement du bordereau"
	msgNotDraft         = "Seul un bordereau en brouillon peut être publié"
	msgAuthorRequired   = "Le nom de l'auteur de la signature est obligatoire"
)

type BspaohService struct {
	repo      interfaces.Repository
	validator interfaces.Validator
	users     domain.UserResolver
	logger    log.Logger
	now       func() time.Time
}

func NewBspaohService(repo interfaces.Repository, validator interfaces.Validator, users domain.UserResolver, logger log.Logger) *BspaohService {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &BspaohService{
		repo:      repo,
		validator: validator,
		users:     users,
		logger:    log.With(logger, "component", "bspaoh-service"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

var _ interfaces.BspaohFacade = (*BspaohService)(nil)

func (s *BspaohService) Create(ctx context.Context, userID string, input model.Input, isDraft bool) (*model.Bspaoh, error) {
	user, err := s.resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	draft, err := preview(nil, input)
	if err != nil {
		return nil, err
	}
	if !engine.UserFunctionsFor(user, draft).Any() {
		return nil, &domain.ForbiddenError{Message: msgCreateNotMember}
	}

	var stage domain.SignatureType
	if !isDraft {
		stage = domain.SignatureEmission
	}
	res, err := s.validator.Validate(ctx, input, nil, domain.ValidationContext{
		CurrentSignatureType:         stage,
		IsCreation:                   true,
		EnableCompletionTransformers: true,
		User:                         user,
		IsDraft:                      &isDraft,
	})
	if err != nil {
		return nil, err
	}

	now := s.now()
	b := res.Bspaoh
	b.ID = newReadableID(now)
	b.CreatedAt = now
	b.UpdatedAt = now
	b.IsDraft = isDraft
	b.Status = domain.StatusInitial
	if isDraft {
		b.Status = domain.StatusDraft
		b.CreatorOrgIDs = orgsOnDocument(user, b)
	}

	ev, err := s.event(b.ID, domain.EventCreated, userID, nil, b)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, b, ev); err != nil {
		level.Error(s.logger).Log("msg", "create failed", "id", b.ID, "err", err)
		return nil, fmt.Errorf("create bspaoh: %w", err)
	}
	level.Info(s.logger).Log("msg", "bspaoh created", "id", b.ID, "status", b.Status, "user", userID, "rules", res.RulesVersion)
	return b, nil
}

func (s *BspaohService) Update(ctx context.Context, userID, id string, input model.Input) (*model.Bspaoh, error) {
	persisted, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	user, err := s.resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	uf := engine.UserFunctionsFor(user, persisted)
	if !uf.Any() || !canAccessDraft(user, persisted) {
		return nil, &domain.ForbiddenError{Message: msgUpdateNotMember}
	}
	next, err := preview(persisted, input)
	if err != nil {
		return nil, err
	}
	if !engine.UserFunctionsFor(user, next).Any() {
		return nil, &domain.ForbiddenError{Message: msgRemoveOwnCompany}
	}

	// tant que seul l'émetteur a signé, il peut encore corriger son bordereau
	stage := engine.CurrentSignatureType(persisted)
	if stage == domain.SignatureEmission && uf.IsEmitter {
		stage = ""
	}

	res, err := s.validator.Validate(ctx, input, persisted, domain.ValidationContext{
		CurrentSignatureType:         stage,
		EnableCompletionTransformers: true,
		User:                         user,
	})
	if err != nil {
		return nil, err
	}

	b := res.Bspaoh
	b.UpdatedAt = s.now()
	ev, err := s.event(b.ID, domain.EventUpdated, userID, persisted, b)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, b, persisted.Status, ev); err != nil {
		return nil, s.writeError("update", id, err)
	}
	level.Info(s.logger).Log("msg", "bspaoh updated", "id", id, "user", userID, "fields", len(res.UpdatedFields))
	return b, nil
}

// Publish passe um rascunho a INITIAL depois de validado ao nível EMISSION.
func (s *BspaohService) Publish(ctx context.Context, userID, id string) (*model.Bspaoh, error) {
	persisted, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	user, err := s.resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !engine.UserFunctionsFor(user, persisted).Any() || !canAccessDraft(user, persisted) {
		return nil, &domain.ForbiddenError{Message: msgUpdateNotMember}
	}
	if persisted.Status != domain.StatusDraft {
		return nil, &domain.ForbiddenError{Message: msgNotDraft}
	}

	notDraft := false
	res, err := s.validator.Validate(ctx, model.Input{}, persisted, domain.ValidationContext{
		CurrentSignatureType: domain.SignatureEmission,
		User:                 user,
		IsDraft:              &notDraft,
	})
	if err != nil {
		return nil, err
	}

	b := res.Bspaoh
	b.Status = domain.StatusInitial
	b.IsDraft = false
	b.CreatorOrgIDs = nil
	b.UpdatedAt = s.now()
	ev, err := s.event(b.ID, domain.EventPublished, userID, persisted, b)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, b, domain.StatusDraft, ev); err != nil {
		return nil, s.writeError("publish", id, err)
	}
	level.Info(s.logger).Log("msg", "bspaoh published", "id", id, "user", userID)
	return b, nil
}

func (s *BspaohService) Sign(ctx context.Context, userID, id string, sig interfaces.SignatureInput) (*model.Bspaoh, error) {
	if strings.TrimSpace(sig.Author) == "" {
		return nil, &domain.ValidationError{Issues: []domain.Issue{{Field: "author", Path: []string{"author"}, Message: msgAuthorRequired}}}
	}
	stage, ok := engine.StageFor(sig.Type)
	if !ok {
		return nil, &domain.InvalidTransitionError{Event: sig.Type}
	}
	persisted, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	user, err := s.resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !canSign(engine.UserFunctionsFor(user, persisted), sig.Type) {
		return nil, &domain.ForbiddenError{}
	}

	next, err := lifecycle.NextStatus(persisted, sig.Type)
	if err != nil {
		return nil, err
	}

	date := s.now()
	if sig.Date != nil {
		date = sig.Date.UTC()
	}
	subject, err := persisted.Clone()
	if err != nil {
		return nil, err
	}
	// a data de prise en charge / remise assume a data da assinatura quando não foi preenchida
	switch sig.Type {
	case domain.SignatureTransport:
		if subject.TransporterTakenOverAt == nil {
			subject.TransporterTakenOverAt = &date
		}
	case domain.SignatureDelivery:
		if subject.HandedOverToDestinationDate == nil {
			subject.HandedOverToDestinationDate = &date
		}
	}

	res, err := s.validator.Validate(ctx, model.Input{}, subject, domain.ValidationContext{
		CurrentSignatureType: sig.Type,
		User:                 user,
	})
	if err != nil {
		return nil, err
	}

	b := res.Bspaoh
	if err := stamp(b, stage, date, sig.Author); err != nil {
		return nil, err
	}
	b.Status = next
	b.UpdatedAt = s.now()

	ev, err := s.event(b.ID, domain.EventSigned, userID, persisted, b)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, b, persisted.Status, ev); err != nil {
		return nil, s.writeError("sign", id, err)
	}
	level.Info(s.logger).Log("msg", "bspaoh signed", "id", id, "type", sig.Type, "from", persisted.Status, "to", next, "user", userID)
	return b, nil
}

// Duplicate cria um novo rascunho a partir de um bordereau existente. Assinaturas, receção e
// tratamento não são copiados; os dados das empresas são relidos do registo.
func (s *BspaohService) Duplicate(ctx context.Context, userID, id string) (*model.Bspaoh, error) {
	original, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	user, err := s.resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !engine.UserFunctionsFor(user, original).Any() || !canAccessDraft(user, original) {
		return nil, &domain.ForbiddenError{Message: msgDuplicateMember}
	}

	cp, err := original.Clone()
	if err != nil {
		return nil, err
	}
	for _, f := range duplicateReset {
		acc, _ := model.AccessorFor(f)
		acc.Clear(cp)
	}

	draft := true
	res, err := s.validator.Validate(ctx, model.Input{}, cp, domain.ValidationContext{
		IsCreation:                   true,
		EnableCompletionTransformers: true,
		User:                         user,
		IsDraft:                      &draft,
	})
	if err != nil {
		return nil, err
	}

	now := s.now()
	b := res.Bspaoh
	b.ID = newReadableID(now)
	b.Status = domain.StatusDraft
	b.IsDraft = true
	b.IsDeleted = false
	b.IsDuplicateOf = model.Ptr(original.ID)
	b.CreatorOrgIDs = orgsOnDocument(user, b)
	b.CreatedAt = now
	b.UpdatedAt = now

	ev, err := s.event(b.ID, domain.EventDuplicated, userID, nil, b)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, b, ev); err != nil {
		level.Error(s.logger).Log("msg", "duplicate failed", "id", id, "err", err)
		return nil, fmt.Errorf("duplicate bspaoh %s: %w", id, err)
	}
	level.Info(s.logger).Log("msg", "bspaoh duplicated", "id", b.ID, "from", id, "user", userID)
	return b, nil
}

func (s *BspaohService) Get(ctx context.Context, id string) (*model.Bspaoh, error) {
	return s.repo.Get(ctx, id)
}

// SealedFields devolve os caminhos externos dos campos que o utilizador já não pode alterar.
func (s *BspaohService) SealedFields(ctx context.Context, userID, id string) ([]string, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	user, err := s.resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return engine.SealedPathsFor(b, user), nil
}

func (s *BspaohService) resolveUser(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.users.Resolve(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		// utilizador sem empresas: as verificações de pertença recusam-no
		return &domain.User{ID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve user %s: %w", userID, err)
	}
	return u, nil
}

func (s *BspaohService) event(id string, typ domain.EventType, actor string, before, after *model.Bspaoh) (domain.Event, error) {
	patch, err := infrastructure.MergePatch(before, after)
	if err != nil {
		return domain.Event{}, err
	}
	return domain.Event{
		ID:        uuid.NewString(),
		StreamID:  id,
		Type:      typ,
		Actor:     actor,
		Data:      patch,
		CreatedAt: s.now(),
	}, nil
}

func (s *BspaohService) writeError(op, id string, err error) error {
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		return err
	}
	if errors.Is(err, domain.ErrStatusConflict) {
		level.Warn(s.logger).Log("msg", op+" conflict", "id", id)
		return fmt.Errorf("%s bspaoh %s: %w", op, id, err)
	}
	level.Error(s.logger).Log("msg", op+" failed", "id", id, "err", err)
	return fmt.Errorf("%s bspaoh %s: %w", op, id, err)
}

func preview(persisted *model.Bspaoh, input model.Input) (*model.Bspaoh, error) {
	flat, err := input.Flatten()
	if err != nil {
		return nil, err
	}
	b, err := engine.BuildUnparsed(persisted, flat, nil)
	if err != nil {
		return nil, &domain.ValidationError{Issues: []domain.Issue{{Message: err.Error()}}}
	}
	return b, nil
}

// canAccessDraft restringe um rascunho às empresas que o criaram.
func canAccessDraft(u *domain.User, b *model.Bspaoh) bool {
	if b.Status != domain.StatusDraft || len(b.CreatorOrgIDs) == 0 {
		return true
	}
	for _, org := range b.CreatorOrgIDs {
		if u.BelongsTo(org) {
			return true
		}
	}
	return false
}

func orgsOnDocument(u *domain.User, b *model.Bspaoh) []string {
	out := []string{}
	for _, s := range []*string{b.EmitterCompanySiret, b.TransporterCompanySiret, b.TransporterCompanyVatNumber, b.DestinationCompanySiret} {
		if s != nil && u.BelongsTo(*s) && !slices.Contains(out, *s) {
			out = append(out, *s)
		}
	}
	return out
}

func canSign(uf domain.UserFunctions, t domain.SignatureType) bool {
	switch t {
	case domain.SignatureEmission:
		return uf.IsEmitter
	case domain.SignatureTransport, domain.SignatureDelivery:
		return uf.IsTransporter
	case domain.SignatureReception, domain.SignatureOperation:
		return uf.IsDestination
	}
	return false
}

func stamp(b *model.Bspaoh, stage engine.SignatureStage, date time.Time, author string) error {
	marker, _ := model.AccessorFor(stage.Marker)
	by, _ := model.AccessorFor(stage.Author)
	raw, err := date.MarshalJSON()
	if err != nil {
		return err
	}
	if err := marker.Decode(b, raw); err != nil {
		return err
	}
	name, err := json.Marshal(author)
	if err != nil {
		return err
	}
	return by.Decode(b, name)
}

var duplicateReset = []model.Field{
	model.EmitterEmissionSignatureDate,
	model.EmitterEmissionSignatureAuthor,
	model.TransporterTakenOverAt,
	model.TransporterTransportSignatureDate,
	model.TransporterTransportSignatureAuthor,
	model.HandedOverToDestinationDate,
	model.HandedOverToDestinationSignatureDate,
	model.HandedOverToDestinationSignatureAuthor,
	model.DestinationReceptionDate,
	model.DestinationReceptionAcceptationStatus,
	model.DestinationReceptionWasteRefusalReason,
	model.DestinationReceptionWastePackagingsAcceptation,
	model.DestinationReceptionWasteReceivedWeightValue,
	model.DestinationReceptionWasteAcceptedWeightValue,
	model.DestinationReceptionWasteRefusedWeightValue,
	model.DestinationReceptionWasteQuantityValue,
	model.DestinationReceptionSignatureDate,
	model.DestinationReceptionSignatureAuthor,
	model.DestinationOperationCode,
	model.DestinationOperationDate,
	model.DestinationOperationSignatureDate,
	model.DestinationOperationSignatureAuthor,
}

// newReadableID gera ids no formato PAOH-AAAAMMDD-XXXXXXXX.
func newReadableID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("PAOH-%s-%s", now.Format("20060102"), suffix)
}
