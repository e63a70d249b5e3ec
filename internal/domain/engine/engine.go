package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/Victor-armando18/service-bspaoh/internal/domain"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
)

// Engine compõe a validação completa de um bordereau. Não guarda estado entre chamadas.
type Engine struct {
	pack      RulePack
	executor  RuleExecutor
	differ    Differ
	directory domain.CompanyDirectory
	logger    log.Logger
}

func New(pack RulePack, executor RuleExecutor, differ Differ, directory domain.CompanyDirectory, logger log.Logger) *Engine {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Engine{
		pack:      pack,
		executor:  executor,
		differ:    differ,
		directory: directory,
		logger:    log.With(logger, "component", "engine"),
	}
}

func (e *Engine) RulesVersion() string { return e.pack.Version }

// Validate corre o pipeline build -> diff -> transform -> check -> derive.
// Devolve *domain.ValidationError com todas as violações encontradas.
func (e *Engine) Validate(ctx context.Context, input model.Input, persisted *model.Bspaoh, vctx domain.ValidationContext) (*Result, error) {
	res := &Result{RulesVersion: e.pack.Version}

	flat, err := input.Flatten()
	if err != nil {
		return nil, err
	}
	candidate, err := BuildUnparsed(persisted, flat, vctx.IsDraft)
	if err != nil {
		return nil, &domain.ValidationError{Issues: []domain.Issue{{Message: err.Error()}}}
	}
	res.log(PhaseBuild, "", "candidate built")

	updated, err := e.differ.UpdatedFields(flat, persisted)
	if err != nil {
		return nil, fmt.Errorf("diff: %w", err)
	}
	res.UpdatedFields = updated
	res.log(PhaseDiff, "", fmt.Sprintf("%d updated fields", len(updated)))

	stages := AncestorsOf(vctx.CurrentSignatureType)
	res.StagesChecked = stages

	subject := persisted
	if subject == nil {
		subject = candidate
	}
	uf := UserFunctionsFor(vctx.User, subject)

	if vctx.EnableCompletionTransformers {
		transformStages := stages
		if vctx.IsCreation {
			transformStages = []domain.SignatureType{}
		}
		sealed := SealedFields(candidate, uf, transformStages)
		if err := runTransformers(ctx, e.directory, candidate, sealed); err != nil {
			return nil, fmt.Errorf("completion transformers: %w", err)
		}
		res.log(PhaseTransform, "", "registry and recepisse applied")
	}

	issues := checkFormats(candidate)
	issues = append(issues, CheckSealedAndRequired(CheckParams{
		Candidate:     candidate,
		UpdatedFields: updated,
		UserFunctions: uf,
		StagesToCheck: stages,
	})...)
	issues = append(issues, checkPackagingsAcceptation(candidate, stages)...)

	companyIssues, err := checkCompanies(ctx, e.directory, candidate)
	if err != nil {
		return nil, err
	}
	issues = append(issues, companyIssues...)

	guardIssues, err := e.runGuards(ctx, candidate, res)
	if err != nil {
		return nil, err
	}
	issues = append(issues, guardIssues...)
	res.log(PhaseCheck, "", fmt.Sprintf("%d issues", len(issues)))

	if len(issues) > 0 {
		level.Debug(e.logger).Log("msg", "validation failed", "id", candidate.ID, "stage", vctx.CurrentSignatureType, "issues", len(issues))
		return nil, &domain.ValidationError{Issues: issues}
	}

	if err := e.derive(ctx, candidate, res); err != nil {
		return nil, err
	}

	res.Bspaoh = candidate
	level.Debug(e.logger).Log("msg", "validation succeeded", "id", candidate.ID, "stage", vctx.CurrentSignatureType, "updated", len(updated))
	return res, nil
}

func (e *Engine) runGuards(ctx context.Context, b *model.Bspaoh, res *Result) ([]domain.Issue, error) {
	issues := []domain.Issue{}
	data := weightData(b)
	for _, rule := range e.pack.Phase(RulePhaseGuards) {
		out, err := e.executor.Execute(ctx, rule.Logic, data)
		if err != nil {
			return nil, fmt.Errorf("guard %s: %w", rule.ID, err)
		}
		if hit, ok := out.(bool); ok && hit {
			f := model.Field(rule.Field)
			issues = append(issues, domain.Issue{Field: rule.Field, Path: model.PathOf(f), Message: rule.ErrorMessage})
			res.log(PhaseCheck, rule.ID, "guard hit")
		}
	}
	return issues, nil
}

// derive calcula os campos derivados. O peso aceite nunca vem do input.
func (e *Engine) derive(ctx context.Context, b *model.Bspaoh, res *Result) error {
	b.DestinationReceptionWasteAcceptedWeightValue = nil
	if b.DestinationReceptionWasteReceivedWeightValue == nil {
		return nil
	}
	data := weightData(b)
	for _, rule := range e.pack.Phase(RulePhaseDerive) {
		out, err := e.executor.Execute(ctx, rule.Logic, data)
		if err != nil {
			return fmt.Errorf("derive %s: %w", rule.ID, err)
		}
		if out == nil {
			continue
		}
		acc, ok := model.AccessorFor(model.Field(rule.OutputKey))
		if !ok {
			return fmt.Errorf("derive %s: unknown output key %q", rule.ID, rule.OutputKey)
		}
		raw, err := json.Marshal(out)
		if err != nil {
			return fmt.Errorf("derive %s: %w", rule.ID, err)
		}
		if err := acc.Decode(b, raw); err != nil {
			return fmt.Errorf("derive %s: %w", rule.ID, err)
		}
		res.log(PhaseDerive, rule.ID, "set "+rule.OutputKey)
	}
	return nil
}

func (r *Result) log(phase PipelinePhase, ruleID, action string) {
	r.ExecutionLog = append(r.ExecutionLog, ExecutionStep{Phase: phase, RuleID: ruleID, Action: action})
}

// UserFunctionsFor diz que papéis o utilizador tem no bordereau.
func UserFunctionsFor(u *domain.User, b *model.Bspaoh) domain.UserFunctions {
	if u == nil || b == nil {
		return domain.UserFunctions{}
	}
	str := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	return domain.UserFunctions{
		IsEmitter:     u.BelongsTo(str(b.EmitterCompanySiret)),
		IsTransporter: u.BelongsTo(str(b.TransporterCompanySiret)) || u.BelongsTo(str(b.TransporterCompanyVatNumber)),
		IsDestination: u.BelongsTo(str(b.DestinationCompanySiret)),
	}
}
