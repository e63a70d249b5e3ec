package engine

import (
	"strings"

	"github.com/Victor-armando18/service-bspaoh/internal/domain"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
)

type CheckParams struct {
	Candidate     *model.Bspaoh
	UpdatedFields []model.Field
	UserFunctions domain.UserFunctions
	StagesToCheck []domain.SignatureType
}

// CheckSealedAndRequired percorre a tabela de regras e devolve todas as violações, sem parar na primeira.
func CheckSealedAndRequired(p CheckParams) []domain.Issue {
	issues := []domain.Issue{}
	updated := make(map[model.Field]bool, len(p.UpdatedFields))
	for _, f := range p.UpdatedFields {
		updated[f] = true
	}

	for _, rule := range editionRules {
		desc := rule.Description()
		path := model.PathOf(rule.Field)

		if isSealed(rule, p.Candidate, p.UserFunctions, p.StagesToCheck) {
			if updated[rule.Field] {
				issues = append(issues, domain.Issue{
					Field:   string(rule.Field),
					Path:    path,
					Message: withSuffix(desc+" a été verrouillé via signature et ne peut pas être modifié.", rule.Sealed.Suffix),
				})
			}
			applyRefinement(rule.Sealed.Refine, p.Candidate, &issues)
		}

		req := rule.Required
		if req == nil {
			continue
		}
		if containsStage(p.StagesToCheck, req.From) && evalPredicate(req.When, p.Candidate, p.UserFunctions) {
			if p.Candidate.IsNull(rule.Field) {
				issues = append(issues, domain.Issue{
					Field:       string(rule.Field),
					Path:        path,
					Message:     withSuffix(desc+" est obligatoire.", req.Suffix),
					RequiredFor: req.From,
				})
			}
			applyRefinement(req.Refine, p.Candidate, &issues)
		}
	}
	return issues
}

// SealedFields devolve os campos selados para as etapas indicadas.
func SealedFields(b *model.Bspaoh, uf domain.UserFunctions, stages []domain.SignatureType) []model.Field {
	out := []model.Field{}
	for _, rule := range editionRules {
		if isSealed(rule, b, uf, stages) {
			out = append(out, rule.Field)
		}
	}
	return out
}

// SealedPathsFor devolve os caminhos externos dos campos selados para o utilizador,
// segundo as etapas já assinadas no bordereau.
func SealedPathsFor(b *model.Bspaoh, u *domain.User) []string {
	fields := SealedFields(b, UserFunctionsFor(u, b), SignedStages(b))
	paths := make([]string, 0, len(fields))
	for _, f := range fields {
		paths = append(paths, strings.Join(model.PathOf(f), "."))
	}
	return paths
}

// SealedFieldsForStage devolve os campos selados uma vez assinada a etapa, para um
// utilizador sem papel no bordereau.
func SealedFieldsForStage(stage domain.SignatureType) []model.Field {
	return SealedFields(&model.Bspaoh{}, domain.UserFunctions{}, AncestorsOf(stage))
}

func isSealed(rule EditionRule, b *model.Bspaoh, uf domain.UserFunctions, stages []domain.SignatureType) bool {
	return containsStage(stages, rule.Sealed.From) && evalPredicate(rule.Sealed.When, b, uf)
}

func withSuffix(msg, suffix string) string {
	if suffix == "" {
		return msg
	}
	return msg + " " + suffix
}
