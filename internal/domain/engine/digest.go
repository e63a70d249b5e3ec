package engine

import (
	"strings"

	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
)

// RuleDigest é a forma legível de uma regra de edição.
type RuleDigest struct {
	Field         string `json:"nomTechnique" yaml:"nom technique"`
	ReadableName  string `json:"nomVerbeux" yaml:"nom verbeux"`
	Path          string `json:"pathGql" yaml:"path gql"`
	RequiredFrom  string `json:"requisAPartirDe" yaml:"requis à partir de"`
	RequiredWhen  string `json:"conditionRequis" yaml:"condition requis"`
	SealedFrom    string `json:"scelleAPartirDe" yaml:"scellé à partir de"`
	SealedWhen    string `json:"conditionScelle" yaml:"condition scellé"`
	RequiredCheck string `json:"refinement,omitempty" yaml:"refinement,omitempty"`
}

func RulesDigest() []RuleDigest {
	out := make([]RuleDigest, 0, len(editionRules))
	for _, r := range editionRules {
		d := RuleDigest{
			Field:        string(r.Field),
			ReadableName: r.ReadableName,
			Path:         strings.Join(model.PathOf(r.Field), "."),
			SealedFrom:   string(r.Sealed.From),
			SealedWhen:   string(r.Sealed.When),
		}
		if r.Required != nil {
			d.RequiredFrom = string(r.Required.From)
			d.RequiredWhen = string(r.Required.When)
			d.RequiredCheck = string(r.Required.Refine)
		}
		out = append(out, d)
	}
	return out
}
