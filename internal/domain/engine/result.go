package engine

import (
	"github.com/Victor-armando18/service-bspaoh/internal/domain"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
)

type Result struct {
	Bspaoh        *model.Bspaoh
	UpdatedFields []model.Field
	StagesChecked []domain.SignatureType
	RulesVersion  string
	ExecutionLog  []ExecutionStep
}

type ExecutionStep struct {
	Phase  PipelinePhase `json:"phase"`
	RuleID string        `json:"ruleId,omitempty"`
	Action string        `json:"action"`
}

// RuleConfig é uma regra JsonLogic do rule pack.
type RuleConfig struct {
	ID           string         `json:"id" yaml:"id"`
	Phase        string         `json:"phase" yaml:"phase"`
	Logic        map[string]any `json:"logic" yaml:"logic"`
	OutputKey    string         `json:"output_key,omitempty" yaml:"output_key,omitempty"`
	Field        string         `json:"field,omitempty" yaml:"field,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty" yaml:"error_message,omitempty"`
}

type RulePack struct {
	Version     string       `json:"version" yaml:"version"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Rules       []RuleConfig `json:"rules" yaml:"rules"`
}

func (p RulePack) Phase(name string) []RuleConfig {
	var out []RuleConfig
	for _, r := range p.Rules {
		if r.Phase == name {
			out = append(out, r)
		}
	}
	return out
}
