package yaml

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Victor-armando18/service-bspaoh/internal/domain/engine"
)

var knownPhases = map[string]bool{
	engine.RulePhaseGuards: true,
	engine.RulePhaseDerive: true,
}

func LoadRulePack(path string) (engine.RulePack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return engine.RulePack{}, err
	}
	return ParseRulePack(data)
}

// ParseRulePack lê um rule pack YAML e rejeita regras sem id, sem lógica ou de fase desconhecida.
func ParseRulePack(data []byte) (engine.RulePack, error) {
	var pack engine.RulePack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return engine.RulePack{}, fmt.Errorf("parse rule pack: %w", err)
	}
	if pack.Version == "" {
		return engine.RulePack{}, fmt.Errorf("rule pack without version")
	}
	seen := map[string]bool{}
	for i, r := range pack.Rules {
		switch {
		case r.ID == "":
			return engine.RulePack{}, fmt.Errorf("rule %d: missing id", i)
		case seen[r.ID]:
			return engine.RulePack{}, fmt.Errorf("rule %s: duplicate id", r.ID)
		case !knownPhases[r.Phase]:
			return engine.RulePack{}, fmt.Errorf("rule %s: unknown phase %q", r.ID, r.Phase)
		case len(r.Logic) == 0:
			return engine.RulePack{}, fmt.Errorf("rule %s: empty logic", r.ID)
		case r.Phase == engine.RulePhaseDerive && r.OutputKey == "":
			return engine.RulePack{}, fmt.Errorf("rule %s: derive rule without output_key", r.ID)
		}
		seen[r.ID] = true
	}
	return pack, nil
}
