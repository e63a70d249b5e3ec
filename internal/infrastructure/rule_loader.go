package infrastructure

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/Victor-armando18/service-bspaoh/internal/domain/engine"
	"github.com/Victor-armando18/service-bspaoh/internal/infrastructure/yaml"
)

//go:embed rules/*.yaml
var rulesFS embed.FS

// EmbeddedRuleLoader carrega os rule packs versionados embutidos no binário.
type EmbeddedRuleLoader struct {
	fsys fs.FS
}

func NewEmbeddedRuleLoader() *EmbeddedRuleLoader {
	return &EmbeddedRuleLoader{fsys: rulesFS}
}

// Load aceita "v1" ou "1".
func (l *EmbeddedRuleLoader) Load(ctx context.Context, version string) (engine.RulePack, error) {
	if err := ctx.Err(); err != nil {
		return engine.RulePack{}, err
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	data, err := fs.ReadFile(l.fsys, "rules/"+version+".yaml")
	if err != nil {
		return engine.RulePack{}, fmt.Errorf("rule pack %s: %w", version, err)
	}
	pack, err := yaml.ParseRulePack(data)
	if err != nil {
		return engine.RulePack{}, fmt.Errorf("rule pack %s: %w", version, err)
	}
	if pack.Version != version {
		return engine.RulePack{}, fmt.Errorf("rule pack %s declares version %s", version, pack.Version)
	}
	return pack, nil
}

func (l *EmbeddedRuleLoader) Versions() []string {
	entries, _ := fs.ReadDir(l.fsys, "rules")
	out := []string{}
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".yaml"); ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
