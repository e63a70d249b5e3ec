package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Victor-armando18/service-bspaoh/pkg/engine"
)

var rulesField string

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Lista as regras de edição em YAML",
	Long: `Lista as regras de edição em YAML. Com --field mostra só a regra do campo indicado
pelo caminho externo (ex.: emitter.company.siret).`,
	RunE: runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.Flags().StringVar(&rulesField, "field", "", "caminho externo do campo")
}

func runRules(cmd *cobra.Command, args []string) error {
	rules := engine.RulesDigest()
	if rulesField != "" {
		name, ok := engine.FieldForPath(rulesField)
		if !ok {
			return fmt.Errorf("campo desconhecido: %s", rulesField)
		}
		var selected []engine.RuleDigest
		for _, r := range rules {
			if r.Field == name {
				selected = append(selected, r)
			}
		}
		if len(selected) == 0 {
			return fmt.Errorf("o campo %s não tem regra de edição", rulesField)
		}
		rules = selected
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(rules)
}
