package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Victor-armando18/service-bspaoh/pkg/engine"
)

var rulesVersion string

var rootCmd = &cobra.Command{
	Use:   "bspaohctl",
	Short: "Ferramenta de diagnóstico do motor BSPAOH",
	Long: `bspaohctl consulta as regras de edição, valida um bordereau guardado em JSON
numa etapa de assinatura e calcula o estado seguinte.

Exemplos:
  bspaohctl rules
  bspaohctl validate --file doc.json --type TRANSPORT --companies companies.json
  bspaohctl next-status --file doc.json --type RECEPTION`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rulesVersion, "rules", "v1", "versão do rule pack")
}

func readDoc(path string) (*engine.Bspaoh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ficheiro não encontrado [%s]: %w", path, err)
	}
	var b engine.Bspaoh
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("bordereau inválido [%s]: %w", path, err)
	}
	return &b, nil
}
