package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Victor-armando18/service-bspaoh/pkg/engine"
)

var (
	validateFile      string
	validateType      string
	validateCompanies string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Valida um bordereau guardado numa etapa de assinatura",
	Long: `Valida o bordereau tal como está guardado, sem alterações, contra as regras
da etapa indicada e das anteriores. Sem --type só os formatos e as regras de peso são verificados.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateFile, "file", "", "bordereau em JSON")
	validateCmd.Flags().StringVar(&validateType, "type", "", "etapa de assinatura")
	validateCmd.Flags().StringVar(&validateCompanies, "companies", "", "empresas inscritas em JSON")
	_ = validateCmd.MarkFlagRequired("file")
}

func runValidate(cmd *cobra.Command, args []string) error {
	b, err := readDoc(validateFile)
	if err != nil {
		return err
	}
	var stage engine.SignatureType
	if validateType != "" {
		if stage, err = engine.ParseSignatureType(validateType); err != nil {
			return err
		}
	}
	dir := engine.NewDirectory()
	if validateCompanies != "" {
		if dir, err = engine.LoadDirectory(validateCompanies); err != nil {
			return err
		}
	}

	v, err := engine.NewValidator(cmd.Context(), rulesVersion, dir, nil)
	if err != nil {
		return err
	}
	res, err := v.Validate(cmd.Context(), engine.Input{}, b, engine.ValidationContext{CurrentSignatureType: stage})

	out := cmd.OutOrStdout()
	var verr *engine.ValidationError
	if errors.As(err, &verr) {
		printIssues(out, verr.Issues)
		return fmt.Errorf("%d problema(s) na etapa %s", len(verr.Issues), stageName(stage))
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "[LOG DE EXECUÇÃO]")
	for _, step := range res.ExecutionLog {
		fmt.Fprintf(out, "   [%-9s] %-24s %s\n", strings.ToUpper(string(step.Phase)), step.RuleID, step.Action)
	}
	fmt.Fprintf(out, "\nOK: %s pronto para %s (regras %s)\n", b.ID, stageName(stage), res.RulesVersion)
	return nil
}

func printIssues(w io.Writer, issues []engine.Issue) {
	fmt.Fprintln(w, "[PROBLEMAS]")
	for _, i := range issues {
		fmt.Fprintf(w, "   %-45s %s\n", strings.Join(i.Path, "."), i.Message)
	}
}

func stageName(s engine.SignatureType) string {
	if s == "" {
		return "(nenhuma)"
	}
	return string(s)
}
