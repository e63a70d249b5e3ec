package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Victor-armando18/service-bspaoh/pkg/engine"
)

var (
	nextFile string
	nextType string
)

var nextStatusCmd = &cobra.Command{
	Use:   "next-status",
	Short: "Mostra o estado do bordereau após uma assinatura",
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := readDoc(nextFile)
		if err != nil {
			return err
		}
		t, err := engine.ParseSignatureType(nextType)
		if err != nil {
			return err
		}
		next, err := engine.NextStatus(b, t)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", b.Status, next)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(nextStatusCmd)
	nextStatusCmd.Flags().StringVar(&nextFile, "file", "", "bordereau em JSON")
	nextStatusCmd.Flags().StringVar(&nextType, "type", "", "tipo de assinatura (EMISSION, TRANSPORT, DELIVERY, RECEPTION, OPERATION)")
	_ = nextStatusCmd.MarkFlagRequired("file")
	_ = nextStatusCmd.MarkFlagRequired("type")
}
