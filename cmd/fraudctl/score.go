package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"fraudscope/internal/models"
	"fraudscope/internal/services/risk"
	"fraudscope/internal/validation"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// AlertPreview is the alert a high score would produce.
type AlertPreview struct {
	Reason string   `json:"reason" yaml:"reason"`
	Tags   []string `json:"tags" yaml:"tags"`
}

// ScoreReport is printed by the score command.
type ScoreReport struct {
	UserID     string          `json:"user_id" yaml:"user_id"`
	Amount     float64         `json:"amount" yaml:"amount"`
	Currency   string          `json:"currency" yaml:"currency"`
	Assessment risk.Assessment `json:"assessment" yaml:"assessment"`
	Alert      *AlertPreview   `json:"alert,omitempty" yaml:"alert,omitempty"`
}

func scoreCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "score [file|-]",
		Short: "Score a transaction JSON document without storing it",
		Long: `Read one transaction in the create request format and print its
risk score, level and the factors that contributed. Reads stdin when
the argument is "-" or omitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			report, err := buildReport(in, time.Now)
			if err != nil {
				return err
			}
			return writeReport(cmd.OutOrStdout(), report, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format (json, yaml)")

	return cmd
}

func buildReport(r io.Reader, now func() time.Time) (*ScoreReport, error) {
	var req models.CreateTransactionRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}

	v := validation.New()
	v.CreateTransaction(&req)
	if !v.Valid() {
		return nil, fmt.Errorf("invalid transaction: %s", v.Error())
	}

	tx := req.ToTransaction()
	if tx.Timestamp.IsZero() {
		tx.Timestamp = now().UTC()
	}

	assessment := risk.Assess(tx)
	report := &ScoreReport{
		UserID:     tx.UserID,
		Amount:     tx.Amount,
		Currency:   tx.Currency,
		Assessment: assessment,
	}
	if alert := risk.DeriveAlert(tx, assessment.Score, assessment.Level); alert != nil {
		report.Alert = &AlertPreview{Reason: alert.Reason, Tags: alert.Tags}
	}
	return report, nil
}

func writeReport(w io.Writer, report *ScoreReport, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
