package main

import (
	"context"
	"fmt"

	"fraudscope/internal/config"
	"fraudscope/internal/logging"
	"fraudscope/internal/models"
	"fraudscope/internal/repositories"
	"fraudscope/internal/services/transaction"

	"github.com/spf13/cobra"
)

type seedScenario struct {
	Name    string
	Request models.CreateTransactionRequest
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Store the reference scenarios in the configured store",
		Long: `Run the four reference transactions through the transaction service
using STORE_DRIVER and the matching connection settings. Useful for
populating a fresh environment with one high, one medium and two low
risk transactions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := logging.New(cfg.Log)

			store, err := repositories.Open(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer store.Close()

			svc := transaction.NewService(store, transaction.WithLogger(log))
			return runSeed(cmd.Context(), cmd, svc)
		},
	}
	return cmd
}

func runSeed(ctx context.Context, cmd *cobra.Command, svc transaction.Service) error {
	for _, sc := range seedScenarios() {
		req := sc.Request
		res, err := svc.Create(ctx, &req)
		if err != nil {
			return fmt.Errorf("seed %q: %w", sc.Name, err)
		}
		cmd.Printf("%-28s %s  score=%-5g level=%s\n", sc.Name, res.ID, res.RiskScore, res.RiskLevel)
	}
	return nil
}

func seedScenarios() []seedScenario {
	str := func(s string) *string { return &s }
	amount := func(f float64) *float64 { return &f }

	return []seedScenario{
		{
			Name: "high risk gambling",
			Request: models.CreateTransactionRequest{
				UserID: "seed-user-1", Amount: amount(6000), Currency: "USD",
				Country: str("RU"), Channel: str("web"), MerchantCategory: str("gambling"),
			},
		},
		{
			Name: "low risk small purchase",
			Request: models.CreateTransactionRequest{
				UserID: "seed-user-2", Amount: amount(150), Currency: "USD",
				Country: str("US"), Channel: str("card"), DeviceID: str("d1"), IPAddress: str("1.2.3.4"),
			},
		},
		{
			Name: "low risk missing identity",
			Request: models.CreateTransactionRequest{
				UserID: "seed-user-3", Amount: amount(1200), Currency: "USD",
				Country: str("DE"), Channel: str("mobile"),
			},
		},
		{
			Name: "medium risk adult",
			Request: models.CreateTransactionRequest{
				UserID: "seed-user-4", Amount: amount(500), Currency: "USD",
				Country: str("NG"), Channel: str("card-not-present"), MerchantCategory: str("adult"),
				DeviceID: str("dev"), IPAddress: str("9.9.9.9"),
			},
		},
	}
}
