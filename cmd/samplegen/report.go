package main

import (
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/trialworks/samplegen/internal/config"
	"github.com/trialworks/samplegen/internal/datastore"
	"github.com/trialworks/samplegen/internal/models"
)

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <trial-id> [trial-id...]",
		Short: "Summarize recorded samples for trials",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runReport,
	}
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	client := goredis.NewClient(&goredis.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	defer client.Close()

	store := datastore.NewRedisClient(client, cfg.ResolveTimeout())

	for _, trialID := range args {
		info, err := store.GetTrial(ctx, trialID)
		if err != nil {
			return err
		}
		samples, err := store.AllSamples(ctx, info)
		if err != nil {
			return err
		}
		printTrialSummary(info, samples)
	}
	return nil
}

func printTrialSummary(info *models.TrialInfo, samples []models.Sample) {
	fmt.Printf("Trial: %s (env %s)\n", info.TrialID, info.EnvName)
	fmt.Printf("  Samples: %d\n", len(samples))
	if len(samples) == 0 {
		return
	}

	rewards := make([]float64, len(samples))
	total := 0.0
	overrides := 0
	for i, s := range samples {
		rewards[i] = s.Reward
		total += s.Reward
		if len(s.OverriddenPlayers) > 0 {
			overrides++
		}
	}

	mean, std := stat.MeanStdDev(rewards, nil)
	fmt.Printf("  Total reward: %.4f\n", total)
	fmt.Printf("  Mean reward: %.4f (stddev %.4f)\n", mean, std)
	if overrides > 0 {
		fmt.Printf("  Teacher overrides: %d\n", overrides)
	}
}
