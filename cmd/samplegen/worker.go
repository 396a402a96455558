package main

import (
	"context"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/trialworks/samplegen/internal/config"
	"github.com/trialworks/samplegen/internal/datastore"
	"github.com/trialworks/samplegen/internal/environment"
	"github.com/trialworks/samplegen/internal/models"
	"github.com/trialworks/samplegen/internal/producer"
	"github.com/trialworks/samplegen/internal/queue"
	"github.com/trialworks/samplegen/internal/registry"
)

func newWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run the sample producer worker process",
		RunE:  runWorker,
	}
}

func runWorker(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	spec, err := environment.LoadSpec(cfg.Worker.EnvSpecPath)
	if err != nil {
		return err
	}

	client := goredis.NewClient(&goredis.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	defer client.Close()

	started := queue.NewRedis[models.TrialStartedEvent](client, cfg.Channels.TrialStartedKey)
	samples := queue.NewRedis[models.SampleEvent](client, cfg.Channels.SampleKey)
	store := datastore.NewRedisClient(client, cfg.ResolveTimeout())

	reg := registry.NewClient(registry.NewRedisStore(client))
	if len(cfg.Models) > 0 {
		if err := reg.Prefetch(ctx, cfg.Models...); err != nil {
			return fmt.Errorf("prefetching models: %w", err)
		}
	}

	adapter := environment.NewAdapter(spec,
		func(ctx context.Context, info *models.TrialInfo) (environment.Simulator, error) {
			return environment.NewDriftSim(spec), nil
		},
		func(ctx context.Context, info *models.TrialInfo) (environment.Source, error) {
			return environment.NewPolicySource(counteractPolicy(spec, info)), nil
		},
	)

	slog.Info("sample producer worker starting",
		"env", spec.Name,
		"trial_started_key", cfg.Channels.TrialStartedKey,
		"sample_key", cfg.Channels.SampleKey,
	)

	h := producer.Start(ctx, started, samples, adapter, store, reg, producer.Config{
		RequeueDelay:       cfg.RequeueDelay(),
		MaxRequeueAttempts: cfg.Worker.MaxRequeueAttempts,
	})
	return h.Wait()
}

// counteractPolicy is the built-in demo policy: the player pushes back
// against the observed state; teachers never intervene.
func counteractPolicy(spec *environment.Spec, info *models.TrialInfo) func([]float64) []environment.Action {
	playerIdx := -1
	if players := info.Players(); len(players) == 1 {
		playerIdx = players[0].Index
	}
	return func(observation []float64) []environment.Action {
		actions := make([]environment.Action, len(info.Participants))
		if playerIdx < 0 {
			return actions
		}
		values := make([]float64, spec.ActionDim)
		for i := range values {
			if i < len(observation) {
				values[i] = -observation[i]
			}
		}
		actions[playerIdx] = environment.Action{Values: values}
		return actions
	}
}
