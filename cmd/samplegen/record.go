package main

import (
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/trialworks/samplegen/internal/config"
	"github.com/trialworks/samplegen/internal/datastore"
	"github.com/trialworks/samplegen/internal/models"
	"github.com/trialworks/samplegen/internal/queue"
)

func newRecordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "record",
		Short: "Consume the sample channel and persist samples to the datastore",
		Long: `record is the downstream consumer of the sample channel: it drains
produced samples into each trial's recorded history and exits when the
worker's terminal event arrives.`,
		RunE: runRecord,
	}
}

func runRecord(cmd *cobra.Command, args []string) error {
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

	samples := queue.NewRedis[models.SampleEvent](client, cfg.Channels.SampleKey)
	store := datastore.NewRedisClient(client, cfg.ResolveTimeout())

	recorded := 0
	for {
		event, err := samples.Get(ctx)
		if err != nil {
			return err
		}
		if event.Done {
			slog.Info("sample stream ended", "recorded", recorded)
			return nil
		}
		if err := store.AppendSample(ctx, event.TrialID, event.Sample); err != nil {
			return err
		}
		recorded++
	}
}
