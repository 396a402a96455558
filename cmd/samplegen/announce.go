package main

import (
	"fmt"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/trialworks/samplegen/internal/config"
	"github.com/trialworks/samplegen/internal/datastore"
	"github.com/trialworks/samplegen/internal/models"
	"github.com/trialworks/samplegen/internal/queue"
)

var (
	flagAnnounceCount      int
	flagAnnounceEnv        string
	flagAnnounceTeacher    bool
	flagAnnounceSeed       int64
	flagAnnounceSkipRecord bool
	flagAnnounceDone       bool
)

func newAnnounceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "announce",
		Short: "Record trials in the datastore and announce them to the worker",
		Long: `announce plays the orchestrator's role for local runs: it writes trial
metadata to the datastore and appends trial-started events to the channel.
With --skip-record the metadata write is left out, which exercises the
worker's requeue-until-resolvable path. With --done only the terminal
sentinel is sent.`,
		RunE: runAnnounce,
	}
	cmd.Flags().IntVar(&flagAnnounceCount, "count", 1, "number of trials to announce")
	cmd.Flags().StringVar(&flagAnnounceEnv, "env", "drift", "environment name recorded in trial metadata")
	cmd.Flags().BoolVar(&flagAnnounceTeacher, "teacher", false, "add a teacher actor to each trial")
	cmd.Flags().Int64Var(&flagAnnounceSeed, "seed", 0, "base seed for announced trials")
	cmd.Flags().BoolVar(&flagAnnounceSkipRecord, "skip-record", false, "announce without recording metadata")
	cmd.Flags().BoolVar(&flagAnnounceDone, "done", false, "send only the terminal sentinel")
	return cmd
}

func runAnnounce(cmd *cobra.Command, args []string) error {
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

	started := queue.NewRedis[models.TrialStartedEvent](client, cfg.Channels.TrialStartedKey)

	if flagAnnounceDone {
		return started.Put(ctx, models.TrialStartedEvent{Done: true})
	}

	store := datastore.NewRedisClient(client, cfg.ResolveTimeout())

	for i := 0; i < flagAnnounceCount; i++ {
		trialID := uuid.NewString()

		if !flagAnnounceSkipRecord {
			participants := []models.Actor{
				{Name: "player_0", ClassName: models.PlayerActorClass},
			}
			if flagAnnounceTeacher {
				participants = append(participants, models.Actor{
					Name:      "teacher_0",
					ClassName: models.TeacherActorClass,
				})
			}
			info := &models.TrialInfo{
				TrialID:      trialID,
				EnvName:      flagAnnounceEnv,
				Participants: participants,
				Seed:         flagAnnounceSeed + int64(i),
			}
			if err := store.RecordTrial(ctx, info); err != nil {
				return err
			}
		}

		if err := started.Put(ctx, models.TrialStartedEvent{TrialID: trialID, TrialIdx: i}); err != nil {
			return err
		}
		fmt.Printf("announced trial %s (idx %d)\n", trialID, i)
	}
	return nil
}
