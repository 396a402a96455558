package main

import (
	"fmt"
	"os"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/trialworks/samplegen/internal/config"
	"github.com/trialworks/samplegen/internal/registry"
)

func newPublishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish <model-id> <artifact-file>",
		Short: "Publish a model artifact to the model registry",
		Args:  cobra.ExactArgs(2),
		RunE:  runPublish,
	}
}

func runPublish(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	modelID, artifactPath := args[0], args[1]

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(artifactPath)
	if err != nil {
		return fmt.Errorf("reading model artifact: %w", err)
	}

	client := goredis.NewClient(&goredis.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	defer client.Close()

	store := registry.NewRedisStore(client)
	number, err := registry.NextVersion(ctx, store, modelID)
	if err != nil {
		return err
	}

	if err := store.PublishModel(ctx, &registry.ModelVersion{
		ModelID: modelID,
		Number:  number,
		Data:    data,
	}); err != nil {
		return err
	}

	fmt.Printf("published model %s version %d (%d bytes)\n", modelID, number, len(data))
	return nil
}
