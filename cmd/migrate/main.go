package main

import (
	"context"
	"log/slog"
	"os"

	"shop-orders/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
)

// Applies migrations/schema.sql declaratively against the configured database.
// Requires the atlas CLI on PATH and a local docker daemon for the dev
// database Atlas uses to diff.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	client, err := atlasexec.NewClient(".", "atlas")
	if err != nil {
		slog.Error("failed to initialize atlas client", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	res, err := client.SchemaApply(ctx, &atlasexec.SchemaApplyParams{
		URL:    cfg.DB.BuildDSN(),
		To:     "file://migrations/schema.sql",
		DevURL: "docker://postgres/17/dev",
	})
	if err != nil {
		slog.Error("schema apply failed", "error", err)
		os.Exit(1)
	}

	slog.Info("schema applied", "applied", len(res.Changes.Applied), "pending", len(res.Changes.Pending))
}
