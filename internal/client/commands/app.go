package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/fieldshift/internal/client/assets"
	"github.com/dmitrijs2005/fieldshift/internal/client/config"
	"github.com/dmitrijs2005/fieldshift/internal/client/location"
	"github.com/dmitrijs2005/fieldshift/internal/client/remote"
	"github.com/dmitrijs2005/fieldshift/internal/client/services"
	"github.com/dmitrijs2005/fieldshift/internal/client/storage"
	"github.com/dmitrijs2005/fieldshift/internal/logging"
)

// app wires the client core for one command invocation.
type app struct {
	cfg         *config.Config
	repos       *storage.Repositories
	remote      remote.Store
	shift       services.ShiftService
	notes       services.NoteService
	attachments services.AssetService
	sync        services.SyncService
	obligations services.ObligationService
	log         logging.Logger
}

func newApp(ctx context.Context) (*app, error) {
	cfg := config.LoadConfig()
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	repos, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening device store: %w", err)
	}

	store := remote.NewHTTPStore(remote.NewTransport(cfg.RemoteBaseURL, cfg.APIToken))

	var uploader assets.Uploader
	if cfg.S3Bucket != "" {
		uploader, err = assets.NewS3Uploader(ctx, assets.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			repos.Close()
			return nil, fmt.Errorf("configuring asset storage: %w", err)
		}
	}

	loc := &location.FileProvider{Path: cfg.LocationFile}

	return &app{
		cfg:         cfg,
		repos:       repos,
		remote:      store,
		shift:       services.NewShiftService(store, repos.ActiveShift, repos.Outbox, loc, cfg.GeofenceRadiusMeters, log),
		notes:       services.NewNoteService(store, repos.Outbox, log),
		attachments: services.NewAssetService(uploader, repos.Outbox, log),
		sync:        services.NewSyncService(store, repos.Outbox, uploader, log),
		obligations: services.NewObligationService(store, cfg.NoteWindow, log),
		log:         log,
	}, nil
}

func (a *app) Close() error {
	return a.repos.Close()
}
