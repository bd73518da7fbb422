package services

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/fieldshift/internal/client/assets"
	"github.com/dmitrijs2005/fieldshift/internal/client/models"
	"github.com/dmitrijs2005/fieldshift/internal/client/repositories/outbox"
	"github.com/dmitrijs2005/fieldshift/internal/logging"
	"github.com/google/uuid"
)

// AssetService attaches captured artifacts (photos, signatures) to a
// session. The object key is fixed at attach time, so a queued upload
// replays to the same key.
type AssetService interface {
	Attach(ctx context.Context, sessionID, localPath string) (Outcome, error)
}

type assetService struct {
	uploader assets.Uploader
	outbox   outbox.Repository
	log      logging.Logger
	now      func() time.Time
}

// NewAssetService wires an AssetService.
func NewAssetService(uploader assets.Uploader, queue outbox.Repository, log logging.Logger) AssetService {
	return &assetService{uploader: uploader, outbox: queue, log: log, now: time.Now}
}

func (s *assetService) Attach(ctx context.Context, sessionID, localPath string) (Outcome, error) {
	if s.uploader == nil {
		return "", fmt.Errorf("no asset storage configured")
	}

	key := fmt.Sprintf("sessions/%s/%s%s", sessionID, uuid.NewString(), filepath.Ext(localPath))
	contentType := mime.TypeByExtension(filepath.Ext(localPath))

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("opening asset: %w", err)
	}
	uploadErr := s.uploader.Upload(ctx, key, contentType, f)
	f.Close()
	if uploadErr == nil {
		return OutcomeConfirmed, nil
	}
	s.log.Warn(ctx, "asset upload failed, queueing",
		"session_id", sessionID, "object_key", key, "error", uploadErr)

	payload, err := json.Marshal(models.AssetPayload{
		LocalPath:   localPath,
		ObjectKey:   key,
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("encoding asset payload: %w", err)
	}
	m := &models.Mutation{
		Kind:       models.MutationAssetUpload,
		SessionID:  sessionID,
		OccurredAt: s.now().UTC(),
		Payload:    payload,
	}
	if err := s.outbox.Enqueue(ctx, m); err != nil {
		return "", fmt.Errorf("queueing asset upload: %w", err)
	}
	return OutcomeQueued, nil
}
