package jobs

import (
	"context"
	"fmt"
	"time"

	"keepnotes/cmd/internal/infrastructure/aws/storage"
	"keepnotes/cmd/internal/utils"

	"github.com/labstack/gommon/log"
)

const DefaultSnapshotInterval = 1 * time.Hour

type NoteSnapshotter interface {
	Snapshot() ([]byte, error)
}

// SnapshotUploader periodically copies the whole note collection to S3.
type SnapshotUploader struct {
	notes    NoteSnapshotter
	bucket   storage.S3Client
	interval time.Duration
}

func NewSnapshotUploader(notes NoteSnapshotter, bucket storage.S3Client, interval time.Duration) *SnapshotUploader {
	if interval <= 0 {
		interval = DefaultSnapshotInterval
	}
	return &SnapshotUploader{notes: notes, bucket: bucket, interval: interval}
}

func (s *SnapshotUploader) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Infof("Snapshot uploader cron started, every %s", s.interval)

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping snapshot uploader...")
			return
		case <-ticker.C:
			if _, err := s.Upload(ctx); err != nil {
				log.Errorf("Snapshot: %v", err)
			}
		}
	}
}

// Upload takes one snapshot now and returns the object key it was stored at.
func (s *SnapshotUploader) Upload(ctx context.Context) (string, error) {
	data, err := s.notes.Snapshot()
	if err != nil {
		return "", fmt.Errorf("failed to build snapshot: %w", err)
	}

	filename := fmt.Sprintf("notes-%d.json", utils.NowUTC())
	key, err := s.bucket.UploadFile(ctx, data, filename)
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot: %w", err)
	}

	log.Debugf("Snapshot: uploaded %d bytes to %s", len(data), key)
	return key, nil
}
