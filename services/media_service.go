package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ishala/illegal-waste-reporter-BE/models"
	"github.com/ishala/illegal-waste-reporter-BE/repository"
	"github.com/ishala/illegal-waste-reporter-BE/storage"
)

const (
	DefaultURLExpiry = time.Hour
	MaxURLExpiry     = 7 * 24 * time.Hour
)

type MediaConfig struct {
	MaxImageBytes int64
	MaxVideoBytes int64
	URLExpiry     time.Duration
}

// MediaFile is one uploaded file. Open is called once per upload.
type MediaFile struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

type MediaService struct {
	store   repository.Store
	objects storage.ObjectStore
	cfg     MediaConfig
}

func NewMediaService(store repository.Store, objects storage.ObjectStore, cfg MediaConfig) *MediaService {
	if cfg.URLExpiry <= 0 {
		cfg.URLExpiry = DefaultURLExpiry
	}
	return &MediaService{store: store, objects: objects, cfg: cfg}
}

func (s *MediaService) loadReport(ctx context.Context, reportID uuid.UUID) (*models.Report, error) {
	report, err := s.store.Reports().GetByID(ctx, reportID)
	if err != nil {
		return nil, notFound(err, ErrReportNotFound)
	}
	return report, nil
}

func (s *MediaService) checkFile(f MediaFile) (string, error) {
	mediaType := models.MediaTypeFor(f.ContentType)
	if mediaType == "" {
		return "", fmt.Errorf("%w: %s is %q", ErrInvalidFileType, f.Filename, f.ContentType)
	}
	limit := s.cfg.MaxImageBytes
	if mediaType == models.MediaTypeVideo {
		limit = s.cfg.MaxVideoBytes
	}
	if limit > 0 && f.Size > limit {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrFileTooLarge, f.Filename, limit)
	}
	return mediaType, nil
}

// sniff fills in a missing or generic content type from the file's first bytes.
func (s *MediaService) sniff(f *MediaFile) error {
	ct := strings.TrimSpace(f.ContentType)
	if ct != "" && ct != "application/octet-stream" {
		return nil
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrMediaUpload, f.Filename, err)
	}
	defer rc.Close()
	detected, _, err := storage.DetectContentType(rc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMediaUpload, err)
	}
	f.ContentType = detected
	return nil
}

// Upload validates every file before storing any of them. Each blob is put
// first and its row created after; on any failure everything stored by this
// call is removed again.
func (s *MediaService) Upload(ctx context.Context, caller *models.User, reportID uuid.UUID, files []MediaFile) ([]models.Media, error) {
	report, err := s.loadReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if err := RequireOwnerOrAdmin(report.UserID, caller); err != nil {
		return nil, err
	}
	return s.upload(ctx, report.ID, files)
}

func (s *MediaService) upload(ctx context.Context, reportID uuid.UUID, files []MediaFile) ([]models.Media, error) {
	if len(files) == 0 {
		return nil, invalid("files", "at least one file is required")
	}
	types := make([]string, len(files))
	for i := range files {
		if err := s.sniff(&files[i]); err != nil {
			return nil, err
		}
		mediaType, err := s.checkFile(files[i])
		if err != nil {
			return nil, err
		}
		types[i] = mediaType
	}

	created := make([]models.Media, 0, len(files))
	for i, f := range files {
		media, err := s.put(ctx, reportID, f, types[i])
		if err != nil {
			s.rollback(ctx, created)
			return nil, err
		}
		created = append(created, *media)
	}
	return s.withURLs(ctx, created), nil
}

func (s *MediaService) put(ctx context.Context, reportID uuid.UUID, f MediaFile, mediaType string) (*models.Media, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrMediaUpload, f.Filename, err)
	}
	defer rc.Close()

	key := storage.MediaKey(reportID, f.Filename, f.ContentType)
	if err := s.objects.Put(ctx, key, rc, f.Size, f.ContentType); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMediaUpload, err)
	}
	media := &models.Media{ReportID: reportID, MediaURL: key, MediaType: mediaType}
	if err := s.store.Media().Create(ctx, media); err != nil {
		if delErr := s.objects.Delete(ctx, key); delErr != nil {
			slog.Error("failed to remove blob after insert error", "key", key, "error", delErr)
		}
		return nil, notFound(err, ErrReportNotFound)
	}
	return media, nil
}

func (s *MediaService) rollback(ctx context.Context, created []models.Media) {
	for _, m := range created {
		if err := s.objects.Delete(ctx, m.MediaURL); err != nil {
			slog.Error("failed to remove blob during rollback", "key", m.MediaURL, "error", err)
		}
		if err := s.store.Media().Delete(ctx, m.ID); err != nil {
			slog.Error("failed to remove media row during rollback", "media_id", m.ID, "error", err)
		}
	}
}

// withURLs signs a fresh URL for each item. Signing errors leave URL empty.
func (s *MediaService) withURLs(ctx context.Context, media []models.Media) []models.Media {
	for i := range media {
		url, err := s.objects.PresignGet(ctx, media[i].MediaURL, s.cfg.URLExpiry)
		if err != nil {
			slog.Warn("failed to presign media", "key", media[i].MediaURL, "error", err)
			continue
		}
		media[i].URL = url
	}
	return media
}

func (s *MediaService) List(ctx context.Context, reportID uuid.UUID) ([]models.Media, error) {
	if _, err := s.loadReport(ctx, reportID); err != nil {
		return nil, err
	}
	media, err := s.store.Media().ListByReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	return s.withURLs(ctx, media), nil
}

func (s *MediaService) mediaOfReport(ctx context.Context, reportID, mediaID uuid.UUID) (*models.Media, error) {
	media, err := s.store.Media().GetByID(ctx, mediaID)
	if err != nil {
		return nil, notFound(err, ErrMediaNotFound)
	}
	if media.ReportID != reportID {
		return nil, ErrMediaNotFound
	}
	return media, nil
}

// URL signs a time-limited GET URL. expires <= 0 uses the configured default.
func (s *MediaService) URL(ctx context.Context, reportID, mediaID uuid.UUID, expires time.Duration) (string, error) {
	if expires <= 0 {
		expires = s.cfg.URLExpiry
	}
	if expires < time.Second || expires > MaxURLExpiry {
		return "", invalid("expires", "must be between 1 and %d seconds", int64(MaxURLExpiry.Seconds()))
	}
	media, err := s.mediaOfReport(ctx, reportID, mediaID)
	if err != nil {
		return "", err
	}
	return s.objects.PresignGet(ctx, media.MediaURL, expires)
}

// Delete removes the blob, then the row.
func (s *MediaService) Delete(ctx context.Context, caller *models.User, reportID, mediaID uuid.UUID) error {
	report, err := s.loadReport(ctx, reportID)
	if err != nil {
		return err
	}
	if err := RequireOwnerOrAdmin(report.UserID, caller); err != nil {
		return err
	}
	media, err := s.mediaOfReport(ctx, reportID, mediaID)
	if err != nil {
		return err
	}
	if err := s.objects.Delete(ctx, media.MediaURL); err != nil {
		return err
	}
	return notFound(s.store.Media().Delete(ctx, media.ID), ErrMediaNotFound)
}

// DeleteByReport removes every blob of the report and then every media row,
// using store so callers can run the row delete inside their transaction.
func (s *MediaService) DeleteByReport(ctx context.Context, store repository.Store, reportID uuid.UUID) (int64, error) {
	media, err := store.Media().ListByReport(ctx, reportID)
	if err != nil {
		return 0, err
	}
	if err := s.deleteBlobs(ctx, media); err != nil {
		return 0, err
	}
	return store.Media().DeleteByReport(ctx, reportID)
}

func (s *MediaService) deleteBlobs(ctx context.Context, media []models.Media) error {
	var errs []error
	for _, m := range media {
		if err := s.objects.Delete(ctx, m.MediaURL); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
			errs = append(errs, fmt.Errorf("delete %s: %w", m.MediaURL, err))
		}
	}
	return errors.Join(errs...)
}
