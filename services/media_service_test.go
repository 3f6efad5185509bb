package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestUploadMediaStoresBlobAndRow(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "m-owner@example.com")
	report := f.report(t, owner)
	ctx := context.Background()

	media, err := f.media.Upload(ctx, owner, report.ID, []MediaFile{file("clip.mp4", "video/mp4", "mp4")})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if len(media) != 1 || media[0].MediaType != "video" {
		t.Fatalf("unexpected media: %+v", media)
	}
	if !strings.HasPrefix(media[0].MediaURL, "report_media/"+report.ID.String()+"/") {
		t.Fatalf("unexpected key %q", media[0].MediaURL)
	}
	if !f.objects.Has(media[0].MediaURL) {
		t.Fatalf("blob missing")
	}
}

func TestUploadMediaSniffsMissingContentType(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "sniff@example.com")
	report := f.report(t, owner)

	png := "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"
	media, err := f.media.Upload(context.Background(), owner, report.ID, []MediaFile{file("upload", "", png)})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if media[0].MediaType != "image" || !strings.HasSuffix(media[0].MediaURL, ".png") {
		t.Fatalf("unexpected media: %+v", media[0])
	}
}

func TestUploadMediaRejections(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "reject@example.com")
	stranger := f.user(t, "reject-stranger@example.com")
	report := f.report(t, owner)
	ctx := context.Background()

	if _, err := f.media.Upload(ctx, owner, report.ID, []MediaFile{file("doc.pdf", "application/pdf", "pdf")}); !errors.Is(err, ErrInvalidFileType) {
		t.Fatalf("expected ErrInvalidFileType, got %v", err)
	}
	big := file("big.jpg", "image/jpeg", "x")
	big.Size = 2 << 20
	if _, err := f.media.Upload(ctx, owner, report.ID, []MediaFile{file("ok.jpg", "image/jpeg", "ok"), big}); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
	if f.objects.Len() != 0 {
		t.Fatalf("nothing should be stored when validation fails, got %d", f.objects.Len())
	}
	if _, err := f.media.Upload(ctx, stranger, report.ID, []MediaFile{file("a.jpg", "image/jpeg", "a")}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := f.media.Upload(ctx, owner, uuid.New(), []MediaFile{file("a.jpg", "image/jpeg", "a")}); !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}

func TestMediaURLExpiry(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "url@example.com")
	report := f.report(t, owner, file("a.jpg", "image/jpeg", "a"))
	ctx := context.Background()
	mediaID := report.Media[0].ID

	url, err := f.media.URL(ctx, report.ID, mediaID, 10*time.Minute)
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	if !strings.Contains(url, "X-Amz-Expires=600") {
		t.Fatalf("expiry not applied: %s", url)
	}
	var verr *ValidationError
	if _, err := f.media.URL(ctx, report.ID, mediaID, 8*24*time.Hour); !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := f.media.URL(ctx, uuid.New(), mediaID, 0); !errors.Is(err, ErrMediaNotFound) {
		t.Fatalf("expected ErrMediaNotFound for wrong report, got %v", err)
	}
}

func TestDeleteMediaRemovesBlob(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "del@example.com")
	stranger := f.user(t, "del-stranger@example.com")
	report := f.report(t, owner, file("a.jpg", "image/jpeg", "a"), file("b.jpg", "image/jpeg", "b"))
	ctx := context.Background()
	target := report.Media[0]

	if err := f.media.Delete(ctx, stranger, report.ID, target.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := f.media.Delete(ctx, owner, report.ID, target.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if f.objects.Has(target.MediaURL) {
		t.Fatalf("blob still present")
	}
	left, _ := f.media.List(ctx, report.ID)
	if len(left) != 1 {
		t.Fatalf("expected 1 media left, got %d", len(left))
	}
	if err := f.media.Delete(ctx, owner, report.ID, target.ID); !errors.Is(err, ErrMediaNotFound) {
		t.Fatalf("expected ErrMediaNotFound, got %v", err)
	}
}

func TestDeleteMediaByReport(t *testing.T) {
	f := newFixture(t)
	owner := f.user(t, "bulk@example.com")
	report := f.report(t, owner, file("a.jpg", "image/jpeg", "a"), file("b.jpg", "image/jpeg", "b"))
	other := f.report(t, owner, file("c.jpg", "image/jpeg", "c"))

	n, err := f.media.DeleteByReport(context.Background(), f.store, report.ID)
	if err != nil {
		t.Fatalf("delete by report: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 deleted, got %d", n)
	}
	if f.objects.Len() != 1 || !f.objects.Has(other.Media[0].MediaURL) {
		t.Fatalf("only the other report's blob should remain")
	}
}
