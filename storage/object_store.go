// Package storage puts, signs and removes media blobs in object storage.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var ErrObjectNotFound = errors.New("object not found")

// ObjectStore provides access to object storage.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

const mediaPrefix = "report_media"

// MediaKey namespaces a blob under its report with a random name. The extension
// comes from the upload's file name, or from its content type when the name has none.
func MediaKey(reportID uuid.UUID, filename, contentType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		if m := mimetype.Lookup(contentType); m != nil {
			ext = m.Extension()
		}
	}
	return fmt.Sprintf("%s/%s/%s%s", mediaPrefix, reportID, uuid.NewString(), ext)
}

// DetectContentType sniffs the leading bytes of r and returns a reader that
// still yields the whole stream.
func DetectContentType(r io.Reader) (string, io.Reader, error) {
	header := make([]byte, 3072)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, fmt.Errorf("read header: %w", err)
	}
	header = header[:n]
	mtype := mimetype.Detect(header)
	return mtype.String(), io.MultiReader(bytes.NewReader(header), r), nil
}
