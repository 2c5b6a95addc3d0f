package localstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "studymesh-backend/pkg/errors"
)

// BlobStore keeps uploaded files on the local filesystem, used when no
// remote storage backend is configured. URLs are served from /files/.
type BlobStore struct {
	dir    string
	logger *zap.Logger
}

// NewBlobStore creates the upload directory if needed.
func NewBlobStore(dataDir string, logger *zap.Logger) (*BlobStore, error) {
	dir := filepath.Join(dataDir, "uploads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.Wrap(err, "create upload directory")
	}
	return &BlobStore{dir: dir, logger: logger}, nil
}

// Dir returns the directory served under /files/.
func (s *BlobStore) Dir() string {
	return s.dir
}

// Upload writes the file and returns its serving path. Object names get a
// timestamp prefix so repeated uploads of the same filename never collide.
func (s *BlobStore) Upload(ctx context.Context, name, mimeType string, data []byte) (string, error) {
	object := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeName(name))
	path := filepath.Join(s.dir, object)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", apperrors.Wrap(err, "write upload")
	}

	s.logger.Debug("upload stored locally",
		zap.String("object", object),
		zap.Int("bytes", len(data)),
	)
	return "/files/" + object, nil
}

// sanitizeName strips path separators from a client-supplied filename.
func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, string(os.PathSeparator), "-")
	if name == "" || name == "." {
		name = "upload"
	}
	return name
}
