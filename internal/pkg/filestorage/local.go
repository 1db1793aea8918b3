package filestorage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LocalStorage keeps objects on the local filesystem and serves them under baseURL.
// Public ids are slash separated paths relative to basePath.
type LocalStorage struct {
	basePath string
	baseURL  string
	logger   zerolog.Logger
}

// NewLocalStorage creates basePath if needed.
func NewLocalStorage(basePath, baseURL string, logger zerolog.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath, baseURL: strings.TrimRight(baseURL, "/"), logger: logger}, nil
}

// Upload implements ObjectStore.
func (ls *LocalStorage) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	folder, err := cleanRelative(in.Folder)
	if err != nil {
		return nil, err
	}

	publicID := path.Join(folder, uuid.New().String()+strings.ToLower(filepath.Ext(in.Filename)))
	dstPath := filepath.Join(ls.basePath, filepath.FromSlash(publicID))

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		ls.logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create subdirectory")
		return nil, fmt.Errorf("failed to create subdirectory: %w", err)
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		ls.logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, in.Reader); err != nil {
		_ = os.Remove(dstPath)
		ls.logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	resourceType := in.ResourceType
	if resourceType == "" {
		resourceType = ResourceAuto
	}

	ls.logger.Info().Str("filename", in.Filename).Str("publicID", publicID).Msg("File saved successfully")
	return &UploadResult{
		URL:          ls.baseURL + "/" + publicID,
		PublicID:     publicID,
		ResourceType: resourceType,
	}, nil
}

// Delete implements ObjectStore. Deleting a missing object succeeds.
func (ls *LocalStorage) Delete(ctx context.Context, publicID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if publicID == "" {
		return ErrEmptyPublicID
	}

	rel, err := cleanRelative(publicID)
	if err != nil {
		return err
	}
	physicalPath := filepath.Join(ls.basePath, filepath.FromSlash(rel))

	if err := os.Remove(physicalPath); err != nil {
		if os.IsNotExist(err) {
			ls.logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
			return nil
		}
		ls.logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	ls.logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}

// PublicIDFromURL implements ObjectStore for URLs served under baseURL.
func (ls *LocalStorage) PublicIDFromURL(u string) string {
	prefix := ls.baseURL + "/"
	if !strings.HasPrefix(u, prefix) {
		return ""
	}
	return strings.TrimPrefix(u, prefix)
}

func cleanRelative(p string) (string, error) {
	cleaned := path.Clean("/" + strings.ReplaceAll(p, "\\", "/"))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "." {
		cleaned = ""
	}
	if strings.Contains(p, "..") {
		return "", fmt.Errorf("invalid storage path: %s", p)
	}
	return cleaned, nil
}
