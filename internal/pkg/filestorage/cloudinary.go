package filestorage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog"
)

// CloudinaryConfig holds the account credentials and transfer limits.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	ChunkSize int64
	Timeout   time.Duration
}

type cloudinaryUploader interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// CloudinaryStorage stores media in Cloudinary.
type CloudinaryStorage struct {
	upl     cloudinaryUploader
	timeout time.Duration
	logger  zerolog.Logger
}

// NewCloudinaryStorage builds a client from credentials.
func NewCloudinaryStorage(cfg CloudinaryConfig, logger zerolog.Logger) (*CloudinaryStorage, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}
	cld.Config.URL.Secure = true
	if cfg.ChunkSize > 0 {
		cld.Config.API.ChunkSize = cfg.ChunkSize
	}

	return &CloudinaryStorage{upl: &cld.Upload, timeout: cfg.Timeout, logger: logger}, nil
}

func (cs *CloudinaryStorage) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if cs.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, cs.timeout)
}

// Upload implements ObjectStore.
func (cs *CloudinaryStorage) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	ctx, cancel := cs.withTimeout(ctx)
	defer cancel()

	resourceType := in.ResourceType
	if resourceType == "" {
		resourceType = ResourceAuto
	}

	res, err := cs.upl.Upload(ctx, in.Reader, uploader.UploadParams{
		Folder:       in.Folder,
		ResourceType: string(resourceType),
		Overwrite:    api.Bool(true),
		Invalidate:   api.Bool(true),
	})
	if err != nil {
		cs.logger.Error().Err(err).Str("folder", in.Folder).Msg("Cloudinary upload failed")
		return nil, fmt.Errorf("cloudinary upload failed: %w", err)
	}
	if res.Error.Message != "" {
		cs.logger.Error().Str("folder", in.Folder).Str("error", res.Error.Message).Msg("Cloudinary rejected upload")
		return nil, errors.New("cloudinary upload failed: " + res.Error.Message)
	}

	cs.logger.Info().Str("publicID", res.PublicID).Str("resourceType", res.ResourceType).Msg("Cloudinary upload successful")
	return &UploadResult{
		URL:          res.SecureURL,
		PublicID:     res.PublicID,
		ResourceType: ResourceType(res.ResourceType),
	}, nil
}

// Delete implements ObjectStore. A "not found" result is treated as success.
func (cs *CloudinaryStorage) Delete(ctx context.Context, publicID string) error {
	if publicID == "" {
		return ErrEmptyPublicID
	}
	ctx, cancel := cs.withTimeout(ctx)
	defer cancel()

	res, err := cs.upl.Destroy(ctx, uploader.DestroyParams{PublicID: publicID, Invalidate: api.Bool(true)})
	if err != nil {
		cs.logger.Error().Err(err).Str("publicID", publicID).Msg("Cloudinary delete failed")
		return fmt.Errorf("cloudinary delete failed: %w", err)
	}
	if res.Error.Message != "" {
		return errors.New("cloudinary delete failed: " + res.Error.Message)
	}
	if res.Result != "ok" && res.Result != "not found" {
		return fmt.Errorf("cloudinary delete failed: unexpected result %q", res.Result)
	}

	cs.logger.Info().Str("publicID", publicID).Str("result", res.Result).Msg("Cloudinary object deleted")
	return nil
}

// PublicIDFromURL implements ObjectStore.
func (cs *CloudinaryStorage) PublicIDFromURL(u string) string {
	return PublicIDFromURL(u)
}
