// Package media stores images on Cloudinary.
package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/orgprofile/cms-api/internal/core/domain"
)

// uploadAPI is the part of the Cloudinary upload API the store needs.
type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

type Config struct {
	CloudName string
	APIKey    string
	APISecret string
}

// CloudinaryStore implements ports.MediaStorage.
type CloudinaryStore struct {
	api uploadAPI
}

func NewCloudinaryStore(cfg Config) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryStore{api: &cld.Upload}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, folder, filename string, r io.Reader) (*domain.UploadedImage, error) {
	res, err := s.api.Upload(ctx, r, uploader.UploadParams{
		Folder:           folder,
		FilenameOverride: baseName(filename),
		UseFilename:      api.Bool(true),
		UniqueFilename:   api.Bool(true),
		Overwrite:        api.Bool(false),
		ResourceType:     "image",
	})
	if err != nil {
		return nil, hostError("upload image", err)
	}
	if res.Error.Message != "" {
		return nil, hostError("upload image", fmt.Errorf("%s", res.Error.Message))
	}
	return &domain.UploadedImage{
		PublicID:  res.PublicID,
		URL:       res.URL,
		SecureURL: res.SecureURL,
		Format:    res.Format,
		Width:     res.Width,
		Height:    res.Height,
		Bytes:     res.Bytes,
	}, nil
}

// Delete removes an image. Deleting an unknown id is reported as NotFound.
func (s *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	res, err := s.api.Destroy(ctx, uploader.DestroyParams{PublicID: publicID, ResourceType: "image"})
	if err != nil {
		return hostError("delete image", err)
	}
	if res.Error.Message != "" {
		return hostError("delete image", fmt.Errorf("%s", res.Error.Message))
	}
	switch res.Result {
	case "ok":
		return nil
	case "not found":
		return domain.NewError(domain.ErrNotFound, "image not found")
	default:
		return hostError("delete image", fmt.Errorf("unexpected result %q", res.Result))
	}
}

func hostError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrExternalService, err)
}

// baseName strips directories and the extension; Cloudinary appends its own suffix.
func baseName(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.TrimSuffix(name, path.Ext(name))
	if name == "." || name == "/" || name == "" {
		return "image"
	}
	return name
}
