package service

import (
	"bytes"
	"context"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/orgprofile/cms-api/internal/core/domain"
	"github.com/orgprofile/cms-api/internal/core/ports"
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// MediaService validates images and stores them on the media host under
// <root>/<kind>.
type MediaService struct {
	store  ports.MediaStorage
	root   string
	logger zerolog.Logger
}

func NewMediaService(store ports.MediaStorage, rootFolder string, logger zerolog.Logger) *MediaService {
	return &MediaService{store: store, root: strings.Trim(rootFolder, "/"), logger: logger}
}

func (s *MediaService) Upload(ctx context.Context, kind domain.MediaKind, filename string, data []byte) (*domain.UploadedImage, error) {
	switch kind {
	case domain.MediaArticleImage, domain.MediaThumbnail, domain.MediaSetting:
	default:
		return nil, domain.Invalid("kind", "unknown upload kind")
	}
	if len(data) == 0 {
		return nil, domain.Invalid("file", "no file uploaded")
	}
	if len(data) > domain.MaxUploadBytes {
		return nil, domain.Invalid("file", "file exceeds the 5 MB limit")
	}
	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), allowedImageTypes...) {
		return nil, domain.Invalid("file", "only JPEG, PNG, GIF and WebP images are allowed")
	}

	folder := path.Join(s.root, string(kind))
	img, err := s.store.Upload(ctx, folder, filename, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("public_id", img.PublicID).Str("mime", mt.String()).Int("bytes", len(data)).Msg("image uploaded")
	return img, nil
}

func (s *MediaService) Delete(ctx context.Context, publicID string) error {
	publicID = strings.Trim(publicID, "/")
	if publicID == "" {
		return domain.Invalid("publicId", "public id is required")
	}
	if err := s.store.Delete(ctx, publicID); err != nil {
		return err
	}
	s.logger.Info().Str("public_id", publicID).Msg("image deleted")
	return nil
}
