package ports

import (
	"context"
	"io"

	"github.com/orgprofile/cms-api/internal/core/domain"
)

// MediaStorage is the remote image host.
type MediaStorage interface {
	Upload(ctx context.Context, folder, filename string, r io.Reader) (*domain.UploadedImage, error)
	Delete(ctx context.Context, publicID string) error
}

type MediaService interface {
	// Upload validates and stores one image under the folder for kind.
	Upload(ctx context.Context, kind domain.MediaKind, filename string, data []byte) (*domain.UploadedImage, error)
	Delete(ctx context.Context, publicID string) error
}
