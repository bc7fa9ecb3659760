package media

import (
	"context"
	"io"

	"github.com/orgprofile/cms-api/internal/core/domain"
)

var errNotConfigured = domain.NewError(domain.ErrExternalService, "media storage is not configured")

// UnconfiguredStore stands in when no Cloudinary credentials are set. Every
// call fails with an external service error.
type UnconfiguredStore struct{}

func (UnconfiguredStore) Upload(context.Context, string, string, io.Reader) (*domain.UploadedImage, error) {
	return nil, errNotConfigured
}

func (UnconfiguredStore) Delete(context.Context, string) error {
	return errNotConfigured
}
