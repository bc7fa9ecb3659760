package media

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/orgprofile/cms-api/internal/core/domain"
)

type fakeUploadAPI struct {
	params    uploader.UploadParams
	uploadRes *uploader.UploadResult
	destroy   *uploader.DestroyResult
	err       error
}

func (f *fakeUploadAPI) Upload(_ context.Context, _ interface{}, p uploader.UploadParams) (*uploader.UploadResult, error) {
	f.params = p
	return f.uploadRes, f.err
}

func (f *fakeUploadAPI) Destroy(_ context.Context, _ uploader.DestroyParams) (*uploader.DestroyResult, error) {
	return f.destroy, f.err
}

func TestCloudinaryStore_Upload(t *testing.T) {
	fake := &fakeUploadAPI{uploadRes: &uploader.UploadResult{
		PublicID:  "root/articles/cover_abc",
		SecureURL: "https://res.cloudinary.com/demo/image/upload/cover_abc.png",
		Format:    "png",
		Width:     10,
		Height:    20,
		Bytes:     300,
	}}
	s := &CloudinaryStore{api: fake}

	img, err := s.Upload(context.Background(), "root/articles", `C:\tmp\cover.png`, strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if fake.params.Folder != "root/articles" || fake.params.FilenameOverride != "cover" || fake.params.ResourceType != "image" {
		t.Fatalf("unexpected params: %+v", fake.params)
	}
	if img.PublicID != "root/articles/cover_abc" || img.Width != 10 || img.Bytes != 300 {
		t.Fatalf("unexpected image: %+v", img)
	}
}

func TestCloudinaryStore_UploadErrors(t *testing.T) {
	s := &CloudinaryStore{api: &fakeUploadAPI{err: errors.New("connection reset")}}
	if _, err := s.Upload(context.Background(), "f", "a.png", strings.NewReader("x")); !errors.Is(err, domain.ErrExternalService) {
		t.Fatalf("expected ErrExternalService, got %v", err)
	}

	s = &CloudinaryStore{api: &fakeUploadAPI{uploadRes: &uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid image file"}}}}
	if _, err := s.Upload(context.Background(), "f", "a.png", strings.NewReader("x")); !errors.Is(err, domain.ErrExternalService) {
		t.Fatalf("expected ErrExternalService for API error body, got %v", err)
	}
}

func TestCloudinaryStore_Delete(t *testing.T) {
	cases := []struct {
		result string
		want   error
	}{
		{"ok", nil},
		{"not found", domain.ErrNotFound},
		{"weird", domain.ErrExternalService},
	}
	for _, c := range cases {
		s := &CloudinaryStore{api: &fakeUploadAPI{destroy: &uploader.DestroyResult{Result: c.result}}}
		err := s.Delete(context.Background(), "root/articles/x")
		if c.want == nil && err != nil {
			t.Fatalf("%s: unexpected error %v", c.result, err)
		}
		if c.want != nil && !errors.Is(err, c.want) {
			t.Fatalf("%s: expected %v, got %v", c.result, c.want, err)
		}
	}
}

func TestBaseName(t *testing.T) {
	cases := map[string]string{
		"photo.jpg":        "photo",
		"dir/sub/logo.png": "logo",
		"":                 "image",
		"noext":            "noext",
	}
	for in, want := range cases {
		if got := baseName(in); got != want {
			t.Fatalf("baseName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUnconfiguredStore(t *testing.T) {
	var s UnconfiguredStore
	if _, err := s.Upload(context.Background(), "f", "a.png", strings.NewReader("x")); !errors.Is(err, domain.ErrExternalService) {
		t.Fatalf("expected external service error, got %v", err)
	}
	if err := s.Delete(context.Background(), "id"); !errors.Is(err, domain.ErrExternalService) {
		t.Fatalf("expected external service error, got %v", err)
	}
}
