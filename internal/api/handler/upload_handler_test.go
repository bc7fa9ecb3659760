package handler

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/orgprofile/cms-api/internal/core/domain"
)

func multipartContext(t *testing.T, field, filename string, data []byte) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if field != "" {
		part, err := w.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		_, _ = part.Write(data)
	}
	_ = w.Close()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload/image", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUploadHandler_UploadThumbnail(t *testing.T) {
	stub := &stubMediaService{
		uploadFn: func(_ context.Context, kind domain.MediaKind, filename string, data []byte) (*domain.UploadedImage, error) {
			if kind != domain.MediaThumbnail || filename != "cover.png" || string(data) != "imagebytes" {
				t.Fatalf("unexpected args: %s %s %q", kind, filename, data)
			}
			return &domain.UploadedImage{PublicID: "root/thumbnails/cover", SecureURL: "https://cdn/cover.png"}, nil
		},
	}
	handler := NewUploadHandler(stub)

	c, rec := multipartContext(t, "image", "cover.png", []byte("imagebytes"))
	if err := handler.UploadThumbnail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !bytes.Contains(rec.Body.Bytes(), []byte("root/thumbnails/cover")) {
		t.Fatalf("unexpected response: %d %s", rec.Code, rec.Body.String())
	}
}

func TestUploadHandler_MissingFile(t *testing.T) {
	stub := &stubMediaService{
		uploadFn: func(context.Context, domain.MediaKind, string, []byte) (*domain.UploadedImage, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewUploadHandler(stub)

	c, _ := multipartContext(t, "", "", nil)
	if err := handler.UploadImage(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUploadHandler_HostFailure(t *testing.T) {
	stub := &stubMediaService{
		uploadFn: func(context.Context, domain.MediaKind, string, []byte) (*domain.UploadedImage, error) {
			return nil, domain.NewError(domain.ErrExternalService, "host down")
		},
	}
	handler := NewUploadHandler(stub)

	c, _ := multipartContext(t, "image", "a.png", []byte("x"))
	if err := handler.UploadSettingImage(c); !errors.Is(err, domain.ErrExternalService) {
		t.Fatalf("expected external service error, got %v", err)
	}
}

func TestUploadHandler_DeleteImage_KeepsSlashes(t *testing.T) {
	stub := &stubMediaService{}
	handler := NewUploadHandler(stub)

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/upload/image/root/articles/pic", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("*")
	c.SetParamValues("root/articles/pic")

	if err := handler.DeleteImage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.deleted != "root/articles/pic" {
		t.Fatalf("unexpected public id %q", stub.deleted)
	}
}
