package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/orgprofile/cms-api/internal/api/metrics"
	"github.com/orgprofile/cms-api/internal/api/response"
	"github.com/orgprofile/cms-api/internal/core/domain"
	"github.com/orgprofile/cms-api/internal/core/ports"
)

// uploadField is the multipart form field carrying the image.
const uploadField = "image"

// UploadHandler proxies image uploads to the media host.
type UploadHandler struct {
	service ports.MediaService
}

func NewUploadHandler(service ports.MediaService) *UploadHandler {
	return &UploadHandler{service: service}
}

// UploadImage stores an article body image.
//
// @Summary      Upload article image
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image  formData  file  true  "JPEG, PNG, GIF or WebP, at most 5 MB"
// @Success      200    {object}  response.Success{data=domain.UploadedImage}
// @Failure      400    {object}  response.Failure
// @Failure      500    {object}  response.Failure
// @Router       /upload/image [post]
func (h *UploadHandler) UploadImage(c echo.Context) error {
	return h.upload(c, domain.MediaArticleImage, "image uploaded")
}

// UploadThumbnail stores an article thumbnail.
//
// @Summary      Upload thumbnail
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image  formData  file  true  "JPEG, PNG, GIF or WebP, at most 5 MB"
// @Success      200    {object}  response.Success{data=domain.UploadedImage}
// @Failure      400    {object}  response.Failure
// @Failure      500    {object}  response.Failure
// @Router       /upload/thumbnail [post]
func (h *UploadHandler) UploadThumbnail(c echo.Context) error {
	return h.upload(c, domain.MediaThumbnail, "thumbnail uploaded")
}

// UploadSettingImage stores an image referenced by a site setting (logo, banner).
//
// @Summary      Upload setting image
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image  formData  file  true  "JPEG, PNG, GIF or WebP, at most 5 MB"
// @Success      200    {object}  response.Success{data=domain.UploadedImage}
// @Failure      400    {object}  response.Failure
// @Failure      500    {object}  response.Failure
// @Router       /upload/settings [post]
func (h *UploadHandler) UploadSettingImage(c echo.Context) error {
	return h.upload(c, domain.MediaSetting, "setting image uploaded")
}

// DeleteImage removes an image by public id. The id may contain slashes.
//
// @Summary      Delete image
// @Tags         upload
// @Produce      json
// @Security     BearerAuth
// @Param        publicId  path      string  true  "Public id on the media host"
// @Success      200       {object}  response.Success
// @Failure      404       {object}  response.Failure
// @Failure      500       {object}  response.Failure
// @Router       /upload/image/{publicId} [delete]
func (h *UploadHandler) DeleteImage(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("*")); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "image deleted", nil)
}

func (h *UploadHandler) upload(c echo.Context, kind domain.MediaKind, message string) error {
	folder := string(kind)

	fh, err := c.FormFile(uploadField)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(folder, "rejected").Inc()
		return domain.Invalid(uploadField, "no file was uploaded")
	}
	if fh.Size > domain.MaxUploadBytes {
		metrics.UploadsTotal.WithLabelValues(folder, "rejected").Inc()
		return domain.Invalid(uploadField, "file exceeds the 5 MB limit")
	}

	f, err := fh.Open()
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(folder, "rejected").Inc()
		return domain.Invalid(uploadField, "uploaded file could not be read")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, domain.MaxUploadBytes+1))
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(folder, "rejected").Inc()
		return domain.Invalid(uploadField, "uploaded file could not be read")
	}

	start := time.Now()
	img, err := h.service.Upload(c.Request().Context(), kind, fh.Filename, data)
	metrics.UploadDuration.WithLabelValues(folder).Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			metrics.UploadsTotal.WithLabelValues(folder, "rejected").Inc()
		} else {
			metrics.UploadsTotal.WithLabelValues(folder, "error").Inc()
		}
		return err
	}
	metrics.UploadsTotal.WithLabelValues(folder, "success").Inc()
	return response.OK(c, http.StatusOK, message, img)
}
