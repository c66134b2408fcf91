package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/eventpilot/backend/assets"
	"github.com/eventpilot/backend/errs"
	"github.com/eventpilot/backend/metrics"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// multipartOverhead covers boundaries, part headers and the folder field.
const multipartOverhead = 64 << 10

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	uploader  assets.Uploader
	maxBytes  int64
}

func newUploadHandler(uploader assets.Uploader, maxBytes int64) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		uploader:  uploader,
		maxBytes:  maxBytes,
	}
}

// uploadImage stores a single image from the multipart field "image"
// @Summary Upload image
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "JPEG, PNG, GIF or WebP image"
// @Param folder formData string false "Destination folder"
// @Success 200 {object} UploadResponse "Stored image"
// @Failure 400 {object} UploadErrorResponse "Not an image"
// @Failure 413 {object} UploadErrorResponse "Image too large"
// @Failure 500 {object} UploadErrorResponse "Upload failed"
// @Router /api/upload [post]
func (h uploadHandler) uploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.uploader == nil {
			metrics.RecordUpload("failure")
			h.responder.writeJSON(w, http.StatusServiceUnavailable, UploadErrorResponse{
				Success: false,
				Message: "Upload service is not configured",
			})
			return
		}

		data, folder, err := h.readImage(w, r)
		if err != nil {
			if errs.IsMaxBodySizeExceededError(err) {
				metrics.RecordUpload("too_large")
			} else {
				metrics.RecordUpload("rejected")
			}
			h.writeUploadError(w, err)
			return
		}

		contentType, ok := assets.DetectImage(data)
		if !ok {
			metrics.RecordUpload("rejected")
			h.writeUploadError(w, errs.NewUnsupportedMediaTypeError(contentType, assets.AllowedTypes))
			return
		}

		asset, err := h.uploader.Upload(r.Context(), folder, data, contentType)
		if err != nil {
			metrics.RecordUpload("failure")
			h.logger.Error().Err(err).Str("contentType", contentType).Msg("image upload failed")
			h.responder.writeJSON(w, http.StatusInternalServerError, UploadErrorResponse{
				Success: false,
				Message: "Upload failed",
			})
			return
		}

		metrics.RecordUpload("success")
		h.responder.WriteJSON(w, UploadResponse{
			Success:  true,
			URL:      asset.URL,
			PublicID: asset.PublicID,
		})
	}
}

// readImage streams the multipart body keeping the image in memory. Parts other
// than "image" and "folder" are skipped.
func (h uploadHandler) readImage(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)

	mr, err := r.MultipartReader()
	if err != nil {
		return nil, "", errs.NewMalformedPayloadError("multipart", err)
	}

	var (
		data   []byte
		folder string
	)
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, "", h.bodyError(err)
		}

		switch part.FormName() {
		case "image":
			data, err = io.ReadAll(io.LimitReader(part, h.maxBytes+1))
			if err != nil {
				return nil, "", h.bodyError(err)
			}
			if int64(len(data)) > h.maxBytes {
				return nil, "", errs.NewMaxBodySizeExceededError(h.maxBytes)
			}
		case "folder":
			raw, err := io.ReadAll(io.LimitReader(part, 256))
			if err != nil {
				return nil, "", h.bodyError(err)
			}
			folder = string(raw)
		}
		_ = part.Close()
	}

	if len(data) == 0 {
		return nil, "", errs.NewBadRequestError("No image provided")
	}
	return data, folder, nil
}

func (h uploadHandler) bodyError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return errs.NewMaxBodySizeExceededError(h.maxBytes)
	}
	return errs.NewMalformedPayloadError("multipart", err)
}

func (h uploadHandler) writeUploadError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	message := err.Error()

	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		status = apiErr.StatusCode
		message = apiErr.Message()
	}
	h.responder.writeJSON(w, status, UploadErrorResponse{Success: false, Message: message})
}
