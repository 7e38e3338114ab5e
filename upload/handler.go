package upload

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/server"
	"github.com/kbukum/scribe/transcription"
)

// FieldName is the multipart field carrying the audio file.
const FieldName = "audio"

// Result is the success body of POST /transcribe.
type Result struct {
	Text string             `json:"text"`
	Job  *transcription.Job `json:"job,omitempty"`
}

// Handler serves POST /transcribe.
type Handler struct {
	provider transcription.Provider
	files    *TempFiles
	types    MediaTypes
	log      *logger.Logger
}

// NewHandler creates a Handler that forwards uploads to p.
func NewHandler(p transcription.Provider, files *TempFiles, allowedTypes []string, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{
		provider: p,
		files:    files,
		types:    NewMediaTypes(allowedTypes),
		log:      log.WithComponent("upload"),
	}
}

// Register mounts the handler on r.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/transcribe", h.Transcribe)
}

// Transcribe stores the upload, runs the provider on it and removes it.
// Provider failures are reported with 200 and an error body.
func (h *Handler) Transcribe(c *gin.Context) {
	ctx := c.Request.Context()
	log := h.log.WithContext(ctx)

	fh, err := c.FormFile(FieldName)
	if err != nil {
		server.RespondWithError(c, formError(err))
		return
	}

	contentType, err := h.contentType(fh)
	if err != nil {
		server.RespondWithError(c, apperrors.StorageFailure(err))
		return
	}
	if !h.types.Allowed(contentType) {
		log.Warn("Rejected upload", logger.Fields(logger.FieldFile, fh.Filename, "content_type", contentType))
		server.RespondWithError(c, apperrors.UnsupportedMediaType(contentType, h.types.List()))
		return
	}

	src, err := fh.Open()
	if err != nil {
		server.RespondWithError(c, apperrors.StorageFailure(err))
		return
	}
	tf, err := h.files.Save(ctx, fh.Filename, src)
	_ = src.Close()
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	defer tf.Release()

	// A dispatched call runs to completion even if the client goes away.
	resp, err := h.provider.Transcribe(context.WithoutCancel(ctx), transcription.Request{AudioPath: tf.Path})
	if err != nil {
		appErr := transcription.Classify(h.provider.Name(), err)
		log.Error("Transcription failed", logger.Fields(
			logger.FieldProvider, h.provider.Name(),
			logger.FieldFile, tf.Name,
			logger.FieldError, err.Error(),
		))
		server.RespondWithError(c, appErr)
		return
	}

	server.RespondOK(c, Result{Text: resp.Text, Job: resp.Job})
}

// contentType returns the declared type, sniffing the content when the
// client sent none or a generic one.
func (h *Handler) contentType(fh *multipart.FileHeader) (string, error) {
	declared := fh.Header.Get("Content-Type")
	if mt := normalize(declared); mt != "" && mt != octetStream {
		return declared, nil
	}
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return h.types.Resolve(declared, f), nil
}

// formError maps multipart parsing failures to AppErrors.
func formError(err error) *apperrors.AppError {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return apperrors.PayloadTooLarge(mbe.Limit)
	}
	return apperrors.MissingInput(FieldName).WithCause(err)
}
