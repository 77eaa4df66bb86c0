package server

import (
	stderrors "errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"

	"github.com/skillsenselab/whisperd/errors"
	"github.com/skillsenselab/whisperd/observability"
	"github.com/skillsenselab/whisperd/scheduler"
	"github.com/skillsenselab/whisperd/transcription"
)

// transcriptionForm carries the decode parameters of the OpenAI-style
// transcription endpoint.
type transcriptionForm struct {
	Language       string  `form:"language" validate:"omitempty,max=16"`
	Prompt         string  `form:"prompt" validate:"omitempty,max=4096"`
	Temperature    float64 `form:"temperature" validate:"gte=0,lte=1"`
	ResponseFormat string  `form:"response_format" validate:"omitempty,oneof=json text verbose_json"`
}

var formValidator = validator.New(validator.WithRequiredStructEnabled())

// handleTranscription accepts one audio upload, builds a Job, and runs it
// through the scheduler. The uploaded bytes live in a job-owned temp file
// that is removed on every outcome.
func (h *handlers) handleTranscription(c *gin.Context) {
	var form transcriptionForm
	if err := c.ShouldBind(&form); err != nil {
		writeError(c, errors.InvalidInput("", err.Error()))
		return
	}
	if err := formValidator.Struct(form); err != nil {
		writeError(c, errors.InvalidInput("", err.Error()))
		return
	}
	if form.ResponseFormat == "" {
		form.ResponseFormat = "json"
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		writeError(c, errors.InvalidInput("file", "audio file is required"))
		return
	}
	if fileHeader.Size > h.cfg.MaxUploadMB*1024*1024 {
		writeError(c, errors.InvalidInput("file", "audio file too large"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		writeError(c, errors.Internal(err))
		return
	}
	audio, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		writeError(c, errors.Internal(err))
		return
	}

	opts := transcription.Options{
		Language:       form.Language,
		Prompt:         form.Prompt,
		Temperature:    form.Temperature,
		ResponseFormat: form.ResponseFormat,
	}

	job, err := scheduler.NewJobFromBytes(h.cfg.TempDir, audio, opts, h.deadline())
	if err != nil {
		writeError(c, errors.Internal(err))
		return
	}
	defer job.Close()

	ctx, span := observability.Tracer().Start(c.Request.Context(), "scheduler.submit")
	res := h.router.Submit(ctx, job)
	span.SetAttributes(
		attribute.String("job.id", res.JobID),
		attribute.String("job.path", string(res.Path)),
	)
	span.End()

	if res.Err != nil {
		writeError(c, res.Err)
		return
	}

	switch form.ResponseFormat {
	case "text":
		c.String(http.StatusOK, res.Transcript.Text)
	case "verbose_json":
		c.JSON(http.StatusOK, res.Transcript)
	default:
		c.JSON(http.StatusOK, gin.H{"text": res.Transcript.Text})
	}
}

// writeError renders a typed failure with its recommended HTTP status.
func writeError(c *gin.Context, err error) {
	var ae *errors.AppError
	if !stderrors.As(err, &ae) {
		ae = errors.Internal(err)
	}
	c.JSON(ae.HTTPStatus, gin.H{"error": ae})
}
