package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillsenselab/scribe/assemble"
	"github.com/skillsenselab/scribe/diarization"
	"github.com/skillsenselab/scribe/errors"
	"github.com/skillsenselab/scribe/format"
	"github.com/skillsenselab/scribe/logger"
	"github.com/skillsenselab/scribe/transcription"
)

// Service wires the pipeline behind the HTTP endpoints. Diarizer may be
// nil when no diarization backend is configured; requests asking for
// diarization then degrade to unattributed transcripts, as everywhere else.
type Service struct {
	Transcriber transcription.Provider
	Diarizer    diarization.Provider
	Assembler   *assemble.Assembler
	Log         *logger.Logger
}

func (s *Service) register(engine *gin.Engine) {
	engine.GET("/healthz", s.health)
	engine.POST("/v1/transcriptions", s.transcribe)
}

// health reports backend availability.
func (s *Service) health(c *gin.Context) {
	ctx := c.Request.Context()
	body := gin.H{
		"status":      "ok",
		"transcriber": s.Transcriber.IsAvailable(ctx),
	}
	if s.Diarizer != nil {
		body["diarizer"] = s.Diarizer.IsAvailable(ctx)
	}
	c.JSON(http.StatusOK, body)
}

// transcribe accepts a multipart audio upload and runs the full pipeline.
// Form fields: audio (file, required), format (json|txt|md, default json),
// language, model, diarize (bool), word_timestamps (bool).
func (s *Service) transcribe(c *gin.Context) {
	log := s.Log.WithComponent("transcribe")

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		abortWith(c, errors.MissingField("audio"))
		return
	}

	outFormat, err := format.Parse(defaultStr(c.PostForm("format"), "json"))
	if err != nil {
		abortWith(c, err)
		return
	}

	diarize, _ := strconv.ParseBool(c.PostForm("diarize"))
	wordTimestamps, _ := strconv.ParseBool(c.PostForm("word_timestamps"))

	// The sidecar clients read from a path, so the upload lands in a
	// per-request temp file first.
	tmpDir, err := os.MkdirTemp("", "scribe-upload-")
	if err != nil {
		abortWith(c, errors.Internal(err))
		return
	}
	defer os.RemoveAll(tmpDir)

	audioPath := filepath.Join(tmpDir, uuid.NewString()+filepath.Ext(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, audioPath); err != nil {
		abortWith(c, errors.Internal(err))
		return
	}

	ctx := c.Request.Context()
	result, err := s.Transcriber.Transcribe(ctx, transcription.Request{
		AudioPath:      audioPath,
		Language:       c.PostForm("language"),
		Model:          c.PostForm("model"),
		WordTimestamps: wordTimestamps,
	})
	if err != nil {
		abortWith(c, err)
		return
	}

	var diarizationResult *diarization.Result
	if diarize && s.Diarizer != nil {
		diarizationResult, err = s.Diarizer.Diarize(ctx, diarization.Request{AudioPath: audioPath})
		if err != nil {
			// Degrade, never abort: a transcript without speaker labels
			// beats no transcript.
			log.WithError(err).Warn("diarization failed; continuing without speaker labels")
			diarizationResult = nil
		}
	}

	tr := s.Assembler.Assemble(ctx, *result, diarizationResult, diarize)

	out, err := format.Serialize(tr, outFormat)
	if err != nil {
		abortWith(c, err)
		return
	}

	c.Data(http.StatusOK, contentType(outFormat), out)
}

func contentType(f format.Format) string {
	switch f {
	case format.FormatJSON:
		return "application/json; charset=utf-8"
	case format.FormatMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

func defaultStr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// abortWith maps an error to its HTTP status, using the AppError status
// when present.
func abortWith(c *gin.Context, err error) {
	if appErr, ok := errors.AsAppError(err); ok {
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr)
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"code":    string(errors.ErrCodeInternal),
		"message": err.Error(),
	})
}
