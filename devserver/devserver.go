// Package devserver emulates the transcribe-audio edge function locally:
// it serves POST /functions/v1/{name} with the same request and response
// bodies, backed by an in-process speech-to-text engine.
package devserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/micscribe/errors"
	"github.com/kbukum/micscribe/logger"
	"github.com/kbukum/micscribe/observability"
	"github.com/kbukum/micscribe/server"
	"github.com/kbukum/micscribe/server/endpoint"
	"github.com/kbukum/micscribe/transcription"
	"github.com/kbukum/micscribe/validation"
)

// Config configures the emulator.
type Config struct {
	Server server.Config `mapstructure:"server"`
	// Function is the emulated function name.
	Function string `mapstructure:"function"`
	// AnonKey, when set, is required as Bearer token like the functions
	// gateway does.
	AnonKey string `mapstructure:"anon_key"`
}

// ApplyDefaults fills in zero-valued fields.
func (c *Config) ApplyDefaults() {
	c.Server.ApplyDefaults()
	if c.Function == "" {
		c.Function = "transcribe-audio"
	}
}

// Functions answers transcribe-audio requests with a Transcriber.
type Functions struct {
	cfg         Config
	transcriber transcription.Transcriber
	log         *logger.Logger
}

// NewFunctions creates the function handler.
func NewFunctions(cfg Config, t transcription.Transcriber, log *logger.Logger) *Functions {
	cfg.ApplyDefaults()
	return &Functions{cfg: cfg, transcriber: t, log: log.WithComponent("devserver")}
}

// Register mounts the function route on r.
func (f *Functions) Register(r gin.IRouter) {
	r.POST("/functions/v1/:name", f.invoke)
}

// Health reports the backing engine.
func (f *Functions) Health(ctx context.Context) []observability.Health {
	return []observability.Health{observability.CheckAvailability(ctx, f.transcriber)}
}

func (f *Functions) invoke(c *gin.Context) {
	if name := c.Param("name"); name != f.cfg.Function {
		c.JSON(http.StatusNotFound, transcription.Response{Error: "Function not found"})
		return
	}
	if f.cfg.AnonKey != "" && c.GetHeader("Authorization") != "Bearer "+f.cfg.AnonKey {
		c.JSON(http.StatusUnauthorized, transcription.Response{Error: "Invalid JWT"})
		return
	}

	var req transcription.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, transcription.Response{Error: "Invalid JSON body"})
		return
	}
	if err := validation.Validate(req); err != nil {
		c.JSON(http.StatusBadRequest, transcription.Response{Error: errors.UserMessage(err)})
		return
	}

	ctx := c.Request.Context()
	log := f.log.WithContext(ctx)
	log.Info("transcription requested", logger.Fields(
		logger.FieldMimeType, req.MimeType,
		"language", req.Language,
		"is_mobile", req.IsMobile,
		"user_agent", req.UserAgent,
		logger.FieldBytes, len(req.AudioBlob)*3/4,
	))

	resp, err := f.transcriber.Transcribe(ctx, req)
	if err != nil {
		log.Error("transcription failed", logger.ErrorFields("transcribe", err))
		c.JSON(http.StatusInternalServerError, transcription.Response{Error: err.Error()})
		return
	}
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		c.JSON(http.StatusOK, transcription.Response{Error: "Aucun texte détecté dans l'audio"})
		return
	}
	c.JSON(http.StatusOK, transcription.Response{Text: resp.Text})
}

// New builds a server hosting the function, /health and /version.
func New(cfg Config, t transcription.Transcriber, serviceName string, log *logger.Logger) *server.Server {
	cfg.ApplyDefaults()
	fn := NewFunctions(cfg, t, log)

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	srv.RegisterDefaultEndpoints(serviceName, endpoint.HealthChecker(fn.Health))
	fn.Register(srv.Engine())
	srv.Engine().NoRoute(func(c *gin.Context) {
		server.RespondWithError(c, errors.New(errors.ErrCodeNotFound, "Route not found", http.StatusNotFound))
	})
	return srv
}
