package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"docuvet/internal/config"
	apperrors "docuvet/internal/errors"
	"docuvet/internal/logger"
	"docuvet/internal/service"
	"docuvet/internal/validator"
)

// ValidateRequest is the serve-mode request body.
type ValidateRequest struct {
	URL          string `json:"url" binding:"required,url"`
	Method       string `json:"method,omitempty"`
	ExpectedText string `json:"expected_text,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// NewHandler builds the HTTP handler exposing document validation.
func NewHandler(svc service.ValidationService, cfg *config.Config) http.Handler {
	r := gin.Default()

	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	r.GET("/health", healthCheck)
	r.POST("/v1/validate", validateDocument(svc, cfg))

	return r
}

func validateDocument(svc service.ValidationService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"user_agent": c.Request.UserAgent(),
			"ip":         c.ClientIP(),
		}).Info("Processing document validation request")

		var req ValidateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).WithField("ip", c.ClientIP()).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}

		method := validator.Method(req.Method)
		if req.Method == "" {
			method = validator.MethodBasic
		}

		result, err := svc.Validate(ctx, req.URL, method, validator.Options{
			ExpectedText: req.ExpectedText,
		})
		if err != nil {
			var appErr *apperrors.AppError
			if errors.Is(err, context.DeadlineExceeded) {
				appErr = apperrors.NewNetworkError("document fetch timeout", err)
			} else if !errors.As(err, &appErr) {
				appErr = apperrors.NewInternalError("validation failed", err)
			}

			logger.WithError(appErr).WithFields(logrus.Fields{
				"url": req.URL,
				"ip":  c.ClientIP(),
			}).Error("Failed to validate document")

			respondError(c, appErr.StatusCode, "failed to validate document", appErr)
			return
		}

		logger.WithFields(logrus.Fields{
			"url":                req.URL,
			"validation_method":  string(method),
			"status":             string(result.Status),
			"processing_time_ms": time.Since(startTime).Milliseconds(),
		}).Info("Document validation completed")

		c.JSON(http.StatusOK, result)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"methods": validator.Methods(),
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
