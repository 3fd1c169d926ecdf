package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/kliniku/ledgercore/internal/apperrors"
)

// fieldError is one validation failure in a request payload.
type fieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// bindError translates a ShouldBind failure into a 400 response. Validator
// failures are reported per field; anything else is a malformed payload.
func bindError(c *gin.Context, logger *slog.Logger, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
		}
		logger.Warn("Request validation failed", slog.Int("field_errors", len(fields)))
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": fields})
		return
	}
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}

// respondError maps a service error onto an HTTP status. fallback is the
// message used for unclassified errors, which are never echoed verbatim.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	if cfgErr, ok := apperrors.AsLedgerConfigError(err); ok {
		// A posting referenced chart codes that do not exist. This is a setup
		// defect, not a client mistake.
		logger.Error("Ledger configuration error", slog.Any("missing_codes", cfgErr.MissingCodes))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":        "ledger configuration error",
			"missingCodes": cfgErr.MissingCodes,
		})
		return
	}

	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrHasChildren),
		errors.Is(err, apperrors.ErrInUse):
		logger.Warn("Conflicting request", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientBalance):
		logger.Warn("Insufficient balance", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.As(err, &appErr):
		logger.Error("Application error", slog.Int("code", appErr.Code), slog.String("error", err.Error()))
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// actorID identifies who performed the request for audit fields. There is no
// authentication layer; callers identify themselves with the X-Actor-ID
// header and anonymous requests are attributed to "system".
func actorID(c *gin.Context) string {
	if actor := c.GetHeader("X-Actor-ID"); actor != "" {
		return actor
	}
	return "system"
}
