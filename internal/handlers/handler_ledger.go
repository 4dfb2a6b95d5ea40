package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/finbooks-io/ledger-backend/internal/apperrors"
	portssvc "github.com/finbooks-io/ledger-backend/internal/core/ports/services"
	"github.com/finbooks-io/ledger-backend/internal/dto"
	"github.com/finbooks-io/ledger-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler serves per-account ledger views.
type ledgerHandler struct {
	ledgerService portssvc.LedgerService
}

func newLedgerHandler(ls portssvc.LedgerService) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
	}
}

// registerLedgerRoutes registers the ledger projection routes.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerService) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/:code", h.viewLedger)
	}
}

// viewLedger godoc
// @Summary View an account ledger
// @Description Replays the account's posted lines over the window with opening, running and closing balances
// @Tags ledger
// @Produce  json
// @Param   code path string true "Account code"
// @Param   from query string false "Window start date YYYY-MM-DD (default: start of current year)"
// @Param   to query string false "Window end date YYYY-MM-DD (default: today)"
// @Success 200 {object} dto.LedgerViewResponse
// @Failure 400 {object} map[string]string "Invalid date or window"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to build ledger view"
// @Router /ledger/{code} [get]
func (h *ledgerHandler) viewLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	code := c.Param("code")

	from, to, ok := parseDateWindow(c)
	if !ok {
		return
	}

	view, err := h.ledgerService.View(c.Request.Context(), code, from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found: " + code})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to build ledger view", slog.String("account_code", code), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build ledger view"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerViewResponse(view))
}

// parseDateWindow reads the from/to query dates, defaulting to the current
// year so far. A false return means the response was already written.
func parseDateWindow(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date: " + raw})
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date: " + raw})
			return time.Time{}, time.Time{}, false
		}
		to = parsed
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Window end precedes start"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// parseAsOfDate reads the asOf query date, defaulting to today.
func parseAsOfDate(c *gin.Context) (time.Time, bool) {
	now := time.Now().UTC()
	asOf := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date: " + raw})
			return time.Time{}, false
		}
		asOf = parsed
	}
	return asOf, true
}
