package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/safeeat/backend/internal/domain"
	"github.com/safeeat/backend/internal/infrastructure/barcode"
	"github.com/safeeat/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	preferences *usecase.PreferenceService
	scanner     *usecase.ScanService
}

// NewHandler creates a new HTTP handler
func NewHandler(preferences *usecase.PreferenceService, scanner *usecase.ScanService) *Handler {
	return &Handler{
		preferences: preferences,
		scanner:     scanner,
	}
}

type ingredientsBody struct {
	Ingredients []string `json:"ingredients"`
}

type ingredientBody struct {
	Ingredient string `json:"ingredient" binding:"required"`
}

// HealthCheck returns the health status of the API and its preference store
func (h *Handler) HealthCheck(c *gin.Context) {
	status, code, store := "healthy", http.StatusOK, "ok"
	if err := h.preferences.Health(c.Request.Context()); err != nil {
		logrus.WithError(err).Warn("preference store health check failed")
		status, code, store = "unhealthy", http.StatusServiceUnavailable, "unavailable"
	}

	c.JSON(code, gin.H{
		"status":  status,
		"service": "safeeat-backend",
		"version": "1.0.0",
		"store":   store,
	})
}

// ListIngredients returns the avoid-list
func (h *Handler) ListIngredients(c *gin.Context) {
	c.JSON(http.StatusOK, ingredientsBody{Ingredients: h.preferences.GetAvoidList(c.Request.Context())})
}

// ReplaceIngredients overwrites the avoid-list with the request body
func (h *Handler) ReplaceIngredients(c *gin.Context) {
	var body ingredientsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, domain.ErrInvalidRequest, err.Error())
		return
	}

	// The settings screen normalizes and deduplicates before saving
	list := make([]string, 0, len(body.Ingredients))
	seen := make(map[string]bool, len(body.Ingredients))
	for _, term := range body.Ingredients {
		normalized := usecase.NormalizeIngredient(term)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		list = append(list, normalized)
	}

	if err := h.preferences.SaveAvoidList(c.Request.Context(), list); err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, ingredientsBody{Ingredients: list})
}

// AddIngredient appends one ingredient to the avoid-list
func (h *Handler) AddIngredient(c *gin.Context) {
	var body ingredientBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, domain.ErrInvalidRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	if err := h.preferences.AddIngredient(ctx, body.Ingredient); err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, ingredientsBody{Ingredients: h.preferences.GetAvoidList(ctx)})
}

// RemoveIngredient drops one ingredient from the avoid-list
func (h *Handler) RemoveIngredient(c *gin.Context) {
	ctx := c.Request.Context()
	term := usecase.NormalizeIngredient(c.Param("ingredient"))
	if err := h.preferences.RemoveIngredient(ctx, term); err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, ingredientsBody{Ingredients: h.preferences.GetAvoidList(ctx)})
}

// SuggestIngredients returns common ingredients to avoid
func (h *Handler) SuggestIngredients(c *gin.Context) {
	c.JSON(http.StatusOK, ingredientsBody{Ingredients: h.preferences.SuggestedIngredients()})
}

// ScanBarcode looks up a typed barcode
func (h *Handler) ScanBarcode(c *gin.Context) {
	outcome, err := h.scanner.ScanWith(c.Request.Context(), barcode.ManualCapturer{Input: c.Param("barcode")})
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// ScanImage decodes a barcode from an uploaded photo and looks it up
func (h *Handler) ScanImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, domain.ErrInvalidRequest, "multipart field 'image' is required")
		return
	}
	f, err := file.Open()
	if err != nil {
		respondError(c, domain.ErrCapture, err.Error())
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		respondError(c, domain.ErrCapture, err.Error())
		return
	}

	outcome, err := h.scanner.ScanWith(c.Request.Context(), barcode.ImageCapturer{Data: data})
	if err != nil {
		respondError(c, err, "")
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrCapture):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error, detail string) {
	status := statusFor(err)
	message := err.Error()
	if detail != "" {
		message = message + ": " + detail
	}
	if status >= http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"component":  "http",
			"request_id": c.GetString(requestIDKey),
		}).WithError(err).Error("request failed")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
