package resolve

import (
	"errors"

	"object-resolver/core/logger"
	"object-resolver/core/storage"
	"object-resolver/feature/manifest"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Request is the body of POST /resolve.
type Request struct {
	Bucket   string   `json:"bucket"`
	Patterns []string `json:"patterns"`
	Persist  bool     `json:"persist"`
}

// Response is the result of POST /resolve.
type Response struct {
	Bucket     string   `json:"bucket"`
	Count      int      `json:"count"`
	Keys       []string `json:"keys"`
	ManifestID string   `json:"manifest_id,omitempty"`
}

// BatchRequest is the body of POST /resolve/batch.
type BatchRequest struct {
	Bucket string     `json:"bucket"`
	Sets   [][]string `json:"sets"`
}

// BatchResponse is the result of POST /resolve/batch.
type BatchResponse struct {
	Bucket  string     `json:"bucket"`
	Results [][]string `json:"results"`
}

// Handler handles HTTP requests for pattern resolution.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the resolve routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/resolve")
	group.Post("/", h.HandleResolve)
	group.Post("/batch", h.HandleResolveBatch)
}

// HandleResolve expands a set of wildcard patterns.
// @Summary Resolve Patterns
// @Description Lists the bucket for every pattern and returns the matched keys sorted lexicographically. Duplicates are kept.
// @Tags resolve
// @Accept json
// @Produce json
// @Param request body resolve.Request true "Patterns to resolve"
// @Success 200 {object} resolve.Response "Resolved keys"
// @Failure 400 {object} map[string]string "Malformed Pattern"
// @Failure 404 {object} map[string]string "Bucket Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Security ApiKeyAuth
// @Router /resolve [post]
func (h *Handler) HandleResolve(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if len(req.Patterns) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "patterns are required"})
	}

	bucket := h.service.Bucket(req.Bucket)
	resp := Response{Bucket: bucket}

	var err error
	if req.Persist {
		var saved *manifest.Manifest
		resp.Keys, saved, err = h.service.ResolveAndRecord(c.Context(), bucket, req.Patterns)
		if err == nil {
			resp.ManifestID = saved.ID
		}
	} else {
		resp.Keys, err = h.service.Resolve(c.Context(), bucket, req.Patterns)
	}
	if err != nil {
		l.Error("Resolve failed", zap.Strings("patterns", req.Patterns), zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	resp.Count = len(resp.Keys)
	l.Info("Resolved patterns", zap.String("bucket", bucket), zap.Int("count", resp.Count))
	return c.JSON(resp)
}

// HandleResolveBatch expands independent pattern sets concurrently.
// @Summary Resolve Pattern Sets
// @Description Resolves each pattern set independently. Any failure fails the whole batch.
// @Tags resolve
// @Accept json
// @Produce json
// @Param request body resolve.BatchRequest true "Pattern sets to resolve"
// @Success 200 {object} resolve.BatchResponse "Resolved keys per set"
// @Failure 400 {object} map[string]string "Malformed Pattern"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Security ApiKeyAuth
// @Router /resolve/batch [post]
func (h *Handler) HandleResolveBatch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req BatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if len(req.Sets) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "sets are required"})
	}

	bucket := h.service.Bucket(req.Bucket)
	results, err := h.service.ResolveBatch(c.Context(), bucket, req.Sets)
	if err != nil {
		l.Error("Batch resolve failed", zap.Int("sets", len(req.Sets)), zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(BatchResponse{Bucket: bucket, Results: results})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrMalformedPattern), errors.Is(err, ErrMissingBucket):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrManifestsDisabled):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, storage.ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
