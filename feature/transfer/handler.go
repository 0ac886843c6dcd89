package transfer

import (
	"errors"

	"object-resolver/core/logger"
	"object-resolver/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SizeResponse is the result of GET /objects/size.
type SizeResponse struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	Size   int64  `json:"size"`
}

// Handler handles HTTP requests for object transfers.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the transfer routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/objects")
	group.Get("/size", h.HandleObjectSize)
}

// HandleObjectSize returns the size of a stored object.
// @Summary Get Object Size
// @Description Returns the size in bytes of an object in the storage bucket.
// @Tags objects
// @Produce json
// @Param key query string true "Object key"
// @Param bucket query string false "Bucket (defaults to the configured bucket)"
// @Success 200 {object} transfer.SizeResponse "Object size"
// @Failure 400 {object} map[string]string "Missing key"
// @Failure 404 {object} map[string]string "Object Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Security ApiKeyAuth
// @Router /objects/size [get]
func (h *Handler) HandleObjectSize(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	key := c.Query("key")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "key is required"})
	}
	bucket := h.service.Bucket(c.Query("bucket"))

	size, err := h.service.ObjectSize(c.Context(), bucket, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "object not found"})
		}
		l.Error("Object size lookup failed", zap.String("key", key), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(SizeResponse{Bucket: bucket, Key: key, Size: size})
}
