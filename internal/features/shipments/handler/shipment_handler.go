package handler

import (
	"errors"
	"net/http"

	"fulfillment-service/internal/core/logger"
	"fulfillment-service/internal/features/shipments/domain"
	"fulfillment-service/internal/features/shipments/ports"
	"fulfillment-service/internal/features/shipments/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// businessIDHeader identifies the calling business on scoped routes.
const businessIDHeader = "X-Business-ID"

// ShipmentHandler handles HTTP requests for shipment operations.
type ShipmentHandler struct {
	service ports.ShipmentService
}

// NewShipmentHandler creates a new ShipmentHandler.
func NewShipmentHandler(s ports.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{
		service: s,
	}
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}

// CreateShipmentRequest is the body for creating a shipment.
type CreateShipmentRequest struct {
	OrderID         string `json:"order_id"`
	ProductID       string `json:"product_id"`
	BuyerBusinessID string `json:"buyer_business_id"`
	BuyerName       string `json:"buyer_name"`
	BuyerEmail      string `json:"buyer_email"`
	BuyerAddress    string `json:"buyer_address"`
	Carrier         string `json:"carrier"`
	TrackingNumber  string `json:"tracking_number"`
	Quantity        int    `json:"quantity"`
	Status          string `json:"status"`
}

// UpdateStatusRequest is the body for a status transition.
type UpdateStatusRequest struct {
	Status         string `json:"status"`
	Note           string `json:"note"`
	Carrier        string `json:"carrier"`
	TrackingNumber string `json:"tracking_number"`
}

// RegisterRoutes mounts the shipment routes on the app.
func (h *ShipmentHandler) RegisterRoutes(app *fiber.App) {
	shipments := app.Group("/shipments")
	shipments.Post("/", h.CreateShipment)
	shipments.Get("/", h.ListShipments)
	shipments.Get("/product/:productId", h.ListShipmentsByProduct)
	shipments.Patch("/:id/status", h.UpdateShipmentStatus)
	shipments.Post("/:id/refresh", h.RefreshShipmentTracking)
	shipments.Delete("/:id", h.DeleteShipment)

	// Public lookup, no business scoping.
	app.Get("/track/:needle", h.TrackShipment)
}

// CreateShipment godoc
// @Summary Create a shipment
// @Description Creates a shipment for an order line and mirrors it onto the order
// @Tags shipments
// @Accept json
// @Produce json
// @Param X-Business-ID header string true "Calling business ID"
// @Param request body CreateShipmentRequest true "Shipment fields"
// @Success 201 {object} domain.Shipment
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /shipments [post]
func (h *ShipmentHandler) CreateShipment(c *fiber.Ctx) error {
	rayID := rayID(c)

	businessID := c.Get(businessIDHeader)
	if businessID == "" {
		return unauthorized(c, rayID)
	}

	var req CreateShipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID,
		})
	}

	shipment, err := h.service.Create(c.Context(), domain.CreateShipmentParams{
		BusinessID:      businessID,
		BuyerBusinessID: req.BuyerBusinessID,
		OrderID:         req.OrderID,
		ProductID:       req.ProductID,
		BuyerName:       req.BuyerName,
		BuyerEmail:      req.BuyerEmail,
		BuyerAddress:    req.BuyerAddress,
		Carrier:         req.Carrier,
		TrackingNumber:  req.TrackingNumber,
		Quantity:        req.Quantity,
		InitialStatus:   req.Status,
	})
	if err != nil {
		return h.fail(c, rayID, "Failed to create shipment", err)
	}

	return c.Status(http.StatusCreated).JSON(shipment)
}

// ListShipments godoc
// @Summary List the caller's shipments
// @Description Returns all shipments owned by the calling business, newest first
// @Tags shipments
// @Produce json
// @Param X-Business-ID header string true "Calling business ID"
// @Success 200 {array} domain.Shipment
// @Failure 401 {object} ErrorResponse
// @Router /shipments [get]
func (h *ShipmentHandler) ListShipments(c *fiber.Ctx) error {
	rayID := rayID(c)

	businessID := c.Get(businessIDHeader)
	if businessID == "" {
		return unauthorized(c, rayID)
	}

	shipments, err := h.service.ListByBusiness(c.Context(), businessID)
	if err != nil {
		return h.fail(c, rayID, "Failed to list shipments", err)
	}

	return c.JSON(shipments)
}

// ListShipmentsByProduct godoc
// @Summary List the caller's shipments for a product
// @Tags shipments
// @Produce json
// @Param X-Business-ID header string true "Calling business ID"
// @Param productId path string true "Product ID"
// @Success 200 {array} domain.Shipment
// @Failure 401 {object} ErrorResponse
// @Router /shipments/product/{productId} [get]
func (h *ShipmentHandler) ListShipmentsByProduct(c *fiber.Ctx) error {
	rayID := rayID(c)

	businessID := c.Get(businessIDHeader)
	if businessID == "" {
		return unauthorized(c, rayID)
	}

	shipments, err := h.service.ListByProduct(c.Context(), businessID, c.Params("productId"))
	if err != nil {
		return h.fail(c, rayID, "Failed to list shipments", err)
	}

	return c.JSON(shipments)
}

// UpdateShipmentStatus godoc
// @Summary Update a shipment's status
// @Description Applies a lifecycle transition, refreshes live tracking and mirrors the change onto the order
// @Tags shipments
// @Accept json
// @Produce json
// @Param X-Business-ID header string true "Calling business ID"
// @Param id path string true "Shipment ID"
// @Param request body UpdateStatusRequest true "Status change"
// @Success 200 {object} domain.Shipment
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /shipments/{id}/status [patch]
func (h *ShipmentHandler) UpdateShipmentStatus(c *fiber.Ctx) error {
	rayID := rayID(c)

	businessID := c.Get(businessIDHeader)
	if businessID == "" {
		return unauthorized(c, rayID)
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID,
		})
	}

	shipment, err := h.service.UpdateStatus(c.Context(), businessID, c.Params("id"), ports.UpdateStatusParams{
		Status:         req.Status,
		Note:           req.Note,
		Carrier:        req.Carrier,
		TrackingNumber: req.TrackingNumber,
	})
	if err != nil {
		return h.fail(c, rayID, "Failed to update shipment status", err)
	}

	return c.JSON(shipment)
}

// RefreshShipmentTracking godoc
// @Summary Refresh a shipment's live tracking
// @Description Re-runs the carrier lookup and returns the shipment with its refreshed live view
// @Tags shipments
// @Produce json
// @Param X-Business-ID header string true "Calling business ID"
// @Param id path string true "Shipment ID"
// @Success 200 {object} domain.Shipment
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /shipments/{id}/refresh [post]
func (h *ShipmentHandler) RefreshShipmentTracking(c *fiber.Ctx) error {
	rayID := rayID(c)

	businessID := c.Get(businessIDHeader)
	if businessID == "" {
		return unauthorized(c, rayID)
	}

	shipment, err := h.service.RefreshLiveTracking(c.Context(), businessID, c.Params("id"))
	if err != nil {
		return h.fail(c, rayID, "Failed to refresh tracking", err)
	}

	return c.JSON(shipment)
}

// DeleteShipment godoc
// @Summary Delete a shipment
// @Description Hard-deletes a shipment. Inventory adjustments already applied are not reversed.
// @Tags shipments
// @Produce json
// @Param X-Business-ID header string true "Calling business ID"
// @Param id path string true "Shipment ID"
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /shipments/{id} [delete]
func (h *ShipmentHandler) DeleteShipment(c *fiber.Ctx) error {
	rayID := rayID(c)

	businessID := c.Get(businessIDHeader)
	if businessID == "" {
		return unauthorized(c, rayID)
	}

	if err := h.service.Delete(c.Context(), businessID, c.Params("id")); err != nil {
		return h.fail(c, rayID, "Failed to delete shipment", err)
	}

	return c.SendStatus(http.StatusNoContent)
}

// TrackShipment godoc
// @Summary Track a shipment by order reference or tracking number
// @Description Public lookup that matches the given value against order references and tracking numbers
// @Tags tracking
// @Produce json
// @Param needle path string true "Order reference or tracking number"
// @Success 200 {object} domain.Shipment
// @Failure 404 {object} ErrorResponse
// @Router /track/{needle} [get]
func (h *ShipmentHandler) TrackShipment(c *fiber.Ctx) error {
	rayID := rayID(c)

	shipment, err := h.service.FindByOrderOrTracking(c.Context(), c.Params("needle"))
	if err != nil {
		return h.fail(c, rayID, "Failed to track shipment", err)
	}

	return c.JSON(shipment)
}

// fail maps service errors onto HTTP responses and logs the failure.
func (h *ShipmentHandler) fail(c *fiber.Ctx, rayID, logMsg string, err error) error {
	logger.Get().Error(logMsg,
		zap.String("ray_id", rayID),
		zap.Error(err),
	)

	status := http.StatusInternalServerError
	msg := "Internal Server Error"

	if errors.Is(err, service.ErrShipmentNotFound) {
		status = http.StatusNotFound
		msg = "Shipment not found"
	} else if errors.Is(err, service.ErrForbidden) {
		status = http.StatusForbidden
		msg = "Shipment belongs to another business"
	}

	return c.Status(status).JSON(ErrorResponse{
		Message: msg,
		RayID:   rayID,
	})
}

func unauthorized(c *fiber.Ctx, rayID string) error {
	return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{
		Message: "X-Business-ID header is required",
		RayID:   rayID,
	})
}

func rayID(c *fiber.Ctx) string {
	id, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return id
}
