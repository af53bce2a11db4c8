// Package http is the inbound HTTP adapter. It translates the wire
// contract into commands and queries and maps domain outcomes back to
// status codes: expected conditions travel as 200 responses with a
// status token, 404 covers absent shipments, 400 malformed requests.
package http

import (
	"errors"
	"net/http"

	"deliveryoracle/internal/core/application/usecases/commands"
	"deliveryoracle/internal/core/application/usecases/queries"
	"deliveryoracle/internal/core/domain/model/kernel"
	"deliveryoracle/internal/core/domain/model/shipment"
	"deliveryoracle/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	processMilestoneHandler   commands.ProcessMilestoneCommandHandler
	createShipmentHandler     commands.CreateShipmentCommandHandler
	getShipmentHandler        queries.GetShipmentQueryHandler
	getInventoryStatusHandler queries.GetInventoryStatusQueryHandler
}

// NewServer creates a new HTTP server with the required command and
// query handlers.
func NewServer(
	processMilestoneHandler commands.ProcessMilestoneCommandHandler,
	createShipmentHandler commands.CreateShipmentCommandHandler,
	getShipmentHandler queries.GetShipmentQueryHandler,
	getInventoryStatusHandler queries.GetInventoryStatusQueryHandler,
) *Server {
	return &Server{
		processMilestoneHandler:   processMilestoneHandler,
		createShipmentHandler:     createShipmentHandler,
		getShipmentHandler:        getShipmentHandler,
		getInventoryStatusHandler: getInventoryStatusHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.POST("/api/v1/shipments", s.CreateShipment)
	e.GET("/api/v1/shipments/:shipmentId", s.GetShipment)
	e.POST("/api/v1/shipments/:shipmentId/milestones", s.ProcessMilestone)
	e.GET("/api/v1/inventory/:owner/:sku", s.GetInventoryStatus)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var request createShipmentRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	shipmentID := kernel.NewUUID()
	if request.ShipmentID != "" {
		parsed, err := kernel.UUIDFromString(request.ShipmentID)
		if err != nil {
			return badRequest(ctx, "Invalid shipment_id")
		}
		shipmentID = parsed
	}

	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order_id")
	}

	supplier, err := kernel.NewWallet(request.SupplierWallet)
	if err != nil {
		return badRequest(ctx, "Invalid supplier_wallet")
	}

	buyer, err := kernel.NewWallet(request.BuyerWallet)
	if err != nil {
		return badRequest(ctx, "Invalid buyer_wallet")
	}

	pickup, err := optionalPoint(request.PickupLat, request.PickupLon)
	if err != nil {
		return badRequest(ctx, "Invalid pickup coordinates")
	}

	drop, err := optionalPoint(request.DropLat, request.DropLon)
	if err != nil {
		return badRequest(ctx, "Invalid drop coordinates")
	}

	cmd, err := commands.NewCreateShipmentCommand(
		shipmentID, orderID, request.ShipmentNo,
		supplier, buyer, pickup, drop,
		request.DueBy, request.Metadata,
	)
	if err != nil {
		return badRequest(ctx, "Invalid shipment data: "+err.Error())
	}

	if err = s.createShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return ctx.JSON(http.StatusConflict, errorResponse{
			Code:    http.StatusConflict,
			Message: "Failed to create shipment",
		})
	}

	return ctx.JSON(http.StatusCreated, createShipmentResponse{
		ShipmentID: shipmentID.String(),
	})
}

// ProcessMilestone handles POST /api/v1/shipments/:shipmentId/milestones.
func (s *Server) ProcessMilestone(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	var request milestoneRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order_id")
	}

	milestone, err := shipment.MilestoneFromString(request.Milestone)
	if err != nil {
		return badRequest(ctx, "Invalid milestone")
	}

	courier, err := kernel.NewWallet(request.CourierWallet)
	if err != nil {
		return badRequest(ctx, "Invalid courier_wallet")
	}

	reported, err := optionalPoint(request.Latitude, request.Longitude)
	if err != nil {
		return badRequest(ctx, "Invalid reported coordinates")
	}

	cmd, err := commands.NewProcessMilestoneCommand(
		shipmentID, request.ShipmentNo, orderID,
		milestone, courier, reported, request.RadiusM,
		commands.AttestationFields{
			ShipmentHash:      request.ShipmentHash,
			LocationHash:      request.LocationHash,
			CourierSignature:  request.CourierSignature,
			SupplierSignature: request.SupplierSignature,
			BuyerSignature:    request.BuyerSignature,
			ClaimedTS:         request.ClaimedTS,
			DistanceMeters:    request.DistanceMeters,
			ChainOrderID:      request.ChainOrderID,
		},
	)
	if err != nil {
		return badRequest(ctx, "Invalid milestone data: "+err.Error())
	}

	result, err := s.processMilestoneHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Milestone processing failed",
		})
	}

	response := milestoneResponse{
		Status:         string(result.Status),
		EscrowTx:       result.EscrowTx,
		Distance:       result.Distance,
		Radius:         result.Radius,
		ShipmentStatus: result.ShipmentStatus,
		OrderStatus:    result.OrderStatus,
	}

	if result.Status == commands.MilestoneStatusShipmentNotFound {
		return ctx.JSON(http.StatusNotFound, response)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetShipment handles GET /api/v1/shipments/:shipmentId.
func (s *Server) GetShipment(ctx echo.Context) error {
	shipmentID, err := kernel.UUIDFromString(ctx.Param("shipmentId"))
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	query, err := queries.NewGetShipmentQuery(shipmentID)
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	view, err := s.getShipmentHandler.Handle(ctx.Request().Context(), query)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: "Shipment not found",
		})
	}
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve shipment",
		})
	}

	return ctx.JSON(http.StatusOK, shipmentResponse{
		ShipmentID:    view.ID.String(),
		OrderID:       view.OrderID.String(),
		ShipmentNo:    view.ShipmentNo,
		Status:        view.Status,
		CourierWallet: view.CourierWallet,
		DueBy:         view.DueBy,
	})
}

// GetInventoryStatus handles GET /api/v1/inventory/:owner/:sku.
func (s *Server) GetInventoryStatus(ctx echo.Context) error {
	owner, err := kernel.NewWallet(ctx.Param("owner"))
	if err != nil {
		return badRequest(ctx, "Invalid owner wallet")
	}

	query, err := queries.NewGetInventoryStatusQuery(owner, ctx.Param("sku"))
	if err != nil {
		return badRequest(ctx, "Invalid sku")
	}

	status, err := s.getInventoryStatusHandler.Handle(ctx.Request().Context(), query)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: "No stock record for sku",
		})
	}
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve inventory status",
		})
	}

	return ctx.JSON(http.StatusOK, inventoryStatusResponse{
		Owner:       status.Owner,
		SkuID:       status.SkuID,
		Name:        status.Name,
		Unit:        status.Unit,
		OnHand:      status.OnHand,
		Threshold:   status.Threshold,
		Recommended: string(status.Recommended),
		Reason:      status.Reason,
	})
}

// optionalPoint builds a coordinate from an optional lat/lon pair.
// Both absent means no coordinate; a half-set pair is malformed.
func optionalPoint(lat, lon *float64) (*kernel.GeoPoint, error) {
	if lat == nil && lon == nil {
		return nil, nil
	}
	if lat == nil || lon == nil {
		return nil, kernel.ErrGeoPointIsNotConstructed
	}

	point, err := kernel.NewGeoPoint(*lat, *lon)
	if err != nil {
		return nil, err
	}
	return &point, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
