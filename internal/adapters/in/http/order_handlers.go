package http

import (
	"net/http"
	"time"

	"restoonline/internal/core/application/usecases/commands"
	"restoonline/internal/core/application/usecases/queries"
	"restoonline/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateOrderRequest is the body of POST /api/v1/orders. Amounts are minor
// currency units.
type CreateOrderRequest struct {
	DeviceID    string `json:"device_id"`
	Subtotal    int64  `json:"subtotal"`
	DeliveryFee int64  `json:"delivery_fee"`
	Notes       string `json:"notes"`
}

// OrderResponse is the order read model returned by creation and lookup.
type OrderResponse struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	Subtotal    int64     `json:"subtotal"`
	DeliveryFee int64     `json:"delivery_fee"`
	Total       int64     `json:"total"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// managerActionRequest carries the acting manager for manual transitions.
type managerActionRequest struct {
	ManagerID string `json:"manager_id"`
	Reason    string `json:"reason"`
}

// PostOrder handles POST /api/v1/orders. The order id is generated here; the
// order number inside the handler. The response carries both.
func (s *Server) PostOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := bindRequest(ctx, &request); err != nil {
		return respondError(ctx, err)
	}

	deviceID, err := bodyUUID("device_id", request.DeviceID)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, deviceID,
		request.Subtotal, request.DeliveryFee, request.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return s.respondOrder(ctx, http.StatusCreated, orderID)
}

// GetOrder handles GET /api/v1/orders/:orderID.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	return s.respondOrder(ctx, http.StatusOK, orderID)
}

func (s *Server) respondOrder(ctx echo.Context, code int, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderStatusQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	view, err := s.handlers.OrderStatus.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(code, OrderResponse{
		OrderID:     orderID.String(),
		OrderNumber: view.OrderNumber,
		Status:      view.Status,
		Subtotal:    view.Subtotal,
		DeliveryFee: view.DeliveryFee,
		Total:       view.Total,
		Notes:       view.Notes,
		CreatedAt:   view.CreatedAt,
	})
}

// PostOrderAccept handles POST /api/v1/orders/:orderID/accept.
func (s *Server) PostOrderAccept(ctx echo.Context) error {
	return s.orderAction(ctx, func(orderID, managerID kernel.UUID, _ string) error {
		cmd, err := commands.NewAcceptOrderCommand(orderID, managerID)
		if err != nil {
			return err
		}
		return s.handlers.AcceptOrder.Handle(ctx.Request().Context(), cmd)
	})
}

// PostOrderRefuse handles POST /api/v1/orders/:orderID/refuse.
func (s *Server) PostOrderRefuse(ctx echo.Context) error {
	return s.orderAction(ctx, func(orderID, managerID kernel.UUID, reason string) error {
		cmd, err := commands.NewRefuseOrderCommand(orderID, managerID, reason)
		if err != nil {
			return err
		}
		return s.handlers.RefuseOrder.Handle(ctx.Request().Context(), cmd)
	})
}

// PostOrderPrepare handles POST /api/v1/orders/:orderID/prepare.
func (s *Server) PostOrderPrepare(ctx echo.Context) error {
	return s.orderAction(ctx, func(orderID, managerID kernel.UUID, _ string) error {
		cmd, err := commands.NewStartPreparingCommand(orderID, managerID)
		if err != nil {
			return err
		}
		return s.handlers.StartPreparing.Handle(ctx.Request().Context(), cmd)
	})
}

// PostOrderReady handles POST /api/v1/orders/:orderID/ready.
func (s *Server) PostOrderReady(ctx echo.Context) error {
	return s.orderAction(ctx, func(orderID, managerID kernel.UUID, _ string) error {
		cmd, err := commands.NewMarkReadyCommand(orderID, managerID)
		if err != nil {
			return err
		}
		return s.handlers.MarkReady.Handle(ctx.Request().Context(), cmd)
	})
}

// PostOrderCancel handles POST /api/v1/orders/:orderID/cancel.
func (s *Server) PostOrderCancel(ctx echo.Context) error {
	return s.orderAction(ctx, func(orderID, managerID kernel.UUID, reason string) error {
		cmd, err := commands.NewCancelOrderCommand(orderID, managerID, reason)
		if err != nil {
			return err
		}
		return s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd)
	})
}

// orderAction factors the shared shape of the manual order transitions:
// order id from the path, manager id (and optional reason) from the body,
// 204 on success.
func (s *Server) orderAction(
	ctx echo.Context,
	run func(orderID, managerID kernel.UUID, reason string) error,
) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	var request managerActionRequest
	if err = bindRequest(ctx, &request); err != nil {
		return respondError(ctx, err)
	}

	managerID, err := bodyUUID("manager_id", request.ManagerID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = run(orderID, managerID, request.Reason); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TrackingResponse is the public tracking view of an order.
type TrackingResponse struct {
	OrderID          string            `json:"order_id"`
	OrderNumber      string            `json:"order_number"`
	OrderStatus      string            `json:"order_status"`
	AssignmentStatus string            `json:"assignment_status,omitempty"`
	DeliveryPerson   string            `json:"delivery_person,omitempty"`
	LatestLocation   *LocationResponse `json:"latest_location,omitempty"`
}

// LocationResponse is one location point in tracking and trail views.
type LocationResponse struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Accuracy   *float64  `json:"accuracy,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// GetOrderTracking handles GET /api/v1/tracking/:orderNumber.
func (s *Server) GetOrderTracking(ctx echo.Context) error {
	number, err := kernel.OrderNumberFromString(ctx.Param("orderNumber"))
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderTrackingQuery(number)
	if err != nil {
		return respondError(ctx, err)
	}

	view, err := s.handlers.OrderTracking.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := TrackingResponse{
		OrderID:          view.OrderID.String(),
		OrderNumber:      view.OrderNumber,
		OrderStatus:      view.OrderStatus,
		AssignmentStatus: view.AssignmentStatus,
		DeliveryPerson:   view.DeliveryPerson,
	}
	if view.LatestLocation != nil {
		response.LatestLocation = &LocationResponse{
			Latitude:   view.LatestLocation.Latitude,
			Longitude:  view.LatestLocation.Longitude,
			RecordedAt: view.LatestLocation.RecordedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
