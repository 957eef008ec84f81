package http

import (
	"net/http"

	"restoonline/internal/core/application/usecases/commands"
	"restoonline/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// DeliveryRatingRequest is the body of POST /api/v1/ratings/delivery.
type DeliveryRatingRequest struct {
	OrderID  string `json:"order_id"`
	DeviceID string `json:"device_id"`
	Score    int    `json:"score"`
	Comment  string `json:"comment"`
}

// PostDeliveryRating handles POST /api/v1/ratings/delivery.
func (s *Server) PostDeliveryRating(ctx echo.Context) error {
	var request DeliveryRatingRequest
	if err := bindRequest(ctx, &request); err != nil {
		return respondError(ctx, err)
	}

	orderID, err := bodyUUID("order_id", request.OrderID)
	if err != nil {
		return respondError(ctx, err)
	}
	deviceID, err := bodyUUID("device_id", request.DeviceID)
	if err != nil {
		return respondError(ctx, err)
	}

	ratingID := kernel.NewUUID()
	cmd, err := commands.NewSubmitDeliveryRatingCommand(ratingID, orderID, deviceID,
		request.Score, request.Comment)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.SubmitDeliveryRating.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{
		"rating_id": ratingID.String(),
	})
}

// MenuItemRatingRequest is the body of POST /api/v1/ratings/menu-items.
type MenuItemRatingRequest struct {
	MenuItemID  string `json:"menu_item_id"`
	OrderItemID string `json:"order_item_id"`
	DeviceID    string `json:"device_id"`
	Score       int    `json:"score"`
	Comment     string `json:"comment"`
}

// PostMenuItemRating handles POST /api/v1/ratings/menu-items.
func (s *Server) PostMenuItemRating(ctx echo.Context) error {
	var request MenuItemRatingRequest
	if err := bindRequest(ctx, &request); err != nil {
		return respondError(ctx, err)
	}

	menuItemID, err := bodyUUID("menu_item_id", request.MenuItemID)
	if err != nil {
		return respondError(ctx, err)
	}
	orderItemID, err := bodyUUID("order_item_id", request.OrderItemID)
	if err != nil {
		return respondError(ctx, err)
	}
	deviceID, err := bodyUUID("device_id", request.DeviceID)
	if err != nil {
		return respondError(ctx, err)
	}

	ratingID := kernel.NewUUID()
	cmd, err := commands.NewSubmitMenuItemRatingCommand(ratingID, menuItemID, orderItemID,
		deviceID, request.Score, request.Comment)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.SubmitMenuItemRating.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{
		"rating_id": ratingID.String(),
	})
}
