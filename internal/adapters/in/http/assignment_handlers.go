package http

import (
	"net/http"
	"strconv"

	"restoonline/internal/core/application/usecases/commands"
	"restoonline/internal/core/application/usecases/queries"
	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateAssignmentRequest is the body of POST /api/v1/assignments.
type CreateAssignmentRequest struct {
	OrderID          string `json:"order_id"`
	DeliveryPersonID string `json:"delivery_person_id"`
	ManagerID        string `json:"manager_id"`
	Notes            string `json:"notes"`
}

// courierActionRequest carries the acting delivery person for assignment
// transitions.
type courierActionRequest struct {
	DeliveryPersonID string `json:"delivery_person_id"`
	Reason           string `json:"reason"`
}

// PostAssignment handles POST /api/v1/assignments.
func (s *Server) PostAssignment(ctx echo.Context) error {
	var request CreateAssignmentRequest
	if err := bindRequest(ctx, &request); err != nil {
		return respondError(ctx, err)
	}

	orderID, err := bodyUUID("order_id", request.OrderID)
	if err != nil {
		return respondError(ctx, err)
	}
	deliveryPersonID, err := bodyUUID("delivery_person_id", request.DeliveryPersonID)
	if err != nil {
		return respondError(ctx, err)
	}
	managerID, err := bodyUUID("manager_id", request.ManagerID)
	if err != nil {
		return respondError(ctx, err)
	}

	assignmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateAssignmentCommand(
		assignmentID, orderID, deliveryPersonID, managerID, request.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.CreateAssignment.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{
		"assignment_id": assignmentID.String(),
	})
}

// PostAssignmentAccept handles POST /api/v1/assignments/:assignmentID/accept.
func (s *Server) PostAssignmentAccept(ctx echo.Context) error {
	return s.assignmentAction(ctx, func(assignmentID, deliveryPersonID kernel.UUID, _ string) error {
		cmd, err := commands.NewAcceptAssignmentCommand(assignmentID, deliveryPersonID)
		if err != nil {
			return err
		}
		return s.handlers.AcceptAssignment.Handle(ctx.Request().Context(), cmd)
	})
}

// PostAssignmentRefuse handles POST /api/v1/assignments/:assignmentID/refuse.
func (s *Server) PostAssignmentRefuse(ctx echo.Context) error {
	return s.assignmentAction(ctx, func(assignmentID, deliveryPersonID kernel.UUID, reason string) error {
		cmd, err := commands.NewRefuseAssignmentCommand(assignmentID, deliveryPersonID, reason)
		if err != nil {
			return err
		}
		return s.handlers.RefuseAssignment.Handle(ctx.Request().Context(), cmd)
	})
}

// PostAssignmentPickup handles POST /api/v1/assignments/:assignmentID/pickup.
func (s *Server) PostAssignmentPickup(ctx echo.Context) error {
	return s.assignmentAction(ctx, func(assignmentID, deliveryPersonID kernel.UUID, _ string) error {
		cmd, err := commands.NewPickupAssignmentCommand(assignmentID, deliveryPersonID)
		if err != nil {
			return err
		}
		return s.handlers.PickupAssignment.Handle(ctx.Request().Context(), cmd)
	})
}

// PostAssignmentComplete handles POST /api/v1/assignments/:assignmentID/complete.
func (s *Server) PostAssignmentComplete(ctx echo.Context) error {
	return s.assignmentAction(ctx, func(assignmentID, deliveryPersonID kernel.UUID, _ string) error {
		cmd, err := commands.NewCompleteAssignmentCommand(assignmentID, deliveryPersonID)
		if err != nil {
			return err
		}
		return s.handlers.CompleteAssignment.Handle(ctx.Request().Context(), cmd)
	})
}

func (s *Server) assignmentAction(
	ctx echo.Context,
	run func(assignmentID, deliveryPersonID kernel.UUID, reason string) error,
) error {
	assignmentID, err := pathUUID(ctx, "assignmentID")
	if err != nil {
		return respondError(ctx, err)
	}

	var request courierActionRequest
	if err = bindRequest(ctx, &request); err != nil {
		return respondError(ctx, err)
	}

	deliveryPersonID, err := bodyUUID("delivery_person_id", request.DeliveryPersonID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = run(assignmentID, deliveryPersonID, request.Reason); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordLocationRequest is the body of POST /api/v1/assignments/:assignmentID/locations.
type RecordLocationRequest struct {
	DeliveryPersonID string   `json:"delivery_person_id"`
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	Accuracy         *float64 `json:"accuracy"`
}

// PostAssignmentLocation handles POST /api/v1/assignments/:assignmentID/locations.
func (s *Server) PostAssignmentLocation(ctx echo.Context) error {
	assignmentID, err := pathUUID(ctx, "assignmentID")
	if err != nil {
		return respondError(ctx, err)
	}

	var request RecordLocationRequest
	if err = bindRequest(ctx, &request); err != nil {
		return respondError(ctx, err)
	}

	deliveryPersonID, err := bodyUUID("delivery_person_id", request.DeliveryPersonID)
	if err != nil {
		return respondError(ctx, err)
	}

	locationID := kernel.NewUUID()
	cmd, err := commands.NewRecordLocationCommand(locationID, assignmentID, deliveryPersonID,
		request.Latitude, request.Longitude, request.Accuracy)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.handlers.RecordLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{
		"location_id": locationID.String(),
	})
}

// defaultLocationLimit applies when GET locations carries no limit parameter.
const defaultLocationLimit = 20

// GetAssignmentLocations handles GET /api/v1/assignments/:assignmentID/locations.
func (s *Server) GetAssignmentLocations(ctx echo.Context) error {
	assignmentID, err := pathUUID(ctx, "assignmentID")
	if err != nil {
		return respondError(ctx, err)
	}

	limit := defaultLocationLimit
	if raw := ctx.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("limit", err))
		}
	}

	query, err := queries.NewGetRecentLocationsQuery(assignmentID, limit)
	if err != nil {
		return respondError(ctx, err)
	}

	views, err := s.handlers.RecentLocations.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]LocationResponse, len(views))
	for i, view := range views {
		response[i] = LocationResponse{
			Latitude:   view.Latitude,
			Longitude:  view.Longitude,
			Accuracy:   view.Accuracy,
			RecordedAt: view.RecordedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
