package queries

import (
	"context"
	"database/sql"
	"errors"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderTrackingQueryHandler reads the tracking view straight from the
// database, joining the order with its active assignment and the most
// recent location update.
type GetOrderTrackingQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderTrackingQueryHandler creates a handler for tracking queries.
func NewGetOrderTrackingQueryHandler(db *gorm.DB) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{db: db}
}

// Handle executes the tracking query.
func (h GetOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackingQuery,
) (GetOrderTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.number,
			o.status,
			a.status,
			dp.name,
			l.latitude,
			l.longitude,
			l.recorded_at
		FROM orders o
		LEFT JOIN delivery_assignments a
			ON a.order_id = o.id AND a.status <> 'refused'
		LEFT JOIN delivery_persons dp
			ON dp.id = a.delivery_person_id
		LEFT JOIN LATERAL (
			SELECT latitude, longitude, recorded_at
			FROM location_updates
			WHERE assignment_id = a.id
			ORDER BY recorded_at DESC
			LIMIT 1
		) l ON true
		WHERE o.number = ?
	`, query.OrderNumber().String()).Row()

	var (
		id               uuid.UUID
		number           string
		orderStatus      string
		assignmentStatus sql.NullString
		deliveryPerson   sql.NullString
		latitude         sql.NullFloat64
		longitude        sql.NullFloat64
		recordedAt       sql.NullTime
	)
	err := row.Scan(&id, &number, &orderStatus, &assignmentStatus,
		&deliveryPerson, &latitude, &longitude, &recordedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderTrackingQueryResponse{},
			errs.NewObjectNotFoundError("order", query.OrderNumber().String())
	}
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	response := GetOrderTrackingQueryResponse{
		OrderID:          orderID,
		OrderNumber:      number,
		OrderStatus:      orderStatus,
		AssignmentStatus: assignmentStatus.String,
		DeliveryPerson:   deliveryPerson.String,
	}
	if latitude.Valid && longitude.Valid {
		response.LatestLocation = &TrackingLocation{
			Latitude:   latitude.Float64,
			Longitude:  longitude.Float64,
			RecordedAt: recordedAt.Time.UTC(),
		}
	}

	return response, nil
}
