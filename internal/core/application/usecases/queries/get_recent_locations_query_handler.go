package queries

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// GetRecentLocationsQueryHandler reads an assignment's location trail.
type GetRecentLocationsQueryHandler struct {
	db *gorm.DB
}

// NewGetRecentLocationsQueryHandler creates a handler for location queries.
func NewGetRecentLocationsQueryHandler(db *gorm.DB) GetRecentLocationsQueryHandler {
	return GetRecentLocationsQueryHandler{db: db}
}

// Handle executes the query, newest update first.
func (h GetRecentLocationsQueryHandler) Handle(
	ctx context.Context,
	query GetRecentLocationsQuery,
) ([]GetRecentLocationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			latitude,
			longitude,
			accuracy,
			recorded_at
		FROM location_updates
		WHERE assignment_id = ?
		ORDER BY recorded_at DESC
		LIMIT ?
	`, query.AssignmentID().Bytes(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := make([]GetRecentLocationsQueryResponse, 0)
	for rows.Next() {
		var location GetRecentLocationsQueryResponse
		var accuracy sql.NullFloat64

		if err = rows.Scan(&location.Latitude, &location.Longitude,
			&accuracy, &location.RecordedAt); err != nil {
			return nil, err
		}
		if accuracy.Valid {
			location.Accuracy = &accuracy.Float64
		}
		locations = append(locations, location)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return locations, nil
}
