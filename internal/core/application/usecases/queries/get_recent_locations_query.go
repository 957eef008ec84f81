package queries

import (
	"errors"
	"fmt"
	"time"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/pkg/errs"
)

var ErrGetRecentLocationsQueryIsNotConstructed = errors.New(
	"GetRecentLocationsQuery must be created via NewGetRecentLocationsQuery constructor")

// maxRecentLocations caps how many updates a single query may return.
const maxRecentLocations = 100

// GetRecentLocationsQuery retrieves the most recent location updates of an
// assignment, newest first.
type GetRecentLocationsQuery struct {
	assignmentID kernel.UUID
	limit        int

	guard kernel.ConstructorGuard
}

// NewGetRecentLocationsQuery validates and creates the query.
func NewGetRecentLocationsQuery(assignmentID kernel.UUID, limit int) (GetRecentLocationsQuery, error) {
	if err := assignmentID.Validate(); err != nil {
		return GetRecentLocationsQuery{}, err
	}
	if limit <= 0 || limit > maxRecentLocations {
		return GetRecentLocationsQuery{}, errs.NewValueIsInvalidErrorWithCause("limit",
			fmt.Errorf("%d is outside [1, %d]", limit, maxRecentLocations))
	}

	return GetRecentLocationsQuery{
		assignmentID: assignmentID,
		limit:        limit,
		guard:        kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRecentLocationsQuery) Validate() error {
	return q.guard.Validate(ErrGetRecentLocationsQueryIsNotConstructed)
}

func (q GetRecentLocationsQuery) AssignmentID() kernel.UUID { return q.assignmentID }
func (q GetRecentLocationsQuery) Limit() int                { return q.limit }

// GetRecentLocationsQueryResponse is one location update in the read model.
type GetRecentLocationsQueryResponse struct {
	Latitude   float64
	Longitude  float64
	Accuracy   *float64
	RecordedAt time.Time
}
