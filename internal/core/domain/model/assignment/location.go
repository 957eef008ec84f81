package assignment

import (
	"fmt"
	"time"

	"restoonline/internal/core/domain/model/kernel"
	"restoonline/internal/pkg/errs"
)

// LocationUpdate is one point of the delivery person's position stream
// during a delivery. Updates are append-only and immutable; they never
// interact with the assignment status state machine.
type LocationUpdate struct {
	id           kernel.UUID
	assignmentID kernel.UUID
	latitude     float64
	longitude    float64
	accuracy     *float64
	recordedAt   time.Time
}

// NewLocationUpdate creates a location update recorded now. accuracy is the
// reported precision in meters and may be nil.
func NewLocationUpdate(
	id kernel.UUID,
	assignmentID kernel.UUID,
	latitude float64,
	longitude float64,
	accuracy *float64,
) (LocationUpdate, error) {
	return RestoreLocationUpdate(id, assignmentID, latitude, longitude, accuracy, time.Now().UTC())
}

// RestoreLocationUpdate reconstructs a location update from persistence.
func RestoreLocationUpdate(
	id kernel.UUID,
	assignmentID kernel.UUID,
	latitude float64,
	longitude float64,
	accuracy *float64,
	recordedAt time.Time,
) (LocationUpdate, error) {
	if err := id.Validate(); err != nil {
		return LocationUpdate{}, err
	}
	if err := assignmentID.Validate(); err != nil {
		return LocationUpdate{}, err
	}
	if latitude < -90 || latitude > 90 {
		return LocationUpdate{}, errs.NewValueIsInvalidErrorWithCause("latitude",
			fmt.Errorf("%f is outside [-90, 90]", latitude))
	}
	if longitude < -180 || longitude > 180 {
		return LocationUpdate{}, errs.NewValueIsInvalidErrorWithCause("longitude",
			fmt.Errorf("%f is outside [-180, 180]", longitude))
	}
	if accuracy != nil && *accuracy < 0 {
		return LocationUpdate{}, errs.NewValueIsInvalidErrorWithCause("accuracy",
			fmt.Errorf("%f is negative", *accuracy))
	}

	return LocationUpdate{
		id:           id,
		assignmentID: assignmentID,
		latitude:     latitude,
		longitude:    longitude,
		accuracy:     accuracy,
		recordedAt:   recordedAt,
	}, nil
}

func (l LocationUpdate) ID() kernel.UUID           { return l.id }
func (l LocationUpdate) AssignmentID() kernel.UUID { return l.assignmentID }
func (l LocationUpdate) Latitude() float64         { return l.latitude }
func (l LocationUpdate) Longitude() float64        { return l.longitude }
func (l LocationUpdate) Accuracy() *float64        { return l.accuracy }
func (l LocationUpdate) RecordedAt() time.Time     { return l.recordedAt }
