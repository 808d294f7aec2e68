package appointment

import (
	"fmt"

	"github.com/seniorcare/admin-api/internal/model"
	apperrors "github.com/seniorcare/admin-api/pkg/errors"
)

// allowedTransitions is the appointment lifecycle:
// scheduled -> in_progress -> completed, with cancellation possible from any
// non-terminal state. Completed and cancelled are terminal.
var allowedTransitions = map[model.AppointmentStatus][]model.AppointmentStatus{
	model.AppointmentStatusScheduled:  {model.AppointmentStatusInProgress, model.AppointmentStatusCancelled},
	model.AppointmentStatusInProgress: {model.AppointmentStatusCompleted, model.AppointmentStatusCancelled},
	model.AppointmentStatusCompleted:  {},
	model.AppointmentStatusCancelled:  {},
}

// ValidateTransition checks a status change against the lifecycle table.
// Requesting the current status again is a permitted no-op.
func ValidateTransition(from, to model.AppointmentStatus) error {
	if from == to {
		return nil
	}

	if from.Terminal() {
		return apperrors.InvalidState(fmt.Sprintf("cannot change the status of a %s appointment", from))
	}

	for _, allowed := range allowedTransitions[from] {
		if to == allowed {
			return nil
		}
	}

	return apperrors.InvalidState(fmt.Sprintf("invalid status transition from %s to %s", from, to))
}
