package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seniorcare/admin-api/internal/model"
	apperrors "github.com/seniorcare/admin-api/pkg/errors"
)

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    model.AppointmentStatus
		to      model.AppointmentStatus
		wantErr bool
	}{
		{"scheduled to in_progress", model.AppointmentStatusScheduled, model.AppointmentStatusInProgress, false},
		{"in_progress to completed", model.AppointmentStatusInProgress, model.AppointmentStatusCompleted, false},
		{"scheduled to cancelled", model.AppointmentStatusScheduled, model.AppointmentStatusCancelled, false},
		{"in_progress to cancelled", model.AppointmentStatusInProgress, model.AppointmentStatusCancelled, false},
		{"scheduled skips to completed", model.AppointmentStatusScheduled, model.AppointmentStatusCompleted, true},
		{"completed cannot move", model.AppointmentStatusCompleted, model.AppointmentStatusInProgress, true},
		{"cancelled cannot move", model.AppointmentStatusCancelled, model.AppointmentStatusScheduled, true},
		{"in_progress cannot go back", model.AppointmentStatusInProgress, model.AppointmentStatusScheduled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransition(tt.from, tt.to)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, apperrors.IsInvalidState(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTransitionSelfNoOp(t *testing.T) {
	for _, status := range []model.AppointmentStatus{
		model.AppointmentStatusScheduled,
		model.AppointmentStatusInProgress,
		model.AppointmentStatusCompleted,
		model.AppointmentStatusCancelled,
	} {
		assert.NoError(t, ValidateTransition(status, status), "self transition for %s", status)
	}
}

func TestValidateTransitionTerminalMessage(t *testing.T) {
	err := ValidateTransition(model.AppointmentStatusCompleted, model.AppointmentStatusCancelled)
	assert.ErrorContains(t, err, "cannot change the status of a completed appointment")
}
