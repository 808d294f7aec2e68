package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppendObservation(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	t.Run("empty description gets banner only", func(t *testing.T) {
		got := appendObservation("", "patient slept well", now)
		assert.Equal(t, "--- 2025-03-10T14:30:00 ---\npatient slept well", got)
	})

	t.Run("whitespace-only description treated as empty", func(t *testing.T) {
		got := appendObservation("   \n", "first note", now)
		assert.Equal(t, "--- 2025-03-10T14:30:00 ---\nfirst note", got)
	})

	t.Run("existing description is preserved verbatim", func(t *testing.T) {
		existing := "Routine checkup"
		got := appendObservation(existing, "blood pressure normal", now)
		assert.Equal(t, "Routine checkup\n\n--- 2025-03-10T14:30:00 ---\nblood pressure normal", got)
	})

	t.Run("entries accumulate", func(t *testing.T) {
		first := appendObservation("", "note one", now)
		later := now.Add(2 * time.Hour)
		second := appendObservation(first, "note two", later)
		assert.Contains(t, second, "note one")
		assert.Contains(t, second, "--- 2025-03-10T16:30:00 ---\nnote two")
	})
}
