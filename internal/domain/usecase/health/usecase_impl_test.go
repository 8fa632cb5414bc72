package health

import (
	"testing"

	"weather-api/internal/domain/model"
)

type fakeHealthGateway struct {
	status model.HealthStatus
}

func (f *fakeHealthGateway) Health() model.ComponentHealthStatus {
	return model.ComponentHealthStatus{Status: f.status}
}

// TestCheckHealth verifies the overall status is UP only when every component is UP.
func TestCheckHealth(t *testing.T) {
	tests := []struct {
		name  string
		db    model.HealthStatus
		cache model.HealthStatus
		queue model.HealthStatus
		want  model.HealthStatus
	}{
		{name: "all up", db: model.StatusUp, cache: model.StatusUp, queue: model.StatusUp, want: model.StatusUp},
		{name: "db down", db: model.StatusDown, cache: model.StatusUp, queue: model.StatusUp, want: model.StatusDown},
		{name: "cache down", db: model.StatusUp, cache: model.StatusDown, queue: model.StatusUp, want: model.StatusDown},
		{name: "queue down", db: model.StatusUp, cache: model.StatusUp, queue: model.StatusDown, want: model.StatusDown},
		{name: "all down", db: model.StatusDown, cache: model.StatusDown, queue: model.StatusDown, want: model.StatusDown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			uc := NewHealthUseCase(
				&fakeHealthGateway{status: tc.db},
				&fakeHealthGateway{status: tc.cache},
				&fakeHealthGateway{status: tc.queue},
			)

			got := uc.CheckHealth()
			if got.Status != tc.want {
				t.Fatalf("CheckHealth().Status = %q, want %q", got.Status, tc.want)
			}
			if got.Database.Status != tc.db || got.Cache.Status != tc.cache || got.Queue.Status != tc.queue {
				t.Errorf("component statuses = %q/%q/%q, want %q/%q/%q",
					got.Database.Status, got.Cache.Status, got.Queue.Status, tc.db, tc.cache, tc.queue)
			}
		})
	}
}
