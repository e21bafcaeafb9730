package i

import (
	"context"

	"github.com/beka-birhanu/mindful-maze/crisis"
	"github.com/google/uuid"
)

// CrisisResponder checks messages and records alerts.
type CrisisResponder interface {
	Check(text string) (bool, []string)
	RaiseAlert(ctx context.Context, playerID uuid.UUID, username string, lat, lng float64) (crisis.Alert, error)
	Alerts(ctx context.Context, playerID uuid.UUID, limit int) ([]crisis.Alert, error)
}
