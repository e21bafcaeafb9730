package service

import (
	"context"
	"fmt"

	"github.com/beka-birhanu/mindful-maze/crisis"
	"github.com/beka-birhanu/mindful-maze/service/i"
	"github.com/google/uuid"
)

// CrisisService checks messages for crisis phrases and records alerts.
// Delivering an alert to a contact is left to whoever reads the AlertRepo.
type CrisisService struct {
	detector *crisis.Detector
	alerts   i.AlertRepo
	logger   i.Logger
}

func NewCrisisService(d *crisis.Detector, alerts i.AlertRepo, logger i.Logger) (*CrisisService, error) {
	if alerts == nil {
		return nil, fmt.Errorf("%w: alert repo", ErrMissingDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", ErrMissingDependency)
	}
	if d == nil {
		d = crisis.NewDetector()
	}
	return &CrisisService{detector: d, alerts: alerts, logger: logger}, nil
}

// Check reports whether text signals a crisis and which phrases matched.
func (c *CrisisService) Check(text string) (bool, []string) {
	matches := c.detector.Matches(text)
	return len(matches) > 0, matches
}

func (c *CrisisService) RaiseAlert(ctx context.Context, playerID uuid.UUID, username string, lat, lng float64) (crisis.Alert, error) {
	alert := crisis.ComposeAlert(playerID, username, lat, lng)
	if err := c.alerts.Save(ctx, alert); err != nil {
		c.logger.Error(fmt.Sprintf("saving alert for player %s: %v", playerID, err))
		return crisis.Alert{}, err
	}

	c.logger.Warning(fmt.Sprintf("crisis alert %s raised for player %s", alert.ID, playerID))
	return alert, nil
}

func (c *CrisisService) Alerts(ctx context.Context, playerID uuid.UUID, limit int) ([]crisis.Alert, error) {
	return c.alerts.ByPlayer(ctx, playerID, clampLimit(limit))
}
