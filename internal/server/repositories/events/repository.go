// Package events implements the calendar-event repository.
package events

import (
	"context"

	"github.com/mkorobovs/sitekeeper/internal/server/models"
)

type Repository interface {
	// Create inserts the event as given; day-window normalization for
	// all-day and recurring events happens in the service layer before the
	// row gets here.
	Create(ctx context.Context, event *models.Event) (bool, error)

	// Delete removes the event only when ownerUID matches the stored owner.
	Delete(ctx context.Context, id int64, ownerUID string) (bool, error)

	// List returns up to limit events.
	List(ctx context.Context, limit int) ([]*models.Event, error)
}
