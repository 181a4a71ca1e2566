package services

import (
	"context"
	"strings"
	"time"

	"github.com/mkorobovs/sitekeeper/internal/logging"
	"github.com/mkorobovs/sitekeeper/internal/server/models"
	"github.com/mkorobovs/sitekeeper/internal/server/repositories/repomanager"
)

// EventInput carries a calendar entry as the form handler received it,
// before day-window normalization.
type EventInput struct {
	Title         string
	StartDateTime time.Time
	EndDateTime   time.Time
	RecurringDays []string
	AllDay        bool
	Description   string
	Author        string
	UserUID       string
}

// EventService creates, lists, and deletes calendar events, owning the
// normalization rules for all-day and recurring entries.
type EventService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewEventService(m repomanager.RepositoryManager, logger logging.Logger) *EventService {
	return &EventService{repomanager: m, logger: logger}
}

// encodeRecurring renders a day-of-week set as "[Monday,Wednesday]".
func encodeRecurring(days []string) string {
	return "[" + strings.Join(days, ",") + "]"
}

// atTime keeps t's calendar date and replaces the clock time.
func atTime(t time.Time, hour, min int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, min, 0, 0, t.Location())
}

// normalize applies the day-window rules:
//
//   - recurring + all-day collapses to a 09:00–17:00 working-hours window
//     with the all-day flag cleared, so a recurring row never carries it;
//   - a plain all-day entry is pinned to a 00:30–23:30 window, keeping the
//     flag, so the rendered block spans the visible day.
func normalize(in EventInput) *models.Event {
	event := &models.Event{
		Title:         in.Title,
		StartDateTime: in.StartDateTime,
		EndDateTime:   in.EndDateTime,
		AllDay:        in.AllDay,
		Description:   in.Description,
		Author:        in.Author,
		UserUID:       in.UserUID,
	}

	if len(in.RecurringDays) > 0 {
		event.Recurring = encodeRecurring(in.RecurringDays)
		if in.AllDay {
			event.StartDateTime = atTime(in.StartDateTime, 9, 0)
			event.EndDateTime = atTime(in.EndDateTime, 17, 0)
			event.AllDay = false
		}
		return event
	}

	if in.AllDay {
		event.StartDateTime = atTime(in.StartDateTime, 0, 30)
		event.EndDateTime = atTime(in.EndDateTime, 23, 30)
	}
	return event
}

// Create normalizes and inserts the event.
func (s *EventService) Create(ctx context.Context, in EventInput) (bool, error) {
	ok, err := s.repomanager.Events().Create(ctx, normalize(in))
	if err != nil {
		return false, squash(ctx, s.logger, "create event", err, "title", in.Title)
	}
	return ok, nil
}

// Delete removes the event when ownerUID matches.
func (s *EventService) Delete(ctx context.Context, id int64, ownerUID string) (bool, error) {
	ok, err := s.repomanager.Events().Delete(ctx, id, ownerUID)
	if err != nil {
		return false, squash(ctx, s.logger, "delete event", err, "id", id)
	}
	return ok, nil
}

// List returns up to limit events.
func (s *EventService) List(ctx context.Context, limit int) ([]*models.Event, error) {
	list, err := s.repomanager.Events().List(ctx, limit)
	if err != nil {
		return nil, squash(ctx, s.logger, "list events", err, "limit", limit)
	}
	return list, nil
}
