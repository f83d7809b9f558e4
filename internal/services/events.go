package services

import (
	"log"
	"time"

	"moviedb/internal/models"
)

// EventPublisher delivers catalog change events to the message broker.
type EventPublisher interface {
	PublishEvent(event models.Event) error
}

// publishEvent sends event when a publisher is configured. Publishing is
// best effort: the change is already committed, so failures are only logged.
func publishEvent(p EventPublisher, event models.Event) {
	if p == nil {
		return
	}
	event.OccurredAt = time.Now().UTC()
	if err := p.PublishEvent(event); err != nil {
		log.Printf("Warning: Failed to publish %s event for movie %s: %v", event.Type, event.MovieID, err)
	}
}
