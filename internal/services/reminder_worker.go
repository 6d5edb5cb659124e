package services

import (
	"context"
	"log"
	"time"

	"teamboard-be/internal/models"
)

type dueCardLister interface {
	ListDueBefore(ctx context.Context, t time.Time) ([]models.Card, error)
}

// StartReminderWorker starts a background goroutine that periodically scans
// for cards whose due date has passed and pushes a card.due event to the
// card's board. Each card is announced once per process lifetime. The worker
// stops when ctx is done.
func StartReminderWorker(ctx context.Context, interval time.Duration, cards dueCardLister, hub *Hub) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		notified := map[string]bool{}
		for {
			select {
			case <-ctx.Done():
				log.Println("reminder worker: shutting down")
				return
			case <-ticker.C:
				due, err := cards.ListDueBefore(ctx, time.Now())
				if err != nil {
					log.Println("reminder worker: error listing due cards:", err)
					continue
				}
				for _, card := range due {
					if notified[card.ID] {
						continue
					}
					notified[card.ID] = true
					hub.Broadcast(BoardEvent{
						Type:    EventCardDue,
						BoardID: card.BoardID,
						Data:    card,
					})
				}
			}
		}
	}()
}
