package notification

import (
	"context"
	"log"
	"time"

	"go.uber.org/fx"
)

// NotificationScheduler periodically checks for and sends due reminders.
type NotificationScheduler struct {
	service *NotificationService
}

func NewNotificationScheduler(service *NotificationService) *NotificationScheduler {
	return &NotificationScheduler{service: service}
}

// StartScheduler runs the background delivery loop for the app's lifetime.
func (s *NotificationScheduler) StartScheduler(lc fx.Lifecycle) {
	interval := time.Minute
	ticker := time.NewTicker(interval)
	done := make(chan bool)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Printf("Starting notification scheduler (checking every %s)...", interval)
			go func() {
				schedulerCtx := context.Background()
				for {
					select {
					case <-ticker.C:
						s.service.SendDueNotifications(schedulerCtx)
					case <-done:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping notification scheduler...")
			ticker.Stop()
			done <- true
			return nil
		},
	})
}
