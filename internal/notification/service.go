package notification

import (
	"context"
	"log"
	"os"
	"time"

	"ThesisTrack/internal/auth"
	"ThesisTrack/internal/config"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationService schedules reminders and fans them out by email to the
// targeted roles and groups.
type NotificationService struct {
	repo         *NotificationRepository
	emailService *config.EmailService
	userRepo     *auth.UserRepository
}

func NewNotificationService(repo *NotificationRepository, emailService *config.EmailService, userRepo *auth.UserRepository) *NotificationService {
	return &NotificationService{repo: repo, emailService: emailService, userRepo: userRepo}
}

func (s *NotificationService) ScheduleNotification(ctx context.Context, n *Notification) error {
	n.Status = "scheduled"
	n.CreatedAt = time.Now()
	n.UpdatedAt = time.Now()
	return s.repo.CreateNotification(ctx, n)
}

// SendDueNotifications finds and sends all notifications that are due.
func (s *NotificationService) SendDueNotifications(ctx context.Context) {
	notifications, err := s.repo.GetPendingNotifications(ctx)
	if err != nil {
		log.Println("Failed to fetch pending notifications:", err)
		return
	}
	for _, n := range notifications {
		sentTo, err := s.sendNotification(ctx, n)
		if err != nil {
			log.Printf("Failed to send notification %v: %v", n.ID, err)
			s.repo.UpdateNotificationStatus(ctx, n.ID, "failed", nil)
			continue
		}
		s.repo.UpdateNotificationStatus(ctx, n.ID, "sent", sentTo)
	}
}

func (s *NotificationService) sendNotification(ctx context.Context, n *Notification) ([]string, error) {
	users, err := s.userRepo.FindByRolesAndGroups(ctx, n.Roles, n.GroupIDs)
	if err != nil {
		return nil, err
	}

	subject := os.Getenv("NOTIFICATION_EMAIL_SUBJECT")
	if subject == "" {
		subject = "ThesisTrack Reminder"
	}

	var sentTo []string
	for _, user := range users {
		err := s.emailService.SendEmail(user.Email, subject, n.Message)
		if err == nil {
			sentTo = append(sentTo, user.Email)
		}
	}
	return sentTo, nil
}

func (s *NotificationService) ListNotifications(ctx context.Context, groupID, role string) ([]*Notification, error) {
	return s.repo.ListNotifications(ctx, groupID, role)
}

func (s *NotificationService) DeleteNotification(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.DeleteNotification(ctx, id)
}
