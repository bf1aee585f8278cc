package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/elevate-workforce/jobportal/internal/apperr"
	"github.com/elevate-workforce/jobportal/internal/dto"
	"github.com/elevate-workforce/jobportal/internal/models"
	"github.com/elevate-workforce/jobportal/internal/notify"
	"gorm.io/gorm"
)

type ContactService struct {
	db       *gorm.DB
	mailer   notify.Mailer
	inbox    string
	siteName string
}

// NewContactService sends submissions to inbox and a confirmation to the
// sender, signed with siteName.
func NewContactService(db *gorm.DB, mailer notify.Mailer, inbox, siteName string) *ContactService {
	return &ContactService{db: db, mailer: mailer, inbox: inbox, siteName: siteName}
}

// Submit stores a contact message, then mails the site inbox and the
// sender. A mail failure is reported but the stored message is kept.
func (s *ContactService) Submit(ctx context.Context, req *dto.ContactRequest) (*models.ContactMessage, error) {
	msg := models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	if msg.Name == "" || msg.Email == "" || msg.Subject == "" || msg.Message == "" {
		return nil, apperr.Validation("please fill in all required fields")
	}
	email, err := validEmail(msg.Email)
	if err != nil {
		return nil, err
	}
	msg.Email = email

	db := s.db.WithContext(ctx)
	if err := db.Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("failed to store contact message: %w", err)
	}

	if err := s.mailer.Send(ctx, s.adminMail(&msg)); err != nil {
		slog.Error("contact mail failed", "action", "contact_admin_mail", "contact_id", msg.ID, "error", err)
		return &msg, apperr.ExternalService("error sending email", err)
	}
	if err := s.mailer.Send(ctx, s.confirmationMail(&msg)); err != nil {
		slog.Error("contact mail failed", "action", "contact_confirmation_mail", "contact_id", msg.ID, "error", err)
		return &msg, apperr.ExternalService("error sending email", err)
	}

	if err := db.Model(&msg).Update("delivered", true).Error; err != nil {
		return nil, fmt.Errorf("failed to mark contact message delivered: %w", err)
	}
	return &msg, nil
}

func (s *ContactService) adminMail(m *models.ContactMessage) notify.Message {
	body := fmt.Sprintf("New message from %s\n\nEmail: %s\nPhone: %s\nSubject: %s\n\nMessage:\n%s\n",
		m.Name, m.Email, m.Phone, m.Subject, m.Message)
	return notify.Message{
		To:      []string{s.inbox},
		Subject: "New Contact Form Submission: " + m.Subject,
		Body:    body,
	}
}

func (s *ContactService) confirmationMail(m *models.ContactMessage) notify.Message {
	body := fmt.Sprintf("Dear %s,\n\nThank you for contacting %s. We have received your message and will get back to you as soon as possible.\n\nYour Message:\nSubject: %s\nMessage: %s\n\nBest regards,\n%s Team\n",
		m.Name, s.siteName, m.Subject, m.Message, s.siteName)
	return notify.Message{
		To:      []string{m.Email},
		Subject: "We received your message - " + s.siteName,
		Body:    body,
	}
}
