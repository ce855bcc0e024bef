package folio

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"folio/internal/models"
)

// Placeholders shown in the notification for optional fields
const (
	PhoneFallback   = "Not provided"
	SubjectFallback = "No subject"
)

//go:embed templates/contact.html
var templateFS embed.FS

var notificationTemplate = template.Must(template.ParseFS(templateFS, "templates/contact.html"))

// notificationData is the view passed to the contact template
type notificationData struct {
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	OwnerName string
	SiteURL   string
}

// RenderNotification returns the subject line and HTML body for a normalized
// submission. Caller-supplied text is escaped by html/template.
func RenderNotification(s models.Submission, cfg ContactConfig) (string, string, error) {
	subject := s.Subject
	if subject == "" {
		subject = cfg.DefaultSubject
	}

	data := notificationData{
		Name:      s.FullName,
		Email:     s.Email,
		Phone:     orDefault(s.Phone, PhoneFallback),
		Subject:   orDefault(s.Subject, SubjectFallback),
		Message:   s.Message,
		OwnerName: cfg.OwnerName,
		SiteURL:   cfg.SiteURL,
	}

	var buf bytes.Buffer
	if err := notificationTemplate.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render notification: %w", err)
	}
	return subject, buf.String(), nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
