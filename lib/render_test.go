package folio

import (
	"strings"
	"testing"

	"folio/internal/models"
)

func TestRenderNotificationFallbacks(t *testing.T) {
	cfg := ContactConfig{DefaultSubject: "New Contact Form Submission"}

	subject, html, err := RenderNotification(models.Submission{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Message:  "Hello",
	}, cfg)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if subject != "New Contact Form Submission" {
		t.Errorf("Expected default subject, got %q", subject)
	}
	if !strings.Contains(html, PhoneFallback) {
		t.Errorf("Expected %q for missing phone", PhoneFallback)
	}
	if !strings.Contains(html, SubjectFallback) {
		t.Errorf("Expected %q for missing subject", SubjectFallback)
	}
}

func TestRenderNotificationEscapesCallerText(t *testing.T) {
	_, html, err := RenderNotification(models.Submission{
		FullName: `<script>alert("x")</script>`,
		Email:    "ada@example.com",
		Phone:    "+44 1234",
		Message:  "<b>bold</b>",
	}, ContactConfig{DefaultSubject: "s"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if strings.Contains(html, "<script>") || strings.Contains(html, "<b>bold</b>") {
		t.Error("Expected caller markup to be escaped")
	}
	if !strings.Contains(html, "&lt;b&gt;bold&lt;/b&gt;") {
		t.Error("Expected escaped message text in body")
	}
	// html/template encodes '+' as a numeric entity; mail clients display it unchanged
	if !strings.Contains(html, "&#43;44 1234") {
		t.Error("Expected phone number with an escaped plus sign")
	}
}

func TestRenderNotificationBranding(t *testing.T) {
	sub := models.Submission{FullName: "Ada", Email: "ada@example.com", Message: "Hi"}

	_, html, err := RenderNotification(sub, ContactConfig{
		DefaultSubject: "s",
		OwnerName:      "Jane Doe - Web Developer",
		SiteURL:        "https://jane.example.com/",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(html, "Jane Doe - Web Developer") {
		t.Error("Expected owner name in footer")
	}
	if !strings.Contains(html, `href="https://jane.example.com/"`) {
		t.Error("Expected site link in footer")
	}

	_, html, err = RenderNotification(sub, ContactConfig{DefaultSubject: "s"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.Contains(html, "Visit portfolio website") {
		t.Error("Expected no site link without a configured URL")
	}
}
