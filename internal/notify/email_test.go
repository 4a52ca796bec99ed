package notify

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/medibook/booking-api/internal/slots"
)

func TestNewSendGridSenderRequiresAPIKey(t *testing.T) {
	if s := NewSendGridSender(SendGridConfig{}, nil); s != nil {
		t.Fatal("expected nil sender without an API key")
	}
}

func TestStubSenderNeverFails(t *testing.T) {
	s := NewStubEmailSender(nil)
	err := s.Send(context.Background(), EmailMessage{To: "user@example.com", Subject: "hi"})
	if err != nil {
		t.Fatalf("stub sender must not fail: %v", err)
	}
}

func TestConfirmationEmail(t *testing.T) {
	detail := &slots.SlotDetail{
		DateStart: time.Date(2026, 1, 31, 9, 30, 0, 0, time.UTC),
		Clinic:    "Poliambulatorio Centro",
		Address:   "Via Verdi 10",
		City:      "Trento",
		Doctor:    "Rossi",
	}

	msg := ConfirmationEmail("user@example.com", detail)

	if msg.To != "user@example.com" {
		t.Errorf("unexpected recipient %q", msg.To)
	}
	if !strings.Contains(msg.Subject, "31/01/2026") {
		t.Errorf("subject should carry the date, got %q", msg.Subject)
	}
	for _, want := range []string{"09:30", "Rossi", "Poliambulatorio Centro", "Via Verdi 10, Trento"} {
		if !strings.Contains(msg.HTML, want) {
			t.Errorf("HTML body missing %q", want)
		}
		if !strings.Contains(msg.Body, want) {
			t.Errorf("text body missing %q", want)
		}
	}
}

func TestConfirmationEmailNoCity(t *testing.T) {
	detail := &slots.SlotDetail{
		DateStart: time.Date(2026, 1, 31, 9, 30, 0, 0, time.UTC),
		Clinic:    "Clinic",
		Address:   "Via Roma 1",
		Doctor:    "Bianchi",
	}

	msg := ConfirmationEmail("user@example.com", detail)
	if strings.Contains(msg.Body, "Via Roma 1,") {
		t.Error("address should not end with a dangling comma")
	}
}

func TestOTPEmail(t *testing.T) {
	msg := OTPEmail("user@example.com", "482913")

	if !strings.Contains(msg.Body, "482913") || !strings.Contains(msg.HTML, "482913") {
		t.Error("OTP code missing from body")
	}
	if msg.Subject == "" {
		t.Error("expected a subject")
	}
}
