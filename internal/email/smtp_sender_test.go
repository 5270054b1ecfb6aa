package email

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
)

func TestNewSMTPSender_Validation(t *testing.T) {
	if _, err := NewSMTPSender("", 587, "", "", "from@softsell.com", "", "info@softsell.com", false); err == nil {
		t.Fatalf("expected error without host")
	}
	if _, err := NewSMTPSender("smtp.local", 587, "", "", "", "", "info@softsell.com", false); err == nil {
		t.Fatalf("expected error without from")
	}
	if _, err := NewSMTPSender("smtp.local", 587, "", "", "from@softsell.com", "", " ", false); err == nil {
		t.Fatalf("expected error without recipient")
	}
	s, err := NewSMTPSender("smtp.local", 0, "", "", "from@softsell.com", "", "info@softsell.com", false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if s.port != 587 {
		t.Fatalf("expected default port 587, got %d", s.port)
	}
}

func TestSMTPSenderNotify_PlainSend(t *testing.T) {
	s, err := NewSMTPSender("smtp.local", 2525, "", "", "noreply@softsell.com", "SoftSell", "info@softsell.com", false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	var gotAddr string
	var gotTo []string
	var gotMsg string
	s.send = func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		gotAddr = addr
		gotTo = to
		gotMsg = string(msg)
		return nil
	}

	err = s.Notify(context.Background(), Notification{
		Subject: "New contact request",
		Body:    "Name: Ada",
		ReplyTo: "ada@example.com",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotAddr != "smtp.local:2525" {
		t.Fatalf("unexpected addr %q", gotAddr)
	}
	if len(gotTo) != 1 || gotTo[0] != "info@softsell.com" {
		t.Fatalf("unexpected recipients %+v", gotTo)
	}
	for _, want := range []string{
		"From: SoftSell <noreply@softsell.com>",
		"Reply-To: ada@example.com",
		"Subject: New contact request",
		"\r\n\r\nName: Ada",
	} {
		if !strings.Contains(gotMsg, want) {
			t.Fatalf("expected message to contain %q, got %q", want, gotMsg)
		}
	}
}

func TestSMTPSenderNotify_RequiresSubject(t *testing.T) {
	s, _ := NewSMTPSender("smtp.local", 2525, "", "", "noreply@softsell.com", "", "info@softsell.com", false)
	if err := s.Notify(context.Background(), Notification{}); err == nil {
		t.Fatalf("expected error without subject")
	}
}

func TestDisabledSender(t *testing.T) {
	err := NewDisabledSender("smtp not configured").Notify(context.Background(), Notification{Subject: "x"})
	if !errors.Is(err, ErrNotifierDisabled) {
		t.Fatalf("expected ErrNotifierDisabled, got %v", err)
	}
	if !strings.Contains(err.Error(), "smtp not configured") {
		t.Fatalf("expected reason in error, got %v", err)
	}
}

func TestBuildMessage_OmitsEmptyReplyTo(t *testing.T) {
	msg := buildMessage("a@softsell.com", "", "b@softsell.com", "", "Hi", "body")
	if strings.Contains(msg, "Reply-To") {
		t.Fatalf("expected no Reply-To header, got %q", msg)
	}
	if !strings.HasPrefix(msg, "From: a@softsell.com\r\n") {
		t.Fatalf("unexpected From header in %q", msg)
	}
}

func TestSMTPSenderNotify_RejectsHeaderLineBreaks(t *testing.T) {
	s, _ := NewSMTPSender("smtp.local", 2525, "", "", "noreply@softsell.com", "", "info@softsell.com", false)
	sent := false
	s.send = func(string, smtp.Auth, string, []string, []byte) error {
		sent = true
		return nil
	}

	cases := []Notification{
		{Subject: "New contact request from Eve\r\nBcc: victim@example.com", Body: "b"},
		{Subject: "ok", ReplyTo: "eve@example.com\nBcc: victim@example.com", Body: "b"},
	}
	for _, n := range cases {
		if err := s.Notify(context.Background(), n); !errors.Is(err, ErrInvalidHeader) {
			t.Fatalf("expected ErrInvalidHeader, got %v", err)
		}
	}
	if sent {
		t.Fatalf("expected nothing sent")
	}
}

func TestBuildMessage_HeadersStayOnOneLine(t *testing.T) {
	msg := buildMessage("a@softsell.com", "Soft\r\nSell", "b@softsell.com", "", "Hi Eve\r\nBcc: victim@example.com", "body")
	headers, _, _ := strings.Cut(msg, "\r\n\r\n")
	for _, line := range strings.Split(headers, "\r\n") {
		if strings.HasPrefix(line, "Bcc:") {
			t.Fatalf("unexpected injected header in %q", headers)
		}
	}
	if !strings.Contains(headers, "Subject: Hi Eve Bcc: victim@example.com") {
		t.Fatalf("expected subject folded into one line, got %q", headers)
	}
	if !strings.Contains(headers, "From: Soft Sell <a@softsell.com>") {
		t.Fatalf("expected from name folded into one line, got %q", headers)
	}
}

func TestBuildMessage_EncodesNonASCIISubject(t *testing.T) {
	msg := buildMessage("a@softsell.com", "", "b@softsell.com", "", "Valuación", "body")
	if !strings.Contains(msg, "Subject: =?utf-8?q?Valuaci=C3=B3n?=") {
		t.Fatalf("expected encoded subject, got %q", msg)
	}
}
