package service

import (
	"strings"
	"testing"

	"softsell-api/internal/domain"
)

func TestSuggestedQuestions_Order(t *testing.T) {
	want := []string{
		"How do I sell my license?",
		"What is my license worth?",
		"How long does the process take?",
		"What software do you buy?",
		"Is this legal?",
	}
	got := SuggestedQuestions()
	if len(got) != len(want) {
		t.Fatalf("expected %d questions, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("question %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestCannedAnswer_ExactMatchOnly(t *testing.T) {
	if _, ok := CannedAnswer("is this legal?"); ok {
		t.Fatalf("expected case-sensitive match")
	}
	if _, ok := CannedAnswer("Is this legal"); ok {
		t.Fatalf("expected exact match")
	}
	answer, ok := CannedAnswer("How long does the process take?")
	if !ok || !strings.Contains(answer, "within 3 business days") {
		t.Fatalf("unexpected answer %q", answer)
	}
}

func TestFormatTranscript(t *testing.T) {
	turns := []domain.Turn{
		{Text: "Hi", IsUser: false},
		{Text: "Hello", IsUser: true},
		{Text: "How can I help?", IsUser: false},
	}
	got := FormatTranscript(turns)
	want := "Assistant: Hi\nUser: Hello\nAssistant: How can I help?"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if FormatTranscript(nil) != "" {
		t.Fatalf("expected empty transcript for nil turns")
	}
}

func TestBuildConversationPrompt_Sections(t *testing.T) {
	prompt := BuildConversationPrompt([]domain.Turn{{Text: GreetingText}}, "What about Adobe?")

	preamble := strings.Index(prompt, "About SoftSell:")
	history := strings.Index(prompt, "Previous conversation:\nAssistant: "+GreetingText)
	user := strings.Index(prompt, "User: What about Adobe?")
	instruction := strings.Index(prompt, "Keep responses concise (max 3 sentences)")
	if preamble < 0 || history < 0 || user < 0 || instruction < 0 {
		t.Fatalf("missing prompt section in %q", prompt)
	}
	if !(preamble < history && history < user && user < instruction) {
		t.Fatalf("unexpected section order in %q", prompt)
	}
}

func TestBuildQuestionPrompt_NoHistory(t *testing.T) {
	prompt := BuildQuestionPrompt("Do you buy Oracle?")
	if strings.Contains(prompt, "Previous conversation") {
		t.Fatalf("expected no history block")
	}
	for _, want := range []string{
		"Upload License -> Get Valuation -> Get Paid",
		"within 3 business days",
		"User: Do you buy Oracle?",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected prompt to contain %q", want)
		}
	}
}
