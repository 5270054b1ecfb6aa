package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"softsell-api/internal/llm"
	"softsell-api/internal/service"
)

func TestRunREPL_SuggestedAndFreeText(t *testing.T) {
	mock := &llm.MockClient{Response: "We buy Adobe licenses."}
	conv := service.NewConversation(zap.NewNop(), mock, "m")
	in := strings.NewReader("/q 5\nDo you buy Adobe?\n/quit\n")
	var out bytes.Buffer

	if err := runREPL(context.Background(), conv, in, &out); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	legal, _ := service.CannedAnswer("Is this legal?")
	for _, want := range []string{
		"SoftSell: " + service.GreetingText,
		"You: Is this legal?",
		"SoftSell: " + legal,
		"SoftSell: We buy Adobe licenses.",
	} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected output to contain %q, got %q", want, out.String())
		}
	}
	if len(conv.Transcript()) != 5 {
		t.Fatalf("expected 5 turns, got %d", len(conv.Transcript()))
	}
	if mock.Calls() != 1 {
		t.Fatalf("expected 1 provider call, got %d", mock.Calls())
	}
}

func TestRunREPL_InvalidQuestionIndex(t *testing.T) {
	conv := service.NewConversation(zap.NewNop(), &llm.MockClient{}, "m")
	var out bytes.Buffer
	if err := runREPL(context.Background(), conv, strings.NewReader("/q 9"), &out); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out.String(), "pick a question between 1 and 5") {
		t.Fatalf("expected index error, got %q", out.String())
	}
	if len(conv.Transcript()) != 1 {
		t.Fatalf("expected transcript unchanged")
	}
}
