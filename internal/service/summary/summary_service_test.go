package summary

import (
	"errors"
	"strings"
	"testing"

	"supernova/internal/ai"
	"supernova/internal/errs"
	"supernova/internal/testutil"
)

func newTestService(provider ai.Provider) *SummaryService {
	return NewSummaryService(provider, ai.NewSessionRegistry())
}

func TestSummarizeStructured(t *testing.T) {
	provider := &testutil.MockProvider{
		SendFunc: func(message, sessionID, persona string) (string, error) {
			return `Here you go: {"success": true, "summary": "The paper shows bone loss in orbit.", "key_findings": ["Density dropped 2%", "Recovery took months"], "methodology": "Bed rest analog study.", "significance": "Informs countermeasure design."}`, nil
		},
	}
	service := newTestService(provider)

	text, err := service.Summarize("alice", "Bone Density in Orbit")
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}

	if !strings.Contains(text, "The paper shows bone loss in orbit.") {
		t.Errorf("Summary body missing, got:\n%s", text)
	}
	if !strings.Contains(text, "**Key Findings:**") {
		t.Errorf("Key findings heading missing, got:\n%s", text)
	}
	if !strings.Contains(text, "• Density dropped 2%") {
		t.Errorf("Finding bullet missing, got:\n%s", text)
	}
	if !strings.Contains(text, "**Methodology:** Bed rest analog study.") {
		t.Errorf("Methodology missing, got:\n%s", text)
	}
	if len(provider.Calls) != 1 {
		t.Errorf("Expected 1 webhook call, got %d", len(provider.Calls))
	}
}

func TestSummarizeEscapesFindings(t *testing.T) {
	provider := &testutil.MockProvider{
		SendFunc: func(message, sessionID, persona string) (string, error) {
			return `{"success": true, "summary": "Fine.", "key_findings": ["Expression of <gene> & friends rose"]}`, nil
		},
	}
	service := newTestService(provider)

	text, err := service.Summarize("alice", "Some Paper")
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}

	if !strings.Contains(text, "• Expression of &lt;gene&gt; &amp; friends rose") {
		t.Errorf("Finding not escaped, got:\n%s", text)
	}
	if strings.Contains(text, "<gene>") {
		t.Error("Raw markup leaked into the rendered summary")
	}
}

func TestSummarizeFallsBackToPlainPrompt(t *testing.T) {
	provider := &testutil.MockProvider{}
	provider.SendFunc = func(message, sessionID, persona string) (string, error) {
		if len(provider.Calls) == 1 {
			return "no json here at all", nil
		}
		return "A plain professional summary of the paper.", nil
	}
	service := newTestService(provider)

	text, err := service.Summarize("alice", "Some Paper")
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}

	if text != "A plain professional summary of the paper." {
		t.Errorf("Expected plain fallback text, got %q", text)
	}
	if len(provider.Calls) != 2 {
		t.Errorf("Expected 2 webhook calls, got %d", len(provider.Calls))
	}
}

func TestSummarizeStructuredUnsuccessfulFallsBack(t *testing.T) {
	provider := &testutil.MockProvider{}
	provider.SendFunc = func(message, sessionID, persona string) (string, error) {
		if len(provider.Calls) == 1 {
			return `{"success": false, "summary": ""}`, nil
		}
		return "Plain text summary.", nil
	}
	service := newTestService(provider)

	text, err := service.Summarize("alice", "Some Paper")
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if text != "Plain text summary." {
		t.Errorf("Expected plain fallback text, got %q", text)
	}
}

func TestSummarizeBothCallsFail(t *testing.T) {
	provider := &testutil.MockProvider{
		SendFunc: func(message, sessionID, persona string) (string, error) {
			return "", errors.New("connection refused")
		},
	}
	service := newTestService(provider)

	text, err := service.Summarize("alice", "Some Paper")
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if !strings.Contains(text, "Unable to generate a summary") {
		t.Errorf("Expected apology text, got %q", text)
	}
}

func TestSummarizeEmptyTitle(t *testing.T) {
	service := newTestService(&testutil.MockProvider{})

	_, err := service.Summarize("alice", "  ")
	if err == nil {
		t.Fatal("Expected validation error")
	}

	var validationErr *errs.ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("Expected *errs.ValidationError, got %T", err)
	}
}

func TestRenderStructuredRejectsGarbage(t *testing.T) {
	if _, ok := renderStructured("not json"); ok {
		t.Error("Garbage accepted as structured summary")
	}
	if _, ok := renderStructured(`{"success": true, "summary": "   "}`); ok {
		t.Error("Blank summary accepted")
	}
}
