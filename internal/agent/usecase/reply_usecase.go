package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dealersync-backend/internal/agent/domain"
	"dealersync-backend/pkg/ai"
)

// maxTranscriptTurns caps how much conversation history reaches the
// provider; only the most recent turns matter for drafting the next reply.
const maxTranscriptTurns = 60

// ErrEmptyTranscript means sanitization left nothing to reply to; a caller
// problem, not an upstream one.
var ErrEmptyTranscript = errors.New("conversation transcript is empty")

// ErrNotConfigured means no AI provider could be constructed at startup
var ErrNotConfigured = errors.New("no AI provider configured: set GEMINI_API_KEY or OLLAMA_BASE_URL")

const replySystemPrompt = `You are a BDC agent at a franchise auto dealership replying to a customer in a live chat.
Write like a helpful human salesperson: warm, concise, no pressure tactics.
Never invent pricing, availability or financing terms. If the customer asks for something you cannot know, offer to check and follow up.
Return a JSON object of the form {"suggestions": ["...", "..."]} containing 1 to 3 ready-to-send replies, each under 400 characters.`

// ReplyUsecase drafts candidate replies for a conversation
type ReplyUsecase interface {
	SuggestReplies(ctx context.Context, turns []domain.Turn, lead *domain.Lead, page *domain.Page) ([]string, error)
}

type replyUsecase struct {
	generator ai.ReplyGenerator
	timeout   time.Duration
}

// NewReplyUsecase creates a new ReplyUsecase. timeout bounds each upstream
// call; zero means 12 seconds.
func NewReplyUsecase(generator ai.ReplyGenerator, timeout time.Duration) ReplyUsecase {
	if timeout == 0 {
		timeout = 12 * time.Second
	}
	return &replyUsecase{
		generator: generator,
		timeout:   timeout,
	}
}

func (u *replyUsecase) SuggestReplies(ctx context.Context, turns []domain.Turn, lead *domain.Lead, page *domain.Page) ([]string, error) {
	if u.generator == nil {
		return nil, ErrNotConfigured
	}

	turns = sanitizeTranscript(turns)
	if len(turns) == 0 {
		return nil, ErrEmptyTranscript
	}

	userPrompt := buildUserPrompt(turns, lead, page)

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	raw, err := u.generator.GenerateReplies(ctx, replySystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	suggestions := parseSuggestions(raw)
	if len(suggestions) == 0 {
		return nil, fmt.Errorf("provider returned no usable suggestions")
	}
	return suggestions, nil
}

// sanitizeTranscript trims each turn, drops empty ones and keeps only the
// most recent maxTranscriptTurns.
func sanitizeTranscript(turns []domain.Turn) []domain.Turn {
	cleaned := make([]domain.Turn, 0, len(turns))
	for _, t := range turns {
		t.Text = strings.TrimSpace(t.Text)
		if t.Text == "" {
			continue
		}
		cleaned = append(cleaned, t)
	}
	if len(cleaned) > maxTranscriptTurns {
		cleaned = cleaned[len(cleaned)-maxTranscriptTurns:]
	}
	return cleaned
}

// buildUserPrompt embeds lead/page context (non-empty fields only) plus the
// serialized transcript.
func buildUserPrompt(turns []domain.Turn, lead *domain.Lead, page *domain.Page) string {
	var b strings.Builder

	if lead != nil {
		var fields []string
		appendField(&fields, "name", lead.Name)
		appendField(&fields, "vehicle year", lead.VehicleYear)
		appendField(&fields, "vehicle make", lead.VehicleMake)
		appendField(&fields, "vehicle model", lead.VehicleModel)
		appendField(&fields, "status", lead.Status)
		appendField(&fields, "source", lead.Source)
		if len(fields) > 0 {
			b.WriteString("Lead: " + strings.Join(fields, ", ") + "\n")
		}
	}
	if page != nil {
		var fields []string
		appendField(&fields, "channel", page.Channel)
		appendField(&fields, "url", page.URL)
		appendField(&fields, "title", page.Title)
		if len(fields) > 0 {
			b.WriteString("Page: " + strings.Join(fields, ", ") + "\n")
		}
	}

	b.WriteString("\nConversation:\n")
	for _, t := range turns {
		sender := t.Sender
		if sender == "" {
			sender = "customer"
		}
		b.WriteString(sender + ": " + t.Text + "\n")
	}
	b.WriteString("\nDraft 1-3 ready-to-send replies for the rep.")
	return b.String()
}

func appendField(fields *[]string, label, value string) {
	value = strings.TrimSpace(value)
	if value != "" {
		*fields = append(*fields, label+": "+value)
	}
}
