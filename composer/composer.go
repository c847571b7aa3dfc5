package composer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ChatCompleter issues one chat-completion turn against a language model.
type ChatCompleter interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Candidate is a ranked book offered to the composer.
type Candidate struct {
	Title       string
	Author      string
	Genre       string
	Description string
}

const systemPrompt = `You are a friendly and knowledgeable librarian assistant. ` +
	`When given a reader's request and a list of candidate books, recommend 3 to 5 of them. ` +
	`For each recommendation briefly explain why it fits, mentioning genre, author, or description. ` +
	`If none of the candidates fit the request, say so and ask the reader for more detail.`

// Composer turns a user query plus candidate books into natural-language
// text. The remote model is attempted first; any failure falls through
// silently to the deterministic rule-based renderer, so callers only ever
// see the final text.
type Composer struct {
	chat ChatCompleter
	log  *zap.Logger
}

func New(chat ChatCompleter) *Composer {
	log := zap.L().With(
		zap.String("component", "composer"),
	)

	return &Composer{
		chat: chat,
		log:  log,
	}
}

// Recommendation composes the reply for a book request.
func (c *Composer) Recommendation(ctx context.Context, query string, candidates []Candidate) string {
	if c.chat != nil {
		text, err := c.chat.Complete(ctx, systemPrompt, buildUserPrompt(query, candidates))
		if err == nil && text != "" {
			return text
		}

		if err != nil {
			c.log.Warn("chat completion failed, using fallback", zap.Error(err))
		}
	}

	return fallbackRecommendation(query, candidates)
}

// GeneralReply composes the reply for a message that is not a book request.
func (c *Composer) GeneralReply(ctx context.Context, query string) string {
	if c.chat != nil {
		prompt := fmt.Sprintf("A library visitor says: %q. Reply in one or two sentences.", query)

		text, err := c.chat.Complete(ctx, systemPrompt, prompt)
		if err == nil && text != "" {
			return text
		}

		if err != nil {
			c.log.Warn("chat completion failed, using fallback", zap.Error(err))
		}
	}

	return fallbackGeneralReply(query)
}

func buildUserPrompt(query string, candidates []Candidate) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Reader request: %s\n\nCandidate books:\n", query)
	for _, c := range candidates {
		fmt.Fprintf(&sb, "- %q by %s (%s): %s\n", c.Title, c.Author, c.Genre, c.Description)
	}

	return sb.String()
}
