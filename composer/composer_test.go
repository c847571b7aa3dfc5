package composer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var sampleCandidates = []Candidate{
	{
		Title:       "Gone Dark",
		Author:      "Lee Child",
		Genre:       "Mystery",
		Description: "A detective hunts a vanished witness through the city.",
	},
	{
		Title:       "Paris Hearts",
		Author:      "Anna Reed",
		Genre:       "Romance",
		Description: "Two strangers keep crossing paths in Montmartre.",
	},
}

type failingChat struct{}

func (failingChat) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return "", errors.New("connection refused")
}

type cannedChat struct {
	text string
}

func (c cannedChat) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return c.text, nil
}

func TestRecommendationUsesRemote(t *testing.T) {
	assert := assert.New(t)

	c := New(cannedChat{text: "You should read Gone Dark."})

	text := c.Recommendation(context.Background(), "something suspenseful", sampleCandidates)
	assert.Equal("You should read Gone Dark.", text)
}

func TestRecommendationFallsBackWhenChatDown(t *testing.T) {
	assert := assert.New(t)

	c := New(failingChat{})

	text := c.Recommendation(context.Background(), "recommend me a mystery novel", sampleCandidates)

	assert.Contains(text, `"recommend me a mystery novel"`)
	assert.Contains(text, "1. \"Gone Dark\" by Lee Child (Mystery)")
	assert.Contains(text, "2. \"Paris Hearts\" by Anna Reed (Romance)")
	assert.True(strings.HasSuffix(text, "These should scratch that mystery itch. Happy reading!"))
}

func TestFallbackClosingSentences(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "genre keyword wins",
			query: "a fantasy book please",
			want:  "These should scratch that fantasy itch.",
		},
		{
			name:  "author keyword",
			query: "anything written in the last decade",
			want:  "If you enjoy these authors",
		},
		{
			name:  "theme keyword",
			query: "something about friendship",
			want:  "explores the theme you mentioned",
		},
		{
			name:  "generic closer",
			query: "surprise me",
			want:  "Let me know if any of these catch your eye",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(closingSentence(tt.query), tt.want)
		})
	}
}

func TestFallbackNoCandidates(t *testing.T) {
	assert := assert.New(t)

	text := fallbackRecommendation("books about beekeeping", nil)

	assert.Contains(text, `"books about beekeeping"`)
	assert.Contains(text, "couldn't find any books")
}

func TestFallbackGeneralReplies(t *testing.T) {
	assert := assert.New(t)

	assert.Contains(fallbackGeneralReply("Hello there!"), "library assistant")
	assert.Contains(fallbackGeneralReply("how does this work?"), "recommend books by genre")
	assert.Contains(fallbackGeneralReply("thanks a lot"), "You're welcome")
	assert.Contains(fallbackGeneralReply("zzz"), "best at recommending books")
}

func TestGeneralReplyFallsBackWhenChatDown(t *testing.T) {
	assert := assert.New(t)

	c := New(failingChat{})

	text := c.GeneralReply(context.Background(), "hello")
	assert.Contains(text, "library assistant")
}
