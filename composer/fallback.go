package composer

import (
	"fmt"
	"strings"
)

var (
	genreKeywords = []string{
		"fiction", "mystery", "romance", "sci-fi", "fantasy",
		"thriller", "biography", "history", "poetry",
	}

	authorKeywords = []string{"author", "writer", "by", "written"}

	themeKeywords = []string{
		"love", "adventure", "mystery", "war", "family",
		"friendship", "technology", "nature",
	}

	greetingKeywords = []string{"hello", "hi", "hey", "greetings"}
	helpKeywords     = []string{"help", "how", "what", "can"}
	thanksKeywords   = []string{"thanks", "thank", "appreciate"}
)

// fallbackRecommendation renders a deterministic reply: an intro quoting the
// query, a numbered candidate list, and a closing sentence picked by keyword
// classification of the query.
func fallbackRecommendation(query string, candidates []Candidate) string {
	if len(candidates) == 0 {
		return fmt.Sprintf("I couldn't find any books matching %q. "+
			"Could you tell me a bit more about what you're looking for?", query)
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "Based on your request %q, here are some books you might enjoy:\n\n", query)

	for i, c := range candidates {
		fmt.Fprintf(&sb, "%d. %q by %s (%s): %s\n", i+1, c.Title, c.Author, c.Genre, c.Description)
	}

	sb.WriteString("\n")
	sb.WriteString(closingSentence(query))

	return sb.String()
}

// closingSentence classifies the query's tokens against the genre, author,
// and theme keyword sets, in that order.
func closingSentence(query string) string {
	tokens := strings.Fields(strings.ToLower(query))

	if genre, ok := firstMatch(tokens, genreKeywords); ok {
		return fmt.Sprintf("These should scratch that %s itch. Happy reading!", genre)
	}

	if _, ok := firstMatch(tokens, authorKeywords); ok {
		return "If you enjoy these authors, I can dig up more of their work. Happy reading!"
	}

	if _, ok := firstMatch(tokens, themeKeywords); ok {
		return "Each of these explores the theme you mentioned in its own way. Happy reading!"
	}

	return "Let me know if any of these catch your eye, or tell me more and I'll keep looking!"
}

// fallbackGeneralReply handles non-book chat with one canned sentence per
// category.
func fallbackGeneralReply(query string) string {
	tokens := strings.Fields(strings.ToLower(query))

	if _, ok := firstMatch(tokens, greetingKeywords); ok {
		return "Hello! I'm your library assistant. Ask me for book recommendations anytime."
	}

	if _, ok := firstMatch(tokens, helpKeywords); ok {
		return "I can recommend books by genre, author, or theme. " +
			"Try something like \"recommend me a mystery novel\"."
	}

	if _, ok := firstMatch(tokens, thanksKeywords); ok {
		return "You're welcome! Come back whenever you need your next read."
	}

	return "I'm best at recommending books. Tell me what you like to read and I'll find something for you."
}

// firstMatch returns the first keyword appearing among the tokens. Tokens
// are trimmed of surrounding punctuation before comparison.
func firstMatch(tokens []string, keywords []string) (string, bool) {
	set := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		set[strings.Trim(token, ".,!?;:\"'()")] = true
	}

	for _, keyword := range keywords {
		if set[keyword] {
			return keyword, true
		}
	}

	return "", false
}
