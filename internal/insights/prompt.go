package insights

import (
	"strconv"
	"strings"

	"github.com/mmcdole/gamedeck/internal/domain"
)

const (
	systemPrompt = "You are an expert video game analyst. Analyze the game you are given and reply with useful insights as a single JSON object, without any surrounding text."

	// descriptionRunes caps the description excerpt sent to the provider.
	descriptionRunes = 500

	notAvailable = "N/A"
)

const responseShape = `{
  "analysis": {
    "sentiment": "overall sentiment",
    "difficulty": "difficulty level",
    "replayability": "replay value",
    "targetAudience": "target audience"
  },
  "recommendations": [
    {
      "name": "recommendation type",
      "games": ["game 1", "game 2"],
      "reason": "why these games"
    }
  ],
  "tips": ["tip 1", "tip 2"],
  "summary": {
    "pros": ["pro 1", "pro 2"],
    "cons": ["con 1", "con 2"],
    "verdict": "final verdict"
  }
}`

// BuildPrompt renders the user message describing game.
func BuildPrompt(game domain.GameDetail) string {
	var b strings.Builder
	b.WriteString("Analyze the following game and return insights in JSON format.\n\n")
	line(&b, "Name", game.Name)
	line(&b, "Rating", ratingText(game.Rating))
	line(&b, "Metacritic", intText(game.Metacritic))
	line(&b, "Genres", game.GenreNames())
	line(&b, "Developers", game.DeveloperNames())
	line(&b, "Release date", game.Released)
	line(&b, "Description", excerpt(game.DescriptionRaw, descriptionRunes))
	b.WriteString("\nReturn JSON with exactly this structure:\n")
	b.WriteString(responseShape)
	b.WriteString("\n")
	return b.String()
}

func line(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		value = notAvailable
	}
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}

func ratingText(r float64) string {
	if r == 0 {
		return ""
	}
	return strconv.FormatFloat(r, 'f', 2, 64)
}

func intText(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
