package adapter

import (
	"strings"

	"golang.org/x/net/html"
)

// extractText flattens an HTML fragment to plain text: tag contents are
// concatenated and whitespace is collapsed. Plain-text input passes through
// unchanged apart from whitespace normalization.
func extractText(content string) string {
	tok := html.NewTokenizer(strings.NewReader(content))
	var b strings.Builder
	for {
		tt := tok.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt == html.TextToken {
			b.WriteString(tok.Token().Data)
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
