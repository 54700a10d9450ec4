package metadata

import (
	"strings"

	"golang.org/x/net/html"
)

// stripHTML returns the text content of an HTML fragment. Provider episode
// synopses arrive as markup like "<p>...</p>".
func stripHTML(fragment string) string {
	if fragment == "" {
		return ""
	}

	var b strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(tokenizer.Text())
		}
	}
}
