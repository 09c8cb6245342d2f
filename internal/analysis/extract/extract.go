// Package extract pulls readable article text out of web pages for
// deep sentiment analysis.
package extract

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/newspulse/newspulse/internal/infra"
)

// maxTextBytes caps extracted text so one page cannot blow up scoring
// or report payloads.
const maxTextBytes = 10 * 1024

// Text fetches the page at url and returns its paragraph text, with
// boilerplate elements removed and whitespace collapsed.
func Text(ctx context.Context, url string) (string, error) {
	body, _, err := infra.DoGet(ctx, url, map[string]string{"Accept": "text/html"})
	if err != nil {
		return "", err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style, nav, header, footer, aside").Remove()

	var parts []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if text := strings.Join(strings.Fields(s.Text()), " "); text != "" {
			parts = append(parts, text)
		}
	})

	text := truncateBytes(strings.Join(parts, "\n\n"), maxTextBytes)
	if text == "" {
		return "", fmt.Errorf("no paragraph text in %s", url)
	}
	return text, nil
}

// TextOrFallback returns extracted page text, or fallback when the page
// cannot be fetched or carries no usable paragraphs. Deep analysis uses
// this so a broken article page degrades to shallow scoring instead of
// failing the request.
func TextOrFallback(ctx context.Context, url, fallback string) string {
	if url == "" {
		return fallback
	}
	text, err := Text(ctx, url)
	if err != nil {
		return fallback
	}
	return text
}

// truncateBytes cuts s at a rune boundary at or below max bytes.
func truncateBytes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
