package feeds

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CleanHTML strips markup from a feed description, leaving plain text with
// collapsed whitespace. Feed descriptions routinely arrive as HTML
// fragments; the detector wants text. On parse failure the input is
// returned trimmed rather than lost.
func CleanHTML(s string) string {
	if s == "" {
		return ""
	}
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
