package types

import "strings"

// CoverLetter holds the three text blocks of a cover letter.
type CoverLetter struct {
	Opening string   `json:"opening"`
	Body    []string `json:"body"`
	Closing string   `json:"closing"`
}

// Markdown joins the blocks into paragraphs separated by blank lines.
func (c *CoverLetter) Markdown() string {
	parts := make([]string, 0, len(c.Body)+2)
	if s := strings.TrimSpace(c.Opening); s != "" {
		parts = append(parts, s)
	}
	for _, p := range c.Body {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	if s := strings.TrimSpace(c.Closing); s != "" {
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}
