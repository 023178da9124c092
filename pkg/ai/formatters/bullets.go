package formatters

import (
	"strings"
)

var bulletMarks = []string{"•", "-", "*"}

// BulletsToHTML turns one bullet per line into an HTML list. Leading
// bullet marks are dropped; text without any non-empty line is returned
// trimmed and unchanged.
func BulletsToHTML(text string) string {
	text = strings.TrimSpace(text)
	var items []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		for _, m := range bulletMarks {
			if strings.HasPrefix(line, m) {
				line = strings.TrimSpace(strings.TrimPrefix(line, m))
				break
			}
		}
		if line != "" {
			items = append(items, "<li>"+line+"</li>")
		}
	}
	if len(items) == 0 {
		return text
	}
	return "<ul>" + strings.Join(items, "") + "</ul>"
}
