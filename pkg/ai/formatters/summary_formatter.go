package formatters

import (
	"encoding/json"
	"fmt"
	"strings"
)

type SummaryFormatter struct {
	language string
}

// Prompt embeds the free-text "text" field when present, the whole input
// as indented JSON otherwise.
func (f *SummaryFormatter) Prompt(input map[string]any) string {
	user := str(input, "text")
	if user == "" {
		b, _ := json.MarshalIndent(input, "", "  ")
		user = string(b)
	}
	return fmt.Sprintf(`You are an expert ATS resume writer.

TASK:
Write a professional resume summary.

INPUT:
%s

STRICT RULES:
- Output ONLY the summary
- Write EXACTLY 3-4 sentences
- Convert mixed-language input to professional %s
- Highlight role, core skills, and career focus
- Use ATS-friendly keywords
- Do NOT apologize, explain, or mention missing data

Generate the professional summary now:
`, user, f.language)
}

func (f *SummaryFormatter) Format(output string) string { return strings.TrimSpace(output) }
