package formatters

import (
	"fmt"
	"strconv"
)

type CustomFormatter struct {
	language string
}

// Prompt asks for a refinement on round 1 and for an alternative phrasing
// on any later round.
func (f *CustomFormatter) Prompt(input map[string]any) string {
	round := 1
	if r, err := strconv.Atoi(str(input, "round")); err == nil && r > 1 {
		round = 2
	}
	section := str(input, "sectionName")

	task := `1. Refine user's input to be more professional and ATS-friendly
2. Maintain factual accuracy from user's original input`
	if round == 2 {
		task = `Provide an alternative description that:
1. Uses varied sentence structure and phrasing
2. Maintains factual accuracy from user's original input
3. Offers a fresh perspective while staying ATS-optimized`
	}

	return fmt.Sprintf(`You are a resume expert specializing in creating sections for "%s" in a resume optimized for ATS systems.

ROUND INFORMATION:
• Current Round: %d of 2

CONTEXT:
The user is describing a section on %s:
• User's description: %s

TASK:
%s

OUTPUT FORMAT:
Provide 2-5 bullet points, each on a new line, starting with a bullet point (•), in %s only.

Generate the content now:
`, section, round, section, str(input, "description"), task, f.language)
}

func (f *CustomFormatter) Format(output string) string { return BulletsToHTML(output) }
