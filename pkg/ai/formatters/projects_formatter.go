package formatters

import "fmt"

type ProjectsFormatter struct {
	language string
}

func (f *ProjectsFormatter) Prompt(input map[string]any) string {
	return fmt.Sprintf(`You are an expert ATS resume writer.

TASK:
Generate technical, ATS-friendly project bullet points.

INPUT:
Project Name: %s
Technologies: %s
Description: %s
Highlights: %s

STRICT RULES:
- Output ONLY bullet points
- Generate EXACTLY 3 bullets
- Start each bullet with a strong action verb
- Clearly state what was built and its impact
- Highlight technologies and functionality
- Keep each bullet 1-2 lines
- Do NOT apologize, explain, or mention missing data
- Write in %s only
- Format bullets starting with •

Generate bullet points now:
`,
		orNA(str(input, "name")),
		orNA(str(input, "technologies")),
		str(input, "description"),
		str(input, "highlights"),
		f.language)
}

func (f *ProjectsFormatter) Format(output string) string { return BulletsToHTML(output) }
