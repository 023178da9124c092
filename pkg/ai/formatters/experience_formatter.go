package formatters

import "fmt"

type ExperienceFormatter struct {
	language string
}

func (f *ExperienceFormatter) Prompt(input map[string]any) string {
	return fmt.Sprintf(`You are an expert ATS resume writer.

TASK:
Generate achievement-focused work experience bullet points.

INPUT:
Job Title: %s
Company: %s
Responsibilities: %s
Projects: %s

STRICT RULES:
- Output ONLY bullet points
- Generate EXACTLY 4 bullets
- Start every bullet with a strong action verb
- Focus on impact, performance, scalability, and collaboration
- Use metrics only if provided
- Keep each bullet 1-2 lines
- Do NOT apologize, explain, or mention missing data
- Write in %s only
- Format bullets starting with •

Generate bullet points now:
`,
		orNA(str(input, "position", "title")),
		orNA(str(input, "company")),
		str(input, "responsibilities"),
		str(input, "projectDetails"),
		f.language)
}

func (f *ExperienceFormatter) Format(output string) string { return BulletsToHTML(output) }
