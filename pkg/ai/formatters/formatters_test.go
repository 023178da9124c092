package formatters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulletsToHTML(t *testing.T) {
	in := "• Shipped the billing service\n\n- Cut p99 latency by 40%\n*   Mentored four engineers  \n"
	assert.Equal(t,
		"<ul><li>Shipped the billing service</li><li>Cut p99 latency by 40%</li><li>Mentored four engineers</li></ul>",
		BulletsToHTML(in))

	assert.Equal(t, "", BulletsToHTML("  \n "))
	assert.Equal(t, "<ul><li>plain line</li></ul>", BulletsToHTML("plain line"))
}

func TestForKnownKinds(t *testing.T) {
	assert.Equal(t, []string{"custom", "experience", "projects", "summary"}, Kinds())
	_, ok := For("cover-letter", "")
	assert.False(t, ok)
}

func TestExperiencePromptPrefersPosition(t *testing.T) {
	f, ok := For(KindExperience, "")
	require.True(t, ok)
	p := f.Prompt(map[string]any{"position": "Staff Engineer", "title": "ignored", "company": "Acme"})
	assert.Contains(t, p, "Job Title: Staff Engineer")
	assert.Contains(t, p, "Company: Acme")
	assert.Contains(t, p, "Write in English only")

	p = f.Prompt(map[string]any{})
	assert.Contains(t, p, "Job Title: N/A")
}

func TestSummaryKeepsPlainText(t *testing.T) {
	f, _ := For(KindSummary, "Portuguese")
	assert.Equal(t, "Seasoned engineer.", f.Format("  Seasoned engineer.\n"))
	assert.Contains(t, f.Prompt(map[string]any{"text": "I build APIs"}), "I build APIs")
	assert.Contains(t, f.Prompt(map[string]any{"role": "SRE"}), `"role": "SRE"`)
}

func TestCustomPromptRounds(t *testing.T) {
	f, _ := For(KindCustom, "")
	first := f.Prompt(map[string]any{"sectionName": "Talks", "description": "spoke at GopherCon"})
	assert.Contains(t, first, "Current Round: 1 of 2")
	assert.Contains(t, first, "Refine user's input")

	second := f.Prompt(map[string]any{"sectionName": "Talks", "round": 2})
	assert.Contains(t, second, "Current Round: 2 of 2")
	assert.Contains(t, second, "alternative description")
}

func TestExtractJSON(t *testing.T) {
	var out map[string]any
	require.NoError(t, ExtractJSON("```json\n{\"a\": 1}\n```", &out))
	assert.Equal(t, float64(1), out["a"])

	assert.Error(t, ExtractJSON("no json here", &out))
}
