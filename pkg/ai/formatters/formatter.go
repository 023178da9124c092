// Package formatters builds the content-generation prompts for each
// section kind and shapes the raw model output into document text.
package formatters

import (
	"fmt"
	"sort"
	"strings"
)

const (
	KindExperience = "experience"
	KindProjects   = "projects"
	KindSummary    = "summary"
	KindCustom     = "custom"
)

// Formatter owns the prompt and the output shaping of one kind.
type Formatter interface {
	Prompt(input map[string]any) string
	Format(output string) string
}

var registry = map[string]func(language string) Formatter{
	KindExperience: func(l string) Formatter { return &ExperienceFormatter{language: l} },
	KindProjects:   func(l string) Formatter { return &ProjectsFormatter{language: l} },
	KindSummary:    func(l string) Formatter { return &SummaryFormatter{language: l} },
	KindCustom:     func(l string) Formatter { return &CustomFormatter{language: l} },
}

// For returns the formatter for kind. An empty language means English.
func For(kind, language string) (Formatter, bool) {
	f, ok := registry[kind]
	if !ok {
		return nil, false
	}
	if language == "" {
		language = "English"
	}
	return f(language), true
}

func Kinds() []string {
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// str reads a string field, rendering non-string values with %v.
func str(input map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := input[k]
		if !ok || v == nil {
			continue
		}
		s := strings.TrimSpace(fmt.Sprint(v))
		if s != "" {
			return s
		}
	}
	return ""
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
