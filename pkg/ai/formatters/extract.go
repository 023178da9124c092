package formatters

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON decodes the first JSON object in output into v. Models often
// wrap the object in prose or code fences, so on a direct decode failure
// the outermost {...} span is tried.
func ExtractJSON(output string, v any) error {
	err := json.Unmarshal([]byte(output), v)
	if err == nil {
		return nil
	}
	start := strings.IndexByte(output, '{')
	end := strings.LastIndexByte(output, '}')
	if start >= 0 && end > start {
		if err2 := json.Unmarshal([]byte(output[start:end+1]), v); err2 == nil {
			return nil
		}
	}
	return fmt.Errorf("ai-service returned non-json content: %w", err)
}
