package llm

import "strings"

// extractJSON strips markdown code fences and surrounding chatter from an
// LLM response, leaving the JSON payload for decoding.
func extractJSON(response string) string {
	jsonStr := response
	if strings.Contains(jsonStr, "```json") {
		start := strings.Index(jsonStr, "```json")
		end := strings.Index(jsonStr[start+7:], "```")
		if end > 0 {
			jsonStr = jsonStr[start+7 : start+7+end]
		}
	} else if strings.Contains(jsonStr, "```") {
		start := strings.Index(jsonStr, "```")
		end := strings.Index(jsonStr[start+3:], "```")
		if end > 0 {
			jsonStr = jsonStr[start+3 : start+3+end]
		}
	}
	return strings.TrimSpace(jsonStr)
}
