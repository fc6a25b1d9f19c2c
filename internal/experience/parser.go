// Package experience turns free-text descriptions of prior MUN involvement
// into structured experience entries using a generative model, with strict
// post-processing since model output is untrusted.
package experience

import (
	"encoding/json"
	"regexp"
	"strings"
)

// RoleTypeChair and RoleTypeAdmin select which entry shape the parser
// accepts.
const (
	RoleTypeChair = "chair"
	RoleTypeAdmin = "admin"
)

var (
	codeFenceRe = regexp.MustCompile("```json\n?|\n?```")
	jsonArrayRe = regexp.MustCompile(`(?s)\[.*\]`)
)

// promptSuffix pins the model to a bare JSON array and shows one example of
// each accepted entry shape.
const promptSuffix = `

Important: Return ONLY a valid JSON array with no additional text or formatting. Each object in the array should be properly formatted JSON.

Example format for chair experiences:
[
  {
    "conference": "Harvard MUN 2023",
    "position": "Chair",
    "year": "2023",
    "description": "Led Security Council committee discussions on global security issues"
  }
]

Example format for admin experiences:
[
  {
    "role": "Event Coordinator",
    "organization": "School Student Council",
    "year": "2023",
    "description": "Organized multiple events with 500+ attendees"
  }
]`

// BuildPrompt assembles the model prompt. The caller-supplied prompt leads
// when present; otherwise a minimal extraction instruction is built from the
// raw text and role type.
func BuildPrompt(prompt, text, roleType string) string {
	base := strings.TrimSpace(prompt)
	if base == "" {
		base = "Extract structured " + roleType + " experience entries from the following text:\n\n" + text
	}
	return base + promptSuffix
}

// ExtractExperiences pulls the JSON array out of a model response, parses it
// and drops entries missing the required fields for the role type. It
// returns nil when nothing usable remains.
func ExtractExperiences(aiText, roleType string) []map[string]any {
	cleaned := strings.TrimSpace(codeFenceRe.ReplaceAllString(aiText, ""))
	jsonString := cleaned
	if match := jsonArrayRe.FindString(cleaned); match != "" {
		jsonString = match
	}

	var entries []map[string]any
	if err := json.Unmarshal([]byte(jsonString), &entries); err != nil {
		return nil
	}

	var valid []map[string]any
	for _, entry := range entries {
		if hasRequiredFields(entry, roleType) {
			valid = append(valid, entry)
		}
	}
	return valid
}

func hasRequiredFields(entry map[string]any, roleType string) bool {
	required := []string{"role", "organization", "year"}
	if roleType == RoleTypeChair {
		required = []string{"conference", "position", "year"}
	}
	for _, field := range required {
		s, ok := entry[field].(string)
		if !ok || strings.TrimSpace(s) == "" {
			return false
		}
	}
	return true
}
