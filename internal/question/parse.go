package question

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BuildPrompt asks for count questions on topic as a bare JSON array.
func BuildPrompt(topic string, count int) string {
	return fmt.Sprintf("Generate %d beginner-friendly multiple-choice questions about %s.\n"+
		"Output JSON only in this format:\n"+
		`[{"question": "...", "options": ["...", "...", "...", "..."], "answer": "..."}]`+"\n"+
		"Ensure the correct answer is one of the options.", count, topic)
}

// StripFences removes a surrounding markdown code fence, if any.
func StripFences(raw string) string {
	text := strings.TrimSpace(raw)
	for _, fence := range []string{"```json", "```JSON", "```"} {
		if strings.HasPrefix(text, fence) {
			text = strings.TrimPrefix(text, fence)
			break
		}
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

type rawQuestion struct {
	Question *string  `json:"question"`
	Options  []string `json:"options"`
	Answer   *string  `json:"answer"`
}

// ParseQuestions decodes a generator reply into exactly count questions.
// Any defect fails the whole reply.
func ParseQuestions(raw string, count int) ([]Question, error) {
	var items []rawQuestion
	if err := json.Unmarshal([]byte(StripFences(raw)), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(items) != count {
		return nil, fmt.Errorf("%w: want %d questions, got %d", ErrMalformedResponse, count, len(items))
	}

	out := make([]Question, 0, len(items))
	for i, item := range items {
		if item.Question == nil || item.Answer == nil || item.Options == nil {
			return nil, fmt.Errorf("%w: item %d is missing keys", ErrMalformedResponse, i)
		}
		q := Question{Prompt: *item.Question, Options: item.Options, Answer: *item.Answer}
		if err := q.Validate(); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}
