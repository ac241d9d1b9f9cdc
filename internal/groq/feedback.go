package groq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aagmanpal/Intervyo/pkg/model"
)

const feedbackSystemMsg = `
You are an interview coach producing a candidate feedback report.

Read the per-question evaluations and return a STRICTLY FORMATTED JSON object.

### IMPORTANT RULES
1. Output **only valid JSON**. No explanation, no markdown, no backticks.
2. Base every statement on the evaluations provided. Never invent topics the
   candidate was not asked about.
3. Keep "summary" under 80 words. Keep each list entry under 15 words.
4. "strengths" and "improvements" hold at most 3 entries each; use an empty
   array when nothing applies.

### Final Expected JSON Schema
{
  "summary": "string",
  "strengths": ["string"],
  "improvements": ["string"]
}
`

// GenerateFeedback summarizes per-question evaluations into structured
// feedback for the completed interview.
func (c *Client) GenerateFeedback(ctx context.Context, role string, evals []model.Evaluation) (*model.Feedback, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Role: %s\n\nEvaluations:\n", role)
	for i, e := range evals {
		fmt.Fprintf(&sb, "%d. Q: %s\n   A: %s\n   Score: %.0f/100\n   Notes: %s\n", i+1, e.Question, e.Answer, e.Score, e.Feedback)
	}

	userPrompt := sb.String()
	if len(userPrompt) > 10000 {
		userPrompt = userPrompt[:10000]
	}

	chatReq := ChatRequest{
		Messages:    []map[string]string{{"role": "system", "content": feedbackSystemMsg}, {"role": "user", "content": userPrompt}},
		MaxTokens:   800,
		Temperature: 0.2,
	}

	respStr, err := c.Chat(ctx, chatReq)
	if err != nil {
		return nil, err
	}

	var fb model.Feedback
	if err := json.Unmarshal([]byte(respStr), &fb); err != nil {
		return nil, fmt.Errorf("failed to parse ai response: %w", err)
	}
	return &fb, nil
}
