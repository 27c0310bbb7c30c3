// Package prompt turns a question into the text sent to a provider.
package prompt

import (
	"fmt"
	"strings"

	"github.com/zen-systems/pollgate/pkg/poll"
)

// System is the fixed instruction sent alongside every prompt. It pins the
// provider to a plausible-human persona and a strict JSON reply shape.
const System = `You are answering poll/survey questions as a typical human would.

IMPORTANT RULES:
1. Give realistic, human-like answers - avoid showing superhuman knowledge
2. For impossible questions (like listing all mayors of a country), respond with uncertainty
3. Add natural human speech patterns like "I think", "probably", "not sure"
4. Keep answers concise and natural
5. For multiple choice, pick the most reasonable option
6. For rating questions, avoid extreme scores unless warranted
7. Show some uncertainty - humans don't know everything

Return your answer in this exact JSON format:
{
    "answer": "your answer here",
    "confidence": 0.8,
    "reasoning": "brief explanation"
}`

// Build composes the user prompt for a question. Options are enumerated
// 1-based using their display text; extra context, when supplied, is appended
// after them.
func Build(q *poll.Question, context string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Question: %s\n", q.Text)
	fmt.Fprintf(&sb, "Type: %s\n", q.Type)

	if len(q.Options) > 0 {
		sb.WriteString("Options:\n")
		for i, opt := range q.Options {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, opt.Text())
		}
	}

	if context != "" {
		fmt.Fprintf(&sb, "\nContext: %s\n", context)
	}

	sb.WriteString("\nPlease provide a human-like answer.")

	return sb.String()
}
