// Package parse turns raw provider text into structured answers. It tries a
// JSON envelope first and falls back to type-aware free-text extraction; it
// never propagates a failure, synthesizing a fallback answer instead.
package parse

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/zen-systems/pollgate/pkg/persona"
	"github.com/zen-systems/pollgate/pkg/poll"
)

const (
	// defaultConfidence is assumed when the provider omits or garbles the
	// confidence field, and for all free-text extractions.
	defaultConfidence = 0.7

	textReasoning = "Parsed from text response"

	// notSurePhrase substitutes for an empty free-text reply.
	notSurePhrase = "I'm not sure about this one."

	// maxTextLength truncates runaway free-text answers.
	maxTextLength = 200
)

var affirmativeTokens = []string{"yes", "true", "agree", "correct"}
var negativeTokens = []string{"no", "false", "disagree", "incorrect"}

// ratingPattern matches the first standalone integer 1-10.
var ratingPattern = regexp.MustCompile(`\b([1-9]|10)\b`)

// Parser extracts answers from raw provider replies.
type Parser struct {
	rng   *persona.Rand
	synth *persona.Synthesizer
}

// New creates a parser. Random choices on ambiguous replies draw from rng;
// unrecoverable replies are answered by synth.
func New(rng *persona.Rand, synth *persona.Synthesizer) *Parser {
	return &Parser{rng: rng, synth: synth}
}

// Parse extracts a structured answer from raw. It never fails: replies that
// defeat both the JSON and free-text strategies yield a synthesized fallback.
func (p *Parser) Parse(q *poll.Question, raw string) poll.Answer {
	if ans, ok := p.parseJSON(q, raw); ok {
		return ans
	}

	value, ok := p.extract(q, raw)
	if !ok {
		return p.synth.Answer(q)
	}

	return poll.Answer{
		QuestionID: q.ID,
		Value:      value,
		Confidence: defaultConfidence,
		Reasoning:  textReasoning,
	}
}

// envelope is the JSON reply shape requested by the system prompt. Answer and
// Confidence stay raw because providers routinely bend the types.
type envelope struct {
	Answer     json.RawMessage `json:"answer"`
	Confidence json.RawMessage `json:"confidence"`
	Reasoning  string          `json:"reasoning"`
}

// parseJSON attempts to parse the span from the first "{" to the last "}" as
// an answer envelope, ignoring any surrounding prose.
func (p *Parser) parseJSON(q *poll.Question, raw string) (poll.Answer, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return poll.Answer{}, false
	}

	var env envelope
	if err := json.Unmarshal([]byte(raw[start:end+1]), &env); err != nil {
		return poll.Answer{}, false
	}

	value, ok := decodeValue(env.Answer)
	if !ok {
		return poll.Answer{}, false
	}

	return poll.Answer{
		QuestionID: q.ID,
		Value:      value,
		Confidence: decodeConfidence(env.Confidence),
		Reasoning:  env.Reasoning,
	}, true
}

// decodeValue accepts a string, an array of strings, or a bare number.
func decodeValue(raw json.RawMessage) (poll.Value, bool) {
	if len(raw) == 0 {
		return poll.SingleValue(""), true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return poll.SingleValue(s), true
	}

	var items []string
	if err := json.Unmarshal(raw, &items); err == nil {
		return poll.MultiValue(items), true
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return poll.SingleValue(n.String()), true
	}

	return poll.Value{}, false
}

func decodeConfidence(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return defaultConfidence
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	return defaultConfidence
}

// extract pulls an answer out of free-form text according to question type.
// The false return marks the one unrecoverable case: a choice question with
// no options to choose from.
func (p *Parser) extract(q *poll.Question, text string) (poll.Value, bool) {
	text = strings.TrimSpace(text)
	lower := strings.ToLower(text)

	switch q.Type {
	case poll.TypeYesNo:
		return poll.SingleValue(p.extractYesNo(lower)), true

	case poll.TypeSingleChoice, poll.TypeMultipleChoice:
		if len(q.Options) == 0 {
			return poll.Value{}, false
		}
		return poll.SingleValue(p.extractChoice(q.Options, lower)), true

	case poll.TypeRating:
		return poll.SingleValue(p.extractRating(text)), true

	default:
		return poll.SingleValue(p.extractText(text)), true
	}
}

// extractYesNo scans affirmative tokens before negative ones; a reply
// matching neither is decided by coin flip.
func (p *Parser) extractYesNo(lower string) string {
	for _, token := range affirmativeTokens {
		if strings.Contains(lower, token) {
			return "yes"
		}
	}
	for _, token := range negativeTokens {
		if strings.Contains(lower, token) {
			return "no"
		}
	}
	return p.rng.Pick([]string{"yes", "no"})
}

// extractChoice returns the first option whose label or value appears in the
// reply, else a uniformly random option.
func (p *Parser) extractChoice(options []poll.Option, lower string) string {
	for _, opt := range options {
		if label := strings.ToLower(opt.Label); label != "" && strings.Contains(lower, label) {
			return opt.Selection()
		}
		if value := strings.ToLower(opt.Value); value != "" && strings.Contains(lower, value) {
			return opt.Selection()
		}
	}
	return options[p.rng.Between(0, len(options)-1)].Selection()
}

// extractRating returns the first standalone 1-10 in the reply, else a
// moderate random rating.
func (p *Parser) extractRating(text string) string {
	if m := ratingPattern.FindString(text); m != "" {
		return m
	}
	return strconv.Itoa(p.rng.Between(3, 7))
}

func (p *Parser) extractText(text string) string {
	if text == "" {
		return notSurePhrase
	}
	if runes := []rune(text); len(runes) > maxTextLength {
		return string(runes[:maxTextLength]) + "..."
	}
	return text
}
