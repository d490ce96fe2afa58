package grading

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/msc-labs/evaluate-backend/internal/config"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

// FallbackScore is applied whenever the oracle's reply cannot be reduced to a
// number, the call fails, or it times out. The prototype used 0, 5 and a
// 10-point scale in different call sites; 0 is the one policy here.
const FallbackScore = 0

// Evaluation is the structured grading verdict for one free-text answer.
// Score stays a string because the oracle emits it inconsistently (a bare
// number, a quoted number, "N/A"); NumericScore reduces it defensively.
type Evaluation struct {
	Score         string `json:"score"`
	Evaluation    string `json:"evaluation"`
	Justification string `json:"justification"`
	Suggestions   string `json:"suggestions"`
}

// OracleClient grades free-text answers against a reference answer through an
// OpenAI-compatible chat completion endpoint.
type OracleClient struct {
	api     *openai.Client
	model   string
	timeout time.Duration
	log     zerolog.Logger
}

// NewOracleClient creates a grading oracle client from configuration.
func NewOracleClient(cfg *config.Config, log zerolog.Logger) *OracleClient {
	apiCfg := openai.DefaultConfig(cfg.OracleAPIKey)
	if cfg.OracleBaseURL != "" {
		apiCfg.BaseURL = cfg.OracleBaseURL
	}
	return &OracleClient{
		api:     openai.NewClientWithConfig(apiCfg),
		model:   cfg.OracleModel,
		timeout: cfg.OracleTimeout,
		log:     log.With().Str("component", "grading_oracle").Logger(),
	}
}

// Grade evaluates a single answer. It never returns an error: oracle failures,
// timeouts and unparseable replies are absorbed into a fallback evaluation so
// one bad answer cannot abort the rest of a submission.
func (c *OracleClient) Grade(ctx context.Context, userAnswer, exampleAnswer string) Evaluation {
	// Without a reference answer there is nothing to compare against; skip the
	// remote call entirely.
	if exampleAnswer == "" {
		return Evaluation{
			Score:         "N/A",
			Evaluation:    "No example answer provided for comparison",
			Justification: "Cannot evaluate without reference answer",
			Suggestions:   "Please provide an example answer in the template",
		}
	}

	if userAnswer == "" {
		return Evaluation{
			Score:      strconv.Itoa(FallbackScore),
			Evaluation: "No answer provided",
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: oracleSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildGradingPrompt(userAnswer, exampleAnswer)},
		},
		Temperature: 0.3,
	})
	if err != nil {
		c.log.Warn().Err(err).Msg("Oracle call failed, using fallback score")
		return Evaluation{
			Score:         strconv.Itoa(FallbackScore),
			Evaluation:    "Failed to evaluate answer",
			Justification: "Grading service unavailable",
		}
	}
	if len(resp.Choices) == 0 {
		c.log.Warn().Msg("Oracle returned no choices, using fallback score")
		return Evaluation{
			Score:         strconv.Itoa(FallbackScore),
			Evaluation:    "Failed to evaluate answer",
			Justification: "Grading service returned an empty reply",
		}
	}

	return ParseEvaluation(resp.Choices[0].Message.Content)
}

// ParseEvaluation extracts a grading verdict from the oracle's raw reply. The
// oracle may wrap the JSON object in prose, so the substring between the first
// '{' and the last '}' is parsed. Replies with no JSON object at all fall back
// to a neutral evaluation carrying the reply text.
func ParseEvaluation(raw string) Evaluation {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return Evaluation{
			Score:      "N/A",
			Evaluation: raw,
		}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw[start:end+1]), &fields); err != nil {
		return Evaluation{
			Score:      "N/A",
			Evaluation: raw,
		}
	}

	return Evaluation{
		Score:         rawToString(fields["score"]),
		Evaluation:    rawToString(fields["evaluation"]),
		Justification: rawToString(fields["justification"]),
		Suggestions:   rawToString(fields["suggestions"]),
	}
}

// NumericScore reduces a score field to a float, tolerating non-numeric noise
// by keeping only digit and decimal characters. Anything unparseable yields
// FallbackScore.
func NumericScore(score string) float64 {
	var b strings.Builder
	for _, r := range score {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return FallbackScore
	}
	return v
}

// rawToString renders a JSON value as plain text: quoted strings lose their
// quotes, numbers and everything else keep their literal form.
func rawToString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

const oracleSystemPrompt = "You are an expert professor who evaluates student answers fairly and accurately. " +
	"You provide scores from 0-100 based on correctness and completeness compared to the reference answer."

func buildGradingPrompt(userAnswer, exampleAnswer string) string {
	var sb strings.Builder
	sb.WriteString("You are an expert professor evaluating student answers. Your task is to compare the student's answer with the reference answer and provide a fair, accurate score.\n\n")
	sb.WriteString("**Student's Answer:**\n")
	sb.WriteString(userAnswer)
	sb.WriteString("\n\n**Reference Answer (Example):**\n")
	sb.WriteString(exampleAnswer)
	sb.WriteString("\n\n**Evaluation Guidelines:**\n")
	sb.WriteString("1. Score from 0-100 based on correctness, completeness, and accuracy\n")
	sb.WriteString("2. If the student's answer matches or closely matches the reference answer, give 90-100\n")
	sb.WriteString("3. If the answer covers most key points but misses some details, give 70-89\n")
	sb.WriteString("4. If the answer is partially correct, give 50-69\n")
	sb.WriteString("5. If the answer is mostly incorrect or incomplete, give below 50\n\n")
	sb.WriteString("**Required Output Format (JSON):**\n")
	sb.WriteString(`{"score": "<numeric score 0-100>", "evaluation": "<brief evaluation of the answer>", "justification": "<explain why this score was given>", "suggestions": "<suggestions for improvement>"}`)
	sb.WriteString("\n\nProvide ONLY the JSON output, no additional text.")
	return sb.String()
}
