package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/prepsphere/backend/internal/app/models/dto"
	"github.com/prepsphere/backend/internal/pkg/ai"
	"github.com/prepsphere/backend/internal/pkg/logger"
	"github.com/prepsphere/backend/internal/pkg/metrics"
)

const maxQuestionFeedback = 3

const feedbackPromptTemplate = `You are an experienced technical interviewer evaluating a mock interview for the role of %s.

Review the candidate's answers below and respond with JSON only, no markdown, matching exactly this schema:
{
  "score": <integer 0-100>,
  "feedback": "<2-3 sentence overall assessment>",
  "questionFeedback": [{"question": "<question>", "comment": "<1 sentence comment>"}]
}

Include at most %d entries in questionFeedback, picking the answers that most need improvement.

Interview transcript:
%s`

// InterviewService produces AI feedback for finished mock interviews
type InterviewService interface {
	Feedback(ctx context.Context, req *dto.InterviewFeedbackRequest) (*dto.InterviewFeedbackResponse, error)
}

type interviewServiceImpl struct {
	client ai.Client
}

// NewInterviewService creates a new InterviewService. A nil client means
// every request is served from the canned fallback.
func NewInterviewService(client ai.Client) InterviewService {
	return &interviewServiceImpl{client: client}
}

// Feedback asks the completion backend to grade the interview. Any failure,
// from transport errors to malformed JSON, degrades to a canned response so
// students always get something back.
func (s *interviewServiceImpl) Feedback(ctx context.Context, req *dto.InterviewFeedbackRequest) (*dto.InterviewFeedbackResponse, error) {
	metrics.InterviewFeedbackRequests.Inc()

	if s.client == nil {
		metrics.InterviewFeedbackFallbacks.Inc()
		return fallbackFeedback(req), nil
	}

	raw, err := s.client.Complete(ctx, buildFeedbackPrompt(req))
	if err != nil {
		logger.Warn().Err(err).Msg("Interview feedback completion failed, using fallback")
		metrics.InterviewFeedbackFallbacks.Inc()
		return fallbackFeedback(req), nil
	}

	resp, err := parseFeedback(raw)
	if err != nil {
		logger.Warn().Err(err).Msg("Interview feedback response unparseable, using fallback")
		metrics.InterviewFeedbackFallbacks.Inc()
		return fallbackFeedback(req), nil
	}

	return resp, nil
}

func buildFeedbackPrompt(req *dto.InterviewFeedbackRequest) string {
	var transcript strings.Builder
	for i, a := range req.Answers {
		fmt.Fprintf(&transcript, "Q%d: %s\nA%d: %s\n\n", i+1, a.Question, i+1, a.Answer)
	}
	return fmt.Sprintf(feedbackPromptTemplate, req.Role, maxQuestionFeedback, transcript.String())
}

// parseFeedback validates the model output strictly. Anything outside the
// schema is treated as a failure.
func parseFeedback(raw string) (*dto.InterviewFeedbackResponse, error) {
	// Models sometimes wrap JSON in a code fence despite instructions
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var resp dto.InterviewFeedbackResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("invalid feedback JSON: %w", err)
	}

	if resp.Score < 0 || resp.Score > 100 {
		return nil, fmt.Errorf("score %d out of range", resp.Score)
	}
	if resp.Feedback == "" {
		return nil, fmt.Errorf("empty feedback text")
	}
	if len(resp.QuestionFeedback) > maxQuestionFeedback {
		resp.QuestionFeedback = resp.QuestionFeedback[:maxQuestionFeedback]
	}
	if resp.QuestionFeedback == nil {
		resp.QuestionFeedback = []dto.QuestionFeedback{}
	}

	return &resp, nil
}

// fallbackFeedback is the canned evaluation used when the AI backend is
// unavailable or returns garbage.
func fallbackFeedback(req *dto.InterviewFeedbackRequest) *dto.InterviewFeedbackResponse {
	qf := make([]dto.QuestionFeedback, 0, maxQuestionFeedback)
	for i, a := range req.Answers {
		if i == maxQuestionFeedback {
			break
		}
		qf = append(qf, dto.QuestionFeedback{
			Question: a.Question,
			Comment:  "Review this answer with a mentor and practice structuring it with a concrete example.",
		})
	}

	return &dto.InterviewFeedbackResponse{
		Score: 70,
		Feedback: "We could not generate a detailed AI evaluation right now. " +
			"Based on a completed interview, focus on structuring answers with specific examples and measurable outcomes, then try again later.",
		QuestionFeedback: qf,
	}
}
