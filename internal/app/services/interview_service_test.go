package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prepsphere/backend/internal/app/models/dto"
)

func feedbackRequest(questions ...string) *dto.InterviewFeedbackRequest {
	req := &dto.InterviewFeedbackRequest{Role: "Backend Engineer"}
	for _, q := range questions {
		req.Answers = append(req.Answers, dto.InterviewAnswer{Question: q, Answer: "some answer"})
	}
	return req
}

func TestInterviewFeedbackWithoutClientFallsBack(t *testing.T) {
	svc := NewInterviewService(nil)

	got, err := svc.Feedback(context.Background(), feedbackRequest("Tell me about yourself"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Score != 70 {
		t.Errorf("expected fallback score 70, got %d", got.Score)
	}
	if len(got.QuestionFeedback) != 1 {
		t.Errorf("expected one question comment, got %d", len(got.QuestionFeedback))
	}
}

func TestInterviewFeedbackClientErrorFallsBack(t *testing.T) {
	svc := NewInterviewService(&fakeAIClient{
		completeFn: func(_ context.Context, _ string) (string, error) {
			return "", errors.New("upstream timeout")
		},
	})

	got, err := svc.Feedback(context.Background(), feedbackRequest("Q1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Score != 70 {
		t.Errorf("expected fallback score 70, got %d", got.Score)
	}
}

func TestInterviewFeedbackMalformedJSONFallsBack(t *testing.T) {
	svc := NewInterviewService(&fakeAIClient{
		completeFn: func(_ context.Context, _ string) (string, error) {
			return "Sure! Here is my evaluation of the interview...", nil
		},
	})

	got, err := svc.Feedback(context.Background(), feedbackRequest("Q1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Score != 70 {
		t.Errorf("expected fallback score 70, got %d", got.Score)
	}
}

func TestInterviewFeedbackOutOfRangeScoreFallsBack(t *testing.T) {
	svc := NewInterviewService(&fakeAIClient{
		completeFn: func(_ context.Context, _ string) (string, error) {
			return `{"score": 150, "feedback": "great", "questionFeedback": []}`, nil
		},
	})

	got, err := svc.Feedback(context.Background(), feedbackRequest("Q1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Score != 70 {
		t.Errorf("expected fallback score 70, got %d", got.Score)
	}
}

func TestInterviewFeedbackParsesFencedJSON(t *testing.T) {
	svc := NewInterviewService(&fakeAIClient{
		completeFn: func(_ context.Context, _ string) (string, error) {
			return "```json\n{\"score\": 82, \"feedback\": \"Solid fundamentals, work on system design depth.\", \"questionFeedback\": [{\"question\": \"Q1\", \"comment\": \"Good structure.\"}]}\n```", nil
		},
	})

	got, err := svc.Feedback(context.Background(), feedbackRequest("Q1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Score != 82 {
		t.Errorf("expected score 82, got %d", got.Score)
	}
	if !strings.Contains(got.Feedback, "Solid fundamentals") {
		t.Errorf("unexpected feedback text %q", got.Feedback)
	}
	if len(got.QuestionFeedback) != 1 || got.QuestionFeedback[0].Comment != "Good structure." {
		t.Errorf("unexpected question feedback %+v", got.QuestionFeedback)
	}
}

func TestInterviewFeedbackTruncatesQuestionComments(t *testing.T) {
	svc := NewInterviewService(&fakeAIClient{
		completeFn: func(_ context.Context, _ string) (string, error) {
			return `{"score": 60, "feedback": "ok", "questionFeedback": [
				{"question": "Q1", "comment": "a"},
				{"question": "Q2", "comment": "b"},
				{"question": "Q3", "comment": "c"},
				{"question": "Q4", "comment": "d"},
				{"question": "Q5", "comment": "e"}
			]}`, nil
		},
	})

	got, err := svc.Feedback(context.Background(), feedbackRequest("Q1", "Q2", "Q3", "Q4", "Q5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.QuestionFeedback) != 3 {
		t.Errorf("expected question feedback capped at 3, got %d", len(got.QuestionFeedback))
	}
}

func TestInterviewFeedbackFallbackCapsQuestionComments(t *testing.T) {
	svc := NewInterviewService(nil)

	got, err := svc.Feedback(context.Background(), feedbackRequest("Q1", "Q2", "Q3", "Q4", "Q5"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.QuestionFeedback) != 3 {
		t.Errorf("expected fallback question feedback capped at 3, got %d", len(got.QuestionFeedback))
	}
}
