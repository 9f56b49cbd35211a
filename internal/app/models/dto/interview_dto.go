package dto

// InterviewAnswer pairs one interview question with the student's answer
type InterviewAnswer struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer"`
}

// InterviewFeedbackRequest asks for feedback on a finished mock interview
type InterviewFeedbackRequest struct {
	Role    string            `json:"role" binding:"required"`
	Answers []InterviewAnswer `json:"answers" binding:"required,min=1,dive"`
}

// QuestionFeedback is per-question commentary in the feedback
type QuestionFeedback struct {
	Question string `json:"question"`
	Comment  string `json:"comment"`
}

// InterviewFeedbackResponse is the structured mock interview evaluation
type InterviewFeedbackResponse struct {
	Score            int                `json:"score"`
	Feedback         string             `json:"feedback"`
	QuestionFeedback []QuestionFeedback `json:"questionFeedback"`
}
