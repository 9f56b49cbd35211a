package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	FileUploads = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "prepsphere_file_uploads_total", Help: "Total document uploads accepted"},
	)
	FileRejections = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "prepsphere_file_rejections_total", Help: "Total document uploads auto-rejected or rejected by reviewers"},
	)
	JobApplications = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "prepsphere_job_applications_total", Help: "Total job applications submitted"},
	)
	EventRegistrations = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "prepsphere_event_registrations_total", Help: "Total event registrations"},
	)
	NotificationsSent = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "prepsphere_notifications_sent_total", Help: "Total notifications written"},
	)
	InterviewFeedbackRequests = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "prepsphere_interview_feedback_total", Help: "Total mock interview feedback requests"},
	)
	InterviewFeedbackFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "prepsphere_interview_feedback_fallbacks_total", Help: "Total feedback requests served from the canned fallback"},
	)
)

func Register() {
	prometheus.MustRegister(
		FileUploads,
		FileRejections,
		JobApplications,
		EventRegistrations,
		NotificationsSent,
		InterviewFeedbackRequests,
		InterviewFeedbackFallbacks,
	)
}
