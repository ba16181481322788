package auth

// OAuth scopes understood by the workout API.
const (
	ScopeTrainingsSummarize = "trainings:summarize"
	ScopeTrainingsRead      = "trainings:read"
)
