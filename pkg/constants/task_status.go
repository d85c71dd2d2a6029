package constants

// Statuses are free text; these are the values offered in prompts.
const (
	StatusTodo       = "Todo"
	StatusInProgress = "In progress"
	StatusDone       = "Done"
)

var SuggestedStatuses = []string{StatusTodo, StatusInProgress, StatusDone}
