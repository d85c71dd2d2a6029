package session

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"task-manager.com/task-manager/pkg/constants"
	model "task-manager.com/task-manager/pkg/models"
)

const (
	greetingMessage      = "Hey and welcome to your perfect task manager !"
	farewellMessage      = "See you later !"
	menuQuestion         = "Which option would you like ?"
	invalidOptionMessage = "Please select a valid option"
	returnPrompt         = "Press * to return to main menu"
	noTasksMessage       = "No tasks yet, please create one."
	noMatchMessage       = "No tasks match your search."
	invalidTaskMessage   = "Invalid task ID. Please try again."
	failureMessage       = "An error occurred, please try again."
	requiredFieldMessage = "Label and status are required."
	statusRequired       = "Status is required."
	priorityNotANumber   = "Priority must be a number."

	timeLayout = "2006-01-02 15:04:05"
)

// statusHint lists the suggested statuses, e.g. "(Todo - In progress - Done)".
var statusHint = "(" + strings.Join(constants.SuggestedStatuses, " - ") + ")"

// styles are bound to the session's output, so they render as plain text
// when it is not a terminal.
type styles struct {
	title   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		title:   r.NewStyle().Bold(true),
		success: r.NewStyle().Foreground(lipgloss.Color("42")),
		warning: r.NewStyle().Foreground(lipgloss.Color("214")),
		failure: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		muted:   r.NewStyle().Faint(true),
	}
}

func (c *Controller) print(style lipgloss.Style, msg string) {
	fmt.Fprintln(c.out, style.Render(msg))
}

func (c *Controller) say(msg string)     { c.print(c.styles.title, msg) }
func (c *Controller) succeed(msg string) { c.print(c.styles.success, "✔ "+msg) }
func (c *Controller) warn(msg string)    { c.print(c.styles.warning, msg) }
func (c *Controller) fail(msg string)    { c.print(c.styles.failure, "✖ "+msg) }

func (c *Controller) renderMenu() {
	c.say("Press:")
	for _, entry := range menu {
		fmt.Fprintf(c.out, "%s. %s\n", entry.key, entry.label)
	}
}

func (c *Controller) renderTasks(header, empty string, tasks []model.Task) {
	if len(tasks) == 0 {
		c.print(c.styles.muted, empty)
		return
	}

	c.say(header)
	for _, task := range tasks {
		fmt.Fprintln(c.out, formatTask(task))
	}
}

func formatTask(task model.Task) string {
	return fmt.Sprintf("%d -> Label: %s - Description: %s - Status: %s - Priority: %d - Created: %s",
		task.ID, task.Label, task.Description, task.Status, task.Priority,
		task.CreatedAt.UTC().Format(timeLayout))
}
