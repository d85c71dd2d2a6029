package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	apperrors "task-manager.com/task-manager/internal/errors"
	repository "task-manager.com/task-manager/internal/repositories"
	model "task-manager.com/task-manager/pkg/models"
)

var errInputClosed = errors.New("input closed")

type Options struct {
	// NotifyUnrecognized prints a message for menu input that matches no
	// option; otherwise the menu is shown again silently.
	NotifyUnrecognized bool
	// PauseAfterAction asks for a line before going back to the menu.
	PauseAfterAction bool
}

// Controller drives one interactive session. It owns the input, the output
// and the repository for the whole session and releases the input and the
// repository when Run returns.
type Controller struct {
	repo   repository.TaskRepository
	input  io.Reader
	lines  *bufio.Reader
	out    io.Writer
	styles styles
	logger *log.Logger
	opts   Options

	state State
	// snapshot is the last list shown for selection; ids typed by the user
	// are resolved against it.
	snapshot []model.Task
}

func NewController(repo repository.TaskRepository, in io.Reader, out io.Writer, logger *log.Logger, opts Options) *Controller {
	if logger == nil {
		logger = log.Default()
	}

	return &Controller{
		repo:   repo,
		input:  in,
		lines:  bufio.NewReader(in),
		out:    out,
		styles: newStyles(out),
		logger: logger,
		opts:   opts,
		state:  StateBootstrapping,
	}
}

func (c *Controller) State() State {
	return c.state
}

// Run bootstraps the schema and loops over the menu until the user quits or
// the input ends. Only a bootstrap failure or an unreadable input is
// returned; failed actions are reported and the menu is shown again.
func (c *Controller) Run(ctx context.Context) error {
	defer c.release()

	for c.state != StateTerminated {
		next, err := c.step(ctx)
		if err != nil {
			return err
		}
		c.state = next
	}

	c.say(farewellMessage)
	return nil
}

func (c *Controller) step(ctx context.Context) (State, error) {
	switch c.state {
	case StateBootstrapping:
		if err := c.repo.EnsureSchema(ctx); err != nil {
			return StateTerminated, fmt.Errorf("bootstrap: %w", err)
		}
		c.say(greetingMessage)
		return StateMainMenu, nil
	case StateMainMenu:
		return c.mainMenu(ctx)
	}
	return c.perform(ctx)
}

func (c *Controller) mainMenu(ctx context.Context) (State, error) {
	c.renderMenu()
	answer, err := c.ask(ctx, menuQuestion)
	if err != nil {
		return c.stop(err)
	}

	action := ParseAction(answer)
	if action == ActionUnrecognized {
		if c.opts.NotifyUnrecognized {
			c.warn(invalidOptionMessage)
		}
		return StateMainMenu, nil
	}
	return action.State(), nil
}

func (c *Controller) perform(ctx context.Context) (State, error) {
	var err error
	switch c.state {
	case StateListing:
		err = c.listAll(ctx)
	case StateFilteringByStatus:
		err = c.filterByStatus(ctx)
	case StateFilteringByKeyword:
		err = c.filterByKeyword(ctx)
	case StateSortingByPriority:
		err = c.sortByPriority(ctx)
	case StateSortingByDate:
		err = c.sortByDate(ctx)
	case StateAdding:
		err = c.add(ctx)
	case StateDeleting:
		err = c.delete(ctx)
	case StateUpdating:
		err = c.update(ctx)
	default:
		return StateTerminated, fmt.Errorf("session: no handler for state %s", c.state)
	}

	if err != nil {
		if endsSession(err) {
			return c.stop(err)
		}
		c.logger.Printf("%s failed: %v", c.state, err)
		c.fail(failureMessage)
	}

	return c.pause(ctx)
}

func (c *Controller) pause(ctx context.Context) (State, error) {
	if !c.opts.PauseAfterAction {
		return StateMainMenu, nil
	}
	answer, err := c.ask(ctx, returnPrompt)
	if err != nil {
		return c.stop(err)
	}
	// A menu option typed here is run directly; anything else shows the menu.
	if action := ParseAction(answer); action != ActionUnrecognized {
		return action.State(), nil
	}
	return StateMainMenu, nil
}

// stop terminates the session. End of input and cancellation are normal
// exits; anything else is returned.
func (c *Controller) stop(err error) (State, error) {
	if endsSession(err) {
		return StateTerminated, nil
	}
	return StateTerminated, err
}

func endsSession(err error) bool {
	return errors.Is(err, errInputClosed) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func (c *Controller) ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprintln(c.out, question)
	line, err := c.lines.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read input: %w", err)
		}
		// A last line without a newline still counts as an answer.
		if line == "" {
			return "", errInputClosed
		}
	}
	return strings.TrimSpace(line), nil
}

func (c *Controller) release() {
	if closer, ok := c.input.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			c.logger.Printf("close input: %v", err)
		}
	}
	if err := c.repo.Close(); err != nil {
		c.logger.Printf("close storage: %v", err)
	}
}

func (c *Controller) listAll(ctx context.Context) error {
	tasks, err := c.repo.ListAll(ctx)
	if err != nil {
		return err
	}
	c.snapshot = tasks
	c.renderTasks("Here are your current tasks.", noTasksMessage, tasks)
	return nil
}

func (c *Controller) filterByStatus(ctx context.Context) error {
	status, err := c.ask(ctx, "Which status would you find tasks by ? "+statusHint)
	if err != nil {
		return err
	}

	tasks, err := c.repo.ListByStatus(ctx, status)
	if err != nil {
		return err
	}
	c.renderTasks(fmt.Sprintf("Here are your tasks with %s status:", status), noMatchMessage, tasks)
	return nil
}

func (c *Controller) filterByKeyword(ctx context.Context) error {
	keyword, err := c.ask(ctx, "Which keyword would you like to filter by ?")
	if err != nil {
		return err
	}

	tasks, err := c.repo.ListByDescriptionKeyword(ctx, keyword)
	if err != nil {
		return err
	}
	c.renderTasks(fmt.Sprintf("Here are your tasks matching %q:", keyword), noMatchMessage, tasks)
	return nil
}

func (c *Controller) sortByPriority(ctx context.Context) error {
	tasks, err := c.repo.ListOrderedByPriorityDesc(ctx)
	if err != nil {
		return err
	}
	c.renderTasks("Here are your tasks filtered by top priority:", noTasksMessage, tasks)
	return nil
}

func (c *Controller) sortByDate(ctx context.Context) error {
	tasks, err := c.repo.ListOrderedByCreatedAtAsc(ctx)
	if err != nil {
		return err
	}
	c.renderTasks("Here are your tasks filtered by creation date, oldest first:", noTasksMessage, tasks)
	return nil
}

func (c *Controller) add(ctx context.Context) error {
	label, err := c.ask(ctx, "What is your new task label ?")
	if err != nil {
		return err
	}
	description, err := c.ask(ctx, "Any description for it ?")
	if err != nil {
		return err
	}
	status, err := c.ask(ctx, "Alright, which status should have this task ? "+statusHint)
	if err != nil {
		return err
	}
	rawPriority, err := c.ask(ctx, "Which priority should it have ? (higher comes first)")
	if err != nil {
		return err
	}

	if label == "" || status == "" {
		c.warn(requiredFieldMessage)
		return nil
	}

	priority := 0
	if rawPriority != "" {
		priority, err = strconv.Atoi(rawPriority)
		if err != nil {
			c.warn(priorityNotANumber)
			return nil
		}
	}

	created, err := c.repo.Create(ctx, model.Task{
		Label:       label,
		Description: description,
		Status:      status,
		Priority:    priority,
	})
	if err != nil {
		return err
	}

	c.succeed("New task successfully added!")
	fmt.Fprintln(c.out, formatTask(*created))
	return nil
}

func (c *Controller) delete(ctx context.Context) error {
	task, err := c.selectTask(ctx, "Which one would you delete ? (Enter task number)")
	if err != nil || task == nil {
		return err
	}

	if err := c.repo.Delete(ctx, task.ID); err != nil {
		return err
	}

	c.succeed(fmt.Sprintf("Task %q successfully deleted.", task.Label))
	return nil
}

func (c *Controller) update(ctx context.Context) error {
	task, err := c.selectTask(ctx, "Which one would you update status ? (Enter task number)")
	if err != nil || task == nil {
		return err
	}

	status, err := c.ask(ctx, "Great, which status would you apply to that task ? "+statusHint)
	if err != nil {
		return err
	}
	if status == "" {
		c.warn(statusRequired)
		return nil
	}

	if err := c.repo.UpdateStatus(ctx, task.ID, status); err != nil {
		return err
	}

	c.succeed(fmt.Sprintf("Task %s status successfully updated to %s.", task.Label, status))
	return nil
}

// selectTask lists every task and asks for one by id. It returns a nil task
// when there is nothing to select or the answer matches no listed task.
func (c *Controller) selectTask(ctx context.Context, question string) (*model.Task, error) {
	tasks, err := c.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	c.snapshot = tasks

	c.renderTasks("Here are your current tasks.", noTasksMessage, tasks)
	if len(tasks) == 0 {
		return nil, nil
	}

	answer, err := c.ask(ctx, question)
	if err != nil {
		return nil, err
	}

	task, err := c.resolve(answer)
	if errors.Is(err, apperrors.ErrTaskNotFound) {
		c.warn(invalidTaskMessage)
		return nil, nil
	}
	return task, err
}

func (c *Controller) resolve(answer string) (*model.Task, error) {
	id, err := strconv.ParseUint(answer, 10, 64)
	if err != nil {
		return nil, apperrors.ErrTaskNotFound
	}

	for i := range c.snapshot {
		if c.snapshot[i].ID == uint(id) {
			return &c.snapshot[i], nil
		}
	}
	return nil, apperrors.ErrTaskNotFound
}
