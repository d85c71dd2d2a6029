package session

import "strings"

// Action is a main menu choice. Input that matches no menu entry parses to
// ActionUnrecognized.
type Action int

const (
	ActionUnrecognized Action = iota
	ActionList
	ActionFilterByStatus
	ActionFilterByKeyword
	ActionSortByPriority
	ActionSortByDate
	ActionAdd
	ActionDelete
	ActionUpdate
	ActionQuit
)

type menuEntry struct {
	key    string
	action Action
	label  string
}

var menu = []menuEntry{
	{"1", ActionList, "To see all your tasks"},
	{"2", ActionFilterByStatus, "To search a task by status"},
	{"3", ActionFilterByKeyword, "To search a task by its description keywords"},
	{"4", ActionSortByPriority, "To filter tasks by priority"},
	{"5", ActionSortByDate, "To filter tasks by creation date"},
	{"6", ActionAdd, "To add a task"},
	{"7", ActionDelete, "To delete a task"},
	{"8", ActionUpdate, "To update the status of a task"},
	{"9", ActionQuit, "To exit the task manager"},
}

func ParseAction(input string) Action {
	input = strings.TrimSpace(input)
	for _, entry := range menu {
		if entry.key == input {
			return entry.action
		}
	}
	return ActionUnrecognized
}

// State is the controller state an action leads to.
func (a Action) State() State {
	switch a {
	case ActionList:
		return StateListing
	case ActionFilterByStatus:
		return StateFilteringByStatus
	case ActionFilterByKeyword:
		return StateFilteringByKeyword
	case ActionSortByPriority:
		return StateSortingByPriority
	case ActionSortByDate:
		return StateSortingByDate
	case ActionAdd:
		return StateAdding
	case ActionDelete:
		return StateDeleting
	case ActionUpdate:
		return StateUpdating
	case ActionQuit:
		return StateTerminated
	}
	return StateMainMenu
}
