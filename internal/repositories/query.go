package repository

import (
	"cmp"
	"slices"
	"strings"

	model "task-manager.com/task-manager/pkg/models"
)

const likeEscape = "!"

// likePattern builds a lower-cased LIKE pattern matching keyword anywhere,
// with the wildcard characters escaped by likeEscape.
func likePattern(keyword string) string {
	escaped := strings.NewReplacer(
		likeEscape, likeEscape+likeEscape,
		"%", likeEscape+"%",
		"_", likeEscape+"_",
	).Replace(strings.ToLower(keyword))
	return "%" + escaped + "%"
}

func matchesKeyword(task model.Task, keyword string) bool {
	return strings.Contains(strings.ToLower(task.Description), strings.ToLower(keyword))
}

func filterTasks(tasks []model.Task, keep func(model.Task) bool) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if keep(task) {
			out = append(out, task)
		}
	}
	return out
}

func byStatus(status string) func(model.Task) bool {
	return func(task model.Task) bool { return task.Status == status }
}

func byKeyword(keyword string) func(model.Task) bool {
	return func(task model.Task) bool { return matchesKeyword(task, keyword) }
}

func sortByID(tasks []model.Task) {
	slices.SortFunc(tasks, func(a, b model.Task) int { return cmp.Compare(a.ID, b.ID) })
}

func sortByPriorityDesc(tasks []model.Task) {
	slices.SortFunc(tasks, func(a, b model.Task) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

func sortByCreatedAtAsc(tasks []model.Task) {
	slices.SortFunc(tasks, func(a, b model.Task) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
