package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperrors "task-manager.com/task-manager/internal/errors"
	repository "task-manager.com/task-manager/internal/repositories"
	"task-manager.com/task-manager/pkg/constants"
	model "task-manager.com/task-manager/pkg/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	return db
}

func newSQLiteRepository(t *testing.T) *repository.SQLTaskRepository {
	repo := repository.NewSQLTaskRepository(setupTestDB(t))
	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("failed to ensure schema: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

type repoFactory func(t *testing.T) repository.TaskRepository

func mustCreate(t *testing.T, repo repository.TaskRepository, task model.Task) *model.Task {
	t.Helper()
	created, err := repo.Create(context.Background(), task)
	if err != nil {
		t.Fatalf("failed to create task %q: %v", task.Label, err)
	}
	return created
}

func mustListAll(t *testing.T, repo repository.TaskRepository) []model.Task {
	t.Helper()
	tasks, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("failed to list tasks: %v", err)
	}
	return tasks
}

func ids(tasks []model.Task) []uint {
	out := make([]uint, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, task.ID)
	}
	return out
}

func equalIDs(got []model.Task, want ...uint) bool {
	g := ids(got)
	if len(g) != len(want) {
		return false
	}
	for i := range g {
		if g[i] != want[i] {
			return false
		}
	}
	return true
}

// runContract checks the behaviour every TaskRepository backend must share.
func runContract(t *testing.T, newRepo repoFactory) {
	ctx := context.Background()

	t.Run("EnsureSchemaIsIdempotent", func(t *testing.T) {
		repo := newRepo(t)
		if err := repo.EnsureSchema(ctx); err != nil {
			t.Fatalf("second EnsureSchema failed: %v", err)
		}
		if err := repo.EnsureSchema(ctx); err != nil {
			t.Fatalf("third EnsureSchema failed: %v", err)
		}
	})

	t.Run("ListAllOnEmptyStore", func(t *testing.T) {
		repo := newRepo(t)
		tasks, err := repo.ListAll(ctx)
		if err != nil {
			t.Fatalf("ListAll failed: %v", err)
		}
		if tasks == nil || len(tasks) != 0 {
			t.Errorf("expected an empty, non-nil slice, got %#v", tasks)
		}
	})

	t.Run("CreateAssignsFreshIDs", func(t *testing.T) {
		repo := newRepo(t)
		first := mustCreate(t, repo, model.Task{Label: "Write report", Description: "Q3 numbers", Status: constants.StatusTodo, Priority: 2})
		second := mustCreate(t, repo, model.Task{Label: "Call Bob", Status: constants.StatusInProgress})

		if first.ID == 0 || second.ID == 0 {
			t.Fatalf("expected ids to be assigned, got %d and %d", first.ID, second.ID)
		}
		if first.ID == second.ID {
			t.Fatalf("expected distinct ids, both are %d", first.ID)
		}
		if first.CreatedAt.IsZero() || !first.UpdatedAt.Equal(first.CreatedAt) {
			t.Errorf("expected created_at == updated_at != zero, got %v / %v", first.CreatedAt, first.UpdatedAt)
		}

		tasks := mustListAll(t, repo)
		if !equalIDs(tasks, first.ID, second.ID) {
			t.Fatalf("expected ids [%d %d], got %v", first.ID, second.ID, ids(tasks))
		}
		got := tasks[0]
		if got.Label != "Write report" || got.Description != "Q3 numbers" || got.Status != constants.StatusTodo || got.Priority != 2 {
			t.Errorf("stored task does not match input: %+v", got)
		}
		if !got.CreatedAt.Equal(first.CreatedAt) {
			t.Errorf("expected created_at %v, got %v", first.CreatedAt, got.CreatedAt)
		}
	})

	t.Run("IDsAreNotReusedAfterDelete", func(t *testing.T) {
		repo := newRepo(t)
		first := mustCreate(t, repo, model.Task{Label: "a", Status: constants.StatusTodo})
		second := mustCreate(t, repo, model.Task{Label: "b", Status: constants.StatusTodo})
		if err := repo.Delete(ctx, second.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		third := mustCreate(t, repo, model.Task{Label: "c", Status: constants.StatusTodo})
		if third.ID == first.ID || third.ID == second.ID {
			t.Errorf("expected a fresh id, got %d (previous %d, %d)", third.ID, first.ID, second.ID)
		}
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		repo := newRepo(t)
		keep := mustCreate(t, repo, model.Task{Label: "keep", Status: constants.StatusTodo})
		gone := mustCreate(t, repo, model.Task{Label: "gone", Status: constants.StatusTodo})

		for i := 0; i < 2; i++ {
			if err := repo.Delete(ctx, gone.ID); err != nil {
				t.Fatalf("Delete #%d failed: %v", i+1, err)
			}
			if tasks := mustListAll(t, repo); !equalIDs(tasks, keep.ID) {
				t.Fatalf("after delete #%d expected only %d, got %v", i+1, keep.ID, ids(tasks))
			}
		}
	})

	t.Run("UpdateStatusChangesOnlyStatus", func(t *testing.T) {
		repo := newRepo(t)
		created := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
		task := mustCreate(t, repo, model.Task{
			Label:       "Write report",
			Description: "draft",
			Status:      constants.StatusTodo,
			Priority:    4,
			CreatedAt:   created,
		})
		other := mustCreate(t, repo, model.Task{Label: "other", Status: constants.StatusTodo})

		if err := repo.UpdateStatus(ctx, task.ID, constants.StatusDone); err != nil {
			t.Fatalf("UpdateStatus failed: %v", err)
		}

		tasks := mustListAll(t, repo)
		if !equalIDs(tasks, task.ID, other.ID) {
			t.Fatalf("expected ids [%d %d], got %v", task.ID, other.ID, ids(tasks))
		}
		got := tasks[0]
		if got.Status != constants.StatusDone {
			t.Errorf("expected status %s, got %s", constants.StatusDone, got.Status)
		}
		if got.Label != "Write report" || got.Description != "draft" || got.Priority != 4 || !got.CreatedAt.Equal(created) {
			t.Errorf("fields other than status changed: %+v", got)
		}
		if !got.UpdatedAt.After(created) {
			t.Errorf("expected updated_at to be refreshed after %v, got %v", created, got.UpdatedAt)
		}
		if tasks[1].Status != constants.StatusTodo {
			t.Errorf("unrelated task changed status to %s", tasks[1].Status)
		}
	})

	t.Run("UpdateStatusOfUnknownIDIsNoop", func(t *testing.T) {
		repo := newRepo(t)
		task := mustCreate(t, repo, model.Task{Label: "a", Status: constants.StatusTodo})

		if err := repo.UpdateStatus(ctx, task.ID+100, constants.StatusDone); err != nil {
			t.Fatalf("expected no error for unknown id, got %v", err)
		}
		tasks := mustListAll(t, repo)
		if len(tasks) != 1 || tasks[0].Status != constants.StatusTodo {
			t.Errorf("store changed: %+v", tasks)
		}
	})

	t.Run("ListByStatusIsExact", func(t *testing.T) {
		repo := newRepo(t)
		a := mustCreate(t, repo, model.Task{Label: "a", Status: "Todo"})
		mustCreate(t, repo, model.Task{Label: "b", Status: "todo"})
		mustCreate(t, repo, model.Task{Label: "c", Status: "Done"})
		d := mustCreate(t, repo, model.Task{Label: "d", Status: "Todo"})

		tasks, err := repo.ListByStatus(ctx, "Todo")
		if err != nil {
			t.Fatalf("ListByStatus failed: %v", err)
		}
		if !equalIDs(tasks, a.ID, d.ID) {
			t.Errorf("expected ids [%d %d], got %v", a.ID, d.ID, ids(tasks))
		}

		none, err := repo.ListByStatus(ctx, "Blocked")
		if err != nil {
			t.Fatalf("ListByStatus failed: %v", err)
		}
		if len(none) != 0 {
			t.Errorf("expected no tasks, got %v", ids(none))
		}
	})

	t.Run("ListByDescriptionKeyword", func(t *testing.T) {
		repo := newRepo(t)
		quarterly := mustCreate(t, repo, model.Task{Label: "a", Description: "Quarterly REPORT", Status: "Todo"})
		draft := mustCreate(t, repo, model.Task{Label: "b", Description: "report draft", Status: "Todo"})
		percent := mustCreate(t, repo, model.Task{Label: "c", Description: "100% done", Status: "Done"})
		mustCreate(t, repo, model.Task{Label: "d", Description: "nothing here", Status: "Todo"})

		cases := []struct {
			keyword string
			want    []uint
		}{
			{"report", []uint{quarterly.ID, draft.ID}},
			{"Report", []uint{quarterly.ID, draft.ID}},
			{"%", []uint{percent.ID}},
			{"_", nil},
			{"missing", nil},
		}

		for _, tc := range cases {
			tasks, err := repo.ListByDescriptionKeyword(ctx, tc.keyword)
			if err != nil {
				t.Fatalf("ListByDescriptionKeyword(%q) failed: %v", tc.keyword, err)
			}
			if !equalIDs(tasks, tc.want...) {
				t.Errorf("keyword %q: expected %v, got %v", tc.keyword, tc.want, ids(tasks))
			}
		}
	})

	t.Run("ListOrderedByPriorityDesc", func(t *testing.T) {
		repo := newRepo(t)
		low := mustCreate(t, repo, model.Task{Label: "low", Status: "Todo", Priority: 1})
		highA := mustCreate(t, repo, model.Task{Label: "high a", Status: "Todo", Priority: 5})
		highB := mustCreate(t, repo, model.Task{Label: "high b", Status: "Todo", Priority: 5})
		mid := mustCreate(t, repo, model.Task{Label: "mid", Status: "Todo", Priority: 3})

		tasks, err := repo.ListOrderedByPriorityDesc(ctx)
		if err != nil {
			t.Fatalf("ListOrderedByPriorityDesc failed: %v", err)
		}
		if !equalIDs(tasks, highA.ID, highB.ID, mid.ID, low.ID) {
			t.Errorf("expected %v, got %v", []uint{highA.ID, highB.ID, mid.ID, low.ID}, ids(tasks))
		}
	})

	t.Run("ListOrderedByCreatedAtAsc", func(t *testing.T) {
		repo := newRepo(t)
		base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
		newest := mustCreate(t, repo, model.Task{Label: "newest", Status: "Todo", CreatedAt: base.Add(2 * time.Hour)})
		oldest := mustCreate(t, repo, model.Task{Label: "oldest", Status: "Todo", CreatedAt: base})
		tieA := mustCreate(t, repo, model.Task{Label: "tie a", Status: "Todo", CreatedAt: base.Add(time.Hour)})
		tieB := mustCreate(t, repo, model.Task{Label: "tie b", Status: "Todo", CreatedAt: base.Add(time.Hour)})

		tasks, err := repo.ListOrderedByCreatedAtAsc(ctx)
		if err != nil {
			t.Fatalf("ListOrderedByCreatedAtAsc failed: %v", err)
		}
		if !equalIDs(tasks, oldest.ID, tieA.ID, tieB.ID, newest.ID) {
			t.Errorf("expected %v, got %v", []uint{oldest.ID, tieA.ID, tieB.ID, newest.ID}, ids(tasks))
		}
	})

	t.Run("ListOrderedByCreatedAtAscAcrossOffsets", func(t *testing.T) {
		repo := newRepo(t)
		plusTwo := time.FixedZone("+02:00", 2*60*60)
		later := mustCreate(t, repo, model.Task{Label: "09:00 UTC", Status: "Todo", CreatedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)})
		earlier := mustCreate(t, repo, model.Task{Label: "08:00 UTC", Status: "Todo", CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, plusTwo)})

		if want := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC); !earlier.CreatedAt.Equal(want) {
			t.Errorf("expected created_at %v, got %v", want, earlier.CreatedAt)
		}

		tasks, err := repo.ListOrderedByCreatedAtAsc(ctx)
		if err != nil {
			t.Fatalf("ListOrderedByCreatedAtAsc failed: %v", err)
		}
		if !equalIDs(tasks, earlier.ID, later.ID) {
			t.Errorf("expected %v, got %v", []uint{earlier.ID, later.ID}, ids(tasks))
		}
		for i := 1; i < len(tasks); i++ {
			if tasks[i].CreatedAt.Before(tasks[i-1].CreatedAt) {
				t.Errorf("created_at decreases at %d: %v after %v", i, tasks[i].CreatedAt, tasks[i-1].CreatedAt)
			}
		}
	})

	t.Run("EndToEndScenario", func(t *testing.T) {
		repo := newRepo(t)
		task := mustCreate(t, repo, model.Task{Label: "Write report", Status: constants.StatusTodo})

		tasks := mustListAll(t, repo)
		if len(tasks) != 1 || tasks[0].Label != "Write report" || tasks[0].Status != constants.StatusTodo {
			t.Fatalf("unexpected tasks after create: %+v", tasks)
		}

		if err := repo.UpdateStatus(ctx, task.ID, constants.StatusDone); err != nil {
			t.Fatalf("UpdateStatus failed: %v", err)
		}
		tasks = mustListAll(t, repo)
		if len(tasks) != 1 || tasks[0].ID != task.ID || tasks[0].Status != constants.StatusDone {
			t.Fatalf("unexpected tasks after update: %+v", tasks)
		}

		if err := repo.Delete(ctx, task.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if tasks = mustListAll(t, repo); len(tasks) != 0 {
			t.Fatalf("expected empty store, got %+v", tasks)
		}
	})
}

func assertStorageUnavailable(t *testing.T, op string, err error) {
	t.Helper()
	if !errors.Is(err, apperrors.ErrStorageUnavailable) {
		t.Errorf("%s: expected storage unavailable error, got %v", op, err)
	}
}
