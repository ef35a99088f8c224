package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"taskmate/internal/storage"
	pkgLog "taskmate/pkg/log"
)

func newTestService(t *testing.T, opts Options) (*Service, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	gw, err := storage.OpenSQLiteGateway(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	n := 0
	if opts.NewID == nil {
		opts.NewID = func() string {
			n++
			return fmt.Sprintf("task-%03d", n)
		}
	}
	svc := NewService(gw, pkgLog.NewNop(), opts)
	cleanup := func() {
		_ = gw.Close()
	}
	return svc, cleanup
}

func mustAddCategory(t *testing.T, svc *Service, name string) {
	t.Helper()
	if _, err := svc.AddCategory(context.Background(), name); err != nil {
		t.Fatalf("AddCategory(%q): %v", name, err)
	}
}

func mustCreate(t *testing.T, svc *Service, in CreateTaskInput) *Task {
	t.Helper()
	task, err := svc.CreateTask(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateTask(%q): %v", in.Title, err)
	}
	return task
}

func TestNextStatusThreeCycle(t *testing.T) {
	for _, s := range Statuses {
		if got := NextStatus(NextStatus(NextStatus(s))); got != s {
			t.Fatalf("NextStatus^3(%q)=%q, want %q", s, got, s)
		}
	}
	if got := NextStatus(StatusTodo); got != StatusPending {
		t.Fatalf("NextStatus(todo)=%q, want pending", got)
	}
	if got := NextStatus(StatusPending); got != StatusDone {
		t.Fatalf("NextStatus(pending)=%q, want done", got)
	}
	if got := NextStatus(StatusDone); got != StatusTodo {
		t.Fatalf("NextStatus(done)=%q, want todo", got)
	}
	if got := NextStatus(Status("archived")); got != StatusTodo {
		t.Fatalf("NextStatus(archived)=%q, want todo", got)
	}
}

func TestSortPriorityThenDueDate(t *testing.T) {
	tasks := []Task{
		{ID: "low-none", Priority: PriorityLow},
		{ID: "high-dated", Priority: PriorityHigh, DueDate: "2025-01-01"},
		{ID: "high-none", Priority: PriorityHigh},
	}
	got := Apply(tasks, Filter{})
	want := []string{"high-dated", "high-none", "low-none"}
	for i := range want {
		if got[i].ID != want[i] {
			t.Fatalf("order[%d]=%s, want %s (got %v)", i, got[i].ID, want[i], ids(got))
		}
	}
	if tasks[0].ID != "low-none" {
		t.Fatalf("Apply modified its input")
	}
}

func TestSortIsStableForTies(t *testing.T) {
	tasks := []Task{
		{ID: "m1", Priority: PriorityMedium},
		{ID: "m2", Priority: PriorityMedium},
		{ID: "m-dated-late", Priority: PriorityMedium, DueDate: "2025-06-01"},
		{ID: "m3", Priority: PriorityMedium},
		{ID: "m-dated-early", Priority: PriorityMedium, DueDate: "2025-02-01"},
		{ID: "m-dated-early-2", Priority: PriorityMedium, DueDate: "2025-02-01"},
	}
	got := ids(Apply(tasks, Filter{}))
	want := []string{"m-dated-early", "m-dated-early-2", "m-dated-late", "m1", "m2", "m3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order=%v, want %v", got, want)
		}
	}
}

func TestFilterConjunctionAndIdempotence(t *testing.T) {
	tasks := []Task{
		{ID: "1", Category: "Kuliah", Priority: PriorityHigh, Status: StatusTodo},
		{ID: "2", Category: "Kuliah", Priority: PriorityLow, Status: StatusDone, DueDate: "2025-03-01"},
		{ID: "3", Category: "Rumah", Priority: PriorityMedium, Status: StatusPending},
		{ID: "4", Category: "Rumah", Priority: PriorityHigh, Status: StatusDone, DueDate: "2024-12-31"},
		{ID: "5", Category: "Umum", Priority: PriorityLow, Status: StatusTodo},
	}

	statuses := []string{"all", "todo", "pending", "done"}
	categories := []string{"all", "Kuliah", "Rumah", "Umum", "Missing"}
	priorities := []string{"all", "Low", "Medium", "High"}

	for _, st := range statuses {
		for _, cat := range categories {
			for _, pr := range priorities {
				f, err := NewFilter(st, cat, pr)
				if err != nil {
					t.Fatalf("NewFilter(%s,%s,%s): %v", st, cat, pr, err)
				}
				got := Apply(tasks, f)
				for _, task := range got {
					if (st != "all" && string(task.Status) != st) ||
						(cat != "all" && task.Category != cat) ||
						(pr != "all" && string(task.Priority) != pr) {
						t.Fatalf("filter %s/%s/%s let through %+v", st, cat, pr, task)
					}
				}
				matching := 0
				for _, task := range tasks {
					if f.Match(task) {
						matching++
					}
				}
				if len(got) != matching {
					t.Fatalf("filter %s/%s/%s returned %d tasks, want %d", st, cat, pr, len(got), matching)
				}
				again := Apply(got, f)
				if fmt.Sprint(ids(again)) != fmt.Sprint(ids(got)) {
					t.Fatalf("filter %s/%s/%s not idempotent: %v then %v", st, cat, pr, ids(got), ids(again))
				}
			}
		}
	}
}

func TestFilterCategoryIgnoresCase(t *testing.T) {
	tasks := []Task{
		{ID: "1", Category: "Kuliah", Priority: PriorityLow},
		{ID: "2", Category: "Rumah", Priority: PriorityLow},
	}
	f, err := NewFilter("all", "kuliah", "all")
	if err != nil {
		t.Fatalf("NewFilter: %v", err)
	}
	got := Apply(tasks, f)
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("Apply(kuliah)=%v, want [1]", ids(got))
	}
}

func TestNewFilter(t *testing.T) {
	f, err := NewFilter("ALL", "", "all")
	if err != nil {
		t.Fatalf("NewFilter: %v", err)
	}
	if f != (Filter{}) {
		t.Fatalf("filter=%+v, want zero", f)
	}

	f, err = NewFilter("Pending", "Kuliah", "high")
	if err != nil {
		t.Fatalf("NewFilter: %v", err)
	}
	if f.Status != StatusPending || f.Category != "Kuliah" || f.Priority != PriorityHigh {
		t.Fatalf("filter=%+v", f)
	}

	if _, err := NewFilter("archived", "all", "all"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err=%v, want ErrInvalidStatus", err)
	}
	if _, err := NewFilter("all", "all", "urgent"); !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("err=%v, want ErrInvalidPriority", err)
	}
}

func TestNormalizeAppliesDefaults(t *testing.T) {
	due := " 2025-05-05 "
	got := Normalize([]storage.Task{
		{ID: "a", Title: "bare"},
		{ID: "b", Title: "odd", Priority: "urgent", Status: "archived", Category: "Kuliah", DueDate: &due},
		{ID: "c", Title: "full", Priority: "medium", Status: "done", Category: "Rumah"},
	}, "Umum")

	if got[0].Priority != PriorityLow || got[0].Status != StatusTodo || got[0].Category != "Umum" || got[0].HasDueDate() {
		t.Fatalf("bare record normalized to %+v", got[0])
	}
	if got[1].Priority != PriorityLow || got[1].Status != StatusTodo || got[1].DueDate != "2025-05-05" {
		t.Fatalf("odd record normalized to %+v", got[1])
	}
	if got[2].Priority != PriorityMedium || got[2].Status != StatusDone || got[2].Category != "Rumah" {
		t.Fatalf("full record normalized to %+v", got[2])
	}
}

func TestAddCategoryPure(t *testing.T) {
	reg, c, err := AddCategory(nil, " Kuliah ")
	if err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	if c.Key != "Kuliah" || c.Color != PickColor(0) {
		t.Fatalf("category=%+v, want Kuliah/%s", c, PickColor(0))
	}

	reg2, _, err := AddCategory(reg, "kuliah")
	if !errors.Is(err, ErrDuplicateCategory) {
		t.Fatalf("err=%v, want ErrDuplicateCategory", err)
	}
	if len(reg2) != 1 {
		t.Fatalf("registry size=%d, want 1", len(reg2))
	}

	if _, _, err := AddCategory(reg, "   "); !errors.Is(err, ErrCategoryNameRequired) {
		t.Fatalf("err=%v, want ErrCategoryNameRequired", err)
	}

	_, c2, err := AddCategory(reg, "Rumah")
	if err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	if c2.Color != PickColor(1) {
		t.Fatalf("second color=%s, want %s", c2.Color, PickColor(1))
	}
}

func TestPickColorCycles(t *testing.T) {
	n := len(CategoryPalette)
	if PickColor(n) != PickColor(0) || PickColor(n+3) != PickColor(3) {
		t.Fatalf("palette does not cycle")
	}
}

func TestColorOfCategoryFallback(t *testing.T) {
	cats := []Category{{Key: "Kuliah", Color: "#3b82f6"}}
	if got := ColorOfCategory("kuliah", cats); got != "#3b82f6" {
		t.Fatalf("color=%s, want #3b82f6", got)
	}
	if got := ColorOfCategory("Gone", cats); got != FallbackCategoryColor {
		t.Fatalf("color=%s, want fallback", got)
	}
}

func TestServiceCategoryDuplicateRejected(t *testing.T) {
	svc, cleanup := newTestService(t, Options{})
	defer cleanup()
	ctx := context.Background()

	mustAddCategory(t, svc, "Kuliah")
	if _, err := svc.AddCategory(ctx, "kuliah"); !errors.Is(err, ErrDuplicateCategory) {
		t.Fatalf("err=%v, want ErrDuplicateCategory", err)
	}
	cats, err := svc.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(cats) != 1 {
		t.Fatalf("registry size=%d, want 1", len(cats))
	}
}

func TestCreateTaskValidation(t *testing.T) {
	svc, cleanup := newTestService(t, Options{})
	defer cleanup()
	ctx := context.Background()
	mustAddCategory(t, svc, "Rumah")

	cases := []struct {
		name string
		in   CreateTaskInput
		want error
	}{
		{"whitespace title", CreateTaskInput{Title: "  ", Category: "Rumah"}, ErrTitleRequired},
		{"no category", CreateTaskInput{Title: "Buy milk"}, ErrCategoryRequired},
		{"unknown category", CreateTaskInput{Title: "Buy milk", Category: "Kantor"}, ErrUnknownCategory},
		{"bad due date", CreateTaskInput{Title: "Buy milk", Category: "Rumah", DueDate: "31/12/2025"}, ErrInvalidDueDate},
		{"bad priority", CreateTaskInput{Title: "Buy milk", Category: "Rumah", Priority: "urgent"}, ErrInvalidPriority},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateTask(ctx, tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("err=%v, want %v", err, tc.want)
			}
		})
	}

	board, err := svc.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(board.Tasks) != 0 {
		t.Fatalf("rejected input mutated the collection: %d tasks", len(board.Tasks))
	}
}

func TestCreateTaskTrimsAndPrepends(t *testing.T) {
	svc, cleanup := newTestService(t, Options{})
	defer cleanup()
	ctx := context.Background()
	mustAddCategory(t, svc, "Rumah")

	first := mustCreate(t, svc, CreateTaskInput{Title: "First", Category: "Rumah"})
	second := mustCreate(t, svc, CreateTaskInput{
		Title:       " Buy milk ",
		Description: "  two liters ",
		Category:    "rumah",
		Priority:    "high",
		DueDate:     "2025-13-40",
	})

	if second.Title != "Buy milk" || second.Description != "two liters" {
		t.Fatalf("title/description=%q/%q, want trimmed", second.Title, second.Description)
	}
	if second.Category != "Rumah" {
		t.Fatalf("category=%q, want stored key Rumah", second.Category)
	}
	if second.Status != StatusTodo || second.Priority != PriorityHigh || second.DueDate != "2025-13-40" {
		t.Fatalf("task=%+v", second)
	}
	if first.Priority != PriorityLow {
		t.Fatalf("default priority=%q, want Low", first.Priority)
	}

	board, err := svc.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(board.Tasks) != 2 || board.Tasks[0].ID != second.ID || board.Tasks[1].ID != first.ID {
		t.Fatalf("stored order=%v, want newest first", ids(board.Tasks))
	}
}

func TestToggleTaskPersistsOnlyTarget(t *testing.T) {
	svc, cleanup := newTestService(t, Options{})
	defer cleanup()
	ctx := context.Background()
	mustAddCategory(t, svc, "Rumah")

	a := mustCreate(t, svc, CreateTaskInput{Title: "A", Category: "Rumah"})
	b := mustCreate(t, svc, CreateTaskInput{Title: "B", Category: "Rumah"})

	want := []Status{StatusPending, StatusDone, StatusTodo}
	for i, w := range want {
		res, err := svc.ToggleTask(ctx, a.ID)
		if err != nil {
			t.Fatalf("ToggleTask #%d: %v", i+1, err)
		}
		if res.Task.Status != w {
			t.Fatalf("toggle #%d status=%q, want %q", i+1, res.Task.Status, w)
		}
	}

	if _, err := svc.ToggleTask(ctx, a.ID); err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}
	board, err := svc.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, task := range board.Tasks {
		switch task.ID {
		case a.ID:
			if task.Status != StatusPending {
				t.Fatalf("A status=%q, want pending", task.Status)
			}
		case b.ID:
			if task.Status != StatusTodo {
				t.Fatalf("B status=%q, want todo", task.Status)
			}
		}
	}

	if _, err := svc.ToggleTask(ctx, "nope"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("err=%v, want ErrTaskNotFound", err)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	svc, cleanup := newTestService(t, Options{})
	defer cleanup()
	ctx := context.Background()
	mustAddCategory(t, svc, "Rumah")
	a := mustCreate(t, svc, CreateTaskInput{Title: "A", Category: "Rumah"})
	mustCreate(t, svc, CreateTaskInput{Title: "B", Category: "Rumah"})

	asked := 0
	decline := ConfirmFunc(func(_ context.Context, task Task) (bool, error) {
		asked++
		if task.ID != a.ID {
			t.Fatalf("asked about %s, want %s", task.ID, a.ID)
		}
		return false, nil
	})
	_, deleted, err := svc.DeleteTask(ctx, a.ID, decline)
	if err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if deleted || asked != 1 {
		t.Fatalf("deleted=%v asked=%d, want false/1", deleted, asked)
	}
	board, _ := svc.Load(ctx)
	if len(board.Tasks) != 2 {
		t.Fatalf("len(tasks)=%d after cancel, want 2", len(board.Tasks))
	}

	removed, deleted, err := svc.DeleteTask(ctx, a.ID, Confirmed)
	if err != nil {
		t.Fatalf("DeleteTask confirmed: %v", err)
	}
	if !deleted || removed.ID != a.ID {
		t.Fatalf("deleted=%v removed=%s, want true/%s", deleted, removed.ID, a.ID)
	}
	board, _ = svc.Load(ctx)
	if len(board.Tasks) != 1 || board.Tasks[0].Title != "B" {
		t.Fatalf("tasks=%v after delete, want only B", ids(board.Tasks))
	}
}

func TestFirstCategoryResetsTasks(t *testing.T) {
	ctx := context.Background()
	seed := []storage.Task{{ID: "orphan", Title: "Left over"}}

	t.Run("enabled", func(t *testing.T) {
		svc, cleanup := newTestService(t, Options{ResetTasksOnFirstCategory: true})
		defer cleanup()
		if err := svc.Gateway().SaveTasks(ctx, seed); err != nil {
			t.Fatalf("seed: %v", err)
		}
		mustAddCategory(t, svc, "Kuliah")
		board, _ := svc.Load(ctx)
		if len(board.Tasks) != 0 {
			t.Fatalf("len(tasks)=%d, want 0 after first category", len(board.Tasks))
		}

		if err := svc.Gateway().SaveTasks(ctx, seed); err != nil {
			t.Fatalf("seed: %v", err)
		}
		mustAddCategory(t, svc, "Rumah")
		board, _ = svc.Load(ctx)
		if len(board.Tasks) != 1 {
			t.Fatalf("len(tasks)=%d, want 1 after second category", len(board.Tasks))
		}
	})

	t.Run("disabled", func(t *testing.T) {
		svc, cleanup := newTestService(t, Options{ResetTasksOnFirstCategory: false})
		defer cleanup()
		if err := svc.Gateway().SaveTasks(ctx, seed); err != nil {
			t.Fatalf("seed: %v", err)
		}
		mustAddCategory(t, svc, "Kuliah")
		board, _ := svc.Load(ctx)
		if len(board.Tasks) != 1 || board.Tasks[0].Category != "Umum" {
			t.Fatalf("tasks=%+v, want the orphan kept with fallback category", board.Tasks)
		}
	})
}

func TestRemoveCategory(t *testing.T) {
	svc, cleanup := newTestService(t, Options{})
	defer cleanup()
	ctx := context.Background()
	mustAddCategory(t, svc, "Kuliah")
	mustAddCategory(t, svc, "Rumah")
	mustCreate(t, svc, CreateTaskInput{Title: "Essay", Category: "Kuliah"})

	var inUse CategoryInUseError
	if _, err := svc.RemoveCategory(ctx, "kuliah"); !errors.As(err, &inUse) || inUse.Tasks != 1 {
		t.Fatalf("err=%v, want CategoryInUseError with 1 task", err)
	}
	if _, err := svc.RemoveCategory(ctx, "Kantor"); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("err=%v, want ErrCategoryNotFound", err)
	}
	removed, err := svc.RemoveCategory(ctx, "RUMAH")
	if err != nil {
		t.Fatalf("RemoveCategory: %v", err)
	}
	if removed.Key != "Rumah" {
		t.Fatalf("removed=%q, want Rumah", removed.Key)
	}
	cats, _ := svc.Categories(ctx)
	if len(cats) != 1 || cats[0].Key != "Kuliah" {
		t.Fatalf("categories=%+v, want only Kuliah", cats)
	}
}

func TestServiceListAppliesFilter(t *testing.T) {
	svc, cleanup := newTestService(t, Options{})
	defer cleanup()
	ctx := context.Background()
	mustAddCategory(t, svc, "Kuliah")
	mustAddCategory(t, svc, "Rumah")
	mustCreate(t, svc, CreateTaskInput{Title: "Essay", Category: "Kuliah", Priority: "Low"})
	urgent := mustCreate(t, svc, CreateTaskInput{Title: "Exam", Category: "Kuliah", Priority: "High"})
	mustCreate(t, svc, CreateTaskInput{Title: "Dishes", Category: "Rumah", Priority: "High"})

	got, err := svc.List(ctx, Filter{Category: "Kuliah"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != urgent.ID {
		t.Fatalf("List=%v, want 2 Kuliah tasks with Exam first", ids(got))
	}
}

func TestResolveID(t *testing.T) {
	tasks := []Task{{ID: "abc123"}, {ID: "abd456"}, {ID: "ab"}}

	if i, err := ResolveID(tasks, "abc"); err != nil || i != 0 {
		t.Fatalf("ResolveID(abc)=%d,%v, want 0", i, err)
	}
	if i, err := ResolveID(tasks, "ab"); err != nil || i != 2 {
		t.Fatalf("ResolveID(ab)=%d,%v, want exact match 2", i, err)
	}
	var amb AmbiguousIDError
	if _, err := ResolveID(tasks[:2], "ab"); !errors.As(err, &amb) || amb.Matches != 2 {
		t.Fatalf("err=%v, want AmbiguousIDError", err)
	}
	if _, err := ResolveID(tasks, "zzz"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("err=%v, want ErrTaskNotFound", err)
	}
}

func TestDeadlineFor(t *testing.T) {
	today := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	cases := []struct {
		due    string
		status Status
		kind   DeadlineKind
		days   int
	}{
		{"", StatusTodo, DeadlineNone, 0},
		{"2025-13-40", StatusTodo, DeadlineNone, 0},
		{"2025-03-09", StatusTodo, DeadlineOverdue, -1},
		{"2025-03-01", StatusDone, DeadlineNone, 0},
		{"2025-03-10", StatusPending, DeadlineToday, 0},
		{"2025-03-11", StatusTodo, DeadlineTomorrow, 1},
		{"2025-03-20", StatusTodo, DeadlineUpcoming, 10},
	}
	for _, tc := range cases {
		got := DeadlineFor(Task{DueDate: tc.due, Status: tc.status}, today)
		if got.Kind != tc.kind || got.DaysLeft != tc.days {
			t.Fatalf("DeadlineFor(%q,%s)=%+v, want kind %d days %d", tc.due, tc.status, got, tc.kind, tc.days)
		}
	}
}

type failingGateway struct {
	storage.Gateway
	err error
}

func (g failingGateway) LoadTasks(context.Context) ([]storage.Task, error) { return nil, g.err }
func (g failingGateway) LoadCategories(context.Context) ([]storage.Category, error) {
	return []storage.Category{{Key: "Rumah", Color: "#22c55e"}}, nil
}

func TestPersistenceErrorsAreWrapped(t *testing.T) {
	cause := errors.New("disk on fire")
	svc := NewService(failingGateway{err: cause}, pkgLog.NewNop(), Options{})

	_, err := svc.CreateTask(context.Background(), CreateTaskInput{Title: "A", Category: "Rumah"})
	var pe PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("err=%v, want PersistenceError", err)
	}
	if pe.Op != "load tasks" || !errors.Is(err, cause) {
		t.Fatalf("persistence error=%+v, want op 'load tasks' wrapping cause", pe)
	}
}

func ids(tasks []Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}
