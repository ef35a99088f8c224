package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskmate/internal/storage"
	pkgLog "taskmate/pkg/log"
)

// Options tunes Service behavior.
type Options struct {
	// FallbackCategory labels persisted tasks that have no category. Defaults to "Umum".
	FallbackCategory string
	// ResetTasksOnFirstCategory empties the task list when the first category is registered.
	ResetTasksOnFirstCategory bool

	Now   func() time.Time
	NewID func() string
}

// Service runs the task actions as read-then-mutate-then-write sequences
// over a storage.Gateway.
type Service struct {
	mu   sync.Mutex
	gw   storage.Gateway
	l    pkgLog.Logger
	opts Options
}

func NewService(gw storage.Gateway, l pkgLog.Logger, opts Options) *Service {
	if opts.FallbackCategory == "" {
		opts.FallbackCategory = "Umum"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if l == nil {
		l = pkgLog.NewNop()
	}
	return &Service{gw: gw, l: l, opts: opts}
}

func (s *Service) Gateway() storage.Gateway { return s.gw }

// Board is everything a screen needs after loading.
type Board struct {
	Tasks      []Task
	Categories []Category
}

// Load reads both collections, normalized, in stored order.
func (s *Service) Load(ctx context.Context) (*Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.loadCategories(ctx)
	if err != nil {
		return nil, err
	}
	return &Board{Tasks: tasks, Categories: categories}, nil
}

// List returns the tasks matching f in display order.
func (s *Service) List(ctx context.Context, f Filter) ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return nil, err
	}
	return Apply(tasks, f), nil
}

func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadCategories(ctx)
}

func (s *Service) loadTasks(ctx context.Context) ([]Task, error) {
	records, err := s.gw.LoadTasks(ctx)
	if err != nil {
		return nil, s.persistenceError(ctx, "load tasks", err)
	}
	return Normalize(records, s.opts.FallbackCategory), nil
}

func (s *Service) saveTasks(ctx context.Context, tasks []Task) error {
	if err := s.gw.SaveTasks(ctx, toRecords(tasks)); err != nil {
		return s.persistenceError(ctx, "save tasks", err)
	}
	return nil
}

func (s *Service) loadCategories(ctx context.Context) ([]Category, error) {
	records, err := s.gw.LoadCategories(ctx)
	if err != nil {
		return nil, s.persistenceError(ctx, "load categories", err)
	}
	return categoriesFromRecords(records), nil
}

func (s *Service) saveCategories(ctx context.Context, categories []Category) error {
	if err := s.gw.SaveCategories(ctx, categoryRecords(categories)); err != nil {
		return s.persistenceError(ctx, "save categories", err)
	}
	return nil
}

func (s *Service) persistenceError(ctx context.Context, op string, err error) error {
	s.l.Errorf(ctx, "engine.%s: %v", op, err)
	return PersistenceError{Op: op, Err: err}
}
