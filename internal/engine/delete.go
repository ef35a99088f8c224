package engine

import "context"

// Confirmer asks the user to confirm a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, t Task) (bool, error)
}

type ConfirmFunc func(ctx context.Context, t Task) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, t Task) (bool, error) { return f(ctx, t) }

// Confirmed is a Confirmer for callers that already asked the user.
var Confirmed Confirmer = ConfirmFunc(func(context.Context, Task) (bool, error) { return true, nil })

// DeleteTask removes the task identified by ref once c confirms. A declined
// confirmation returns deleted=false and changes nothing.
func (s *Service) DeleteTask(ctx context.Context, ref string, c Confirmer) (Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return Task{}, false, err
	}
	i, err := ResolveID(tasks, ref)
	if err != nil {
		return Task{}, false, err
	}
	target := tasks[i]

	ok, err := c.Confirm(ctx, target)
	if err != nil {
		return target, false, err
	}
	if !ok {
		return target, false, nil
	}

	updated := make([]Task, 0, len(tasks)-1)
	updated = append(updated, tasks[:i]...)
	updated = append(updated, tasks[i+1:]...)
	if err := s.saveTasks(ctx, updated); err != nil {
		return target, false, err
	}

	s.l.Infof(ctx, "engine.DeleteTask: deleted %s", target.ID)
	return target, true, nil
}
