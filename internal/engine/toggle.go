package engine

import "context"

type ToggleResult struct {
	Task Task
	From Status
}

// ToggleTask advances the status of the task identified by ref (id or unique
// id prefix) and saves the collection. Other tasks are untouched.
func (s *Service) ToggleTask(ctx context.Context, ref string) (*ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.loadTasks(ctx)
	if err != nil {
		return nil, err
	}
	i, err := ResolveID(tasks, ref)
	if err != nil {
		return nil, err
	}

	from := tasks[i].Status
	tasks[i].Status = NextStatus(from)
	if err := s.saveTasks(ctx, tasks); err != nil {
		return nil, err
	}

	s.l.Debugf(ctx, "engine.ToggleTask: %s %s -> %s", tasks[i].ID, from, tasks[i].Status)
	return &ToggleResult{Task: tasks[i], From: from}, nil
}
