package engine

// NextStatus advances the lifecycle: todo → pending → done → todo.
// Anything unrecognized restarts at todo.
func NextStatus(current Status) Status {
	switch current {
	case StatusTodo:
		return StatusPending
	case StatusPending:
		return StatusDone
	case StatusDone:
		return StatusTodo
	default:
		return StatusTodo
	}
}
