// Package shell is the navsh state machine: it owns the current and previous
// working directory, runs the built-ins and delegates everything else.
package shell

// State is the directory bookkeeping threaded through Execute.
// PrevCwd is a single slot, not a history stack.
type State struct {
	Cwd     string
	PrevCwd string
}

// NewState returns the initial state with both directories set to dir
func NewState(dir string) State {
	return State{Cwd: dir, PrevCwd: dir}
}

// Result is the outcome of one command line
type Result struct {
	Output string
	State  State
}
