package upload

// Phase represents whether a submission is in flight.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
)

// begin moves the controller to Submitting. The returned release func
// moves it back to Idle and must run on every exit path.
func (c *Controller) begin() (func(), error) {
	c.mu.Lock()
	if c.phase == PhaseSubmitting {
		c.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	c.phase = PhaseSubmitting
	c.mu.Unlock()
	c.notifyPhase(PhaseSubmitting)

	return func() {
		c.mu.Lock()
		c.phase = PhaseIdle
		c.mu.Unlock()
		c.notifyPhase(PhaseIdle)
	}, nil
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// OnPhaseChange registers fn to run on every phase transition.
// Callers use it to disable their submit control while Submitting.
func (c *Controller) OnPhaseChange(fn func(Phase)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.phaseObservers = append(c.phaseObservers, fn)
}

func (c *Controller) notifyPhase(p Phase) {
	c.mu.Lock()
	observers := append([]func(Phase){}, c.phaseObservers...)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(p)
	}
}
