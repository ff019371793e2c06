package session

// View identifies which screen the current step (plus the orthogonal flags)
// selects.
type View string

const (
	ViewWelcome   View = "welcome"
	ViewTimeline  View = "timeline"
	ViewRatings   View = "ratings"
	ViewOpenEnded View = "open"
	ViewFinal     View = "final"
	ViewSubmitted View = "submitted"
	ViewGallery   View = "gallery"
	ViewClosed    View = "closed"
)

// Machine tracks the current step in the fixed linear sequence:
// welcome, timeline, ratings, one step per open-ended question, final.
// Transitions move by exactly one and saturate at both ends, so the step
// index is always in [0, total).
type Machine struct {
	step  int
	total int
}

// NewMachine creates a machine with the given number of steps at step 0.
func NewMachine(totalSteps int) *Machine {
	return &Machine{total: totalSteps}
}

// Step returns the current step index.
func (m *Machine) Step() int {
	return m.step
}

// TotalSteps returns the length of the sequence.
func (m *Machine) TotalSteps() int {
	return m.total
}

// Advance moves one step forward, saturating at the last step.
func (m *Machine) Advance() {
	if m.step < m.total-1 {
		m.step++
	}
}

// Retreat moves one step back, saturating at zero.
func (m *Machine) Retreat() {
	if m.step > 0 {
		m.step--
	}
}

// Restore sets the step from a persisted snapshot, clamped into range.
func (m *Machine) Restore(step int) {
	switch {
	case step < 0:
		m.step = 0
	case step > m.total-1:
		m.step = m.total - 1
	default:
		m.step = step
	}
}

// ViewForStep maps a step index to the screen it renders.
func (m *Machine) ViewForStep() View {
	switch {
	case m.step == 0:
		return ViewWelcome
	case m.step == 1:
		return ViewTimeline
	case m.step == 2:
		return ViewRatings
	case m.step == m.total-1:
		return ViewFinal
	default:
		return ViewOpenEnded
	}
}

// OpenQuestionIndex returns which open-ended question the current step shows,
// or -1 when the current step is not an open-ended one.
func (m *Machine) OpenQuestionIndex() int {
	if m.ViewForStep() != ViewOpenEnded {
		return -1
	}
	return m.step - 3
}
