package session

import "testing"

func TestMachineAdvanceSaturates(t *testing.T) {
	m := NewMachine(7)
	for i := 0; i < 20; i++ {
		m.Advance()
		if m.Step() > 6 {
			t.Fatalf("step %d exceeds last step after %d advances", m.Step(), i+1)
		}
	}
	if m.Step() != 6 {
		t.Fatalf("expected step 6 after repeated advances, got %d", m.Step())
	}
}

func TestMachineRetreatSaturates(t *testing.T) {
	m := NewMachine(7)
	m.Restore(3)
	for i := 0; i < 20; i++ {
		m.Retreat()
		if m.Step() < 0 {
			t.Fatalf("step went negative after %d retreats", i+1)
		}
	}
	if m.Step() != 0 {
		t.Fatalf("expected step 0 after repeated retreats, got %d", m.Step())
	}
}

func TestMachineRestoreClamps(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"negative", -5, 0},
		{"zero", 0, 0},
		{"in range", 4, 4},
		{"last", 6, 6},
		{"beyond last", 42, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(7)
			m.Restore(tt.in)
			if m.Step() != tt.want {
				t.Fatalf("Restore(%d): got step %d, want %d", tt.in, m.Step(), tt.want)
			}
		})
	}
}

func TestMachineViewForStep(t *testing.T) {
	tests := []struct {
		step int
		want View
	}{
		{0, ViewWelcome},
		{1, ViewTimeline},
		{2, ViewRatings},
		{3, ViewOpenEnded},
		{4, ViewOpenEnded},
		{5, ViewOpenEnded},
		{6, ViewFinal},
	}
	m := NewMachine(7)
	for _, tt := range tests {
		m.Restore(tt.step)
		if got := m.ViewForStep(); got != tt.want {
			t.Errorf("step %d: got view %q, want %q", tt.step, got, tt.want)
		}
	}
}

func TestMachineOpenQuestionIndex(t *testing.T) {
	m := NewMachine(7)
	if got := m.OpenQuestionIndex(); got != -1 {
		t.Fatalf("welcome step: got open question index %d, want -1", got)
	}
	m.Restore(3)
	if got := m.OpenQuestionIndex(); got != 0 {
		t.Fatalf("step 3: got open question index %d, want 0", got)
	}
	m.Restore(5)
	if got := m.OpenQuestionIndex(); got != 2 {
		t.Fatalf("step 5: got open question index %d, want 2", got)
	}
}
