package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/disckocrip/retro-backend/internal/entity"
	"go.uber.org/zap"
)

type memMedium struct {
	values map[string]string
	getErr error
	putErr error
}

func newMemMedium() *memMedium {
	return &memMedium{values: make(map[string]string)}
}

func (m *memMedium) Get(ctx context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memMedium) Put(ctx context.Context, key, value string) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.values[key] = value
	return nil
}

func (m *memMedium) Delete(ctx context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func testSnapshot() entity.Snapshot {
	answers := entity.NewAnswerSet()
	answers.SetRating("comm", 7)
	answers.SetText("lessons", "цінувати час")
	return entity.Snapshot{
		Step:    4,
		Answers: answers,
		UIFlags: entity.UIFlags{StackLength: 3},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New(newMemMedium(), zap.NewNop())

	if err := s.Save(ctx, testSnapshot()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	state := s.Load(ctx)
	if state == nil {
		t.Fatal("Load returned nil after Save")
	}
	if state.CurrentStep != 4 {
		t.Errorf("step = %d, want 4", state.CurrentStep)
	}
	if state.Answers.Rating("comm") != 7 || state.Answers.Text("lessons") != "цінувати час" {
		t.Errorf("answers = %+v", state.Answers)
	}
	if state.UIFlags.StackLength != 3 {
		t.Errorf("stack length = %d, want 3", state.UIFlags.StackLength)
	}
	if state.Meta.Version != CurrentVersion {
		t.Errorf("version = %d, want %d", state.Meta.Version, CurrentVersion)
	}
	if state.Meta.LastSaved == 0 {
		t.Error("lastSaved not stamped")
	}
}

func TestSaveStampsMonotonicTime(t *testing.T) {
	ctx := context.Background()
	medium := newMemMedium()
	s := New(medium, zap.NewNop())

	clock := time.UnixMilli(1000)
	s.now = func() time.Time { return clock }

	if err := s.Save(ctx, testSnapshot()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	first := s.Load(ctx).Meta.LastSaved

	clock = time.UnixMilli(5000)
	if err := s.Save(ctx, testSnapshot()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	second := s.Load(ctx).Meta.LastSaved

	if first != 1000 || second != 5000 {
		t.Fatalf("lastSaved stamps = %d, %d; want 1000, 5000", first, second)
	}
}

func TestLoadFailsOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		setup func(*memMedium)
	}{
		{
			name:  "absent slot",
			setup: func(m *memMedium) {},
		},
		{
			name: "corrupt payload",
			setup: func(m *memMedium) {
				m.values[StorageKey] = "{not json"
			},
		},
		{
			name: "version mismatch",
			setup: func(m *memMedium) {
				m.values[StorageKey] = `{"currentStep":2,"meta":{"lastSaved":1,"version":99}}`
			},
		},
		{
			name: "medium read failure",
			setup: func(m *memMedium) {
				m.getErr = errors.New("disk gone")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			medium := newMemMedium()
			tt.setup(medium)
			s := New(medium, zap.NewNop())
			if state := s.Load(ctx); state != nil {
				t.Fatalf("Load = %+v, want nil", state)
			}
		})
	}
}

func TestClearEmptiesSlot(t *testing.T) {
	ctx := context.Background()
	s := New(newMemMedium(), zap.NewNop())

	if err := s.Save(ctx, testSnapshot()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	s.Clear(ctx)
	if state := s.Load(ctx); state != nil {
		t.Fatalf("Load after Clear = %+v, want nil", state)
	}
}

func TestSaveQuotaErrorIsDistinguishable(t *testing.T) {
	ctx := context.Background()
	medium := newMemMedium()
	medium.putErr = fmt.Errorf("put: %w", entity.ErrQuotaExceeded)
	s := New(medium, zap.NewNop())

	err := s.Save(ctx, testSnapshot())
	if !errors.Is(err, entity.ErrQuotaExceeded) {
		t.Fatalf("Save error = %v, want ErrQuotaExceeded", err)
	}
}

func TestSaveWrapsOtherMediumErrors(t *testing.T) {
	ctx := context.Background()
	medium := newMemMedium()
	medium.putErr = errors.New("disk full")
	s := New(medium, zap.NewNop())

	err := s.Save(ctx, testSnapshot())
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, entity.ErrQuotaExceeded) {
		t.Fatal("plain write failure must not read as a quota rejection")
	}
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		name  string
		state *entity.SessionState
		want  bool
	}{
		{"nil", nil, false},
		{"current version", &entity.SessionState{Meta: entity.Meta{Version: CurrentVersion}}, true},
		{"zero version", &entity.SessionState{}, false},
		{"future version", &entity.SessionState{Meta: entity.Meta{Version: CurrentVersion + 1}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compatible(tt.state); got != tt.want {
				t.Errorf("compatible = %v, want %v", got, tt.want)
			}
		})
	}
}
