// Package session owns the live questionnaire state: the step machine, the
// answer set, the post-submission gallery, and the wiring to the persistence
// store and the delivery collaborator. All mutation funnels through named
// operations on the Controller; nothing else touches the state.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/disckocrip/retro-backend/internal/entity"
	"go.uber.org/zap"
)

// quotaNotice is the transient, dismissable message surfaced when a save was
// rejected for size reasons. The next debounce cycle retries automatically.
const quotaNotice = "Local storage quota exceeded. Unable to save progress."

// submitFailedMessage is the user-visible message after a failed submission.
const submitFailedMessage = "Failed to send responses. Please try again."

// Controller is the form session controller. It is safe for concurrent use:
// HTTP handlers may race, so every operation serializes on one mutex, the
// equivalent of the single event timeline the form runs on.
type Controller struct {
	store     Store
	submitter Submitter
	catalog   *entity.Catalog
	moments   []entity.Moment
	timeline  entity.Timeline
	debounce  time.Duration
	logger    *zap.Logger

	mu          sync.Mutex
	machine     *Machine
	answers     entity.AnswerSet
	submitted   bool
	showGallery bool
	closed      bool
	stack       []entity.Moment
	saveNotice  string
	submitError string
	saveTimer   *time.Timer
}

// NewController creates a controller at step 0 with empty answers and a full
// gallery stack. Call Restore to pick up persisted progress.
func NewController(
	store Store,
	submitter Submitter,
	catalog *entity.Catalog,
	moments []entity.Moment,
	timeline entity.Timeline,
	debounce time.Duration,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		store:     store,
		submitter: submitter,
		catalog:   catalog,
		moments:   moments,
		timeline:  timeline,
		debounce:  debounce,
		logger:    logger,
		machine:   NewMachine(catalog.TotalSteps()),
		answers:   entity.NewAnswerSet(),
		stack:     fullStack(moments),
	}
}

// fullStack derives the viewing stack: the moment list reversed, so the
// first moment ends up on top.
func fullStack(moments []entity.Moment) []entity.Moment {
	out := make([]entity.Moment, len(moments))
	for i, m := range moments {
		out[len(moments)-1-i] = m
	}
	return out
}

// Restore loads persisted progress, if any. A nil load means a fresh session
// at step 0. The gallery stack is only restored to a shorter length than the
// full set; a recorded length at or beyond the full set is treated as
// full-or-corrupt and the default full stack is kept.
func (c *Controller) Restore(ctx context.Context) {
	state := c.store.Load(ctx)
	if state == nil {
		c.logger.Info("no saved session state, starting fresh")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.machine.Restore(state.CurrentStep)
	for id, v := range state.Answers.Ratings {
		c.answers.SetRating(id, v)
	}
	for id, v := range state.Answers.Texts {
		c.answers.SetText(id, v)
	}
	c.submitted = state.UIFlags.IsSubmitted
	c.showGallery = state.UIFlags.ShowGallery
	c.closed = state.UIFlags.IsClosed
	if state.UIFlags.StackLength >= 0 && state.UIFlags.StackLength < len(c.moments) {
		c.stack = fullStack(c.moments)[:state.UIFlags.StackLength]
	}

	c.logger.Info("session state restored",
		zap.Int("step", c.machine.Step()),
		zap.Bool("is_submitted", c.submitted),
		zap.Bool("is_closed", c.closed),
		zap.Int("stack_length", len(c.stack)),
	)
}

// SetRating records a rating answer and schedules a save.
func (c *Controller) SetRating(id string, value int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.formMutableLocked(); err != nil {
		return err
	}
	q, ok := c.catalog.RatingByID(id)
	if !ok {
		return fmt.Errorf("%w: %q", entity.ErrUnknownQuestion, id)
	}
	if value < q.Min || value > q.Max {
		return fmt.Errorf("%w: %d is outside %d..%d", entity.ErrInvalidRating, value, q.Min, q.Max)
	}

	c.answers.SetRating(id, value)
	c.scheduleSaveLocked()
	return nil
}

// SetText records a free-text answer and schedules a save.
func (c *Controller) SetText(id, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.formMutableLocked(); err != nil {
		return err
	}
	if _, ok := c.catalog.OpenByID(id); !ok {
		return fmt.Errorf("%w: %q", entity.ErrUnknownQuestion, id)
	}

	c.answers.SetText(id, value)
	c.scheduleSaveLocked()
	return nil
}

// Advance moves one step forward.
func (c *Controller) Advance() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.formMutableLocked(); err != nil {
		return err
	}
	c.machine.Advance()
	c.scheduleSaveLocked()
	return nil
}

// Retreat moves one step back.
func (c *Controller) Retreat() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.formMutableLocked(); err != nil {
		return err
	}
	c.machine.Retreat()
	c.scheduleSaveLocked()
	return nil
}

// Submit assembles the fixed-order answer lines and hands them to the
// delivery collaborator. On success the session is marked submitted and the
// store is cleared; on failure all in-memory state is kept so the same list
// can simply be re-sent.
func (c *Controller) Submit(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return "", entity.ErrSessionClosed
	}
	if c.submitted {
		c.mu.Unlock()
		return "", entity.ErrAlreadySubmitted
	}
	lines := c.answerLinesLocked()
	// Release the lock for the network round-trip so reads stay responsive
	// while the send is pending.
	c.mu.Unlock()

	messageID, err := c.submitter.Submit(ctx, lines)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.submitError = submitFailedMessage
		c.logger.Error("submission failed", zap.Error(err))
		return "", fmt.Errorf("submit answers: %w", err)
	}

	c.submitted = true
	c.submitError = ""
	c.stopTimerLocked()
	// The completed session has no further need of local recovery.
	c.store.Clear(ctx)

	c.logger.Info("answers submitted", zap.String("message_id", messageID))
	return messageID, nil
}

// answerLinesLocked builds the submitted list: one line per rating question
// (0 when unanswered), one per open-ended question (placeholder text when
// unanswered), in catalog order.
func (c *Controller) answerLinesLocked() []string {
	lines := make([]string, 0, len(c.catalog.Ratings)+len(c.catalog.OpenEnded))
	for _, q := range c.catalog.Ratings {
		lines = append(lines, fmt.Sprintf("%s: %d/10", q.Summary, c.answers.Rating(q.ID)))
	}
	for _, q := range c.catalog.OpenEnded {
		text := c.answers.Text(q.ID)
		if text == "" {
			text = entity.UnansweredText
		}
		lines = append(lines, fmt.Sprintf("%s: %s", q.Summary, text))
	}
	return lines
}

// OpenGallery shows the gallery. Only reachable after submission.
func (c *Controller) OpenGallery() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return entity.ErrSessionClosed
	}
	if !c.submitted {
		return entity.ErrNotSubmitted
	}
	c.showGallery = true
	c.scheduleSaveLocked()
	return nil
}

// CloseGallery returns to the post-submission view.
func (c *Controller) CloseGallery() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return entity.ErrSessionClosed
	}
	if !c.submitted {
		return entity.ErrNotSubmitted
	}
	c.showGallery = false
	c.scheduleSaveLocked()
	return nil
}

// PopMoment dismisses the top card. Popping an empty stack is a no-op.
func (c *Controller) PopMoment() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return entity.ErrSessionClosed
	}
	if !c.submitted {
		return entity.ErrNotSubmitted
	}
	if len(c.stack) == 0 {
		return nil
	}
	c.stack = c.stack[:len(c.stack)-1]
	c.scheduleSaveLocked()
	return nil
}

// ResetStack restores the full stack in its original order.
func (c *Controller) ResetStack() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return entity.ErrSessionClosed
	}
	if !c.submitted {
		return entity.ErrNotSubmitted
	}
	c.stack = fullStack(c.moments)
	c.scheduleSaveLocked()
	return nil
}

// WalkAway moves the session to the terminal farewell view. Once closed, no
// operation leads back out.
func (c *Controller) WalkAway() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return entity.ErrSessionClosed
	}
	if !c.submitted {
		return entity.ErrNotSubmitted
	}
	c.closed = true
	c.scheduleSaveLocked()
	return nil
}

// State returns the full session view.
func (c *Controller) State() entity.StateDTO {
	c.mu.Lock()
	defer c.mu.Unlock()

	stack := make([]entity.Moment, len(c.stack))
	copy(stack, c.stack)

	var openQuestion *entity.OpenQuestion
	if c.viewLocked() == ViewOpenEnded {
		if idx := c.machine.OpenQuestionIndex(); idx >= 0 && idx < len(c.catalog.OpenEnded) {
			q := c.catalog.OpenEnded[idx]
			openQuestion = &q
		}
	}

	return entity.StateDTO{
		Step:         c.machine.Step(),
		TotalSteps:   c.machine.TotalSteps(),
		View:         string(c.viewLocked()),
		Answers:      c.answers.Clone(),
		UIFlags:      c.flagsLocked(),
		Stack:        stack,
		Catalog:      c.catalog,
		Timeline:     c.timeline,
		OpenQuestion: openQuestion,
		SaveNotice:   c.saveNotice,
		SubmitError:  c.submitError,
	}
}

// Flush performs an immediate save, bypassing the debounce. Used by the
// shutdown path so a scheduled-but-unfired save is not lost.
func (c *Controller) Flush(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimerLocked()
	c.saveLocked(ctx)
}

// Close stops the pending save timer without saving.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTimerLocked()
}

func (c *Controller) viewLocked() View {
	switch {
	case c.closed:
		return ViewClosed
	case c.submitted && c.showGallery:
		return ViewGallery
	case c.submitted:
		return ViewSubmitted
	default:
		return c.machine.ViewForStep()
	}
}

func (c *Controller) flagsLocked() entity.UIFlags {
	return entity.UIFlags{
		IsSubmitted: c.submitted,
		ShowGallery: c.showGallery,
		IsClosed:    c.closed,
		StackLength: len(c.stack),
	}
}

// formMutableLocked gates answer and step operations: not after the terminal
// close, not after a successful submission.
func (c *Controller) formMutableLocked() error {
	if c.closed {
		return entity.ErrSessionClosed
	}
	if c.submitted {
		return entity.ErrAlreadySubmitted
	}
	return nil
}

// scheduleSaveLocked coalesces bursts of changes into one write: each call
// cancels the pending timer and rearms it, so only the last snapshot before
// a quiet period is persisted.
func (c *Controller) scheduleSaveLocked() {
	c.stopTimerLocked()
	c.saveTimer = time.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.saveTimer = nil
		c.saveLocked(context.Background())
	})
}

func (c *Controller) stopTimerLocked() {
	if c.saveTimer != nil {
		c.saveTimer.Stop()
		c.saveTimer = nil
	}
}

// saveLocked writes the current snapshot. A quota rejection becomes the
// transient save notice; the next scheduled save retries. Everything else
// was already logged at the store boundary.
func (c *Controller) saveLocked(ctx context.Context) {
	snap := entity.Snapshot{
		Step:    c.machine.Step(),
		Answers: c.answers.Clone(),
		UIFlags: c.flagsLocked(),
	}

	err := c.store.Save(ctx, snap)
	switch {
	case errors.Is(err, entity.ErrQuotaExceeded):
		c.saveNotice = quotaNotice
	case err != nil:
		// Keep the previous notice; persistence stays best effort.
	default:
		c.saveNotice = ""
	}
}
