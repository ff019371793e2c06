package entity

// AnswerSet maps question IDs to answers. Rating questions hold an integer
// 1..10, open-ended questions hold free text. A key is absent until the user
// answers; individual keys are never deleted, the whole set is only replaced
// on a fresh session.
type AnswerSet struct {
	Ratings map[string]int    `json:"ratings,omitempty"`
	Texts   map[string]string `json:"texts,omitempty"`
}

// NewAnswerSet returns an empty answer set with allocated maps.
func NewAnswerSet() AnswerSet {
	return AnswerSet{
		Ratings: make(map[string]int),
		Texts:   make(map[string]string),
	}
}

// Rating returns the stored rating for the question, 0 when unanswered.
func (a AnswerSet) Rating(id string) int {
	return a.Ratings[id]
}

// Text returns the stored text for the question, "" when unanswered.
func (a AnswerSet) Text(id string) string {
	return a.Texts[id]
}

// SetRating stores a rating answer. Last write wins.
func (a *AnswerSet) SetRating(id string, value int) {
	if a.Ratings == nil {
		a.Ratings = make(map[string]int)
	}
	a.Ratings[id] = value
}

// SetText stores a free-text answer. Last write wins.
func (a *AnswerSet) SetText(id, value string) {
	if a.Texts == nil {
		a.Texts = make(map[string]string)
	}
	a.Texts[id] = value
}

// Clone returns a deep copy, safe to hand outside the owning controller.
func (a AnswerSet) Clone() AnswerSet {
	out := NewAnswerSet()
	for k, v := range a.Ratings {
		out.Ratings[k] = v
	}
	for k, v := range a.Texts {
		out.Texts[k] = v
	}
	return out
}

// UIFlags are the orthogonal view flags layered on top of the step index.
// StackLength records how many gallery cards remain so the stack can be
// restored to the same prefix.
type UIFlags struct {
	IsSubmitted bool `json:"isSubmitted"`
	ShowGallery bool `json:"showGallery"`
	IsClosed    bool `json:"isClosed"`
	StackLength int  `json:"stackLength"`
}

// Meta carries snapshot bookkeeping. LastSaved is epoch milliseconds.
type Meta struct {
	LastSaved int64 `json:"lastSaved"`
	Version   int   `json:"version"`
}

// Snapshot is the unit handed to the persistence store: the live session
// fields without storage metadata.
type Snapshot struct {
	Step    int       `json:"step"`
	Answers AnswerSet `json:"answers"`
	UIFlags UIFlags   `json:"uiFlags"`
}

// SessionState is the persisted form of a Snapshot, the only durable copy
// of session progress. It lives under a single fixed storage key and is
// replaced wholesale on every save.
type SessionState struct {
	CurrentStep int       `json:"currentStep"`
	Answers     AnswerSet `json:"answers"`
	UIFlags     UIFlags   `json:"uiFlags"`
	Meta        Meta      `json:"meta"`
}

// Moment is one gallery card: static reference data, never mutated.
type Moment struct {
	ID         int    `json:"id"`
	URL        string `json:"url"`
	Annotation string `json:"annotation"`
}
