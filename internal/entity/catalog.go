package entity

import (
	"fmt"
	"time"
)

// UnansweredText is the literal placeholder sent for open-ended questions
// the user left blank.
const UnansweredText = "Без відповіді"

// Fixed relationship timeline shown on the timeline step.
const (
	TimelineStart = "2022-01-15"
	TimelineEnd   = "2025-12-17"
)

// RatingQuestion is a 1..10 scale question. Summary is the short label used
// when assembling the submitted answer list.
type RatingQuestion struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Summary string `json:"summary"`
	Min     int    `json:"min"`
	Max     int    `json:"max"`
}

// OpenQuestion is a free-text question shown on its own step.
type OpenQuestion struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
	Summary     string `json:"summary"`
}

// Catalog is the fixed question set driving the form. Step layout is derived
// from it: welcome, timeline, ratings, one step per open-ended question,
// final confirmation.
type Catalog struct {
	Ratings   []RatingQuestion `json:"ratings"`
	OpenEnded []OpenQuestion   `json:"openEnded"`
}

// TotalSteps returns the number of steps in the linear sequence.
func (c *Catalog) TotalSteps() int {
	return 3 + len(c.OpenEnded) + 1
}

// RatingByID looks up a rating question.
func (c *Catalog) RatingByID(id string) (RatingQuestion, bool) {
	for _, q := range c.Ratings {
		if q.ID == id {
			return q, true
		}
	}
	return RatingQuestion{}, false
}

// OpenByID looks up an open-ended question.
func (c *Catalog) OpenByID(id string) (OpenQuestion, bool) {
	for _, q := range c.OpenEnded {
		if q.ID == id {
			return q, true
		}
	}
	return OpenQuestion{}, false
}

// Validate checks the catalog shape after loading it from a file.
func (c *Catalog) Validate() error {
	if len(c.Ratings) == 0 {
		return fmt.Errorf("%w: catalog has no rating questions", ErrInvalidParameter)
	}
	if len(c.OpenEnded) == 0 {
		return fmt.Errorf("%w: catalog has no open-ended questions", ErrInvalidParameter)
	}
	seen := make(map[string]bool)
	for _, q := range c.Ratings {
		if q.ID == "" || seen[q.ID] {
			return fmt.Errorf("%w: duplicate or empty rating question id %q", ErrInvalidParameter, q.ID)
		}
		seen[q.ID] = true
	}
	for _, q := range c.OpenEnded {
		if q.ID == "" || seen[q.ID] {
			return fmt.Errorf("%w: duplicate or empty open question id %q", ErrInvalidParameter, q.ID)
		}
		seen[q.ID] = true
	}
	return nil
}

// DefaultCatalog returns the built-in question set.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Ratings: []RatingQuestion{
			{ID: "comm", Label: "Спілкування та щирість", Summary: "Спілкування", Min: 1, Max: 10},
			{ID: "support", Label: "Емоційна підтримка та присутність", Summary: "Підтримка", Min: 1, Max: 10},
			{ID: "trust", Label: "Довіра та відчуття безпеки", Summary: "Довіра", Min: 1, Max: 10},
			{ID: "growth", Label: "Взаємний розвиток", Summary: "Розвиток", Min: 1, Max: 10},
		},
		OpenEnded: []OpenQuestion{
			{ID: "favorite_memory", Label: "Який спогад ти досі згадуєш з найтеплішим трепетом?", Placeholder: "Пиши від серця...", Summary: "Найкращий спогад"},
			{ID: "lessons", Label: "Чого ці стосунки навчили тебе?", Placeholder: "Тіки чесно давай...", Summary: "Уроки"},
			{ID: "unsaid", Label: "Чи є щось, що ти хотіла б сказати, але так і не наважилася?", Placeholder: "Ну скажиии, Ян...", Summary: "Несказане"},
		},
	}
}

// DefaultMoments returns the gallery cards, oldest first. The viewing stack
// is the reverse of this list.
func DefaultMoments() []Moment {
	return []Moment{
		{ID: 1, URL: "https://i.postimg.cc/c4QJ0799/photo_5429107394412745194_y.jpg", Annotation: "Наше перше побачення у Blue Bird, коли ми наважилися взятися за руки"},
		{ID: 2, URL: "https://i.postimg.cc/rFSpMGng/photo_5429107394412745196_y.jpg", Annotation: "Найкраще 14-те лютого, яке в мене коли-небудь було"},
		{ID: 3, URL: "https://i.postimg.cc/dt80wRH4/photo_5429107394412745199_y.jpg", Annotation: "Мабуть, моя найулюбленіша фотка за час на відстані)"},
		{ID: 4, URL: "https://i.postimg.cc/pXDdRQGs/photo_5429107394412745200_y.jpg", Annotation: "Перший справжній поцілунок за ну дууууже багато часу"},
		{ID: 5, URL: "https://i.postimg.cc/66431xd6/photo_5429107394412745201_y.jpg", Annotation: "Перше літо із тобою..."},
	}
}

// Timeline is the precomputed duration block for the timeline step.
type Timeline struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Years string `json:"years"`
	Weeks int    `json:"weeks"`
	Days  int    `json:"days"`
	Hours int    `json:"hours"`
}

// ComputeTimeline derives the duration figures between two ISO dates.
// Years uses 365.25-day years with one decimal.
func ComputeTimeline(start, end string) (Timeline, error) {
	from, err := time.Parse("2006-01-02", start)
	if err != nil {
		return Timeline{}, fmt.Errorf("parse timeline start: %w", err)
	}
	to, err := time.Parse("2006-01-02", end)
	if err != nil {
		return Timeline{}, fmt.Errorf("parse timeline end: %w", err)
	}

	diff := to.Sub(from)
	if diff < 0 {
		diff = -diff
	}
	days := int(diff.Hours() / 24)

	return Timeline{
		Start: start,
		End:   end,
		Years: fmt.Sprintf("%.1f", diff.Hours()/24/365.25),
		Weeks: days / 7,
		Days:  days,
		Hours: int(diff.Hours()),
	}, nil
}
