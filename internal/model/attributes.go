package model

import (
	"math"
	"time"
)

// Attribute bounds.
const (
	AttributeMin = 0.1
	AttributeMax = 1.0
)

// CoreAttributes is the derived character sheet. Every scalar stays within
// [AttributeMin, AttributeMax].
type CoreAttributes struct {
	Health    float64 `json:"health"`
	Mind      float64 `json:"mind"`
	Skill     float64 `json:"skill"`
	Social    float64 `json:"social"`
	Adventure float64 `json:"adventure"`
	Spirit    float64 `json:"spirit"`
}

// SeedAttributes returns the attribute block of a fresh store.
func SeedAttributes() CoreAttributes {
	return CoreAttributes{
		Health:    0.7,
		Mind:      0.5,
		Skill:     0.4,
		Social:    0.6,
		Adventure: 0.3,
		Spirit:    0.5,
	}
}

// Growth is a partial attribute delta. Zero fields leave a scalar unchanged.
type Growth struct {
	Health    float64 `json:"health,omitempty"`
	Mind      float64 `json:"mind,omitempty"`
	Skill     float64 `json:"skill,omitempty"`
	Social    float64 `json:"social,omitempty"`
	Adventure float64 `json:"adventure,omitempty"`
	Spirit    float64 `json:"spirit,omitempty"`
}

// IsZero reports whether the growth changes nothing.
func (g Growth) IsZero() bool {
	return g == Growth{}
}

// Plus returns the sum of two growth deltas.
func (g Growth) Plus(o Growth) Growth {
	return Growth{
		Health:    g.Health + o.Health,
		Mind:      g.Mind + o.Mind,
		Skill:     g.Skill + o.Skill,
		Social:    g.Social + o.Social,
		Adventure: g.Adventure + o.Adventure,
		Spirit:    g.Spirit + o.Spirit,
	}
}

// Decay subtracts amount from every scalar, floored at AttributeMin.
func (a CoreAttributes) Decay(amount float64) CoreAttributes {
	if amount < 0 || math.IsNaN(amount) {
		amount = 0
	}
	return CoreAttributes{
		Health:    math.Max(AttributeMin, a.Health-amount),
		Mind:      math.Max(AttributeMin, a.Mind-amount),
		Skill:     math.Max(AttributeMin, a.Skill-amount),
		Social:    math.Max(AttributeMin, a.Social-amount),
		Adventure: math.Max(AttributeMin, a.Adventure-amount),
		Spirit:    math.Max(AttributeMin, a.Spirit-amount),
	}.Clamp()
}

// Grow adds g to every scalar, capped at AttributeMax.
func (a CoreAttributes) Grow(g Growth) CoreAttributes {
	return CoreAttributes{
		Health:    a.Health + g.Health,
		Mind:      a.Mind + g.Mind,
		Skill:     a.Skill + g.Skill,
		Social:    a.Social + g.Social,
		Adventure: a.Adventure + g.Adventure,
		Spirit:    a.Spirit + g.Spirit,
	}.Clamp()
}

// Clamp forces every scalar into [AttributeMin, AttributeMax].
func (a CoreAttributes) Clamp() CoreAttributes {
	return CoreAttributes{
		Health:    clamp(a.Health),
		Mind:      clamp(a.Mind),
		Skill:     clamp(a.Skill),
		Social:    clamp(a.Social),
		Adventure: clamp(a.Adventure),
		Spirit:    clamp(a.Spirit),
	}
}

// Named returns the scalars in display order.
func (a CoreAttributes) Named() []NamedAttribute {
	return []NamedAttribute{
		{Name: "health", Value: a.Health},
		{Name: "mind", Value: a.Mind},
		{Name: "skill", Value: a.Skill},
		{Name: "social", Value: a.Social},
		{Name: "adventure", Value: a.Adventure},
		{Name: "spirit", Value: a.Spirit},
	}
}

// NamedAttribute pairs a scalar with its name.
type NamedAttribute struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || v < AttributeMin {
		return AttributeMin
	}
	if v > AttributeMax {
		return AttributeMax
	}
	return v
}

// AttributeSync records the decay baseline.
type AttributeSync struct {
	LastSync time.Time `json:"last_sync"`
}

// Analytics is the derived report shown on the self view.
type Analytics struct {
	Attributes CoreAttributes `json:"attributes"`
	Soul       SoulAnalytics  `json:"soul"`
	Mind       MindAnalytics  `json:"mind"`
}

// SoulAnalytics holds spirit-derived figures.
type SoulAnalytics struct {
	MoodStability float64 `json:"moodStability"`
}

// MindAnalytics holds mind-derived figures.
type MindAnalytics struct {
	FocusScore int `json:"focusScore"`
	BooksRead  int `json:"booksRead"`
}

// NewAnalytics derives the report from an attribute snapshot.
func NewAnalytics(a CoreAttributes, booksRead int) Analytics {
	return Analytics{
		Attributes: a,
		Soul:       SoulAnalytics{MoodStability: 85 + a.Spirit*10},
		Mind:       MindAnalytics{FocusScore: int(math.Round(a.Mind * 100)), BooksRead: booksRead},
	}
}
