package output

import (
	"time"

	"github.com/manav03panchal/chronos/internal/errors"
	"github.com/manav03panchal/chronos/internal/model"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// Response wraps a successful result.
type Response struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

// ErrorResponse represents an error in JSON. The same shape is returned by
// the HTTP server.
type ErrorResponse struct {
	Status     string `json:"status"`
	Error      string `json:"error"`
	Category   string `json:"category"`
	Suggestion string `json:"suggestion,omitempty"`
}

// NewErrorResponse describes err.
func NewErrorResponse(err error) ErrorResponse {
	return ErrorResponse{
		Status:     "error",
		Error:      err.Error(),
		Category:   errors.Classify(err).String(),
		Suggestion: errors.GetSuggestion(err),
	}
}

// AttributesResponse carries the attribute block and its display form.
type AttributesResponse struct {
	Attributes model.CoreAttributes   `json:"attributes"`
	Named      []model.NamedAttribute `json:"named"`
	Peeked     bool                   `json:"peeked,omitempty"`
}

// LetterResponse is the letter plus its advisory countdown.
type LetterResponse struct {
	Letter           model.FutureLetter `json:"letter"`
	RemainingSeconds int64              `json:"remaining_seconds"`
	Arrived          bool               `json:"arrived"`
}

// SettingsResponse is the settings plus the progress derived from them.
type SettingsResponse struct {
	Settings model.UserSettings `json:"settings"`
	Progress model.TimeMetrics  `json:"progress"`
	Saved    bool               `json:"saved"`
}

// PrintData writes v in the success envelope.
func (j *JSONFormatter) PrintData(v any) error {
	return j.JSON(Response{Status: "ok", Data: v})
}

// PrintError writes err in the error envelope.
func (j *JSONFormatter) PrintError(err error) error {
	return j.JSON(NewErrorResponse(err))
}

// PrintAttributes writes an attribute snapshot.
func (j *JSONFormatter) PrintAttributes(a model.CoreAttributes, peeked bool) error {
	return j.PrintData(AttributesResponse{Attributes: a, Named: a.Named(), Peeked: peeked})
}

// NewLetterResponse computes the countdown of l at now.
func NewLetterResponse(l model.FutureLetter, now time.Time) LetterResponse {
	return LetterResponse{
		Letter:           l,
		RemainingSeconds: int64(l.Remaining(now).Seconds()),
		Arrived:          l.Status != model.LetterNone && l.Arrived(now),
	}
}

// PrintLetter writes the letter with its countdown.
func (j *JSONFormatter) PrintLetter(l model.FutureLetter) error {
	return j.PrintData(NewLetterResponse(l, j.now()))
}
