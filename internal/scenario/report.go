package scenario

import (
	"encoding/json"
	"fmt"
	"io"
)

// Report is the outcome of running one script.
type Report struct {
	Script   string       `json:"script"`
	Steps    []StepResult `json:"steps"`
	Failures []Failure    `json:"failures,omitempty"`
	Trace    []TraceEntry `json:"trace,omitempty"`
}

// StepResult records what one step did.
type StepResult struct {
	Index int    `json:"index"`
	Op    string `json:"op"`
	OK    bool   `json:"ok"`
	// Bound is the name bound by an insert, with the UID it got.
	Bound string `json:"bound,omitempty"`
	UID   string `json:"uid,omitempty"`
}

// Failure is one unmet expectation.
type Failure struct {
	Step    int    `json:"step"`
	Message string `json:"message"`
}

// TraceEntry is one notification observed while a step ran. Name is the
// bound name of the event's record, its short UID when unnamed, or empty
// for events that carry no record.
type TraceEntry struct {
	Step    int    `json:"step"`
	Channel string `json:"channel"`
	Type    string `json:"type"`
	Name    string `json:"name,omitempty"`
}

// Passed reports whether every expectation held.
func (r *Report) Passed() bool {
	return len(r.Failures) == 0
}

func (r *Report) fail(step int, format string, args ...any) {
	r.Failures = append(r.Failures, Failure{Step: step, Message: fmt.Sprintf(format, args...)})
}

// WriteText renders the report for a terminal.
func (r *Report) WriteText(w io.Writer, trace bool) error {
	status := "PASS"
	if !r.Passed() {
		status = "FAIL"
	}
	if _, err := fmt.Fprintf(w, "%s %s (%d steps)\n", status, r.Script, len(r.Steps)); err != nil {
		return err
	}
	for _, f := range r.Failures {
		if _, err := fmt.Fprintf(w, "  step %d: %s\n", f.Step, f.Message); err != nil {
			return err
		}
	}
	if !trace {
		return nil
	}
	for _, e := range r.Trace {
		if _, err := fmt.Fprintf(w, "  [%d] %s %s %s\n", e.Step, e.Channel, e.Type, e.Name); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON renders the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
