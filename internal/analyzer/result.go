package analyzer

import (
	"github.com/goccy/go-json"

	"schemascan/internal/schema"
)

// Result is the single document a run produces: the summary report on
// success or an error payload on failure. Exactly one of the two is set.
type Result struct {
	Report *schema.Report
	Err    error
}

// ResultOf wraps an Analyze outcome into a Result.
func ResultOf(sch *schema.Schema, err error) Result {
	if err != nil {
		return Result{Err: err}
	}

	report := sch.Report()

	return Result{Report: &report}
}

type errorPayload struct {
	Error string `json:"error"`
}

// Render serializes the result as JSON with 2-space indentation. A failed
// run renders as {"error": "<message>"} with no other keys.
func (r Result) Render() ([]byte, error) {
	if r.Err != nil {
		return json.MarshalIndent(errorPayload{Error: r.Err.Error()}, "", "  ")
	}

	return json.MarshalIndent(r.Report, "", "  ")
}
