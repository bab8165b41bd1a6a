package sweep

import (
	"encoding/json"
	"fmt"
)

// Result summarizes one sweep.
type Result struct {
	Attempted  int
	Successful int
	Failed     int
	Errors     []BatchError

	// Joined is set when the caller waited on a sweep started by another
	// caller. It is not part of the JSON summary.
	Joined bool
}

// Empty reports whether the sweep found nothing to do.
func (r Result) Empty() bool {
	return r.Attempted == 0
}

// Message is the human-readable summary line.
func (r Result) Message() string {
	return fmt.Sprintf("Cleanup completed: %d deleted, %d failed", r.Successful, r.Failed)
}

// MarshalJSON renders errors as their messages.
func (r Result) MarshalJSON() ([]byte, error) {
	errs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e.Error()
	}
	return json.Marshal(struct {
		Attempted  int      `json:"attempted"`
		Successful int      `json:"successful"`
		Failed     int      `json:"failed"`
		Errors     []string `json:"errors"`
	}{r.Attempted, r.Successful, r.Failed, errs})
}

// BatchError records a failed delete call. Start and End are offsets into
// the sweep's id snapshot; End is Start plus the batch size.
type BatchError struct {
	Start int
	End   int
	Err   error
}

func (e BatchError) Error() string {
	return fmt.Sprintf("Batch %d-%d: %v", e.Start, e.End, e.Err)
}

func (e BatchError) Unwrap() error {
	return e.Err
}
