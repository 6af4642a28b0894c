package analysis

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoValidData signals that every input file was skipped or every row was
// filtered out; the run aborts and is reported to the user.
var ErrNoValidData = errors.New("no valid data found in the input files")

// RangeError blocks a run whose from date falls after its to date.
// AdjustedFrom carries the suggested correction (one month before to).
type RangeError struct {
	From, To     time.Time
	AdjustedFrom time.Time
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("from date %s is after to date %s",
		e.From.Format("2006-01-02"), e.To.Format("2006-01-02"))
}
