package graphs_go

import (
	"errors"
	"fmt"
)

var (
	ErrSourceNotFound     = errors.New("network file not found")
	ErrEmptyFile          = errors.New("the file is empty")
	ErrMalformedRouteLine = errors.New("each route line must have three parts; origin destination weight (i.e. A B 4)")
	ErrUnknownStation     = errors.New("the specified stations don't exist")
	ErrInvalidWeight      = errors.New("the trip duration must be a valid number")

	// ErrUnknownVertex is returned by the graph when a station is not one of its vertices.
	ErrUnknownVertex = errors.New("station is not part of the network")
)

// LineError reports a structural problem on a given line of a network file.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
