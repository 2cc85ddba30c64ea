package content

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateSlug is returned when two records of one file share a slug.
var ErrDuplicateSlug = errors.New("duplicate slug")

// RecordError reports one service, location or page that could not be used.
// The rest of the batch carries on without it.
type RecordError struct {
	Location string
	Service  string
	Err      error
}

func (e RecordError) Error() string {
	switch {
	case e.Location != "" && e.Service != "":
		return fmt.Sprintf("%s/%s: %v", e.Location, e.Service, e.Err)
	case e.Location != "":
		return fmt.Sprintf("location %s: %v", e.Location, e.Err)
	case e.Service != "":
		return fmt.Sprintf("service %s: %v", e.Service, e.Err)
	default:
		return e.Err.Error()
	}
}

func (e RecordError) Unwrap() error { return e.Err }

// RecordErrors is a list of rejected records.
type RecordErrors []RecordError

func (e RecordErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}
