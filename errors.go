package hybridplan

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// ErrorKind distinguishes the input-validation failures Plan can report;
// spec.md §7 ERROR HANDLING DESIGN.
type ErrorKind int

// The three hard-failure kinds. NoPathFound is not among them: spec.md §7
// treats an empty result as a successful return, not an error.
const (
	InvalidEndpoint ErrorKind = iota
	InvalidWorkspace
	InvalidConfig
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidEndpoint:
		return "InvalidEndpoint"
	case InvalidWorkspace:
		return "InvalidWorkspace"
	case InvalidConfig:
		return "InvalidConfig"
	default:
		return "UnknownError"
	}
}

// PlanError reports a single input-validation failure.
type PlanError struct {
	Kind ErrorKind
	Msg  string
}

func (e *PlanError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func newPlanError(kind ErrorKind, format string, args ...interface{}) error {
	return pkgerrors.WithStack(&PlanError{Kind: kind, Msg: fmt.Sprintf(format, args...)})
}

// KindOf unwraps err to find the ErrorKind of the innermost PlanError, if
// any.
func KindOf(err error) (ErrorKind, bool) {
	var pe *PlanError
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}
