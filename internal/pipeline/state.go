package pipeline

import "fmt"

// Phase represents a phase of a build.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseLoadContent
	PhaseValidate
	PhaseGenerate
	PhaseWrite
	PhaseSitemap
	PhaseLedger
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseLoadContent:
		return "load-content"
	case PhaseValidate:
		return "validate"
	case PhaseGenerate:
		return "generate"
	case PhaseWrite:
		return "write"
	case PhaseSitemap:
		return "sitemap"
	case PhaseLedger:
		return "ledger"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// PhaseError wraps the error that stopped a build in a given phase.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }
