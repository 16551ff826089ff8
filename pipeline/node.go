package pipeline

// Status is the tri-state result an Algorithm returns from Execute.
type Status int

const (
	// Continue proceeds to the next algorithm in the current cycle.
	Continue Status = iota
	// SkipToNext aborts the remainder of the current cycle for all
	// algorithms and immediately begins the next cycle.
	SkipToNext
	// EndOfFile reports that the returning reader has no more input. The
	// reader leaves the active set; the current cycle is not aborted.
	EndOfFile
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Continue:
		return "continue"
	case SkipToNext:
		return "skip_to_next"
	case EndOfFile:
		return "end_of_file"
	default:
		return "unknown"
	}
}

// Component is the capability shared by every pipeline citizen. It is
// satisfied by embedding Base; the unexported bind method makes the
// embedding mandatory.
type Component interface {
	bind(p *Pipeline)

	// Connect is invoked exactly once during the connect phase, after
	// every component has been registered. Override it to look up peer
	// components; lookups always see the full set.
	Connect(p *Pipeline) error
}

// Base gives a component its back-reference to the owning pipeline. The
// reference is established once, during the connect phase, and never
// changes afterward.
type Base struct {
	pipe *Pipeline
}

func (b *Base) bind(p *Pipeline) { b.pipe = p }

// Pipe returns the owning pipeline. Valid from the connect phase onward.
func (b *Base) Pipe() *Pipeline { return b.pipe }

// Connect is a no-op by default.
func (b *Base) Connect(*Pipeline) error { return nil }

// Tool is a component providing shared helper behavior, excluded from the
// execution loop.
type Tool interface {
	Component
}

// BaseTool is the embeddable default Tool implementation.
type BaseTool struct {
	Base
}

// Algorithm is a component participating in the per-cycle execution loop.
type Algorithm interface {
	Component

	// Load tells the algorithm which input sources the run will read.
	// Called once, before the connect phase.
	Load(sources []string) error

	// Execute performs one cycle of work.
	Execute() (Status, error)

	// Finalize runs once after the cycle loop ends, in registration
	// order. Typical implementations flush results to output resources.
	Finalize(p *Pipeline) error

	// Reader reports whether this algorithm represents an input stream
	// and therefore drives loop termination.
	Reader() bool
}

// BaseAlgorithm supplies no-op defaults for every Algorithm method except
// Execute, which concrete types must provide.
type BaseAlgorithm struct {
	Base
}

// Load is a no-op by default.
func (*BaseAlgorithm) Load([]string) error { return nil }

// Finalize is a no-op by default.
func (*BaseAlgorithm) Finalize(*Pipeline) error { return nil }

// Reader reports false; reader algorithms override this.
func (*BaseAlgorithm) Reader() bool { return false }

// Tagged is optionally implemented by components that expose an integral
// tag for disambiguating multiple instances of the same type. Looking up
// an untagged type by tag is a programming error, not a data error.
type Tagged interface {
	Tag() int
}

// VetoIf returns SkipToNext when cond holds, Continue otherwise. It reads
// well in cut-style algorithms:
//
//	return pipeline.VetoIf(hit.Charge < threshold), nil
func VetoIf(cond bool) Status {
	if cond {
		return SkipToNext
	}
	return Continue
}
