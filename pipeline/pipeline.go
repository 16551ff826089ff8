package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/maxfl/SelectorFramework/logger"
	"github.com/maxfl/SelectorFramework/observability"
	"github.com/maxfl/SelectorFramework/store"
)

// Pipeline owns every Algorithm, Tool and named output resource, and
// drives the phased execution protocol: load, connect, cycle loop,
// finalize. Components never outlive the pipeline; output resources stay
// open until Close, after every component has been released.
//
// A Pipeline is single-threaded and cooperative. There is no parallelism
// anywhere in the engine: within a phase, algorithms run strictly in
// registration order.
type Pipeline struct {
	algorithms    []Algorithm
	tools         []Tool
	activeReaders map[Algorithm]struct{}

	backend     store.Backend
	outputs     map[string]*store.File
	outputOrder []string

	sources []string
	inputs  map[string]*store.File

	log     *logger.Logger
	metrics *observability.Metrics
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithBackend sets the storage backend used for output and input files.
func WithBackend(b store.Backend) Option {
	return func(p *Pipeline) { p.backend = b }
}

// WithLogger sets the pipeline logger.
func WithLogger(l *logger.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// WithMetrics installs metric instruments for cycle and execute counts.
func WithMetrics(m *observability.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// New creates an empty pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		activeReaders: make(map[Algorithm]struct{}),
		outputs:       make(map[string]*store.File),
		inputs:        make(map[string]*store.File),
		backend:       store.NewOS(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = logger.WithComponent("pipeline")
	}
	return p
}

// AddAlgorithm appends alg to the execution order and takes ownership.
// Reader algorithms additionally join the active-reader set. Registering
// two components of the same type is allowed; lookups disambiguate by
// predicate or tag.
func (p *Pipeline) AddAlgorithm(alg Algorithm) Algorithm {
	p.algorithms = append(p.algorithms, alg)
	if alg.Reader() {
		p.activeReaders[alg] = struct{}{}
	}
	p.log.Debug("algorithm registered", logger.Fields(
		logger.FieldAlgorithm, fmt.Sprintf("%T", alg),
		"reader", alg.Reader(),
	))
	return alg
}

// AddTool appends tool to the tool collection and takes ownership.
func (p *Pipeline) AddTool(tool Tool) Tool {
	p.tools = append(p.tools, tool)
	p.log.Debug("tool registered", logger.Fields(
		logger.FieldTool, fmt.Sprintf("%T", tool),
	))
	return tool
}

// Add registers alg and returns it with its concrete type preserved, so
// assembly code can keep a typed handle:
//
//	reader := pipeline.Add(p, NewHitReader(cfg))
func Add[A Algorithm](p *Pipeline, alg A) A {
	p.AddAlgorithm(alg)
	return alg
}

// AddTool registers tool and returns it with its concrete type preserved.
func AddTool[T Tool](p *Pipeline, tool T) T {
	p.AddTool(tool)
	return tool
}

// Process runs the full lifecycle once: load, connect, the cycle loop,
// then finalize. It returns after every reader reports end-of-file — or
// never, if a reader is misconfigured to run forever. Any error from a
// component aborts the run immediately; a failed cycle is a defect to
// fix, not a recoverable event.
func (p *Pipeline) Process(ctx context.Context, sources []string) error {
	runID := uuid.NewString()
	start := time.Now()

	ctx, span := observability.StartSpan(ctx, "pipeline.process")
	defer span.End()
	observability.SetSpanAttribute(ctx, "pipeline.run_id", runID)
	observability.SetSpanAttribute(ctx, "pipeline.sources", len(sources))

	p.sources = append([]string(nil), sources...)
	log := p.log.WithFields(logger.Fields(logger.FieldRunID, runID))

	log.Info("process started", logger.Fields(
		"sources", len(p.sources),
		"algorithms", len(p.algorithms),
		"tools", len(p.tools),
		"readers", len(p.activeReaders),
	))

	if err := p.load(log); err != nil {
		p.recordError(ctx, "load")
		observability.SetSpanError(ctx, err)
		return err
	}
	if err := p.connect(log); err != nil {
		p.recordError(ctx, "connect")
		observability.SetSpanError(ctx, err)
		return err
	}

	cycles, err := p.run(ctx, log)
	if err != nil {
		p.recordError(ctx, "execute")
		observability.SetSpanError(ctx, err)
		return err
	}
	observability.SetSpanAttribute(ctx, "pipeline.cycles", cycles)

	// For convenience, make the default output the ambient one before
	// finalizers run.
	if out, ok := p.outputs[DefaultOutput]; ok {
		store.SetCurrent(out)
	}

	if err := p.finalize(log); err != nil {
		p.recordError(ctx, "finalize")
		observability.SetSpanError(ctx, err)
		return err
	}

	log.Info("process finished", logger.Fields(
		logger.FieldCycle, cycles,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return nil
}

func (p *Pipeline) load(log *logger.Logger) error {
	log.Debug("load phase", logger.Fields(logger.FieldPhase, "load"))
	for _, alg := range p.algorithms {
		if err := alg.Load(p.sources); err != nil {
			return fmt.Errorf("load phase: %T: %w", alg, err)
		}
	}
	return nil
}

// connect binds every component to its owner and invokes the Connect
// hook, algorithms first, then tools. This is the only place
// cross-references are established; it runs after all components exist.
func (p *Pipeline) connect(log *logger.Logger) error {
	log.Debug("connect phase", logger.Fields(logger.FieldPhase, "connect"))
	for _, alg := range p.algorithms {
		alg.bind(p)
		if err := alg.Connect(p); err != nil {
			return fmt.Errorf("connect phase: %T: %w", alg, err)
		}
	}
	for _, tool := range p.tools {
		tool.bind(p)
		if err := tool.Connect(p); err != nil {
			return fmt.Errorf("connect phase: %T: %w", tool, err)
		}
	}
	return nil
}

// run executes cycles until the active-reader set is empty. With zero
// readers the loop never starts.
func (p *Pipeline) run(ctx context.Context, log *logger.Logger) (int, error) {
	cycles := 0
	for len(p.activeReaders) > 0 {
		if err := ctx.Err(); err != nil {
			return cycles, err
		}
		cycles++
		if p.metrics != nil {
			p.metrics.RecordCycle(ctx)
		}

	cycle:
		for _, alg := range p.algorithms {
			// Exhausted readers are skipped without being invoked.
			if alg.Reader() {
				if _, active := p.activeReaders[alg]; !active {
					continue
				}
			}

			status, err := p.execute(ctx, alg)
			if err != nil {
				return cycles, fmt.Errorf("cycle %d: %T: %w", cycles, alg, err)
			}

			switch status {
			case SkipToNext:
				break cycle
			case EndOfFile:
				delete(p.activeReaders, alg)
				log.Debug("reader exhausted", logger.Fields(
					logger.FieldAlgorithm, fmt.Sprintf("%T", alg),
					logger.FieldCycle, cycles,
					"remaining", len(p.activeReaders),
				))
			}
		}
	}
	return cycles, nil
}

func (p *Pipeline) recordError(ctx context.Context, phase string) {
	if p.metrics != nil {
		p.metrics.RecordError(ctx, phase, "pipeline")
	}
}

func (p *Pipeline) execute(ctx context.Context, alg Algorithm) (Status, error) {
	start := time.Now()
	status, err := alg.Execute()
	if p.metrics != nil {
		result := status.String()
		if err != nil {
			result = "error"
		}
		p.metrics.RecordExecute(ctx, fmt.Sprintf("%T", alg), result, time.Since(start))
	}
	return status, err
}

func (p *Pipeline) finalize(log *logger.Logger) error {
	log.Debug("finalize phase", logger.Fields(logger.FieldPhase, "finalize"))
	for _, alg := range p.algorithms {
		if err := alg.Finalize(p); err != nil {
			return fmt.Errorf("finalize phase: %T: %w", alg, err)
		}
	}
	return nil
}

// Close releases everything the pipeline owns. Components that implement
// io.Closer close first, in reverse registration order; output files
// close after them, so outputs are still open while components release
// their state; cached input handles close last.
func (p *Pipeline) Close() error {
	var errs []error

	for i := len(p.tools) - 1; i >= 0; i-- {
		if c, ok := p.tools[i].(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("tool %T: %w", p.tools[i], err))
			}
		}
	}
	for i := len(p.algorithms) - 1; i >= 0; i-- {
		if c, ok := p.algorithms[i].(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("algorithm %T: %w", p.algorithms[i], err))
			}
		}
	}

	if cur := store.Current(); cur != nil {
		for _, out := range p.outputs {
			if cur == out {
				store.SetCurrent(nil)
				break
			}
		}
	}

	for i := len(p.outputOrder) - 1; i >= 0; i-- {
		name := p.outputOrder[i]
		out, ok := p.outputs[name]
		if !ok {
			continue // released by a reopen
		}
		if err := out.Close(); err != nil {
			errs = append(errs, fmt.Errorf("output %q: %w", name, err))
		}
		delete(p.outputs, name)
	}

	for path, in := range p.inputs {
		if err := in.Close(); err != nil {
			errs = append(errs, fmt.Errorf("input %q: %w", path, err))
		}
		delete(p.inputs, path)
	}

	if len(errs) > 0 {
		return fmt.Errorf("pipeline close: %v", errs)
	}
	return nil
}
