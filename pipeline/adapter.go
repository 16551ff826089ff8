package pipeline

// Payload is the capability pair a reader exposes to consumers: whether a
// record is ready this cycle, and the record itself. Data is only
// meaningful while Ready reports true.
type Payload[D any] interface {
	Ready() bool
	Data() D
}

// Reader is an algorithm that exposes a current payload. Consumer
// adapters bind to readers through this interface.
type Reader[D any] interface {
	Algorithm
	Payload[D]
}

// Consumer is the user-supplied consumption step of a ConsumerAlg.
type Consumer[D any] func(D) (Status, error)

// ConsumerAlg is a reusable algorithm shape bound to exactly one reader
// of type R. During the connect phase it looks up the first registered
// instance of R; on each cycle it forwards the reader's ready payload to
// the consumption step, or returns Continue when the reader holds nothing
// new. The adapter itself is never a reader.
type ConsumerAlg[R Reader[D], D any] struct {
	BaseAlgorithm
	reader  R
	consume Consumer[D]
}

// NewConsumer creates a ConsumerAlg from a consumption function:
//
//	pipeline.Add(p, pipeline.NewConsumer[*HitReader](fillSpectrum))
func NewConsumer[R Reader[D], D any](consume Consumer[D]) *ConsumerAlg[R, D] {
	return &ConsumerAlg[R, D]{consume: consume}
}

// Connect binds the first registered reader of type R. A missing reader
// fails the connect phase and thereby pipeline assembly.
func (a *ConsumerAlg[R, D]) Connect(p *Pipeline) error {
	reader, err := AlgorithmOf[R](p)
	if err != nil {
		return err
	}
	a.reader = reader
	return nil
}

// Bound returns the reader the adapter connected to.
func (a *ConsumerAlg[R, D]) Bound() R { return a.reader }

// Execute forwards the reader's payload when one is ready.
func (a *ConsumerAlg[R, D]) Execute() (Status, error) {
	if !a.reader.Ready() {
		return Continue, nil
	}
	return a.consume(a.reader.Data())
}
