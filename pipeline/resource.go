package pipeline

import (
	"fmt"

	"github.com/maxfl/SelectorFramework/errors"
	"github.com/maxfl/SelectorFramework/logger"
	"github.com/maxfl/SelectorFramework/store"
)

// DefaultOutput is the reserved logical name of the default output
// resource.
const DefaultOutput = "default"

// CreateOutput binds name to a newly created output file at path,
// truncating any existing file there. Binding an already-bound name fails
// with an "already open" error unless reopen is set, in which case the
// prior handle is closed and replaced.
func (p *Pipeline) CreateOutput(path, name string, reopen bool) (*store.File, error) {
	if prev, ok := p.outputs[name]; ok {
		if !reopen {
			return nil, errors.AlreadyOpen(name).WithDetail("path", path)
		}
		if err := prev.Close(); err != nil {
			return nil, err
		}
		delete(p.outputs, name)
	} else {
		p.outputOrder = append(p.outputOrder, name)
	}

	out, err := p.backend.Create(path)
	if err != nil {
		return nil, err
	}
	p.outputs[name] = out
	p.log.Debug("output opened", logger.Fields(
		logger.FieldOutput, name,
		"path", path,
		"reopen", reopen,
	))
	return out, nil
}

// Output returns the output file bound to name. An unbound name is an
// error; use EnsureOutput when insertion on miss is actually wanted.
func (p *Pipeline) Output(name string) (*store.File, error) {
	out, ok := p.outputs[name]
	if !ok {
		return nil, errors.NotOpen(name)
	}
	return out, nil
}

// DefaultOut returns the output bound to the default name.
func (p *Pipeline) DefaultOut() (*store.File, error) {
	return p.Output(DefaultOutput)
}

// EnsureOutput returns the output bound to name, creating and binding one
// at path first if the name is unbound.
func (p *Pipeline) EnsureOutput(path, name string) (*store.File, error) {
	if out, ok := p.outputs[name]; ok {
		return out, nil
	}
	return p.CreateOutput(path, name, false)
}

// SourceCount reports how many input sources were supplied to Process.
func (p *Pipeline) SourceCount() int {
	return len(p.sources)
}

// Source returns the opened input file for the i-th source supplied to
// Process, opening and caching it on first access. Handles are shared:
// callers must not close them; the pipeline releases them in Close.
func (p *Pipeline) Source(i int) (*store.File, error) {
	if i < 0 || i >= len(p.sources) {
		return nil, errors.Internal(fmt.Errorf("source index %d out of range [0,%d)", i, len(p.sources)))
	}
	path := p.sources[i]
	if in, ok := p.inputs[path]; ok {
		return in, nil
	}
	in, err := p.backend.Open(path)
	if err != nil {
		return nil, err
	}
	p.inputs[path] = in
	p.log.Debug("input opened", logger.Fields(logger.FieldSource, path))
	return in, nil
}
