package pipeline

import (
	"reflect"

	"github.com/maxfl/SelectorFramework/errors"
)

// Pred is a predicate over a concrete component type, used to
// disambiguate lookups when several components match the type.
type Pred[T any] func(T) bool

// AlgorithmOf returns the first registered algorithm whose runtime type
// matches A and which satisfies every given predicate. The scan is linear
// in registration order; lookups are expected only during the one-time
// connect phase, so simplicity wins over indexing.
func AlgorithmOf[A Algorithm](p *Pipeline, preds ...Pred[A]) (A, error) {
	for _, alg := range p.algorithms {
		if cand, ok := any(alg).(A); ok && matches(cand, preds) {
			return cand, nil
		}
	}
	var zero A
	return zero, errors.NotFound("algorithm", typeName[A]())
}

// ToolOf returns the first registered tool whose runtime type matches T
// and which satisfies every given predicate.
func ToolOf[T Tool](p *Pipeline, preds ...Pred[T]) (T, error) {
	for _, tool := range p.tools {
		if cand, ok := any(tool).(T); ok && matches(cand, preds) {
			return cand, nil
		}
	}
	var zero T
	return zero, errors.NotFound("tool", typeName[T]())
}

// AlgorithmByTag returns the registered algorithm of type A whose tag
// accessor equals tag. A type-matching component that does not implement
// Tagged is a programming error and yields a "not implemented" failure,
// distinct from "not found".
func AlgorithmByTag[A Algorithm](p *Pipeline, tag int) (A, error) {
	var zero A
	for _, alg := range p.algorithms {
		cand, ok := any(alg).(A)
		if !ok {
			continue
		}
		tagged, ok := any(cand).(Tagged)
		if !ok {
			return zero, errors.NotImplemented("tag accessor", typeName[A]())
		}
		if tagged.Tag() == tag {
			return cand, nil
		}
	}
	return zero, errors.NotFound("algorithm", typeName[A]()).WithDetail("tag", tag)
}

// ToolByTag returns the registered tool of type T whose tag accessor
// equals tag.
func ToolByTag[T Tool](p *Pipeline, tag int) (T, error) {
	var zero T
	for _, tool := range p.tools {
		cand, ok := any(tool).(T)
		if !ok {
			continue
		}
		tagged, ok := any(cand).(Tagged)
		if !ok {
			return zero, errors.NotImplemented("tag accessor", typeName[T]())
		}
		if tagged.Tag() == tag {
			return cand, nil
		}
	}
	return zero, errors.NotFound("tool", typeName[T]()).WithDetail("tag", tag)
}

// MustAlgorithmOf is AlgorithmOf that panics on failure. A failed lookup
// during assembly is fatal anyway, so connect hooks that cannot sensibly
// continue use this form.
func MustAlgorithmOf[A Algorithm](p *Pipeline, preds ...Pred[A]) A {
	alg, err := AlgorithmOf(p, preds...)
	if err != nil {
		panic(err)
	}
	return alg
}

// MustToolOf is ToolOf that panics on failure.
func MustToolOf[T Tool](p *Pipeline, preds ...Pred[T]) T {
	tool, err := ToolOf(p, preds...)
	if err != nil {
		panic(err)
	}
	return tool
}

func matches[T any](cand T, preds []Pred[T]) bool {
	for _, pred := range preds {
		if pred != nil && !pred(cand) {
			return false
		}
	}
	return true
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
