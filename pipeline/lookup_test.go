package pipeline

import (
	"testing"

	"github.com/maxfl/SelectorFramework/errors"
)

// taggedReader is a mock reader distinguished by an integral tag, like a
// per-detector reader instance.
type taggedReader struct {
	mockReader
	tag int
}

func (r *taggedReader) Tag() int { return r.tag }

// namedTool is a mock tool distinguished by a string label.
type namedTool struct {
	BaseTool
	label string
}

// taggedTool is a mock tool distinguished by an integral tag.
type taggedTool struct {
	BaseTool
	tag int
}

func (t *taggedTool) Tag() int { return t.tag }

func TestAlgorithmOf_FirstMatch(t *testing.T) {
	p := newTestPipeline()
	first := Add(p, &mockReader{limit: 1})
	Add(p, &mockReader{limit: 2})

	got, err := AlgorithmOf[*mockReader](p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != first {
		t.Error("expected the first registered instance")
	}
}

func TestAlgorithmOf_Predicate(t *testing.T) {
	p := newTestPipeline()
	Add(p, &mockReader{limit: 1})
	second := Add(p, &mockReader{limit: 2})

	got, err := AlgorithmOf(p, func(r *mockReader) bool { return r.limit == 2 })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != second {
		t.Error("expected the predicate to select the second instance")
	}
}

func TestAlgorithmOf_NotFound(t *testing.T) {
	p := newTestPipeline()
	Add(p, &funcAlg{})

	_, err := AlgorithmOf[*mockReader](p)
	if !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestAlgorithmOf_PredicateRejectsAll(t *testing.T) {
	p := newTestPipeline()
	Add(p, &mockReader{limit: 1})

	_, err := AlgorithmOf(p, func(r *mockReader) bool { return false })
	if !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestToolOf(t *testing.T) {
	p := newTestPipeline()
	ad := AddTool(p, &namedTool{label: "AD1"})
	AddTool(p, &namedTool{label: "AD2"})

	got, err := ToolOf[*namedTool](p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != ad {
		t.Error("expected the first registered tool")
	}

	byLabel, err := ToolOf(p, func(tl *namedTool) bool { return tl.label == "AD2" })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byLabel.label != "AD2" {
		t.Errorf("expected AD2, got %s", byLabel.label)
	}
}

func TestToolOf_NotFound(t *testing.T) {
	p := newTestPipeline()
	_, err := ToolOf[*namedTool](p)
	if !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestAlgorithmByTag(t *testing.T) {
	p := newTestPipeline()
	one := Add(p, &taggedReader{tag: 1})
	two := Add(p, &taggedReader{tag: 2})

	got1, err := AlgorithmByTag[*taggedReader](p, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got2, err := AlgorithmByTag[*taggedReader](p, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got1 != one || got2 != two {
		t.Error("tag lookup returned the wrong instances")
	}
}

func TestAlgorithmByTag_NotFound(t *testing.T) {
	p := newTestPipeline()
	Add(p, &taggedReader{tag: 1})

	_, err := AlgorithmByTag[*taggedReader](p, 7)
	if !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestAlgorithmByTag_NotImplemented(t *testing.T) {
	p := newTestPipeline()
	Add(p, &mockReader{limit: 1}) // matches the type but has no Tag()

	_, err := AlgorithmByTag[*mockReader](p, 1)
	if !errors.HasCode(err, errors.ErrCodeNotImplemented) {
		t.Fatalf("expected NOT_IMPLEMENTED, got %v", err)
	}
}

func TestToolByTag(t *testing.T) {
	p := newTestPipeline()
	AddTool(p, &taggedTool{tag: 1})
	want := AddTool(p, &taggedTool{tag: 4})

	got, err := ToolByTag[*taggedTool](p, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Error("tag lookup returned the wrong instance")
	}

	if _, err := ToolByTag[*taggedTool](p, 9); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if _, err := ToolByTag[*namedTool](p, 1); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND for absent type, got %v", err)
	}
}

func TestMustAlgorithmOf_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on failed lookup")
		}
	}()
	MustAlgorithmOf[*mockReader](newTestPipeline())
}

func TestMustToolOf(t *testing.T) {
	p := newTestPipeline()
	want := AddTool(p, &namedTool{label: "AD1"})
	if got := MustToolOf[*namedTool](p); got != want {
		t.Error("expected the registered tool")
	}
}
