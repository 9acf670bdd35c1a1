package clipboard

import (
	"errors"
	"testing"
)

func TestFuncAdapter(t *testing.T) {
	var got string
	w := Func(func(text string) error {
		got = text
		return nil
	})
	if err := w.WriteAll("copied"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "copied" {
		t.Fatalf("got %q", got)
	}

	failure := errors.New("boom")
	if err := Func(func(string) error { return failure }).WriteAll("x"); !errors.Is(err, failure) {
		t.Fatalf("expected failure, got %v", err)
	}
}

var _ Writer = System{}
