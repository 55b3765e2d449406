package batch

import (
	"testing"

	"github.com/dpshade/prompt-loom/internal/errors"
)

func TestComposeExactFormat(t *testing.T) {
	got := Compose("a", "b", "c")
	want := "a, __________ ,b, __________ ,c"
	if got != want {
		t.Errorf("Expected '%s', got '%s'", want, got)
	}
}

func TestComposeNormalizesWhitespace(t *testing.T) {
	got := Compose("  masterpiece,\n best quality ", "a  cat", "\tsharp focus\n")
	want := "masterpiece, best quality, __________ ,a cat, __________ ,sharp focus"
	if got != want {
		t.Errorf("Expected '%s', got '%s'", want, got)
	}
}

func TestComposeDropsEmptySegments(t *testing.T) {
	cases := []struct {
		top, middle, bottom string
		want                string
	}{
		{"a", "", "c", "a, __________ ,c"},
		{"", "b", "", "b"},
		{"a", "b", "", "a, __________ ,b"},
		{"", "", "", ""},
		{"  ", "\n", "\t", ""},
	}
	for _, tc := range cases {
		got := Compose(tc.top, tc.middle, tc.bottom)
		if got != tc.want {
			t.Errorf("Compose(%q, %q, %q): expected '%s', got '%s'",
				tc.top, tc.middle, tc.bottom, tc.want, got)
		}
	}
}

func TestSplitInvertsCompose(t *testing.T) {
	top, middle, bottom := Split(Compose("a", "b", "c"))
	if top != "a" || middle != "b" || bottom != "c" {
		t.Errorf("Expected (a, b, c), got (%s, %s, %s)", top, middle, bottom)
	}
}

func TestSplitShortLines(t *testing.T) {
	top, middle, bottom := Split("solo segment")
	if top != "solo segment" || middle != "" || bottom != "" {
		t.Errorf("Expected (solo segment, , ), got (%s, %s, %s)", top, middle, bottom)
	}

	top, middle, bottom = Split("a, __________ ,b")
	if top != "a" || middle != "b" || bottom != "" {
		t.Errorf("Expected (a, b, ), got (%s, %s, %s)", top, middle, bottom)
	}
}

func TestAddRejectsEmptyComposition(t *testing.T) {
	l := NewList()
	_, err := l.Add("  ", "", "\n")
	if err == nil {
		t.Fatal("Expected error adding an all-empty line")
	}
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Expected INVALID_INPUT, got %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("Expected empty list after rejected add, got %d lines", l.Len())
	}
}

func TestMoveSwapsNeighbors(t *testing.T) {
	l := NewList()
	l.Add("first", "", "")
	l.Add("second", "", "")
	l.Add("third", "", "")

	if err := l.Move(0, Down); err != nil {
		t.Fatalf("Expected move to succeed, got %v", err)
	}
	rendered := l.Rendered()
	if rendered[0] != "second" || rendered[1] != "first" {
		t.Errorf("Expected [second first third], got %v", rendered)
	}

	if err := l.Move(2, Up); err != nil {
		t.Fatalf("Expected move to succeed, got %v", err)
	}
	rendered = l.Rendered()
	if rendered[1] != "third" || rendered[2] != "first" {
		t.Errorf("Expected [second third first], got %v", rendered)
	}
}

func TestMoveAtEdgesIsNoOp(t *testing.T) {
	l := NewList()
	l.Add("first", "", "")
	l.Add("second", "", "")
	before := l.Rendered()

	err := l.Move(0, Up)
	if !errors.HasCode(err, errors.ErrCodeBounds) {
		t.Errorf("Expected BOUNDS_ERROR moving first line up, got %v", err)
	}

	err = l.Move(1, Down)
	if !errors.HasCode(err, errors.ErrCodeBounds) {
		t.Errorf("Expected BOUNDS_ERROR moving last line down, got %v", err)
	}

	after := l.Rendered()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("Expected list unchanged after edge moves, got %v", after)
			break
		}
	}
}

func TestRemoveOutOfRangeIsNoOp(t *testing.T) {
	l := NewList()
	l.Add("only", "", "")

	if err := l.Remove(5); !errors.HasCode(err, errors.ErrCodeBounds) {
		t.Errorf("Expected BOUNDS_ERROR, got %v", err)
	}
	if err := l.Remove(-1); !errors.HasCode(err, errors.ErrCodeBounds) {
		t.Errorf("Expected BOUNDS_ERROR, got %v", err)
	}
	if l.Len() != 1 {
		t.Errorf("Expected list untouched, got %d lines", l.Len())
	}

	if err := l.Remove(0); err != nil {
		t.Fatalf("Expected in-range remove to succeed, got %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("Expected empty list, got %d lines", l.Len())
	}
}

func TestEditReRendersLine(t *testing.T) {
	l := NewList()
	l.Add("old top", "old middle", "old bottom")

	line, err := l.Edit(0, "new top", "", "new bottom")
	if err != nil {
		t.Fatalf("Expected edit to succeed, got %v", err)
	}
	want := "new top, __________ ,new bottom"
	if line.Rendered != want {
		t.Errorf("Expected '%s', got '%s'", want, line.Rendered)
	}
	if line.Parts.Middle != "" {
		t.Errorf("Expected middle segment cleared, got '%s'", line.Parts.Middle)
	}
}

func TestEditOutOfRangeIsNoOp(t *testing.T) {
	l := NewList()
	l.Add("keep", "", "")

	_, err := l.Edit(3, "a", "b", "c")
	if !errors.HasCode(err, errors.ErrCodeBounds) {
		t.Errorf("Expected BOUNDS_ERROR, got %v", err)
	}
	if rendered := l.Rendered(); rendered[0] != "keep" {
		t.Errorf("Expected line unchanged, got '%s'", rendered[0])
	}
}

func TestClearDropsAllLines(t *testing.T) {
	l := NewList()
	l.Add("a", "", "")
	l.Add("b", "", "")

	l.Clear()
	if l.Len() != 0 {
		t.Errorf("Expected empty list after clear, got %d lines", l.Len())
	}
}
