package document

import (
	"errors"
	"testing"

	"github.com/dshills/tablestorm/internal/syntax"
)

func TestReplace(t *testing.T) {
	t.Run("substitutes range", func(t *testing.T) {
		d := New("hello world")
		ch, err := d.Replace(6, 11, "there")
		if err != nil {
			t.Fatalf("Replace: %v", err)
		}
		if d.Text() != "hello there" {
			t.Errorf("text = %q", d.Text())
		}
		if ch.OldText != "world" || ch.NewText != "there" {
			t.Errorf("change texts = %q -> %q", ch.OldText, ch.NewText)
		}
		if ch.NewRange != (syntax.Span{From: 6, To: 11}) {
			t.Errorf("new range = %s", ch.NewRange)
		}
	})

	t.Run("bumps revision", func(t *testing.T) {
		d := New("abc")
		if d.Revision() != 0 {
			t.Fatalf("fresh revision = %d", d.Revision())
		}
		ch, _ := d.Replace(0, 1, "x")
		if d.Revision() != 1 || ch.Revision != 1 {
			t.Errorf("revision = %d, change revision = %d", d.Revision(), ch.Revision)
		}
	})

	t.Run("rejects invalid range", func(t *testing.T) {
		d := New("abc")
		for _, span := range [][2]int{{-1, 2}, {0, 4}, {2, 1}} {
			if _, err := d.Replace(span[0], span[1], "x"); !errors.Is(err, ErrRangeInvalid) {
				t.Errorf("Replace(%d, %d) err = %v, want ErrRangeInvalid", span[0], span[1], err)
			}
		}
		if d.Text() != "abc" {
			t.Errorf("failed replace mutated text to %q", d.Text())
		}
	})

	t.Run("insertion and deletion", func(t *testing.T) {
		d := New("ac")
		if _, err := d.Replace(1, 1, "b"); err != nil {
			t.Fatalf("insert: %v", err)
		}
		if d.Text() != "abc" {
			t.Errorf("after insert text = %q", d.Text())
		}
		if _, err := d.Replace(0, 2, ""); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if d.Text() != "c" {
			t.Errorf("after delete text = %q", d.Text())
		}
	})
}

func TestSlice(t *testing.T) {
	d := New("hello")
	got, err := d.Slice(1, 4)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if got != "ell" {
		t.Errorf("Slice = %q", got)
	}
	if _, err := d.Slice(3, 99); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("out of range err = %v", err)
	}
}

func TestListenerOrder(t *testing.T) {
	d := New("abcdef")
	var order []int
	d.Subscribe(func(Change) { order = append(order, 1) })
	d.Subscribe(func(Change) { order = append(order, 2) })
	d.Subscribe(func(Change) { order = append(order, 3) })

	if _, err := d.Replace(0, 1, "z"); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if len(order) != 3 {
		t.Fatalf("%d listeners ran, want 3", len(order))
	}
	for i, got := range order {
		if got != i+1 {
			t.Errorf("listener %d ran in position %d", got, i)
		}
	}
}

func TestMapOffset(t *testing.T) {
	// "aaBBcc" with BB replaced by a single X: [2,4) -> [2,3).
	ch := Change{
		OldRange: syntax.Span{From: 2, To: 4},
		NewRange: syntax.Span{From: 2, To: 3},
		OldText:  "BB",
		NewText:  "X",
	}

	cases := []struct {
		name string
		in   syntax.Offset
		want syntax.Offset
	}{
		{"before change", 1, 1},
		{"at change start", 2, 2},
		{"inside collapses to start", 3, 2},
		{"at change end shifts", 4, 3},
		{"after change shifts", 6, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ch.MapOffset(tc.in); got != tc.want {
				t.Errorf("MapOffset(%d) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestMapSpan(t *testing.T) {
	grow := Change{
		OldRange: syntax.Span{From: 10, To: 12},
		NewRange: syntax.Span{From: 10, To: 20},
		OldText:  "ab",
		NewText:  "abcdefghij",
	}

	t.Run("span after edit shifts by delta", func(t *testing.T) {
		got := grow.MapSpan(syntax.Span{From: 30, To: 40})
		if got != (syntax.Span{From: 38, To: 48}) {
			t.Errorf("MapSpan = %s", got)
		}
	})

	t.Run("span before edit unchanged", func(t *testing.T) {
		got := grow.MapSpan(syntax.Span{From: 0, To: 5})
		if got != (syntax.Span{From: 0, To: 5}) {
			t.Errorf("MapSpan = %s", got)
		}
	})

	t.Run("span covering edit stretches", func(t *testing.T) {
		got := grow.MapSpan(syntax.Span{From: 5, To: 15})
		if got != (syntax.Span{From: 5, To: 23}) {
			t.Errorf("MapSpan = %s", got)
		}
	})

	t.Run("replaced span tracks new range", func(t *testing.T) {
		got := grow.MapSpan(syntax.Span{From: 10, To: 12})
		if got != (syntax.Span{From: 10, To: 20}) {
			t.Errorf("MapSpan = %s", got)
		}
	})
}

func TestChangeDelta(t *testing.T) {
	ch := Change{
		OldRange: syntax.Span{From: 0, To: 3},
		NewRange: syntax.Span{From: 0, To: 8},
		OldText:  "abc",
		NewText:  "abcdefgh",
	}
	if ch.Delta() != 5 {
		t.Errorf("Delta = %d, want 5", ch.Delta())
	}
}
