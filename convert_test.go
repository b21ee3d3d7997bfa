package viomi

import (
	"reflect"
	"testing"
)

func TestIntFrom(t *testing.T) {
	tests := []struct {
		in   any
		want int
		ok   bool
	}{
		{float64(42), 42, true},
		{int(7), 7, true},
		{int64(9), 9, true},
		{"17", 17, true},
		{"seventeen", 0, false},
		{nil, 0, false},
		{[]any{}, 0, false},
	}
	for _, tt := range tests {
		got, ok := intFrom(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("intFrom(%v) = %d, %t", tt.in, got, ok)
		}
	}
}

func TestFloatFrom(t *testing.T) {
	if got, ok := floatFrom("2.5"); !ok || got != 2.5 {
		t.Errorf("floatFrom(\"2.5\") = %v, %t", got, ok)
	}
	if _, ok := floatFrom(true); ok {
		t.Error("floatFrom(true) should fail")
	}
}

func TestStringFrom(t *testing.T) {
	if got := stringFrom(float64(12)); got != "12" {
		t.Errorf("stringFrom(12.0) = %q", got)
	}
	if got := stringFrom("x"); got != "x" {
		t.Errorf("stringFrom(x) = %q", got)
	}
	if got := stringFrom(nil); got != "" {
		t.Errorf("stringFrom(nil) = %q", got)
	}
}

func TestBoolFrom(t *testing.T) {
	if got, ok := boolFrom(true); !ok || !got {
		t.Errorf("boolFrom(true) = %t, %t", got, ok)
	}
	if got, ok := boolFrom(float64(0)); !ok || got {
		t.Errorf("boolFrom(0) = %t, %t", got, ok)
	}
	if _, ok := boolFrom("maybe"); ok {
		t.Error("boolFrom(maybe) should fail")
	}
}

func TestListCoercions(t *testing.T) {
	ints, ok := intListFrom([]any{float64(1), "2", int64(3)})
	if !ok || !reflect.DeepEqual(ints, []int{1, 2, 3}) {
		t.Errorf("intListFrom = %v, %t", ints, ok)
	}
	if _, ok := intListFrom([]any{"x"}); ok {
		t.Error("intListFrom with a non-numeric entry should fail")
	}
	strs, ok := stringListFrom([]any{"a", float64(2)})
	if !ok || !reflect.DeepEqual(strs, []string{"a", "2"}) {
		t.Errorf("stringListFrom = %v, %t", strs, ok)
	}
	if _, ok := stringListFrom("not a list"); ok {
		t.Error("stringListFrom on a scalar should fail")
	}
}
