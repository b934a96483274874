package table

import (
	"reflect"
	"testing"
)

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"Top Left", "10.002", "19.998"},
		{"My Placemark!", "10", "20"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignRight, AlignRight})
	want := []string{
		"Top Left       10.002  19.998",
		"My Placemark!      10      20",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatLeavesLastLeftColumnUnpadded(t *testing.T) {
	got := Format([][]string{{"a", "long"}, {"bb", "x"}}, nil)
	want := []string{"a   long", "bb  x"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatEmpty(t *testing.T) {
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for no rows")
	}
}
