package vamphost

import (
	"errors"
	"testing"

	"github.com/kelben/vamphost/internal/testutil"
)

func TestFloatVectorCoercions(t *testing.T) {
	cases := []struct {
		name  string
		input any
		want  []float32
	}{
		{"float32", []float32{1, 2, 3}, []float32{1, 2, 3}},
		{"float64", []float64{1.5, -2.5}, []float32{1.5, -2.5}},
		{"int", []int{1, -2, 3}, []float32{1, -2, 3}},
		{"int32", []int32{4, 5}, []float32{4, 5}},
		{"int64", []int64{6}, []float32{6}},
		{"mixed any", []any{float64(1), 2, float32(3.5)}, []float32{1, 2, 3.5}},
		{"empty", []float32{}, []float32{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FloatVector(tc.input)
			if err != nil {
				t.Fatalf("FloatVector: %v", err)
			}
			testutil.AssertFloatsEqual(t, got, tc.want)
		})
	}
}

func TestFloatVectorRejectsNonNumeric(t *testing.T) {
	for _, input := range []any{
		nil,
		"not a vector",
		42,
		[]string{"a"},
		[]any{"nope"},
		map[string]float32{"x": 1},
	} {
		if _, err := FloatVector(input); !errors.Is(err, ErrTypeMismatch) {
			t.Errorf("FloatVector(%T): got %v, want ErrTypeMismatch", input, err)
		}
	}
}

func TestFloatVectorCopies(t *testing.T) {
	src := []float32{1, 2, 3}
	got, err := FloatVector(src)
	if err != nil {
		t.Fatalf("FloatVector: %v", err)
	}
	src[0] = 99
	if got[0] != 1 {
		t.Error("FloatVector aliased its input")
	}
}

func TestVectorToFloatsCopies(t *testing.T) {
	src := []float32{1, 2, 3}
	got := VectorToFloats(src)
	testutil.AssertFloatsEqual(t, got, src)
	got[0] = 99
	if src[0] != 1 {
		t.Error("VectorToFloats aliased its input")
	}
}

func TestStringListCopies(t *testing.T) {
	src := []string{"a", "b"}
	got := StringList(src)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("StringList: got %v", got)
	}
	got[0] = "x"
	if src[0] != "a" {
		t.Error("StringList aliased its input")
	}
}
