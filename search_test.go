package jsondoc

import (
	"math"
	"testing"
)

func TestIndexOf(t *testing.T) {
	helper := NewTestHelper(t)
	p := newTestProcessor(t)

	for _, mutable := range []bool{false, true} {
		arr := mustParse(t, p, `["7",7.0,7,-7,false,true,"x",0.30000000000000004]`, mutable)

		tests := []struct {
			name string
			fn   func() (int, error)
			want int
		}{
			{"Bool", func() (int, error) { return arr.IndexOfBool(true) }, 5},
			{"Int", func() (int, error) { return arr.IndexOfInt(7) }, 2},
			{"NegativeInt", func() (int, error) { return arr.IndexOfInt64(-7) }, 3},
			{"Uint", func() (int, error) { return arr.IndexOfUint64(7) }, 2},
			{"UintNoNegative", func() (int, error) { return arr.IndexOfUint64(math.MaxUint64) }, -1},
			{"FloatSkipsInts", func() (int, error) { return arr.IndexOfFloat(7) }, 1},
			{"FloatEpsilon", func() (int, error) { return arr.IndexOfFloat(0.1 + 0.2) }, 7},
			{"FloatNaN", func() (int, error) { return arr.IndexOfFloat(math.NaN()) }, -1},
			{"String", func() (int, error) { return arr.IndexOfString("x") }, 6},
			{"StringNotNumber", func() (int, error) { return arr.IndexOfString("7") }, 0},
			{"Missing", func() (int, error) { return arr.IndexOfString("nope") }, -1},
		}
		for _, tt := range tests {
			got, err := tt.fn()
			helper.AssertNoError(err, tt.name)
			helper.AssertEqual(tt.want, got, "%s mutable=%v", tt.name, mutable)
		}
	}

	_, err := mustParse(t, p, `{}`, false).IndexOfInt(1)
	helper.AssertErrorIs(err, ErrTypeMismatch)
}
