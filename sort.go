package jsondoc

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cybergodev/jsondoc/internal"
)

// SortArray reorders the elements of a mutable array. Ascending and
// descending orders are stable: elements compare by type first (null,
// boolean, number, string, array, object), then strings byte-wise, numbers
// numerically and false before true. Arrays and objects compare equal among
// themselves. SortRandom shuffles with the processor's generator.
func (v *Value) SortArray(mode SortMode) error {
	arr, err := v.mutArray("sort_array")
	if err != nil {
		return err
	}
	elems := arr.Elems()
	switch mode {
	case SortAscending:
		slices.SortStableFunc(elems, func(a, b *internal.MutVal) int {
			return internal.Compare(a, b)
		})
	case SortDescending:
		slices.SortStableFunc(elems, func(a, b *internal.MutVal) int {
			return internal.Compare(b, a)
		})
	case SortRandom:
		v.doc.proc.shuffle(len(elems), func(i, j int) {
			elems[i], elems[j] = elems[j], elems[i]
		})
	default:
		return invalidSortMode("sort_array", mode)
	}
	return nil
}

// SortObject reorders the pairs of a mutable object by key; values travel
// with their keys. Pairs with equal keys keep their relative order.
func (v *Value) SortObject(mode SortMode) error {
	obj, err := v.mutObject("sort_object")
	if err != nil {
		return err
	}
	pairs := obj.Pairs()
	switch mode {
	case SortAscending:
		slices.SortStableFunc(pairs, func(a, b internal.MutPair) int {
			return strings.Compare(a.Key, b.Key)
		})
	case SortDescending:
		slices.SortStableFunc(pairs, func(a, b internal.MutPair) int {
			return strings.Compare(b.Key, a.Key)
		})
	case SortRandom:
		v.doc.proc.shuffle(len(pairs), func(i, j int) {
			pairs[i], pairs[j] = pairs[j], pairs[i]
		})
	default:
		return invalidSortMode("sort_object", mode)
	}
	return nil
}

func invalidSortMode(op string, mode SortMode) error {
	return newOperationError(op, fmt.Sprintf("invalid sort mode %d", int(mode)), ErrOperationFailed)
}
