package ligerito

import (
	"fmt"
	"math/bits"
)

// The autosizer table, indexed by log2 of the polynomial length from 20
// to 30. Sizes outside that range clamp to the nearest endpoint; shorter
// polynomials are zero-padded by the caller, and the initial column
// count absorbs growth beyond 2^30. Dimension chains are derived from
// InitialDim and Ks so the geometry invariant holds by construction.
var autosizeTable = []struct {
	initialK int
	ks       []int
}{
	{6, []int{2, 2}},       // 2^20
	{6, []int{3, 2}},       // 2^21
	{6, []int{4, 2}},       // 2^22
	{6, []int{4, 3}},       // 2^23
	{6, []int{4, 4}},       // 2^24
	{6, []int{4, 4}},       // 2^25
	{6, []int{4, 4, 2}},    // 2^26
	{6, []int{4, 4, 3}},    // 2^27
	{6, []int{3, 3, 3, 3}}, // 2^28
	{6, []int{4, 4, 4}},    // 2^29
	{7, []int{4, 4, 4}},    // 2^30
}

// Autosize picks recursion parameters for a polynomial of the given
// power-of-two length.
func Autosize(polyLen int) (Params, error) {
	if polyLen <= 0 || polyLen&(polyLen-1) != 0 {
		return Params{}, fmt.Errorf("%w: polynomial length must be a power of two", ErrInvalidInput)
	}
	logSize := bits.Len(uint(polyLen)) - 1
	clamped := min(max(logSize, 20), 30)

	row := autosizeTable[clamped-20]
	initialK := row.initialK + max(0, logSize-30)
	ks := append([]int(nil), row.ks...)
	dims := make([]int, len(ks))
	prev := clamped - row.initialK
	for i, k := range ks {
		dims[i] = prev - k
		prev = dims[i]
	}
	p := Params{
		RecursiveSteps: len(ks),
		InitialDim:     clamped - row.initialK,
		InitialK:       initialK,
		LogDims:        dims,
		Ks:             ks,
		NumQueries:     DefaultNumQueries,
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}
