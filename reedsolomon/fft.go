package reedsolomon

import (
	"math/bits"

	"github.com/zeratul-zk/ligerito/binfield"
)

// Twiddles are stored as a heap: node idx (1-based) splits a sub-vector
// of length 2^(n-d) at depth d = floor(log2(idx)), and its factor is
// Ŵ_{n-1-d} evaluated at the offset of that sub-vector within the coset.

func computeTwiddles[F binfield.Element[F]](n int, beta F, norms []F) []F {
	if n == 0 {
		return nil
	}
	var z F
	tw := make([]F, (1<<uint(n))-1)
	for idx := 1; idx < 1<<uint(n); idx++ {
		d := bits.Len(uint(idx)) - 1
		p := idx - 1<<uint(d)
		k := n - 1 - d
		x := beta.Add(z.FromBits(uint64(p) << uint(n-d)))
		w := evalVanishing(x, norms[:k])
		tw[idx-1] = w.Mul(norms[k].Inv())
	}
	return tw
}

// fft evaluates the basis-coefficient vector v over its coset in place.
func fft[F binfield.Element[F]](v []F, tw []F) {
	fftRecurse(v, tw, 1)
}

func fftRecurse[F binfield.Element[F]](v []F, tw []F, idx int) {
	if len(v) == 1 {
		return
	}
	lambda := tw[idx-1]
	mid := len(v) / 2
	u, w := v[:mid], v[mid:]
	for i := range u {
		u[i] = u[i].Add(lambda.Mul(w[i]))
		w[i] = w[i].Add(u[i])
	}
	fftRecurse(u, tw, 2*idx)
	fftRecurse(w, tw, 2*idx+1)
}

// ifft interpolates coset evaluations back to basis coefficients,
// inverting fft exactly.
func ifft[F binfield.Element[F]](v []F, tw []F) {
	ifftRecurse(v, tw, 1)
}

func ifftRecurse[F binfield.Element[F]](v []F, tw []F, idx int) {
	if len(v) == 1 {
		return
	}
	mid := len(v) / 2
	u, w := v[:mid], v[mid:]
	ifftRecurse(u, tw, 2*idx)
	ifftRecurse(w, tw, 2*idx+1)
	lambda := tw[idx-1]
	for i := range u {
		w[i] = w[i].Add(u[i])
		u[i] = u[i].Add(lambda.Mul(w[i]))
	}
}
