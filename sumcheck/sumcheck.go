// Package sumcheck implements the characteristic-2 sumcheck primitives
// of the commitment protocol: multilinear folding, Lagrange tensor
// bases, partial evaluation, basis induction from opened matrix rows,
// and claim gluing.
//
// Over GF(2^k) the round polynomial of a multilinear sumcheck is linear,
// so a round is fully described by the triple (g(0), g(0)+g(1), g(1)).
// Folding always fixes the top variable: the vector halves (lo, hi)
// combine as lo + r·(lo + hi), which pairs index i with index i+len/2
// and keeps the first challenge attached to the most significant bit of
// the index.
package sumcheck

import (
	"errors"
	"sync"

	"github.com/zeratul-zk/ligerito/binfield"
	"github.com/zeratul-zk/ligerito/internal/parallel"
)

var (
	// ErrShape reports operands whose lengths do not line up.
	ErrShape = errors.New("sumcheck: operand lengths do not match")
)

// Triple is one sumcheck round message: the round polynomial g
// evaluated at 0 and 1, plus the claimed total g(0)+g(1).
type Triple[F binfield.Element[F]] struct {
	S0    F
	Total F
	S2    F
}

// Eval reconstructs g from its endpoints and evaluates it at r:
// g(X) = s0 + (s0+s2)·X.
func (t Triple[F]) Eval(r F) F {
	return t.S0.Add(t.S0.Add(t.S2).Mul(r))
}

// Fold fixes the top variable of poly to r, returning the halved vector
// and the round triple of the eliminated variable. len(poly) must be an
// even power of two.
func Fold[F binfield.Element[F]](poly []F, r F) ([]F, Triple[F]) {
	half := len(poly) / 2
	out := make([]F, half)
	var s0, s2 F
	for i := 0; i < half; i++ {
		lo, hi := poly[i], poly[half+i]
		s0 = s0.Add(lo)
		s2 = s2.Add(hi)
		out[i] = lo.Add(r.Mul(lo.Add(hi)))
	}
	return out, Triple[F]{S0: s0, Total: s0.Add(s2), S2: s2}
}

// PartialEval fixes the top len(point) variables of poly to point, in
// order. poly is not modified.
func PartialEval[F binfield.Element[F]](poly []F, point []F) []F {
	out := append([]F(nil), poly...)
	for _, r := range point {
		out, _ = Fold(out, r)
	}
	return out
}

// LagrangeBasis expands challenges into the 2^k tensor products
// Π_i ((1+c_i) or c_i), indexed so the first challenge selects the most
// significant bit.
func LagrangeBasis[F binfield.Element[F]](challenges []F) []F {
	var z F
	basis := make([]F, 1, 1<<uint(len(challenges)))
	basis[0] = z.One()
	for _, c := range challenges {
		next := make([]F, 2*len(basis))
		notC := z.One().Add(c)
		for i, b := range basis {
			next[2*i] = b.Mul(notC)
			next[2*i+1] = b.Mul(c)
		}
		basis = next
	}
	return basis
}

// Glue combines a running claim vector with a freshly induced basis as
// f + beta·g.
func Glue[F binfield.Element[F]](f, g []F, beta F) ([]F, error) {
	if len(f) != len(g) {
		return nil, ErrShape
	}
	out := make([]F, len(f))
	for i := range f {
		out[i] = f[i].Add(beta.Mul(g[i]))
	}
	return out, nil
}

// GlueSums combines the matching claimed sums.
func GlueSums[F binfield.Element[F]](a, b, beta F) F {
	return a.Add(beta.Mul(b))
}

// Induce folds a batch of opened matrix rows into a sumcheck claim: row
// i contributes alpha^i times its dot product with the Lagrange basis of
// the sumcheck challenges so far, scattered into a length-2^n basis
// polynomial at its query position. The returned enforced sum
// accumulates the same contributions, so the basis polynomial always
// sums to it.
//
// Rows live in the (possibly narrower) committed field T and are lifted
// to the challenge field U by embed.
func Induce[T any, U binfield.Element[U]](
	n int,
	rows [][]T,
	challenges []U,
	queries []int,
	alpha U,
	embed func(T) U,
) ([]U, U, error) {
	if len(rows) != len(queries) {
		return nil, *new(U), ErrShape
	}
	gr := LagrangeBasis(challenges)
	for _, row := range rows {
		if len(row) != len(gr) {
			return nil, *new(U), ErrShape
		}
	}

	var z U
	mask := 1<<uint(n) - 1
	basis := make([]U, 1<<uint(n))
	var enforced U

	// alpha^i per row, shared by all workers.
	powers := make([]U, len(rows))
	p := z.One()
	for i := range powers {
		powers[i] = p
		p = p.Mul(alpha)
	}

	var mu sync.Mutex
	parallel.Execute(0, len(rows), func(start, end int) {
		local := make([]U, len(basis))
		var localSum U
		for i := start; i < end; i++ {
			var dot U
			for j, v := range rows[i] {
				dot = dot.Add(embed(v).Mul(gr[j]))
			}
			contrib := powers[i].Mul(dot)
			local[queries[i]&mask] = local[queries[i]&mask].Add(contrib)
			localSum = localSum.Add(contrib)
		}
		mu.Lock()
		for k := range local {
			if !local[k].IsZero() {
				basis[k] = basis[k].Add(local[k])
			}
		}
		enforced = enforced.Add(localSum)
		mu.Unlock()
	})

	return basis, enforced, nil
}

// Sum adds all entries of poly.
func Sum[F binfield.Element[F]](poly []F) F {
	var acc F
	for _, v := range poly {
		acc = acc.Add(v)
	}
	return acc
}
