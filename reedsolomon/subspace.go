package reedsolomon

import "github.com/zeratul-zk/ligerito/binfield"

// The code is laid out in the novel polynomial basis for additive FFTs:
// the subspace vanishing polynomials W_0(x) = x and
// W_{k+1}(x) = W_k(x)^2 + W_k(v_k)·W_k(x), with v_k the field element
// whose representation is 1<<k. Their normalizations
// Ŵ_k(x) = W_k(x)/W_k(v_k) generate the basis polynomials
// X_j(x) = ∏_{bit k set in j} Ŵ_k(x).

// SubspaceEvals returns W_k(v_k) for k in [0, n).
func SubspaceEvals[F binfield.Element[F]](n int) []F {
	var z F
	out := make([]F, n)
	for k := 0; k < n; k++ {
		out[k] = evalVanishing(z.FromBits(uint64(1)<<uint(k)), out[:k])
	}
	return out
}

// evalVanishing computes W_k(x) where k = len(norms) and norms holds
// W_j(v_j) for j < k.
func evalVanishing[F binfield.Element[F]](x F, norms []F) F {
	w := x
	for _, s := range norms {
		w = w.Mul(w).Add(s.Mul(w))
	}
	return w
}

// ScaledBasis fills basis with scale·X_j(x) for every j in
// [0, len(basis)). len(basis) must be a power of two and norms must hold
// at least log2(len(basis)) subspace evaluations.
func ScaledBasis[F binfield.Element[F]](basis []F, norms []F, x F, scale F) {
	basis[0] = scale
	w := x
	for k := 0; 1<<uint(k) < len(basis); k++ {
		factor := w.Mul(norms[k].Inv())
		half := 1 << uint(k)
		for i := 0; i < half; i++ {
			basis[half+i] = basis[i].Mul(factor)
		}
		w = w.Mul(w).Add(norms[k].Mul(w))
	}
}

// InterpolateSubspace converts evaluations over the size-len(evals)
// subspace into novel-basis coefficients, so that the codeword identity
// evals[q] = Σ_j coeffs[j]·X_j(FromBits(q)) holds for all q.
func InterpolateSubspace[F binfield.Element[F]](evals []F, norms []F) []F {
	var z F
	n := 0
	for 1<<uint(n) < len(evals) {
		n++
	}
	tw := computeTwiddles(n, z, norms)
	out := append([]F(nil), evals...)
	ifft(out, tw)
	return out
}

// BasisCombination evaluates Σ_j coeffs[j]·X_j(x).
func BasisCombination[F binfield.Element[F]](coeffs []F, norms []F, x F) F {
	basis := make([]F, len(coeffs))
	var z F
	ScaledBasis(basis, norms, x, z.One())
	var acc F
	for j, c := range coeffs {
		acc = acc.Add(c.Mul(basis[j]))
	}
	return acc
}
