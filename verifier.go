package ligerito

import (
	"fmt"

	"github.com/zeratul-zk/ligerito/binfield"
	"github.com/zeratul-zk/ligerito/ligero"
	"github.com/zeratul-zk/ligerito/reedsolomon"
	"github.com/zeratul-zk/ligerito/sumcheck"
	"github.com/zeratul-zk/ligerito/transcript"
)

// Verify replays the proving schedule against the proof. It returns nil
// for an accepting transcript and a *RejectError naming the failing
// stage otherwise; structurally malformed proofs are rejected with
// ErrInvalidInput before verification starts.
//
// The transcript must be a fresh instance of the same backend the
// prover used.
func Verify[T binfield.Element[T], U binfield.Element[U]](
	cfg *VerifierConfig[T, U],
	proof *Proof[T, U],
	tr transcript.Transcript,
) error {
	if cfg == nil || proof == nil || tr == nil {
		return fmt.Errorf("%w: nil config, proof or transcript", ErrInvalidInput)
	}
	p := cfg.Params
	if err := proof.Validate(p); err != nil {
		return err
	}

	tr.AbsorbRoot(proof.InitialCommitment.Root)
	chalT := transcript.Challenges[T](tr, p.InitialK)
	chalU := make([]U, len(chalT))
	for i, c := range chalT {
		chalU[i] = cfg.Embed(c)
	}
	tr.AbsorbRoot(proof.RecursiveCommitments[0].Root)

	queries, err := transcript.DistinctQueries(tr, 1<<uint(p.InitialDim+LogInvRate), p.NumQueries)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	alpha := transcript.Challenge[U](tr)

	if !ligero.VerifyOpening(proof.InitialCommitment.Root, p.InitialDim+LogInvRate, queries, proof.InitialOpening) {
		return reject(ErrMerkleVerification, "initial opening")
	}
	_, currentSum, err := sumcheck.Induce(p.InitialDim, proof.InitialOpening.Rows, chalU, queries, alpha, cfg.Embed)
	if err != nil {
		return reject(ErrDimensionMismatch, "initial opening rows")
	}
	transcript.AbsorbElem(tr, currentSum)

	tripleIdx := 0
	var lastBasis []U
	var lastBeta U

	for i := 0; i < p.RecursiveSteps; i++ {
		rs := make([]U, 0, p.Ks[i])
		for j := 0; j < p.Ks[i]; j++ {
			if tripleIdx >= len(proof.Triples) {
				return reject(ErrTranscriptExhausted, "sumcheck rounds")
			}
			triple := proof.Triples[tripleIdx]
			tripleIdx++
			if triple.S0.Add(triple.S2) != triple.Total || triple.Total != currentSum {
				return reject(ErrClaimMismatch, fmt.Sprintf("level %d round %d", i, j))
			}
			r := transcript.Challenge[U](tr)
			rs = append(rs, r)
			currentSum = triple.Eval(r)
			transcript.AbsorbElem(tr, currentSum)
		}

		if i == p.RecursiveSteps-1 {
			return verifyFinalLevel(cfg, proof, tr, i, rs, lastBasis, lastBeta, currentSum)
		}

		tr.AbsorbRoot(proof.RecursiveCommitments[i+1].Root)
		depth := p.LogDims[i] + LogInvRate
		qs, err := transcript.DistinctQueries(tr, 1<<uint(depth), p.NumQueries)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		levelAlpha := transcript.Challenge[U](tr)

		if !ligero.VerifyOpening(proof.RecursiveCommitments[i].Root, depth, qs, proof.RecursiveOpenings[i]) {
			return reject(ErrMerkleVerification, fmt.Sprintf("level %d opening", i))
		}
		basis, enforced, err := sumcheck.Induce(p.LogDims[i], proof.RecursiveOpenings[i].Rows, rs, qs, levelAlpha, binfield.Identity[U])
		if err != nil {
			return reject(ErrDimensionMismatch, fmt.Sprintf("level %d opening rows", i))
		}
		glueSum := currentSum.Add(enforced)
		transcript.AbsorbElem(tr, glueSum)
		beta := transcript.Challenge[U](tr)
		currentSum = sumcheck.GlueSums(currentSum, enforced, beta)
		lastBasis, lastBeta = basis, beta
	}
	panic("unreachable")
}

// verifyFinalLevel runs the closing checks: the final evaluation vector
// is absorbed, the last commitment is opened at fresh queries, every
// opened row must be consistent with the Reed-Solomon encoding of the
// committed part of the vector, and the vector is collapsed to a scalar
// against the tracked sum.
func verifyFinalLevel[T binfield.Element[T], U binfield.Element[U]](
	cfg *VerifierConfig[T, U],
	proof *Proof[T, U],
	tr transcript.Transcript,
	level int,
	rs []U,
	lastBasis []U,
	lastBeta U,
	currentSum U,
) error {
	p := cfg.Params
	if len(proof.FinalEval) != 1<<uint(p.LogDims[level]) {
		return reject(ErrDimensionMismatch, "final evaluation vector")
	}
	transcript.AbsorbElems(tr, proof.FinalEval)

	depth := p.LogDims[level] + LogInvRate
	finalQueries, err := transcript.DistinctQueries(tr, 1<<uint(depth), p.NumQueries)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !ligero.VerifyOpening(proof.RecursiveCommitments[level].Root, depth, finalQueries, proof.FinalOpening) {
		return reject(ErrMerkleVerification, "final opening")
	}

	// The last commitment predates the last glue: peel that glue off the
	// final vector to recover the committed fold.
	committed := append([]U(nil), proof.FinalEval...)
	correction := sumcheck.PartialEval(lastBasis, rs)
	for idx := range committed {
		committed[idx] = committed[idx].Add(lastBeta.Mul(correction[idx]))
	}

	// Opened rows carry codeword positions of every column; their
	// Lagrange combination must match the encoding of the committed fold
	// at the same position.
	gr := sumcheck.LagrangeBasis(rs)
	norms := reedsolomon.SubspaceEvals[U](p.LogDims[level])
	coeffs := reedsolomon.InterpolateSubspace(committed, norms)
	var z U
	for qi, q := range finalQueries {
		row := proof.FinalOpening.Rows[qi]
		if len(row) != len(gr) {
			return reject(ErrDimensionMismatch, "final opening rows")
		}
		var dot U
		for j, v := range row {
			dot = dot.Add(v.Mul(gr[j]))
		}
		want := reedsolomon.BasisCombination(coeffs, norms, z.FromBits(uint64(q)))
		if dot != want {
			return reject(ErrSumMismatch, "ligero consistency")
		}
	}

	// Collapse the final vector to a scalar, round by round, against the
	// tracked sum.
	vec := append([]U(nil), proof.FinalEval...)
	for len(vec) > 1 {
		r := transcript.Challenge[U](tr)
		var triple sumcheck.Triple[U]
		vec, triple = sumcheck.Fold(vec, r)
		if triple.Total != currentSum {
			return reject(ErrSumMismatch, "final collapse")
		}
		currentSum = triple.Eval(r)
	}
	if vec[0] != currentSum {
		return reject(ErrSumMismatch, "final collapse")
	}
	return nil
}
