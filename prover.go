package ligerito

import (
	"fmt"
	"time"

	"github.com/zeratul-zk/ligerito/binfield"
	"github.com/zeratul-zk/ligerito/ligero"
	"github.com/zeratul-zk/ligerito/logger"
	"github.com/zeratul-zk/ligerito/sumcheck"
	"github.com/zeratul-zk/ligerito/transcript"
)

// Prove commits to poly and produces a recursive evaluation proof. The
// transcript fixes the evaluation point: the initial challenges select
// the point's top coordinates and the sumcheck challenges the rest, so
// the proof binds the polynomial's value at a verifier-chosen point.
//
// poly must have exactly 2^(InitialDim+InitialK) coefficients.
func Prove[T binfield.Element[T], U binfield.Element[U]](
	cfg *ProverConfig[T, U],
	poly []T,
	tr transcript.Transcript,
) (*Proof[T, U], error) {
	if cfg == nil || tr == nil {
		return nil, fmt.Errorf("%w: nil config or transcript", ErrInvalidInput)
	}
	p := cfg.Params
	if len(poly) != 1<<uint(p.LogSize()) {
		return nil, fmt.Errorf("%w: polynomial length %d, want %d", ErrInvalidInput, len(poly), 1<<uint(p.LogSize()))
	}
	log := logger.Logger().With().Str("component", "prover").Int("logSize", p.LogSize()).Logger()
	start := time.Now()

	proof := &Proof[T, U]{}

	// Commit the raw coefficient matrix.
	wtns0, err := ligero.Commit(poly, 1<<uint(p.InitialDim), 1<<uint(p.InitialK), cfg.initialEnc)
	if err != nil {
		return nil, err
	}
	proof.InitialCommitment = wtns0.Commitment()
	tr.AbsorbRoot(proof.InitialCommitment.Root)
	log.Debug().Dur("took", time.Since(start)).Msg("initial commitment")

	// The top coordinates of the evaluation point, drawn in the base
	// field on both sides and lifted to the challenge field.
	chalT := transcript.Challenges[T](tr, p.InitialK)
	chalU := make([]U, len(chalT))
	for i, c := range chalT {
		chalU[i] = cfg.Embed(c)
	}

	// Partially evaluate and commit the shrunken polynomial before any
	// query positions are known.
	fEvalsT := sumcheck.PartialEval(poly, chalT)
	fEvalsU := make([]U, len(fEvalsT))
	for i, v := range fEvalsT {
		fEvalsU[i] = cfg.Embed(v)
	}
	wtnsPrev, err := ligero.Commit(fEvalsU, 1<<uint(p.LogDims[0]), 1<<uint(p.Ks[0]), cfg.encs[0])
	if err != nil {
		return nil, err
	}
	proof.RecursiveCommitments = append(proof.RecursiveCommitments, wtnsPrev.Commitment())
	tr.AbsorbRoot(wtnsPrev.Commitment().Root)

	// Open the initial matrix and induce the first sumcheck claim.
	queries, err := transcript.DistinctQueries(tr, 1<<uint(p.InitialDim+LogInvRate), p.NumQueries)
	if err != nil {
		return nil, err
	}
	alpha := transcript.Challenge[U](tr)
	proof.InitialOpening, err = wtns0.Open(queries)
	if err != nil {
		return nil, err
	}
	currentPoly, currentSum, err := sumcheck.Induce(p.InitialDim, proof.InitialOpening.Rows, chalU, queries, alpha, cfg.Embed)
	if err != nil {
		return nil, err
	}
	transcript.AbsorbElem(tr, currentSum)

	for i := 0; i < p.RecursiveSteps; i++ {
		levelStart := time.Now()

		rs := make([]U, 0, p.Ks[i])
		for j := 0; j < p.Ks[i]; j++ {
			r := transcript.Challenge[U](tr)
			rs = append(rs, r)
			var triple sumcheck.Triple[U]
			currentPoly, triple = sumcheck.Fold(currentPoly, r)
			proof.Triples = append(proof.Triples, triple)
			currentSum = triple.Eval(r)
			transcript.AbsorbElem(tr, currentSum)
		}

		if i == p.RecursiveSteps-1 {
			transcript.AbsorbElems(tr, currentPoly)
			finalQueries, err := transcript.DistinctQueries(tr, 1<<uint(p.LogDims[i]+LogInvRate), p.NumQueries)
			if err != nil {
				return nil, err
			}
			proof.FinalEval = currentPoly
			proof.FinalOpening, err = wtnsPrev.Open(finalQueries)
			if err != nil {
				return nil, err
			}
			log.Debug().Int("level", i).Dur("took", time.Since(levelStart)).Msg("final level")
			break
		}

		// Commit the folded vector for the next level before sampling
		// this level's queries.
		wtnsNext, err := ligero.Commit(currentPoly, 1<<uint(p.LogDims[i+1]), 1<<uint(p.Ks[i+1]), cfg.encs[i+1])
		if err != nil {
			return nil, err
		}
		proof.RecursiveCommitments = append(proof.RecursiveCommitments, wtnsNext.Commitment())
		tr.AbsorbRoot(wtnsNext.Commitment().Root)

		qs, err := transcript.DistinctQueries(tr, 1<<uint(p.LogDims[i]+LogInvRate), p.NumQueries)
		if err != nil {
			return nil, err
		}
		levelAlpha := transcript.Challenge[U](tr)
		opening, err := wtnsPrev.Open(qs)
		if err != nil {
			return nil, err
		}
		proof.RecursiveOpenings = append(proof.RecursiveOpenings, opening)

		basis, enforced, err := sumcheck.Induce(p.LogDims[i], opening.Rows, rs, qs, levelAlpha, binfield.Identity[U])
		if err != nil {
			return nil, err
		}
		glueSum := currentSum.Add(enforced)
		transcript.AbsorbElem(tr, glueSum)
		beta := transcript.Challenge[U](tr)
		currentPoly, err = sumcheck.Glue(currentPoly, basis, beta)
		if err != nil {
			return nil, err
		}
		currentSum = sumcheck.GlueSums(currentSum, enforced, beta)
		wtnsPrev = wtnsNext

		log.Debug().Int("level", i).Dur("took", time.Since(levelStart)).Msg("recursive level")
	}

	log.Info().Dur("took", time.Since(start)).Msg("proof generated")
	return proof, nil
}
