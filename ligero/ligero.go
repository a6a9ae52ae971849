// Package ligero implements the row-wise matrix commitment underneath
// the recursive protocol: a polynomial is laid out column-major in a
// matrix, every column is Reed-Solomon encoded, and the rows of the
// encoded matrix are hashed into a Merkle tree. Opening a row reveals
// one codeword position of every column at once.
package ligero

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/zeratul-zk/ligerito/binfield"
	"github.com/zeratul-zk/ligerito/merkle"
	"github.com/zeratul-zk/ligerito/reedsolomon"
)

var ErrShape = errors.New("ligero: polynomial does not fit the matrix geometry")

// Commitment is the public part of a committed matrix.
type Commitment struct {
	Root merkle.Digest
}

// Witness is the prover-side state of a committed matrix: the encoded
// rows and the Merkle tree over their hashes.
type Witness[F binfield.Element[F]] struct {
	rows [][]F
	tree *merkle.Tree
}

// Opening reveals the encoded rows at the queried positions together
// with a batched Merkle proof.
type Opening[F binfield.Element[F]] struct {
	Rows  [][]F
	Proof merkle.Proof
}

// HashRow digests one encoded row for use as a Merkle leaf. The digest
// is domain-separated and length-prefixed over the little-endian element
// bytes.
func HashRow[F binfield.Element[F]](row []F) merkle.Digest {
	h := sha256.New()
	h.Write([]byte("ligerito/row"))
	var n [4]byte
	binary.LittleEndian.PutUint32(n[:], uint32(len(row)))
	h.Write(n[:])
	for _, e := range row {
		h.Write(e.Bytes())
	}
	var d merkle.Digest
	h.Sum(d[:0])
	return d
}

// Commit lays poly out as an nRows × nCols matrix (column j being
// poly[j*nRows:(j+1)*nRows]), encodes each column with enc and commits
// to the encoded rows.
func Commit[F binfield.Element[F]](poly []F, nRows, nCols int, enc *reedsolomon.Encoder[F]) (*Witness[F], error) {
	if nRows <= 0 || nCols <= 0 || nRows*nCols != len(poly) {
		return nil, ErrShape
	}
	if enc.MessageLen() != nRows {
		return nil, ErrShape
	}
	encodedRows := enc.BlockLen()

	cols := make([][]F, nCols)
	var g errgroup.Group
	for j := 0; j < nCols; j++ {
		j := j
		g.Go(func() error {
			block := make([]F, encodedRows)
			copy(block, poly[j*nRows:(j+1)*nRows])
			if err := enc.EncodeInPlace(block); err != nil {
				return err
			}
			cols[j] = block
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := make([][]F, encodedRows)
	leaves := make([]merkle.Digest, encodedRows)
	for i := range rows {
		row := make([]F, nCols)
		for j := 0; j < nCols; j++ {
			row[j] = cols[j][i]
		}
		rows[i] = row
		leaves[i] = HashRow(row)
	}

	tree, err := merkle.Commit(leaves)
	if err != nil {
		return nil, err
	}
	return &Witness[F]{rows: rows, tree: tree}, nil
}

// Commitment returns the public commitment.
func (w *Witness[F]) Commitment() Commitment {
	return Commitment{Root: w.tree.Root()}
}

// Depth returns the Merkle depth of the committed row set.
func (w *Witness[F]) Depth() int { return w.tree.Depth() }

// Row returns the i-th encoded row.
func (w *Witness[F]) Row(i int) []F { return w.rows[i] }

// Open reveals the rows at the given sorted distinct indices.
func (w *Witness[F]) Open(indices []int) (Opening[F], error) {
	proof, err := w.tree.Prove(indices)
	if err != nil {
		return Opening[F]{}, err
	}
	rows := make([][]F, len(indices))
	for i, q := range indices {
		rows[i] = append([]F(nil), w.rows[q]...)
	}
	return Opening[F]{Rows: rows, Proof: proof}, nil
}

// VerifyOpening checks an opening against a commitment root: all rows
// must share one width and hash to leaves consistent with the batched
// proof.
func VerifyOpening[F binfield.Element[F]](root merkle.Digest, depth int, indices []int, opening Opening[F]) bool {
	if len(opening.Rows) != len(indices) || len(opening.Rows) == 0 {
		return false
	}
	width := len(opening.Rows[0])
	leaves := make([]merkle.Digest, len(opening.Rows))
	for i, row := range opening.Rows {
		if len(row) != width {
			return false
		}
		leaves[i] = HashRow(row)
	}
	return merkle.Verify(root, opening.Proof, depth, leaves, indices)
}
