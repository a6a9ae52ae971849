// Package merkle implements a SHA-256 Merkle tree over power-of-two leaf
// sets with batched openings: a single proof covers many leaves and
// shares every sibling that two query paths would otherwise duplicate.
//
// Leaf and interior hashes use distinct domain-separation prefixes so a
// leaf digest can never be replayed as an interior node.
package merkle

import (
	"crypto/sha256"
	"errors"
)

// Digest is a SHA-256 output.
type Digest [32]byte

var (
	leafPrefix = []byte{0x00}
	nodePrefix = []byte{0x01}

	errLeafCount = errors.New("merkle: leaf count must be a nonzero power of two")
	errIndices   = errors.New("merkle: indices must be sorted, distinct and in range")
)

// Tree is a fully materialized Merkle tree, layer 0 being the hashed
// leaves and the last layer the root.
type Tree struct {
	layers [][]Digest
}

func hashLeaf(leaf Digest) Digest {
	h := sha256.New()
	h.Write(leafPrefix)
	h.Write(leaf[:])
	var d Digest
	h.Sum(d[:0])
	return d
}

func hashNode(left, right Digest) Digest {
	h := sha256.New()
	h.Write(nodePrefix)
	h.Write(left[:])
	h.Write(right[:])
	var d Digest
	h.Sum(d[:0])
	return d
}

// Commit builds the tree over the given leaf digests.
func Commit(leaves []Digest) (*Tree, error) {
	n := len(leaves)
	if n == 0 || n&(n-1) != 0 {
		return nil, errLeafCount
	}
	layer := make([]Digest, n)
	for i, l := range leaves {
		layer[i] = hashLeaf(l)
	}
	layers := [][]Digest{layer}
	for len(layer) > 1 {
		next := make([]Digest, len(layer)/2)
		for i := range next {
			next[i] = hashNode(layer[2*i], layer[2*i+1])
		}
		layers = append(layers, next)
		layer = next
	}
	return &Tree{layers: layers}, nil
}

// Root returns the tree root.
func (t *Tree) Root() Digest { return t.layers[len(t.layers)-1][0] }

// Depth returns the number of layers below the root.
func (t *Tree) Depth() int { return len(t.layers) - 1 }

func validIndices(indices []int, limit int) bool {
	for i, q := range indices {
		if q < 0 || q >= limit {
			return false
		}
		if i > 0 && indices[i-1] >= q {
			return false
		}
	}
	return true
}

// Proof is a batched opening: the sibling digests needed to recompute
// the root from the opened leaves, deduplicated across query paths.
type Proof struct {
	Siblings []Digest
}

// Prove opens the leaves at the given indices, which must be sorted,
// distinct and in range.
func (t *Tree) Prove(indices []int) (Proof, error) {
	if !validIndices(indices, len(t.layers[0])) {
		return Proof{}, errIndices
	}
	var siblings []Digest
	depth := t.Depth()
	if depth == 0 || len(indices) == 0 {
		return Proof{Siblings: siblings}, nil
	}

	queries := append([]int(nil), indices...)
	cnt := len(queries)
	for d := 0; d < depth; d++ {
		cnt, siblings = proveLayer(t.layers[d], queries, cnt, siblings)
	}
	return Proof{Siblings: siblings}, nil
}

// proveLayer collapses one layer of query paths, emitting a sibling
// whenever a path's neighbour is not itself queried. queries is reused
// as scratch for the next layer's (halved) indices.
func proveLayer(layer []Digest, queries []int, cnt int, siblings []Digest) (int, []Digest) {
	next := 0
	i := 0
	for i < cnt {
		q := queries[i]
		sib := q ^ 1
		queries[next] = q >> 1
		next++

		if i == cnt-1 {
			siblings = append(siblings, layer[sib])
			break
		}
		if q%2 != 0 || queries[i+1] != sib {
			siblings = append(siblings, layer[sib])
			i++
		} else {
			i += 2
		}
	}
	return next, siblings
}

// Verify recomputes the root from the opened leaf digests and the
// batched proof. It fails closed: any structural irregularity, unused
// proof entry or digest mismatch yields false.
func Verify(root Digest, proof Proof, depth int, leaves []Digest, indices []int) bool {
	if depth < 0 || len(leaves) != len(indices) || len(indices) == 0 {
		return false
	}
	if !validIndices(indices, 1<<uint(depth)) {
		return false
	}
	if depth == 0 {
		return len(leaves) == 1 && len(proof.Siblings) == 0 && hashLeaf(leaves[0]) == root
	}

	layer := make([]Digest, len(leaves))
	for i, l := range leaves {
		layer[i] = hashLeaf(l)
	}
	queries := append([]int(nil), indices...)

	cnt := len(queries)
	used := 0
	for d := 0; d < depth; d++ {
		cnt, used = verifyLayer(layer, queries, cnt, proof.Siblings, used)
	}
	return cnt == 1 && used == len(proof.Siblings) && layer[0] == root
}

func verifyLayer(layer []Digest, queries []int, cnt int, siblings []Digest, used int) (int, int) {
	// A missing sibling hashes in as zero and fails the final root check.
	take := func() Digest {
		used++
		if used-1 < len(siblings) {
			return siblings[used-1]
		}
		return Digest{}
	}

	next := 0
	i := 0
	for i < cnt {
		q := queries[i]
		sib := q ^ 1
		queries[next] = q >> 1
		next++

		if i == cnt-1 {
			pp := take()
			if q%2 != 0 {
				layer[next-1] = hashNode(pp, layer[i])
			} else {
				layer[next-1] = hashNode(layer[i], pp)
			}
			break
		}
		if q%2 != 0 {
			layer[next-1] = hashNode(take(), layer[i])
			i++
		} else if queries[i+1] != sib {
			layer[next-1] = hashNode(layer[i], take())
			i++
		} else {
			layer[next-1] = hashNode(layer[i], layer[i+1])
			i += 2
		}
	}
	return next, used
}
