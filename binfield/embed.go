package binfield

// Embeddings between field widths zero-extend the coefficient bits. They
// preserve addition exactly but are NOT ring homomorphisms: the two
// fields reduce modulo different irreducibles, so products computed in
// the narrow field generally disagree with products of the embedded
// operands. The commitment protocol only ever compares values inside a
// single field, which is why this cheap embedding suffices.

func Embed16To32(e Elem16) Elem32 { return Elem32(e) }

func Embed16To64(e Elem16) Elem64 { return Elem64(e) }

func Embed16To128(e Elem16) Elem128 { return Elem128{Lo: uint64(e)} }

func Embed32To64(e Elem32) Elem64 { return Elem64(e) }

func Embed32To128(e Elem32) Elem128 { return Elem128{Lo: uint64(e)} }

func Embed64To128(e Elem64) Elem128 { return Elem128{Lo: uint64(e)} }

// Identity is the trivial embedding of a field into itself.
func Identity[E Element[E]](e E) E { return e }
