// Package integrity holds the value types shared by the hashing engines
// and the content-integrity stores in this module: fixed-width binary
// digests, the algorithm registry binding names to hash constructors, a
// write-through digest verifier, and the error taxonomy surfaced by every
// core operation.
//
// The hashing engines themselves live in the sha2 and sha3 packages, the
// Merkle layer in merkle, and the block-oriented stores in blockfile and
// chain.
package integrity
