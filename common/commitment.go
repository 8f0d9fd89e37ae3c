package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
)

// StateCommitment folds the given byte chunks into a single SHA-256 digest
// bound to the provided contract identity. Chunk order is significant: the
// same chunks in a different order produce a different commitment.
func StateCommitment(identity interop.Hash160, chunks [][]byte) interop.Hash256 {
	buf := []byte(identity)
	for i := range chunks {
		buf = append(buf, chunks[i]...)
	}

	return crypto.Sha256(buf)
}
