package oracle

import (
	"encoding/binary"
	"fmt"

	cst "github.com/nspcc-dev/confrep-contract/contracts/reputation/reputationconst"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
)

// EncodeAggregate returns the fixed-width little-endian cleartext encoding of
// the aggregate value accepted by the reputation contract callback.
func EncodeAggregate(aggregate int64) []byte {
	cleartext := make([]byte, cst.CleartextLen)
	binary.LittleEndian.PutUint64(cleartext, uint64(aggregate))
	return cleartext
}

// DecodeAggregate parses the fixed-width cleartext payload back into the
// aggregate value.
func DecodeAggregate(cleartext []byte) (int64, error) {
	if len(cleartext) != cst.CleartextLen {
		return 0, fmt.Errorf("unexpected cleartext length %d instead of %d", len(cleartext), cst.CleartextLen)
	}
	return int64(binary.LittleEndian.Uint64(cleartext)), nil
}

// SignResult produces the decryption proof for the request: the oracle key
// signature over requestID concatenated with cleartext. The engine contract
// accepts the proof as long as the key is its trusted oracle key.
func SignResult(key *keys.PrivateKey, requestID []byte, cleartext []byte) []byte {
	msg := make([]byte, 0, len(requestID)+len(cleartext))
	msg = append(msg, requestID...)
	msg = append(msg, cleartext...)
	return key.Sign(msg)
}
