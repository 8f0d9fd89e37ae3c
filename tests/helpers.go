package tests

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
	"sort"
	"testing"

	"github.com/nspcc-dev/confrep-contract/oracle"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

func randomBytes(n int) []byte {
	a := make([]byte, n)
	rand.Read(a) //nolint

	return a
}

// invokeBytesResult invokes a state-changing method and returns its
// byte string result from the resulting stack.
func invokeBytesResult(t *testing.T, c *neotest.ContractInvoker, method string, args ...interface{}) []byte {
	tx := c.PrepareInvoke(t, method, args...)
	c.AddNewBlock(t, tx)
	aer := c.CheckHalt(t, tx.Hash())
	require.Equal(t, 1, len(aer.Stack))

	res, err := aer.Stack[0].TryBytes()
	require.NoError(t, err)

	return res
}

// encodeAggregate produces the cleartext layout expected by the reputation
// contract callback, through the same code path the oracle service uses.
func encodeAggregate(value int64) []byte {
	return oracle.EncodeAggregate(value)
}

// signDecryptionResult produces a decryption proof over the request ID and
// cleartext, the way the oracle service does.
func signDecryptionResult(t *testing.T, priv *keys.PrivateKey, requestID, cleartext []byte) []byte {
	return oracle.SignResult(priv, requestID, cleartext)
}

// orderHandles arranges the handles in the contract's canonical batch order:
// ascending by contributor address bytes.
func orderHandles(contributors [][]byte, handles [][]byte) [][]byte {
	idx := make([]int, len(contributors))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool {
		return bytes.Compare(contributors[idx[i]], contributors[idx[j]]) < 0
	})

	res := make([][]byte, 0, len(handles))
	for _, i := range idx {
		res = append(res, handles[i])
	}

	return res
}

// stateCommitment recomputes the digest the reputation contract stores in
// a decryption request context: contract identity, fixed-width batch ID and
// the ordered ciphertext handles of the batch.
func stateCommitment(contract util.Uint160, batchID uint64, handles ...[]byte) []byte {
	preimage := contract.BytesBE()

	key := make([]byte, 8)
	binary.LittleEndian.PutUint64(key, batchID)
	preimage = append(preimage, key...)

	for _, h := range handles {
		preimage = append(preimage, h...)
	}

	digest := sha256.Sum256(preimage)

	return digest[:]
}
