package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func newEngineInvoker(t *testing.T) (*neotest.ContractInvoker, *keys.PrivateKey) {
	e := newExecutor(t)

	oracle, err := keys.NewPrivateKey()
	require.NoError(t, err)

	return e.CommitteeInvoker(deployEngineContract(t, e, oracle.PublicKey())), oracle
}

func TestEngineEncrypt(t *testing.T) {
	eng, _ := newEngineInvoker(t)

	h1 := engineEncrypt(t, eng, 100)
	h2 := engineEncrypt(t, eng, 100)

	require.Equal(t, 32, len(h1))
	require.NotEqual(t, h1, h2)

	eng.Invoke(t, 100, "decrypt", h1)
	eng.Invoke(t, 100, "decrypt", h2)
	eng.InvokeFail(t, "unknown ciphertext handle", "decrypt", randomBytes(32))
}

func TestEngineAdd(t *testing.T) {
	eng, _ := newEngineInvoker(t)

	h1 := engineEncrypt(t, eng, 3)
	h2 := engineEncrypt(t, eng, 39)

	sum := invokeBytesResult(t, eng, "add", h1, h2)
	require.Equal(t, 32, len(sum))
	eng.Invoke(t, 42, "decrypt", sum)

	// Operands stay intact and reusable.
	eng.Invoke(t, 3, "decrypt", h1)
	sum2 := invokeBytesResult(t, eng, "add", sum, h1)
	eng.Invoke(t, 45, "decrypt", sum2)

	eng.InvokeFail(t, "unknown ciphertext handle", "add", h1, randomBytes(32))
}

func TestEngineRequestDecryption(t *testing.T) {
	eng, _ := newEngineInvoker(t)

	h1 := engineEncrypt(t, eng, 7)

	eng.InvokeFail(t, "empty handle list", "requestDecryption",
		[]interface{}{}, "callback")
	eng.InvokeFail(t, "unknown ciphertext handle", "requestDecryption",
		[]interface{}{randomBytes(32)}, "callback")

	tx := eng.PrepareInvoke(t, "requestDecryption", []interface{}{h1}, "callback")
	eng.AddNewBlock(t, tx)
	aer := eng.CheckHalt(t, tx.Hash())

	requestID, err := aer.Stack[0].TryBytes()
	require.NoError(t, err)
	require.Equal(t, 32, len(requestID))

	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "DecryptionPending", aer.Events[0].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.Make(requestID),
	}), aer.Events[0].Item)

	s, err := eng.TestInvoke(t, "pendingHandles", requestID)
	require.NoError(t, err)
	pending := s.Pop().Array()
	require.Equal(t, 1, len(pending))
	got, err := pending[0].TryBytes()
	require.NoError(t, err)
	require.Equal(t, h1, got)

	eng.InvokeFail(t, "unknown decryption request", "pendingHandles", randomBytes(32))
}

func TestEngineVerify(t *testing.T) {
	eng, oracle := newEngineInvoker(t)

	requestID := randomBytes(32)
	cleartext := encodeAggregate(55)
	proof := signDecryptionResult(t, oracle, requestID, cleartext)

	eng.Invoke(t, true, "verify", requestID, cleartext, proof)
	eng.Invoke(t, false, "verify", requestID, encodeAggregate(56), proof)
	eng.Invoke(t, false, "verify", requestID, cleartext, randomBytes(64))
	eng.Invoke(t, false, "verify", requestID, cleartext, randomBytes(12))

	stranger, err := keys.NewPrivateKey()
	require.NoError(t, err)
	eng.Invoke(t, false, "verify", requestID, cleartext,
		signDecryptionResult(t, stranger, requestID, cleartext))
}
