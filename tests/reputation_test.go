package tests

import (
	"testing"

	"github.com/nspcc-dev/confrep-contract/common"
	cst "github.com/nspcc-dev/confrep-contract/contracts/reputation/reputationconst"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func TestReputationDeploy(t *testing.T) {
	e := newExecutor(t)

	oracle, err := keys.NewPrivateKey()
	require.NoError(t, err)

	accProv := e.NewAccount(t)
	engineHash := deployEngineContract(t, e, oracle.PublicKey())
	reputationHash := deployReputationContract(t, e, engineHash, 5, accProv.ScriptHash())

	c := e.CommitteeInvoker(reputationHash)

	c.Invoke(t, common.Version, "version")
	c.Invoke(t, stackitem.Make(e.CommitteeHash.BytesBE()), "owner")
	c.Invoke(t, false, "isPaused")
	c.Invoke(t, 5, "cooldown")
	c.Invoke(t, 1, "currentBatch")
	c.Invoke(t, false, "isBatchClosed", 1)
	c.Invoke(t, true, "isProvider", accProv.ScriptHash())
	c.Invoke(t, false, "isProvider", e.CommitteeHash)
}

func TestReputationUpdate(t *testing.T) {
	c, _, _ := newReputationInvoker(t, 0)

	acc := c.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, common.ErrOwnerWitnessFailed, "update",
		[]byte{}, []byte{}, nil)
}

func TestTransferOwnership(t *testing.T) {
	c, _, _ := newReputationInvoker(t, 0)

	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)

	c.InvokeFail(t, cst.ErrAddressLen, "transferOwnership", []byte{1, 2, 3})
	cAcc.InvokeFail(t, common.ErrOwnerWitnessFailed, "transferOwnership", acc.ScriptHash())

	h := c.Invoke(t, stackitem.Null{}, "transferOwnership", acc.ScriptHash())
	aer := c.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "OwnershipTransferred", aer.Events[0].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.Make(c.CommitteeHash.BytesBE()),
		stackitem.Make(acc.ScriptHash().BytesBE()),
	}), aer.Events[0].Item)

	c.Invoke(t, stackitem.Make(acc.ScriptHash().BytesBE()), "owner")

	// Owner gates follow the transfer.
	c.InvokeFail(t, common.ErrOwnerWitnessFailed, "pause")
	cAcc.Invoke(t, stackitem.Null{}, "pause")
	cAcc.Invoke(t, stackitem.Null{}, "unpause")
}

func TestProviderAdmin(t *testing.T) {
	c, _, _ := newReputationInvoker(t, 0)

	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)

	c.InvokeFail(t, cst.ErrAddressLen, "addProvider", []byte{1})
	cAcc.InvokeFail(t, common.ErrOwnerWitnessFailed, "addProvider", acc.ScriptHash())

	h := c.Invoke(t, stackitem.Null{}, "addProvider", acc.ScriptHash())
	aer := c.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "ProviderAdded", aer.Events[0].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.Make(acc.ScriptHash().BytesBE()),
	}), aer.Events[0].Item)

	c.Invoke(t, true, "isProvider", acc.ScriptHash())

	// Adding a present provider changes nothing and logs nothing.
	h = c.Invoke(t, stackitem.Null{}, "addProvider", acc.ScriptHash())
	aer = c.CheckHalt(t, h)
	require.Equal(t, 0, len(aer.Events))

	acc2 := newProvider(t, c)

	items := iteratorFromTestInvoke(t, c, "providers")
	listed := make([][]byte, 0, len(items))
	for _, item := range items {
		p, err := item.TryBytes()
		require.NoError(t, err)
		listed = append(listed, p)
	}
	require.ElementsMatch(t, [][]byte{
		acc.ScriptHash().BytesBE(),
		acc2.ScriptHash().BytesBE(),
	}, listed)

	cAcc.InvokeFail(t, common.ErrOwnerWitnessFailed, "removeProvider", acc.ScriptHash())

	h = c.Invoke(t, stackitem.Null{}, "removeProvider", acc.ScriptHash())
	aer = c.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "ProviderRemoved", aer.Events[0].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.Make(acc.ScriptHash().BytesBE()),
	}), aer.Events[0].Item)

	c.Invoke(t, false, "isProvider", acc.ScriptHash())

	// Same for removing an absent one.
	h = c.Invoke(t, stackitem.Null{}, "removeProvider", acc.ScriptHash())
	aer = c.CheckHalt(t, h)
	require.Equal(t, 0, len(aer.Events))
}

func TestPause(t *testing.T) {
	c, eng, _ := newReputationInvoker(t, 0)

	prov := newProvider(t, c)
	handle := engineEncrypt(t, eng, 42)
	contributor := randomBytes(20)

	acc := c.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, common.ErrOwnerWitnessFailed, "pause")

	h := c.Invoke(t, stackitem.Null{}, "pause")
	aer := c.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "Paused", aer.Events[0].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{}), aer.Events[0].Item)

	c.Invoke(t, true, "isPaused")
	c.InvokeFail(t, cst.ErrAlreadyPaused, "pause")

	// Submissions and aggregation requests are gated.
	c.WithSigners(prov).InvokeFail(t, cst.ErrPaused, "submitReputation",
		prov.ScriptHash(), contributor, handle)
	c.Invoke(t, stackitem.Null{}, "closeBatch", 1)
	c.InvokeFail(t, cst.ErrPaused, "requestReputationAggregation", 1)

	// Administrative methods are not.
	c.Invoke(t, 2, "openNewBatch")
	c.Invoke(t, stackitem.Null{}, "addProvider", acc.ScriptHash())

	h = c.Invoke(t, stackitem.Null{}, "unpause")
	aer = c.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "Unpaused", aer.Events[0].Name)

	c.Invoke(t, false, "isPaused")

	// Unpausing a running contract changes nothing and logs nothing.
	h = c.Invoke(t, stackitem.Null{}, "unpause")
	aer = c.CheckHalt(t, h)
	require.Equal(t, 0, len(aer.Events))

	submitScore(t, c, prov, contributor, handle)
}

func TestSetCooldown(t *testing.T) {
	c, _, _ := newReputationInvoker(t, 0)

	acc := c.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, common.ErrOwnerWitnessFailed, "setCooldown", 10)
	c.InvokeFail(t, cst.ErrNegativeCooldown, "setCooldown", -1)

	h := c.Invoke(t, stackitem.Null{}, "setCooldown", 10)
	aer := c.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "CooldownChanged", aer.Events[0].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.Make(0),
		stackitem.Make(10),
	}), aer.Events[0].Item)

	c.Invoke(t, 10, "cooldown")
}

func TestBatchLifecycle(t *testing.T) {
	c, eng, _ := newReputationInvoker(t, 0)

	prov := newProvider(t, c)
	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)

	c.Invoke(t, 1, "currentBatch")

	cAcc.InvokeFail(t, common.ErrOwnerWitnessFailed, "openNewBatch")

	h := c.Invoke(t, 2, "openNewBatch")
	aer := c.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "BatchOpened", aer.Events[0].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{stackitem.Make(2)}), aer.Events[0].Item)

	c.Invoke(t, 2, "currentBatch")

	// Opening the next batch leaves the previous one as is.
	c.Invoke(t, false, "isBatchClosed", 1)

	// Submissions land in the current batch.
	contributor := randomBytes(20)
	submitScore(t, c, prov, contributor, engineEncrypt(t, eng, 7))
	c.Invoke(t, true, "hasSubmitted", 2, contributor)
	c.Invoke(t, false, "hasSubmitted", 1, contributor)

	cAcc.InvokeFail(t, common.ErrOwnerWitnessFailed, "closeBatch", 1)
	c.InvokeFail(t, cst.ErrBatchNotFound, "closeBatch", 0)
	c.InvokeFail(t, cst.ErrBatchNotFound, "closeBatch", 3)

	h = c.Invoke(t, stackitem.Null{}, "closeBatch", 1)
	aer = c.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "BatchClosed", aer.Events[0].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{stackitem.Make(1)}), aer.Events[0].Item)

	c.Invoke(t, true, "isBatchClosed", 1)
	c.InvokeFail(t, cst.ErrBatchClosed, "closeBatch", 1)
	c.InvokeFail(t, cst.ErrBatchNotFound, "isBatchClosed", 9)
}

func TestSubmitReputation(t *testing.T) {
	c, eng, _ := newReputationInvoker(t, 0)

	prov := newProvider(t, c)
	prov2 := newProvider(t, c)
	cProv := c.WithSigners(prov)

	contributor := randomBytes(20)
	handle := engineEncrypt(t, eng, 77)

	cProv.InvokeFail(t, cst.ErrAddressLen, "submitReputation",
		[]byte{1, 2}, contributor, handle)
	cProv.InvokeFail(t, cst.ErrAddressLen, "submitReputation",
		prov.ScriptHash(), randomBytes(19), handle)
	cProv.InvokeFail(t, cst.ErrHandleLen, "submitReputation",
		prov.ScriptHash(), contributor, randomBytes(16))

	// Unlisted accounts are rejected even with a valid witness.
	outsider := c.NewAccount(t)
	c.WithSigners(outsider).InvokeFail(t, cst.ErrNotProvider, "submitReputation",
		outsider.ScriptHash(), contributor, handle)

	// The witness must belong to the claimed provider.
	c.WithSigners(outsider).InvokeFail(t, common.ErrWitnessFailed, "submitReputation",
		prov.ScriptHash(), contributor, handle)

	h := cProv.Invoke(t, stackitem.Null{}, "submitReputation",
		prov.ScriptHash(), contributor, handle)
	aer := cProv.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "ReputationSubmitted", aer.Events[0].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.Make(prov.ScriptHash().BytesBE()),
		stackitem.Make(contributor),
		stackitem.Make(1),
	}), aer.Events[0].Item)

	c.Invoke(t, true, "hasSubmitted", 1, contributor)
	c.Invoke(t, false, "hasSubmitted", 1, randomBytes(20))

	// One score per contributor per batch, whoever submits it.
	cProv.InvokeFail(t, cst.ErrAlreadySubmitted, "submitReputation",
		prov.ScriptHash(), contributor, engineEncrypt(t, eng, 1))
	c.WithSigners(prov2).InvokeFail(t, cst.ErrAlreadySubmitted, "submitReputation",
		prov2.ScriptHash(), contributor, engineEncrypt(t, eng, 2))

	// A closed current batch accepts nothing until the next one is opened.
	c.Invoke(t, stackitem.Null{}, "closeBatch", 1)
	cProv.InvokeFail(t, cst.ErrBatchClosed, "submitReputation",
		prov.ScriptHash(), randomBytes(20), engineEncrypt(t, eng, 3))
	c.Invoke(t, 2, "openNewBatch")
	submitScore(t, c, prov, contributor, engineEncrypt(t, eng, 4))
	c.Invoke(t, true, "hasSubmitted", 2, contributor)
}

func TestSubmissionCooldown(t *testing.T) {
	c, eng, _ := newReputationInvoker(t, 1)

	prov := newProvider(t, c)
	prov2 := newProvider(t, c)
	cProv := c.WithSigners(prov)

	h1 := engineEncrypt(t, eng, 1)
	h2 := engineEncrypt(t, eng, 2)
	h3 := engineEncrypt(t, eng, 3)
	h4 := engineEncrypt(t, eng, 4)

	contribB := randomBytes(20)
	contribC := randomBytes(20)

	submitScore(t, c, prov, randomBytes(20), h1)
	base := c.TopBlock(t).Timestamp

	// The next block is one millisecond in, well inside the window.
	cProv.InvokeFail(t, cst.ErrCooldownActive, "submitReputation",
		prov.ScriptHash(), contribB, h2)

	// Another provider is not affected.
	submitScore(t, c, prov2, contribB, h4)

	// One millisecond before the boundary the window still holds.
	b := c.NewUnsignedBlock(t)
	b.Timestamp = base + 998
	require.NoError(t, c.Chain.AddBlock(c.SignBlock(b)))
	cProv.InvokeFail(t, cst.ErrCooldownActive, "submitReputation",
		prov.ScriptHash(), contribC, h3)

	// At exactly stamp+cooldown the submission goes through.
	require.Equal(t, base+1000, c.TopBlock(t).Timestamp+1)
	submitScore(t, c, prov, contribC, h3)
	c.Invoke(t, true, "hasSubmitted", 1, contribC)
}

func TestCooldownNamespaces(t *testing.T) {
	t.Run("submission does not block aggregation", func(t *testing.T) {
		c, eng, _ := newReputationInvoker(t, 3600)

		// Committee is both the owner and a provider here.
		c.Invoke(t, stackitem.Null{}, "addProvider", c.CommitteeHash)
		prov := newProvider(t, c)

		h1 := engineEncrypt(t, eng, 5)
		h2 := engineEncrypt(t, eng, 6)
		h3 := engineEncrypt(t, eng, 7)

		c.Invoke(t, stackitem.Null{}, "submitReputation",
			c.CommitteeHash, randomBytes(20), h1)
		submitScore(t, c, prov, randomBytes(20), h2)
		c.Invoke(t, stackitem.Null{}, "closeBatch", 1)

		// Fresh submission stamp, aggregation still allowed.
		requestID := invokeBytesResult(t, c, "requestReputationAggregation", 1)
		require.Equal(t, 32, len(requestID))

		// Both stamps are hot now, each in its own namespace.
		c.Invoke(t, 2, "openNewBatch")
		c.InvokeFail(t, cst.ErrCooldownActive, "submitReputation",
			c.CommitteeHash, randomBytes(20), h3)
		c.WithSigners(prov).InvokeFail(t, cst.ErrCooldownActive, "submitReputation",
			prov.ScriptHash(), randomBytes(20), h3)
		c.Invoke(t, stackitem.Null{}, "closeBatch", 2)
		c.InvokeFail(t, cst.ErrCooldownActive, "requestReputationAggregation", 2)
	})

	t.Run("aggregation does not block submission", func(t *testing.T) {
		c, eng, _ := newReputationInvoker(t, 3600)

		c.Invoke(t, stackitem.Null{}, "addProvider", c.CommitteeHash)
		handle := engineEncrypt(t, eng, 8)

		// Aggregate an empty batch to stamp the aggregation cooldown only.
		c.Invoke(t, stackitem.Null{}, "closeBatch", 1)
		invokeBytesResult(t, c, "requestReputationAggregation", 1)

		c.Invoke(t, 2, "openNewBatch")
		c.Invoke(t, stackitem.Null{}, "submitReputation",
			c.CommitteeHash, randomBytes(20), handle)

		// The submission stamp is hot as well now.
		c.InvokeFail(t, cst.ErrCooldownActive, "submitReputation",
			c.CommitteeHash, randomBytes(20), handle)
	})
}

func TestAggregationRequest(t *testing.T) {
	c, eng, _ := newReputationInvoker(t, 0)

	prov := newProvider(t, c)

	contribA := randomBytes(20)
	contribB := randomBytes(20)
	hA := engineEncrypt(t, eng, 10)
	hB := engineEncrypt(t, eng, 25)

	submitScore(t, c, prov, contribA, hA)
	submitScore(t, c, prov, contribB, hB)

	acc := c.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, common.ErrOwnerWitnessFailed,
		"requestReputationAggregation", 1)
	c.InvokeFail(t, cst.ErrBatchNotFound, "requestReputationAggregation", 0)
	c.InvokeFail(t, cst.ErrBatchNotFound, "requestReputationAggregation", 9)
	c.InvokeFail(t, cst.ErrBatchOpen, "requestReputationAggregation", 1)

	c.Invoke(t, stackitem.Null{}, "closeBatch", 1)

	tx := c.PrepareInvoke(t, "requestReputationAggregation", 1)
	c.AddNewBlock(t, tx)
	aer := c.CheckHalt(t, tx.Hash())

	require.Equal(t, 1, len(aer.Stack))
	requestID, err := aer.Stack[0].TryBytes()
	require.NoError(t, err)
	require.Equal(t, 32, len(requestID))

	// The engine announces the pending decryption, then the contract logs
	// the request itself.
	require.Equal(t, 2, len(aer.Events))
	require.Equal(t, "DecryptionPending", aer.Events[0].Name)
	require.Equal(t, eng.Hash, aer.Events[0].ScriptHash)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.Make(requestID),
	}), aer.Events[0].Item)
	require.Equal(t, "DecryptionRequested", aer.Events[1].Name)
	require.Equal(t, c.Hash, aer.Events[1].ScriptHash)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.Make(requestID),
		stackitem.Make(1),
	}), aer.Events[1].Item)

	// The stored context binds the exact submission set of the batch.
	expComm := stateCommitment(c.Hash, 1,
		orderHandles([][]byte{contribA, contribB}, [][]byte{hA, hB})...)
	c.Invoke(t, stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(1),
		stackitem.Make(expComm),
		stackitem.NewBool(false),
	}), "getDecryptionRequest", requestID)
	c.Invoke(t, false, "isProcessed", requestID)
	c.InvokeFail(t, cst.ErrNoAggregate, "getAggregate", 1)

	// A second outstanding request for the same batch is a separate context.
	requestID2 := invokeBytesResult(t, c, "requestReputationAggregation", 1)
	require.NotEqual(t, requestID, requestID2)
	c.Invoke(t, false, "isProcessed", requestID2)

	// Unknown ids are rejected by the read methods.
	c.InvokeFail(t, cst.ErrUnknownRequest, "isProcessed", randomBytes(32))
	c.InvokeFail(t, cst.ErrUnknownRequest, "getDecryptionRequest", randomBytes(32))
}

func TestDecryptionCallback(t *testing.T) {
	c, eng, oracle := newReputationInvoker(t, 0)

	prov := newProvider(t, c)
	contribA := randomBytes(20)
	contribB := randomBytes(20)

	submitScore(t, c, prov, contribA, engineEncrypt(t, eng, 10))
	submitScore(t, c, prov, contribB, engineEncrypt(t, eng, 25))
	c.Invoke(t, stackitem.Null{}, "closeBatch", 1)

	requestID := invokeBytesResult(t, c, "requestReputationAggregation", 1)
	cleartext := encodeAggregate(35)
	proof := signDecryptionResult(t, oracle, requestID, cleartext)

	// Delivery needs no privileged caller.
	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)

	t.Run("unknown request", func(t *testing.T) {
		unknown := randomBytes(32)
		cAcc.InvokeFail(t, cst.ErrReplay, "onDecryptionCallback", unknown,
			cleartext, signDecryptionResult(t, oracle, unknown, cleartext))
	})

	t.Run("invalid proof", func(t *testing.T) {
		stranger, err := keys.NewPrivateKey()
		require.NoError(t, err)

		cAcc.InvokeFail(t, cst.ErrProofInvalid, "onDecryptionCallback", requestID,
			cleartext, signDecryptionResult(t, stranger, requestID, cleartext))
		cAcc.InvokeFail(t, cst.ErrProofInvalid, "onDecryptionCallback", requestID,
			cleartext, randomBytes(64))
		cAcc.InvokeFail(t, cst.ErrProofInvalid, "onDecryptionCallback", requestID,
			cleartext, randomBytes(10))
	})

	t.Run("tampered cleartext", func(t *testing.T) {
		cAcc.InvokeFail(t, cst.ErrProofInvalid, "onDecryptionCallback", requestID,
			encodeAggregate(34), proof)
	})

	t.Run("malformed cleartext", func(t *testing.T) {
		for _, bad := range [][]byte{encodeAggregate(35)[:7], append(encodeAggregate(35), 0)} {
			cAcc.InvokeFail(t, cst.ErrMalformedCleartext, "onDecryptionCallback", requestID,
				bad, signDecryptionResult(t, oracle, requestID, bad))
		}
	})

	// Failed deliveries change nothing.
	c.Invoke(t, false, "isProcessed", requestID)
	c.InvokeFail(t, cst.ErrNoAggregate, "getAggregate", 1)

	h := cAcc.Invoke(t, stackitem.Null{}, "onDecryptionCallback",
		requestID, cleartext, proof)
	aer := cAcc.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "DecryptionCompleted", aer.Events[0].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.Make(requestID),
		stackitem.Make(1),
		stackitem.Make(35),
	}), aer.Events[0].Item)

	c.Invoke(t, true, "isProcessed", requestID)
	c.Invoke(t, 35, "getAggregate", 1)

	t.Run("replay", func(t *testing.T) {
		cAcc.InvokeFail(t, cst.ErrReplay, "onDecryptionCallback",
			requestID, cleartext, proof)
		c.Invoke(t, 35, "getAggregate", 1)
	})
}

func TestCallbackOrderIndependence(t *testing.T) {
	c, eng, oracle := newReputationInvoker(t, 0)

	prov := newProvider(t, c)

	submitScore(t, c, prov, randomBytes(20), engineEncrypt(t, eng, 10))
	c.Invoke(t, stackitem.Null{}, "closeBatch", 1)
	c.Invoke(t, 2, "openNewBatch")
	submitScore(t, c, prov, randomBytes(20), engineEncrypt(t, eng, 25))
	c.Invoke(t, stackitem.Null{}, "closeBatch", 2)

	request1 := invokeBytesResult(t, c, "requestReputationAggregation", 1)
	request2 := invokeBytesResult(t, c, "requestReputationAggregation", 2)

	// Deliver the later request first.
	clear2 := encodeAggregate(25)
	c.Invoke(t, stackitem.Null{}, "onDecryptionCallback", request2, clear2,
		signDecryptionResult(t, oracle, request2, clear2))

	c.Invoke(t, true, "isProcessed", request2)
	c.Invoke(t, false, "isProcessed", request1)
	c.Invoke(t, 25, "getAggregate", 2)
	c.InvokeFail(t, cst.ErrNoAggregate, "getAggregate", 1)

	clear1 := encodeAggregate(10)
	c.Invoke(t, stackitem.Null{}, "onDecryptionCallback", request1, clear1,
		signDecryptionResult(t, oracle, request1, clear1))

	c.Invoke(t, true, "isProcessed", request1)
	c.Invoke(t, 10, "getAggregate", 1)
	c.Invoke(t, 25, "getAggregate", 2)
}

func TestEmptyBatchAggregate(t *testing.T) {
	c, eng, oracle := newReputationInvoker(t, 0)

	c.Invoke(t, stackitem.Null{}, "closeBatch", 1)

	requestID := invokeBytesResult(t, c, "requestReputationAggregation", 1)

	// No submissions: the commitment covers the bare batch identity and the
	// engine aggregates a fresh encryption of zero.
	c.Invoke(t, stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(1),
		stackitem.Make(stateCommitment(c.Hash, 1)),
		stackitem.NewBool(false),
	}), "getDecryptionRequest", requestID)

	s, err := eng.TestInvoke(t, "pendingHandles", requestID)
	require.NoError(t, err)
	pending := s.Pop().Array()
	require.Equal(t, 1, len(pending))
	total, err := pending[0].TryBytes()
	require.NoError(t, err)
	eng.Invoke(t, 0, "decrypt", total)

	cleartext := encodeAggregate(0)
	c.Invoke(t, stackitem.Null{}, "onDecryptionCallback", requestID, cleartext,
		signDecryptionResult(t, oracle, requestID, cleartext))

	c.Invoke(t, 0, "getAggregate", 1)
}

func TestAggregateOrderIndependence(t *testing.T) {
	c, eng, oracle := newReputationInvoker(t, 0)

	prov := newProvider(t, c)
	contribA := randomBytes(20)
	contribB := randomBytes(20)

	hA1 := engineEncrypt(t, eng, 7)
	hB1 := engineEncrypt(t, eng, 11)
	submitScore(t, c, prov, contribA, hA1)
	submitScore(t, c, prov, contribB, hB1)
	c.Invoke(t, stackitem.Null{}, "closeBatch", 1)

	// Same scores, opposite submission order.
	c.Invoke(t, 2, "openNewBatch")
	hB2 := engineEncrypt(t, eng, 11)
	hA2 := engineEncrypt(t, eng, 7)
	submitScore(t, c, prov, contribB, hB2)
	submitScore(t, c, prov, contribA, hA2)
	c.Invoke(t, stackitem.Null{}, "closeBatch", 2)

	request1 := invokeBytesResult(t, c, "requestReputationAggregation", 1)
	request2 := invokeBytesResult(t, c, "requestReputationAggregation", 2)

	// Handles fold in canonical contributor order in both cases.
	c.Invoke(t, stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(1),
		stackitem.Make(stateCommitment(c.Hash, 1,
			orderHandles([][]byte{contribA, contribB}, [][]byte{hA1, hB1})...)),
		stackitem.NewBool(false),
	}), "getDecryptionRequest", request1)
	c.Invoke(t, stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(2),
		stackitem.Make(stateCommitment(c.Hash, 2,
			orderHandles([][]byte{contribB, contribA}, [][]byte{hB2, hA2})...)),
		stackitem.NewBool(false),
	}), "getDecryptionRequest", request2)

	clear := encodeAggregate(18)
	c.Invoke(t, stackitem.Null{}, "onDecryptionCallback", request1, clear,
		signDecryptionResult(t, oracle, request1, clear))
	c.Invoke(t, stackitem.Null{}, "onDecryptionCallback", request2, clear,
		signDecryptionResult(t, oracle, request2, clear))

	c.Invoke(t, 18, "getAggregate", 1)
	c.Invoke(t, 18, "getAggregate", 2)
}
