package reputation

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/confrep-contract/common"
	cst "github.com/nspcc-dev/confrep-contract/contracts/reputation/reputationconst"
)

// DecryptionRequest is a decryption tracked by the contract between
// RequestReputationAggregation and OnDecryptionCallback.
type DecryptionRequest struct {
	// Batch the aggregate was computed for.
	BatchID int

	// Digest over the contract identity and the exact ciphertext handle
	// sequence aggregated at request time.
	Commitment []byte

	// Whether the callback has been accepted for this request.
	Processed bool
}

const (
	ownerKey        = "owner"
	pausedKey       = "paused"
	cooldownKey     = "cooldown"
	engineKey       = "fheScriptHash"
	batchCurrentKey = "batchCurrent"

	providerPrefix     = 'p'
	closedPrefix       = 'b'
	submissionPrefix   = 's'
	submitStampPrefix  = 'w'
	requestStampPrefix = 'q'
	requestPrefix      = 'd'
	resultPrefix       = 'r'

	// batchIDLen is the fixed width of a batch id inside storage keys and
	// commitment preimages. Fixed width keeps per-batch prefix iteration
	// from matching entries of other batches.
	batchIDLen = 8

	msPerSecond = 1000

	callbackMethod = "onDecryptionCallback"
)

// _deploy sets up the initial contract state: owner, FHE engine hash,
// cooldown window, optional initial provider set. Batch 1 is open from the
// start.
// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()

	if isUpdate {
		args := data.([]any)
		version := args[len(args)-1].(int)
		common.CheckVersion(version)
		return
	}

	var args = data.(struct {
		owner     interop.Hash160
		engine    interop.Hash160
		cooldown  int
		providers []interop.Hash160
	})

	if len(args.owner) != interop.Hash160Len || len(args.engine) != interop.Hash160Len {
		panic(cst.ErrAddressLen)
	}
	if args.cooldown < 0 {
		panic(cst.ErrNegativeCooldown)
	}

	storage.Put(ctx, ownerKey, args.owner)
	storage.Put(ctx, engineKey, args.engine)
	storage.Put(ctx, cooldownKey, args.cooldown)
	storage.Put(ctx, batchCurrentKey, 1)

	for i := 0; i < len(args.providers); i++ { //nolint:intrange // Not supported by NeoGo
		provider := args.providers[i]
		if len(provider) != interop.Hash160Len {
			panic(cst.ErrAddressLen)
		}
		storage.Put(ctx, providerStorageKey(provider), []byte{})
	}

	runtime.Log("reputation contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// by the contract owner only.
func Update(script []byte, manifest []byte, data any) {
	ctx := storage.GetReadOnlyContext()
	common.CheckOwnerWitness(getOwner(ctx))

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("reputation contract updated")
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// TransferOwnership hands every owner gate of the contract over to newOwner.
// It can be invoked by the current owner only.
//
// It produces OwnershipTransferred notification.
func TransferOwnership(newOwner interop.Hash160) {
	if len(newOwner) != interop.Hash160Len {
		panic(cst.ErrAddressLen)
	}

	ctx := storage.GetContext()
	owner := getOwner(ctx)
	common.CheckOwnerWitness(owner)

	storage.Put(ctx, ownerKey, newOwner)
	runtime.Notify("OwnershipTransferred", owner, newOwner)
}

// Owner returns the account currently holding the owner role.
func Owner() interop.Hash160 {
	return getOwner(storage.GetReadOnlyContext())
}

// AddProvider admits the account into the reputation provider allow-list. It
// can be invoked by the contract owner only. Adding a present provider is a
// no-op.
//
// It produces ProviderAdded notification on an actual change.
func AddProvider(provider interop.Hash160) {
	if len(provider) != interop.Hash160Len {
		panic(cst.ErrAddressLen)
	}

	ctx := storage.GetContext()
	common.CheckOwnerWitness(getOwner(ctx))

	key := providerStorageKey(provider)
	if storage.Get(ctx, key) != nil {
		return
	}

	storage.Put(ctx, key, []byte{})
	runtime.Notify("ProviderAdded", provider)
}

// RemoveProvider removes the account from the provider allow-list. It can be
// invoked by the contract owner only. Removing an absent provider is a no-op.
//
// It produces ProviderRemoved notification on an actual change.
func RemoveProvider(provider interop.Hash160) {
	if len(provider) != interop.Hash160Len {
		panic(cst.ErrAddressLen)
	}

	ctx := storage.GetContext()
	common.CheckOwnerWitness(getOwner(ctx))

	key := providerStorageKey(provider)
	if storage.Get(ctx, key) == nil {
		return
	}

	storage.Delete(ctx, key)
	runtime.Notify("ProviderRemoved", provider)
}

// IsProvider returns true if the account is in the provider allow-list.
func IsProvider(provider interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, providerStorageKey(provider)) != nil
}

// Providers returns an iterator over the provider allow-list. Iterator
// values are Hash160 provider accounts.
func Providers() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{providerPrefix}, storage.KeysOnly|storage.RemovePrefix)
}

// Pause stops score submissions and aggregation requests. It can be invoked
// by the contract owner only and throws if the contract is already paused.
//
// It produces Paused notification.
func Pause() {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(getOwner(ctx))

	if isPaused(ctx) {
		panic(cst.ErrAlreadyPaused)
	}

	storage.Put(ctx, pausedKey, 1)
	runtime.Notify("Paused")
}

// Unpause resumes score submissions and aggregation requests. It can be
// invoked by the contract owner only. Unpausing a running contract is a
// no-op.
//
// It produces Unpaused notification on an actual change.
func Unpause() {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(getOwner(ctx))

	if !isPaused(ctx) {
		return
	}

	storage.Delete(ctx, pausedKey)
	runtime.Notify("Unpaused")
}

// IsPaused returns true if the contract is paused.
func IsPaused() bool {
	return isPaused(storage.GetReadOnlyContext())
}

// SetCooldown changes the cooldown window, in seconds, applied to score
// submissions and aggregation requests. It can be invoked by the contract
// owner only. Both cooldown kinds share the window value but are tracked
// per address and per action kind independently.
//
// It produces CooldownChanged notification.
func SetCooldown(value int) {
	if value < 0 {
		panic(cst.ErrNegativeCooldown)
	}

	ctx := storage.GetContext()
	common.CheckOwnerWitness(getOwner(ctx))

	old := storage.Get(ctx, cooldownKey).(int)
	storage.Put(ctx, cooldownKey, value)
	runtime.Notify("CooldownChanged", old, value)
}

// Cooldown returns the current cooldown window in seconds.
func Cooldown() int {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, cooldownKey).(int)
}

// OpenNewBatch starts the next submission batch and returns its id. The
// previous batch is left as is: closing is always explicit. It can be
// invoked by the contract owner only.
//
// It produces BatchOpened notification.
func OpenNewBatch() int {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(getOwner(ctx))

	batchID := currentBatch(ctx) + 1
	storage.Put(ctx, batchCurrentKey, batchID)

	runtime.Notify("BatchOpened", batchID)
	return batchID
}

// CloseBatch marks the batch closed. Closing is terminal: there is no way to
// reopen a batch. It can be invoked by the contract owner only and throws
// for unknown and for already closed batches.
//
// It produces BatchClosed notification.
func CloseBatch(batchID int) {
	ctx := storage.GetContext()
	common.CheckOwnerWitness(getOwner(ctx))

	if batchID < 1 || batchID > currentBatch(ctx) {
		panic(cst.ErrBatchNotFound)
	}
	if isClosed(ctx, batchID) {
		panic(cst.ErrBatchClosed)
	}

	storage.Put(ctx, closedStorageKey(batchID), 1)
	runtime.Notify("BatchClosed", batchID)
}

// CurrentBatch returns the id of the current batch, the one accepting
// submissions unless closed. Batch ids start at 1.
func CurrentBatch() int {
	return currentBatch(storage.GetReadOnlyContext())
}

// IsBatchClosed returns true if the batch has been closed. It throws for
// batch ids never seen by the contract.
func IsBatchClosed(batchID int) bool {
	ctx := storage.GetReadOnlyContext()
	if batchID < 1 || batchID > currentBatch(ctx) {
		panic(cst.ErrBatchNotFound)
	}
	return isClosed(ctx, batchID)
}

// SubmitReputation stores the encrypted reputation score of the contributor
// in the current batch. It can be invoked by allow-listed providers only,
// witnessed by the provider account, outside of the provider's submission
// cooldown window, while the contract is not paused and the current batch is
// not closed. Exactly one score per contributor fits into a batch.
//
// The encScore argument is an opaque ciphertext handle issued by the FHE
// engine; the contract never learns the score itself.
//
// It produces ReputationSubmitted notification. Neither the notification nor
// the contract storage ever contain plaintext score material.
func SubmitReputation(provider interop.Hash160, contributor interop.Hash160, encScore []byte) {
	if len(provider) != interop.Hash160Len || len(contributor) != interop.Hash160Len {
		panic(cst.ErrAddressLen)
	}
	if len(encScore) != cst.HandleLen {
		panic(cst.ErrHandleLen)
	}

	ctx := storage.GetContext()
	requireNotPaused(ctx)

	if !isProvider(ctx, provider) {
		panic(cst.ErrNotProvider)
	}
	common.CheckWitness(provider)
	requireCooldownOver(ctx, submitStampPrefix, provider)

	batchID := currentBatch(ctx)
	if isClosed(ctx, batchID) {
		panic(cst.ErrBatchClosed)
	}

	subKey := submissionStorageKey(batchID, contributor)
	if storage.Get(ctx, subKey) != nil {
		panic(cst.ErrAlreadySubmitted)
	}

	storage.Put(ctx, subKey, encScore)
	stampCooldown(ctx, submitStampPrefix, provider)

	runtime.Notify("ReputationSubmitted", provider, contributor, batchID)
}

// HasSubmitted returns true if the batch holds a score for the contributor.
func HasSubmitted(batchID int, contributor interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, submissionStorageKey(batchID, contributor)) != nil
}

// RequestReputationAggregation folds the encrypted scores of a closed batch
// into a single encrypted aggregate and hands it to the decryption pipeline
// of the FHE engine. It can be invoked by the contract owner only, outside
// of the owner's aggregation cooldown window, while the contract is not
// paused. The batch must exist and be closed.
//
// The returned request id identifies the asynchronous decryption; the
// eventual result is delivered through OnDecryptionCallback. The stored
// request context carries a commitment binding the result to the exact
// submission set aggregated here.
//
// It produces DecryptionRequested notification.
func RequestReputationAggregation(batchID int) []byte {
	ctx := storage.GetContext()
	owner := getOwner(ctx)
	common.CheckOwnerWitness(owner)
	requireNotPaused(ctx)

	if batchID < 1 || batchID > currentBatch(ctx) {
		panic(cst.ErrBatchNotFound)
	}
	if !isClosed(ctx, batchID) {
		panic(cst.ErrBatchOpen)
	}
	requireCooldownOver(ctx, requestStampPrefix, owner)

	engine := engineHash(ctx)
	handles := submissionHandles(ctx, batchID)
	total := foldAggregate(engine, handles)

	commitment := stateCommitment(batchID, handles)

	requestID := contract.Call(engine, "requestDecryption", contract.All,
		[][]byte{total}, callbackMethod).([]byte)

	reqKey := requestStorageKey(requestID)
	if storage.Get(ctx, reqKey) != nil {
		panic(cst.ErrDuplicateRequest)
	}

	common.SetSerialized(ctx, reqKey, DecryptionRequest{
		BatchID:    batchID,
		Commitment: commitment,
		Processed:  false,
	})
	stampCooldown(ctx, requestStampPrefix, owner)

	runtime.Notify("DecryptionRequested", requestID, batchID)
	return requestID
}

// OnDecryptionCallback accepts the decrypted aggregate for a pending
// request. The method is callable by anyone: authorization comes from the
// decryption proof checked through the FHE engine and from the state
// commitment stored at request time, not from the caller identity.
//
// The request context must exist and be unprocessed, the submission set of
// the batch must be exactly the one aggregated at request time, the proof
// must verify for requestID and cleartext, and cleartext must be the
// fixed-width encoding of one integer. All checks precede any state change;
// a request is processed exactly once.
//
// It produces DecryptionCompleted notification carrying the decrypted
// aggregate. The aggregate also becomes available via GetAggregate.
func OnDecryptionCallback(requestID []byte, cleartext []byte, proof []byte) {
	ctx := storage.GetContext()

	reqKey := requestStorageKey(requestID)
	data := storage.Get(ctx, reqKey)
	if data == nil {
		panic(cst.ErrReplay)
	}

	req := std.Deserialize(data.([]byte)).(DecryptionRequest)
	if req.Processed {
		panic(cst.ErrReplay)
	}

	handles := submissionHandles(ctx, req.BatchID)
	if !common.BytesEqual(req.Commitment, stateCommitment(req.BatchID, handles)) {
		panic(cst.ErrStateMismatch)
	}

	valid := contract.Call(engineHash(ctx), "verify", contract.ReadOnly,
		requestID, cleartext, proof).(bool)
	if !valid {
		panic(cst.ErrProofInvalid)
	}

	if len(cleartext) != cst.CleartextLen {
		panic(cst.ErrMalformedCleartext)
	}
	aggregate := convert.ToInteger(cleartext)

	req.Processed = true
	common.SetSerialized(ctx, reqKey, req)
	storage.Put(ctx, resultStorageKey(req.BatchID), aggregate)

	runtime.Notify("DecryptionCompleted", requestID, req.BatchID, aggregate)
}

// IsProcessed returns true if the decryption request has been completed. It
// throws for unknown request ids.
func IsProcessed(requestID []byte) bool {
	ctx := storage.GetReadOnlyContext()
	return getRequest(ctx, requestID).Processed
}

// GetDecryptionRequest returns the stored context of the decryption request.
// It throws for unknown request ids.
func GetDecryptionRequest(requestID []byte) DecryptionRequest {
	ctx := storage.GetReadOnlyContext()
	return getRequest(ctx, requestID)
}

// GetAggregate returns the decrypted reputation aggregate of the batch. It
// throws if no decryption has been completed for the batch.
func GetAggregate(batchID int) int {
	ctx := storage.GetReadOnlyContext()

	data := storage.Get(ctx, resultStorageKey(batchID))
	if data == nil {
		panic(cst.ErrNoAggregate)
	}
	return data.(int)
}

func getOwner(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, ownerKey).(interop.Hash160)
}

func engineHash(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, engineKey).(interop.Hash160)
}

func isPaused(ctx storage.Context) bool {
	return storage.Get(ctx, pausedKey) != nil
}

func requireNotPaused(ctx storage.Context) {
	if isPaused(ctx) {
		panic(cst.ErrPaused)
	}
}

func isProvider(ctx storage.Context, provider interop.Hash160) bool {
	return storage.Get(ctx, providerStorageKey(provider)) != nil
}

func currentBatch(ctx storage.Context) int {
	return storage.Get(ctx, batchCurrentKey).(int)
}

func isClosed(ctx storage.Context, batchID int) bool {
	return storage.Get(ctx, closedStorageKey(batchID)) != nil
}

// requireCooldownOver throws unless the per-address cooldown window of the
// given action kind has fully elapsed. The boundary instant is allowed: an
// action at exactly stamp+cooldown succeeds.
func requireCooldownOver(ctx storage.Context, kind byte, addr interop.Hash160) {
	last := storage.Get(ctx, stampStorageKey(kind, addr))
	if last == nil {
		return
	}

	window := storage.Get(ctx, cooldownKey).(int) * msPerSecond
	if runtime.GetTime() < last.(int)+window {
		panic(cst.ErrCooldownActive)
	}
}

func stampCooldown(ctx storage.Context, kind byte, addr interop.Hash160) {
	storage.Put(ctx, stampStorageKey(kind, addr), runtime.GetTime())
}

// submissionHandles collects the ciphertext handles submitted to the batch,
// ordered by storage key. The order is stable for a given submission set and
// is a part of the commitment preimage.
func submissionHandles(ctx storage.Context, batchID int) [][]byte {
	prefix := append([]byte{submissionPrefix}, batchKey(batchID)...)
	handles := [][]byte{}

	it := storage.Find(ctx, prefix, storage.ValuesOnly)
	for iterator.Next(it) {
		handles = append(handles, iterator.Value(it).([]byte))
	}
	return handles
}

// foldAggregate folds the handles into a single encrypted sum through the
// engine's homomorphic addition. The first handle seeds the total, so no
// trivial zero ciphertext is minted for non-empty batches; an empty batch
// aggregates to the engine's encryption of zero.
func foldAggregate(engine interop.Hash160, handles [][]byte) []byte {
	if len(handles) == 0 {
		return contract.Call(engine, "encrypt", contract.All, 0).([]byte)
	}

	total := handles[0]
	for i := 1; i < len(handles); i++ { //nolint:intrange // Not supported by NeoGo
		total = contract.Call(engine, "add", contract.All, total, handles[i]).([]byte)
	}
	return total
}

func stateCommitment(batchID int, handles [][]byte) []byte {
	chunks := [][]byte{batchKey(batchID)}
	chunks = append(chunks, handles...)
	return common.StateCommitment(runtime.GetExecutingScriptHash(), chunks)
}

func getRequest(ctx storage.Context, requestID []byte) DecryptionRequest {
	data := storage.Get(ctx, requestStorageKey(requestID))
	if data == nil {
		panic(cst.ErrUnknownRequest)
	}
	return std.Deserialize(data.([]byte)).(DecryptionRequest)
}

// batchKey returns the fixed-width little-endian encoding of the batch id.
func batchKey(batchID int) []byte {
	key := convert.ToBytes(batchID)
	for len(key) < batchIDLen {
		key = append(key, 0)
	}
	return key
}

func providerStorageKey(provider interop.Hash160) []byte {
	return append([]byte{providerPrefix}, provider...)
}

func closedStorageKey(batchID int) []byte {
	return append([]byte{closedPrefix}, batchKey(batchID)...)
}

func submissionStorageKey(batchID int, contributor interop.Hash160) []byte {
	return append(append([]byte{submissionPrefix}, batchKey(batchID)...), contributor...)
}

func stampStorageKey(kind byte, addr interop.Hash160) []byte {
	return append([]byte{kind}, addr...)
}

func requestStorageKey(requestID []byte) []byte {
	return append([]byte{requestPrefix}, requestID...)
}

func resultStorageKey(batchID int) []byte {
	return append([]byte{resultPrefix}, batchKey(batchID)...)
}
