// Package reputation contains RPC wrappers for ConfRep Reputation contract.
package reputation

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
)

// ReputationDecryptionRequest is a contract-specific reputation.DecryptionRequest type used by its methods.
type ReputationDecryptionRequest struct {
	BatchID *big.Int
	Commitment []byte
	Processed bool
}

// OwnershipTransferredEvent represents "OwnershipTransferred" event emitted by the contract.
type OwnershipTransferredEvent struct {
	OldOwner util.Uint160
	NewOwner util.Uint160
}

// ProviderAddedEvent represents "ProviderAdded" event emitted by the contract.
type ProviderAddedEvent struct {
	Provider util.Uint160
}

// ProviderRemovedEvent represents "ProviderRemoved" event emitted by the contract.
type ProviderRemovedEvent struct {
	Provider util.Uint160
}

// PausedEvent represents "Paused" event emitted by the contract.
type PausedEvent struct {
}

// UnpausedEvent represents "Unpaused" event emitted by the contract.
type UnpausedEvent struct {
}

// CooldownChangedEvent represents "CooldownChanged" event emitted by the contract.
type CooldownChangedEvent struct {
	OldValue *big.Int
	NewValue *big.Int
}

// BatchOpenedEvent represents "BatchOpened" event emitted by the contract.
type BatchOpenedEvent struct {
	BatchID *big.Int
}

// BatchClosedEvent represents "BatchClosed" event emitted by the contract.
type BatchClosedEvent struct {
	BatchID *big.Int
}

// ReputationSubmittedEvent represents "ReputationSubmitted" event emitted by the contract.
type ReputationSubmittedEvent struct {
	Provider util.Uint160
	Contributor util.Uint160
	BatchID *big.Int
}

// DecryptionRequestedEvent represents "DecryptionRequested" event emitted by the contract.
type DecryptionRequestedEvent struct {
	RequestID []byte
	BatchID *big.Int
}

// DecryptionCompletedEvent represents "DecryptionCompleted" event emitted by the contract.
type DecryptionCompletedEvent struct {
	RequestID []byte
	BatchID *big.Int
	Aggregate *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// Cooldown invokes `cooldown` method of contract.
func (c *ContractReader) Cooldown() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "cooldown"))
}

// CurrentBatch invokes `currentBatch` method of contract.
func (c *ContractReader) CurrentBatch() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "currentBatch"))
}

// GetAggregate invokes `getAggregate` method of contract.
func (c *ContractReader) GetAggregate(batchID *big.Int) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "getAggregate", batchID))
}

// GetDecryptionRequest invokes `getDecryptionRequest` method of contract.
func (c *ContractReader) GetDecryptionRequest(requestID []byte) (*ReputationDecryptionRequest, error) {
	return itemToReputationDecryptionRequest(unwrap.Item(c.invoker.Call(c.hash, "getDecryptionRequest", requestID)))
}

// HasSubmitted invokes `hasSubmitted` method of contract.
func (c *ContractReader) HasSubmitted(batchID *big.Int, contributor util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "hasSubmitted", batchID, contributor))
}

// IsBatchClosed invokes `isBatchClosed` method of contract.
func (c *ContractReader) IsBatchClosed(batchID *big.Int) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isBatchClosed", batchID))
}

// IsPaused invokes `isPaused` method of contract.
func (c *ContractReader) IsPaused() (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isPaused"))
}

// IsProcessed invokes `isProcessed` method of contract.
func (c *ContractReader) IsProcessed(requestID []byte) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isProcessed", requestID))
}

// IsProvider invokes `isProvider` method of contract.
func (c *ContractReader) IsProvider(provider util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isProvider", provider))
}

// Owner invokes `owner` method of contract.
func (c *ContractReader) Owner() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "owner"))
}

// Providers invokes `providers` method of contract.
func (c *ContractReader) Providers() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "providers"))
}

// ProvidersExpanded is similar to Providers (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) ProvidersExpanded(_numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "providers", _numOfIteratorItems))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// AddProvider creates a transaction invoking `addProvider` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) AddProvider(provider util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "addProvider", provider)
}

// AddProviderTransaction creates a transaction invoking `addProvider` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) AddProviderTransaction(provider util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "addProvider", provider)
}

// AddProviderUnsigned creates a transaction invoking `addProvider` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) AddProviderUnsigned(provider util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "addProvider", nil, provider)
}

// CloseBatch creates a transaction invoking `closeBatch` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CloseBatch(batchID *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "closeBatch", batchID)
}

// CloseBatchTransaction creates a transaction invoking `closeBatch` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CloseBatchTransaction(batchID *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "closeBatch", batchID)
}

// CloseBatchUnsigned creates a transaction invoking `closeBatch` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CloseBatchUnsigned(batchID *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "closeBatch", nil, batchID)
}

// OnDecryptionCallback creates a transaction invoking `onDecryptionCallback` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) OnDecryptionCallback(requestID []byte, cleartext []byte, proof []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "onDecryptionCallback", requestID, cleartext, proof)
}

// OnDecryptionCallbackTransaction creates a transaction invoking `onDecryptionCallback` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) OnDecryptionCallbackTransaction(requestID []byte, cleartext []byte, proof []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "onDecryptionCallback", requestID, cleartext, proof)
}

// OnDecryptionCallbackUnsigned creates a transaction invoking `onDecryptionCallback` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) OnDecryptionCallbackUnsigned(requestID []byte, cleartext []byte, proof []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "onDecryptionCallback", nil, requestID, cleartext, proof)
}

// OpenNewBatch creates a transaction invoking `openNewBatch` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) OpenNewBatch() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "openNewBatch")
}

// OpenNewBatchTransaction creates a transaction invoking `openNewBatch` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) OpenNewBatchTransaction() (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "openNewBatch")
}

// OpenNewBatchUnsigned creates a transaction invoking `openNewBatch` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) OpenNewBatchUnsigned() (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "openNewBatch", nil)
}

// Pause creates a transaction invoking `pause` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Pause() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "pause")
}

// PauseTransaction creates a transaction invoking `pause` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) PauseTransaction() (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "pause")
}

// PauseUnsigned creates a transaction invoking `pause` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) PauseUnsigned() (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "pause", nil)
}

// RemoveProvider creates a transaction invoking `removeProvider` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RemoveProvider(provider util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "removeProvider", provider)
}

// RemoveProviderTransaction creates a transaction invoking `removeProvider` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RemoveProviderTransaction(provider util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "removeProvider", provider)
}

// RemoveProviderUnsigned creates a transaction invoking `removeProvider` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RemoveProviderUnsigned(provider util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "removeProvider", nil, provider)
}

// RequestReputationAggregation creates a transaction invoking `requestReputationAggregation` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RequestReputationAggregation(batchID *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "requestReputationAggregation", batchID)
}

// RequestReputationAggregationTransaction creates a transaction invoking `requestReputationAggregation` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RequestReputationAggregationTransaction(batchID *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "requestReputationAggregation", batchID)
}

// RequestReputationAggregationUnsigned creates a transaction invoking `requestReputationAggregation` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RequestReputationAggregationUnsigned(batchID *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "requestReputationAggregation", nil, batchID)
}

// SetCooldown creates a transaction invoking `setCooldown` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetCooldown(value *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setCooldown", value)
}

// SetCooldownTransaction creates a transaction invoking `setCooldown` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetCooldownTransaction(value *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setCooldown", value)
}

// SetCooldownUnsigned creates a transaction invoking `setCooldown` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetCooldownUnsigned(value *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setCooldown", nil, value)
}

// SubmitReputation creates a transaction invoking `submitReputation` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SubmitReputation(provider util.Uint160, contributor util.Uint160, encScore []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "submitReputation", provider, contributor, encScore)
}

// SubmitReputationTransaction creates a transaction invoking `submitReputation` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SubmitReputationTransaction(provider util.Uint160, contributor util.Uint160, encScore []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "submitReputation", provider, contributor, encScore)
}

// SubmitReputationUnsigned creates a transaction invoking `submitReputation` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SubmitReputationUnsigned(provider util.Uint160, contributor util.Uint160, encScore []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "submitReputation", nil, provider, contributor, encScore)
}

// TransferOwnership creates a transaction invoking `transferOwnership` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) TransferOwnership(newOwner util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "transferOwnership", newOwner)
}

// TransferOwnershipTransaction creates a transaction invoking `transferOwnership` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) TransferOwnershipTransaction(newOwner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "transferOwnership", newOwner)
}

// TransferOwnershipUnsigned creates a transaction invoking `transferOwnership` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) TransferOwnershipUnsigned(newOwner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "transferOwnership", nil, newOwner)
}

// Unpause creates a transaction invoking `unpause` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Unpause() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "unpause")
}

// UnpauseTransaction creates a transaction invoking `unpause` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UnpauseTransaction() (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "unpause")
}

// UnpauseUnsigned creates a transaction invoking `unpause` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UnpauseUnsigned() (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "unpause", nil)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(script []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", script, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", script, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(script []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, script, manifest, data)
}

// itemToReputationDecryptionRequest converts stack item into *ReputationDecryptionRequest.
func itemToReputationDecryptionRequest(item stackitem.Item, err error) (*ReputationDecryptionRequest, error) {
	if err != nil {
		return nil, err
	}
	var res = new(ReputationDecryptionRequest)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of ReputationDecryptionRequest from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *ReputationDecryptionRequest) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	res.BatchID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field BatchID: %w", err)
	}

	index++
	res.Commitment, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Commitment: %w", err)
	}

	index++
	res.Processed, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Processed: %w", err)
	}

	return nil
}

// OwnershipTransferredEventsFromApplicationLog retrieves a set of all emitted events
// with "OwnershipTransferred" name from the provided [result.ApplicationLog].
func OwnershipTransferredEventsFromApplicationLog(log *result.ApplicationLog) ([]*OwnershipTransferredEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*OwnershipTransferredEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "OwnershipTransferred" {
				continue
			}
			event := new(OwnershipTransferredEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize OwnershipTransferredEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to OwnershipTransferredEvent or
// returns an error if it's not possible to do to so.
func (e *OwnershipTransferredEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.OldOwner, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field OldOwner: %w", err)
	}

	index++
	e.NewOwner, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field NewOwner: %w", err)
	}

	return nil
}

// ProviderAddedEventsFromApplicationLog retrieves a set of all emitted events
// with "ProviderAdded" name from the provided [result.ApplicationLog].
func ProviderAddedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ProviderAddedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ProviderAddedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ProviderAdded" {
				continue
			}
			event := new(ProviderAddedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ProviderAddedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ProviderAddedEvent or
// returns an error if it's not possible to do to so.
func (e *ProviderAddedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Provider, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Provider: %w", err)
	}

	return nil
}

// ProviderRemovedEventsFromApplicationLog retrieves a set of all emitted events
// with "ProviderRemoved" name from the provided [result.ApplicationLog].
func ProviderRemovedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ProviderRemovedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ProviderRemovedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ProviderRemoved" {
				continue
			}
			event := new(ProviderRemovedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ProviderRemovedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ProviderRemovedEvent or
// returns an error if it's not possible to do to so.
func (e *ProviderRemovedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Provider, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Provider: %w", err)
	}

	return nil
}

// PausedEventsFromApplicationLog retrieves a set of all emitted events
// with "Paused" name from the provided [result.ApplicationLog].
func PausedEventsFromApplicationLog(log *result.ApplicationLog) ([]*PausedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*PausedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Paused" {
				continue
			}
			event := new(PausedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize PausedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to PausedEvent or
// returns an error if it's not possible to do to so.
func (e *PausedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 0 {
		return errors.New("wrong number of structure elements")
	}

	return nil
}

// UnpausedEventsFromApplicationLog retrieves a set of all emitted events
// with "Unpaused" name from the provided [result.ApplicationLog].
func UnpausedEventsFromApplicationLog(log *result.ApplicationLog) ([]*UnpausedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*UnpausedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Unpaused" {
				continue
			}
			event := new(UnpausedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize UnpausedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to UnpausedEvent or
// returns an error if it's not possible to do to so.
func (e *UnpausedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 0 {
		return errors.New("wrong number of structure elements")
	}

	return nil
}

// CooldownChangedEventsFromApplicationLog retrieves a set of all emitted events
// with "CooldownChanged" name from the provided [result.ApplicationLog].
func CooldownChangedEventsFromApplicationLog(log *result.ApplicationLog) ([]*CooldownChangedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*CooldownChangedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "CooldownChanged" {
				continue
			}
			event := new(CooldownChangedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize CooldownChangedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to CooldownChangedEvent or
// returns an error if it's not possible to do to so.
func (e *CooldownChangedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.OldValue, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field OldValue: %w", err)
	}

	index++
	e.NewValue, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field NewValue: %w", err)
	}

	return nil
}

// BatchOpenedEventsFromApplicationLog retrieves a set of all emitted events
// with "BatchOpened" name from the provided [result.ApplicationLog].
func BatchOpenedEventsFromApplicationLog(log *result.ApplicationLog) ([]*BatchOpenedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*BatchOpenedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "BatchOpened" {
				continue
			}
			event := new(BatchOpenedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize BatchOpenedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to BatchOpenedEvent or
// returns an error if it's not possible to do to so.
func (e *BatchOpenedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.BatchID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field BatchID: %w", err)
	}

	return nil
}

// BatchClosedEventsFromApplicationLog retrieves a set of all emitted events
// with "BatchClosed" name from the provided [result.ApplicationLog].
func BatchClosedEventsFromApplicationLog(log *result.ApplicationLog) ([]*BatchClosedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*BatchClosedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "BatchClosed" {
				continue
			}
			event := new(BatchClosedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize BatchClosedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to BatchClosedEvent or
// returns an error if it's not possible to do to so.
func (e *BatchClosedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.BatchID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field BatchID: %w", err)
	}

	return nil
}

// ReputationSubmittedEventsFromApplicationLog retrieves a set of all emitted events
// with "ReputationSubmitted" name from the provided [result.ApplicationLog].
func ReputationSubmittedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ReputationSubmittedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ReputationSubmittedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ReputationSubmitted" {
				continue
			}
			event := new(ReputationSubmittedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ReputationSubmittedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ReputationSubmittedEvent or
// returns an error if it's not possible to do to so.
func (e *ReputationSubmittedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.Provider, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Provider: %w", err)
	}

	index++
	e.Contributor, err = func (item stackitem.Item) (util.Uint160, error) {
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	} (arr[index])
	if err != nil {
		return fmt.Errorf("field Contributor: %w", err)
	}

	index++
	e.BatchID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field BatchID: %w", err)
	}

	return nil
}

// DecryptionRequestedEventsFromApplicationLog retrieves a set of all emitted events
// with "DecryptionRequested" name from the provided [result.ApplicationLog].
func DecryptionRequestedEventsFromApplicationLog(log *result.ApplicationLog) ([]*DecryptionRequestedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*DecryptionRequestedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "DecryptionRequested" {
				continue
			}
			event := new(DecryptionRequestedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize DecryptionRequestedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to DecryptionRequestedEvent or
// returns an error if it's not possible to do to so.
func (e *DecryptionRequestedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.RequestID, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field RequestID: %w", err)
	}

	index++
	e.BatchID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field BatchID: %w", err)
	}

	return nil
}

// DecryptionCompletedEventsFromApplicationLog retrieves a set of all emitted events
// with "DecryptionCompleted" name from the provided [result.ApplicationLog].
func DecryptionCompletedEventsFromApplicationLog(log *result.ApplicationLog) ([]*DecryptionCompletedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*DecryptionCompletedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "DecryptionCompleted" {
				continue
			}
			event := new(DecryptionCompletedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize DecryptionCompletedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to DecryptionCompletedEvent or
// returns an error if it's not possible to do to so.
func (e *DecryptionCompletedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.RequestID, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field RequestID: %w", err)
	}

	index++
	e.BatchID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field BatchID: %w", err)
	}

	index++
	e.Aggregate, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Aggregate: %w", err)
	}

	return nil
}
