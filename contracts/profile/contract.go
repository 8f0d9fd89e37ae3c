package profile

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/confrep-contract/common"
)

const (
	adminKey = "admin"

	recordPrefix = 'r'

	// MaxKeyLen limits record key names so the full storage key stays
	// within the VM storage key limit.
	MaxKeyLen = 32
	// MaxValueSize limits record payloads.
	MaxValueSize = 1024

	// ErrKeyLen is thrown for empty and for too long record keys.
	ErrKeyLen = "invalid record key length"
	// ErrValueSize is thrown for record values above MaxValueSize.
	ErrValueSize = "record value too big"
	// ErrNotFound is thrown when removing a record that does not exist.
	ErrNotFound = "record does not exist"
)

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
		admin interop.Hash160
	})
	if len(args.admin) != interop.Hash160Len {
		panic("invalid admin address length")
	}

	storage.Put(ctx, adminKey, args.admin)
	runtime.Log("profile contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// by the contract admin only.
func Update(script []byte, manifest []byte, data any) {
	ctx := storage.GetReadOnlyContext()
	common.CheckOwnerWitness(storage.Get(ctx, adminKey).(interop.Hash160))

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, script, manifest, common.AppendVersion(data))
	runtime.Log("profile contract updated")
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// Put stores the record under the account's profile. Overwrites are allowed.
// It must be witnessed by the account.
//
// It produces ProfilePut notification.
func Put(owner interop.Hash160, key string, value []byte) {
	requireRecordArgs(owner, key)
	if len(value) > MaxValueSize {
		panic(ErrValueSize)
	}
	common.CheckWitness(owner)

	ctx := storage.GetContext()
	storage.Put(ctx, recordStorageKey(owner, key), value)

	runtime.Notify("ProfilePut", owner, key)
}

// Delete removes the record from the account's profile. It must be witnessed
// by the account and throws for absent records.
//
// It produces ProfileDelete notification.
func Delete(owner interop.Hash160, key string) {
	requireRecordArgs(owner, key)
	common.CheckWitness(owner)

	ctx := storage.GetContext()
	recKey := recordStorageKey(owner, key)
	if storage.Get(ctx, recKey) == nil {
		panic(ErrNotFound)
	}

	storage.Delete(ctx, recKey)
	runtime.Notify("ProfileDelete", owner, key)
}

// Get returns the record value or nil when the profile has no such record.
func Get(owner interop.Hash160, key string) []byte {
	requireRecordArgs(owner, key)

	ctx := storage.GetReadOnlyContext()
	data := storage.Get(ctx, recordStorageKey(owner, key))
	if data == nil {
		return nil
	}
	return data.([]byte)
}

// List returns an iterator over the account's record keys.
func List(owner interop.Hash160) iterator.Iterator {
	if len(owner) != interop.Hash160Len {
		panic("invalid owner address length")
	}

	ctx := storage.GetReadOnlyContext()
	prefix := append([]byte{recordPrefix}, owner...)
	return storage.Find(ctx, prefix, storage.KeysOnly|storage.RemovePrefix)
}

func requireRecordArgs(owner interop.Hash160, key string) {
	if len(owner) != interop.Hash160Len {
		panic("invalid owner address length")
	}
	if len(key) == 0 || len(key) > MaxKeyLen {
		panic(ErrKeyLen)
	}
}

func recordStorageKey(owner interop.Hash160, key string) []byte {
	return append(append([]byte{recordPrefix}, owner...), []byte(key)...)
}
