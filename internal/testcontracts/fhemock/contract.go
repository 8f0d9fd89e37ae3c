// Package fhemock contains a plaintext stand-in for the FHE engine contract.
// It implements the engine call surface the reputation contract relies on
// (encrypt, add, requestDecryption, verify) with ordinary integer arithmetic
// kept in its own storage, so the whole decryption round-trip is executable
// in tests and on devnets. Real deployments point the reputation contract at
// an actual engine instead; nothing in this package is production material.
package fhemock

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Request is a pending decryption recorded by RequestDecryption.
type Request struct {
	// Ciphertext handles submitted for decryption.
	Handles [][]byte

	// Contract that asked for the decryption.
	Callee interop.Hash160

	// Callback method name to deliver the result to.
	Method string
}

const (
	oracleKey  = "oracle"
	counterKey = "counter"

	valuePrefix   = 'v'
	requestPrefix = 'x'

	errUnknownHandle  = "unknown ciphertext handle"
	errUnknownRequest = "unknown decryption request"
	errNoHandles      = "empty handle list"
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		return
	}

	var args = data.(struct {
		oracle interop.PublicKey
	})
	if len(args.oracle) != interop.PublicKeyCompressedLen {
		panic("invalid oracle public key")
	}

	ctx := storage.GetContext()
	storage.Put(ctx, oracleKey, args.oracle)
	storage.Put(ctx, counterKey, 0)

	runtime.Log("fhe engine mock initialized")
}

// Encrypt mints a fresh ciphertext handle for the value. The mock stores the
// plaintext as is.
func Encrypt(value int) []byte {
	ctx := storage.GetContext()

	handle := newHandle(ctx)
	storage.Put(ctx, valueStorageKey(handle), value)
	return handle
}

// Add returns a handle for the homomorphic sum of the two operands.
func Add(a []byte, b []byte) []byte {
	ctx := storage.GetContext()

	sum := plaintext(ctx, a) + plaintext(ctx, b)
	handle := newHandle(ctx)
	storage.Put(ctx, valueStorageKey(handle), sum)
	return handle
}

// RequestDecryption records a pending decryption of the handles and returns
// an opaque request id. The engine itself never calls back: the decryption
// oracle observes the calling contract's notification and delivers the
// result with a proof.
//
// It produces DecryptionPending notification.
func RequestDecryption(handles [][]byte, method string) []byte {
	ctx := storage.GetContext()

	if len(handles) == 0 {
		panic(errNoHandles)
	}
	for i := 0; i < len(handles); i++ { //nolint:intrange // Not supported by NeoGo
		plaintext(ctx, handles[i])
	}

	id := newHandle(ctx)
	storage.Put(ctx, requestStorageKey(id), std.Serialize(Request{
		Handles: handles,
		Callee:  runtime.GetCallingScriptHash(),
		Method:  method,
	}))

	runtime.Notify("DecryptionPending", id)
	return id
}

// Verify checks the decryption proof: a secp256r1 signature made by the
// engine oracle key over requestID concatenated with cleartext.
func Verify(requestID []byte, cleartext []byte, proof []byte) bool {
	if len(proof) != interop.SignatureLen {
		return false
	}

	ctx := storage.GetReadOnlyContext()
	oracle := storage.Get(ctx, oracleKey).(interop.PublicKey)

	msg := append(requestID, cleartext...)
	return crypto.VerifyWithECDsa(msg, oracle, interop.Signature(proof), crypto.Secp256r1)
}

// Decrypt reveals the plaintext behind the handle. Mock-only convenience for
// tests and devnet oracles; a real engine keeps decryption off-chain.
func Decrypt(handle []byte) int {
	return plaintext(storage.GetReadOnlyContext(), handle)
}

// PendingHandles returns the handle list of a recorded decryption request.
func PendingHandles(requestID []byte) [][]byte {
	ctx := storage.GetReadOnlyContext()

	data := storage.Get(ctx, requestStorageKey(requestID))
	if data == nil {
		panic(errUnknownRequest)
	}
	return std.Deserialize(data.([]byte)).(Request).Handles
}

func plaintext(ctx storage.Context, handle []byte) int {
	data := storage.Get(ctx, valueStorageKey(handle))
	if data == nil {
		panic(errUnknownHandle)
	}
	return data.(int)
}

// newHandle derives the next 32-byte identifier from the internal counter
// and the mock's own address.
func newHandle(ctx storage.Context) []byte {
	counter := storage.Get(ctx, counterKey).(int) + 1
	storage.Put(ctx, counterKey, counter)

	seed := append(convert.ToBytes(counter), runtime.GetExecutingScriptHash()...)
	return crypto.Sha256(seed)
}

func valueStorageKey(handle []byte) []byte {
	return append([]byte{valuePrefix}, handle...)
}

func requestStorageKey(requestID []byte) []byte {
	return append([]byte{requestPrefix}, requestID...)
}
