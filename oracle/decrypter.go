package oracle

import (
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// Decrypter resolves a recorded decryption request into its plaintext
// aggregate value.
type Decrypter interface {
	// Decrypt returns the aggregate behind the request. It returns an error
	// if the request is unknown or could not be resolved.
	Decrypt(requestID []byte) (int64, error)
}

// EngineInvoker is a subset of RPC invoker functionality sufficient to read
// the engine contract.
type EngineInvoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// EngineDecrypter resolves requests through the decryption interface of the
// FHE engine contract: it reads the handle set recorded for the request and
// sums the plaintexts behind the handles.
type EngineDecrypter struct {
	invoker EngineInvoker
	engine  util.Uint160
}

// NewEngineDecrypter creates an instance of EngineDecrypter reading the
// engine contract with the given address through the given invoker.
func NewEngineDecrypter(invoker EngineInvoker, engine util.Uint160) *EngineDecrypter {
	return &EngineDecrypter{invoker, engine}
}

// Decrypt implements the Decrypter interface.
func (d *EngineDecrypter) Decrypt(requestID []byte) (int64, error) {
	items, err := unwrap.Array(d.invoker.Call(d.engine, "pendingHandles", requestID))
	if err != nil {
		return 0, fmt.Errorf("read pending handles of the request: %w", err)
	}

	var total int64

	for i := range items {
		handle, err := items[i].TryBytes()
		if err != nil {
			return 0, fmt.Errorf("malformed handle #%d: %w", i, err)
		}

		v, err := unwrap.BigInt(d.invoker.Call(d.engine, "decrypt", handle))
		if err != nil {
			return 0, fmt.Errorf("decrypt handle #%d: %w", i, err)
		}

		total += v.Int64()
	}

	return total, nil
}
