package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/confrep-contract/rpc/reputation"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// itemsPageSize is the number of items requested per iterator traversal call.
const itemsPageSize = 100

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	contract := flag.String("contract", "", "Address of the reputation contract (LE hex or Neo address)")
	requestID := flag.String("request", "", "Base58-encoded decryption request id to inspect instead of the full state")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *contract == "":
		log.Fatal("missing reputation contract address")
	}

	contractAddress, err := util.Uint160DecodeStringLE(*contract)
	if err != nil {
		contractAddress, err = address.StringToUint160(*contract)
	}
	if err != nil {
		log.Fatal(fmt.Errorf("decode reputation contract address: %w", err))
	}

	if *requestID != "" {
		id, err := base58.Decode(*requestID)
		if err != nil {
			log.Fatal(fmt.Errorf("decode request id: %w", err))
		}

		err = dumpRequest(*neoRPCEndpoint, contractAddress, id)
		if err != nil {
			log.Fatal(err)
		}
		return
	}

	err = dump(*neoRPCEndpoint, contractAddress)
	if err != nil {
		log.Fatal(err)
	}
}

func dial(endpoint string) (*rpcclient.Client, error) {
	c, err := rpcclient.New(context.Background(), endpoint, rpcclient.Options{
		DialTimeout:    15 * time.Second,
		RequestTimeout: 15 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}
	return c, nil
}

// dump prints the observable state of the reputation contract: lifecycle
// flags, the provider allow-list and per-batch aggregation results.
func dump(endpoint string, contract util.Uint160) error {
	c, err := dial(endpoint)
	if err != nil {
		return err
	}

	defer c.Close()

	reader := reputation.NewReader(invoker.New(c, nil), contract)

	version, err := reader.Version()
	if err != nil {
		return fmt.Errorf("get contract version: %w", err)
	}

	owner, err := reader.Owner()
	if err != nil {
		return fmt.Errorf("get contract owner: %w", err)
	}

	paused, err := reader.IsPaused()
	if err != nil {
		return fmt.Errorf("get pause state: %w", err)
	}

	cooldown, err := reader.Cooldown()
	if err != nil {
		return fmt.Errorf("get cooldown: %w", err)
	}

	current, err := reader.CurrentBatch()
	if err != nil {
		return fmt.Errorf("get current batch: %w", err)
	}

	n := version.Int64()

	fmt.Printf("contract: %s\n", address.Uint160ToString(contract))
	fmt.Printf("version: %d.%d.%d\n", n/1_000_000, n/1_000%1_000, n%1_000)
	fmt.Printf("owner: %s\n", address.Uint160ToString(owner))
	fmt.Printf("paused: %t\n", paused)
	fmt.Printf("cooldown: %ss\n", cooldown)
	fmt.Printf("current batch: %s\n", current)

	err = dumpProviders(c, reader)
	if err != nil {
		return err
	}

	return dumpBatches(reader, current.Int64())
}

// dumpRequest prints the stored context of a single decryption request.
func dumpRequest(endpoint string, contract util.Uint160, requestID []byte) error {
	c, err := dial(endpoint)
	if err != nil {
		return err
	}

	defer c.Close()

	reader := reputation.NewReader(invoker.New(c, nil), contract)

	req, err := reader.GetDecryptionRequest(requestID)
	if err != nil {
		return fmt.Errorf("get decryption request: %w", err)
	}

	fmt.Printf("request: %s\n", base58.Encode(requestID))
	fmt.Printf("batch: %s\n", req.BatchID)
	fmt.Printf("commitment: %s\n", base58.Encode(req.Commitment))
	fmt.Printf("processed: %t\n", req.Processed)

	return nil
}

func dumpProviders(c *rpcclient.Client, reader *reputation.ContractReader) error {
	sessionID, iter, err := reader.Providers()
	if err != nil {
		return fmt.Errorf("open provider listing: %w", err)
	}

	defer func() {
		if sessionID != (uuid.UUID{}) {
			_ = c.TerminateSession(sessionID)
		}
	}()

	fmt.Println("providers:")

	for {
		items, err := c.TraverseIterator(sessionID, &iter, itemsPageSize)
		if err != nil {
			return fmt.Errorf("traverse provider listing: %w", err)
		}
		if len(items) == 0 {
			return nil
		}

		for i := range items {
			b, err := items[i].TryBytes()
			if err != nil {
				return fmt.Errorf("malformed provider listing item: %w", err)
			}

			provider, err := util.Uint160DecodeBytesBE(b)
			if err != nil {
				return fmt.Errorf("malformed provider address: %w", err)
			}

			fmt.Printf("  %s\n", address.Uint160ToString(provider))
		}
	}
}

func dumpBatches(reader *reputation.ContractReader, current int64) error {
	fmt.Println("batches:")

	for i := int64(1); i <= current; i++ {
		id := big.NewInt(i)

		closed, err := reader.IsBatchClosed(id)
		if err != nil {
			return fmt.Errorf("get state of batch #%d: %w", i, err)
		}

		if !closed {
			fmt.Printf("  #%d: open\n", i)
			continue
		}

		aggregate, err := reader.GetAggregate(id)
		switch {
		case err == nil:
			fmt.Printf("  #%d: closed, aggregate %s\n", i, aggregate)
		case strings.Contains(err.Error(), reputation.NoAggregateError):
			fmt.Printf("  #%d: closed, aggregate pending\n", i)
		default:
			return fmt.Errorf("get aggregate of batch #%d: %w", i, err)
		}
	}

	return nil
}
