// Package oracle implements the decryption oracle service: it watches the
// reputation contract for aggregation requests, resolves them through the FHE
// engine and delivers proven results back into the contract.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/confrep-contract/rpc/reputation"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// Name of the reputation contract notification the service is driven by.
const requestedEventName = "DecryptionRequested"

const (
	// retryInterval is the initial duration to wait between delivery
	// attempts - increases exponentially for subsequent attempts.
	retryInterval = time.Second

	// retryIntervalMax is the maximum duration to wait between two
	// consecutive delivery attempts.
	retryIntervalMax = time.Minute

	// deliveryAttemptLimit is the number of attempts after which a request
	// is abandoned.
	deliveryAttemptLimit = 10
)

// errAwaitingConfirmation is spun inside the delivery loop while the sent
// callback transaction is not yet persisted.
var errAwaitingConfirmation = errors.New("callback transaction is not yet persisted")

// Blockchain groups services provided by particular Neo blockchain network
// hosting the reputation contract that are required for the oracle operation.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions to
	// the blockchain.
	actor.RPCActor

	// SubscribeToExecutionNotifications opens stream of notifications with
	// the given name produced by the given contract. The channel is closed
	// only when connection to the blockchain is lost and there will be no
	// more events. Caller subscribes once, regularly reads events from the
	// channel and is resistant to event replay.
	SubscribeToExecutionNotifications(contract util.Uint160, name string) (<-chan *state.ContainedNotificationEvent, error)
}

// Prm groups the parameters of the decryption oracle run.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance hosting the served contracts.
	Blockchain Blockchain

	// Local process account used for callback transaction signing (must be
	// unlocked).
	LocalAccount *wallet.Account

	// Key signing decryption results. Its public part must be the oracle
	// key trusted by the engine contract.
	Key *keys.PrivateKey

	// Address of the reputation contract to serve.
	ReputationContract util.Uint160

	// Address of the FHE engine contract the reputation contract is bound
	// to.
	EngineContract util.Uint160

	// Resolves recorded requests into aggregate values. When unset, the
	// engine contract interface is used.
	Decrypter Decrypter
}

// Run serves decryption requests of the reputation contract represented by
// given Prm until the context is done or connection to the blockchain is
// lost.
//
// Requests are served one at a time: a request is resolved through the
// engine, the result is signed with the oracle key and handed to the
// contract callback. Transient failures are retried with exponential
// backoff, abandoned requests and replayed notifications are reported in
// the log and served again only when the contract still lists them as
// unprocessed.
func Run(ctx context.Context, prm Prm) error {
	localActor, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return fmt.Errorf("init transaction sender from local account: %w", err)
	}

	contract := reputation.New(localActor, prm.ReputationContract)

	decrypter := prm.Decrypter
	if decrypter == nil {
		decrypter = NewEngineDecrypter(invoker.New(prm.Blockchain, nil), prm.EngineContract)
	}

	chRequests, err := prm.Blockchain.SubscribeToExecutionNotifications(prm.ReputationContract, requestedEventName)
	if err != nil {
		return fmt.Errorf("subscribe to decryption request notifications: %w", err)
	}

	prm.Logger.Info("listening to decryption requests of the reputation contract...",
		zap.Stringer("contract", prm.ReputationContract))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case n, ok := <-chRequests:
			if !ok {
				return errors.New("stream of decryption request notifications is interrupted")
			}

			var ev reputation.DecryptionRequestedEvent

			err = ev.FromStackItem(n.Item)
			if err != nil {
				prm.Logger.Warn("skip malformed decryption request notification", zap.Error(err))
				continue
			}

			requestsObserved.Inc()

			log := prm.Logger.With(zap.String("request", base58.Encode(ev.RequestID)),
				zap.Stringer("batch", ev.BatchID))

			processed, err := contract.IsProcessed(ev.RequestID)
			if err == nil && processed {
				requestsSkipped.Inc()
				log.Info("request is already processed, skipping")
				continue
			}

			log.Info("serving decryption request...")

			start := time.Now()

			err = serveRequest(ctx, serveRequestPrm{
				logger:        log,
				chainHeight:   prm.Blockchain.GetBlockCount,
				contract:      contract,
				decrypter:     decrypter,
				key:           prm.Key,
				requestID:     ev.RequestID,
				retryInterval: retryInterval,
			})
			if err != nil {
				if errors.Is(err, ctx.Err()) {
					return err
				}

				deliveryFailures.Inc()
				log.Error("failed to deliver decryption result, request abandoned", zap.Error(err))
				continue
			}

			resultsDelivered.Inc()
			deliveryDuration.Observe(time.Since(start).Seconds())

			log.Info("decryption result successfully delivered")
		}
	}
}

// serveRequestPrm groups parameters of a single request delivery.
type serveRequestPrm struct {
	logger        *zap.Logger
	chainHeight   func() (uint32, error)
	contract      *reputation.Contract
	decrypter     Decrypter
	key           *keys.PrivateKey
	requestID     []byte
	retryInterval time.Duration
}

// serveRequest resolves the request and drives the result into the contract
// callback. It retries transient failures and exits once the contract marks
// the request processed, no matter which oracle instance got the result
// accepted first.
func serveRequest(ctx context.Context, prm serveRequestPrm) error {
	backoff, err := retry.NewExponential(prm.retryInterval)
	if err != nil {
		return fmt.Errorf("create retry mechanism: %w", err)
	}
	backoff = retry.WithCappedDuration(retryIntervalMax, backoff)
	backoff = retry.WithMaxRetries(deliveryAttemptLimit, backoff)

	var (
		cleartext []byte
		proof     []byte
		sentVUB   uint32
	)

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		processed, err := prm.contract.IsProcessed(prm.requestID)
		if err != nil {
			prm.logger.Warn("could not check request state, retrying...", zap.Error(err))
			return retry.RetryableError(err)
		}
		if processed {
			return nil
		}

		if cleartext == nil {
			aggregate, err := prm.decrypter.Decrypt(prm.requestID)
			if err != nil {
				prm.logger.Warn("could not resolve request through the engine, retrying...", zap.Error(err))
				return retry.RetryableError(err)
			}

			cleartext = EncodeAggregate(aggregate)
			proof = SignResult(prm.key, prm.requestID, cleartext)

			prm.logger.Info("request resolved", zap.Int64("aggregate", aggregate))
		}

		if sentVUB > 0 {
			height, err := prm.chainHeight()
			if err != nil {
				prm.logger.Warn("could not get chain height, retrying...", zap.Error(err))
				return retry.RetryableError(err)
			}
			if height <= sentVUB {
				return retry.RetryableError(errAwaitingConfirmation)
			}

			prm.logger.Info("callback transaction expired, resending...")
		}

		_, vub, err := prm.contract.OnDecryptionCallback(prm.requestID, cleartext, proof)
		if err != nil {
			prm.logger.Warn("could not send callback transaction, retrying...", zap.Error(err))
			return retry.RetryableError(err)
		}

		sentVUB = vub

		return retry.RetryableError(errAwaitingConfirmation)
	})
}
