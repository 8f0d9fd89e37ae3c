// Package deploy provides ConfRep contract suite deployment functionality.
package deploy

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/nspcc-dev/confrep-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// hosting the ConfRep contracts that are required for their deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions
	// to the blockchain.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract
	// by its address. GetContractStateByHash returns an error with
	// 'Unknown contract' substring if the requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// CommonDeployPrm groups deployment parameters common for all contracts.
type CommonDeployPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// EngineContractPrm groups deployment parameters of the FHE engine contract.
//
// Networks with a third-party engine already on the chain set Address to it:
// in this case the contract is taken as is and the local copy is not
// deployed. When Address is zero, the address is derived from the deployer
// account and the local contract, and the local copy is deployed if the
// chain does not have it yet.
type EngineContractPrm struct {
	Common  CommonDeployPrm
	Address util.Uint160

	// Public key authorized to deliver decryption results.
	OracleKey *keys.PublicKey
}

// ReputationContractPrm groups deployment parameters of the reputation
// contract.
type ReputationContractPrm struct {
	Common CommonDeployPrm

	// Minimum delay between two reputation submissions (and, independently,
	// between two aggregation requests) of the same account.
	CooldownSeconds int64

	// Initial set of accounts trusted to submit encrypted scores.
	Providers []util.Uint160
}

// ProfileContractPrm groups deployment parameters of the contributor profile
// contract.
type ProfileContractPrm struct {
	Common CommonDeployPrm
}

// Prm groups deployment parameters.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance to be used as the contracts' host.
	Blockchain Blockchain

	// Account the contracts are deployed from. It pays the deployment fees
	// and becomes the owner of the reputation and profile contracts.
	LocalAccount *wallet.Account

	EngineContract     EngineContractPrm
	ReputationContract ReputationContractPrm
	ProfileContract    ProfileContractPrm
}

// Addresses groups addresses of the deployed ConfRep contracts.
type Addresses struct {
	Engine     util.Uint160
	Reputation util.Uint160
	Profile    util.Uint160
}

// Deploy provisions the ConfRep contract suite on the Neo network
// represented by given Prm.Blockchain and brings it up-to-date with the
// local contract revisions.
//
// Deploy aborts only by context or when a fatal error occurs. Deployment
// progress is logged in detail. Stage summary:
//  1. FHE engine contract (skipped when Prm points to an external one)
//  2. reputation contract bound to the engine
//  3. contributor profile contract
//
// Deployed contracts are owned by the local account. Repeated runs converge:
// contracts already present on the chain are never redeployed, and older
// revisions are updated through their update methods.
func Deploy(ctx context.Context, prm Prm) (Addresses, error) {
	var res Addresses

	localActor, err := actor.NewTuned(prm.Blockchain, []actor.SignerAccount{{
		Signer: transaction.Signer{
			Account: prm.LocalAccount.ScriptHash(),
			Scopes:  transaction.CalledByEntry,
		},
		Account: prm.LocalAccount,
	}}, actor.Options{
		CheckerModifier: deployTransactionModifier(func() uint32 {
			height, err := prm.Blockchain.GetBlockCount()
			if err != nil {
				prm.Logger.Warn("failed to get current chain height for transaction tuning, using zero",
					zap.Error(err))
				return 0
			}
			return height
		}),
	})
	if err != nil {
		return res, fmt.Errorf("init transaction sender from the local account: %w", err)
	}

	syncPrm := syncContractPrm{
		logger:     prm.Logger,
		blockchain: prm.Blockchain,
		localActor: localActor,
	}

	// Contracts bound to other contracts are synchronized after them.

	syncPrm.localNEF = prm.EngineContract.Common.NEF
	syncPrm.localManifest = prm.EngineContract.Common.Manifest
	syncPrm.expectedAddress = prm.EngineContract.Address
	syncPrm.deployArgs = []any{prm.EngineContract.OracleKey.Bytes()}
	// the mock engine has no update method, so it is deploy-only
	syncPrm.updatable = false

	prm.Logger.Info("synchronizing FHE engine contract with the chain...")

	res.Engine, err = syncContract(ctx, syncPrm)
	if err != nil {
		return res, fmt.Errorf("sync FHE engine contract with the chain: %w", err)
	}

	prm.Logger.Info("FHE engine contract successfully synchronized", zap.Stringer("address", res.Engine))

	providers := make([]any, len(prm.ReputationContract.Providers))
	for i := range prm.ReputationContract.Providers {
		providers[i] = prm.ReputationContract.Providers[i]
	}

	syncPrm.localNEF = prm.ReputationContract.Common.NEF
	syncPrm.localManifest = prm.ReputationContract.Common.Manifest
	syncPrm.expectedAddress = util.Uint160{}
	syncPrm.deployArgs = []any{
		prm.LocalAccount.ScriptHash(),
		res.Engine,
		prm.ReputationContract.CooldownSeconds,
		providers,
	}
	syncPrm.updatable = true

	prm.Logger.Info("synchronizing reputation contract with the chain...")

	res.Reputation, err = syncContract(ctx, syncPrm)
	if err != nil {
		return res, fmt.Errorf("sync reputation contract with the chain: %w", err)
	}

	prm.Logger.Info("reputation contract successfully synchronized", zap.Stringer("address", res.Reputation))

	syncPrm.localNEF = prm.ProfileContract.Common.NEF
	syncPrm.localManifest = prm.ProfileContract.Common.Manifest
	syncPrm.deployArgs = []any{prm.LocalAccount.ScriptHash()}

	prm.Logger.Info("synchronizing contributor profile contract with the chain...")

	res.Profile, err = syncContract(ctx, syncPrm)
	if err != nil {
		return res, fmt.Errorf("sync contributor profile contract with the chain: %w", err)
	}

	prm.Logger.Info("contributor profile contract successfully synchronized", zap.Stringer("address", res.Profile))

	return res, nil
}

// syncContractPrm groups parameters of syncContract.
type syncContractPrm struct {
	logger *zap.Logger

	blockchain Blockchain

	localActor *actor.Actor

	localNEF      nef.File
	localManifest manifest.Manifest

	// when zero, the address is derived from the transaction sender and the
	// local contract
	expectedAddress util.Uint160

	// passed into _deploy on initial deployment only
	deployArgs []any

	updatable bool
}

// syncContract deploys the contract if it is missing from the chain and
// updates it if the on-chain version is older than the local one. Returns
// the on-chain address of the contract.
func syncContract(ctx context.Context, prm syncContractPrm) (util.Uint160, error) {
	onChainAddress := prm.expectedAddress
	if onChainAddress.Equals(util.Uint160{}) {
		onChainAddress = state.CreateContractHash(prm.localActor.Sender(), prm.localNEF.Checksum, prm.localManifest.Name)
	}

	onChainState, err := prm.blockchain.GetContractStateByHash(onChainAddress)
	if err != nil {
		if !strings.Contains(err.Error(), "Unknown contract") {
			return onChainAddress, fmt.Errorf("read on-chain state of the contract: %w", err)
		}
		onChainState = nil
	}

	if onChainState == nil {
		txHash, _, err := management.New(prm.localActor).Deploy(&prm.localNEF, &prm.localManifest, prm.deployArgs)
		if err != nil {
			return onChainAddress, fmt.Errorf("send transaction deploying the contract: %w", err)
		}

		prm.logger.Info("transaction deploying the contract has been successfully sent, waiting for persistence...",
			zap.Stringer("tx", txHash), zap.Stringer("address", onChainAddress))

		err = awaitCondition(ctx, func() bool {
			_, err := prm.blockchain.GetContractStateByHash(onChainAddress)
			if err != nil {
				if !strings.Contains(err.Error(), "Unknown contract") {
					prm.logger.Warn("failed to read on-chain state of the contract, will try again later",
						zap.Error(err))
				}
				return false
			}
			return true
		})
		if err != nil {
			return onChainAddress, fmt.Errorf("wait for deployment of the contract: %w", err)
		}

		return onChainAddress, nil
	}

	if !prm.updatable {
		prm.logger.Info("contract is already on the chain, nothing to do")
		return onChainAddress, nil
	}

	onChainVersion, err := readContractVersion(prm.blockchain, onChainAddress)
	if err != nil {
		return onChainAddress, fmt.Errorf("read on-chain version of the contract: %w", err)
	}

	switch {
	case onChainVersion == common.Version:
		prm.logger.Info("on-chain contract is up-to-date, nothing to do", zap.Int("version", onChainVersion))
		return onChainAddress, nil
	case onChainVersion > common.Version:
		prm.logger.Info("on-chain contract is newer than the local one, leaving as is",
			zap.Int("on-chain version", onChainVersion), zap.Int("local version", common.Version))
		return onChainAddress, nil
	}

	bNEF, err := prm.localNEF.Bytes()
	if err != nil {
		return onChainAddress, fmt.Errorf("encode local NEF of the contract into binary: %w", err)
	}

	jManifest, err := json.Marshal(prm.localManifest)
	if err != nil {
		return onChainAddress, fmt.Errorf("encode local manifest of the contract into JSON: %w", err)
	}

	// the contract itself appends its version to the update data
	txHash, _, err := prm.localActor.SendCall(onChainAddress, "update", bNEF, jManifest, nil)
	if err != nil {
		return onChainAddress, fmt.Errorf("send transaction updating the contract: %w", err)
	}

	prm.logger.Info("transaction updating the contract has been successfully sent, waiting for persistence...",
		zap.Stringer("tx", txHash), zap.Int("on-chain version", onChainVersion), zap.Int("local version", common.Version))

	err = awaitCondition(ctx, func() bool {
		v, err := readContractVersion(prm.blockchain, onChainAddress)
		if err != nil {
			prm.logger.Warn("failed to read on-chain version of the contract, will try again later",
				zap.Error(err))
			return false
		}
		return v >= common.Version
	})
	if err != nil {
		return onChainAddress, fmt.Errorf("wait for update of the contract: %w", err)
	}

	return onChainAddress, nil
}

// time for the polled transaction effects to appear on the chain, aligned
// with the default block interval of Neo networks
const awaitInterval = time.Second

// awaitCondition polls the condition until it is satisfied and returns nil,
// or until the context is done and returns its error.
func awaitCondition(ctx context.Context, satisfied func() bool) error {
	t := time.NewTicker(awaitInterval)
	defer t.Stop()

	for {
		if satisfied() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

// readContractVersion returns the value of the parameterless 'version'
// method of the specified contract.
func readContractVersion(b Blockchain, contract util.Uint160) (int, error) {
	v, err := unwrap.BigInt(invoker.New(b, nil).Call(contract, "version"))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// deployTransactionModifier returns actor.TransactionCheckerModifier
// callback which checks that the invocation finished with 'HALT' state and,
// if so, sets the transaction's nonce and ValidUntilBlock to 100*N and
// 100*(N+1) correspondingly, where 100*N <= current chain height < 100*(N+1).
// Transactions of concurrent or restarted deployment runs composed within
// one window are identical, so the network deduplicates them.
func deployTransactionModifier(getBlockchainHeight func() uint32) actor.TransactionCheckerModifier {
	return func(r *result.Invoke, tx *transaction.Transaction) error {
		err := actor.DefaultCheckerModifier(r, tx)
		if err != nil {
			return err
		}

		const span = 100
		n := getBlockchainHeight() / span

		tx.Nonce = n * span

		if math.MaxUint32-span > tx.Nonce {
			tx.ValidUntilBlock = tx.Nonce + span
		} else {
			tx.ValidUntilBlock = math.MaxUint32
		}

		return nil
	}
}
