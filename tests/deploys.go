package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const (
	reputationPath = "../contracts/reputation"
	profilePath    = "../contracts/profile"
	enginePath     = "../internal/testcontracts/fhemock"
)

// deployEngineContract deploys the FHE engine mock with the given oracle
// public key authorized to sign decryption results.
func deployEngineContract(t *testing.T, e *neotest.Executor, oracle *keys.PublicKey) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, enginePath, path.Join(enginePath, "config.yml"))

	args := make([]interface{}, 1)
	args[0] = oracle.Bytes()

	e.DeployContract(t, c, args)

	return c.Hash
}

// deployReputationContract deploys the reputation contract owned by the
// committee and wired to the given engine.
func deployReputationContract(t *testing.T, e *neotest.Executor, engine util.Uint160, cooldown int64, providers ...util.Uint160) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, reputationPath, path.Join(reputationPath, "config.yml"))

	provs := make([]interface{}, 0, len(providers))
	for _, p := range providers {
		provs = append(provs, p)
	}

	args := make([]interface{}, 4)
	args[0] = e.CommitteeHash
	args[1] = engine
	args[2] = cooldown
	args[3] = provs

	e.DeployContract(t, c, args)

	return c.Hash
}

// deployProfileContract deploys the profile contract administered by the
// committee.
func deployProfileContract(t *testing.T, e *neotest.Executor) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, profilePath, path.Join(profilePath, "config.yml"))

	args := make([]interface{}, 1)
	args[0] = e.CommitteeHash

	e.DeployContract(t, c, args)

	return c.Hash
}

// newReputationInvoker sets up a chain with the engine mock and the
// reputation contract deployed. It returns committee-signed invokers for
// both contracts and the engine oracle key.
func newReputationInvoker(t *testing.T, cooldown int64) (*neotest.ContractInvoker, *neotest.ContractInvoker, *keys.PrivateKey) {
	e := newExecutor(t)

	oracle, err := keys.NewPrivateKey()
	require.NoError(t, err)

	engineHash := deployEngineContract(t, e, oracle.PublicKey())
	reputationHash := deployReputationContract(t, e, engineHash, cooldown)

	return e.CommitteeInvoker(reputationHash), e.CommitteeInvoker(engineHash), oracle
}

// newProvider creates a fresh account and admits it into the provider
// allow-list.
func newProvider(t *testing.T, c *neotest.ContractInvoker) neotest.Signer {
	acc := c.NewAccount(t)
	c.Invoke(t, stackitem.Null{}, "addProvider", acc.ScriptHash())

	return acc
}

// engineEncrypt mints a ciphertext handle for the value through the engine
// mock.
func engineEncrypt(t *testing.T, eng *neotest.ContractInvoker, value int64) []byte {
	return invokeBytesResult(t, eng, "encrypt", value)
}

// submitScore submits the contributor's encrypted score signed by the
// provider account.
func submitScore(t *testing.T, c *neotest.ContractInvoker, provider neotest.Signer, contributor []byte, handle []byte) {
	c.WithSigners(provider).Invoke(t, stackitem.Null{}, "submitReputation",
		provider.ScriptHash(), contributor, handle)
}
