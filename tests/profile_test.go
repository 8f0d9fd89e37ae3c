package tests

import (
	"strings"
	"testing"

	"github.com/nspcc-dev/confrep-contract/common"
	"github.com/nspcc-dev/confrep-contract/contracts/profile"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func newProfileInvoker(t *testing.T) *neotest.ContractInvoker {
	e := newExecutor(t)
	return e.CommitteeInvoker(deployProfileContract(t, e))
}

func TestProfilePut(t *testing.T) {
	c := newProfileInvoker(t)

	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)
	owner := acc.ScriptHash()

	value := []byte("Reputation Provider GmbH")

	cAcc.InvokeFail(t, profile.ErrKeyLen, "put", owner, "", value)
	cAcc.InvokeFail(t, profile.ErrKeyLen, "put", owner,
		strings.Repeat("k", profile.MaxKeyLen+1), value)
	cAcc.InvokeFail(t, profile.ErrValueSize, "put", owner, "displayName",
		randomBytes(profile.MaxValueSize+1))
	c.InvokeFail(t, common.ErrWitnessFailed, "put", owner, "displayName", value)

	h := cAcc.Invoke(t, stackitem.Null{}, "put", owner, "displayName", value)
	aer := cAcc.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "ProfilePut", aer.Events[0].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.Make(owner.BytesBE()),
		stackitem.Make("displayName"),
	}), aer.Events[0].Item)

	c.Invoke(t, stackitem.Make(value), "get", owner, "displayName")
	c.Invoke(t, stackitem.Null{}, "get", owner, "homepage")

	// Overwrites are allowed.
	cAcc.Invoke(t, stackitem.Null{}, "put", owner, "displayName", []byte("RP GmbH"))
	c.Invoke(t, stackitem.Make([]byte("RP GmbH")), "get", owner, "displayName")
}

func TestProfileDelete(t *testing.T) {
	c := newProfileInvoker(t)

	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)
	owner := acc.ScriptHash()

	cAcc.Invoke(t, stackitem.Null{}, "put", owner, "homepage",
		[]byte("https://example.org"))

	c.InvokeFail(t, common.ErrWitnessFailed, "delete", owner, "homepage")
	cAcc.InvokeFail(t, profile.ErrNotFound, "delete", owner, "absent")

	h := cAcc.Invoke(t, stackitem.Null{}, "delete", owner, "homepage")
	aer := cAcc.CheckHalt(t, h)
	require.Equal(t, 1, len(aer.Events))
	require.Equal(t, "ProfileDelete", aer.Events[0].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.Make(owner.BytesBE()),
		stackitem.Make("homepage"),
	}), aer.Events[0].Item)

	c.Invoke(t, stackitem.Null{}, "get", owner, "homepage")
	cAcc.InvokeFail(t, profile.ErrNotFound, "delete", owner, "homepage")
}

func TestProfileList(t *testing.T) {
	c := newProfileInvoker(t)

	acc := c.NewAccount(t)
	acc2 := c.NewAccount(t)
	cAcc := c.WithSigners(acc)

	recordKeys := []string{"displayName", "homepage", "contact"}
	for _, k := range recordKeys {
		cAcc.Invoke(t, stackitem.Null{}, "put", acc.ScriptHash(), k, []byte("v"))
	}
	c.WithSigners(acc2).Invoke(t, stackitem.Null{}, "put",
		acc2.ScriptHash(), "other", []byte("v"))

	items := iteratorFromTestInvoke(t, c, "list", acc.ScriptHash())
	listed := make([]string, 0, len(items))
	for _, item := range items {
		k, err := item.TryBytes()
		require.NoError(t, err)
		listed = append(listed, string(k))
	}
	require.ElementsMatch(t, recordKeys, listed)

	items = iteratorFromTestInvoke(t, c, "list", acc2.ScriptHash())
	require.Equal(t, 1, len(items))
}

func TestProfileUpdate(t *testing.T) {
	c := newProfileInvoker(t)

	acc := c.NewAccount(t)
	c.WithSigners(acc).InvokeFail(t, common.ErrOwnerWitnessFailed, "update",
		[]byte{}, []byte{}, nil)
}
