package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

func iteratorToArray(iter *storage.Iterator) []stackitem.Item {
	stackItems := make([]stackitem.Item, 0)
	for iter.Next() {
		stackItems = append(stackItems, iter.Value())
	}
	return stackItems
}

// iteratorFromTestInvoke performs a test invocation of a method returning
// an iterator and expands it into a slice of stack items.
func iteratorFromTestInvoke(t *testing.T, c *neotest.ContractInvoker, method string, args ...any) []stackitem.Item {
	s, err := c.TestInvoke(t, method, args...)
	require.NoError(t, err)
	iter, ok := s.Top().Value().(*storage.Iterator)
	require.True(t, ok)
	return iteratorToArray(iter)
}
