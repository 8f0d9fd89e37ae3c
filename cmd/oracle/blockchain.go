package main

import (
	"context"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neorpc"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// wsBlockchain adapts the web-socket RPC client to the blockchain interface
// of the oracle service.
type wsBlockchain struct {
	*rpcclient.WSClient
}

// newWSBlockchain dials the Neo RPC server over web-socket. Connection and
// all requests are done within 15s timeout.
func newWSBlockchain(ctx context.Context, endpoint string) (*wsBlockchain, error) {
	c, err := rpcclient.NewWS(ctx, endpoint, rpcclient.WSOptions{
		Options: rpcclient.Options{
			DialTimeout:    15 * time.Second,
			RequestTimeout: 15 * time.Second,
		},
	})
	if err != nil {
		return nil, err
	}

	return &wsBlockchain{c}, nil
}

// SubscribeToExecutionNotifications implements [oracle.Blockchain] interface.
func (b *wsBlockchain) SubscribeToExecutionNotifications(contract util.Uint160, name string) (<-chan *state.ContainedNotificationEvent, error) {
	ch := make(chan *state.ContainedNotificationEvent)

	_, err := b.ReceiveExecutionNotifications(&neorpc.NotificationFilter{Contract: &contract, Name: &name}, ch)
	if err != nil {
		return nil, err
	}

	return ch, nil
}

func (b *wsBlockchain) close() {
	b.Close()
}
