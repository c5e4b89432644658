package sol

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
)

// Client represents a Solana client that handles both RPC and WebSocket connections
type Client struct {
	RpcClient *rpc.Client
	WsClient  *ws.Client
}

// NewClient creates a new Solana client with both RPC and WebSocket connections
func NewClient(ctx context.Context, endpoint, wsEndpoint string) (*Client, error) {
	c := &Client{
		RpcClient: rpc.New(endpoint),
	}
	if wsEndpoint != "" {
		wsClient, err := ws.Connect(ctx, wsEndpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to establish WebSocket connection: %w", err)
		}
		c.WsClient = wsClient
	}
	return c, nil
}

// Close terminates all client connections
func (c *Client) Close() error {
	if c.WsClient != nil {
		c.WsClient.Close()
	}
	return nil
}

// GetAccountInfos loads the current state of keys. The returned accounts carry
// no privileges; callers set IsSigner/IsWritable the way their transaction
// declares them.
func (c *Client) GetAccountInfos(ctx context.Context, keys ...solana.PublicKey) ([]*AccountInfo, error) {
	res, err := c.RpcClient.GetMultipleAccountsWithOpts(ctx, keys, &rpc.GetMultipleAccountsOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: rpc.CommitmentProcessed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get multiple accounts: %w", err)
	}
	if len(res.Value) != len(keys) {
		return nil, fmt.Errorf("unexpected account count: got %d, want %d", len(res.Value), len(keys))
	}

	infos := make([]*AccountInfo, len(keys))
	for i, acc := range res.Value {
		info := &AccountInfo{Key: keys[i]}
		if acc != nil {
			info.Owner = acc.Owner
			info.Lamports = acc.Lamports
			info.Executable = acc.Executable
			if acc.Data != nil {
				info.Data = acc.Data.GetBinary()
			}
		}
		infos[i] = info
	}
	return infos, nil
}
