package ethereum

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ThrottledClient caps concurrent in-flight calls per rpc endpoint. A burst
// of bids fans out contract reads and providers rate limit aggressively
type ThrottledClient struct {
	*ethclient.Client
	tokens chan struct{}
}

func NewThrottledClient(client *ethclient.Client, n int) *ThrottledClient {
	tokens := make(chan struct{}, n)
	for i := 0; i < n; i++ {
		tokens <- struct{}{}
	}
	return &ThrottledClient{
		Client: client,
		tokens: tokens,
	}
}

func (c *ThrottledClient) CallContract(ctx context.Context, msg ethereum.CallMsg, number *big.Int) ([]byte, error) {
	if c.acquire(ctx) {
		defer c.release()
	}
	return c.Client.CallContract(ctx, msg, number)
}

// acquire returns false when ctx closed before a token freed up. The call
// proceeds anyway and fails fast on the expired ctx
func (c *ThrottledClient) acquire(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-c.tokens:
		return true
	}
}

func (c *ThrottledClient) release() {
	c.tokens <- struct{}{}
}
