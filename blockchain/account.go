package blockchain

import (
	"context"
	"fmt"

	"github.com/llakterian/FTkn-d/blockchain/base"
	sdkcrypto "github.com/llakterian/FTkn-d/pkg/crypto"
)

// AccountClient provides account queries
type AccountClient struct {
	base *base.Client
}

// GetBalance returns the TRX balance of address in sun. Accounts that were
// never activated report zero.
func (a *AccountClient) GetBalance(ctx context.Context, address string) (int64, error) {
	if err := sdkcrypto.ValidateAddress(address); err != nil {
		return 0, err
	}
	var resp accountResponse
	if err := a.base.Post(ctx, "/wallet/getaccount", accountRequest{Address: address, Visible: true}, &resp); err != nil {
		return 0, fmt.Errorf("failed to get account: %w", err)
	}
	return resp.Balance, nil
}
