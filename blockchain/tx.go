package blockchain

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	clientconfig "github.com/llakterian/FTkn-d/client/config"
	waittx "github.com/llakterian/FTkn-d/internal/wait-tx"
	sdkcrypto "github.com/llakterian/FTkn-d/pkg/crypto"
	"github.com/llakterian/FTkn-d/types"
)

// GetTransactionInfo fetches the execution info of a transaction. While the
// transaction is not yet in a block the node answers with an empty object and
// Found is false.
func (c *Client) GetTransactionInfo(ctx context.Context, txID string) (types.TransactionInfo, error) {
	var resp transactionInfoResponse
	if err := c.base.Post(ctx, "/wallet/gettransactioninfobyid", valueRequest{Value: txID}, &resp); err != nil {
		return types.TransactionInfo{}, fmt.Errorf("get tx info: %w", err)
	}
	if resp.ID == "" || resp.BlockNumber <= 0 {
		return types.TransactionInfo{ID: txID, Status: types.TransactionStatusPending}, nil
	}

	info := types.TransactionInfo{
		ID:             resp.ID,
		Found:          true,
		InclusionBlock: resp.BlockNumber,
		Status:         types.TransactionStatusSucceeded,
		Fee:            resp.Fee,
	}
	// Plain transfers carry no receipt result; contract calls report
	// SUCCESS, REVERT, OUT_OF_ENERGY, ...
	if resp.Result == "FAILED" {
		info.Status = types.TransactionStatusFailed
	} else if resp.Receipt.Result != "" {
		info.Status = types.StatusFromContractResult(resp.Receipt.Result)
	}
	if info.Status == types.TransactionStatusFailed {
		info.Message = decodeMessage(resp.ResMessage)
		if info.Message == "" {
			info.Message = resp.Receipt.Result
		}
	}
	return info, nil
}

// GetCurrentHeight returns the number of the latest block.
func (c *Client) GetCurrentHeight(ctx context.Context) (int64, error) {
	var resp nowBlockResponse
	if err := c.base.Post(ctx, "/wallet/getnowblock", struct{}{}, &resp); err != nil {
		return 0, fmt.Errorf("get now block: %w", err)
	}
	if resp.BlockHeader.RawData.Number <= 0 {
		return 0, fmt.Errorf("get now block: empty block header")
	}
	return resp.BlockHeader.RawData.Number, nil
}

// CreateTransfer asks the node to build an unsigned TRX transfer.
func (c *Client) CreateTransfer(ctx context.Context, from, to string, amount int64) (*Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", types.ErrSubmission)
	}
	for _, addr := range []string{from, to} {
		if err := sdkcrypto.ValidateAddress(addr); err != nil {
			return nil, fmt.Errorf("%w: %v", types.ErrSubmission, err)
		}
	}

	var resp transferResponse
	err := c.base.Post(ctx, "/wallet/createtransaction", transferRequest{
		OwnerAddress: from,
		ToAddress:    to,
		Amount:       amount,
		Visible:      true,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("%w: create transaction: %v", types.ErrSubmission, err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("%w: create transaction: %s", types.ErrSubmission, resp.Error)
	}
	if resp.TxID == "" {
		return nil, fmt.Errorf("%w: create transaction: empty transaction", types.ErrSubmission)
	}
	tx := resp.Transaction
	return &tx, nil
}

// Sign verifies the transaction id against its raw data and appends the
// signer's signature.
func (c *Client) Sign(tx *Transaction) error {
	if c.signer == nil {
		return fmt.Errorf("%w: no signer configured", types.ErrSubmission)
	}
	if err := sdkcrypto.VerifyTxID(tx.RawDataHex, tx.TxID); err != nil {
		return fmt.Errorf("%w: %v", types.ErrSubmission, err)
	}
	sig, err := c.signer.Sign(tx.TxID)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrSubmission, err)
	}
	tx.Signature = append(tx.Signature, sig)
	return nil
}

// Broadcast sends a signed transaction to the network and returns its id.
func (c *Client) Broadcast(ctx context.Context, tx *Transaction) (string, error) {
	var resp broadcastResponse
	if err := c.base.Post(ctx, "/wallet/broadcasttransaction", tx, &resp); err != nil {
		return "", fmt.Errorf("%w: broadcast tx: %v", types.ErrSubmission, err)
	}
	if !resp.Result {
		msg := decodeMessage(resp.Message)
		return "", fmt.Errorf("%w: broadcast rejected with code %s: %s", types.ErrSubmission, resp.Code, msg)
	}

	txID := resp.TxID
	if txID == "" {
		txID = tx.TxID
	}
	return txID, nil
}

// SubmitTransfer builds, signs and broadcasts a TRX transfer from the signer
// account. It returns the transaction id.
func (c *Client) SubmitTransfer(ctx context.Context, to string, amount int64) (string, error) {
	from := c.SenderAddress()
	if from == "" {
		return "", fmt.Errorf("%w: no signer configured", types.ErrSubmission)
	}
	tx, err := c.CreateTransfer(ctx, from, to, amount)
	if err != nil {
		return "", err
	}
	return c.signAndBroadcast(ctx, tx)
}

func (c *Client) signAndBroadcast(ctx context.Context, tx *Transaction) (string, error) {
	if err := c.Sign(tx); err != nil {
		return "", err
	}
	txID, err := c.Broadcast(ctx, tx)
	if err != nil {
		return "", err
	}
	c.logger.Info("transaction submitted", zap.String("tx_id", txID))
	return strings.ToLower(txID), nil
}

// WaitForConfirmation blocks until txID is buried under cfg.Confirmations
// blocks, fails, or the polling budget runs out.
func (c *Client) WaitForConfirmation(ctx context.Context, txID string, cfg clientconfig.WaitTxConfig) (types.Confirmation, error) {
	w, err := waittx.New(cfg, c, c.logger)
	if err != nil {
		return types.Confirmation{TxID: txID}, err
	}
	return w.Wait(ctx, txID, 0)
}
