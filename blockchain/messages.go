package blockchain

import (
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Transaction is the JSON form of a TRON transaction as returned by the
// wallet API. RawData is kept verbatim so it round-trips unchanged into
// broadcasttransaction.
type Transaction struct {
	Visible    bool            `json:"visible"`
	TxID       string          `json:"txID"`
	RawData    json.RawMessage `json:"raw_data"`
	RawDataHex string          `json:"raw_data_hex"`
	Signature  []string        `json:"signature,omitempty"`
}

type valueRequest struct {
	Value   string `json:"value"`
	Visible bool   `json:"visible,omitempty"`
}

type transactionInfoResponse struct {
	ID          string `json:"id"`
	Fee         int64  `json:"fee"`
	BlockNumber int64  `json:"blockNumber"`
	Receipt     struct {
		Result string `json:"result"`
	} `json:"receipt"`
	Result     string `json:"result"`
	ResMessage string `json:"resMessage"`
}

type nowBlockResponse struct {
	BlockID     string `json:"blockID"`
	BlockHeader struct {
		RawData struct {
			Number    int64 `json:"number"`
			Timestamp int64 `json:"timestamp"`
		} `json:"raw_data"`
	} `json:"block_header"`
}

type accountRequest struct {
	Address string `json:"address"`
	Visible bool   `json:"visible"`
}

type accountResponse struct {
	Address string `json:"address"`
	Balance int64  `json:"balance"`
}

type transferRequest struct {
	OwnerAddress string `json:"owner_address"`
	ToAddress    string `json:"to_address"`
	Amount       int64  `json:"amount"`
	Visible      bool   `json:"visible"`
}

type transferResponse struct {
	Transaction
	Error string `json:"Error"`
}

type triggerRequest struct {
	OwnerAddress     string `json:"owner_address"`
	ContractAddress  string `json:"contract_address"`
	FunctionSelector string `json:"function_selector"`
	Parameter        string `json:"parameter"`
	FeeLimit         int64  `json:"fee_limit,omitempty"`
	CallValue        int64  `json:"call_value,omitempty"`
	Visible          bool   `json:"visible"`
}

type returnResult struct {
	Result  bool   `json:"result"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type triggerResponse struct {
	Result         returnResult `json:"result"`
	Transaction    *Transaction `json:"transaction"`
	ConstantResult []string     `json:"constant_result"`
}

type broadcastResponse struct {
	Result  bool   `json:"result"`
	TxID    string `json:"txid"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// decodeMessage turns the hex encoded messages of the wallet API into text,
// leaving anything that is not hex untouched.
func decodeMessage(msg string) string {
	if msg == "" {
		return ""
	}
	raw, err := hex.DecodeString(strings.TrimPrefix(msg, "0x"))
	if err != nil {
		return msg
	}
	return string(raw)
}
