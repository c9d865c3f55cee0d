package types

// Confirmation summarizes how a watched transaction ended up.
type Confirmation struct {
	TxID           string
	Status         TransactionStatus
	InclusionBlock int64
	Depth          int64
	Attempts       int
}

// TransferResult contains the result of a TRX transfer
type TransferResult struct {
	TxID         string
	From         string
	To           string
	Amount       int64
	Confirmation Confirmation
	ExplorerURL  string
}

// MintResult contains the result of a TRC-20 mint call
type MintResult struct {
	TxID         string
	Contract     string
	Recipient    string
	Amount       int64
	Confirmation Confirmation
	ExplorerURL  string
}
