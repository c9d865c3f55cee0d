package types

// TransactionStatus is the execution outcome reported by the chain.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusSucceeded TransactionStatus = "SUCCEEDED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// String implements fmt.Stringer.
func (s TransactionStatus) String() string {
	if s == "" {
		return string(TransactionStatusPending)
	}
	return string(s)
}

// StatusFromContractResult maps a TRON contract result code (contractRet or
// receipt.result) to a TransactionStatus.
func StatusFromContractResult(code string) TransactionStatus {
	switch code {
	case "":
		return TransactionStatusPending
	case "SUCCESS", "DEFAULT":
		return TransactionStatusSucceeded
	default:
		return TransactionStatusFailed
	}
}

// TransactionInfo is the chain's view of a submitted transaction. Found is
// false while the transaction is not yet indexed; InclusionBlock is zero in
// that case.
type TransactionInfo struct {
	ID             string
	Found          bool
	InclusionBlock int64
	Status         TransactionStatus
	// Fee paid in sun, informational.
	Fee int64
	// Message carries the node's failure reason when Status is Failed.
	Message string
}
