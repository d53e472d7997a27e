package dto

import "encoding/json"

// WithdrawRequest names the escrow UTXO to redeem by its locking tx.
type WithdrawRequest struct {
	TxID string `json:"tx_id"`
}

// WithdrawResponse carries the redeeming transaction hash.
type WithdrawResponse struct {
	TxHash string `json:"tx_hash"`
}

// EscrowEntryResponse joins an order with its locked UTXO.
type EscrowEntryResponse struct {
	Order        OrderResponse   `json:"order"`
	TxHash       string          `json:"tx_hash"`
	OutputIndex  int             `json:"output_index"`
	LockedAda    float64         `json:"locked_ada"`
	Withdrawable bool            `json:"withdrawable"`
	Datum        json.RawMessage `json:"datum,omitempty"`
}

// EscrowResponse is the reconciled view of the contract address.
type EscrowResponse struct {
	Entries     []EscrowEntryResponse `json:"entries"`
	TotalLocked float64               `json:"total_locked"`
}
