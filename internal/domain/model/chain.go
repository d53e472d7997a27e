package model

import "encoding/json"

// Asset is a quantity of a single token inside a transaction output. The
// native coin uses unit "lovelace".
type Asset struct {
	Unit     string
	Quantity int64
}

// UTXO is an unspent output sitting at some address. TxHash plus OutputIndex
// identify it uniquely; the whole value is consumed when spent.
type UTXO struct {
	TxHash      string
	OutputIndex int
	Address     string
	Amount      []Asset
	DataHash    string
}

// Lovelace returns the native coin component of the output value.
func (u UTXO) Lovelace() int64 {
	for _, a := range u.Amount {
		if a.Unit == "lovelace" {
			return a.Quantity
		}
	}
	return 0
}

// EscrowEntry joins an order row with the contract UTXO that holds its
// funds. Withdrawable is true only once the order reached Completed.
// Datum carries the decoded locking datum when the chain provider could
// resolve it; reconciliation does not depend on it.
type EscrowEntry struct {
	Order        Order
	UTXO         UTXO
	Withdrawable bool
	Datum        json.RawMessage
}

// EscrowView is a reconciliation pass over the contract address: the
// actionable entries and the total native coin still locked, in display
// units.
type EscrowView struct {
	Entries     []EscrowEntry
	TotalLocked float64
}
