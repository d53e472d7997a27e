package model

// PlutusData is a constructor-style script data value. Binary encoding is
// the wallet's and provider's concern; this system only assembles the shape.
type PlutusData struct {
	Constructor int   `json:"constructor"`
	Fields      []any `json:"fields"`
}

// ConStr0 builds a constructor-0 data value, the shape used for both the
// escrow datum and the redeemer.
func ConStr0(fields ...any) PlutusData {
	if fields == nil {
		fields = []any{}
	}
	return PlutusData{Constructor: 0, Fields: fields}
}

// TxOutput is a planned transaction output.
type TxOutput struct {
	Address   string      `json:"address"`
	Amount    []Asset     `json:"amount"`
	DatumHash *PlutusData `json:"datum_hash,omitempty"`
}

// ScriptInput is a contract UTXO being spent, together with everything the
// validator needs at spend time.
type ScriptInput struct {
	UTXO           UTXO       `json:"utxo"`
	ScriptCbor     string     `json:"script_cbor"`
	ScriptVersion  string     `json:"script_version"`
	Redeemer       PlutusData `json:"redeemer"`
	Datum          PlutusData `json:"datum"`
	RequiredSigner string     `json:"required_signer"`
}

// UnsignedTx is a structured transaction draft handed to the wallet for
// signing. No CBOR is produced here.
type UnsignedTx struct {
	Network       string        `json:"network,omitempty"`
	Outputs       []TxOutput    `json:"outputs"`
	ScriptInputs  []ScriptInput `json:"script_inputs,omitempty"`
	Inputs        []UTXO        `json:"inputs"`
	Collateral    *UTXO         `json:"collateral,omitempty"`
	ChangeAddress string        `json:"change_address"`
}
