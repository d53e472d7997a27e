package escrow

import (
	"fmt"
	"sort"

	domainErrors "github.com/cardafy/cardafy/internal/domain/errors"
	"github.com/cardafy/cardafy/internal/domain/model"
)

// RedeemerRef is the agreed-upon reference value handed to the script at
// spend time. Its semantics live in the compiled script, not here.
const RedeemerRef = "17925"

// feeBudget is the lovelace allowance reserved for the network fee during
// input selection. The wallet computes the exact fee when it signs.
const feeBudget = 200_000

// Builder assembles transaction drafts step by step. Methods record the
// first error and become no-ops afterwards, so call sites can chain freely
// and check once at Complete.
type Builder struct {
	tx         model.UnsignedTx
	candidates []model.UTXO
	pending    *model.ScriptInput
	version    string
	err        error
}

// NewBuilder creates an empty transaction builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// SetNetwork tags the draft with a target network.
func (b *Builder) SetNetwork(network string) *Builder {
	if b.err != nil {
		return b
	}
	b.tx.Network = network
	return b
}

// TxOut adds a planned output.
func (b *Builder) TxOut(address string, amount []model.Asset) *Builder {
	if b.err != nil {
		return b
	}
	if address == "" {
		b.err = fmt.Errorf("output address is empty")
		return b
	}
	b.tx.Outputs = append(b.tx.Outputs, model.TxOutput{Address: address, Amount: amount})
	return b
}

// TxOutDatumHashValue attaches a datum to the most recent output.
func (b *Builder) TxOutDatumHashValue(datum model.PlutusData) *Builder {
	if b.err != nil {
		return b
	}
	if len(b.tx.Outputs) == 0 {
		b.err = fmt.Errorf("datum requires a preceding output")
		return b
	}
	b.tx.Outputs[len(b.tx.Outputs)-1].DatumHash = &datum
	return b
}

// SpendingPlutusScript switches the builder into script-spending mode for
// the next TxIn.
func (b *Builder) SpendingPlutusScript(version string) *Builder {
	if b.err != nil {
		return b
	}
	b.version = version
	return b
}

// TxIn consumes a UTXO. After SpendingPlutusScript it opens a script input;
// otherwise it adds a plain wallet input.
func (b *Builder) TxIn(txHash string, index int, amount []model.Asset, address string) *Builder {
	if b.err != nil {
		return b
	}
	utxo := model.UTXO{TxHash: txHash, OutputIndex: index, Amount: amount, Address: address}
	if b.version != "" {
		b.pending = &model.ScriptInput{UTXO: utxo, ScriptVersion: b.version}
		b.version = ""
		return b
	}
	b.tx.Inputs = append(b.tx.Inputs, utxo)
	return b
}

// TxInScript supplies the compiled script for the pending script input.
func (b *Builder) TxInScript(cbor string) *Builder {
	if b.err != nil {
		return b
	}
	if b.pending == nil {
		b.err = fmt.Errorf("script requires a pending script input")
		return b
	}
	b.pending.ScriptCbor = cbor
	return b
}

// TxInRedeemerValue supplies the redeemer for the pending script input.
func (b *Builder) TxInRedeemerValue(redeemer model.PlutusData) *Builder {
	if b.err != nil {
		return b
	}
	if b.pending == nil {
		b.err = fmt.Errorf("redeemer requires a pending script input")
		return b
	}
	b.pending.Redeemer = redeemer
	return b
}

// TxInDatumValue supplies the datum for the pending script input. It must
// match what was hashed into the output at lock time for the spend to
// validate.
func (b *Builder) TxInDatumValue(datum model.PlutusData) *Builder {
	if b.err != nil {
		return b
	}
	if b.pending == nil {
		b.err = fmt.Errorf("datum requires a pending script input")
		return b
	}
	b.pending.Datum = datum
	return b
}

// RequiredSignerHash marks the key that must sign for the script to accept
// the spend.
func (b *Builder) RequiredSignerHash(hash string) *Builder {
	if b.err != nil {
		return b
	}
	if b.pending == nil {
		b.err = fmt.Errorf("required signer needs a pending script input")
		return b
	}
	b.pending.RequiredSigner = hash
	return b
}

// ChangeAddress directs leftover value back to the wallet.
func (b *Builder) ChangeAddress(address string) *Builder {
	if b.err != nil {
		return b
	}
	b.tx.ChangeAddress = address
	return b
}

// TxInCollateral pledges a collateral UTXO for script execution.
func (b *Builder) TxInCollateral(txHash string, index int, amount []model.Asset, address string) *Builder {
	if b.err != nil {
		return b
	}
	b.tx.Collateral = &model.UTXO{TxHash: txHash, OutputIndex: index, Amount: amount, Address: address}
	return b
}

// SelectUtxosFrom records the wallet UTXOs input selection may draw from.
func (b *Builder) SelectUtxosFrom(utxos []model.UTXO) *Builder {
	if b.err != nil {
		return b
	}
	b.candidates = utxos
	return b
}

// Complete finalizes the draft: it closes any pending script input, runs
// largest-first input selection to cover the outputs plus a fee allowance,
// and validates the result.
func (b *Builder) Complete() (*model.UnsignedTx, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.pending != nil {
		if b.pending.ScriptCbor == "" {
			return nil, fmt.Errorf("script input is missing its script")
		}
		b.tx.ScriptInputs = append(b.tx.ScriptInputs, *b.pending)
		b.pending = nil
	}

	if b.tx.ChangeAddress == "" {
		return nil, fmt.Errorf("change address is not set")
	}

	if len(b.tx.ScriptInputs) > 0 && b.tx.Collateral == nil {
		return nil, domainErrors.ErrNoCollateral
	}

	needed := feeBudget + b.outputLovelace() - b.inputLovelace()
	if needed > 0 {
		selected, err := selectUtxos(b.candidates, needed)
		if err != nil {
			return nil, err
		}
		b.tx.Inputs = append(b.tx.Inputs, selected...)
	}

	tx := b.tx
	return &tx, nil
}

func (b *Builder) outputLovelace() int64 {
	var total int64
	for _, out := range b.tx.Outputs {
		for _, a := range out.Amount {
			if a.Unit == "lovelace" {
				total += a.Quantity
			}
		}
	}
	return total
}

func (b *Builder) inputLovelace() int64 {
	var total int64
	for _, in := range b.tx.Inputs {
		total += in.Lovelace()
	}
	for _, in := range b.tx.ScriptInputs {
		total += in.UTXO.Lovelace()
	}
	return total
}

// selectUtxos picks inputs largest-first until the target is covered.
func selectUtxos(candidates []model.UTXO, target int64) ([]model.UTXO, error) {
	sorted := make([]model.UTXO, len(candidates))
	copy(sorted, candidates)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Lovelace() > sorted[j].Lovelace()
	})

	var selected []model.UTXO
	var covered int64
	for _, utxo := range sorted {
		if covered >= target {
			break
		}
		selected = append(selected, utxo)
		covered += utxo.Lovelace()
	}
	if covered < target {
		return nil, fmt.Errorf("%w: need %d lovelace, wallet covers %d", domainErrors.ErrInsufficientFunds, target, covered)
	}
	return selected, nil
}
