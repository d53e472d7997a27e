package usecase_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/cardafy/cardafy/internal/domain/model"
	testhelpers "github.com/cardafy/cardafy/internal/test"
	"github.com/cardafy/cardafy/internal/usecase"
)

func escrowFixture() (*testhelpers.ChainProviderStub, *testhelpers.OrderRepositoryStub) {
	pendingTx := strings.Repeat("1", 64)
	completedTx := strings.Repeat("2", 64)

	chain := &testhelpers.ChainProviderStub{Utxos: []model.UTXO{
		{TxHash: pendingTx, OutputIndex: 0, Address: "addr_test1wcontract", Amount: []model.Asset{{Unit: "lovelace", Quantity: 120_000_000}}},
		{TxHash: completedTx, OutputIndex: 0, Address: "addr_test1wcontract", Amount: []model.Asset{{Unit: "lovelace", Quantity: 70_000_000}}},
		{TxHash: "xyz", OutputIndex: 0, Address: "addr_test1wcontract", Amount: []model.Asset{{Unit: "lovelace", Quantity: 5_000_000}}},
	}}
	orders := &testhelpers.OrderRepositoryStub{Orders: []model.Order{
		{TxID: pendingTx, Status: model.OrderStatusPending, Price: 50, Qty: 2},
		{TxID: completedTx, Status: model.OrderStatusCompleted, Price: 25, Qty: 2},
	}}
	return chain, orders
}

func TestMerchantViewMatchesOrdersByTxID(t *testing.T) {
	chain, orders := escrowFixture()
	uc := usecase.NewReconcileUseCase(chain, orders, "addr_test1wcontract", discardLogger())

	view, err := uc.MerchantView(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(view.Entries) != 2 {
		t.Fatalf("expected 2 matched entries, got %d", len(view.Entries))
	}
	for _, entry := range view.Entries {
		if entry.UTXO.TxHash != entry.Order.TxID {
			t.Fatalf("entry joins mismatched utxo %s and order %s", entry.UTXO.TxHash, entry.Order.TxID)
		}
		if entry.UTXO.TxHash == "xyz" {
			t.Fatal("unmatched utxo must be dropped")
		}
		wantWithdrawable := entry.Order.Status == model.OrderStatusCompleted
		if entry.Withdrawable != wantWithdrawable {
			t.Fatalf("entry %s withdrawable=%v, want %v", entry.Order.TxID, entry.Withdrawable, wantWithdrawable)
		}
	}
	if view.TotalLocked != 190 {
		t.Fatalf("expected 190 ada locked, got %v", view.TotalLocked)
	}
}

func TestMerchantViewEnrichesEntriesWithDatum(t *testing.T) {
	chain, orders := escrowFixture()
	datumHash := strings.Repeat("d", 64)
	chain.Utxos[0].DataHash = datumHash
	chain.Datums = map[string]json.RawMessage{
		datumHash: json.RawMessage(`{"fields":[{"bytes":"abc"}]}`),
	}
	uc := usecase.NewReconcileUseCase(chain, orders, "addr_test1wcontract", discardLogger())

	view, err := uc.MerchantView(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, entry := range view.Entries {
		if entry.UTXO.DataHash == datumHash {
			if string(entry.Datum) != `{"fields":[{"bytes":"abc"}]}` {
				t.Fatalf("expected resolved datum, got %q", entry.Datum)
			}
		} else if entry.Datum != nil {
			t.Fatalf("entry %s without data hash must carry no datum", entry.Order.TxID)
		}
	}
}

func TestMerchantViewSurvivesDatumLookupFailure(t *testing.T) {
	chain, orders := escrowFixture()
	chain.Utxos[0].DataHash = strings.Repeat("d", 64)
	uc := usecase.NewReconcileUseCase(chain, orders, "addr_test1wcontract", discardLogger())

	view, err := uc.MerchantView(context.Background())
	if err != nil {
		t.Fatalf("datum miss must not fail the view: %v", err)
	}
	if len(view.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(view.Entries))
	}
	for _, entry := range view.Entries {
		if entry.Datum != nil {
			t.Fatalf("expected no datum on miss, got %q", entry.Datum)
		}
	}
}

func TestBuyerViewExcludesCompleted(t *testing.T) {
	chain, orders := escrowFixture()
	uc := usecase.NewReconcileUseCase(chain, orders, "addr_test1wcontract", discardLogger())

	view, err := uc.BuyerView(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Entries) != 1 {
		t.Fatalf("expected only the pending entry, got %d", len(view.Entries))
	}
	if view.Entries[0].Order.Status == model.OrderStatusCompleted {
		t.Fatal("buyer view must not contain completed orders")
	}
	if view.TotalLocked != 120 {
		t.Fatalf("expected 120 ada, got %v", view.TotalLocked)
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	chain, orders := escrowFixture()
	uc := usecase.NewReconcileUseCase(chain, orders, "addr_test1wcontract", discardLogger())

	first, err := uc.MerchantView(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.MerchantView(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first.Entries) != len(second.Entries) || first.TotalLocked != second.TotalLocked {
		t.Fatalf("repeated reconciliation diverged: %+v vs %+v", first, second)
	}
	for i := range first.Entries {
		if first.Entries[i].Order.TxID != second.Entries[i].Order.TxID {
			t.Fatalf("entry order changed between passes at %d", i)
		}
	}
}

func TestReconcileEmptyContract(t *testing.T) {
	chain := &testhelpers.ChainProviderStub{}
	orders := &testhelpers.OrderRepositoryStub{}
	uc := usecase.NewReconcileUseCase(chain, orders, "addr_test1wcontract", discardLogger())

	view, err := uc.MerchantView(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(view.Entries) != 0 || view.TotalLocked != 0 {
		t.Fatalf("expected empty view, got %+v", view)
	}
}
