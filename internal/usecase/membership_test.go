package usecase_test

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/cardafy/cardafy/internal/domain/errors"
	"github.com/cardafy/cardafy/internal/domain/model"
	testhelpers "github.com/cardafy/cardafy/internal/test"
	"github.com/cardafy/cardafy/internal/usecase"
)

const testPolicyID = "f0ff48bbb7bbe9d59a40f1ce90e9e9d0ff5002ec48f232b49ca0fb9a"

func testRegistry(t *testing.T) *usecase.TierRegistry {
	t.Helper()
	registry, err := usecase.NewTierRegistry(testPolicyID, map[model.Tier]string{
		model.TierGold:     "CardafyGold",
		model.TierSilver:   "CardafySilver",
		model.TierPlatinum: "CardafyPlatinum",
	})
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	return registry
}

func TestTierRegistryLookup(t *testing.T) {
	registry := testRegistry(t)

	tier, ok := registry.Lookup(testPolicyID, "CardafyGold")
	if !ok || tier != model.TierGold {
		t.Fatalf("expected gold, got %v %v", tier, ok)
	}
	if _, ok := registry.Lookup("deadbeef", "CardafyGold"); ok {
		t.Fatal("foreign policy must not match")
	}
	if _, ok := registry.Lookup(testPolicyID, "SomethingElse"); ok {
		t.Fatal("unknown asset must not match")
	}
}

func TestTierRegistryValidation(t *testing.T) {
	if _, err := usecase.NewTierRegistry("", map[model.Tier]string{model.TierGold: "A"}); err == nil {
		t.Fatal("expected empty policy to be rejected")
	}
	if _, err := usecase.NewTierRegistry(testPolicyID, map[model.Tier]string{model.TierGold: ""}); err == nil {
		t.Fatal("expected empty asset name to be rejected")
	}
	if _, err := usecase.NewTierRegistry(testPolicyID, map[model.Tier]string{
		model.TierGold:   "Same",
		model.TierSilver: "Same",
	}); err == nil {
		t.Fatal("expected duplicate asset names to be rejected")
	}
}

func TestMembershipVerify(t *testing.T) {
	uc := usecase.NewMembershipUseCase(testRegistry(t))
	w := &testhelpers.WalletStub{Assets: []model.WalletAsset{
		{PolicyID: testPolicyID, AssetName: "CardafyGold", Quantity: 1},
		{PolicyID: testPolicyID, AssetName: "CardafyPlatinum", Quantity: 1},
		{PolicyID: "deadbeef", AssetName: "CardafySilver", Quantity: 1},
	}}

	tiers, err := uc.Verify(context.Background(), w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tiers) != 2 {
		t.Fatalf("expected 2 tiers, got %v", tiers)
	}
	seen := map[model.Tier]bool{}
	for _, tier := range tiers {
		seen[tier] = true
	}
	if !seen[model.TierGold] || !seen[model.TierPlatinum] {
		t.Fatalf("expected gold and platinum, got %v", tiers)
	}
	if seen[model.TierSilver] {
		t.Fatal("silver under a foreign policy must not count")
	}
}

func TestMembershipVerifyDeduplicates(t *testing.T) {
	uc := usecase.NewMembershipUseCase(testRegistry(t))
	w := &testhelpers.WalletStub{Assets: []model.WalletAsset{
		{PolicyID: testPolicyID, AssetName: "CardafyGold", Quantity: 1},
		{PolicyID: testPolicyID, AssetName: "CardafyGold", Quantity: 3},
	}}

	tiers, err := uc.Verify(context.Background(), w)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tiers) != 1 {
		t.Fatalf("expected deduplicated tiers, got %v", tiers)
	}
}

func TestMembershipVerifyRequiresToken(t *testing.T) {
	uc := usecase.NewMembershipUseCase(testRegistry(t))
	w := &testhelpers.WalletStub{Assets: []model.WalletAsset{
		{PolicyID: "deadbeef", AssetName: "Other", Quantity: 1},
	}}

	if _, err := uc.Verify(context.Background(), w); !errors.Is(err, domainErrors.ErrMembershipRequired) {
		t.Fatalf("expected ErrMembershipRequired, got %v", err)
	}
}

func TestCartUseCaseValidation(t *testing.T) {
	uc := usecase.NewCartUseCase(&testhelpers.CartRepositoryStub{})

	cases := []model.CartItem{
		{Address: "", Title: "Bag", Qty: 1},
		{Address: "addr", Title: " ", Qty: 1},
		{Address: "addr", Title: "Bag", Qty: 0},
		{Address: "addr", Title: "Bag", Qty: 1, Price: -5},
	}
	for _, item := range cases {
		if _, err := uc.Add(context.Background(), item); !errors.Is(err, domainErrors.ErrMissingField) {
			t.Fatalf("expected ErrMissingField for %+v, got %v", item, err)
		}
	}

	item, err := uc.Add(context.Background(), model.CartItem{Address: "addr", Title: "Bag", Qty: 1, Price: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ID == 0 {
		t.Fatal("expected assigned id")
	}
}
