package test

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/cardafy/cardafy/internal/adapter/assistant"
	domainErrors "github.com/cardafy/cardafy/internal/domain/errors"
	"github.com/cardafy/cardafy/internal/domain/model"
)

// ChainProviderStub serves canned contract state for reconciliation tests.
type ChainProviderStub struct {
	FetchFn  func(context.Context, string) ([]model.UTXO, error)
	ExistsFn func(context.Context, string) (bool, error)

	Utxos    []model.UTXO
	Err      error
	Existing map[string]bool
	Datums   map[string]json.RawMessage
}

// FetchDatum returns the configured datum payload for the hash.
func (s *ChainProviderStub) FetchDatum(ctx context.Context, hash string) (json.RawMessage, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if datum, ok := s.Datums[hash]; ok {
		return datum, nil
	}
	return nil, domainErrors.ErrNotFound
}

// FetchAddressUTXOs returns configured outputs for any address.
func (s *ChainProviderStub) FetchAddressUTXOs(ctx context.Context, address string) ([]model.UTXO, error) {
	if s.FetchFn != nil {
		return s.FetchFn(ctx, address)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Utxos, nil
}

// TransactionExists checks the configured set.
func (s *ChainProviderStub) TransactionExists(ctx context.Context, txHash string) (bool, error) {
	if s.ExistsFn != nil {
		return s.ExistsFn(ctx, txHash)
	}
	if s.Err != nil {
		return false, s.Err
	}
	return s.Existing[txHash], nil
}

// ContentProviderStub serves a fixed catalog for tests.
type ContentProviderStub struct {
	ListFn func(context.Context, model.Tier) ([]model.CatalogItem, error)
	GetFn  func(context.Context, model.Tier, string) (*model.CatalogItem, error)

	Items []model.CatalogItem
	Err   error
}

// ListByMembership filters configured items by tier.
func (s *ContentProviderStub) ListByMembership(ctx context.Context, tier model.Tier) ([]model.CatalogItem, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, tier)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.CatalogItem
	for _, item := range s.Items {
		if item.Membership == tier {
			out = append(out, item)
		}
	}
	return out, nil
}

// GetBySlug resolves a configured item or returns not found.
func (s *ContentProviderStub) GetBySlug(ctx context.Context, tier model.Tier, slug string) (*model.CatalogItem, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, tier, slug)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	for _, item := range s.Items {
		if item.Membership == tier && item.Slug == slug {
			found := item
			return &found, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// AssistantStub replays a fixed reply stream.
type AssistantStub struct {
	StreamFn func(context.Context, []assistant.Message) (io.ReadCloser, error)

	Reply string
	Err   error

	History [][]assistant.Message
}

// Stream records the conversation and returns the canned reply.
func (s *AssistantStub) Stream(ctx context.Context, history []assistant.Message) (io.ReadCloser, error) {
	if s.StreamFn != nil {
		return s.StreamFn(ctx, history)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.History = append(s.History, history)
	return io.NopCloser(strings.NewReader(s.Reply)), nil
}
