package test

import (
	pkgAuth "github.com/cardafy/cardafy/internal/pkg/auth"
)

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(pkgAuth.Session) (string, error)
	ParseFn func(string) (*pkgAuth.Session, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(session pkgAuth.Session) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(session)
	}
	return "token", nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (*pkgAuth.Session, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return &pkgAuth.Session{ID: "session", WalletAddress: "addr", WalletName: "nami"}, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenParserStub implements middleware token parsing contract.
type TokenParserStub struct {
	Session *pkgAuth.Session
	Err     error
	ParseFn func(string) (*pkgAuth.Session, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (*pkgAuth.Session, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Session != nil {
		return s.Session, nil
	}
	return &pkgAuth.Session{ID: "session", WalletAddress: "addr", WalletName: "nami"}, nil
}

var _ pkgAuth.Strategy = StrategyStub{}
