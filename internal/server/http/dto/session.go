package dto

// LoginRequest names the browser wallet to connect.
type LoginRequest struct {
	WalletName string `json:"wallet_name"`
}

// SessionResponse describes the established session.
type SessionResponse struct {
	WalletAddress string   `json:"wallet_address"`
	WalletName    string   `json:"wallet_name"`
	Tiers         []string `json:"tiers"`
}
