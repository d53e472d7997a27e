package model

// CartItem is a pre-order line owned by a wallet address. It is created on
// "add to cart" and destroyed on checkout or explicit deletion.
type CartItem struct {
	ID         int64
	Address    string
	Title      string
	Image      string
	Qty        int
	Price      float64
	Membership Tier
	Slug       string
}
