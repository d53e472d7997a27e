package dto

// CartItemRequest describes an "add to cart" payload.
type CartItemRequest struct {
	Title      string  `json:"title"`
	Image      string  `json:"image"`
	Qty        int     `json:"qty"`
	Price      float64 `json:"price"`
	Membership string  `json:"membership"`
	Slug       string  `json:"slug"`
}

// CartItemResponse describes a stored cart line.
type CartItemResponse struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Image      string  `json:"image"`
	Qty        int     `json:"qty"`
	Price      float64 `json:"price"`
	Membership string  `json:"membership"`
	Slug       string  `json:"slug"`
}
