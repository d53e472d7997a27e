package dto

import "time"

// CheckoutRequest describes checkout payload.
type CheckoutRequest struct {
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	ItemName   string  `json:"item_name"`
	Qty        int     `json:"qty"`
	Price      float64 `json:"price"`
	CartItemID int64   `json:"cart_item_id"`
}

// OrderResponse describes a stored order.
type OrderResponse struct {
	TxID        string     `json:"tx_id"`
	Name        string     `json:"name"`
	Address     string     `json:"address"`
	ItemName    string     `json:"item_name"`
	Qty         int        `json:"qty"`
	Price       float64    `json:"price"`
	Total       float64    `json:"total"`
	DateOrdered time.Time  `json:"date_ordered"`
	Status      string     `json:"status"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
}
