package model

import (
	"math"
	"time"
)

// OrderStatus describes the order fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCompleted OrderStatus = "Completed"
	// OrderStatusCanceled is declared in the taxonomy but no transition
	// produces it.
	OrderStatusCanceled OrderStatus = "Canceled"
)

// NextStatus returns the unique successor status. The second return is false
// for terminal or unrecognized statuses.
func NextStatus(current OrderStatus) (OrderStatus, bool) {
	switch current {
	case OrderStatusPending:
		return OrderStatusDelivered, true
	case OrderStatusDelivered:
		return OrderStatusCompleted, true
	default:
		return current, false
	}
}

// Order describes a purchase settled through the escrow contract. TxID is
// the hash of the locking transaction and joins the row to its on-chain UTXO.
type Order struct {
	TxID        string
	Name        string
	Address     string
	ItemName    string
	Qty         int
	Price       float64
	DateOrdered time.Time
	Status      OrderStatus
	ConfirmedAt *time.Time
}

// ShipmentFee is the flat delivery charge in display currency units, added
// to every order total.
const ShipmentFee = 20.0

// LovelacePerAda converts display currency to the chain's base unit.
const LovelacePerAda = 1_000_000

// OrderTotal computes the amount owed for qty units at unit price.
func OrderTotal(price float64, qty int) float64 {
	return price*float64(qty) + ShipmentFee
}

// TotalLovelace is the order total expressed in chain base units. The
// product is rounded, not truncated: cent-denominated prices produce
// totals like 22.26 whose scaled value sits just below the integer.
func TotalLovelace(price float64, qty int) int64 {
	return int64(math.Round(OrderTotal(price, qty) * LovelacePerAda))
}

// Total returns the amount owed for the order.
func (o Order) Total() float64 {
	return OrderTotal(o.Price, o.Qty)
}
