package model

// CatalogItem is a storefront listing served by the content store. Orders
// snapshot title and price at checkout, so later catalog edits do not touch
// existing rows.
type CatalogItem struct {
	ID          string
	Title       string
	Price       float64
	Image       string
	Description string
	Membership  Tier
	Slug        string
}
