package dto

// CatalogItemResponse describes a storefront listing.
type CatalogItemResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Membership  string  `json:"membership"`
	Slug        string  `json:"slug"`
}
