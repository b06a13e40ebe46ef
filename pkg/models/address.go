package models

// Address is a delivery address as served by the backend. Coordinates are
// optional; distance previews are only offered when both are present.
// Exactly one address per user is flagged default; that is a backend
// invariant this service observes through re-fetching, never enforces.
type Address struct {
	ID            string   `json:"id"`
	ReceiverName  string   `json:"receiver_name"`
	ReceiverPhone string   `json:"receiver_phone"`
	Street        string   `json:"street"`
	Ward          string   `json:"ward,omitempty"`
	District      string   `json:"district,omitempty"`
	City          string   `json:"city"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	IsDefault     bool     `json:"is_default"`
}

func (a *Address) HasCoordinates() bool {
	return a != nil && a.Latitude != nil && a.Longitude != nil
}

// ShippingPreview pairs the informational distance with the advisory fee
// estimate. The confirmed fee lives on the created order and nowhere else.
type ShippingPreview struct {
	AddressID            string  `json:"address_id"`
	DistanceKm           float64 `json:"distance_km"`
	EstimatedShippingFee float64 `json:"estimated_shipping_fee"`
}
