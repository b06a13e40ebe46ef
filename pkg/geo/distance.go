package geo

import (
	"math"

	"github.com/vovantri123/glamora-store-api/pkg/global"
)

// earthRadiusKm is the mean Earth radius used by the Haversine formula.
const earthRadiusKm = 6371.0

// Point is a geographic coordinate in decimal degrees.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// StoreLocation returns the warehouse coordinates the shipping preview is
// measured from. Defaults to the flagship store in Thu Duc, Ho Chi Minh City.
func StoreLocation() Point {
	return Point{
		Latitude:  global.GetEnvFloat("STORE_LATITUDE", 10.850769),
		Longitude: global.GetEnvFloat("STORE_LONGITUDE", 106.771848),
	}
}

// Distance returns the great-circle distance between two points in
// kilometers. Pure and deterministic; NaN coordinates propagate NaN, so
// callers must check coordinate presence before calling.
func Distance(a, b Point) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// EstimateShippingFee is the advisory per-kilometer preview shown while the
// shopper picks an address. The authoritative fee is whatever the order
// creation response reports; this value must never feed into a charge.
func EstimateShippingFee(distanceKm float64) float64 {
	base := global.GetEnvFloat("SHIPPING_BASE_FEE", 15000)
	perKm := global.GetEnvFloat("SHIPPING_FEE_PER_KM", 2500)
	if math.IsNaN(distanceKm) || distanceKm < 0 {
		return base
	}
	return base + perKm*distanceKm
}
