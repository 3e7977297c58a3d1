package store

import "wonkepos/internal/dto"

// The wire schema keeps license fields flat on the shop row; the client works
// with a nested License value so screens can pass it around as one unit.

type License struct {
	Status     string
	ExpiryDate string
	Plan       string
}

func (l License) Expired() bool { return l.Status == "expired" }

type Shop struct {
	ID       string
	OwnerID  string
	Name     string
	Location string
	License  License
}

func adaptShop(s dto.ShopResponse) Shop {
	return Shop{
		ID:       s.ID,
		OwnerID:  s.OwnerID,
		Name:     s.Name,
		Location: s.Location,
		License: License{
			Status:     s.LicenseStatus,
			ExpiryDate: s.LicenseExpiryDate,
			Plan:       s.LicensePlan,
		},
	}
}

func adaptShops(in []dto.ShopResponse) []Shop {
	out := make([]Shop, len(in))
	for i, s := range in {
		out[i] = adaptShop(s)
	}
	return out
}
