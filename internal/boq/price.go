package boq

import "strings"

// Quote is the output of the price deriver for a single line item.
type Quote struct {
	FloorPrice int64 `json:"floor_price"`
	UnitPrice  int64 `json:"unit_price"`
	BelowFloor bool  `json:"below_floor"`
}

// FloorPrice computes the floor price for an item from the rate card.
// It is a pure table lookup: calling it twice on the same inputs yields the
// same value.
func FloorPrice(item LineItem, rates RateCard) int64 {
	switch item.Category {
	case CategoryCompute:
		if c := item.VMConfig; c != nil {
			floor := int64(c.VCPU)*rates.VCPURate +
				int64(c.RAMGB)*rates.RAMRate +
				int64(c.StorageGB)*rates.StorageRate +
				rates.OSAdders[strings.ToLower(c.OS)]
			for _, f := range c.Features {
				floor += rates.FeatureAdders[strings.ToLower(f)]
			}
			return floor
		}
	case CategoryStorage:
		if c := item.StorageConfig; c != nil {
			return int64(c.SizeGB) * rates.StorageRate
		}
	case CategoryNetwork, CategorySecurity, CategoryBackup, CategoryVPN, CategoryInternet:
		// Fixed per-SKU floor; unknown SKUs price at zero.
		return rates.SKUFloors[item.SKU]
	case CategoryCustom:
		return rates.CustomFloor
	}
	return rates.SKUFloors[item.SKU]
}

// Price derives the quote for an item. unitOverride, when non-nil, replaces
// the computed floor as the unit price. BelowFloor compares the negotiated
// price (ask if present, else unit) against the floor.
func Price(item LineItem, rates RateCard, unitOverride *int64) Quote {
	floor := FloorPrice(item, rates)

	unit := floor
	if unitOverride != nil {
		unit = *unitOverride
	}

	effective := unit
	if item.AskPrice != nil {
		effective = *item.AskPrice
	}

	return Quote{
		FloorPrice: floor,
		UnitPrice:  unit,
		BelowFloor: effective < floor,
	}
}

// Derive re-runs both derivers on the item and recomputes the cached fields.
// keepUnit preserves a caller-entered unit price across re-derivation.
func Derive(item *LineItem, rates RateCard, keepUnit bool) {
	item.InternalCode = InternalCode(*item)
	item.Description = Description(*item)

	var override *int64
	if keepUnit && item.UnitPrice > 0 {
		u := item.UnitPrice
		override = &u
	}
	q := Price(*item, rates, override)

	item.FloorPrice = q.FloorPrice
	item.UnitPrice = q.UnitPrice
	item.RequiresApproval = q.BelowFloor
	item.TotalPrice = q.UnitPrice * int64(item.Quantity)
}
