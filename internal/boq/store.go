package boq

import "errors"

var (
	ErrIndexOutOfRange = errors.New("line item index out of range")
	ErrNoConfig        = errors.New("line item has no config for its category")
	ErrBadQuantity     = errors.New("quantity must be a positive integer")
)

// Store is the ordered line-item list of one BoQ. It owns all mutations:
// every add/edit/remove re-runs the code and price derivers so the cached
// fields never drift from the configs.
type Store struct {
	rates RateCard
	items []LineItem
}

func NewStore(rates RateCard, items []LineItem) *Store {
	return &Store{rates: rates, items: items}
}

// Items returns the backing slice. Callers treat it as read-only.
func (s *Store) Items() []LineItem { return s.items }

// Add validates, derives and appends a new item, returning its index.
func (s *Store) Add(item LineItem) (int, error) {
	if err := validate(item); err != nil {
		return 0, err
	}
	Derive(&item, s.rates, false)
	s.items = append(s.items, item)
	return len(s.items) - 1, nil
}

// Edit replaces the item at index and re-derives it. keepUnit preserves a
// manually entered unit price through the re-derivation.
func (s *Store) Edit(index int, item LineItem, keepUnit bool) (LineItem, error) {
	if index < 0 || index >= len(s.items) {
		return LineItem{}, ErrIndexOutOfRange
	}
	if err := validate(item); err != nil {
		return LineItem{}, err
	}
	Derive(&item, s.rates, keepUnit)
	s.items[index] = item
	return item, nil
}

// Remove supersedes the item in place rather than reslicing, so indexes
// referenced elsewhere (approval comments, matched-item links) stay stable.
func (s *Store) Remove(index int) error {
	if index < 0 || index >= len(s.items) {
		return ErrIndexOutOfRange
	}
	it := &s.items[index]
	it.Superseded = true
	it.Quantity = 0
	it.TotalPrice = 0
	it.RequiresApproval = false
	return nil
}

// Totals sums the active (non-superseded) line totals.
func (s *Store) Totals() int64 {
	var sum int64
	for _, it := range s.items {
		if !it.Superseded {
			sum += it.TotalPrice
		}
	}
	return sum
}

// RequiresApproval reports whether any active item carries a below-floor ask.
func (s *Store) RequiresApproval() bool {
	for _, it := range s.items {
		if !it.Superseded && it.RequiresApproval {
			return true
		}
	}
	return false
}

func validate(item LineItem) error {
	if item.Quantity < 1 {
		return ErrBadQuantity
	}
	if !hasConfig(item) {
		return ErrNoConfig
	}
	return nil
}

func hasConfig(item LineItem) bool {
	switch item.Category {
	case CategoryCompute:
		return item.VMConfig != nil
	case CategoryStorage:
		return item.StorageConfig != nil
	case CategoryNetwork:
		return item.NetworkConfig != nil
	case CategorySecurity:
		return item.FirewallConfig != nil
	case CategoryBackup:
		return item.BackupConfig != nil
	case CategoryVPN:
		return item.VPNConfig != nil
	case CategoryInternet:
		return item.InternetConfig != nil
	case CategoryCustom:
		return item.CustomConfig != nil
	}
	return false
}
