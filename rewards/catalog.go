/*
catalog.go - Reward catalog entries

PURPOSE:
  The catalog is supplied by the host (an ordered list); the ledger only
  needs PointsCost and Name to redeem. DefaultCatalog ships the stock
  entries for demos and tests.
*/
package rewards

// RewardItem is one redeemable catalog entry.
type RewardItem struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	PointsCost   int    `json:"points"`
	Category     string `json:"category"`
	DisplayValue string `json:"value"`
}

// Catalog is an ordered list of reward items.
type Catalog []RewardItem

// Find returns the item with the given id.
func (c Catalog) Find(id int) (RewardItem, bool) {
	for _, item := range c {
		if item.ID == id {
			return item, true
		}
	}
	return RewardItem{}, false
}

// DefaultCatalog returns the stock reward catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		{ID: 1, Name: "Amazon Gift Card", PointsCost: 500, Category: "Gift Cards", DisplayValue: "$25"},
		{ID: 2, Name: "Spotify Premium (3mo)", PointsCost: 300, Category: "Subscriptions", DisplayValue: "3 months"},
		{ID: 3, Name: "Extra PTO Day", PointsCost: 800, Category: "Company Perks", DisplayValue: "1 day"},
		{ID: 4, Name: "Lunch Voucher", PointsCost: 150, Category: "Food", DisplayValue: "$15"},
		{ID: 5, Name: "Netflix Gift Card", PointsCost: 400, Category: "Gift Cards", DisplayValue: "$20"},
		{ID: 6, Name: "Work From Home Week", PointsCost: 600, Category: "Company Perks", DisplayValue: "1 week"},
		{ID: 7, Name: "Coffee Shop Voucher", PointsCost: 100, Category: "Food", DisplayValue: "$10"},
		{ID: 8, Name: "Tech Gadget Voucher", PointsCost: 1200, Category: "Tech", DisplayValue: "$75"},
	}
}
