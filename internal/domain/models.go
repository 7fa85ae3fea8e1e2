package domain

import "strings"

// DonationSKUPrefix marks donation pseudo-items inside the items table. Items
// and donations draw from one per-account SKU counter; the prefix is the sole
// discriminator between the two everywhere downstream.
const DonationSKUPrefix = "DON-"

// DonationCategoryName is the sentinel category forced onto donation records.
const DonationCategoryName = "Donation"

type Account struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	AdminUserID string `db:"admin_user_id"`
	LastItemSKU int64  `db:"last_item_sku"`
	CreatedAt   string `db:"created_at"`
}

type Auction struct {
	ID            string `db:"id"`
	AccountID     string `db:"account_id"`
	Name          string `db:"name"`
	Description   string `db:"description"`
	Type          string `db:"type"`   // Live | Silent | Hybrid
	Status        string `db:"status"` // upcoming | active | completed
	StartsAt      string `db:"starts_at"`
	PublicCatalog bool   `db:"public_catalog"`
	ItemCount     int    `db:"item_count"`
	CreatedAt     string `db:"created_at"`
}

type Category struct {
	ID        string `db:"id"`
	AuctionID string `db:"auction_id"`
	Name      string `db:"name"`
}

type Item struct {
	ID             string  `db:"id"`
	AuctionID      string  `db:"auction_id"`
	AccountID      string  `db:"account_id"`
	SKU            string  `db:"sku"`
	Name           string  `db:"name"`
	Description    string  `db:"description"`
	EstimatedValue float64 `db:"estimated_value"`
	CategoryID     string  `db:"category_id"`
	CategoryName   string  `db:"category_name"` // denormalized at write time
	DonorID        string  `db:"donor_id"`
	DonorName      string  `db:"donor_name"` // denormalized at write time
	LotID          string  `db:"lot_id"`
	ImageKey       string  `db:"image_key"`
	WinningBid     float64 `db:"winning_bid"`
	WinningBidder  string  `db:"winning_bidder_id"`
	// Winner snapshot, taken when the bid is recorded; not refreshed if the
	// source patron record changes later.
	WinnerName         string `db:"winner_name"`
	WinnerBidderNumber int    `db:"winner_bidder_number"`
	Paid               bool   `db:"paid"`
	PaymentMethod      string `db:"payment_method"`
	CreatedAt          string `db:"created_at"`
}

// IsDonation reports whether the record is a cash-donation pseudo-item.
func (i Item) IsDonation() bool { return strings.HasPrefix(i.SKU, DonationSKUPrefix) }

// Sold reports whether a winning bid has been recorded.
func (i Item) Sold() bool { return i.WinningBidder != "" }

type Lot struct {
	ID        string `db:"id"`
	AuctionID string `db:"auction_id"`
	Name      string `db:"name"`
}

type Patron struct {
	ID        string `db:"id"`
	AccountID string `db:"account_id"`
	Name      string `db:"name"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
	Address   string `db:"address"`
	Notes     string `db:"notes"`
	CreatedAt string `db:"created_at"`
}

// PatronStats are computed per read from the items table, never stored.
type PatronStats struct {
	TotalSpent float64 `db:"total_spent"`
	ItemsWon   int     `db:"items_won"`
}

type Registration struct {
	ID           string `db:"id"`
	AuctionID    string `db:"auction_id"`
	PatronID     string `db:"patron_id"`
	AccountID    string `db:"account_id"`
	BidderNumber int    `db:"bidder_number"`
	CreatedAt    string `db:"created_at"`
}

type Donor struct {
	ID        string `db:"id"`
	AccountID string `db:"account_id"`
	Name      string `db:"name"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
	Address   string `db:"address"`
	Type      string `db:"donor_type"` // individual | business
	CreatedAt string `db:"created_at"`
}

type Invitation struct {
	ID         string `db:"id"`
	AccountID  string `db:"account_id"`
	AuctionID  string `db:"auction_id"`
	Email      string `db:"email"`
	Status     string `db:"status"` // pending | accepted
	AcceptedBy string `db:"accepted_by"`
	CreatedAt  string `db:"created_at"`
}
