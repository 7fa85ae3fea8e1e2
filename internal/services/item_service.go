package services

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gavelbook/internal/assets"
	"gavelbook/internal/domain"
	applog "gavelbook/internal/log"
	"gavelbook/internal/repos"
)

// ItemService owns every mutation of auction items: creation with SKU
// allocation, edits, deletion, winning-bid entry and payment marking. All
// multi-row writes run in one transaction against the store.
type ItemService struct {
	db            *sqlx.DB
	Items         *repos.ItemRepo
	Auctions      *repos.AuctionRepo
	Accounts      *repos.AccountRepo
	Registrations *repos.RegistrationRepo
	Donors        *repos.DonorRepo
	Lots          *repos.LotRepo
	Assets        assets.Store
}

func NewItemService(db *sqlx.DB, items *repos.ItemRepo, auctions *repos.AuctionRepo,
	accounts *repos.AccountRepo, regs *repos.RegistrationRepo, donors *repos.DonorRepo,
	lots *repos.LotRepo, store assets.Store) *ItemService {
	return &ItemService{db: db, Items: items, Auctions: auctions, Accounts: accounts,
		Registrations: regs, Donors: donors, Lots: lots, Assets: store}
}

type ItemInput struct {
	Name           string
	Description    string
	EstimatedValue float64
	CategoryID     string
	DonorID        string
}

// ImageUpload carries a pending image asset for create/update. A nil upload
// means "keep whatever is there".
type ImageUpload struct {
	MimeType string
	Data     io.Reader
}

// Create uploads the image first (outside the transaction; a commit failure
// after a successful upload leaves an orphaned asset, which is logged and
// accepted), then allocates the next SKU and inserts the item together with
// the auction's item-count bump.
func (s *ItemService) Create(accountID, auctionID string, in ItemInput, img *ImageUpload) (domain.Item, error) {
	if in.Name == "" {
		return domain.Item{}, domain.Validationf("item name is required")
	}
	if in.EstimatedValue < 0 {
		return domain.Item{}, domain.Validationf("estimated value must not be negative")
	}

	imageKey := ""
	if img != nil {
		key, err := s.Assets.Save(accountID, auctionID, img.MimeType, img.Data)
		if err != nil {
			return domain.Item{}, fmt.Errorf("upload image: %w", err)
		}
		imageKey = key
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return domain.Item{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := s.Auctions.Get(tx, accountID, auctionID); err != nil {
		return domain.Item{}, err
	}

	catName := ""
	if in.CategoryID != "" {
		cat, err := s.Auctions.CategoryByID(tx, auctionID, in.CategoryID)
		if err != nil {
			return domain.Item{}, err
		}
		catName = cat.Name
	}
	donorName := ""
	if in.DonorID != "" {
		d, err := s.Donors.Get(tx, accountID, in.DonorID)
		if err != nil {
			return domain.Item{}, err
		}
		donorName = d.Name
	}

	next, err := s.Accounts.AllocateSKU(tx, accountID)
	if err != nil {
		return domain.Item{}, err
	}

	it := domain.Item{
		ID:             uuid.NewString(),
		AuctionID:      auctionID,
		AccountID:      accountID,
		SKU:            fmt.Sprintf("%d", next),
		Name:           in.Name,
		Description:    in.Description,
		EstimatedValue: in.EstimatedValue,
		CategoryID:     in.CategoryID,
		CategoryName:   catName,
		DonorID:        in.DonorID,
		DonorName:      donorName,
		ImageKey:       imageKey,
	}
	if err := s.Items.Insert(tx, it); err != nil {
		return domain.Item{}, err
	}
	if err := s.Auctions.BumpItemCount(tx, auctionID, 1); err != nil {
		return domain.Item{}, err
	}
	if err := tx.Commit(); err != nil {
		if imageKey != "" {
			applog.Error(nil, "item.asset.orphaned", err, map[string]any{"key": imageKey})
		}
		return domain.Item{}, err
	}
	return it, nil
}

// Update replaces the mutable fields. A new image deletes the old asset and
// uploads the replacement before the document update commits; with no upload
// the existing reference is untouched.
func (s *ItemService) Update(accountID, auctionID, itemID string, in ItemInput, img *ImageUpload) (domain.Item, error) {
	if in.Name == "" {
		return domain.Item{}, domain.Validationf("item name is required")
	}
	if in.EstimatedValue < 0 {
		return domain.Item{}, domain.Validationf("estimated value must not be negative")
	}

	cur, err := s.Items.Get(s.Items.DB(), auctionID, itemID)
	if err != nil {
		return domain.Item{}, err
	}
	if cur.AccountID != accountID {
		return domain.Item{}, domain.NotFoundf("item %s", itemID)
	}
	if cur.IsDonation() {
		return domain.Item{}, domain.Conflictf("donation records cannot be edited")
	}

	imageKey := cur.ImageKey
	if img != nil {
		if cur.ImageKey != "" {
			if err := s.Assets.Delete(cur.ImageKey); err != nil && err != assets.ErrNotExist {
				applog.Error(nil, "item.asset.delete", err, map[string]any{"key": cur.ImageKey})
			}
		}
		key, err := s.Assets.Save(accountID, auctionID, img.MimeType, img.Data)
		if err != nil {
			return domain.Item{}, fmt.Errorf("upload image: %w", err)
		}
		imageKey = key
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return domain.Item{}, err
	}
	defer func() { _ = tx.Rollback() }()

	catName := ""
	if in.CategoryID != "" {
		cat, err := s.Auctions.CategoryByID(tx, auctionID, in.CategoryID)
		if err != nil {
			return domain.Item{}, err
		}
		catName = cat.Name
	}
	donorName := ""
	if in.DonorID != "" {
		d, err := s.Donors.Get(tx, accountID, in.DonorID)
		if err != nil {
			return domain.Item{}, err
		}
		donorName = d.Name
	}

	cur.Name = in.Name
	cur.Description = in.Description
	cur.EstimatedValue = in.EstimatedValue
	cur.CategoryID = in.CategoryID
	cur.CategoryName = catName
	cur.DonorID = in.DonorID
	cur.DonorName = donorName
	cur.ImageKey = imageKey

	if err := s.Items.UpdateFields(tx, cur); err != nil {
		return domain.Item{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Item{}, err
	}
	return cur, nil
}

// Delete refuses to remove sold items: once a winning bid is recorded the
// record is immutable with respect to deletion. The asset delete afterwards
// is best-effort; a missing blob is not user-actionable.
func (s *ItemService) Delete(accountID, auctionID, itemID string) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	it, err := s.Items.Get(tx, auctionID, itemID)
	if err != nil {
		return err
	}
	if it.AccountID != accountID {
		return domain.NotFoundf("item %s", itemID)
	}
	if it.Sold() {
		return domain.Conflictf("item %s has a recorded winning bid", it.SKU)
	}
	if err := s.Items.Delete(tx, auctionID, itemID); err != nil {
		return err
	}
	if err := s.Auctions.BumpItemCount(tx, auctionID, -1); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	if it.ImageKey != "" {
		if err := s.Assets.Delete(it.ImageKey); err != nil && err != assets.ErrNotExist {
			applog.Error(nil, "item.asset.delete", err, map[string]any{"key": it.ImageKey})
		}
	}
	return nil
}

// RecordWinningBid sets the sale price, the winner id and the denormalized
// winner snapshot. The winner must hold a registration in the auction; the
// registration read and the item write share one transaction.
func (s *ItemService) RecordWinningBid(accountID, auctionID, itemID string, amount float64, patronID string) (domain.Item, error) {
	if amount <= 0 {
		return domain.Item{}, domain.Validationf("bid amount must be positive")
	}
	if patronID == "" {
		return domain.Item{}, domain.Validationf("winner is required")
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return domain.Item{}, err
	}
	defer func() { _ = tx.Rollback() }()

	it, err := s.Items.Get(tx, auctionID, itemID)
	if err != nil {
		return domain.Item{}, err
	}
	if it.AccountID != accountID {
		return domain.Item{}, domain.NotFoundf("item %s", itemID)
	}
	if it.IsDonation() {
		return domain.Item{}, domain.Conflictf("donation records already carry their amount")
	}

	reg, err := s.Registrations.ByPatron(tx, auctionID, patronID)
	if err != nil {
		return domain.Item{}, domain.Conflictf("patron %s is not registered for this auction", patronID)
	}
	var winnerName string
	if err := tx.Get(&winnerName, `SELECT name FROM patrons WHERE id = ?`, patronID); err != nil {
		return domain.Item{}, err
	}

	if err := s.Items.SetWinningBid(tx, auctionID, itemID, amount, patronID, winnerName, reg.BidderNumber); err != nil {
		return domain.Item{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Item{}, err
	}

	it.WinningBid = amount
	it.WinningBidder = patronID
	it.WinnerName = winnerName
	it.WinnerBidderNumber = reg.BidderNumber
	return it, nil
}

// MarkPaid flips a sold item to paid. Unsold items cannot be paid for; the
// transition is one-way, like the sale itself.
func (s *ItemService) MarkPaid(accountID, auctionID, itemID, method string) error {
	if method == "" {
		return domain.Validationf("payment method is required")
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	it, err := s.Items.Get(tx, auctionID, itemID)
	if err != nil {
		return err
	}
	if it.AccountID != accountID {
		return domain.NotFoundf("item %s", itemID)
	}
	if !it.Sold() {
		return domain.Conflictf("item %s has no recorded winning bid", it.SKU)
	}
	if it.Paid {
		return domain.Conflictf("item %s is already paid", it.SKU)
	}
	if err := s.Items.MarkPaid(tx, auctionID, itemID, method); err != nil {
		return err
	}
	return tx.Commit()
}

// MoveToLot attaches the item to a lot in the same auction; an empty lotID
// detaches it.
func (s *ItemService) MoveToLot(accountID, auctionID, itemID, lotID string) error {
	it, err := s.Items.Get(s.Items.DB(), auctionID, itemID)
	if err != nil {
		return err
	}
	if it.AccountID != accountID {
		return domain.NotFoundf("item %s", itemID)
	}
	if lotID != "" {
		if _, err := s.Lots.Get(auctionID, lotID); err != nil {
			return domain.Conflictf("lot %s does not belong to this auction", lotID)
		}
	}
	return s.Items.SetLot(auctionID, itemID, lotID)
}
