package export

import (
	"embed"
	"io/fs"
	"net/http"
	"sort"

	html "github.com/gofiber/template/html/v2"

	"gavelbook/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Engine returns the view engine for the HTML export documents (catalog,
// receipt), backed by the embedded templates.
func Engine() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err) // embed is broken at build time, not recoverable
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}

// CategoryGroup is one catalog section: a category and its items in SKU
// order.
type CategoryGroup struct {
	Name  string
	Items []domain.Item
}

// CatalogData feeds the printable catalog template. Donations never appear
// in a catalog.
type CatalogData struct {
	Auction domain.Auction
	Groups  []CategoryGroup
}

func BuildCatalog(auction domain.Auction, items []domain.Item) CatalogData {
	byCat := map[string][]domain.Item{}
	for _, it := range items {
		if it.IsDonation() {
			continue
		}
		name := it.CategoryName
		if name == "" {
			name = "Uncategorized"
		}
		byCat[name] = append(byCat[name], it)
	}
	names := make([]string, 0, len(byCat))
	for name := range byCat {
		names = append(names, name)
	}
	sort.Strings(names)

	data := CatalogData{Auction: auction}
	for _, name := range names {
		data.Groups = append(data.Groups, CategoryGroup{Name: name, Items: byCat[name]})
	}
	return data
}

// ReceiptLine is one row on a patron's receipt.
type ReceiptLine struct {
	SKU      string
	Name     string
	Amount   float64
	Donation bool
}

// ReceiptData feeds the printable receipt for a patron's winnings and
// donations in one auction.
type ReceiptData struct {
	Auction      domain.Auction
	Patron       domain.Patron
	BidderNumber int
	Lines        []ReceiptLine
	Total        float64
}

func BuildReceipt(auction domain.Auction, patron domain.Patron, bidderNumber int, won []domain.Item) ReceiptData {
	data := ReceiptData{Auction: auction, Patron: patron, BidderNumber: bidderNumber}
	for _, it := range won {
		data.Lines = append(data.Lines, ReceiptLine{
			SKU:      it.SKU,
			Name:     it.Name,
			Amount:   it.WinningBid,
			Donation: it.IsDonation(),
		})
		data.Total += it.WinningBid
	}
	return data
}
