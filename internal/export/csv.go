// Package export renders the read-only catalog/report surfaces: CSV files
// for spreadsheets and self-contained HTML documents for print. Everything
// here consumes data the mutation services produced; nothing writes back.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"gavelbook/internal/domain"
)

func money(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func WritePatronsCSV(w io.Writer, patrons []domain.Patron) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Name", "Email", "Phone", "Address", "Notes"}); err != nil {
		return err
	}
	for _, p := range patrons {
		if err := cw.Write([]string{p.Name, p.Email, p.Phone, p.Address, p.Notes}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteDonorsCSV(w io.Writer, donors []domain.Donor) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Name", "Type", "Email", "Phone", "Address"}); err != nil {
		return err
	}
	for _, d := range donors {
		if err := cw.Write([]string{d.Name, d.Type, d.Email, d.Phone, d.Address}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteItemsCSV lists the real items of an auction; donation pseudo-items
// are filtered out by the SKU prefix rule.
func WriteItemsCSV(w io.Writer, items []domain.Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"SKU", "Name", "Category", "Donor", "Estimated Value"}); err != nil {
		return err
	}
	for _, it := range items {
		if it.IsDonation() {
			continue
		}
		if err := cw.Write([]string{it.SKU, it.Name, it.CategoryName, it.DonorName, money(it.EstimatedValue)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteWinningBidsCSV lists sold items with their winners and closes with a
// Total,,<amount> footer row.
func WriteWinningBidsCSV(w io.Writer, items []domain.Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"SKU", "Item", "Winner", "Bidder #", "Winning Bid", "Paid"}); err != nil {
		return err
	}
	total := 0.0
	for _, it := range items {
		if it.IsDonation() || !it.Sold() {
			continue
		}
		paid := "no"
		if it.Paid {
			paid = "yes"
		}
		if err := cw.Write([]string{it.SKU, it.Name, it.WinnerName,
			strconv.Itoa(it.WinnerBidderNumber), money(it.WinningBid), paid}); err != nil {
			return err
		}
		total += it.WinningBid
	}
	if err := cw.Write([]string{"Total", "", money(total)}); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteDonationsCSV lists cash donations and closes with a Total footer.
func WriteDonationsCSV(w io.Writer, items []domain.Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"SKU", "Patron", "Amount"}); err != nil {
		return err
	}
	total := 0.0
	for _, it := range items {
		if !it.IsDonation() {
			continue
		}
		if err := cw.Write([]string{it.SKU, it.WinnerName, money(it.WinningBid)}); err != nil {
			return err
		}
		total += it.WinningBid
	}
	if err := cw.Write([]string{"Total", "", money(total)}); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteFullReportCSV is the combined auction report: every record, donation
// or item, with its sale state, plus the grand total of recorded proceeds.
func WriteFullReportCSV(w io.Writer, auction domain.Auction, items []domain.Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Auction", auction.Name, auction.Type, auction.Status}); err != nil {
		return err
	}
	if err := cw.Write([]string{"SKU", "Name", "Category", "Winner", "Amount", "Paid"}); err != nil {
		return err
	}
	total := 0.0
	for _, it := range items {
		amount := ""
		if it.Sold() {
			amount = money(it.WinningBid)
			total += it.WinningBid
		}
		paid := "no"
		if it.Paid || it.IsDonation() {
			paid = "yes"
		}
		if err := cw.Write([]string{it.SKU, it.Name, it.CategoryName, it.WinnerName, amount, paid}); err != nil {
			return err
		}
	}
	if err := cw.Write([]string{"Total", "", money(total)}); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

