package export_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gavelbook/internal/domain"
	"gavelbook/internal/export"
)

func sampleItems() []domain.Item {
	return []domain.Item{
		{SKU: "1", Name: "Signed jersey", CategoryName: "Sports", EstimatedValue: 200,
			WinningBid: 150, WinningBidder: "pat-ann", WinnerName: "Ann Rivers", WinnerBidderNumber: 101, Paid: true},
		{SKU: "2", Name: "Wine basket", CategoryName: "Dining", EstimatedValue: 60},
		{SKU: "DON-3", Name: "Cash donation from Bo Chandler", CategoryName: domain.DonationCategoryName,
			EstimatedValue: 25, WinningBid: 25, WinningBidder: "pat-bo", WinnerName: "Bo Chandler"},
	}
}

func parse(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	r := csv.NewReader(buf)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteItemsCSV_SkipsDonations(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteItemsCSV(&buf, sampleItems()))

	rows := parse(t, &buf)
	require.Len(t, rows, 3) // header + 2 real items
	require.Equal(t, "1", rows[1][0])
	require.Equal(t, "2", rows[2][0])
	require.NotContains(t, buf.String(), "DON-3")
}

func TestWriteWinningBidsCSV_TotalFooter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteWinningBidsCSV(&buf, sampleItems()))

	rows := parse(t, &buf)
	// header, one sold item (the unsold and the donation are skipped), footer
	require.Len(t, rows, 3)
	require.Equal(t, []string{"SKU", "Item", "Winner", "Bidder #", "Winning Bid", "Paid"}, rows[0])
	require.Equal(t, []string{"1", "Signed jersey", "Ann Rivers", "101", "150.00", "yes"}, rows[1])
	require.Equal(t, []string{"Total", "", "150.00"}, rows[2])
}

func TestWriteDonationsCSV_TotalFooter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteDonationsCSV(&buf, sampleItems()))

	rows := parse(t, &buf)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"DON-3", "Bo Chandler", "25.00"}, rows[1])
	require.Equal(t, []string{"Total", "", "25.00"}, rows[2])
}

func TestWriteFullReportCSV(t *testing.T) {
	auction := domain.Auction{Name: "Spring Gala", Type: "Silent", Status: "active"}
	var buf bytes.Buffer
	require.NoError(t, export.WriteFullReportCSV(&buf, auction, sampleItems()))

	rows := parse(t, &buf)
	require.Equal(t, []string{"Auction", "Spring Gala", "Silent", "active"}, rows[0])
	last := rows[len(rows)-1]
	require.Equal(t, "Total", last[0])
	require.Equal(t, "175.00", last[2]) // 150 sale + 25 donation

	// the unsold item shows with an empty amount
	require.Equal(t, "", rows[3][4])
}

func TestWritePatronsCSV(t *testing.T) {
	var buf bytes.Buffer
	err := export.WritePatronsCSV(&buf, []domain.Patron{
		{Name: "Ann Rivers", Email: "ann@example.test", Phone: "555-0101"},
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(buf.String(), "Name,Email,Phone,Address,Notes\n"))
	require.Contains(t, buf.String(), "Ann Rivers,ann@example.test,555-0101")
}

func TestBuildCatalog(t *testing.T) {
	items := append(sampleItems(), domain.Item{SKU: "4", Name: "Mystery box", EstimatedValue: 10})
	data := export.BuildCatalog(domain.Auction{Name: "Spring Gala"}, items)

	var names []string
	for _, g := range data.Groups {
		names = append(names, g.Name)
		for _, it := range g.Items {
			require.False(t, it.IsDonation(), "donations must not reach the catalog")
		}
	}
	require.Equal(t, []string{"Dining", "Sports", "Uncategorized"}, names)
}

func TestBuildReceipt(t *testing.T) {
	items := []domain.Item{
		{SKU: "1", Name: "Signed jersey", WinningBid: 150},
		{SKU: "DON-3", Name: "Cash donation from Ann Rivers", WinningBid: 25},
	}
	data := export.BuildReceipt(domain.Auction{Name: "Spring Gala"},
		domain.Patron{Name: "Ann Rivers"}, 101, items)

	require.Len(t, data.Lines, 2)
	require.Equal(t, 175.0, data.Total)
	require.False(t, data.Lines[0].Donation)
	require.True(t, data.Lines[1].Donation)
}
