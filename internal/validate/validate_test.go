package validate_test

import (
	"testing"

	"gavelbook/internal/validate"
)

func TestEmail(t *testing.T) {
	if _, ok := validate.Email("ann@example.test"); !ok {
		t.Fatal("valid email rejected")
	}
	for _, bad := range []string{"", "not-an-email", "a@b", "  "} {
		if _, ok := validate.Email(bad); ok {
			t.Fatalf("accepted %q", bad)
		}
	}
}

func TestAmount(t *testing.T) {
	if v, ok := validate.Amount(" 19.50 "); !ok || v != 19.5 {
		t.Fatalf("got %v %v", v, ok)
	}
	for _, bad := range []string{"0", "-5", "abc", ""} {
		if _, ok := validate.Amount(bad); ok {
			t.Fatalf("accepted %q", bad)
		}
	}
}

func TestBidderNumber(t *testing.T) {
	if n, ok := validate.BidderNumber("101"); !ok || n != 101 {
		t.Fatalf("got %v %v", n, ok)
	}
	for _, bad := range []string{"0", "-1", "100000", "x"} {
		if _, ok := validate.BidderNumber(bad); ok {
			t.Fatalf("accepted %q", bad)
		}
	}
}

func TestEnums(t *testing.T) {
	if _, ok := validate.AuctionType("Silent"); !ok {
		t.Fatal("Silent rejected")
	}
	if _, ok := validate.AuctionType("silent"); ok {
		t.Fatal("case-insensitive type accepted")
	}
	if _, ok := validate.AuctionStatus("active"); !ok {
		t.Fatal("active rejected")
	}
	if _, ok := validate.DonorType("business"); !ok {
		t.Fatal("business rejected")
	}
}

func TestPassword(t *testing.T) {
	if !validate.Password("Str0ngEnough") {
		t.Fatal("good password rejected")
	}
	for _, bad := range []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"} {
		if validate.Password(bad) {
			t.Fatalf("accepted %q", bad)
		}
	}
}
