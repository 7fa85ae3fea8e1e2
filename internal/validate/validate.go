package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reType  = regexp.MustCompile(`^(Live|Silent|Hybrid)$`)
	reStat  = regexp.MustCompile(`^(upcoming|active|completed)$`)
	reDonor = regexp.MustCompile(`^(individual|business)$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 80 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a resource identifier (account/auction/item/patron ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 80 {
		return "", false
	}
	return s, true
}

// Amount parses a money amount; ok only if strictly positive.
func Amount(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f <= 0 {
		return 0, false
	}
	return f, true
}

// BidderNumber parses a bidder number; ok only for 1..99999.
func BidderNumber(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 99999 {
		return 0, false
	}
	return n, true
}

// AuctionType validates the auction type enum.
func AuctionType(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reType.MatchString(s)
}

// AuctionStatus validates the auction status enum.
func AuctionStatus(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reStat.MatchString(s)
}

// DonorType validates the donor type enum.
func DonorType(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reDonor.MatchString(s)
}

// Password enforces a length window plus character classes for signup.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 64 {
		return false
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}
