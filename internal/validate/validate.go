package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reEmail   = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID      = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reCountry = regexp.MustCompile(`^[A-Za-z][A-Za-z .'-]{1,39}$`)
	reCode    = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)
	reExpiry  = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	reCVC     = regexp.MustCompile(`^[0-9]{3}$`)
	reQ       = regexp.MustCompile(`^[A-Za-z0-9 _'\-]{1,50}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// ID validates a simple resource identifier (artwork/order/line ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

func Country(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reCountry.MatchString(s)
}

// Name validates a displayable customer name.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

// Qty clamps a quantity string to 1..10.
func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	}
	return n
}

func QtyInt(n int) int {
	if n < 1 {
		return 1
	}
	if n > 10 {
		return 10
	}
	return n
}

// DiscountCode normalizes and checks the code shape. Unknown codes are a
// pricing no-op, so this only rejects garbage input.
func DiscountCode(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", true
	}
	return s, reCode.MatchString(s)
}

// CardNumber strips spaces and requires exactly 16 digits.
func CardNumber(s string) (string, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if len(s) != 16 {
		return "", false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return s, true
}

func CardExpiry(s string) bool { return reExpiry.MatchString(strings.TrimSpace(s)) }

func CardCVC(s string) bool { return reCVC.MatchString(strings.TrimSpace(s)) }

// Q validates a catalog search query.
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, reQ.MatchString(s)
}

func Password(s string) bool {
	l := len(s)
	return l >= 8 && l <= 64
}
