package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	rePhone = regexp.MustCompile(`^[0-9+()\s-]{7,20}$`)
	reQ     = regexp.MustCompile(`^[A-Za-z0-9 _'\\-]{1,50}$`)

	reOrderStatus  = regexp.MustCompile(`^(pending|processing|shipped|delivered|cancelled|returned)$`)
	reTicketStatus = regexp.MustCompile(`^(open|in_progress|closed)$`)
	reRole         = regexp.MustCompile(`^(admin|user)$`)
	reFrequency    = regexp.MustCompile(`^(daily|weekly|monthly)$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && rePhone.MatchString(s)
}

// Q validates a search query: trims, enforces allowed characters and max length
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

// Qty parses a signed quantity delta; malformed input falls back to zero.
func Qty(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	if n > 50 {
		return 50
	}
	if n < -50 {
		return -50
	}
	return n
}

// ID parses a numeric resource identifier (products, orders, users).
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil && n > 0
}

func OrderStatus(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	return s, reOrderStatus.MatchString(s)
}

func TicketStatus(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	return s, reTicketStatus.MatchString(s)
}

func Role(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	return s, reRole.MatchString(s)
}

func Frequency(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	return s, reFrequency.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 60 {
		return "", false
	}
	return s, true
}

// Password enforces a simple length window for login checks.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 20 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}
