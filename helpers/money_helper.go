package helpers

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount for display in notifications, with thousands
// separators and the FCFA currency suffix, e.g. "50 000 FCFA".
func FormatMoney(amount decimal.Decimal) string {
	return groupThousands(amount.Round(0).String()) + " FCFA"
}

func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	groups = append([]string{s}, groups...)

	out := strings.Join(groups, " ")
	if neg {
		out = "-" + out
	}
	return out
}
