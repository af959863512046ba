package utils

import (
	"SolidarityHospital/models"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidAmount is returned for amounts that are not non-negative decimals with at most
// two fractional digits.
var ErrInvalidAmount = errors.New("amount must be a decimal number with at most two decimal places")

// ParseCents converts a decimal amount such as "50", "50.5" or "50.00" to cents.
func ParseCents(amount string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, ErrInvalidAmount
	}
	whole, frac, hasFrac := strings.Cut(amount, ".")
	if whole == "" || (hasFrac && (frac == "" || len(frac) > 2)) {
		return 0, ErrInvalidAmount
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units < 0 || strings.HasPrefix(whole, "+") {
		return 0, ErrInvalidAmount
	}
	var cents int64
	if hasFrac {
		if len(frac) == 1 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil || strings.HasPrefix(frac, "+") || strings.HasPrefix(frac, "-") {
			return 0, ErrInvalidAmount
		}
	}
	return units*100 + cents, nil
}

// FormatDollars renders cents as "$80.00".
func FormatDollars(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// FormatAmount renders an amount in its currency: "$100.00" or "2000 FCFA".
func FormatAmount(amount, currency string) string {
	if currency == models.CurrencyXAF {
		return strings.TrimSpace(amount) + " FCFA"
	}
	cents, err := ParseCents(amount)
	if err != nil {
		return "$" + strings.TrimSpace(amount)
	}
	return FormatDollars(cents)
}
