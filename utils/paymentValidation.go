package utils

import (
	"SolidarityHospital/models"
	"errors"
	"regexp"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	cardNumberPattern  = regexp.MustCompile(`^\d{16}$`)
	expiryPattern      = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvPattern         = regexp.MustCompile(`^\d{3,4}$`)
	mobileMoneyPattern = regexp.MustCompile(`^(?:\+237)?6[0-9]{8}$`)
)

// ErrUnknownPaymentMethod is returned for an empty or unsupported payment method.
var ErrUnknownPaymentMethod = errors.New("please select a payment method")

// PaymentMethods lists the accepted payment methods.
var PaymentMethods = []string{models.MethodCreditCard, models.MethodMTN, models.MethodOrange, models.MethodCash}

// StripSpaces removes every whitespace rune from s.
func StripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// IsMobileMoney reports whether method is debited through a phone prompt.
func IsMobileMoney(method string) bool {
	return method == models.MethodMTN || method == models.MethodOrange
}

// ValidatePaymentDetails applies the field rules of the selected method.
func ValidatePaymentDetails(details models.PaymentDetails) error {
	switch details.Method {
	case models.MethodCreditCard:
		card := StripSpaces(details.CardNumber)
		expiry := strings.TrimSpace(details.ExpiryDate)
		cvv := strings.TrimSpace(details.CVV)
		return validation.Errors{
			"cardNumber": validation.Validate(card, validation.Required, validation.Match(cardNumberPattern).Error("please enter a valid 16-digit card number")),
			"expiryDate": validation.Validate(expiry, validation.Required, validation.Match(expiryPattern).Error("please enter a valid expiry date (MM/YY)")),
			"cvv":        validation.Validate(cvv, validation.Required, validation.Match(cvvPattern).Error("please enter a valid CVV")),
		}.Filter()
	case models.MethodMTN, models.MethodOrange:
		phone := StripSpaces(details.PhoneNumber)
		return validation.Errors{
			"phoneNumber": validation.Validate(phone, validation.Required, validation.Match(mobileMoneyPattern).Error("please enter a valid Cameroon phone number")),
		}.Filter()
	case models.MethodCash:
		return nil
	default:
		return validation.Errors{"paymentMethod": ErrUnknownPaymentMethod}
	}
}

// DefaultAmount returns the amount and currency charged for a booking paid with method.
func DefaultAmount(method string) (amount, currency string) {
	if IsMobileMoney(method) {
		return "2000", models.CurrencyXAF
	}
	return "100.00", models.CurrencyUSD
}

// CardLast4 returns the last four digits of a card number, ignoring whitespace.
func CardLast4(cardNumber string) string {
	card := StripSpaces(cardNumber)
	if len(card) < 4 {
		return card
	}
	return card[len(card)-4:]
}

// MaskCard renders the last four digits in the printed card layout.
func MaskCard(last4 string) string {
	return "**** **** **** " + last4
}
