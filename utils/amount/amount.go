package amount

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"

	"hbl-card-payment/domain/constants"
	gwErrors "hbl-card-payment/utils/errors"
)

// MinorUnitsWidth is the fixed width of the gateway's amountText field.
const MinorUnitsWidth = 12

var hundred = decimal.NewFromInt(100)

// FormatMinorUnits renders amount as zero-padded cents. Sub-cent digits are
// truncated toward zero, never rounded. The zero value formats as zero.
func FormatMinorUnits(amount decimal.Decimal) (string, error) {
	if amount.IsNegative() {
		return "", fmt.Errorf("%w: negative amount", gwErrors.ErrInvalidAmount)
	}

	padded := amount.Mul(hundred).Truncate(0).String()
	if len(padded) < MinorUnitsWidth {
		padded = strings.Repeat("0", MinorUnitsWidth-len(padded)) + padded
	}
	if len(padded) > MinorUnitsWidth {
		return "", fmt.Errorf("%w: more than %d digits in minor units", gwErrors.ErrInvalidAmount, MinorUnitsWidth)
	}

	return padded, nil
}

// MinorUnits returns the truncated amount in cents.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Truncate(0).IntPart()
}

// DecimalString renders the plain decimal amount the gateway expects next to
// amountText: at least one fractional digit, no trailing zeros ("100.0", "1234.56").
func DecimalString(amount decimal.Decimal) string {
	s := amount.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// ParseAmount parses caller input such as "1234.56".
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a decimal", gwErrors.ErrInvalidAmount, s)
	}
	return d, nil
}

// Display formats amount for logs and alerts, e.g. "NPR 1,234.56".
func Display(amount decimal.Decimal) string {
	ac := accounting.DefaultAccounting(constants.PacoCurrencyCode+" ", constants.PacoDecimalPlaces)
	return ac.FormatMoney(amount.InexactFloat64())
}

// DisplayMinorUnits formats a cent count with thousands separators.
func DisplayMinorUnits(amount decimal.Decimal) string {
	return humanize.Comma(MinorUnits(amount))
}
