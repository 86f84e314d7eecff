package round

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders money for player messages in one configured currency and locale
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewFormatter parses a BCP 47 locale and an ISO 4217 currency code
func NewFormatter(locale, code string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("%s: locale %q: %w", ErrMsgInvalidFormatConfig, locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("%s: currency %q: %w", ErrMsgInvalidFormatConfig, code, err)
	}
	return &Formatter{printer: message.NewPrinter(tag), unit: unit}, nil
}

// Amount formats d with the currency symbol
func (f *Formatter) Amount(d decimal.Decimal) string {
	return f.printer.Sprint(currency.Symbol(f.unit.Amount(d.InexactFloat64())))
}

// Message builds the player-facing summary of a round
func (f *Formatter) Message(hasWin bool, prizeName string, wonAmount, balance decimal.Decimal) string {
	switch {
	case hasWin && wonAmount.IsPositive():
		return f.printer.Sprintf(MsgCashWin, f.Amount(wonAmount), f.Amount(balance))
	case hasWin:
		return f.printer.Sprintf(MsgPhysicalWin, prizeName, f.Amount(balance))
	default:
		return f.printer.Sprintf(MsgLoss, f.Amount(balance))
	}
}
