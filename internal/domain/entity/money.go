package entity

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// money renders a decimal as a JSON number with exactly two fraction digits
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}
