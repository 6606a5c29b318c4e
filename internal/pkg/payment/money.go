package payment

import "github.com/shopspring/decimal"

var minorUnitFactor = decimal.NewFromInt(100)

// toMinorUnits converts a decimal amount to gateway minor units (kobo).
func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(minorUnitFactor).Round(0).IntPart()
}

// fromMinorUnits converts gateway minor units back to a decimal amount.
func fromMinorUnits(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Div(minorUnitFactor)
}
