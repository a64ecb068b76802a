// This code is available on the terms of the project LICENSE.md file,
// also available online at https://blueoakcouncil.org/license/1.0.0.

package cs

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Denomination is a unit and its conversion factor from the atomic unit.
type Denomination struct {
	Unit             string
	ConversionFactor uint64
}

// UnitInfo conveys information about the units and available denominations
// for an asset.
type UnitInfo struct {
	// AtomicUnit is the name associated with the asset's integral unit.
	AtomicUnit string
	// Conventional is the conventionally-used denomination.
	Conventional Denomination
}

// ConventionalString converts the quantity of atomic units to conventional
// units and formats it with full precision, trailing zeros included.
func (ui UnitInfo) ConventionalString(v uint64) string {
	c := ui.Conventional.ConversionFactor
	prec := int(math.Round(math.Log10(float64(c))))
	whole, frac := v/c, v%c
	if prec == 0 {
		return strconv.FormatUint(whole, 10)
	}
	return fmt.Sprintf("%d.%0*d", whole, prec, frac)
}

// XMRUnitInfo describes Monero's units. One XMR is 1e12 atomic units
// (piconero).
var XMRUnitInfo = UnitInfo{
	AtomicUnit: "Atoms",
	Conventional: Denomination{
		Unit:             "XMR",
		ConversionFactor: 1e12,
	},
}

// Amount is a quantity of atomic units.
type Amount uint64

// String formats the Amount in conventional units with the unit suffix.
func (a Amount) String() string {
	return XMRUnitInfo.ConventionalString(uint64(a)) + " " + XMRUnitInfo.Conventional.Unit
}

// ParseAmount parses a conventional-unit decimal string, e.g. "1.25", into
// atomic units. The string may carry more precision than the atomic unit
// only if the excess digits are zero.
func ParseAmount(s string) (Amount, error) {
	c := XMRUnitInfo.Conventional.ConversionFactor
	prec := int(math.Round(math.Log10(float64(c))))
	wholeStr, fracStr, _ := strings.Cut(s, ".")
	if wholeStr == "" {
		wholeStr = "0"
	}
	whole, err := strconv.ParseUint(wholeStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if len(fracStr) > prec {
		if strings.Trim(fracStr[prec:], "0") != "" {
			return 0, fmt.Errorf("amount %q exceeds atomic precision", s)
		}
		fracStr = fracStr[:prec]
	}
	var frac uint64
	if fracStr != "" {
		frac, err = strconv.ParseUint(fracStr, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q: %w", s, err)
		}
		for i := len(fracStr); i < prec; i++ {
			frac *= 10
		}
	}
	return Amount(whole*c + frac), nil
}
