package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidWeight is returned for weight strings that cannot be turned
// into a positive whole number of grams.
var ErrInvalidWeight = errors.New("invalid weight")

const (
	UnitKilogram = "kg"
	UnitGram     = "g"
)

// MaxGrams bounds every weight and stock amount (one million tonnes), so
// products and sums of them stay well inside int64.
const MaxGrams int64 = 1_000_000_000_000

var maxGrams = decimal.NewFromInt(MaxGrams)

// Weight is a per-unit line item weight such as "0.25kg" or "250g".
// The amount is held in grams; Unit remembers how the client wrote it so
// the item reads back the way it was submitted.
type Weight struct {
	Grams int64
	Unit  string
}

// ParseWeight parses "<number><unit>" where unit is kg or g (case-insensitive,
// optional space before the unit).
func ParseWeight(s string) (Weight, error) {
	raw := strings.ToLower(strings.TrimSpace(s))

	var unit string
	var factor int64
	switch {
	case strings.HasSuffix(raw, UnitKilogram):
		unit, factor = UnitKilogram, 1000
	case strings.HasSuffix(raw, UnitGram):
		unit, factor = UnitGram, 1
	default:
		return Weight{}, fmt.Errorf("%w: %q must end in kg or g", ErrInvalidWeight, s)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(strings.TrimSuffix(raw, unit)))
	if err != nil {
		return Weight{}, fmt.Errorf("%w: %q is not a number", ErrInvalidWeight, s)
	}

	grams := amount.Mul(decimal.NewFromInt(factor))
	if !grams.IsInteger() {
		return Weight{}, fmt.Errorf("%w: %q is finer than one gram", ErrInvalidWeight, s)
	}
	if grams.Sign() <= 0 {
		return Weight{}, fmt.Errorf("%w: %q must be greater than zero", ErrInvalidWeight, s)
	}
	if grams.GreaterThan(maxGrams) {
		return Weight{}, fmt.Errorf("%w: %q is more than %d grams", ErrInvalidWeight, s, MaxGrams)
	}

	return Weight{Grams: grams.IntPart(), Unit: unit}, nil
}

func (w Weight) String() string {
	if w.Unit == UnitGram {
		return strconv.FormatInt(w.Grams, 10) + UnitGram
	}
	return decimal.New(w.Grams, -3).String() + UnitKilogram
}

func (w Weight) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

func (w *Weight) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: weight must be a string like \"0.25kg\"", ErrInvalidWeight)
	}
	parsed, err := ParseWeight(s)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}
