package models

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// LenientDecimal decodes optional monetary input. Absent, null, empty or
// non-numeric values decode to zero instead of failing the request.
type LenientDecimal struct {
	decimal.Decimal
}

func (d *LenientDecimal) UnmarshalJSON(data []byte) error {
	d.Decimal = decimal.Zero

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	switch v := raw.(type) {
	case float64:
		parsed, err := decimal.NewFromString(string(data))
		if err != nil {
			parsed = decimal.NewFromFloat(v)
		}
		d.Decimal = parsed
	case string:
		parsed, err := decimal.NewFromString(normalizeSeparators(strings.TrimSpace(v)))
		if err == nil {
			d.Decimal = parsed
		}
	}
	return nil
}

// normalizeSeparators accepts pt-BR input such as "1.234,56" as well as
// "1,234.56": the last separator is the decimal one, the other groups thousands.
func normalizeSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	if lastComma > lastDot {
		return strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
	}
	return strings.ReplaceAll(s, ",", "")
}

func (d LenientDecimal) MarshalJSON() ([]byte, error) {
	return d.Decimal.MarshalJSON()
}
