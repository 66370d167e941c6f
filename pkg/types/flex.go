package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FlexInt is an integer that accepts both JSON numbers and numeric strings.
// Browser clients send quantity fields in either form.
type FlexInt struct {
	Value int
	Set   bool
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	raw := string(trimmed)
	if raw[0] == '"' {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("invalid quoted integer %s", raw)
		}
		raw = strings.TrimSpace(unquoted)
		if raw == "" {
			return nil
		}
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid integer %q", raw)
	}
	f.Value = value
	f.Set = true
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// FlexDecimal is a decimal that accepts both JSON numbers and numeric
// strings. The zero value is "not provided".
type FlexDecimal struct {
	Value decimal.Decimal
	Set   bool
}

func (f *FlexDecimal) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	raw := string(trimmed)
	if raw[0] == '"' {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return fmt.Errorf("invalid quoted decimal %s", raw)
		}
		raw = strings.TrimSpace(unquoted)
		if raw == "" {
			return nil
		}
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("invalid decimal %q", raw)
	}
	f.Value = value
	f.Set = true
	return nil
}

func (f FlexDecimal) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
