package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID identifies a remote record. The storefront API returns ids as JSON
// numbers on some endpoints and as strings on others.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}

	*id = ID(n.String())
	return nil
}

// numeric ids go back out as numbers so the remote API sees what it sent.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.isNumeric() {
		return []byte(id), nil
	}

	return json.Marshal(string(id))
}

func (id ID) String() string {
	return string(id)
}

func (id ID) isNumeric() bool {
	if id == "" {
		return false
	}

	_, err := strconv.ParseInt(string(id), 10, 64)
	return err == nil
}

// Amount is a monetary value decoded from either a JSON number or a numeric
// string (postgres numeric columns are serialized as strings).
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	if bytes.Equal(b, []byte("null")) {
		*a = 0
		return nil
	}

	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*a = 0
			return nil
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("amount %q is not a number", raw)
	}

	*a = Amount(v)
	return nil
}

func (a Amount) Float64() float64 {
	return float64(a)
}
