package shelters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Shelter is one entry of the shelter app's published list.
type Shelter struct {
	Name      string        `json:"name"`
	Address   string        `json:"address"`
	Longitude Coordinate    `json:"longitude"`
	Latitude  Coordinate    `json:"latitude"`
	Features  []FeatureCode `json:"features"`
	Booking   Booking       `json:"booking"`
}

// FeatureCode is a numeric feature id. The API has published them both as
// JSON numbers and as strings, so both decode to the same value.
type FeatureCode int

func (f *FeatureCode) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		b = []byte(s)
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return fmt.Errorf("feature code %s: %w", b, err)
	}
	*f = FeatureCode(n)
	return nil
}

// Booking is the shelter's booking flag. It decodes from a number, a
// numeric string or a boolean.
type Booking int

func (b *Booking) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true":
		*b = 1
		return nil
	case "false":
		*b = 0
		return nil
	}
	var code FeatureCode
	if err := code.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("booking: %w", err)
	}
	*b = Booking(code)
	return nil
}

// Coordinate keeps the textual form of a longitude or latitude so output
// reproduces the source digits exactly.
type Coordinate string

func (c *Coordinate) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*c = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Coordinate(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("coordinate %s: %w", b, err)
	}
	*c = Coordinate(n.String())
	return nil
}

// Decode reads a JSON array of shelters.
func Decode(r io.Reader) ([]Shelter, error) {
	var list []Shelter
	if err := json.NewDecoder(r).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode shelters: %w", err)
	}
	return list, nil
}
