package docked

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// RemarkKind discriminates the variants a Remark can hold.
type RemarkKind int

const (
	KindNull RemarkKind = iota
	KindNumber
	KindString
)

// Remark is one scalar docking annotation: a number, a string, or null.
// Remarks read from heterogeneous file formats carry different key sets, so
// the null variant is what remark equalization back-fills missing keys with.
type Remark struct {
	kind RemarkKind
	num  float64
	str  string
}

// Null returns the null remark value.
func Null() Remark {
	return Remark{kind: KindNull}
}

// Number returns a numeric remark value.
func Number(v float64) Remark {
	return Remark{kind: KindNumber, num: v}
}

// Int returns a numeric remark value from an integer.
func Int(v int) Remark {
	return Number(float64(v))
}

// Str returns a string remark value.
func Str(s string) Remark {
	return Remark{kind: KindString, str: s}
}

// Parse interprets s as a number when possible, otherwise as a string.
// An empty string parses as null.
func Parse(s string) Remark {
	if s == "" {
		return Null()
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return Number(v)
	}
	return Str(s)
}

// Kind reports which variant the remark holds.
func (r Remark) Kind() RemarkKind { return r.kind }

// IsNull reports whether the remark is the null value.
func (r Remark) IsNull() bool { return r.kind == KindNull }

// Float returns the numeric value and whether the remark is a number.
func (r Remark) Float() (float64, bool) {
	return r.num, r.kind == KindNumber
}

// Text returns the string value and whether the remark is a string.
func (r Remark) Text() (string, bool) {
	return r.str, r.kind == KindString
}

// Value returns the remark as a plain Go value: float64, string, or nil.
func (r Remark) Value() any {
	switch r.kind {
	case KindNumber:
		return r.num
	case KindString:
		return r.str
	default:
		return nil
	}
}

// String formats the remark for delimited-text export. Integral numbers are
// printed without a decimal point; null prints as the empty string.
func (r Remark) String() string {
	switch r.kind {
	case KindNumber:
		return strconv.FormatFloat(r.num, 'g', -1, 64)
	case KindString:
		return r.str
	default:
		return ""
	}
}

// Equal reports whether two remarks hold the same kind and value.
func (r Remark) Equal(o Remark) bool {
	if r.kind != o.kind {
		return false
	}
	switch r.kind {
	case KindNumber:
		return r.num == o.num
	case KindString:
		return r.str == o.str
	default:
		return true
	}
}

// Less orders remarks for sorting: null sorts before numbers, numbers before
// strings; numbers compare by value and strings lexicographically.
func (r Remark) Less(o Remark) bool {
	if r.kind != o.kind {
		return r.kind < o.kind
	}
	switch r.kind {
	case KindNumber:
		return r.num < o.num
	case KindString:
		return r.str < o.str
	default:
		return false
	}
}

// MarshalJSON encodes the remark as a bare JSON number, string, or null.
func (r Remark) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Value())
}

// UnmarshalJSON decodes a JSON number, string, or null into the remark.
func (r *Remark) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*r = Null()
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return err
		}
		*r = Number(f)
	case string:
		*r = Str(v)
	default:
		return &json.UnsupportedValueError{Str: string(data)}
	}
	return nil
}
