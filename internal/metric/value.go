// Package metric holds the normalized metric value type, the provider
// contracts and every metric provider that feeds a neighborhood profile.
package metric

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode"
)

// Kind tags the variant a Value holds.
type Kind string

const (
	KindText        Kind = "text"
	KindNumber      Kind = "number"
	KindList        Kind = "list"
	KindUnavailable Kind = "unavailable"
)

// NotAvailable is what an unavailable value displays as.
const NotAvailable = "N/A"

// Value is the only shape a provider may return. Exactly one of Text, Number
// or Items is meaningful, selected by Kind; Reason is set for unavailable
// values only.
type Value struct {
	Kind   Kind
	Text   string
	Number *float64
	Items  []string
	Reason string
}

// Text builds a scalar text value.
func Text(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// Number builds a scalar numeric value.
func Number(n float64) Value {
	return Value{Kind: KindNumber, Number: &n}
}

// List builds an ordered list value. A nil slice becomes an empty list.
func List(items []string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{Kind: KindList, Items: items}
}

// Unavailable marks a metric that could not be computed.
func Unavailable(reason string) Value {
	return Value{Kind: KindUnavailable, Reason: reason}
}

// IsUnavailable reports whether v is the Unavailable variant.
func (v Value) IsUnavailable() bool {
	return v.Kind == KindUnavailable
}

// Display renders v for humans.
func (v Value) Display() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		if v.Number == nil {
			return NotAvailable
		}
		return strconv.FormatFloat(*v.Number, 'f', -1, 64)
	case KindList:
		return strings.Join(v.Items, ", ")
	default:
		return NotAvailable
	}
}

// Numeric projects v onto a number for derived metrics: the number itself,
// the list length, the leading number of a text value, or 0.
func (v Value) Numeric() float64 {
	switch v.Kind {
	case KindNumber:
		if v.Number != nil {
			return *v.Number
		}
	case KindList:
		return float64(len(v.Items))
	case KindText:
		return leadingNumber(v.Text)
	}
	return 0
}

// leadingNumber parses "8/10 ..." as 8 and "$2,000" as 2000.
func leadingNumber(s string) float64 {
	s = strings.TrimLeft(strings.TrimSpace(s), "$")
	end := 0
	for end < len(s) {
		r := rune(s[end])
		if !unicode.IsDigit(r) && r != '.' && r != ',' && !(end == 0 && r == '-') {
			break
		}
		end++
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(s[:end], ",", ""), 64)
	if err != nil {
		return 0
	}
	return n
}

type valueJSON struct {
	Kind    Kind     `json:"kind"`
	Text    string   `json:"text,omitempty"`
	Number  *float64 `json:"number,omitempty"`
	Items   []string `json:"items,omitempty"`
	Reason  string   `json:"reason,omitempty"`
	Display string   `json:"display"`
}

// MarshalJSON emits the variant fields plus the rendered display string.
func (v Value) MarshalJSON() ([]byte, error) {
	out := valueJSON{Kind: v.Kind, Display: v.Display()}
	switch v.Kind {
	case KindText:
		out.Text = v.Text
	case KindNumber:
		out.Number = v.Number
	case KindList:
		out.Items = v.Items
	default:
		out.Kind = KindUnavailable
		out.Reason = v.Reason
	}
	return json.Marshal(out)
}

// Metric is one named entry of a profile.
type Metric struct {
	Name  string `json:"name"`
	Value Value  `json:"value"`
}
