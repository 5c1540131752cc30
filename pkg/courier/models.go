package courier

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Credentials maps a credential field name to its secret value.
type Credentials map[string]string

// Require checks that every key is present and non-empty.
func (c Credentials) Require(provider string, keys ...string) error {
	var missing []string
	for _, k := range keys {
		if c[k] == "" {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return NewCredentialsError(provider, missing)
	}
	return nil
}

// OrderData is one shipment as submitted by the caller, keyed by the
// provider's native field names.
type OrderData map[string]any

// Order is an order as returned by the upstream API.
type Order map[string]any

// RateEntry is one fee record as returned by the upstream API.
type RateEntry map[string]any

// LabelType tells which representation a Label carries.
type LabelType string

const (
	LabelPDF LabelType = "pdf"
	LabelURL LabelType = "url"
)

// Label is a shipping document. Data holds base64 encoded bytes when Type
// is LabelPDF; URL is set when Type is LabelURL.
type Label struct {
	Type LabelType `json:"type"`
	Data string    `json:"data,omitempty"`
	URL  string    `json:"url,omitempty"`
}

// NewPDFLabel wraps raw document bytes already encoded as base64.
func NewPDFLabel(data string) *Label {
	return &Label{Type: LabelPDF, Data: data}
}

// NewURLLabel wraps a hosted label address.
func NewURLLabel(url string) *Label {
	return &Label{Type: LabelURL, URL: url}
}

// Metadata describes a courier brand.
type Metadata struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Logo        string `json:"logo"`
	Description string `json:"description"`
	Website     string `json:"website"`
	APIDocs     string `json:"api_docs"`
	Support     string `json:"support"`
	TrackingURL string `json:"tracking_url,omitempty"`
}

// AsInt reads an integer out of a decoded JSON value. Upstream APIs send
// identifiers both as numbers and as numeric strings.
func AsInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		if t != math.Trunc(t) {
			return 0, false
		}
		return int(t), true
	case json.Number:
		n, err := t.Int64()
		return int(n), err == nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		return n, err == nil
	}
	return 0, false
}

// AsString renders a decoded JSON scalar as a string. Integral numbers lose
// their fractional part.
func AsString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return fmt.Sprint(v)
}
