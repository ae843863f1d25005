package provider

import (
	"encoding/xml"
	"net/url"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// params is the flat argument list of a query operation. REST sends it as the query
// string; the legacy envelope sends one child element per key.
type params map[string]string

func paramsWire(p map[string]string) params {
	out := make(params, len(p))
	for k, v := range p {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

func toValues(p map[string]string) url.Values {
	v := url.Values{}
	for k, val := range p {
		if val != "" {
			v.Set(k, val)
		}
	}
	return v
}

func (p params) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, k := range keys {
		if err := e.EncodeElement(p[k], xml.StartElement{Name: xml.Name{Local: k}}); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

func itoa(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func decimalParam(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
