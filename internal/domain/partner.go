package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// PartnerRecord is a row of the partner export kept as-is. Column order is
// preserved so the dashboard sees the same layout as the source file.
type PartnerRecord struct {
	Columns []string
	Values  []string
}

// Get returns the value of the named column (case-insensitive).
func (p PartnerRecord) Get(column string) (string, bool) {
	for i, c := range p.Columns {
		if strings.EqualFold(strings.TrimSpace(c), column) && i < len(p.Values) {
			return p.Values[i], true
		}
	}
	return "", false
}

// Type returns the partner type when the export carries one.
func (p PartnerRecord) Type() (string, bool) {
	for _, name := range []string{"Type", "Tipo"} {
		if v, ok := p.Get(name); ok {
			v = strings.TrimSpace(v)
			return v, v != ""
		}
	}
	return "", false
}

// MarshalJSON writes the record as an object with keys in column order.
// Numeric cells are emitted as numbers and empty cells as null.
func (p PartnerRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range p.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		var val string
		if i < len(p.Values) {
			val = p.Values[i]
		}
		encoded, err := encodeCell(val)
		if err != nil {
			return nil, err
		}
		buf.Write(encoded)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads back an object produced by MarshalJSON, keeping key order.
func (p *PartnerRecord) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if _, err := dec.Token(); err != nil {
		return err
	}
	p.Columns = p.Columns[:0]
	p.Values = p.Values[:0]
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)

		var raw interface{}
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		var val string
		switch v := raw.(type) {
		case nil:
		case string:
			val = v
		case json.Number:
			val = v.String()
		case bool:
			val = strconv.FormatBool(v)
		default:
			b, err := json.Marshal(v)
			if err != nil {
				return err
			}
			val = string(b)
		}
		p.Columns = append(p.Columns, key)
		p.Values = append(p.Values, val)
	}
	_, err := dec.Token()
	return err
}

func encodeCell(val string) ([]byte, error) {
	trimmed := strings.TrimSpace(val)
	if trimmed == "" {
		return []byte("null"), nil
	}
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return []byte(strconv.FormatInt(n, 10)), nil
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !strings.ContainsAny(trimmed, "xXnNiI") {
		return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
	}
	return marshalNoEscape(val)
}

// marshalNoEscape encodes s as a JSON string without HTML escaping so product
// and partner names keep their original characters.
func marshalNoEscape(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
