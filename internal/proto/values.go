package proto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/vovakirdan/bingohub/internal/bingo"
)

var errBadValue = errors.New("winning value must be a string or a number")

// Values is a list of board items. Clients may send item ids as JSON
// strings or numbers; each keeps its kind when echoed back.
type Values []bingo.Item

// UnmarshalJSON accepts an array of strings and numbers.
func (v *Values) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Values, 0, len(raw))
	for _, r := range raw {
		r = bytes.TrimSpace(r)
		if len(r) == 0 {
			return errBadValue
		}
		switch r[0] {
		case '"':
			var s string
			if err := json.Unmarshal(r, &s); err != nil {
				return err
			}
			out = append(out, bingo.TextItem(s))
		default:
			var n json.Number
			if err := json.Unmarshal(r, &n); err != nil || n == "" {
				return errBadValue
			}
			out = append(out, bingo.Item{ID: n.String(), Numeric: true})
		}
	}
	*v = out
	return nil
}

// MarshalJSON writes numeric items as numbers and the rest as strings.
func (v Values) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBufferString("[")
	for i, it := range v {
		if i > 0 {
			buf.WriteByte(',')
		}
		if it.Numeric {
			if _, err := strconv.ParseFloat(it.ID, 64); err == nil {
				buf.WriteString(it.ID)
				continue
			}
		}
		b, err := json.Marshal(it.ID)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}
