package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Vital 体征值。已有数据里数字和字符串（"70"）都出现过，读写都按原样保留
type Vital struct{ raw json.RawMessage }

func IntVital(n int) Vital { return Vital{raw: json.RawMessage(strconv.Itoa(n))} }

func (v Vital) IsZero() bool { return len(v.raw) == 0 }

// Int 数字或数字字符串都能取出整数部分
func (v Vital) Int() (int, bool) {
	var n json.Number
	if err := json.Unmarshal(v.raw, &n); err == nil {
		f, err := n.Float64()
		return int(f), err == nil
	}
	var s string
	if err := json.Unmarshal(v.raw, &s); err != nil {
		return 0, false
	}
	i, err := strconv.Atoi(strings.TrimSpace(s))
	return i, err == nil
}

func (v Vital) MarshalJSON() ([]byte, error) {
	if v.IsZero() {
		return []byte("null"), nil
	}
	return v.raw, nil
}

func (v *Vital) UnmarshalJSON(b []byte) error {
	v.raw = append(json.RawMessage(nil), b...)
	return nil
}
