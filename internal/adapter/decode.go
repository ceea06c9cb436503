package adapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Number accepts JSON numbers as well as numeric strings such as "12.5" or "12.5%".
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	s = strings.TrimSpace(strings.Trim(s, `"`))
	s = strings.TrimSuffix(s, "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%s is not a number", b)
	}
	*n = Number(v)
	return nil
}

func (n Number) Float() float64 { return float64(n) }

// Decode maps an already parsed JSON value onto a typed raw shape. Type
// mismatches become *MalformedDataError with the offending field path.
func Decode(site string, doc any, v any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return malformed(site, "/", err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		field := "/"
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			field = "/" + strings.ReplaceAll(typeErr.Field, ".", "/")
		}
		return malformed(site, field, err)
	}
	return nil
}
