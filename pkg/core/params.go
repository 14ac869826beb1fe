package core

import (
	"fmt"
	"maps"
	"net/url"
	"strconv"

	"github.com/bytedance/sonic"
)

// Params holds the query parameters of one API request, keyed by wire name.
// Values may be nil; encoding drops them.
type Params map[string]any

// Clone returns a shallow copy safe to mutate between paginated requests.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	maps.Copy(out, p)
	return out
}

// Encode renders the parameters as URL values following the exchange's
// conventions: nil values and empty collections (including empty strings)
// are dropped, booleans become lowercase literals, slices are sent as
// compact JSON text. Key order in the encoded form is the canonical sorted
// order of url.Values.
func (p Params) Encode() (url.Values, error) {
	values := make(url.Values, len(p))

	for key, value := range p {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			if v == "" {
				continue
			}
			values.Set(key, v)
		case bool:
			values.Set(key, strconv.FormatBool(v))
		case int:
			values.Set(key, strconv.Itoa(v))
		case int64:
			values.Set(key, strconv.FormatInt(v, 10))
		case float64:
			values.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
		case []string:
			if len(v) == 0 {
				continue
			}
			if err := setJSONList(values, key, v); err != nil {
				return nil, err
			}
		case []int:
			if len(v) == 0 {
				continue
			}
			if err := setJSONList(values, key, v); err != nil {
				return nil, err
			}
		case []any:
			if len(v) == 0 {
				continue
			}
			if err := setJSONList(values, key, v); err != nil {
				return nil, err
			}
		default:
			values.Set(key, fmt.Sprintf("%v", v))
		}
	}

	return values, nil
}

func setJSONList(values url.Values, key string, list any) error {
	encoded, err := sonic.MarshalString(list)
	if err != nil {
		return fmt.Errorf("encode parameter %q: %w", key, err)
	}
	values.Set(key, encoded)
	return nil
}
