package field

import (
	"encoding/json"
	"fmt"
	"math"
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
)

var phoneRE = regexp.MustCompile(`^\+?[0-9][0-9 ().\-]{2,}$`)

// NormalizeDefault checks that v is a valid default for a field of the
// given type and returns its canonical form: integers and timestamps as
// int64, floats as float64, everything else as given. Array fields take a
// []any (or []string) of element defaults.
func NormalizeDefault(t *TypeInfo, array bool, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if array {
		var elems []any
		switch vs := v.(type) {
		case []any:
			elems = vs
		case []string:
			for _, s := range vs {
				elems = append(elems, s)
			}
		default:
			return nil, fmt.Errorf("list default must be a list, got %T", v)
		}
		out := make([]any, 0, len(elems))
		for i, e := range elems {
			n, err := NormalizeDefault(t, false, e)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out = append(out, n)
		}
		return out, nil
	}
	switch t.Storage().Type {
	case TypeID:
		s, err := str(v)
		if err != nil {
			return nil, err
		}
		if _, err := uuid.Parse(s); err != nil {
			return nil, fmt.Errorf("id default %q is not a UUID", s)
		}
		return s, nil
	case TypeString:
		return str(v)
	case TypeInteger, TypeTimestamp:
		return integer(v)
	case TypeFloat:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case string:
			f, err := strconv.ParseFloat(n, 64)
			if err != nil {
				return nil, fmt.Errorf("%q is not a float", n)
			}
			return f, nil
		}
		return nil, fmt.Errorf("float default has type %T", v)
	case TypeBoolean:
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			p, err := strconv.ParseBool(b)
			if err != nil {
				return nil, fmt.Errorf("%q is not a boolean", b)
			}
			return p, nil
		}
		return nil, fmt.Errorf("boolean default has type %T", v)
	case TypeDate:
		return layout(v, time.DateOnly)
	case TypeTime:
		return layout(v, time.TimeOnly)
	case TypeDateTime:
		return layout(v, time.RFC3339)
	case TypeEmail:
		s, err := str(v)
		if err != nil {
			return nil, err
		}
		if _, err := mail.ParseAddress(s); err != nil {
			return nil, fmt.Errorf("%q is not an email address", s)
		}
		return s, nil
	case TypeURL:
		s, err := str(v)
		if err != nil {
			return nil, err
		}
		if u, err := url.ParseRequestURI(s); err != nil || u.Scheme == "" {
			return nil, fmt.Errorf("%q is not an absolute URL", s)
		}
		return s, nil
	case TypeIPAddress:
		s, err := str(v)
		if err != nil {
			return nil, err
		}
		if net.ParseIP(s) == nil {
			return nil, fmt.Errorf("%q is not an IP address", s)
		}
		return s, nil
	case TypePhone:
		s, err := str(v)
		if err != nil {
			return nil, err
		}
		if !phoneRE.MatchString(s) {
			return nil, fmt.Errorf("%q is not a phone number", s)
		}
		return s, nil
	case TypeJSON:
		if s, ok := v.(string); ok {
			if !json.Valid([]byte(s)) {
				return nil, fmt.Errorf("%q is not valid JSON", s)
			}
			return s, nil
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("json default: %w", err)
		}
		return string(b), nil
	case TypeEnum:
		s, err := str(v)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(t.Storage().Enums, s) {
			return nil, fmt.Errorf("%q is not one of the enum variants %v", s, t.Storage().Enums)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%s fields do not take defaults", t)
	}
}

func str(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected a string default, got %T", v)
	}
	return s, nil
}

func integer(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows int64", n)
		}
		return int64(n), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("%v is not an integer", n)
		}
		return int64(n), nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer", n)
		}
		return i, nil
	}
	return 0, fmt.Errorf("integer default has type %T", v)
}

func layout(v any, l string) (string, error) {
	switch t := v.(type) {
	case time.Time:
		return t.Format(l), nil
	case string:
		if _, err := time.Parse(l, t); err != nil {
			return "", fmt.Errorf("%q does not match %s", t, l)
		}
		return t, nil
	}
	return "", fmt.Errorf("expected a %s string, got %T", l, v)
}
