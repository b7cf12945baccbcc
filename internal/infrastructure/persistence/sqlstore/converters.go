package sqlstore

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Column converters shared by both dialects. Each type scans a column into
// a domain field and supplies the same field back as a query argument.

// nullString maps an empty string to NULL.
type nullString string

func (n *nullString) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*n = ""
	case string:
		*n = nullString(v)
	case []byte:
		*n = nullString(v)
	default:
		return fmt.Errorf("cannot scan %T into string", src)
	}
	return nil
}

func (n nullString) Value() (driver.Value, error) {
	if n == "" {
		return nil, nil
	}
	return string(n), nil
}

// dbTime stores times in UTC and accepts the representations both drivers
// return.
type dbTime time.Time

var sqliteTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

func (t *dbTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = dbTime{}
		return nil
	case time.Time:
		*t = dbTime(v.UTC())
		return nil
	case int64:
		*t = dbTime(time.Unix(v, 0).UTC())
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	default:
		return fmt.Errorf("cannot scan %T into time", src)
	}
}

func (t *dbTime) parse(s string) error {
	for _, layout := range sqliteTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = dbTime(parsed.UTC())
			return nil
		}
	}
	return fmt.Errorf("cannot parse time %q", s)
}

func (t dbTime) Value() (driver.Value, error) {
	return time.Time(t).UTC(), nil
}

// nullTime maps a nil *time.Time to NULL.
type nullTime struct{ t **time.Time }

func (n nullTime) Scan(src any) error {
	if src == nil {
		*n.t = nil
		return nil
	}
	var v dbTime
	if err := v.Scan(src); err != nil {
		return err
	}
	tt := time.Time(v)
	*n.t = &tt
	return nil
}

func (n nullTime) Value() (driver.Value, error) {
	if *n.t == nil {
		return nil, nil
	}
	return (*n.t).UTC(), nil
}

// jsonColumn keeps a list field as JSON text.
type jsonColumn[T any] struct{ v *T }

func jsonCol[T any](v *T) jsonColumn[T] {
	return jsonColumn[T]{v: v}
}

func (j jsonColumn[T]) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		var zero T
		*j.v = zero
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into json column", src)
	}
	if err := json.Unmarshal(data, j.v); err != nil {
		return fmt.Errorf("failed to decode json column: %w", err)
	}
	return nil
}

func (j jsonColumn[T]) Value() (driver.Value, error) {
	data, err := json.Marshal(*j.v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode json column: %w", err)
	}
	return string(data), nil
}

// values turns the scan targets of a row into query arguments.
func values(targets []any) []any {
	out := make([]any, len(targets))
	for i, p := range targets {
		switch v := p.(type) {
		case *string:
			out[i] = *v
		case *int:
			out[i] = int64(*v)
		case *int64:
			out[i] = *v
		case *bool:
			out[i] = *v
		case driver.Valuer:
			out[i] = v
		default:
			panic(fmt.Sprintf("sqlstore: unsupported column target %T", p))
		}
	}
	return out
}
