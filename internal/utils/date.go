package util

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// LocalDate is a date-only value for cycle boundaries and evaluation dates.
// Dates are interpreted in Tehran time, where the product's users plan
// their quarters.
type LocalDate struct {
	time.Time
}

const layout = "2006-01-02"

var tehranLocation *time.Location

func init() {
	var err error
	tehranLocation, err = time.LoadLocation("Asia/Tehran")
	if err != nil {
		tehranLocation = time.FixedZone("IRST", int(3.5*60*60))
	}
}

func NewLocalDate(year int, month time.Month, day int) LocalDate {
	return LocalDate{time.Date(year, month, day, 0, 0, 0, 0, tehranLocation)}
}

func (ld *LocalDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.ParseInLocation(layout, s, tehranLocation)
	if err != nil {
		return err
	}
	ld.Time = t
	return nil
}

func (ld LocalDate) MarshalJSON() ([]byte, error) {
	if ld.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + ld.In(tehranLocation).Format(layout) + `"`), nil
}

func (ld LocalDate) Equal(other LocalDate) bool {
	return ld.Time.Equal(other.Time)
}

func (ld LocalDate) Before(other LocalDate) bool {
	return ld.Time.Before(other.Time)
}

func (ld LocalDate) Value() (driver.Value, error) {
	if ld.IsZero() {
		return nil, nil
	}
	return ld.Time, nil
}

func (ld *LocalDate) Scan(value interface{}) error {
	if value == nil {
		ld.Time = time.Time{}
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		ld.Time = v
		return nil
	case []byte:
		return ld.parse(string(v))
	case string:
		return ld.parse(v)
	default:
		return fmt.Errorf("cannot scan type %T into LocalDate", value)
	}
}

func (ld *LocalDate) parse(s string) error {
	// Some drivers hand dates back with a time component attached.
	if len(s) > len(layout) {
		s = s[:len(layout)]
	}
	parsed, err := time.ParseInLocation(layout, s, tehranLocation)
	if err != nil {
		return err
	}
	ld.Time = parsed
	return nil
}
