package vcfld

import (
	"fmt"
	"time"
)

// Time exists to facilitate time parsing from the sites index Metadata, which
// stores unixtime but may also be written by other tools as a text string.
// Derived from
// https://github.com/mattn/go-sqlite3/issues/190#issuecomment-343341834f
type Time time.Time

func (t *Time) Scan(v interface{}) error {
	switch which := v.(type) {
	case int64:
		vt := time.Unix(which, 0)
		*t = Time(vt)
		return nil
	case int:
		vt := time.Unix(int64(which), 0)
		*t = Time(vt)
		return nil
	case []byte:
		return t.parse(string(which))
	case string:
		return t.parse(which)
	case time.Time:
		*t = Time(which)
		return nil
	}

	return fmt.Errorf("No appropriate type could be found to decode %v", v)
}

func (t *Time) parse(s string) error {
	vt, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		return err
	}
	*t = Time(vt)

	return nil
}

func (t Time) String() string {
	return time.Time(t).Format(time.RFC3339)
}
