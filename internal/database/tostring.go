package database

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ToNullString converts a value returned by an engine driver into its
// display string. Only a nil value (or a driver.Valuer yielding nil) is null.
func ToNullString(v any) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	switch v := v.(type) {
	case string:
		return valid(v)
	case []byte:
		return valid(string(v))
	case bool:
		return valid(strconv.FormatBool(v))
	case int:
		return valid(strconv.Itoa(v))
	case int8:
		return valid(strconv.FormatInt(int64(v), 10))
	case int16:
		return valid(strconv.FormatInt(int64(v), 10))
	case int32:
		return valid(strconv.FormatInt(int64(v), 10))
	case int64:
		return valid(strconv.FormatInt(v, 10))
	case uint:
		return valid(strconv.FormatUint(uint64(v), 10))
	case uint8:
		return valid(strconv.FormatUint(uint64(v), 10))
	case uint16:
		return valid(strconv.FormatUint(uint64(v), 10))
	case uint32:
		return valid(strconv.FormatUint(uint64(v), 10))
	case uint64:
		return valid(strconv.FormatUint(v, 10))
	case float32:
		return valid(strconv.FormatFloat(float64(v), 'f', -1, 32))
	case float64:
		return valid(strconv.FormatFloat(v, 'f', -1, 64))
	case time.Time:
		return valid(v.Format(time.RFC3339Nano))
	case [16]byte:
		// pgx decodes uuid columns into raw arrays.
		return valid(uuid.UUID(v).String())
	case fmt.Stringer:
		return valid(v.String())
	case driver.Valuer:
		dv, err := v.Value()
		if err == nil {
			return ToNullString(dv)
		}
	}
	if data, err := json.Marshal(v); err == nil {
		s := strings.Trim(string(data), `"`)
		if s == "null" {
			return sql.NullString{}
		}
		return valid(s)
	}
	return valid(fmt.Sprintf("%v", v))
}

func valid(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}
