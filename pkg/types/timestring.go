package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeFormat формат времени "HH:MM" (24-часовой)
const TimeFormat = "15:04"

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 24 * 60

// TimeString время дня в формате "HH:MM"
// Лексикографическое сравнение корректно для времени с ведущими нулями,
// но все операции сравнения работают через минуты от полуночи
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывает секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет, что значение соответствует формату "HH:MM" (00-23 / 00-59)
func (t TimeString) Validate() error {
	parsed, err := time.Parse(TimeFormat, string(t))
	if err != nil {
		return fmt.Errorf("invalid time format %q, expected HH:MM: %v", string(t), err)
	}
	// time.Parse принимает "9:04", нормализованная форма обязана совпадать с исходной
	if parsed.Format(TimeFormat) != string(t) {
		return fmt.Errorf("invalid time format %q, expected zero-padded HH:MM", string(t))
	}
	return nil
}

// Minutes возвращает количество минут от полуночи
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(TimeFormat, string(t))
	if err != nil {
		return 0, fmt.Errorf("invalid time format %q: %v", string(t), err)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	tm, err1 := t.Minutes()
	om, err2 := other.Minutes()
	if err1 != nil || err2 != nil {
		return false
	}
	return tm < om
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	tm, err1 := t.Minutes()
	om, err2 := other.Minutes()
	if err1 != nil || err2 != nil {
		return false
	}
	return tm > om
}

// AddMinutes возвращает время через m минут
// Возвращает ошибку при выходе за пределы суток
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return "", err
	}
	total := minutes + m
	if total < 0 || total > MinutesPerDay {
		return "", fmt.Errorf("time %s + %d minutes is out of day range", t, m)
	}
	if total == MinutesPerDay {
		// 24:00 не представимо в "15:04", считаем концом суток 23:59
		return TimeString("23:59"), nil
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// Value реализует driver.Valuer для записи в БД
func (t TimeString) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД
// Postgres тип time может приходить как string ("10:00:00") или []byte
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*t = truncateToHHMM(v)
	case []byte:
		*t = truncateToHHMM(string(v))
	case time.Time:
		*t = NewTimeString(v)
	case nil:
		*t = ""
	default:
		return fmt.Errorf("cannot scan %T into TimeString", src)
	}
	return nil
}

// truncateToHHMM отбрасывает секунды из "HH:MM:SS"
func truncateToHHMM(s string) TimeString {
	if len(s) > 5 {
		return TimeString(s[:5])
	}
	return TimeString(s)
}
