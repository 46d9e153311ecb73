package utils

import (
	"reflect"
	"strings"
	"time"
)

const (
	timeLayout      = "15:04:05"
	shortTimeLayout = "15:04"
)

func NowUTC() int64 {
	return time.Now().
		UTC().
		UnixMilli()
}

// NormalizeTime parses "HH:MM" or "HH:MM:SS" and returns it as "HH:MM:SS".
func NormalizeTime(raw string) (string, bool) {
	for _, layout := range []string{timeLayout, shortTimeLayout} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(timeLayout), true
		}
	}
	return "", false
}

// ShortTime drops the seconds of an "HH:MM:SS" value.
func ShortTime(t string) string {
	if len(t) == len(timeLayout) {
		return t[:len(shortTimeLayout)]
	}
	return t
}

func Sanitize(o any) {
	v := reflect.ValueOf(o)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		panic("sanitize: expected pointer to struct")
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		panic("sanitize: expected struct")
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}
		switch field.Kind() {
		case reflect.String:
			field.SetString(sanitizeString(field.String()))

		case reflect.Ptr:
			if !field.IsNil() && field.Elem().Kind() == reflect.String {
				field.Elem().SetString(sanitizeString(field.Elem().String()))
			}

		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				for j := 0; j < field.Len(); j++ {
					field.Index(j).SetString(sanitizeString(field.Index(j).String()))
				}
			}
		}
	}
}

func sanitizeString(s string) string {
	return strings.TrimSpace(s)
}
