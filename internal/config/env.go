package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// byteUnits are the suffixes accepted by fields tagged `unit:"bytes"`, longest first.
var byteUnits = []struct {
	suffix string
	factor int64
}{
	{"GiB", 1 << 30},
	{"MiB", 1 << 20},
	{"KiB", 1 << 10},
	{"GB", 1000 * 1000 * 1000},
	{"MB", 1000 * 1000},
	{"KB", 1000},
	{"B", 1},
}

// applyEnv overrides every field tagged `env:"NAME"` whose variable is set.
// A blank variable only overrides string fields. All malformed variables are
// reported together.
func applyEnv(config *Config) error {
	var errs []error
	eachEnvField(reflect.ValueOf(config).Elem(), func(field reflect.Value, tag reflect.StructTag) {
		name := tag.Get("env")
		raw, ok := os.LookupEnv(name)
		if !ok {
			return
		}
		if err := setFromEnv(field, tag, raw); err != nil {
			errs = append(errs, fmt.Errorf("%s=%q: %w", name, raw, err))
		}
	})
	return errors.Join(errs...)
}

// eachEnvField calls fn for every settable field with an env tag, descending
// into the nested section structs.
func eachEnvField(section reflect.Value, fn func(reflect.Value, reflect.StructTag)) {
	typ := section.Type()
	for i := 0; i < section.NumField(); i++ {
		field := section.Field(i)
		if field.Kind() == reflect.Struct {
			eachEnvField(field, fn)
			continue
		}
		if tag := typ.Field(i).Tag; tag.Get("env") != "" && field.CanSet() {
			fn(field, tag)
		}
	}
}

func setFromEnv(field reflect.Value, tag reflect.StructTag, raw string) error {
	if field.Kind() == reflect.String {
		field.SetString(raw)
		return nil
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	switch field.Kind() {
	case reflect.Bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return errors.New("expected true or false")
		}
		field.SetBool(v)
	case reflect.Int, reflect.Int64:
		parse := parseInt
		if tag.Get("unit") == "bytes" {
			parse = parseByteSize
		}
		v, err := parse(raw)
		if err != nil {
			return err
		}
		if field.OverflowInt(v) {
			return errors.New("value out of range")
		}
		field.SetInt(v)
	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
	return nil
}

func parseInt(raw string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New("expected an integer")
	}
	return v, nil
}

// parseByteSize accepts a plain byte count or a number with a unit suffix,
// e.g. "16MiB" or "500 KB".
func parseByteSize(raw string) (int64, error) {
	number, factor := raw, int64(1)
	for _, u := range byteUnits {
		if strings.HasSuffix(raw, u.suffix) {
			number, factor = strings.TrimSpace(strings.TrimSuffix(raw, u.suffix)), u.factor
			break
		}
	}
	v, err := strconv.ParseInt(number, 10, 64)
	if err != nil || v < 0 {
		return 0, errors.New("expected a byte size such as 1048576 or 16MiB")
	}
	return v * factor, nil
}
