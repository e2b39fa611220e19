package codec

import (
	"reflect"
	"strconv"
	"strings"
)

// Entries are packed by their json field names, so the flat layout stays
// in step with the structured formats without a second set of tags.

type entryField struct {
	key       string
	index     int
	omitEmpty bool
}

func entryFields(t reflect.Type) []entryField {
	fields := make([]entryField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		fields = append(fields, entryField{
			key:       name,
			index:     i,
			omitEmpty: strings.Contains(opts, "omitempty"),
		})
	}
	return fields
}

func encodeEntries[T any](entries []T) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = encodeEntry(e)
	}
	return strings.Join(parts, entrySep)
}

func encodeEntry[T any](entry T) string {
	v := reflect.ValueOf(entry)
	fields := entryFields(v.Type())

	pairs := make([]string, 0, len(fields))
	for _, f := range fields {
		fv := v.Field(f.index)
		if f.omitEmpty && fv.IsZero() {
			continue
		}
		pairs = append(pairs, f.key+":"+formatValue(fv))
	}
	return strings.Join(pairs, pairSep)
}

func decodeEntries[T any](s string) []T {
	out := []T{}
	if strings.TrimSpace(s) == "" {
		return out
	}
	for _, raw := range strings.Split(s, entrySep) {
		out = append(out, decodeEntry[T](raw))
	}
	return out
}

// decodeEntry splits each pair at its first ':' so values may contain
// colons. Unknown keys and unparsable numbers are skipped.
func decodeEntry[T any](s string) T {
	var entry T
	v := reflect.ValueOf(&entry).Elem()

	byKey := make(map[string]int)
	for _, f := range entryFields(v.Type()) {
		byKey[f.key] = f.index
	}

	for _, pair := range strings.Split(s, pairSep) {
		key, value, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		i, known := byKey[strings.TrimSpace(key)]
		if !known {
			continue
		}
		setValue(v.Field(i), value)
	}
	return entry
}

func formatValue(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	default:
		return ""
	}
}

func setValue(v reflect.Value, s string) {
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			v.SetInt(n)
		}
	case reflect.Float32, reflect.Float64:
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			v.SetFloat(f)
		}
	case reflect.Bool:
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			v.SetBool(b)
		}
	}
}
