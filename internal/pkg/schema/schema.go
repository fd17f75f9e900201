package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FieldKind identifies how a raw column value is coerced.
type FieldKind string

const (
	KindString  FieldKind = "string"
	KindInteger FieldKind = "integer"
	KindDecimal FieldKind = "decimal"
	KindDate    FieldKind = "date"
	KindEnum    FieldKind = "enum"
)

// Validation error codes surfaced in import reports.
const (
	CodeMissingField = "MISSING_FIELD"
	CodeInvalidType  = "INVALID_TYPE"
	CodeInvalidEnum  = "INVALID_ENUM"
	CodeOutOfRange   = "OUT_OF_RANGE"
)

// DefaultDateFormat is the layout used when a date field does not set its own.
const DefaultDateFormat = "2006-01-02"

// Field describes one column of an import schema.
type Field struct {
	Name       string
	Kind       FieldKind
	Required   bool
	Enum       []string // allowed values for KindEnum
	DateFormat string   // layout for KindDate, DefaultDateFormat when empty
	Min        *float64 // inclusive lower bound for numeric kinds
	Max        *float64 // inclusive upper bound for numeric kinds
	Help       string   // one-line explanation for the import guide
}

// Schema is the ordered column specification for one entity kind.
type Schema struct {
	Entity string
	Fields []Field
}

// Headers returns the column names in schema order.
func (s Schema) Headers() []string {
	headers := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		headers[i] = f.Name
	}
	return headers
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Field, e.Message, e.Code)
}

// Record holds the typed values of a row that passed validation.
type Record struct {
	values map[string]interface{}
}

// Has reports whether the field was present in the source row.
func (r Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// String returns the string value of a field, or "" when absent.
func (r Record) String(name string) string {
	if v, ok := r.values[name].(string); ok {
		return v
	}
	return ""
}

// Int returns the integer value of a field and whether it was present.
func (r Record) Int(name string) (int, bool) {
	v, ok := r.values[name].(int)
	return v, ok
}

// Float returns the decimal value of a field and whether it was present.
func (r Record) Float(name string) (float64, bool) {
	v, ok := r.values[name].(float64)
	return v, ok
}

// Time returns the date value of a field and whether it was present.
func (r Record) Time(name string) (time.Time, bool) {
	v, ok := r.values[name].(time.Time)
	return v, ok
}

// Validate coerces a raw row against the schema. It returns the typed record
// and the complete list of field-level errors; a row with any error must be
// rejected in full. Validation is pure and never touches storage.
func (s Schema) Validate(row map[string]string) (Record, []FieldError) {
	record := Record{values: make(map[string]interface{}, len(s.Fields))}
	var errs []FieldError

	for _, f := range s.Fields {
		raw := strings.TrimSpace(row[f.Name])
		if raw == "" {
			if f.Required {
				errs = append(errs, FieldError{
					Field:   f.Name,
					Code:    CodeMissingField,
					Message: fmt.Sprintf("%s is required", f.Name),
				})
			}
			continue
		}

		value, ferr := f.coerce(raw)
		if ferr != nil {
			errs = append(errs, *ferr)
			continue
		}
		record.values[f.Name] = value
	}

	if len(errs) > 0 {
		return Record{}, errs
	}
	return record, nil
}

func (f Field) coerce(raw string) (interface{}, *FieldError) {
	switch f.Kind {
	case KindString:
		return raw, nil

	case KindInteger:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &FieldError{
				Field:   f.Name,
				Code:    CodeInvalidType,
				Message: fmt.Sprintf("%s must be a whole number, got %q", f.Name, raw),
			}
		}
		if ferr := f.checkRange(float64(n)); ferr != nil {
			return nil, ferr
		}
		return n, nil

	case KindDecimal:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &FieldError{
				Field:   f.Name,
				Code:    CodeInvalidType,
				Message: fmt.Sprintf("%s must be a number, got %q", f.Name, raw),
			}
		}
		if ferr := f.checkRange(v); ferr != nil {
			return nil, ferr
		}
		return v, nil

	case KindDate:
		layout := f.DateFormat
		if layout == "" {
			layout = DefaultDateFormat
		}
		t, err := time.Parse(layout, raw)
		if err != nil {
			return nil, &FieldError{
				Field:   f.Name,
				Code:    CodeInvalidType,
				Message: fmt.Sprintf("%s must be a date in format %s, got %q", f.Name, layout, raw),
			}
		}
		return t, nil

	case KindEnum:
		for _, allowed := range f.Enum {
			if strings.EqualFold(raw, allowed) {
				return allowed, nil
			}
		}
		return nil, &FieldError{
			Field:   f.Name,
			Code:    CodeInvalidEnum,
			Message: fmt.Sprintf("%s must be one of %s, got %q", f.Name, strings.Join(f.Enum, ", "), raw),
		}

	default:
		return nil, &FieldError{
			Field:   f.Name,
			Code:    CodeInvalidType,
			Message: fmt.Sprintf("%s has unsupported kind %q", f.Name, f.Kind),
		}
	}
}

func (f Field) checkRange(v float64) *FieldError {
	if f.Min != nil && v < *f.Min {
		return &FieldError{
			Field:   f.Name,
			Code:    CodeOutOfRange,
			Message: fmt.Sprintf("%s must be at least %v", f.Name, *f.Min),
		}
	}
	if f.Max != nil && v > *f.Max {
		return &FieldError{
			Field:   f.Name,
			Code:    CodeOutOfRange,
			Message: fmt.Sprintf("%s must be at most %v", f.Name, *f.Max),
		}
	}
	return nil
}
