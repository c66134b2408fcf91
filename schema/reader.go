package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/eventpilot/backend/errs"
	"github.com/eventpilot/backend/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Patch maps column names to validated values for a single UPDATE.
type Patch map[string]any

// Has reports whether the patch touches column.
func (p Patch) Has(column string) bool {
	_, ok := p[column]
	return ok
}

// reader walks a decoded JSON object and collects every violation instead of
// stopping at the first. In partial mode absent keys are skipped and every
// present, valid key is recorded into patch.
type reader struct {
	raw     map[string]any
	partial bool
	issues  []errs.FieldIssue
	patch   Patch
}

func newReader(raw map[string]any, partial bool) *reader {
	if raw == nil {
		raw = map[string]any{}
	}
	return &reader{raw: raw, partial: partial, patch: Patch{}}
}

func (r *reader) fail(field, format string, args ...any) {
	r.issues = append(r.issues, errs.FieldIssue{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (r *reader) err() error {
	if len(r.issues) == 0 {
		return nil
	}
	return errs.NewValidationError(r.issues)
}

func (r *reader) set(column string, value any) {
	if r.partial {
		r.patch[column] = value
	}
}

// lookup returns the raw value and whether the key was sent at all.
func (r *reader) lookup(field string) (any, bool) {
	v, ok := r.raw[field]
	return v, ok
}

// required handles the absent and null cases shared by every mandatory field.
// It returns false when the caller should not go on parsing the value.
func (r *reader) required(field string) (any, bool) {
	v, ok := r.lookup(field)
	if !ok {
		if !r.partial {
			r.fail(field, "Required")
		}
		return nil, false
	}
	if v == nil {
		r.fail(field, "Required")
		return nil, false
	}
	return v, true
}

func (r *reader) asString(field string, v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		r.fail(field, "Expected string, received %s", typeName(v))
	}
	return s, ok
}

func (r *reader) requiredString(field, column string) string {
	v, ok := r.required(field)
	if !ok {
		return ""
	}
	s, ok := r.asString(field, v)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "" {
		r.fail(field, "Must not be empty")
		return ""
	}
	r.set(column, s)
	return s
}

func (r *reader) optionalString(field, column string) *string {
	v, ok := r.lookup(field)
	if !ok {
		return nil
	}
	if v == nil {
		r.set(column, nil)
		return nil
	}
	s, ok := r.asString(field, v)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		r.set(column, nil)
		return nil
	}
	r.set(column, s)
	return &s
}

// stringWithDefault is a mandatory column the client may omit on create.
func (r *reader) stringWithDefault(field, column, def string) string {
	v, ok := r.lookup(field)
	if !ok || v == nil {
		if ok {
			r.fail(field, "Expected string, received null")
		}
		return def
	}
	s, ok := r.asString(field, v)
	if !ok {
		return def
	}
	if s = strings.TrimSpace(s); s == "" {
		r.fail(field, "Must not be empty")
		return def
	}
	r.set(column, s)
	return s
}

func (r *reader) email(field, column string) string {
	v, ok := r.required(field)
	if !ok {
		return ""
	}
	s, ok := r.asString(field, v)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if !emailRegex.MatchString(s) {
		r.fail(field, "Invalid email")
		return ""
	}
	r.set(column, s)
	return s
}

func (r *reader) enum(field, column string, allowed []string, def string) string {
	v, ok := r.lookup(field)
	if !ok {
		if def == "" && !r.partial {
			r.fail(field, "Required")
		}
		return def
	}
	s, ok := r.asString(field, v)
	if !ok {
		return def
	}
	for _, a := range allowed {
		if s == a {
			r.set(column, s)
			return s
		}
	}
	r.fail(field, "Invalid enum value. Expected %s, received '%s'", strings.Join(allowed, " | "), s)
	return def
}

func (r *reader) boolean(field, column string, def bool) bool {
	v, ok := r.lookup(field)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		r.fail(field, "Expected boolean, received %s", typeName(v))
		return def
	}
	r.set(column, b)
	return b
}

// integer reads a whole number no smaller than min. Missing values fall back
// to def unless required.
func (r *reader) integer(field, column string, required bool, def, min int) int {
	var v any
	if required {
		var ok bool
		if v, ok = r.required(field); !ok {
			return def
		}
	} else {
		var ok bool
		if v, ok = r.lookup(field); !ok {
			return def
		}
		if v == nil {
			r.fail(field, "Expected number, received null")
			return def
		}
	}

	f, ok := numberValue(v)
	if !ok {
		r.fail(field, "Expected number, received %s", typeName(v))
		return def
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		r.fail(field, "Expected integer, received float")
		return def
	}
	n := int(f)
	if n < min {
		r.fail(field, "Number must be greater than or equal to %d", min)
		return def
	}
	r.set(column, n)
	return n
}

// decimal accepts a JSON number or a numeric string with at most places
// fractional digits and checks it lies in [min, max]. The patch receives
// store(d). It returns nil when the value is absent, null or invalid.
func (r *reader) decimal(field, column string, required, nullable bool, places int32, min, max decimal.Decimal, store func(decimal.Decimal) any) *decimal.Decimal {
	v, ok := r.lookup(field)
	if !ok || v == nil {
		switch {
		case required && (!r.partial || ok):
			r.fail(field, "Required")
		case ok && !nullable:
			r.fail(field, "Expected decimal, received null")
		case ok:
			r.set(column, nil)
		}
		return nil
	}

	d, ok := decimalValue(v)
	if !ok {
		r.fail(field, "Expected decimal, received %s", typeName(v))
		return nil
	}
	if !d.Equal(d.Truncate(places)) {
		r.fail(field, "Expected at most %d decimal places", places)
		return nil
	}
	if d.LessThan(min) {
		r.fail(field, "Number must be greater than or equal to %s", min.String())
		return nil
	}
	if d.GreaterThan(max) {
		r.fail(field, "Number must be less than or equal to %s", max.String())
		return nil
	}
	r.set(column, store(d))
	return &d
}

// money reads a numeric(10,2) amount.
func (r *reader) money(field, column string, required, nullable bool) *models.Money {
	d := r.decimal(field, column, required, nullable, models.MoneyScale, decimal.Zero, maxMoney,
		func(d decimal.Decimal) any { return models.NewMoney(d) })
	if d == nil {
		return nil
	}
	m := models.NewMoney(*d)
	return &m
}

func (r *reader) stringList(field, column string) datatypes.JSONSlice[string] {
	v, ok := r.lookup(field)
	if !ok {
		return datatypes.JSONSlice[string]{}
	}
	if v == nil {
		r.set(column, datatypes.JSONSlice[string]{})
		return datatypes.JSONSlice[string]{}
	}
	items, ok := v.([]any)
	if !ok {
		r.fail(field, "Expected array, received %s", typeName(v))
		return datatypes.JSONSlice[string]{}
	}

	out := make(datatypes.JSONSlice[string], 0, len(items))
	valid := true
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			r.fail(fmt.Sprintf("%s.%d", field, i), "Expected string, received %s", typeName(item))
			valid = false
			continue
		}
		out = append(out, s)
	}
	if valid {
		r.set(column, out)
	}
	return out
}

func (r *reader) date(field, column string) time.Time {
	v, ok := r.required(field)
	if !ok {
		return time.Time{}
	}
	t, ok := r.parseDate(field, v)
	if ok {
		r.set(column, t)
	}
	return t
}

func (r *reader) optionalDate(field, column string) *time.Time {
	v, ok := r.lookup(field)
	if !ok {
		return nil
	}
	if v == nil {
		r.set(column, nil)
		return nil
	}
	t, ok := r.parseDate(field, v)
	if !ok {
		return nil
	}
	r.set(column, t)
	return &t
}

func (r *reader) parseDate(field string, v any) (time.Time, bool) {
	s, ok := r.asString(field, v)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t.UTC(), true
		}
	}
	r.fail(field, "Invalid date")
	return time.Time{}, false
}

func (r *reader) optionalUUID(field, column string) *uuid.UUID {
	v, ok := r.lookup(field)
	if !ok {
		return nil
	}
	if v == nil {
		r.set(column, nil)
		return nil
	}
	s, ok := r.asString(field, v)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		r.fail(field, "Invalid uuid")
		return nil
	}
	r.set(column, id)
	return &id
}

// object returns a nested JSON object, failing when field holds something else.
func (r *reader) object(field string) (map[string]any, bool) {
	v, ok := r.required(field)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	if !ok {
		r.fail(field, "Expected object, received %s", typeName(v))
		return nil, false
	}
	return m, true
}

func numberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// decimalValue reads the exact text of a number so no binary rounding hides
// extra fractional digits.
func decimalValue(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		return d, err == nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	}
	return decimal.Zero, false
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

// secret is a required string kept byte for byte.
func (r *reader) secret(field string) string {
	v, ok := r.required(field)
	if !ok {
		return ""
	}
	s, ok := r.asString(field, v)
	if ok && s == "" {
		r.fail(field, "Must not be empty")
	}
	return s
}
