package codec

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Record files are one record per line. Fields are joined with the primary
// delimiter; nested collections inside a field use the secondary delimiter
// between items and the tertiary delimiter between an item's own parts.
const (
	FieldSep = "|"
	ItemSep  = ";"
	PartSep  = ":"
)

// Serialization layouts shared by every repository. Any other format for the
// same logical field elsewhere in the system is a defect.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "2006-01-02T15:04:05"
)

var escaper = strings.NewReplacer(
	`\`, `\\`,
	FieldSep, `\p`,
	ItemSep, `\s`,
	PartSep, `\c`,
	"\n", `\n`,
)

// Escape rewrites every delimiter and newline in s so the value survives a
// round trip. Applying it twice composes: the backslash doubling protects
// inner escape sequences from the outer layer.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Unescape reverses Escape. Unknown escape sequences keep their literal
// character rather than failing the whole line.
func Unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i == len(s)-1 {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case 'p':
			b.WriteString(FieldSep)
		case 's':
			b.WriteString(ItemSep)
		case 'c':
			b.WriteString(PartSep)
		case 'n':
			b.WriteByte('\n')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// JoinFields escapes each field and joins them into one record line.
func JoinFields(fields ...string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = Escape(f)
	}
	return strings.Join(escaped, FieldSep)
}

// SplitFields splits a record line and unescapes each field.
func SplitFields(line string) []string {
	raw := strings.Split(line, FieldSep)
	fields := make([]string, len(raw))
	for i, f := range raw {
		fields[i] = Unescape(f)
	}
	return fields
}

// JoinItems joins already-formatted nested items into a single field value.
func JoinItems(items []string) string {
	return strings.Join(items, ItemSep)
}

// SplitItems splits a nested-list field into its item strings. An empty
// field is an empty list, not a list with one empty item.
func SplitItems(field string) []string {
	if field == "" {
		return nil
	}
	return strings.Split(field, ItemSep)
}

// JoinParts escapes each part of one nested item and joins them.
func JoinParts(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = Escape(p)
	}
	return strings.Join(escaped, PartSep)
}

// SplitParts splits one nested item into its unescaped parts.
func SplitParts(item string) []string {
	raw := strings.Split(item, PartSep)
	parts := make([]string, len(raw))
	for i, p := range raw {
		parts[i] = Unescape(p)
	}
	return parts
}

// ParseError reports a single undecodable line or field. Loaders skip the
// offending line and keep going; they never abort the whole file over it.
type ParseError struct {
	Entity string
	Field  string
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: field %q: bad value %q: %s", e.Entity, e.Field, e.Value, e.Reason)
}

func ParseInt(entity, field, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, &ParseError{Entity: entity, Field: field, Value: value, Reason: "not an integer"}
	}
	return n, nil
}

func ParseBool(entity, field, value string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, &ParseError{Entity: entity, Field: field, Value: value, Reason: "not a boolean"}
	}
	return b, nil
}

// ParseMoney decodes a fixed two-decimal currency value.
func ParseMoney(entity, field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, &ParseError{Entity: entity, Field: field, Value: value, Reason: "not a decimal amount"}
	}
	return d, nil
}

// FormatMoney renders a currency value with exactly two decimals.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func ParseDate(entity, field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, &ParseError{Entity: entity, Field: field, Value: value, Reason: "not an ISO date"}
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseTime(entity, field, value string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, &ParseError{Entity: entity, Field: field, Value: value, Reason: "not an ISO timestamp"}
	}
	return t, nil
}

func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}
