// Copyright (c) 2025 Yahya Qadeer Dar. All rights reserved.
// Use of this source code is governed by an Apache 2.0 license that can be found in the LICENSE file.

package sqlbuilder

import (
	"database/sql/driver"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/YahyaDar/gravity/errors"
	"github.com/YahyaDar/gravity/internal/reflect"
)

// EscaperConfig holds the delimiter constants of a dialect.
type EscaperConfig struct {
	// IdentifierQuote delimits identifiers, e.g. ` or "
	IdentifierQuote string

	// BackslashEscapes escapes backslashes and control characters in string
	// literals in addition to doubling single quotes
	BackslashEscapes bool

	// TrueLiteral and FalseLiteral render boolean values
	TrueLiteral  string
	FalseLiteral string

	// ByteaHex renders binary values as '\x..' instead of X'..'
	ByteaHex bool
}

// Escaper turns raw identifiers and values into SQL fragments that can be
// embedded into a statement. It holds no mutable state and is safe for
// concurrent use.
type Escaper struct {
	cfg EscaperConfig
}

// NewEscaper creates an escaper for the given delimiters.
func NewEscaper(cfg EscaperConfig) *Escaper {
	if cfg.IdentifierQuote == "" {
		cfg.IdentifierQuote = `"`
	}
	if cfg.TrueLiteral == "" {
		cfg.TrueLiteral = "TRUE"
	}
	if cfg.FalseLiteral == "" {
		cfg.FalseLiteral = "FALSE"
	}
	return &Escaper{cfg: cfg}
}

// TimeFormat is the layout used for time literals.
const TimeFormat = "2006-01-02 15:04:05.999999"

// ValueOption decorates an escaped string literal.
type ValueOption func(*valueOptions)

type valueOptions struct {
	collation string
	charset   string
}

// WithCollation appends COLLATE name to string literals.
func WithCollation(name string) ValueOption {
	return func(o *valueOptions) { o.collation = name }
}

// WithCharset prefixes string literals with the _charset introducer.
func WithCharset(name string) ValueOption {
	return func(o *valueOptions) { o.charset = name }
}

// QuoteIdentifier quotes a single identifier. Embedded quote characters are
// doubled; "*" is returned unquoted.
func (e *Escaper) QuoteIdentifier(name string) string {
	if name == "*" {
		return name
	}
	q := e.cfg.IdentifierQuote
	return q + strings.ReplaceAll(name, q, q+q) + q
}

// QuoteQualified quotes each dot-separated part of name individually.
func (e *Escaper) QuoteQualified(name string) string {
	parts := strings.Split(name, ".")
	for i, part := range parts {
		parts[i] = e.QuoteIdentifier(strings.TrimSpace(part))
	}
	return strings.Join(parts, ".")
}

// EscapeValue renders v as a SQL literal. Strings, times and everything
// without a native literal form are quoted; collation and charset options
// only apply to quoted literals. A nil value renders as an empty string
// literal; use NullOrValue where NULL must be produced.
func (e *Escaper) EscapeValue(v interface{}, opts ...ValueOption) string {
	var o valueOptions
	for _, opt := range opts {
		opt(&o)
	}

	if valuer, ok := v.(driver.Valuer); ok && !reflect.IsNil(v) {
		if dv, err := valuer.Value(); err == nil {
			v = dv
		}
	}

	switch x := reflect.Indirect(v).(type) {
	case nil:
		return e.quote("", o)
	case bool:
		if x {
			return e.cfg.TrueLiteral
		}
		return e.cfg.FalseLiteral
	case int:
		return strconv.FormatInt(int64(x), 10)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return e.float(float64(x), 32, o)
	case float64:
		return e.float(x, 64, o)
	case time.Time:
		return e.quote(x.Format(TimeFormat), o)
	case []byte:
		return e.binary(x)
	case string:
		return e.quote(x, o)
	case fmt.Stringer:
		return e.quote(x.String(), o)
	default:
		if p, ok := reflect.Primitive(x); ok {
			return e.EscapeValue(p, opts...)
		}
		return e.quote(fmt.Sprint(x), o)
	}
}

func (e *Escaper) float(f float64, bits int, o valueOptions) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return e.quote(strconv.FormatFloat(f, 'f', -1, bits), o)
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

func (e *Escaper) binary(b []byte) string {
	if e.cfg.ByteaHex {
		return `'\x` + hex.EncodeToString(b) + `'`
	}
	return "X'" + hex.EncodeToString(b) + "'"
}

// quote wraps an escaped string in single quotes and applies the options
func (e *Escaper) quote(s string, o valueOptions) string {
	lit := "'" + e.escapeString(s) + "'"
	if o.charset != "" {
		lit = "_" + o.charset + lit
	}
	if o.collation != "" {
		lit += " COLLATE " + o.collation
	}
	return lit
}

func (e *Escaper) escapeString(s string) string {
	if !e.cfg.BackslashEscapes {
		return strings.ReplaceAll(s, "'", "''")
	}
	if !strings.ContainsAny(s, "'\\\x00\n\r\x1a") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	// every escaped character is ASCII; other bytes pass through untouched
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`''`)
		case 0:
			b.WriteString(`\0`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\x1a':
			b.WriteString(`\Z`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// EscapeList renders a slice or array as a parenthesized, comma separated list
// of escaped values. Any other value is treated as a one element list.
func (e *Escaper) EscapeList(values interface{}, opts ...ValueOption) string {
	items, ok := reflect.Elements(reflect.Indirect(values))
	if !ok {
		items = []interface{}{values}
	}

	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = e.EscapeValue(item, opts...)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// EscapeSubquery parenthesizes a rendered statement and, when alias is not
// empty, names it.
func (e *Escaper) EscapeSubquery(sql, alias string) string {
	sub := "(" + sql + ")"
	if alias != "" {
		sub += " AS " + e.QuoteIdentifier(alias)
	}
	return sub
}

// EscapeLike escapes the LIKE wildcards and the backslash escape character.
func (e *Escaper) EscapeLike(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `%`, `\%`)
	value = strings.ReplaceAll(value, `_`, `\_`)
	return value
}

// EscapeRecord extracts the db-tagged columns of a struct and returns them as
// quoted column names and escaped values, ready for Columns and Values.
// Read-only columns are skipped, as are omitempty columns holding a zero
// value; nil fields become NULL.
func (e *Escaper) EscapeRecord(model interface{}) ([]string, []string, error) {
	if reflect.IsNil(model) {
		return nil, nil, errors.NewModelError(fmt.Sprintf("%T", model), "model cannot be nil", nil)
	}
	columns, err := reflect.Columns(model)
	if err != nil {
		return nil, nil, err
	}

	names := make([]string, 0, len(columns))
	values := make([]string, 0, len(columns))
	for _, c := range columns {
		if c.ReadOnly {
			continue
		}
		v := reflect.Value(model, c)
		if c.OmitEmpty && reflect.IsZero(v) {
			continue
		}
		names = append(names, e.QuoteIdentifier(c.Name))
		values = append(values, e.NullOrValue(v))
	}
	return names, values, nil
}
