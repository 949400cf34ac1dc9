package rt

import (
	"fmt"
	"strconv"
	"strings"
)

// Repr renders x in source-like form: strings quoted and escaped, chars in
// single quotes, containers with their elements' Repr. Objects without
// Representer fall back to Str, then to <Type#id>.
func Repr(x any) string {
	switch v := x.(type) {
	case nil:
		return "nil"
	case Value:
		return reprValue(v, true)
	case handle:
		return reprObject(v.ref(), true)
	case Object:
		return reprObject(v, true)
	case string:
		return quote(v)
	case Char:
		return quoteChar(v)
	}
	return formatScalar(x)
}

// Str renders x in printable form: strings and chars raw, everything else as
// Repr would except that objects prefer Stringifier.
func Str(x any) string {
	switch v := x.(type) {
	case nil:
		return "nil"
	case Value:
		return reprValue(v, false)
	case handle:
		return reprObject(v.ref(), false)
	case Object:
		return reprObject(v, false)
	case string:
		return v
	case Char:
		return string([]byte{v})
	}
	return formatScalar(x)
}

// ReprOf is the repr() builtin: Repr(x) as a String object.
func ReprOf(x any) Ptr[*String] {
	return New(NewString(Repr(x)))
}

// StrOf is the str() builtin: Str(x) as a String object.
func StrOf(x any) Ptr[*String] {
	return New(NewString(Str(x)))
}

func reprValue(v Value, repr bool) string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindChar:
		if repr {
			return quoteChar(v.c)
		}
		return string([]byte{v.c})
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	default:
		return reprObject(v.ptr.ref(), repr)
	}
}

func reprObject(o Object, repr bool) string {
	if o == nil {
		return "nil"
	}
	if o.objectBase().state == stateFreed {
		return "<freed " + objectLabel(o) + ">"
	}
	if repr {
		if r, ok := o.(Representer); ok {
			return r.Repr()
		}
	}
	if s, ok := o.(Stringifier); ok {
		return s.Str()
	}
	if r, ok := o.(Representer); ok {
		return r.Repr()
	}
	return "<" + objectLabel(o) + ">"
}

func formatScalar(x any) string {
	switch v := x.(type) {
	case bool:
		return strconv.FormatBool(v)
	case Int:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case Float:
		return formatFloat(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(x)
	}
}

// formatFloat uses the shortest text that reads back to the same float.
func formatFloat(f Float) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func escapeChar(sb *strings.Builder, c byte) {
	switch c {
	case '\n':
		sb.WriteString(`\n`)
	case '\t':
		sb.WriteString(`\t`)
	case '\r':
		sb.WriteString(`\r`)
	case '\\':
		sb.WriteString(`\\`)
	case '"':
		sb.WriteString(`\"`)
	case '\'':
		sb.WriteString(`\'`)
	default:
		sb.WriteByte(c)
	}
}

func quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		escapeChar(&sb, s[i])
	}
	sb.WriteByte('"')
	return sb.String()
}

func quoteChar(c Char) string {
	var sb strings.Builder
	sb.WriteByte('\'')
	escapeChar(&sb, c)
	sb.WriteByte('\'')
	return sb.String()
}

// joinRepr renders elems as open + "e1, e2, ..." + close.
func joinRepr[E any](open string, elems []E, close string) string {
	var sb strings.Builder
	sb.WriteString(open)
	for i, e := range elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(Repr(e))
	}
	sb.WriteString(close)
	return sb.String()
}
