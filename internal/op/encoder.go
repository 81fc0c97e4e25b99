package op

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"unicode/utf16"
)

// maxEncodeDepth bounds nesting so cyclic values fail instead of
// recursing forever.
const maxEncodeDepth = 1000

// ConverterFunc converts a non-JSON-native value into a serializable
// replacement.
type ConverterFunc func(v interface{}) (interface{}, error)

// EncodeConfig holds JSON serialization options.
type EncodeConfig struct {
	// EnsureASCII escapes every non-ASCII character as \uXXXX. When
	// false, non-ASCII characters are emitted literally as UTF-8.
	EnsureASCII bool
	// Indent is the pretty-print width in spaces; 0 emits compact
	// output.
	Indent int
	// SortKeys orders object members lexicographically by key.
	SortKeys bool

	converters map[reflect.Type]ConverterFunc
}

// DefaultEncodeConfig returns the default serialization options:
// ASCII-safe, compact output.
func DefaultEncodeConfig() *EncodeConfig {
	return &EncodeConfig{EnsureASCII: true}
}

// RegisterConverter registers a converter for the concrete type of
// sample. The registry is consulted only for values with no native
// JSON representation.
func (c *EncodeConfig) RegisterConverter(sample interface{}, fn ConverterFunc) {
	if c.converters == nil {
		c.converters = make(map[reflect.Type]ConverterFunc)
	}
	c.converters[reflect.TypeOf(sample)] = fn
}

// Encode serializes v to JSON text. A nil cfg uses
// DefaultEncodeConfig. Values without a JSON representation and
// without a registered converter return *UnsupportedTypeError.
//
// NaN and the infinities are rendered as the bare tokens NaN,
// Infinity and -Infinity. Non-string scalar map keys are coerced to
// string keys.
func Encode(v interface{}, cfg *EncodeConfig) (string, error) {
	if cfg == nil {
		cfg = DefaultEncodeConfig()
	}
	e := &jsonEncoder{cfg: cfg}
	if err := e.encodeValue(v); err != nil {
		return "", err
	}
	return e.buf.String(), nil
}

type jsonEncoder struct {
	cfg   *EncodeConfig
	buf   bytes.Buffer
	depth int
}

func (e *jsonEncoder) encodeValue(v interface{}) error {
	switch t := v.(type) {
	case nil:
		e.buf.WriteString("null")
		return nil
	case bool:
		if t {
			e.buf.WriteString("true")
		} else {
			e.buf.WriteString("false")
		}
		return nil
	case string:
		e.encodeString(t)
		return nil
	case json.Number:
		e.buf.WriteString(string(t))
		return nil
	case float64:
		e.buf.WriteString(formatFloat(t))
		return nil
	case float32:
		e.buf.WriteString(formatFloat(float64(t)))
		return nil
	case int:
		e.buf.WriteString(strconv.FormatInt(int64(t), 10))
		return nil
	case int64:
		e.buf.WriteString(strconv.FormatInt(t, 10))
		return nil
	case map[string]interface{}:
		return e.encodeMap(reflect.ValueOf(t))
	case []interface{}:
		return e.encodeArray(reflect.ValueOf(t))
	}
	return e.encodeReflect(reflect.ValueOf(v))
}

func (e *jsonEncoder) encodeReflect(rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			e.buf.WriteString("null")
			return nil
		}
		return e.encodeValue(rv.Elem().Interface())
	case reflect.Bool:
		return e.encodeValue(rv.Bool())
	case reflect.String:
		e.encodeString(rv.String())
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		e.buf.WriteString(strconv.FormatInt(rv.Int(), 10))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		e.buf.WriteString(strconv.FormatUint(rv.Uint(), 10))
		return nil
	case reflect.Float32, reflect.Float64:
		e.buf.WriteString(formatFloat(rv.Float()))
		return nil
	case reflect.Map:
		return e.encodeMap(rv)
	case reflect.Slice, reflect.Array:
		// Raw byte sequences have no JSON representation.
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return e.convertOrFail(rv.Interface())
		}
		return e.encodeArray(rv)
	default:
		return e.convertOrFail(rv.Interface())
	}
}

// convertOrFail consults the converter registry before giving up on a
// value.
func (e *jsonEncoder) convertOrFail(v interface{}) error {
	if fn, ok := e.cfg.converters[reflect.TypeOf(v)]; ok {
		converted, err := fn(v)
		if err != nil {
			return err
		}
		return e.encodeValue(converted)
	}
	return &UnsupportedTypeError{Value: v}
}

func (e *jsonEncoder) encodeMap(rv reflect.Value) error {
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > maxEncodeDepth {
		return errors.New("encode json: max nesting depth exceeded")
	}

	type member struct {
		key   string
		value reflect.Value
	}
	members := make([]member, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key, err := coerceKey(iter.Key())
		if err != nil {
			return err
		}
		members = append(members, member{key: key, value: iter.Value()})
	}
	if e.cfg.SortKeys {
		sort.Slice(members, func(i, j int) bool { return members[i].key < members[j].key })
	}

	e.buf.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.writeIndent()
		e.encodeString(m.key)
		e.buf.WriteByte(':')
		if e.cfg.Indent > 0 {
			e.buf.WriteByte(' ')
		}
		if err := e.encodeValue(m.value.Interface()); err != nil {
			return err
		}
	}
	e.writeClosingIndent(len(members))
	e.buf.WriteByte('}')
	return nil
}

func (e *jsonEncoder) encodeArray(rv reflect.Value) error {
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > maxEncodeDepth {
		return errors.New("encode json: max nesting depth exceeded")
	}

	e.buf.WriteByte('[')
	length := rv.Len()
	for i := 0; i < length; i++ {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.writeIndent()
		if err := e.encodeValue(rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	e.writeClosingIndent(length)
	e.buf.WriteByte(']')
	return nil
}

func (e *jsonEncoder) writeIndent() {
	if e.cfg.Indent <= 0 {
		return
	}
	e.buf.WriteByte('\n')
	for i := 0; i < e.depth*e.cfg.Indent; i++ {
		e.buf.WriteByte(' ')
	}
}

// writeClosingIndent aligns the closing bracket of a non-empty
// container with its opening line.
func (e *jsonEncoder) writeClosingIndent(members int) {
	if e.cfg.Indent <= 0 || members == 0 {
		return
	}
	e.buf.WriteByte('\n')
	for i := 0; i < (e.depth-1)*e.cfg.Indent; i++ {
		e.buf.WriteByte(' ')
	}
}

func (e *jsonEncoder) encodeString(s string) {
	e.buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			e.buf.WriteString(`\"`)
		case '\\':
			e.buf.WriteString(`\\`)
		case '\n':
			e.buf.WriteString(`\n`)
		case '\r':
			e.buf.WriteString(`\r`)
		case '\t':
			e.buf.WriteString(`\t`)
		case '\b':
			e.buf.WriteString(`\b`)
		case '\f':
			e.buf.WriteString(`\f`)
		default:
			switch {
			case r < 0x20:
				fmt.Fprintf(&e.buf, `\u%04x`, r)
			case e.cfg.EnsureASCII && r > 0x7f:
				if r > 0xffff {
					hi, lo := utf16.EncodeRune(r)
					fmt.Fprintf(&e.buf, `\u%04x\u%04x`, hi, lo)
				} else {
					fmt.Fprintf(&e.buf, `\u%04x`, r)
				}
			default:
				e.buf.WriteRune(r)
			}
		}
	}
	e.buf.WriteByte('"')
}

// coerceKey converts a scalar map key to its string form.
func coerceKey(rv reflect.Value) (string, error) {
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return "null", nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		if rv.Bool() {
			return "true", nil
		}
		return "false", nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return formatFloat(rv.Float()), nil
	default:
		return "", &UnsupportedTypeError{Value: rv.Interface()}
	}
}

// formatFloat renders a float with the bare special tokens for NaN and
// the infinities.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}
