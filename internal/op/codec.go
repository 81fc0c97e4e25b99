package op

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/bytedance/sonic/decoder"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// Sentinel strings substituted for the non-standard bare float tokens
// before handing the text to the JSON parser. U+FDD0 is a Unicode
// non-character, so the sentinels cannot collide with real document
// strings.
const (
	sentinelNaN    = "﷐NaN"
	sentinelPosInf = "﷐+Inf"
	sentinelNegInf = "﷐-Inf"
)

// Decode parses one JSON value from input, which must be a string,
// []byte, or *bytes.Buffer. The grammar is standard JSON extended with
// bare NaN, Infinity and -Infinity tokens.
//
// A non-textual input returns *TypeError. Empty, whitespace-only or
// malformed text returns *DecodeError.
func Decode(input interface{}) (interface{}, error) {
	var data []byte
	switch v := input.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	case *bytes.Buffer:
		if v == nil {
			return nil, &TypeError{Op: "decode json", Value: input}
		}
		data = v.Bytes()
	default:
		return nil, &TypeError{Op: "decode json", Value: input}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &DecodeError{Msg: "empty input", Offset: 0}
	}

	rewritten, replaced := rewriteSpecialTokens(data)

	var parsed interface{}
	if err := sonic.Unmarshal(rewritten, &parsed); err != nil {
		return nil, asDecodeError(err)
	}
	if replaced {
		parsed = restoreSpecialValues(parsed)
	}
	return parsed, nil
}

// DecodeBytes parses JSON from raw bytes in the named character set.
// An empty charset means UTF-8; "auto" detects the charset from the
// byte content.
func DecodeBytes(data []byte, charset string) (interface{}, error) {
	decoded, err := decodeCharset(data, charset)
	if err != nil {
		return nil, err
	}
	return Decode(decoded)
}

// DetectCharset guesses the character set of raw bytes, falling back
// to UTF-8 when detection is inconclusive.
func DetectCharset(data []byte) string {
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}

// decodeCharset converts raw bytes in the named charset to UTF-8.
func decodeCharset(data []byte, charset string) ([]byte, error) {
	enc, err := resolveCharset(data, charset)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return data, nil
	}
	return enc.NewDecoder().Bytes(data)
}

// encodeCharset converts UTF-8 bytes to the named charset.
func encodeCharset(data []byte, charset string) ([]byte, error) {
	enc, err := resolveCharset(data, charset)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return data, nil
	}
	return enc.NewEncoder().Bytes(data)
}

// resolveCharset maps a charset name to a text encoding. A nil result
// with nil error means the data is already UTF-8.
func resolveCharset(data []byte, charset string) (encoding.Encoding, error) {
	name := strings.ToLower(strings.TrimSpace(charset))
	switch name {
	case "", "utf-8", "utf8":
		return nil, nil
	case "auto":
		name = DetectCharset(data)
		if name == "utf-8" {
			return nil, nil
		}
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unknown charset %q", charset)
	}
	return enc, nil
}

func asDecodeError(err error) error {
	var syn decoder.SyntaxError
	if errors.As(err, &syn) {
		return &DecodeError{Msg: syn.Description(), Offset: int64(syn.Pos)}
	}
	var synPtr *decoder.SyntaxError
	if errors.As(err, &synPtr) {
		return &DecodeError{Msg: synPtr.Description(), Offset: int64(synPtr.Pos)}
	}
	// Compat builds of sonic surface encoding/json errors instead.
	var jsonSyn *json.SyntaxError
	if errors.As(err, &jsonSyn) {
		return &DecodeError{Msg: jsonSyn.Error(), Offset: jsonSyn.Offset}
	}
	return &DecodeError{Msg: err.Error(), Offset: -1}
}

// rewriteSpecialTokens replaces bare NaN/Infinity/-Infinity tokens
// (outside string literals) with quoted sentinel strings so a strict
// parser accepts the text. Reports whether any replacement happened.
func rewriteSpecialTokens(data []byte) ([]byte, bool) {
	if !bytes.Contains(data, []byte("NaN")) && !bytes.Contains(data, []byte("Infinity")) {
		return data, false
	}

	var out bytes.Buffer
	out.Grow(len(data) + 16)
	replaced := false
	inString := false
	escaped := false

	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			out.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch {
		case c == '"':
			inString = true
			out.WriteByte(c)
		case c == 'N' && bytes.HasPrefix(data[i:], []byte("NaN")):
			out.WriteString(`"` + sentinelNaN + `"`)
			i += 2
			replaced = true
		case c == 'I' && bytes.HasPrefix(data[i:], []byte("Infinity")):
			out.WriteString(`"` + sentinelPosInf + `"`)
			i += 7
			replaced = true
		case c == '-' && bytes.HasPrefix(data[i:], []byte("-Infinity")):
			out.WriteString(`"` + sentinelNegInf + `"`)
			i += 8
			replaced = true
		default:
			out.WriteByte(c)
		}
	}
	if !replaced {
		return data, false
	}
	return out.Bytes(), true
}

// restoreSpecialValues walks a parsed tree and converts sentinel
// strings back into their float values.
func restoreSpecialValues(v interface{}) interface{} {
	switch t := v.(type) {
	case string:
		switch t {
		case sentinelNaN:
			return math.NaN()
		case sentinelPosInf:
			return math.Inf(1)
		case sentinelNegInf:
			return math.Inf(-1)
		}
	case []interface{}:
		for i := range t {
			t[i] = restoreSpecialValues(t[i])
		}
	case map[string]interface{}:
		for k := range t {
			t[k] = restoreSpecialValues(t[k])
		}
	}
	return v
}
