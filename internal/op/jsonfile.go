package op

import "os"

// JSONFileOptions configures JSON file persistence. The zero value
// means truncate-and-write, compact output, UTF-8.
type JSONFileOptions struct {
	// Mode is ModeWrite or ModeAppend. Append concatenates the
	// serialized document directly after the existing content, with no
	// separator.
	Mode string
	// Indent is the pretty-print width; 0 emits compact output.
	Indent int
	// Charset names the text encoding of the file. Empty means UTF-8;
	// "auto" detects the charset on read.
	Charset string
	// Encode overrides the serialization options; Indent is applied on
	// top of it.
	Encode *EncodeConfig
}

// WriteJSONFile serializes v and writes the text to path. It
// propagates *UnsupportedTypeError from serialization and
// ErrInvalidMode for an unsupported mode.
func WriteJSONFile(v interface{}, path string, opts *JSONFileOptions) error {
	if opts == nil {
		opts = &JSONFileOptions{}
	}
	cfg := opts.Encode
	if cfg == nil {
		cfg = DefaultEncodeConfig()
	}
	if opts.Indent > 0 {
		clone := *cfg
		clone.Indent = opts.Indent
		cfg = &clone
	}

	text, err := Encode(v, cfg)
	if err != nil {
		return err
	}
	if opts.Charset != "" {
		raw, err := encodeCharset([]byte(text), opts.Charset)
		if err != nil {
			return err
		}
		text = string(raw)
	}
	_, err = WriteToFile(text, path, &WriteOptions{Mode: opts.Mode})
	return err
}

// ReadJSONFile reads path fully in the configured charset and parses
// it as JSON. A missing file surfaces the os not-exist error; empty or
// malformed content returns *DecodeError.
func ReadJSONFile(path string, opts *JSONFileOptions) (interface{}, error) {
	if opts == nil {
		opts = &JSONFileOptions{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(data, opts.Charset)
}
