// Package ops exposes the op utility layer as a tool provider:
// JSON parse/serialize, JSON file persistence, filesystem primitives,
// timestamp helpers and dotted-path attribute access.
package ops

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/alejandrogranizo/tractusx-sdk/internal/logging"
	"github.com/alejandrogranizo/tractusx-sdk/internal/op"
	"github.com/alejandrogranizo/tractusx-sdk/internal/types"
)

// Provider implements service.Provider for the op utility layer.
type Provider struct {
	logger *logging.Logger
}

// New creates an ops provider. A nil logger disables logging.
func New(logger *logging.Logger) *Provider {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Provider{logger: logger}
}

// Definition returns the service metadata and tool catalog.
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "op",
		Name:        "Operations",
		Description: "JSON codec, JSON file persistence, filesystem primitives, timestamps and attribute access",
		Category:    types.CategoryOperations,
		Capabilities: []string{
			"json_parse", "json_serialize", "json_file",
			"file_read", "file_write", "file_copy", "file_move", "file_delete",
			"dir_create", "dir_delete", "path_exists",
			"timestamp", "attribute_access",
		},
		Tools: p.tools(),
	}
}

func (p *Provider) tools() []types.Tool {
	pathParam := types.Parameter{Name: "path", Type: "string", Description: "File path", Required: true}
	return []types.Tool{
		{
			ID:          "op.parse",
			Name:        "Parse JSON",
			Description: "Parse JSON text into a value",
			Parameters: []types.Parameter{
				{Name: "text", Type: "string", Description: "JSON text", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "op.serialize",
			Name:        "Serialize JSON",
			Description: "Serialize a value to JSON text",
			Parameters: []types.Parameter{
				{Name: "value", Type: "object", Description: "Value to serialize", Required: true},
				{Name: "ensure_ascii", Type: "boolean", Description: "Escape non-ASCII (default true)", Required: false},
				{Name: "indent", Type: "number", Description: "Pretty-print width", Required: false},
				{Name: "sort_keys", Type: "boolean", Description: "Sort object keys", Required: false},
			},
			Returns: "string",
		},
		{
			ID:          "op.read_json",
			Name:        "Read JSON File",
			Description: "Read and parse a JSON file",
			Parameters: []types.Parameter{
				pathParam,
				{Name: "charset", Type: "string", Description: "Text encoding (default utf-8, \"auto\" to detect)", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "op.write_json",
			Name:        "Write JSON File",
			Description: "Serialize a value and write it to a file",
			Parameters: []types.Parameter{
				pathParam,
				{Name: "value", Type: "object", Description: "Value to write", Required: true},
				{Name: "mode", Type: "string", Description: "Open mode: w or a", Required: false},
				{Name: "indent", Type: "number", Description: "Pretty-print width", Required: false},
			},
			Returns: "boolean",
		},
		{
			ID:          "op.read",
			Name:        "Read File",
			Description: "Read a file fully as text",
			Parameters:  []types.Parameter{pathParam},
			Returns:     "string",
		},
		{
			ID:          "op.read_binary",
			Name:        "Read Binary File",
			Description: "Read a file fully as binary data",
			Parameters:  []types.Parameter{pathParam},
			Returns:     "bytes",
		},
		{
			ID:          "op.write",
			Name:        "Write File",
			Description: "Write text to a file; empty data is a no-op",
			Parameters: []types.Parameter{
				pathParam,
				{Name: "data", Type: "string", Description: "Data to write", Required: true},
				{Name: "mode", Type: "string", Description: "Open mode: w or a", Required: false},
				{Name: "end", Type: "string", Description: "Terminator appended after data", Required: false},
			},
			Returns: "boolean",
		},
		{
			ID:          "op.exists",
			Name:        "Check Existence",
			Description: "Check if a file or directory exists",
			Parameters:  []types.Parameter{pathParam},
			Returns:     "boolean",
		},
		{
			ID:          "op.mkdir",
			Name:        "Create Directory",
			Description: "Create a directory and missing parents",
			Parameters:  []types.Parameter{pathParam},
			Returns:     "boolean",
		},
		{
			ID:          "op.rmdir",
			Name:        "Delete Directory",
			Description: "Delete a directory tree; absent directory reports false",
			Parameters:  []types.Parameter{pathParam},
			Returns:     "boolean",
		},
		{
			ID:          "op.copy",
			Name:        "Copy File",
			Description: "Copy a file byte for byte",
			Parameters: []types.Parameter{
				{Name: "src", Type: "string", Description: "Source path", Required: true},
				{Name: "dst", Type: "string", Description: "Destination path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "op.move",
			Name:        "Move File",
			Description: "Relocate a file",
			Parameters: []types.Parameter{
				{Name: "src", Type: "string", Description: "Source path", Required: true},
				{Name: "dst", Type: "string", Description: "Destination path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "op.delete",
			Name:        "Delete File",
			Description: "Delete a file; absent file reports false",
			Parameters:  []types.Parameter{pathParam},
			Returns:     "boolean",
		},
		{
			ID:          "op.dirname",
			Name:        "Path Without File",
			Description: "Directory component of a file path",
			Parameters:  []types.Parameter{pathParam},
			Returns:     "string",
		},
		{
			ID:          "op.timestamp",
			Name:        "Timestamp",
			Description: "Current time as epoch seconds",
			Parameters: []types.Parameter{
				{Name: "string", Type: "boolean", Description: "Return the string form", Required: false},
			},
			Returns: "number",
		},
		{
			ID:          "op.filedate",
			Name:        "File Date",
			Description: "Current local date as YYYYMMDD",
			Returns:     "string",
		},
		{
			ID:          "op.filedatetime",
			Name:        "File Date-Time",
			Description: "Current local date-time as YYYYMMDD_HHMMSS",
			Returns:     "string",
		},
		{
			ID:          "op.get_attribute",
			Name:        "Get Attribute",
			Description: "Dotted-path lookup over a nested mapping",
			Parameters: []types.Parameter{
				{Name: "source", Type: "object", Description: "Mapping to traverse", Required: true},
				{Name: "attr_path", Type: "string", Description: "Dotted path", Required: true},
				{Name: "default", Type: "object", Description: "Fallback value", Required: false},
				{Name: "separator", Type: "string", Description: "Segment separator (default .)", Required: false},
			},
			Returns: "object",
		},
	}
}

// Execute dispatches a tool call.
func (p *Provider) Execute(toolID string, params map[string]interface{}, ctx *types.Context) (*types.Result, error) {
	p.logger.Debug("Executing op tool", zap.String("tool", toolID))

	switch toolID {
	case "op.parse":
		return p.parse(params)
	case "op.serialize":
		return p.serialize(params)
	case "op.read_json":
		return p.readJSON(params)
	case "op.write_json":
		return p.writeJSON(params)
	case "op.read":
		return p.read(params)
	case "op.read_binary":
		return p.readBinary(params)
	case "op.write":
		return p.write(params)
	case "op.exists":
		return p.exists(params)
	case "op.mkdir":
		return p.mkdir(params)
	case "op.rmdir":
		return p.rmdir(params)
	case "op.copy":
		return p.copy(params)
	case "op.move":
		return p.move(params)
	case "op.delete":
		return p.delete(params)
	case "op.dirname":
		return p.dirname(params)
	case "op.timestamp":
		return p.timestamp(params)
	case "op.filedate":
		return Success(map[string]interface{}{"date": op.FileDate()})
	case "op.filedatetime":
		return Success(map[string]interface{}{"datetime": op.FileDateTime()})
	case "op.get_attribute":
		return p.getAttribute(params)
	default:
		return Failure(fmt.Sprintf("unknown tool: %s", toolID))
	}
}

func (p *Provider) parse(params map[string]interface{}) (*types.Result, error) {
	text, ok := params["text"].(string)
	if !ok {
		return Failure("text parameter required")
	}
	value, err := op.Decode(text)
	if err != nil {
		return Failure(fmt.Sprintf("parse failed: %v", err))
	}
	return Success(map[string]interface{}{"value": value})
}

func (p *Provider) serialize(params map[string]interface{}) (*types.Result, error) {
	value, ok := params["value"]
	if !ok {
		return Failure("value parameter required")
	}
	cfg := op.DefaultEncodeConfig()
	if ascii, ok := params["ensure_ascii"].(bool); ok {
		cfg.EnsureASCII = ascii
	}
	if indent, ok := params["indent"].(float64); ok {
		cfg.Indent = int(indent)
	}
	if sortKeys, ok := params["sort_keys"].(bool); ok {
		cfg.SortKeys = sortKeys
	}
	text, err := op.Encode(value, cfg)
	if err != nil {
		return Failure(fmt.Sprintf("serialize failed: %v", err))
	}
	return Success(map[string]interface{}{"text": text})
}

func (p *Provider) readJSON(params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	charset, _ := params["charset"].(string)

	value, err := op.ReadJSONFile(path, &op.JSONFileOptions{Charset: charset})
	if err != nil {
		return Failure(fmt.Sprintf("read failed: %v", err))
	}
	return Success(map[string]interface{}{"path": path, "value": value})
}

func (p *Provider) writeJSON(params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	value, ok := params["value"]
	if !ok {
		return Failure("value parameter required")
	}
	opts := &op.JSONFileOptions{}
	if mode, ok := params["mode"].(string); ok {
		opts.Mode = mode
	}
	if indent, ok := params["indent"].(float64); ok {
		opts.Indent = int(indent)
	}
	if err := op.WriteJSONFile(value, path, opts); err != nil {
		if errors.Is(err, op.ErrInvalidMode) {
			return Failure(fmt.Sprintf("invalid mode: %v", err))
		}
		return Failure(fmt.Sprintf("write failed: %v", err))
	}
	return Success(map[string]interface{}{"written": true, "path": path})
}

func (p *Provider) read(params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	content, err := op.ToString(path)
	if err != nil {
		return Failure(fmt.Sprintf("read failed: %v", err))
	}
	return Success(map[string]interface{}{"path": path, "content": content, "size": len(content)})
}

func (p *Provider) readBinary(params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	buf, err := op.LoadFile(path)
	if err != nil {
		return Failure(fmt.Sprintf("read failed: %v", err))
	}
	data := make([]byte, buf.Len())
	if _, err := buf.Read(data); err != nil {
		return Failure(fmt.Sprintf("read failed: %v", err))
	}
	return Success(map[string]interface{}{"path": path, "data": data, "size": len(data)})
}

func (p *Provider) write(params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	data, _ := params["data"].(string)
	opts := &op.WriteOptions{Mode: op.ModeWrite}
	if mode, ok := params["mode"].(string); ok && mode != "" {
		opts.Mode = mode
	}
	if end, ok := params["end"].(string); ok {
		opts.End = end
	}

	written, err := op.WriteToFile(data, path, opts)
	if err != nil {
		return Failure(fmt.Sprintf("write failed: %v", err))
	}
	return Success(map[string]interface{}{"written": written, "path": path})
}

func (p *Provider) exists(params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok {
		return Failure("path parameter required")
	}
	return Success(map[string]interface{}{"exists": op.PathExists(path), "path": path})
}

func (p *Provider) mkdir(params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	if err := op.MakeDir(path); err != nil {
		return Failure(fmt.Sprintf("mkdir failed: %v", err))
	}
	return Success(map[string]interface{}{"created": true, "path": path})
}

func (p *Provider) rmdir(params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	removed, err := op.DeleteDir(path)
	if err != nil {
		return Failure(fmt.Sprintf("rmdir failed: %v", err))
	}
	return Success(map[string]interface{}{"removed": removed, "path": path})
}

func (p *Provider) copy(params map[string]interface{}) (*types.Result, error) {
	src, ok := params["src"].(string)
	if !ok || src == "" {
		return Failure("src parameter required")
	}
	dst, ok := params["dst"].(string)
	if !ok || dst == "" {
		return Failure("dst parameter required")
	}
	if err := op.CopyFile(src, dst); err != nil {
		return Failure(fmt.Sprintf("copy failed: %v", err))
	}
	return Success(map[string]interface{}{"copied": true, "src": src, "dst": dst})
}

func (p *Provider) move(params map[string]interface{}) (*types.Result, error) {
	src, ok := params["src"].(string)
	if !ok || src == "" {
		return Failure("src parameter required")
	}
	dst, ok := params["dst"].(string)
	if !ok || dst == "" {
		return Failure("dst parameter required")
	}
	if err := op.MoveFile(src, dst); err != nil {
		return Failure(fmt.Sprintf("move failed: %v", err))
	}
	return Success(map[string]interface{}{"moved": true, "src": src, "dst": dst})
}

func (p *Provider) delete(params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	removed, err := op.DeleteFile(path)
	if err != nil {
		return Failure(fmt.Sprintf("delete failed: %v", err))
	}
	return Success(map[string]interface{}{"removed": removed, "path": path})
}

func (p *Provider) dirname(params map[string]interface{}) (*types.Result, error) {
	path, ok := params["path"].(string)
	if !ok || path == "" {
		return Failure("path parameter required")
	}
	return Success(map[string]interface{}{"dir": op.PathWithoutFile(path)})
}

func (p *Provider) timestamp(params map[string]interface{}) (*types.Result, error) {
	if asString, ok := params["string"].(bool); ok && asString {
		return Success(map[string]interface{}{"timestamp": op.TimestampString()})
	}
	return Success(map[string]interface{}{"timestamp": op.Timestamp()})
}

func (p *Provider) getAttribute(params map[string]interface{}) (*types.Result, error) {
	attrPath, ok := params["attr_path"].(string)
	if !ok {
		return Failure("attr_path parameter required")
	}
	sep := op.DefaultPathSeparator
	if s, ok := params["separator"].(string); ok {
		sep = s
	}
	value := op.GetAttributeSep(params["source"], attrPath, params["default"], sep)
	return Success(map[string]interface{}{"value": value})
}

// Success wraps data in a successful result.
func Success(data map[string]interface{}) (*types.Result, error) {
	return &types.Result{Success: true, Data: data}, nil
}

// Failure wraps a message in a failed result.
func Failure(message string) (*types.Result, error) {
	return &types.Result{Success: false, Error: &message}, nil
}
