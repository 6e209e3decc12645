package logfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/valyala/fastjson"

	"github.com/getmockd/logcapture/pkg/logentry"
)

// Common decoding errors.
var (
	ErrNotObject = errors.New("log line is not a JSON object")
	ErrNoMessage = errors.New("log line has no message field")
)

// maxLineSize bounds a single log line.
const maxLineSize = 1 << 20

// DecodedError is an error reconstructed from its logged text.
type DecodedError struct {
	Message string
}

func (e *DecodedError) Error() string {
	return e.Message
}

// Keys names the fields with special meaning. The first present key of each
// list wins.
type Keys struct {
	Level   []string
	Message []string
	Logger  []string
	Marker  []string
	Error   []string

	// Ignore lists fields that are dropped instead of becoming properties.
	Ignore []string
}

// DefaultKeys covers log/slog, zerolog and logrus JSON output.
var DefaultKeys = Keys{
	Level:   []string{"level", "lvl", "severity"},
	Message: []string{"msg", "message"},
	Logger:  []string{"logger", "name"},
	Marker:  []string{"marker"},
	Error:   []string{"error", "err"},
	Ignore:  []string{"time", "ts", "timestamp", "caller", "source"},
}

// Decoder turns JSON log lines into entries. It is safe for concurrent use.
type Decoder struct {
	keys            Keys
	optionalMessage bool
	pool            fastjson.ParserPool
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithKeys replaces the recognized field names.
func WithKeys(keys Keys) Option {
	return func(d *Decoder) {
		d.keys = keys
	}
}

// WithOptionalMessage decodes lines without a message field as entries with
// an empty message instead of failing with ErrNoMessage.
func WithOptionalMessage() Option {
	return func(d *Decoder) {
		d.optionalMessage = true
	}
}

// NewDecoder creates a decoder using DefaultKeys unless overridden.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{keys: DefaultKeys}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultDecoder = NewDecoder()

// DecodeLine decodes one line with the default decoder.
func DecodeLine(line []byte) (logentry.Entry, error) {
	return defaultDecoder.Decode(line)
}

// Decode decodes a single JSON object into an entry.
func (d *Decoder) Decode(line []byte) (logentry.Entry, error) {
	p := d.pool.Get()
	defer d.pool.Put(p)

	v, err := p.ParseBytes(line)
	if err != nil {
		return logentry.Entry{}, fmt.Errorf("parse log line: %w", err)
	}
	obj, err := v.Object()
	if err != nil {
		return logentry.Entry{}, ErrNotObject
	}

	fields := make(map[string]string)
	var order []string
	obj.Visit(func(key []byte, val *fastjson.Value) {
		flatten(string(key), val, fields, &order)
	})

	e := logentry.Entry{Level: logentry.LevelUnknown}
	consumed := make(map[string]bool)

	if k, ok := firstKey(fields, d.keys.Message); ok {
		e.Message = fields[k]
		consumed[k] = true
	} else if !d.optionalMessage {
		return logentry.Entry{}, ErrNoMessage
	}

	if k, ok := firstKey(fields, d.keys.Level); ok {
		e.Level = ParseLevel(fields[k])
		consumed[k] = true
	}
	if k, ok := firstKey(fields, d.keys.Logger); ok {
		e.Logger = fields[k]
		consumed[k] = true
	}
	if k, ok := firstKey(fields, d.keys.Marker); ok {
		e.Marker = fields[k]
		consumed[k] = true
	}
	if k, ok := firstKey(fields, d.keys.Error); ok {
		e.Err = &DecodedError{Message: fields[k]}
		consumed[k] = true
	}
	for _, k := range d.keys.Ignore {
		consumed[k] = true
	}

	for _, k := range order {
		if consumed[k] || consumed[topLevel(k)] {
			continue
		}
		if e.Properties == nil {
			e.Properties = make(map[string]string)
		}
		e.Properties[k] = fields[k]
	}
	return e, nil
}

// ReadAll decodes every non-blank line from r. Errors report the 1-based line
// number.
func (d *Decoder) ReadAll(r io.Reader) ([]logentry.Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var out []logentry.Entry
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		e, err := d.Decode(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		out = append(out, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log lines: %w", err)
	}
	return out, nil
}

// ReadFile decodes a JSON-lines file.
func (d *Decoder) ReadFile(path string) ([]logentry.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	entries, err := d.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// ParseLevel maps slog, zerolog and logrus level names onto canonical levels.
// slog's "DEBUG-4" is TRACE; "fatal", "panic" and offsets like "INFO+2" have no
// canonical mapping and become LevelUnknown.
func ParseLevel(s string) logentry.Level {
	if strings.EqualFold(s, "DEBUG-4") {
		return logentry.LevelTrace
	}
	return logentry.ParseLevel(s)
}

// flatten stores val under key, descending into objects with dotted keys.
func flatten(key string, val *fastjson.Value, fields map[string]string, order *[]string) {
	switch val.Type() {
	case fastjson.TypeObject:
		obj, _ := val.Object()
		obj.Visit(func(k []byte, v *fastjson.Value) {
			flatten(key+"."+string(k), v, fields, order)
		})
		return
	case fastjson.TypeString:
		sb, _ := val.StringBytes()
		fields[key] = string(sb)
	default:
		// Numbers keep their literal text; bools, null and arrays their JSON.
		fields[key] = val.String()
	}
	*order = append(*order, key)
}

func firstKey(fields map[string]string, candidates []string) (string, bool) {
	for _, k := range candidates {
		if _, ok := fields[k]; ok {
			return k, true
		}
	}
	return "", false
}

func topLevel(key string) string {
	if i := strings.IndexByte(key, '.'); i >= 0 {
		return key[:i]
	}
	return key
}
