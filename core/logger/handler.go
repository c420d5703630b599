package logger

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

type format string

const (
	formatJSON format = "json"
	formatKV   format = "kv"

	tsLayout = "2006-01-02T15:04:05.000Z07:00"
)

var errNoWriter = errors.New("logger: writer not initialized")

// field is one flattened key/value pair ready for encoding.
type field struct {
	key string
	val any
}

// handler writes each record as a single ordered line, either JSON or
// space-separated key=value pairs.
type handler struct {
	level  slog.Leveler
	out    *asyncWriter
	format format
	preset []field
	prefix string
}

func newHandler(level slog.Leveler, out *asyncWriter, f format) *handler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &handler{level: level, out: out, format: f}
}

func (h *handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *handler) Handle(ctx context.Context, r slog.Record) error {
	if h.out == nil {
		return errNoWriter
	}
	asJSON := h.format == formatJSON

	e := make(entry, 16)
	ts := r.Time.UTC()
	e["ts"] = ts.Truncate(time.Millisecond).Format(tsLayout)
	e["level"] = r.Level.String()
	if asJSON {
		e["ts_unix_nano"] = ts.UnixNano()
	}
	for _, f := range h.preset {
		e[f.key] = f.val
	}
	r.Attrs(func(a slog.Attr) bool {
		flatten(h.prefix, a, e.set)
		return true
	})
	e.fromContext(ctx)
	e.finish(r.Message, asJSON)

	var line []byte
	if asJSON {
		var err error
		if line, err = e.jsonLine(); err != nil {
			return err
		}
	} else {
		line = e.kvLine()
	}
	return h.out.Write(append(line, '\n'))
}

// WithAttrs resolves attrs under the current group prefix right away, so a
// later WithGroup does not rename them.
func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.preset = slices.Clip(h.preset)
	for _, a := range attrs {
		flatten(h.prefix, a, func(k string, v any) {
			next.preset = append(next.preset, field{k, v})
		})
	}
	return &next
}

func (h *handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	if next.prefix == "" {
		next.prefix = name
	} else {
		next.prefix += "." + name
	}
	return &next
}

// flatten expands groups into dotted keys and hands each leaf to emit after
// converting it to a plain value.
func flatten(prefix string, a slog.Attr, emit func(string, any)) {
	key := a.Key
	if prefix != "" {
		if key == "" {
			key = prefix
		} else {
			key = prefix + "." + key
		}
	}
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		for _, child := range v.Group() {
			flatten(key, child, emit)
		}
		return
	}
	if key == "" {
		return
	}
	if k, val, ok := plain(key, v); ok {
		emit(k, val)
	}
}

// plain converts v to a JSON-friendly value. Durations are reported in
// milliseconds and their key gains an _ms suffix.
func plain(key string, v slog.Value) (string, any, bool) {
	switch v.Kind() {
	case slog.KindString:
		return key, strings.TrimSpace(v.String()), true
	case slog.KindBool:
		return key, v.Bool(), true
	case slog.KindInt64:
		return key, v.Int64(), true
	case slog.KindUint64:
		if u := v.Uint64(); u <= math.MaxInt64 {
			return key, int64(u), true
		}
		return key, v.Uint64(), true
	case slog.KindFloat64:
		return key, v.Float64(), true
	case slog.KindDuration:
		return msKey(key), RoundMS(v.Duration()).Milliseconds(), true
	case slog.KindTime:
		return key, v.Time().UTC().Format(time.RFC3339Nano), true
	}
	switch x := v.Any().(type) {
	case nil:
		return "", nil, false
	case error:
		return key, x.Error(), true
	case time.Duration:
		return msKey(key), RoundMS(x).Milliseconds(), true
	case fmt.Stringer:
		return key, x.String(), true
	default:
		return key, fmt.Sprint(x), true
	}
}

func msKey(key string) string {
	if strings.HasSuffix(key, "_ms") {
		return key
	}
	return key + "_ms"
}

// entry is the set of fields collected for one line.
type entry map[string]any

func (e entry) set(k string, v any) { e[k] = v }

func (e entry) str(k string) string {
	s, _ := e[k].(string)
	return s
}

func (e entry) setDefault(k string, v any) {
	if _, ok := e[k]; !ok {
		e[k] = v
	}
}

// fromContext fills update identifiers that were not logged explicitly.
func (e entry) fromContext(ctx context.Context) {
	if ctx == nil {
		return
	}
	if rid := RIDFrom(ctx); rid != "" {
		e.setDefault("rid", rid)
	}
	if id := UpdateIDFrom(ctx); id != 0 {
		e.setDefault("update_id", id)
	}
	if id := UserIDFrom(ctx); id != 0 {
		e.setDefault("user_id", id)
	}
	if id := ChatIDFrom(ctx); id != 0 {
		e.setDefault("chat_id", id)
	}
	if name := HandlerFrom(ctx); name != "" {
		e.setDefault("handler", name)
	}
}

// finish applies the line conventions: compact rid, event and component
// defaults, normalized status and outcome, and no empty values.
func (e entry) finish(msg string, keepFullRID bool) {
	if rid := e.str("rid"); rid != "" {
		if short := CompactRID(rid); short != rid {
			if keepFullRID {
				e.setDefault("rid_full", rid)
			}
			e["rid"] = short
		}
	}
	if e.str("event") == "" {
		e["event"] = cmp.Or(msg, "unknown")
	}
	if e.str("component") == "" {
		e["component"] = "app"
	}
	if s := e.str("status"); s != "" {
		e["status"] = cleanStatus(s)
	}
	if o := e.str("outcome"); o != "" {
		if clean, ok := cleanOutcome(o); ok {
			e["outcome"] = clean
		} else {
			delete(e, "outcome")
		}
	}
	for k, v := range e {
		if v == nil || v == "" {
			delete(e, k)
		}
	}
}

// keys returns the known fields in fieldOrder followed by the rest sorted.
func (e entry) keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		ra, oka := fieldRank[a]
		rb, okb := fieldRank[b]
		switch {
		case oka && okb:
			return ra - rb
		case oka:
			return -1
		case okb:
			return 1
		}
		return strings.Compare(a, b)
	})
	return keys
}

func (e entry) jsonLine() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, k := range e.keys() {
		val, err := json.Marshal(e[k])
		if err != nil {
			return nil, fmt.Errorf("logger: encode %s: %w", k, err)
		}
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(k))
		b.WriteByte(':')
		b.Write(val)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func (e entry) kvLine() []byte {
	var b bytes.Buffer
	for i, k := range e.keys() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteByte('=')
		s := fmt.Sprint(e[k])
		if strings.ContainsFunc(s, needsQuote) {
			s = strconv.Quote(s)
		}
		b.WriteString(s)
	}
	return b.Bytes()
}

func needsQuote(r rune) bool {
	return r <= ' ' || r == '=' || r == '"'
}
