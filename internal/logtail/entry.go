package logtail

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Field is one extra key/value pair of a log entry.
type Field struct {
	Key   string
	Value string
}

// Entry is a parsed zerolog JSON line.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
	Fields  []Field
}

// Parse decodes one line written by the zerolog logger. Lines that are not
// JSON objects come back as a message-only entry.
func Parse(line string) Entry {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{Message: strings.TrimSpace(line)}
	}

	var e Entry
	if v, ok := raw[zerolog.TimestampFieldName].(string); ok {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			e.Time = ts
		}
	}
	if v, ok := raw[zerolog.LevelFieldName].(string); ok {
		e.Level = v
	}
	if v, ok := raw[zerolog.MessageFieldName].(string); ok {
		e.Message = v
	}

	for k, v := range raw {
		switch k {
		case zerolog.TimestampFieldName, zerolog.LevelFieldName, zerolog.MessageFieldName:
			continue
		}
		e.Fields = append(e.Fields, Field{Key: k, Value: fmt.Sprint(v)})
	}
	sort.Slice(e.Fields, func(i, j int) bool { return e.Fields[i].Key < e.Fields[j].Key })
	return e
}

// String renders the entry as "15:04:05 LVL message key=value".
func (e Entry) String() string {
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(e.Time.In(time.Local).Format("15:04:05"))
		b.WriteByte(' ')
	}
	if e.Level != "" {
		b.WriteString(shortLevel(e.Level))
		b.WriteByte(' ')
	}
	b.WriteString(e.Message)
	for _, f := range e.Fields {
		b.WriteByte(' ')
		b.WriteString(f.Key)
		b.WriteByte('=')
		b.WriteString(f.Value)
	}
	return strings.TrimSpace(b.String())
}

func shortLevel(level string) string {
	switch strings.ToLower(level) {
	case "debug":
		return "DBG"
	case "info":
		return "INF"
	case "warn":
		return "WRN"
	case "error":
		return "ERR"
	case "fatal":
		return "FTL"
	default:
		return strings.ToUpper(level)
	}
}
