package session

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/paiml/ruchy-sub009/value"
)

// historyTail bounds how many lines a freshly loaded history file keeps,
// per spec's "truncated to last N entries on session start."
const historyTail = 500

// LoadHistory reads the history file at path, one input per line with
// a newline escaped as the two-character sequence `\n` and a backslash
// doubled to `\\` (a single input may itself contain real newlines, e.g.
// a multiline block), returning at most the most recent historyTail
// entries.
func LoadHistory(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, err
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l == "" {
			continue
		}
		out = append(out, unescapeHistoryLine(l))
	}
	if len(out) > historyTail {
		out = out[len(out)-historyTail:]
	}

	return out, nil
}

// AppendHistory appends one input to the history file, creating it if
// necessary — append-only, per spec.
func AppendHistory(path, input string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintln(f, escapeHistoryLine(input))

	return err
}

func escapeHistoryLine(s string) string {
	return strings.NewReplacer("\\", "\\\\", "\n", "\\n").Replace(s)
}

func unescapeHistoryLine(s string) string {
	return strings.NewReplacer("\\\\", "\\", "\\n", "\n").Replace(s)
}

// SnapshotVersion is the current `:save` wire format version (spec §6:
// "versioned JSON").
const SnapshotVersion = 1

// BindingSnapshot is one entry of a saved snapshot file.
type BindingSnapshot struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	ValueJSON string `json:"value_json"`
}

// Snapshot is the `:save` wire format: `{version, bindings}`.
type Snapshot struct {
	Version  int               `json:"version"`
	Bindings []BindingSnapshot `json:"bindings"`
}

// unserializablePlaceholder is the value_json a closure or DataFrame
// binding gets instead of its real value — these are listed by name for
// `:env` parity but excluded from `:load`'s restore, per spec.
const unserializablePlaceholder = `"<unserializable>"`

// Save builds a Snapshot of every binding currently in scope and writes
// it to path as indented JSON.
func (s *Session) Save(path string) error {
	names := append([]string(nil), s.scope.Names()...)
	sort.Strings(names)

	snap := Snapshot{Version: SnapshotVersion}
	for _, name := range names {
		v, _ := s.scope.Lookup(name)
		ty := "unknown"
		if scheme, ok := s.typeEnv.Lookup(name); ok {
			ty = scheme.Body.String()
		}

		vj, err := valueToJSON(v)
		if err != nil {
			snap.Bindings = append(snap.Bindings, BindingSnapshot{Name: name, Type: ty, ValueJSON: unserializablePlaceholder})

			continue
		}
		snap.Bindings = append(snap.Bindings, BindingSnapshot{Name: name, Type: ty, ValueJSON: vj})
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Load reads a Snapshot from path and restores every binding whose
// value_json round-trips into a concrete value.Value, skipping
// unserializable placeholders (closures, DataFrames) as spec requires.
func (s *Session) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}

	for _, b := range snap.Bindings {
		if b.ValueJSON == unserializablePlaceholder {
			continue
		}
		v, err := valueFromJSON(b.ValueJSON)
		if err != nil {
			continue
		}
		s.scope.Define(b.Name, v, true)
	}

	return nil
}

// valueToJSON serializes the primitive/collection slice of the value
// model that round-trips cleanly; Closure, Builtin, DataFrame, and Future
// are deliberately rejected (spec: "Values that cannot be serialized...
// are excluded from restore").
func valueToJSON(v value.Value) (string, error) {
	wire, err := toWire(v)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func toWire(v value.Value) (any, error) {
	switch tv := v.(type) {
	case value.Integer:
		return map[string]any{"kind": "int", "v": int64(tv)}, nil
	case value.Float:
		return map[string]any{"kind": "float", "v": float64(tv)}, nil
	case value.Bool:
		return map[string]any{"kind": "bool", "v": bool(tv)}, nil
	case value.Char:
		return map[string]any{"kind": "char", "v": string(rune(tv))}, nil
	case value.Str:
		return map[string]any{"kind": "string", "v": string(tv)}, nil
	case value.Unit:
		return map[string]any{"kind": "unit"}, nil
	case value.Nil:
		return map[string]any{"kind": "nil"}, nil
	case *value.List:
		elems := make([]any, len(tv.Elems))
		for i, e := range tv.Elems {
			w, err := toWire(e)
			if err != nil {
				return nil, err
			}
			elems[i] = w
		}

		return map[string]any{"kind": "list", "v": elems}, nil
	case *value.Tuple:
		elems := make([]any, len(tv.Elems))
		for i, e := range tv.Elems {
			w, err := toWire(e)
			if err != nil {
				return nil, err
			}
			elems[i] = w
		}

		return map[string]any{"kind": "tuple", "v": elems}, nil
	case *value.Mapping:
		entries := make(map[string]any, tv.Len())
		for _, k := range tv.Keys() {
			mv, _ := tv.Get(k)
			w, err := toWire(mv)
			if err != nil {
				return nil, err
			}
			entries[k] = w
		}

		return map[string]any{"kind": "map", "v": entries}, nil
	default:
		return nil, fmt.Errorf("value of kind %q cannot be serialized", v.Kind())
	}
}

type wireNode struct {
	Kind string          `json:"kind"`
	V    json.RawMessage `json:"v"`
}

func valueFromJSON(s string) (value.Value, error) {
	var w wireNode
	if err := json.Unmarshal([]byte(s), &w); err != nil {
		return nil, err
	}

	return fromWire(w)
}

func fromWire(w wireNode) (value.Value, error) {
	switch w.Kind {
	case "int":
		var n int64
		if err := json.Unmarshal(w.V, &n); err != nil {
			return nil, err
		}

		return value.Integer(n), nil
	case "float":
		var f float64
		if err := json.Unmarshal(w.V, &f); err != nil {
			return nil, err
		}

		return value.Float(f), nil
	case "bool":
		var b bool
		if err := json.Unmarshal(w.V, &b); err != nil {
			return nil, err
		}

		return value.Bool(b), nil
	case "char":
		var cs string
		if err := json.Unmarshal(w.V, &cs); err != nil {
			return nil, err
		}
		r := []rune(cs)
		if len(r) == 0 {
			return value.Char(0), nil
		}

		return value.Char(r[0]), nil
	case "string":
		var ss string
		if err := json.Unmarshal(w.V, &ss); err != nil {
			return nil, err
		}

		return value.Str(ss), nil
	case "unit":
		return value.Unit{}, nil
	case "nil":
		return value.Nil{}, nil
	case "list":
		var raws []wireNode
		if err := json.Unmarshal(w.V, &raws); err != nil {
			return nil, err
		}
		elems := make([]value.Value, len(raws))
		for i, r := range raws {
			ev, err := fromWire(r)
			if err != nil {
				return nil, err
			}
			elems[i] = ev
		}

		return value.NewList(elems), nil
	case "tuple":
		var raws []wireNode
		if err := json.Unmarshal(w.V, &raws); err != nil {
			return nil, err
		}
		elems := make([]value.Value, len(raws))
		for i, r := range raws {
			ev, err := fromWire(r)
			if err != nil {
				return nil, err
			}
			elems[i] = ev
		}

		return value.NewTuple(elems), nil
	case "map":
		var raws map[string]wireNode
		if err := json.Unmarshal(w.V, &raws); err != nil {
			return nil, err
		}
		m := value.NewMapping()
		for k, r := range raws {
			mv, err := fromWire(r)
			if err != nil {
				return nil, err
			}
			m.Set(k, mv)
		}

		return m, nil
	default:
		return nil, fmt.Errorf("unknown wire kind %q", w.Kind)
	}
}

