// Package listview turns loosely-typed ERP records into display rows and
// runs the shared filter/paginate/export pipeline every list page uses.
// Pages differ only in configuration (field specs, predicate fields,
// export columns); the pipeline logic lives here once.
package listview

import "math"

// Kind selects the fallback and decoding rule for a field.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	// KindRelation decodes an ERP [id, label] pair: the label becomes the
	// display value and the id is retained under "<name>Id".
	KindRelation
)

// FallbackText is substituted for absent string and relation values.
const FallbackText = "—"

// FieldSpec maps one raw ERP field onto a display row field.
type FieldSpec struct {
	Name   string
	Source string
	Kind   Kind
}

// RawRecord is a decoded ERP record. Values are whatever encoding/json
// produced: string, float64, bool, nil, or []any{id, label} for relations.
type RawRecord = map[string]any

// Row is a display-ready record. Values are strings, float64s or bools;
// the "id" key holds the record identity.
type Row map[string]any

// ID returns the row identity, or 0 when it is missing.
func (r Row) ID() int64 {
	switch v := r["id"].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

// String returns the named field as a string, or "" when it is absent or
// not a string. Filter predicates treat "" as a non-match.
func (r Row) String(name string) string {
	s, _ := r[name].(string)
	return s
}

// Normalize converts raw ERP records into display rows. Every record in
// produces exactly one row out; malformed individual values fall back to
// the kind's zero display value rather than dropping the record. The raw
// slice is never mutated.
func Normalize(raw []RawRecord, fields []FieldSpec) []Row {
	if raw == nil {
		return []Row{}
	}
	rows := make([]Row, 0, len(raw))
	for _, rec := range raw {
		row := make(Row, len(fields)+2)
		row["id"] = recordID(rec)
		for _, f := range fields {
			src := f.Source
			if src == "" {
				src = f.Name
			}
			decodeField(row, f, rec[src])
		}
		rows = append(rows, row)
	}
	return rows
}

func recordID(rec RawRecord) int64 {
	switch v := rec["id"].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

func decodeField(row Row, f FieldSpec, v any) {
	switch f.Kind {
	case KindRelation:
		id, label, ok := relationPair(v)
		if !ok {
			row[f.Name] = FallbackText
			row[f.Name+"Id"] = int64(0)
			return
		}
		row[f.Name] = label
		row[f.Name+"Id"] = id
	case KindNumber:
		row[f.Name] = numberValue(v)
	case KindBool:
		b, _ := v.(bool)
		row[f.Name] = b
	default:
		row[f.Name] = stringValue(v)
	}
}

// relationPair decodes an ERP many2one value. The backend sends either a
// two-element [id, label] array, false for "not set", or occasionally a
// bare id.
func relationPair(v any) (int64, string, bool) {
	switch t := v.(type) {
	case []any:
		if len(t) != 2 {
			return 0, "", false
		}
		id, okID := t[0].(float64)
		label, okLabel := t[1].(string)
		if !okID || !okLabel {
			return 0, "", false
		}
		return int64(id), label, true
	case float64:
		if t == math.Trunc(t) {
			return int64(t), FallbackText, true
		}
	}
	return 0, "", false
}

func stringValue(v any) string {
	// Odoo sends false for empty char fields.
	if s, ok := v.(string); ok {
		return s
	}
	return FallbackText
}

func numberValue(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	case int:
		return float64(t)
	}
	return 0
}
