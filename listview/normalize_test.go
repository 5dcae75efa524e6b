package listview

import "testing"

var productFields = []FieldSpec{
	{Name: "name", Kind: KindString},
	{Name: "category", Source: "categ_id", Kind: KindRelation},
	{Name: "qty", Source: "qty_available", Kind: KindNumber},
	{Name: "active", Kind: KindBool},
}

func TestNormalize_FlatScalarsPassThrough(t *testing.T) {
	raw := []RawRecord{{
		"id":            float64(4),
		"name":          "Pallet Wrap",
		"qty_available": float64(12),
		"active":        true,
	}}

	rows := Normalize(raw, productFields)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.ID() != 4 {
		t.Fatalf("expected id 4, got %d", row.ID())
	}
	if row["name"] != "Pallet Wrap" {
		t.Fatalf("expected name preserved, got %v", row["name"])
	}
	if row["qty"] != float64(12) {
		t.Fatalf("expected qty 12, got %v", row["qty"])
	}
	if row["active"] != true {
		t.Fatalf("expected active true, got %v", row["active"])
	}
	// Absent relation gets the fallback pair.
	if row["category"] != FallbackText || row["categoryId"] != int64(0) {
		t.Fatalf("expected fallback relation, got %v / %v", row["category"], row["categoryId"])
	}
}

func TestNormalize_TupleReduction(t *testing.T) {
	raw := []RawRecord{{
		"id":       float64(1),
		"categ_id": []any{float64(7), "Main Warehouse"},
	}}

	row := Normalize(raw, productFields)[0]
	if row["category"] != "Main Warehouse" {
		t.Fatalf("expected label, got %v", row["category"])
	}
	if row["categoryId"] != int64(7) {
		t.Fatalf("expected id 7, got %v", row["categoryId"])
	}
}

func TestNormalize_FallbacksForMissingAndFalseValues(t *testing.T) {
	// Odoo sends false for unset char fields.
	raw := []RawRecord{{"id": float64(2), "name": false, "active": nil}}

	row := Normalize(raw, productFields)[0]
	if row["name"] != FallbackText {
		t.Fatalf("expected %q for false char, got %v", FallbackText, row["name"])
	}
	if row["qty"] != float64(0) {
		t.Fatalf("expected 0 for missing number, got %v", row["qty"])
	}
	if row["active"] != false {
		t.Fatalf("expected false for nil bool, got %v", row["active"])
	}
}

func TestNormalize_CardinalityPreserved(t *testing.T) {
	raw := []RawRecord{
		{"id": float64(1)},
		{"wrong": "shape"},
		{"id": float64(3), "categ_id": []any{"bad", "tuple", "arity"}},
	}
	rows := Normalize(raw, productFields)
	if len(rows) != len(raw) {
		t.Fatalf("expected %d rows, got %d", len(raw), len(rows))
	}
}

func TestNormalize_NilInputYieldsEmpty(t *testing.T) {
	rows := Normalize(nil, productFields)
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", rows)
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	tuple := []any{float64(9), "Bin A"}
	raw := []RawRecord{{"id": float64(1), "categ_id": tuple, "name": "Crate"}}

	_ = Normalize(raw, productFields)

	if raw[0]["name"] != "Crate" || len(raw[0]) != 3 {
		t.Fatalf("raw record mutated: %v", raw[0])
	}
	if tuple[0] != float64(9) || tuple[1] != "Bin A" {
		t.Fatalf("relation tuple mutated: %v", tuple)
	}
}
