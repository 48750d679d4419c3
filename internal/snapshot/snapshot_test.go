package snapshot

import (
	"path/filepath"
	"testing"

	"jstyper/internal/ir"
	"jstyper/internal/lattice"
	"jstyper/internal/names"
)

func TestCaptureSortsByVarID(t *testing.T) {
	in := names.New()
	types := map[ir.VarID]lattice.Type{
		3: lattice.String,
		1: lattice.Integer,
		2: lattice.Boolean,
	}
	snap := Capture("scenario", types, in)
	if len(snap.Vars) != 3 {
		t.Fatalf("expected 3 vars, got %d", len(snap.Vars))
	}
	for i, want := range []uint32{1, 2, 3} {
		if snap.Vars[i].Var != want {
			t.Fatalf("vars[%d] = %d, want %d", i, snap.Vars[i].Var, want)
		}
	}
}

func TestSaveLoadRoundTrips(t *testing.T) {
	in := names.New()
	orig := Capture("roundtrip", map[ir.VarID]lattice.Type{1: lattice.String}, in)

	path := filepath.Join(t.TempDir(), "scenario.snap")
	if err := Save(path, orig); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := Diff(orig, loaded); len(diff) != 0 {
		t.Fatalf("round-tripped snapshot disagrees: %v", diff)
	}
	if loaded.Label != "roundtrip" {
		t.Fatalf("label = %q, want %q", loaded.Label, "roundtrip")
	}
}

func TestDiffReportsChangedAndMissingVars(t *testing.T) {
	in := names.New()
	want := Capture("scenario", map[ir.VarID]lattice.Type{
		1: lattice.String,
		2: lattice.Integer,
	}, in)
	got := Capture("scenario", map[ir.VarID]lattice.Type{
		1: lattice.Boolean, // changed
		3: lattice.Float,   // only in got
	}, in)

	mismatches := Diff(want, got)
	if len(mismatches) != 3 {
		t.Fatalf("expected 3 mismatches, got %d: %v", len(mismatches), mismatches)
	}
}

func TestLoadRejectsSchemaMismatch(t *testing.T) {
	snap := &Snapshot{Schema: schemaVersion + 1, Label: "future"}
	path := filepath.Join(t.TempDir(), "scenario.snap")
	if err := Save(path, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected schema mismatch error")
	}
}
