package env

import (
	"os"
	"path/filepath"
	"testing"

	"jstyper/internal/diag"
	"jstyper/internal/lattice"
	"jstyper/internal/names"
)

func writeTOML(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "static.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadStaticEnvironmentResolvesBuiltins(t *testing.T) {
	path := writeTOML(t, `
[builtins.parseInt]
bits = ["string"]
call = { params = [{ type = { bits = ["string"] } }], returns = { bits = ["integer"] } }
`)
	in := names.New()
	se, err := LoadStaticEnvironment(path, in, nil)
	if err != nil {
		t.Fatalf("LoadStaticEnvironment: %v", err)
	}
	got := se.TypeOfBuiltin(in.Intern("parseInt"))
	if got.IsUnknown() {
		t.Fatalf("expected parseInt to resolve to a concrete type, got unknown")
	}
}

func TestLoadStaticEnvironmentReportsConfigParseError(t *testing.T) {
	path := writeTOML(t, "not = [valid toml")
	in := names.New()
	bag := diag.NewBag(10)
	rep := diag.BagReporter{Bag: bag}

	if _, err := LoadStaticEnvironment(path, in, rep); err == nil {
		t.Fatal("expected parse error")
	}
	if !bag.HasErrors() {
		t.Fatal("expected a reported diagnostic for the malformed TOML")
	}
	if bag.Items()[0].Code != diag.EnvConfigParseError {
		t.Fatalf("expected EnvConfigParseError, got %v", bag.Items()[0].Code)
	}
}

func TestLoadStaticEnvironmentReportsNFCBuiltinCollision(t *testing.T) {
	// "café" with a combining acute accent (e + U+0301) normalizes under NFC
	// to the same name as "café" typed with the precomposed é (U+00E9); two
	// TOML keys that look distinct collide on the same interned names.ID.
	path := writeTOML(t, `
[builtins."café"]
bits = ["string"]

[builtins."café"]
bits = ["integer"]
`)
	in := names.New()
	bag := diag.NewBag(10)
	rep := diag.BagReporter{Bag: bag}

	se, err := LoadStaticEnvironment(path, in, rep)
	if err != nil {
		t.Fatalf("LoadStaticEnvironment: %v", err)
	}
	if !bag.HasWarnings() {
		t.Fatal("expected a warning for the NFC-colliding builtin names")
	}
	if bag.Items()[0].Code != diag.EnvDuplicateBuiltin {
		t.Fatalf("expected EnvDuplicateBuiltin, got %v", bag.Items()[0].Code)
	}
	got := se.TypeOfBuiltin(in.Intern("café"))
	if got.IsUnknown() {
		t.Fatalf("expected the surviving entry to resolve to a concrete type")
	}
}

func TestGroupPropertyOverridesDeclaredGlobal(t *testing.T) {
	in := names.New()
	se := NewStaticEnvironment(in)
	se.RegisterBuiltin("B", lattice.Object(nil, nil, nil).WithGroup(in.Intern("B")))
	se.RegisterGroupProperty("B", "foo", lattice.Float)
	se.DeclareProperty(in.Intern("foo"), lattice.String)

	bGroup := in.Intern("B")
	got := se.TypeOfProperty(in.Intern("foo"), bGroup, true)
	if !got.Equal(lattice.Float) {
		t.Fatalf("expected per-group property to win, got %v", got)
	}
}

func TestUnknownGroupFallsBackToDeclared(t *testing.T) {
	in := names.New()
	se := NewStaticEnvironment(in)
	se.DeclareProperty(in.Intern("foo"), lattice.String)

	got := se.TypeOfProperty(in.Intern("foo"), names.NoID, false)
	if !got.Equal(lattice.String) {
		t.Fatalf("expected declared global property, got %v", got)
	}
}

func TestPropertyOnUnknownGroupIsUnknown(t *testing.T) {
	in := names.New()
	se := NewStaticEnvironment(in)

	got := se.TypeOfProperty(in.Intern("foo"), in.Intern("Mystery"), true)
	if !got.IsUnknown() {
		t.Fatalf("expected unknown, got %v", got)
	}
}

func TestBuiltinOfUnknownGroupPropertyIsUnknown(t *testing.T) {
	// Scenario 6 from the spec: env knows builtin B is .object(ofGroup:"B")
	// and property foo on group B is .float; same getProperty on a builtin
	// of unknown group yields .unknown.
	in := names.New()
	se := NewStaticEnvironment(in)
	se.RegisterBuiltin("B", lattice.Object(nil, nil, nil).WithGroup(in.Intern("B")))
	se.RegisterGroupProperty("B", "foo", lattice.Float)
	se.RegisterBuiltin("Plain", lattice.Object(nil, nil, nil))

	plain := se.TypeOfBuiltin(in.Intern("Plain"))
	group, hasGroup := plain.Group()
	got := se.TypeOfProperty(in.Intern("foo"), group, hasGroup)
	if !got.IsUnknown() {
		t.Fatalf("expected unknown for builtin of unknown group, got %v", got)
	}
}

func TestDefaultPrimitivesAreCanonical(t *testing.T) {
	in := names.New()
	se := NewStaticEnvironment(in)
	if !se.IntType().Equal(lattice.Integer) {
		t.Fatalf("expected default int type to be canonical Integer")
	}
}
