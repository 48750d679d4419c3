package script

import (
	"strings"
	"testing"

	"jstyper/internal/env"
	"jstyper/internal/lattice"
	"jstyper/internal/names"
	"jstyper/internal/typer"
)

const sampleScript = `[
  {"op": {"kind": "loadString", "outputs": [1]}},
  {"op": {"kind": "reassign", "inputs": [2, 1]}}
]`

func TestDecodeAndRunRoundTrips(t *testing.T) {
	in := names.New()
	prog, err := Decode(strings.NewReader(sampleScript), in, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(prog.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(prog.Steps))
	}

	ty := typer.New(env.NewStaticEnvironment(in), in)
	prog.Run(ty)

	got := ty.TypeOf(2)
	if !got.Equal(lattice.String) {
		t.Fatalf("var 2 = %v, want string", got)
	}
}

func TestDecodeRejectsUnknownOpKind(t *testing.T) {
	in := names.New()
	_, err := Decode(strings.NewReader(`[{"op": {"kind": "bogus"}}]`), in, nil)
	if err == nil {
		t.Fatal("expected decode error for unknown op kind")
	}
}

func TestDecodeRejectsUnknownBlockKind(t *testing.T) {
	in := names.New()
	_, err := Decode(strings.NewReader(`[{"enterBlock": {"kind": "bogus"}}]`), in, nil)
	if err == nil {
		t.Fatal("expected decode error for unknown block kind")
	}
}
