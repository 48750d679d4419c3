package names

import "testing"

func TestInternerDeduplicates(t *testing.T) {
	in := New()
	a := in.Intern("foo")
	b := in.Intern("foo")
	if a != b {
		t.Fatalf("expected identical IDs, got %d and %d", a, b)
	}
}

func TestInternerNoIDIsEmptyString(t *testing.T) {
	in := New()
	s, ok := in.Lookup(NoID)
	if !ok || s != "" {
		t.Fatalf("expected NoID to resolve to empty string, got %q ok=%v", s, ok)
	}
}

func TestInternerNormalizesUnicode(t *testing.T) {
	in := New()
	// "é" as a single codepoint vs. "e" + combining acute accent.
	precomposed := in.Intern("é")
	decomposed := in.Intern("é")
	if precomposed != decomposed {
		t.Fatalf("expected NFC-normalized forms to intern identically")
	}
}

func TestInternerLookupInvalid(t *testing.T) {
	in := New()
	if _, ok := in.Lookup(ID(999)); ok {
		t.Fatalf("expected invalid ID to fail lookup")
	}
}
