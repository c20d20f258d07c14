// Package textnorm provides tests for text canonicalization and prefix keys.
package textnorm

import "testing"

// TestNormalize tests case folding, punctuation stripping and whitespace collapse.
func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Kucing, Lucu!!", "kucing lucu"},
		{"  spaced    out  ", "spaced out"},
		{"UPPER-case_mix 123", "upper case mix 123"},
		{"!!!", ""},
		{"", ""},
		{"émoji🎥mix", "moji mix"},
	}

	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// TestNormalizeIdempotent tests that normalizing twice changes nothing.
func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Kucing, Lucu!!", "a b  c", "", "Viral 2024!"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

// TestPrefixKey tests the fixed-width shard key derivation, which must match
// the dataset builder exactly.
func TestPrefixKey(t *testing.T) {
	cases := []struct {
		token  string
		length int
		want   string
	}{
		{"", 2, "__"},
		{"a", 2, "a_"},
		{"kucing", 2, "ku"},
		{"Kucing!!", 2, "ku"},
		{"", 3, "___"},
		{"a", 3, "a__"},
		{"ab", 3, "ab_"},
		{"kucing", 3, "kuc"},
		{"k u c", 2, "ku"},
		{"!!", 2, "__"},
	}

	for _, tc := range cases {
		if got := PrefixKey(tc.token, tc.length); got != tc.want {
			t.Errorf("PrefixKey(%q, %d) = %q, want %q", tc.token, tc.length, got, tc.want)
		}
	}
}

// TestKeywords tests query term extraction.
func TestKeywords(t *testing.T) {
	got := Keywords(Normalize("Kucing, Lucu!!"))
	if len(got) != 2 || got[0] != "kucing" || got[1] != "lucu" {
		t.Errorf("Keywords = %v, want [kucing lucu]", got)
	}
	if got := Keywords(Normalize("!!!")); len(got) != 0 {
		t.Errorf("Keywords of empty normalization = %v, want none", got)
	}
}
