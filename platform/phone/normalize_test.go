package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"   ", ""},
		{"+31612345678", "+31612345678"},
		{"(650) 253-0000", "+16502530000"},
		{"650 253 0000", "+16502530000"},
		{"+31 6 1234 5678", "+31612345678"},
		{"not a number", "not a number"},
		{"  +31612345678  ", "+31612345678"},
	}

	for _, tc := range tests {
		if got := NormalizeE164(tc.input); got != tc.want {
			t.Fatalf("input %q: expected %q, got %q", tc.input, tc.want, got)
		}
	}
}
