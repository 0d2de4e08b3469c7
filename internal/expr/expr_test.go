package expr

import "testing"

// typeKeys applies a sequence of keystrokes and returns the final
// expression plus the concatenation of accepted keystrokes.
func typeKeys(s string) (expression, accepted string) {
	for _, r := range s {
		next, ok := Append(expression, r)
		if ok {
			accepted += string(r)
		}
		expression = next
	}
	return expression, accepted
}

func TestAppend_AcceptedConcatenation(t *testing.T) {
	cases := []struct {
		keys string
		want string
	}{
		{"12+3*4", "12+3*4"},
		{"12+*3", "12+*3"}, // chained operators pass through
		{"3.5.2", "3.52"},  // second '.' in segment rejected
		{"3.5+2.7", "3.5+2.7"},
		{".5", ".5"},
		{"..", "."},
		{"1/0", "1/0"},
		{"9-.-.", "9-.-."}, // each operator starts a fresh segment
	}

	for _, tc := range cases {
		got, accepted := typeKeys(tc.keys)
		if got != tc.want {
			t.Errorf("typeKeys(%q) = %q, want %q", tc.keys, got, tc.want)
		}
		if got != accepted {
			t.Errorf("typeKeys(%q): expression %q != accepted concatenation %q", tc.keys, got, accepted)
		}
	}
}

func TestAppend_RejectsNonInput(t *testing.T) {
	got, ok := Append("12", 'x')
	if ok || got != "12" {
		t.Errorf("Append(12, x) = (%q, %v), want (12, false)", got, ok)
	}
}

func TestAppend_DecimalPerSegment(t *testing.T) {
	e, ok := Append("3.5", '.')
	if ok || e != "3.5" {
		t.Errorf("Append(3.5, .) = (%q, %v), want rejection", e, ok)
	}

	e, ok = Append("3.5+", '.')
	if !ok || e != "3.5+." {
		t.Errorf("Append(3.5+, .) = (%q, %v), want (3.5+., true)", e, ok)
	}
}

func TestBackspace_LeftInverseOfAppend(t *testing.T) {
	prior := "12+3"
	for _, r := range "7+*." {
		next, ok := Append(prior, r)
		if !ok {
			t.Fatalf("Append(%q, %q) rejected", prior, r)
		}
		if got := Backspace(next); got != prior {
			t.Errorf("Backspace(Append(%q, %q)) = %q, want %q", prior, r, got, prior)
		}
	}
}

func TestBackspace_Empty(t *testing.T) {
	if got := Backspace(""); got != "" {
		t.Errorf("Backspace(\"\") = %q, want \"\"", got)
	}
	if got := Backspace("7"); got != "" {
		t.Errorf("Backspace(\"7\") = %q, want \"\"", got)
	}
}
