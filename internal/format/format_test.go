package format

import "testing"

func TestMinutes(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{20, "20 minutes"},
		{60, "1 hour"},
		{120, "2 hours"},
		{90, "1h 30m"},
	}
	for _, c := range cases {
		if got := Minutes(c.in); got != c.want {
			t.Errorf("Minutes(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParseCost(t *testing.T) {
	if v, ok := ParseCost("$8.00"); !ok || v != 8.0 {
		t.Errorf("Expected 8.00, got %v (ok=%v)", v, ok)
	}
	if v, ok := ParseCost("about 12 dollars"); !ok || v != 12 {
		t.Errorf("Expected 12, got %v (ok=%v)", v, ok)
	}
	if _, ok := ParseCost("tight budget"); ok {
		t.Error("Expected no parse for non-numeric text")
	}
}

func TestServings(t *testing.T) {
	if got := Servings(2, 2); got != "4 (2 adults, 2 kids)" {
		t.Errorf("Servings(2,2) = %q", got)
	}
	if got := Servings(1, 0); got != "1 (1 adult)" {
		t.Errorf("Servings(1,0) = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate should leave short text alone, got %q", got)
	}
	if got := Truncate("a very long line of text", 6); got != "a very..." {
		t.Errorf("Truncate(6) = %q", got)
	}
	if got := Truncate("héllo wörld", 5); got != "héllo..." {
		t.Errorf("Truncate must count runes, got %q", got)
	}
}

func TestList(t *testing.T) {
	if got := List([]string{"a"}); got != "a" {
		t.Errorf("List one = %q", got)
	}
	if got := List([]string{"a", "b"}); got != "a and b" {
		t.Errorf("List two = %q", got)
	}
	if got := List([]string{"a", "b", "c"}); got != "a, b, and c" {
		t.Errorf("List three = %q", got)
	}
	if got := ListOr(nil, "None"); got != "None" {
		t.Errorf("ListOr empty = %q", got)
	}
}
