package quote

import "testing"

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		employees int
		want      Bracket
	}{
		{1, BracketUpTo5},
		{5, BracketUpTo5},
		{6, Bracket6To19},
		{19, Bracket6To19},
		{20, Bracket20To34},
		{34, Bracket20To34},
		{35, Bracket35To49},
		{49, Bracket35To49},
		{50, Bracket50To74},
		{74, Bracket50To74},
		{75, Bracket75To99},
		{99, Bracket75To99},
		{100, BracketAbove100},
		{5000, BracketAbove100},
	}

	for _, tt := range tests {
		if got := Classify(tt.employees); got != tt.want {
			t.Errorf("Classify(%d) = %q, want %q", tt.employees, got, tt.want)
		}
	}
}

func TestClassify_Labels(t *testing.T) {
	if Classify(5) != "ATÉ 5" || Classify(10) != "DE 6 A 19" || Classify(100) != "ACIMA DE 100" {
		t.Fatalf("unexpected bracket labels")
	}
}

func TestClassify_Monotonic(t *testing.T) {
	rank := make(map[Bracket]int)
	for i, b := range Brackets() {
		rank[b] = i
	}
	if len(rank) != 7 {
		t.Fatalf("Brackets() has %d distinct labels, want 7", len(rank))
	}

	prev := -1
	for n := 0; n <= 250; n++ {
		r, ok := rank[Classify(n)]
		if !ok {
			t.Fatalf("Classify(%d) = %q is not a known bracket", n, Classify(n))
		}
		if r < prev {
			t.Fatalf("Classify(%d) went down from rank %d to %d", n, prev, r)
		}
		prev = r
	}
}
