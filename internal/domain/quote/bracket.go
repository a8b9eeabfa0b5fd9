package quote

type Bracket string

const (
	BracketUpTo5    Bracket = "ATÉ 5"
	Bracket6To19    Bracket = "DE 6 A 19"
	Bracket20To34   Bracket = "DE 20 A 34"
	Bracket35To49   Bracket = "DE 35 A 49"
	Bracket50To74   Bracket = "DE 50 A 74"
	Bracket75To99   Bracket = "DE 75 A 99"
	BracketAbove100 Bracket = "ACIMA DE 100"
)

var bracketBounds = []struct {
	max     int
	bracket Bracket
}{
	{5, BracketUpTo5},
	{19, Bracket6To19},
	{34, Bracket20To34},
	{49, Bracket35To49},
	{74, Bracket50To74},
	{99, Bracket75To99},
}

// Classify maps an employee count to its pricing bracket. Upper bounds are
// inclusive; anything above 99 falls in the open-ended top bracket.
func Classify(employees int) Bracket {
	for _, b := range bracketBounds {
		if employees <= b.max {
			return b.bracket
		}
	}
	return BracketAbove100
}

func Brackets() []Bracket {
	out := make([]Bracket, 0, len(bracketBounds)+1)
	for _, b := range bracketBounds {
		out = append(out, b.bracket)
	}
	return append(out, BracketAbove100)
}
