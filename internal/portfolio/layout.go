package portfolio

// Placement positions an item in a grid. Row and Column are 1-based so they
// map directly onto CSS grid-row / grid-column.
type Placement struct {
	Item   Item
	Row    int
	Column int
}

// LayoutStrategy arranges the visible items.
type LayoutStrategy interface {
	Name() string
	Arrange(items []Item) []Placement
}

// FitRows fills rows left to right, wrapping after Columns items.
type FitRows struct {
	Columns int
}

func (FitRows) Name() string { return "fit-rows" }

func (l FitRows) Arrange(items []Item) []Placement {
	cols := l.Columns
	if cols <= 0 {
		cols = 1
	}
	out := make([]Placement, len(items))
	for i, it := range items {
		out[i] = Placement{Item: it, Row: i/cols + 1, Column: i%cols + 1}
	}
	return out
}

// Stack places every item in a single column.
type Stack struct{}

func (Stack) Name() string { return "stack" }

func (Stack) Arrange(items []Item) []Placement {
	return FitRows{Columns: 1}.Arrange(items)
}

// Grid is the arranged, visible portfolio for one filter token.
type Grid struct {
	Filter     string
	Layout     string
	Columns    int
	Placements []Placement
	Empty      bool
}

// Arrange filters items by token and lays out the result with strategy.
// A nil strategy defaults to FitRows with three columns.
func Arrange(items []Item, token string, strategy LayoutStrategy) Grid {
	if strategy == nil {
		strategy = FitRows{Columns: 3}
	}
	visible := Filter(items, token)
	placements := strategy.Arrange(visible)
	cols := 0
	for _, p := range placements {
		if p.Column > cols {
			cols = p.Column
		}
	}
	return Grid{
		Filter:     NormalizeToken(token),
		Layout:     strategy.Name(),
		Columns:    cols,
		Placements: placements,
		Empty:      len(placements) == 0,
	}
}
