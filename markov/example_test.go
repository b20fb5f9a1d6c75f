package markov_test

import (
	"fmt"

	"github.com/katalvlaran/mblearn/dataset"
	"github.com/katalvlaran/mblearn/entropy"
	"github.com/katalvlaran/mblearn/markov"
)

// ExampleGrowShrink_DiscoverBlankets learns blankets from a tiny table in
// which Rain and Wet always agree and Wind is unrelated to both.
func ExampleGrowShrink_DiscoverBlankets() {
	rows := [][]string{}
	for i := 0; i < 4; i++ {
		rows = append(rows,
			[]string{"yes", "yes", "calm"},
			[]string{"yes", "yes", "gusty"},
			[]string{"no", "no", "calm"},
			[]string{"no", "no", "gusty"},
		)
	}
	ds, err := dataset.New([]string{"Rain", "Wet", "Wind"}, rows)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	est, _ := entropy.NewEstimator(ds, entropy.WithCache())
	gs, err := markov.NewGrowShrink(ds.Columns(), est, markov.DefaultAlpha(ds.NumRows()))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	blankets, err := gs.DiscoverBlankets()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, v := range blankets.Targets() {
		fmt.Println(v, blankets[v])
	}

	// Output:
	// Rain [Wet]
	// Wet [Rain]
	// Wind []
}

// ExampleOracleFunc plugs a hand-written independence oracle into the engine.
func ExampleOracleFunc() {
	oracle := markov.OracleFunc(func(x, y, z []string) (float64, error) {
		if x[0] == "A" && y[0] == "B" || x[0] == "B" && y[0] == "A" {
			return 1, nil
		}
		return 0, nil
	})

	gs, _ := markov.NewGrowShrink([]string{"A", "B", "C"}, oracle, 0.1)
	blankets, _ := gs.DiscoverBlankets("A", "C")
	fmt.Println(blankets["A"], blankets["C"])

	// Output:
	// [B] []
}
