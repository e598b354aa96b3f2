package patterns

import (
	"testing"

	"github.com/vovakirdan/tui-stealth/internal/behavior"
	"github.com/vovakirdan/tui-stealth/internal/registry"
	"github.com/vovakirdan/tui-stealth/internal/world"
)

func TestEveryStageContinues(t *testing.T) {
	grid := world.NewGrid([]string{"#####", "#...#", "#####"})
	table := registry.Table()

	for stage := 1; stage <= Stages; stage++ {
		if _, ok := registry.Lookup(stage); !ok {
			t.Fatalf("stage %d has no pattern", stage)
		}

		w := world.New(stage, grid, world.Point{X: 1, Y: 1}, world.Point{X: 3, Y: 1}, 0, world.DefaultRules())
		o := w.AddObstacle(2, 1, 1, &world.Pursuer{Dir: 1, SightRange: 2})
		if got := table.AfterPursuit(w, o, &w.Player); got != behavior.Continue {
			t.Errorf("stage %d verdict = %v, want Continue", stage, got)
		}
	}
}
