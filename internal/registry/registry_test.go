package registry

import (
	"testing"

	"github.com/vovakirdan/tui-stealth/internal/behavior"
	"github.com/vovakirdan/tui-stealth/internal/world"
)

func deny(*world.World, *world.Obstacle, behavior.PlayerView) behavior.Verdict {
	return behavior.Deny
}

func TestRegisterAndList(t *testing.T) {
	reset()
	t.Cleanup(reset)

	Register(3, "ambush", behavior.HookFunc(deny))
	Register(1, "hold", behavior.HookFunc(deny))

	list := List()
	if len(list) != 2 {
		t.Fatalf("expected 2 patterns, got %d", len(list))
	}
	if list[0].Stage != 1 || list[1].Stage != 3 {
		t.Errorf("patterns not sorted by stage: %+v", list)
	}
	if list[1].Name != "ambush" {
		t.Errorf("name = %q, want ambush", list[1].Name)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	reset()
	t.Cleanup(reset)

	Register(2, "first", behavior.HookFunc(deny))

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate stage")
		}
	}()
	Register(2, "second", behavior.HookFunc(deny))
}

func TestTableDispatchesByStage(t *testing.T) {
	reset()
	t.Cleanup(reset)

	Register(4, "deny", behavior.HookFunc(deny))
	table := Table()

	grid := world.NewGrid([]string{"#####", "#...#", "#####"})
	w := world.New(4, grid, world.Point{X: 1, Y: 1}, world.Point{X: 3, Y: 1}, 0, world.DefaultRules())
	o := w.AddObstacle(2, 1, 1, &world.Pursuer{Dir: 1, SightRange: 1})

	if got := table.AfterPursuit(w, o, &w.Player); got != behavior.Deny {
		t.Errorf("stage 4 verdict = %v, want Deny", got)
	}

	w.StageID = 5
	if got := table.AfterPursuit(w, o, &w.Player); got != behavior.Continue {
		t.Errorf("unregistered stage verdict = %v, want Continue", got)
	}
}
