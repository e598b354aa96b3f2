// Package registry holds the per-stage pursuit patterns.
// Patterns register themselves in init() functions, so the game can script
// pursuers on a stage without the behavior engine knowing stage numbers.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-stealth/internal/behavior"
	"github.com/vovakirdan/tui-stealth/internal/world"
)

// PatternInfo describes a registered pattern.
type PatternInfo struct {
	Stage int
	Name  string
}

type entry struct {
	name string
	hook behavior.PursuitHook
}

var (
	patterns = make(map[int]entry)
	mu       sync.RWMutex
)

// Register adds the pursuit pattern for a stage.
// Panics if the stage already has one.
func Register(stage int, name string, hook behavior.PursuitHook) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := patterns[stage]; exists {
		panic(fmt.Sprintf("registry: stage %d already has a pattern", stage))
	}
	if hook == nil {
		panic(fmt.Sprintf("registry: nil pattern for stage %d", stage))
	}
	patterns[stage] = entry{name: name, hook: hook}
}

// List returns all registered patterns sorted by stage.
func List() []PatternInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PatternInfo, 0, len(patterns))
	for stage, e := range patterns {
		result = append(result, PatternInfo{Stage: stage, Name: e.name})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Stage < result[j].Stage
	})

	return result
}

// Lookup returns the pattern registered for stage.
func Lookup(stage int) (behavior.PursuitHook, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := patterns[stage]
	return e.hook, ok
}

// Table returns a hook that dispatches to the pattern of the world's stage.
// Stages without a pattern continue.
func Table() behavior.PursuitHook {
	return behavior.HookFunc(func(w *world.World, o *world.Obstacle, p behavior.PlayerView) behavior.Verdict {
		hook, ok := Lookup(w.StageID)
		if !ok {
			return behavior.Continue
		}
		return hook.AfterPursuit(w, o, p)
	})
}

// reset clears the registry. Tests only.
func reset() {
	mu.Lock()
	defer mu.Unlock()
	patterns = make(map[int]entry)
}
