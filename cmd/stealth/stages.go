package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-stealth/internal/registry"
	"github.com/vovakirdan/tui-stealth/internal/stage"
	"github.com/vovakirdan/tui-stealth/internal/world"
)

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "List all stages",
	Long:  `Display the stages of the campaign in play order.`,
	Run:   runStages,
}

func runStages(_ *cobra.Command, _ []string) {
	stages, err := loadStages()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Stages:")
	fmt.Println()
	fmt.Printf("  %-3s  %-16s  %-7s  %-4s  %-6s  %-8s  %-8s  %s\n",
		"ID", "Name", "Size", "Ammo", "Linear", "Spinner", "Pursuer", "Pattern")
	for _, st := range stages {
		counts := obstacleCounts(st)
		fmt.Printf("  %-3d  %-16s  %-7s  %-4d  %-6d  %-8d  %-8d  %s\n",
			st.ID, st.Name, fmt.Sprintf("%dx%d", st.Width(), st.Height()), st.Ammo,
			counts[world.KindLinear], counts[world.KindSpinner], counts[world.KindPursuer], patternName(st.ID))
	}

	fmt.Println()
	fmt.Println("Use 'stealth play <id>' to start at a stage.")
}

func obstacleCounts(st stage.Stage) map[world.Kind]int {
	counts := make(map[world.Kind]int)
	for _, o := range st.Obstacles {
		counts[o.Kind]++
	}
	return counts
}

func patternName(id int) string {
	for _, p := range registry.List() {
		if p.Stage == id {
			return p.Name
		}
	}
	return "-"
}
