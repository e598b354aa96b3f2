// stealth is a terminal stealth game: cross each stage from start to goal
// without being caught by its moving obstacles.
//
// Usage:
//
//	stealth play [stage-id]   - Play the campaign (or a single stage onward)
//	stealth stages            - List the loaded stages
//	stealth records [track]   - Show best times
//	stealth serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>            - Render frame rate (default from config)
//	--db <path>             - Records database (default: ~/.stealth/records.db)
//	--config <path>         - Custom stealth.yaml
//	--stages <dir>          - Load stages from a directory instead of the built-in campaign
//	--log-level <level>     - debug, info, warn, error
//	--log-file <path>       - Log destination (default: ~/.stealth/stealth.log)
//	--metrics-addr <addr>   - Serve Prometheus metrics on addr
//	--mute                  - Disable sound
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register the stage pursuit patterns.
	_ "github.com/vovakirdan/tui-stealth/internal/patterns"
)

var (
	// Global flags
	flagFPS         int
	flagDBPath      string
	flagConfig      string
	flagStagesDir   string
	flagLogLevel    string
	flagLogFile     string
	flagMetricsAddr string
	flagMute        bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stealth",
	Short: "Stealth - sneak past the guards in your terminal",
	Long: `Stealth is a terminal game: walk each stage from S to G while
patrols, spinners and pursuers move around you. Fire to clear the way,
but ammo is short and the warden only falls on the last stage.

Available commands:
  play     - Play the campaign
  stages   - List stages
  records  - View best times
  serve    - Start SSH server for remote play

Examples:
  stealth play
  stealth play 3
  stealth stages --stages ./my-stages
  stealth records campaign
  stealth serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Render frame rate (0 = config value)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.stealth/records.db", "Path to records database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom stealth.yaml")
	rootCmd.PersistentFlags().StringVar(&flagStagesDir, "stages", "", "Directory of stage YAML files (default: built-in campaign)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.stealth/stealth.log", "Log file path")
	rootCmd.PersistentFlags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(stagesCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(serveCmd)
}
