package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-stealth/internal/storage"
)

var recordsCmd = &cobra.Command{
	Use:   "records [track]",
	Short: "Show best times",
	Long: `Without arguments, summarize every track with recorded times.
With a track, list its ten best times. A track is "campaign" or a stage id.

Examples:
  stealth records
  stealth records campaign
  stealth records 3`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRecords,
}

func runRecords(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening records database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		err = printTracks(store)
	} else {
		err = printTrack(store, trackName(args[0]))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// trackName turns a stage id into its track; anything else is used as is.
func trackName(arg string) string {
	if id, err := strconv.Atoi(arg); err == nil {
		return storage.StageTrack(id)
	}
	return arg
}

func printTracks(store *storage.Store) error {
	tracks, err := store.Tracks()
	if err != nil {
		return err
	}

	fmt.Println("Best Times")
	fmt.Println()
	if len(tracks) == 0 {
		fmt.Println("No times recorded yet.")
		fmt.Println()
		fmt.Println("Play 'stealth play' to set the first record!")
		return nil
	}

	fmt.Printf("  %-10s  %-5s  %-10s  %-10s  %s\n", "Track", "Runs", "Best", "Average", "Last played")
	fmt.Printf("  %-10s  %-5s  %-10s  %-10s  %s\n", "-----", "----", "----", "-------", "-----------")
	for _, ts := range tracks {
		fmt.Printf("  %-10s  %-5d  %-10s  %-10s  %s\n",
			ts.Track, ts.Runs, seconds(ts.Best), seconds(ts.Average),
			ts.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func printTrack(store *storage.Store, track string) error {
	records, err := store.TopTimes(track, 10)
	if err != nil {
		return err
	}

	fmt.Printf("Best Times - %s\n", track)
	fmt.Println()
	if len(records) == 0 {
		fmt.Println("No times recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Time", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "----", "----")
	for i, r := range records {
		fmt.Printf("  %-4d  %-10s  %s\n", i+1, seconds(r.Time), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Best: %s\n", seconds(records[0].Time))
	return nil
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.3fs", d.Seconds())
}
