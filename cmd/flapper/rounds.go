package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapper/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var roundsCmd = &cobra.Command{
	Use:   "rounds",
	Short: "Show the round journal",
	Long: `Display the most recent rounds and how rounds tend to end.

Every round that ends, on any host, is recorded with its end reason
(boundary or collision), its duration and the number of pipes spawned.

Examples:
  flapper rounds
  flapper rounds --limit 50
  flapper rounds --clear`,
	Args: cobra.NoArgs,
	Run:  runRounds,
}

func init() {
	roundsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of recent rounds to show")
	roundsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the whole journal")
}

var headerStyle = lipgloss.NewStyle().Bold(true)

func runRounds(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening round journal: %v", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRounds(); err != nil {
			store.Close()
			fatal("%v", err)
		}
		fmt.Println("Round journal cleared.")
		return
	}

	rounds, err := store.RecentRounds(flagLimit)
	if err != nil {
		store.Close()
		fatal("retrieving rounds: %v", err)
	}

	fmt.Println(headerStyle.Render("Recent rounds"))
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flapper play' or 'flapper window' to record the first one!")
		return
	}

	fmt.Println(roundsTable(rounds))

	counts, err := store.CountByReason()
	if err != nil {
		store.Close()
		fatal("aggregating rounds: %v", err)
	}
	fmt.Println()
	fmt.Println(headerStyle.Render("By end reason"))
	fmt.Println(reasonsTable(counts))

	if longest, err := store.LongestRound(); err == nil && longest != nil {
		fmt.Println()
		fmt.Printf("Longest: %.1fs (%s, %s, %s)\n",
			longest.Duration, longest.Host, longest.Reason, humanize.Time(longest.CreatedAt))
	}
}

// roundsTable renders journal entries, newest first.
func roundsTable(rounds []storage.RoundRecord) *table.Table {
	rows := make([][]string, 0, len(rounds))
	for _, r := range rounds {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.Host,
			r.Reason,
			fmt.Sprintf("%.1fs", r.Duration),
			strconv.Itoa(r.Spawned),
			humanize.Time(r.CreatedAt),
		})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Host", "Reason", "Duration", "Pipes", "When").
		Rows(rows...)
}

func reasonsTable(counts []storage.ReasonCount) *table.Table {
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{
			c.Reason,
			humanize.Comma(int64(c.Rounds)),
			fmt.Sprintf("%.1fs", c.AvgDuration),
			fmt.Sprintf("%.1fs", c.MaxDuration),
		})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Reason", "Rounds", "Avg", "Max").
		Rows(rows...)
}
