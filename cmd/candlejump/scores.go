package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/candle-jumper/internal/registry"
	"github.com/vovakirdan/candle-jumper/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a game mode",
	Long: `Display the best runs for the given mode (default: candles).

Examples:
  candlejump scores
  candlejump scores candles_endless
  candlejump scores --recent --limit 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the latest runs instead of the best")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := defaultGameID
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fail("unknown game mode %q\nRun 'candlejump list' to see available modes.", gameID)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		fail("creating game: %v", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening run database: %v", err)
	}
	defer store.Close()

	heading := "High Scores"
	var runs []storage.ScoreEntry
	if flagScoresRecent {
		heading = "Recent Runs"
		runs, err = store.RecentRuns(gameID, flagScoresLimit)
	} else {
		runs, err = store.TopScores(gameID, flagScoresLimit)
	}
	if err != nil {
		store.Close()
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("%s - %s\n", heading, game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'candlejump play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-7s  %-14s  %-8s  %s\n", "Rank", "Score", "Reward", "Result", "Date")
	fmt.Printf("  %-4s  %-7s  %-14s  %-8s  %s\n", "----", "-----", "------", "------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-7d  %-14s  %-8s  %s\n",
			i+1, r.Score, r.Reward.StringFixed(6), r.Outcome, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Runs: %d  Wins: %d  Best: %d  Average: %.1f\n",
			stats.GamesCount, stats.Victories, stats.HighScore, stats.AvgScore)
	}
	if best, err := store.BestReward(gameID); err == nil {
		fmt.Printf("Top reward: %s\n", best.StringFixed(6))
	}
}
