package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func saveRun(t *testing.T, store *Store, gameID string, score int, reward, outcome string) ScoreEntry {
	t.Helper()
	entry, err := store.SaveRun(RunRecord{
		GameID:  gameID,
		Score:   score,
		Reward:  decimal.RequireFromString(reward),
		Outcome: outcome,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	return entry
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveRunAssignsIDs(t *testing.T) {
	store := openTestStore(t)

	a := saveRun(t, store, "candles", 12, "0.048000", "defeat")
	b := saveRun(t, store, "candles", 30, "0.120000", "defeat")

	if a.ID == 0 || b.ID <= a.ID {
		t.Errorf("row IDs not increasing: %d, %d", a.ID, b.ID)
	}
	if _, err := uuid.Parse(a.RunID); err != nil {
		t.Errorf("RunID %q is not a UUID: %v", a.RunID, err)
	}
	if a.RunID == b.RunID {
		t.Error("each run should get its own RunID")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	saveRun(t, store, "candles", 100, "0.400000", "defeat")
	saveRun(t, store, "candles", 50, "0.200000", "defeat")
	saveRun(t, store, "candles", 1000, "4.123456", "victory")
	saveRun(t, store, "candles_endless", 500, "2.000000", "defeat")

	scores, err := store.TopScores("candles", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{1000, 100, 50}
	for i, s := range scores {
		if s.Score != want[i] {
			t.Errorf("scores[%d] = %d, want %d", i, s.Score, want[i])
		}
	}

	top := scores[0]
	if top.Outcome != "victory" {
		t.Errorf("Outcome = %q, want victory", top.Outcome)
	}
	if !top.Reward.Equal(decimal.RequireFromString("4.123456")) {
		t.Errorf("Reward = %s, want 4.123456", top.Reward)
	}
	if top.GameID != "candles" {
		t.Errorf("GameID = %q", top.GameID)
	}

	endless, err := store.TopScores("candles_endless", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(endless) != 1 {
		t.Errorf("Expected 1 endless score, got %d", len(endless))
	}
}

func TestStoreTopScoresTieBreaksOnReward(t *testing.T) {
	store := openTestStore(t)

	saveRun(t, store, "candles", 40, "0.150000", "defeat")
	saveRun(t, store, "candles", 40, "0.310000", "defeat")

	scores, err := store.TopScores("candles", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if !scores[0].Reward.Equal(decimal.RequireFromString("0.31")) {
		t.Errorf("equal scores should rank by reward, got %s first", scores[0].Reward)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	// Save 5 scores
	for i := 0; i < 5; i++ {
		saveRun(t, store, "test", (i+1)*100, "0", "defeat")
	}

	// Request only top 3
	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		saveRun(t, store, "candles", i*10, "0", "defeat")
	}

	runs, err := store.RecentRuns("candles", 5)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 5 {
		t.Fatalf("Expected 5 runs, got %d", len(runs))
	}
	// Same-second inserts fall back to insertion order.
	if runs[0].Score != 190 || runs[4].Score != 150 {
		t.Errorf("runs not newest first: %d ... %d", runs[0].Score, runs[4].Score)
	}
	if runs[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// No scores yet
	high, err := store.HighScore("candles")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	// Add scores
	saveRun(t, store, "candles", 100, "0", "defeat")
	saveRun(t, store, "candles", 300, "0", "defeat")
	saveRun(t, store, "candles", 200, "0", "defeat")

	high, err = store.HighScore("candles")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreBestReward(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestReward("candles")
	if err != nil {
		t.Fatalf("BestReward() failed: %v", err)
	}
	if !best.IsZero() {
		t.Errorf("Expected zero reward for empty game, got %s", best)
	}

	// Text ordering would put "9.5" above "10.25".
	saveRun(t, store, "candles", 10, "9.500000", "defeat")
	saveRun(t, store, "candles", 20, "10.250000", "defeat")
	saveRun(t, store, "candles", 30, "0.750000", "defeat")

	best, err = store.BestReward("candles")
	if err != nil {
		t.Fatalf("BestReward() failed: %v", err)
	}
	if !best.Equal(decimal.RequireFromString("10.25")) {
		t.Errorf("BestReward = %s, want 10.25", best)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	saveRun(t, store, "candles", 100, "0", "defeat")
	saveRun(t, store, "candles", 200, "0", "defeat")
	saveRun(t, store, "candles_endless", 300, "0", "defeat")

	// Clear only the level runs
	if err := store.ClearScores("candles"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	levelScores, _ := store.TopScores("candles", 10)
	if len(levelScores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(levelScores))
	}

	endlessScores, _ := store.TopScores("candles_endless", 10)
	if len(endlessScores) != 1 {
		t.Errorf("Endless scores should not be affected by clearing the level runs")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("candles")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unexpected stats for empty game: %+v", empty)
	}

	saveRun(t, store, "candles", 100, "0", "defeat")
	saveRun(t, store, "candles", 1000, "0", "victory")
	saveRun(t, store, "candles", 400, "0", "defeat")

	stats, err := store.GetGameStats("candles")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 {
		t.Errorf("GamesCount = %d, want 3", stats.GamesCount)
	}
	if stats.Victories != 1 {
		t.Errorf("Victories = %d, want 1", stats.Victories)
	}
	if stats.HighScore != 1000 {
		t.Errorf("HighScore = %d, want 1000", stats.HighScore)
	}
	if stats.AvgScore != 500 {
		t.Errorf("AvgScore = %g, want 500", stats.AvgScore)
	}
	if stats.TotalScore != 1500 {
		t.Errorf("TotalScore = %d, want 1500", stats.TotalScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
