package matchmaking

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strings"
	"sync"

	"connect4-agent/internals/models"

	_ "github.com/mattn/go-sqlite3"
)

var (
	db        *sql.DB
	rankMutex sync.Mutex
)

// InitStore hands the shared database connection to this package.
func InitStore(database *sql.DB) {
	db = database
}

// SaveGame persists a finished game. strategy names the agent strategy that
// played ("hybrid"/"rule"), empty for human-vs-human games.
func SaveGame(player1, player2, winner, strategy string, moves []string) {
	rankMutex.Lock()
	defer rankMutex.Unlock()

	_, err := db.Exec(`
		INSERT INTO games (player1, player2, winner, strategy, moves)
		VALUES (?, ?, ?, ?, ?)
	`, player1, player2, winner, strategy, strings.Join(moves, ","))
	if err != nil {
		log.Printf("Error saving game: %v", err)
	}
}

// AddWin increments a player's ranking score.
func AddWin(username string) {
	rankMutex.Lock()
	defer rankMutex.Unlock()

	_, err := db.Exec(`
		INSERT INTO rankings (username, score)
		VALUES (?, 1)
		ON CONFLICT(username) DO UPDATE SET score = score + 1
	`, username)
	if err != nil {
		log.Printf("Error updating score for %s: %v", username, err)
	}
}

// GetRanking returns players sorted by score, ties by username.
func GetRanking() []models.RankingEntry {
	rankMutex.Lock()
	defer rankMutex.Unlock()

	rows, err := db.Query(`SELECT username, score FROM rankings`)
	if err != nil {
		log.Printf("Error fetching rankings: %v", err)
		return nil
	}
	defer rows.Close()

	var ranking []models.RankingEntry
	for rows.Next() {
		var entry models.RankingEntry
		if err := rows.Scan(&entry.Username, &entry.Score); err != nil {
			log.Println("Error scanning ranking row:", err)
			continue
		}
		ranking = append(ranking, entry)
	}

	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Score == ranking[j].Score {
			return ranking[i].Username < ranking[j].Username
		}
		return ranking[i].Score > ranking[j].Score
	})
	return ranking
}

func HandleRanking(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(GetRanking())
}

// HandleRecentGames lists the last 20 finished games, newest first.
func HandleRecentGames(w http.ResponseWriter, r *http.Request) {
	rankMutex.Lock()
	defer rankMutex.Unlock()

	rows, err := db.Query(`
		SELECT id, player1, player2, winner, strategy, moves
		FROM games ORDER BY id DESC LIMIT 20
	`)
	if err != nil {
		log.Printf("Error fetching games: %v", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	var records []models.GameRecord
	for rows.Next() {
		var rec models.GameRecord
		if err := rows.Scan(&rec.Id, &rec.Player1, &rec.Player2, &rec.Winner, &rec.Strategy, &rec.Moves); err != nil {
			log.Println("Error scanning game row:", err)
			continue
		}
		records = append(records, rec)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}
