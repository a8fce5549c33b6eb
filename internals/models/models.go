package models

type User struct {
	Id       int    `db:"id"`
	Username string `db:"username"`
	Email    string `db:"email"`
	Password string `db:"password"` // bcrypt hash, never the raw password
}

type RankingEntry struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
}

// GameRecord is one finished game as persisted in the games table. Strategy
// is which agent strategy played ("hybrid" or "rule"), empty for
// human-vs-human games.
type GameRecord struct {
	Id       int    `db:"id" json:"id"`
	Player1  string `db:"player1" json:"player1"`
	Player2  string `db:"player2" json:"player2"`
	Winner   string `db:"winner" json:"winner"`
	Moves    string `db:"moves" json:"moves"`
	Strategy string `db:"strategy" json:"strategy"`
}
