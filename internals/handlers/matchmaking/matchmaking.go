package matchmaking

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"connect4-agent/internals/engine"
	"connect4-agent/internals/handlers/game"

	"github.com/gorilla/websocket"
	lru "github.com/hashicorp/golang-lru"
)

const botName = "Agent"

type Player struct {
	Username string
	Conn     *websocket.Conn // nil for the bot
	ID       engine.Player
}

// CachedGame holds a match whose player dropped their connection, waiting for
// a reconnect before the forfeit timer fires.
type CachedGame struct {
	Game        *game.Game
	Player1     *Player
	Player2     *Player
	Timestamp   time.Time
	CancelTimer context.CancelFunc
}

// Move is the wire format for a single move in both directions. Reason is
// only set on agent moves: the decision policy's explanation tag.
type Move struct {
	Type   string `json:"type"`
	Col    int    `json:"col"`
	Player int    `json:"player"`
	Reason string `json:"reason,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

var (
	playerQueue            = make(chan *Player, 1)
	games                  = make(map[string]*game.Game)
	mutex                  sync.Mutex // protects the games map
	botAgent               *engine.Agent
	botQueueTimeout        = 10 * time.Second
	reconnectTimeout       = 30 * time.Second
	disconnectedGamesCache *lru.Cache
	startOnce              sync.Once
)

// Init wires the move-selection agent and timeouts, sizes the reconnect cache
// and starts the matchmaker loop. Must be called once before HandleGame
// serves traffic.
func Init(agent *engine.Agent, queueTimeout, recTimeout time.Duration) {
	botAgent = agent
	botQueueTimeout = queueTimeout
	reconnectTimeout = recTimeout

	var err error
	disconnectedGamesCache, err = lru.New(100)
	if err != nil {
		log.Fatalf("Could not initialize reconnect cache: %v", err)
	}
	startOnce.Do(func() { go Matchmaker() })
}

// Matchmaker pairs queued players, falling back to an agent game when nobody
// shows up in time.
func Matchmaker() {
	log.Println("Matchmaker started...")
	for {
		p1 := <-playerQueue
		log.Printf("Player %s queued, waiting for an opponent or timeout.", p1.Username)

		select {
		case p2 := <-playerQueue:
			log.Printf("Match found: %s vs %s", p1.Username, p2.Username)
			go startGame(p1, p2)
		case <-time.After(botQueueTimeout):
			log.Printf("No opponent for %s, starting a game against the %s agent.", p1.Username, botAgent.Strategy())
			go startGame(p1, &Player{Username: botName})
		}
	}
}

// HandleGame is the websocket entry point for play.
func HandleGame(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		http.Error(w, "Username required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}

	if val, ok := disconnectedGamesCache.Get(username); ok {
		resumeGame(username, conn, val.(*CachedGame))
		return
	}

	log.Printf("Player %s connected, joining the queue.", username)
	playerQueue <- &Player{Username: username, Conn: conn}
}

func resumeGame(username string, conn *websocket.Conn, cached *CachedGame) {
	log.Printf("Player %s is reconnecting to game %s", username, cached.Game.ID)
	if cached.CancelTimer != nil {
		cached.CancelTimer()
	}

	p1, p2 := cached.Player1, cached.Player2
	returning, waiting := p1, p2
	if p2.Username == username {
		returning, waiting = p2, p1
	}
	returning.Conn = conn

	disconnectedGamesCache.Remove(p1.Username)
	disconnectedGamesCache.Remove(p2.Username)
	mutex.Lock()
	games[cached.Game.ID] = cached.Game
	mutex.Unlock()

	sendStart(returning, cached.Game)
	if waiting.Conn != nil {
		waiting.Conn.WriteJSON(map[string]interface{}{
			"type":          "OPPONENT_RECONNECTED",
			"game_id":       cached.Game.ID,
			"board":         cached.Game.Grid(),
			"next_turn":     int(cached.Game.Turn),
			"player_number": int(waiting.ID),
		})
	}
	go handleGamePlay(cached.Game, p1, p2)
}

func sendStart(p *Player, g *game.Game) {
	if p.Conn == nil {
		return
	}
	p.Conn.WriteJSON(map[string]interface{}{
		"type":            "GAME_START",
		"game_id":         g.ID,
		"board":           g.Grid(),
		"player_number":   int(p.ID),
		"player1_name":    g.Player1,
		"player2_name":    g.Player2,
		"starting_player": int(g.Turn),
	})
}

func startGame(p1, p2 *Player) {
	id := time.Now().Format("150405") + p1.Username
	g := game.NewGame(id, p1.Username, p2.Username)

	mutex.Lock()
	games[id] = g
	mutex.Unlock()

	p1.ID, p2.ID = engine.PlayerOne, engine.PlayerTwo
	sendStart(p1, g)
	sendStart(p2, g)

	go handleGamePlay(g, p1, p2)
}

// readerLoop pumps one player's websocket into the moves channel until the
// game is done or the player drops.
func readerLoop(g *game.Game, self, other *Player, moves chan<- Move, done <-chan struct{}) {
	for {
		var move Move
		if err := self.Conn.ReadJSON(&move); err != nil {
			select {
			case <-done:
			default:
				log.Printf("Player %s disconnected: %v", self.Username, err)
				handleDisconnection(g, self, other)
			}
			return
		}
		select {
		case moves <- move:
		case <-done:
			return
		}
	}
}

// agentLoop plays the bot side: whenever it is the agent's turn it selects a
// move on a copy of the live board, so a search in flight never aliases
// session state.
func agentLoop(g *game.Game, moves chan<- Move, done <-chan struct{}) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
		}

		g.Mutex.Lock()
		myTurn := g.Turn == engine.PlayerTwo && !g.Over
		board := g.Board.Clone()
		g.Mutex.Unlock()
		if !myTurn {
			continue
		}

		col, reason, err := botAgent.SelectMove(board, engine.PlayerTwo)
		if err != nil {
			log.Printf("Agent has no move in game %s: %v", g.ID, err)
			return
		}
		log.Printf("Agent plays column %d (%s)", col, reason)

		select {
		case moves <- Move{Type: "MOVE", Col: col, Player: int(engine.PlayerTwo), Reason: reason}:
		case <-done:
			return
		}
	}
}

func handleGamePlay(g *game.Game, p1, p2 *Player) {
	moves := make(chan Move)
	done := make(chan struct{})

	go timerLoop(g, p1, p2, done)
	if p1.Conn != nil {
		go readerLoop(g, p1, p2, moves, done)
	}
	if p2.Username == botName {
		go agentLoop(g, moves, done)
	} else if p2.Conn != nil {
		go readerLoop(g, p2, p1, moves, done)
	}

	for move := range moves {
		g.Mutex.Lock()
		if g.Over || engine.Player(move.Player) != g.Turn {
			g.Mutex.Unlock()
			continue
		}

		row, err := g.PlaceDisc(engine.Player(move.Player), move.Col)
		if err != nil {
			log.Printf("Invalid move by player %d in game %s: %v", move.Player, g.ID, err)
			g.Mutex.Unlock()
			continue
		}

		response := map[string]interface{}{
			"type":      "MOVE",
			"col":       move.Col,
			"row":       row,
			"player":    move.Player,
			"next_turn": int(g.Turn),
		}
		if move.Reason != "" {
			response["reason"] = move.Reason
		}
		broadcast(p1, p2, response)

		if g.CheckWin(row, move.Col, engine.Player(move.Player)) {
			winnerName := g.Player1
			if engine.Player(move.Player) == engine.PlayerTwo {
				winnerName = g.Player2
			}
			finishGame(g, p1, p2, winnerName, done)
			return
		}
		if g.CheckDraw() {
			finishGame(g, p1, p2, "", done)
			return
		}
		g.Mutex.Unlock()
	}
}

// finishGame records the result, notifies both sides and tears the game
// down. Called with g.Mutex held; an empty winnerName means a draw.
func finishGame(g *game.Game, p1, p2 *Player, winnerName string, done chan struct{}) {
	g.Over = true

	strategy := ""
	if p2.Username == botName {
		strategy = botAgent.Strategy().String()
	}

	message := "It's a draw!"
	result := "draw"
	if winnerName != "" {
		message = winnerName + " wins!"
		result = winnerName
		if winnerName != botName {
			AddWin(winnerName)
		}
	}
	SaveGame(g.Player1, g.Player2, result, strategy, g.Moves)
	log.Printf("Game %s ended: %s", g.ID, message)
	g.Mutex.Unlock()

	broadcast(p1, p2, map[string]interface{}{
		"type":    "GAME_OVER",
		"message": message,
	})
	close(done)

	mutex.Lock()
	delete(games, g.ID)
	mutex.Unlock()
}

func broadcast(p1, p2 *Player, msg map[string]interface{}) {
	if p1.Conn != nil {
		p1.Conn.WriteJSON(msg)
	}
	if p2.Conn != nil {
		p2.Conn.WriteJSON(msg)
	}
}

func timerLoop(g *game.Game, p1, p2 *Player, done <-chan struct{}) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			g.Mutex.Lock()
			over := g.Over
			elapsed := time.Since(g.StartTime)
			g.Mutex.Unlock()
			if over {
				return
			}
			broadcast(p1, p2, map[string]interface{}{
				"type":    "TIMER_UPDATE",
				"elapsed": int(elapsed.Seconds()),
			})
		}
	}
}

// handleDisconnection parks the game in the reconnect cache and forfeits it
// to the remaining player if nobody comes back in time.
func handleDisconnection(g *game.Game, dropped, remaining *Player) {
	dropped.Conn = nil

	mutex.Lock()
	delete(games, g.ID)
	mutex.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cached := &CachedGame{
		Game:        g,
		Player1:     dropped,
		Player2:     remaining,
		Timestamp:   time.Now(),
		CancelTimer: cancel,
	}
	if dropped.ID == engine.PlayerTwo {
		cached.Player1, cached.Player2 = remaining, dropped
	}
	disconnectedGamesCache.Add(dropped.Username, cached)

	if remaining.Conn != nil {
		remaining.Conn.WriteJSON(map[string]interface{}{
			"type":    "OPPONENT_DISCONNECTED",
			"message": "Your opponent disconnected. Waiting for them to reconnect...",
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectTimeout):
		}
		disconnectedGamesCache.Remove(dropped.Username)

		g.Mutex.Lock()
		if g.Over {
			g.Mutex.Unlock()
			return
		}
		g.Over = true
		g.Mutex.Unlock()

		log.Printf("Player %s did not reconnect, game %s forfeited.", dropped.Username, g.ID)
		if remaining.Username != botName {
			AddWin(remaining.Username)
		}
		SaveGame(g.Player1, g.Player2, remaining.Username, "", g.Moves)
		if remaining.Conn != nil {
			remaining.Conn.WriteJSON(map[string]interface{}{
				"type":    "GAME_OVER",
				"message": remaining.Username + " wins by forfeit!",
			})
		}
	}()
}
