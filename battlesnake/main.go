// Package main implements the Battlesnake API server around the tree
// search engine.
//
// The server is deliberately thin: it deserializes and validates each
// turn request, hands the engine a clean state plus a time budget, and
// serializes the decision back out. All game intelligence lives in the
// search package.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/snakeoil/strangle/game"
	"github.com/snakeoil/strangle/rules"
	"github.com/snakeoil/strangle/search"
)

// Battlesnake API request/response types

type BattlesnakeInfoResponse struct {
	APIVersion string `json:"apiversion"`
	Author     string `json:"author"`
	Color      string `json:"color"`
	Head       string `json:"head"`
	Tail       string `json:"tail"`
	Version    string `json:"version"`
}

type GameRequest struct {
	Game  Game        `json:"game"`
	Turn  int         `json:"turn"`
	Board Board       `json:"board"`
	You   Battlesnake `json:"you"`
}

type Game struct {
	ID      string  `json:"id"`
	Ruleset Ruleset `json:"ruleset"`
	Map     string  `json:"map"`
	Timeout int     `json:"timeout"`
	Source  string  `json:"source"`
}

type Ruleset struct {
	Name     string          `json:"name"`
	Version  string          `json:"version"`
	Settings RulesetSettings `json:"settings"`
}

type RulesetSettings struct {
	FoodSpawnChance     int `json:"foodSpawnChance"`
	MinimumFood         int `json:"minimumFood"`
	HazardDamagePerTurn int `json:"hazardDamagePerTurn"`
}

type Board struct {
	Height  int           `json:"height"`
	Width   int           `json:"width"`
	Food    []Coord       `json:"food"`
	Hazards []Coord       `json:"hazards"`
	Snakes  []Battlesnake `json:"snakes"`
}

type Battlesnake struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Health  int     `json:"health"`
	Body    []Coord `json:"body"`
	Latency string  `json:"latency"`
	Head    Coord   `json:"head"`
	Length  int     `json:"length"`
	Shout   string  `json:"shout"`
	Squad   string  `json:"squad"`
}

type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type MoveResponse struct {
	Move  string `json:"move"`
	Shout string `json:"shout,omitempty"`
}

// Server holds the engine configuration shared by all games. The config
// is read-only after startup, so concurrent games need no locking.
type Server struct {
	config      search.Config
	moveTimeout time.Duration
}

func NewServer(config search.Config, moveTimeout time.Duration) *Server {
	return &Server{config: config, moveTimeout: moveTimeout}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	response := BattlesnakeInfoResponse{
		APIVersion: "1",
		Author:     "strangle",
		Color:      "#5b2c6f",
		Head:       "default",
		Tail:       "default",
		Version:    "1.0.0",
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.Printf("Game started: %s, Turn: %d, You: %s", req.Game.ID, req.Turn, req.You.Name)
	w.WriteHeader(http.StatusOK)
}

// handleMove runs one search invocation for the turn.
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()

	var req GameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	state := convertToGameState(&req)
	// The engine assumes structurally valid input; rejecting garbage is
	// this adapter's job.
	if err := game.Validate(state); err != nil {
		http.Error(w, fmt.Sprintf("invalid game state: %v", err), http.StatusBadRequest)
		return
	}

	config := s.config
	if req.Game.Ruleset.Settings.HazardDamagePerTurn > 0 {
		config.Rules.HazardDamagePerTurn = int32(req.Game.Ruleset.Settings.HazardDamagePerTurn)
	}

	budget := s.moveTimeout
	if req.Game.Timeout > 0 {
		budget = time.Duration(req.Game.Timeout) * time.Millisecond
	}
	// Reserve a slice for decode/encode and network latency on top of
	// the engine's own safety margin.
	budget -= 50 * time.Millisecond
	if budget < 50*time.Millisecond {
		budget = 50 * time.Millisecond
	}

	result := search.Search(state, config, budget)

	var response MoveResponse
	if result.NoMove {
		// Only reachable when the request claims we are dead. The wire
		// format still demands a move; it has no effect on the game.
		response = MoveResponse{Move: "up", Shout: "ghost move"}
	} else {
		response = MoveResponse{
			Move:  rules.MoveString(result.Move),
			Shout: fmt.Sprintf("depth %d, %d nodes", result.Depth, result.Nodes),
		}
	}

	elapsed := time.Since(startTime)
	log.Printf("Turn %d: Move=%s, Depth=%d, Nodes=%d, Time=%v",
		req.Turn, response.Move, result.Depth, result.Nodes, elapsed)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (s *Server) handleEnd(w http.ResponseWriter, r *http.Request) {
	var req GameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	youAlive := false
	for _, snake := range req.Board.Snakes {
		if snake.ID == req.You.ID {
			youAlive = true
			break
		}
	}

	result := "lost"
	if youAlive {
		result = "won"
	} else if len(req.Board.Snakes) == 0 {
		result = "draw"
	}

	log.Printf("Game ended: %s, Turn: %d, Result: %s", req.Game.ID, req.Turn, result)
	w.WriteHeader(http.StatusOK)
}

// convertToGameState maps the wire request onto the engine's state model.
func convertToGameState(req *GameRequest) *game.GameState {
	state := &game.GameState{
		Width:  int32(req.Board.Width),
		Height: int32(req.Board.Height),
		YouId:  req.You.ID,
		Turn:   int32(req.Turn),
	}

	state.Food = make([]game.Point, len(req.Board.Food))
	for i, f := range req.Board.Food {
		state.Food[i] = game.Point{X: int32(f.X), Y: int32(f.Y)}
	}

	state.Hazards = make([]game.Point, len(req.Board.Hazards))
	for i, h := range req.Board.Hazards {
		state.Hazards[i] = game.Point{X: int32(h.X), Y: int32(h.Y)}
	}

	state.Snakes = make([]game.Snake, len(req.Board.Snakes))
	for i, s := range req.Board.Snakes {
		snake := game.Snake{
			Id:     s.ID,
			Health: int32(s.Health),
			Body:   make([]game.Point, len(s.Body)),
		}
		for j, b := range s.Body {
			snake.Body[j] = game.Point{X: int32(b.X), Y: int32(b.Y)}
		}
		state.Snakes[i] = snake
	}

	return state
}

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	listen := fs.String("listen", ":8080", "HTTP listen address")
	moveTimeout := fs.Duration("move-timeout", 500*time.Millisecond, "Default move timeout when the request omits one")
	safetyMargin := fs.Duration("safety-margin", 50*time.Millisecond, "Slice of the budget the search leaves unused")
	maxDepth := fs.Int("max-depth", 24, "Iterative deepening depth cap")
	opponentMode := fs.String("opponent-mode", "paranoid", "Opponent model: paranoid or expectation")
	cacheSize := fs.Int("cache-size", 1<<16, "Transposition cache entries per search (0 disables)")

	if err := fs.Parse(os.Args[1:]); err != nil {
		log.Fatalf("flag parse: %v", err)
	}

	config := search.DefaultConfig()
	config.SafetyMargin = *safetyMargin
	config.MaxDepth = *maxDepth
	config.OpponentMode = search.ParseOpponentMode(*opponentMode)
	config.CacheSize = *cacheSize

	server := NewServer(config, *moveTimeout)

	mux := http.NewServeMux()
	mux.HandleFunc("/", server.handleIndex)
	mux.HandleFunc("/start", server.handleStart)
	mux.HandleFunc("/move", server.handleMove)
	mux.HandleFunc("/end", server.handleEnd)

	srv := &http.Server{
		Addr:              *listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("Battlesnake server listening on http://%s (mode=%s)", *listen, *opponentMode)
	log.Fatal(srv.ListenAndServe())
}
