package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/rpsarena/internal/api"
	"github.com/mcoot/rpsarena/internal/factory"
	"github.com/mcoot/rpsarena/internal/services/game"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "rpsctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/rpsctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) start(args ...string) (*exec.Cmd, *strings.Builder, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	var out strings.Builder
	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	return cmd, &out, cmd.Start()
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	app      *factory.App
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T, rules game.Config) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().(*net.TCPAddr)
	require.NoError(t, listener.Close())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	app, err := factory.New(factory.Config{Logger: logger, GameConfig: rules})
	require.NoError(t, err)
	go app.Hub.Run()

	serverCfg := api.DefaultServerConfig()
	serverCfg.Host = "127.0.0.1"
	serverCfg.Port = addr.Port
	server := api.NewServer(app.Router(), serverCfg, logger)

	go func() {
		if err := server.Start(); err != nil {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + server.Addr()
	waitForServer(t, serverURL+"/api/health")

	return &testServer{
		app:  app,
		addr: serverURL,
		shutdown: func() {
			app.Hub.Close()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
			_ = app.Close()
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type playerResponse struct {
	Name     string `json:"name"`
	Score    int    `json:"score"`
	GamesWon int    `json:"games_won"`
}

type roundWins struct {
	Player1 int `json:"player1"`
	Player2 int `json:"player2"`
}

type sessionResponse struct {
	Status        string    `json:"status"`
	MatchID       *string   `json:"match_id"`
	Player1       *string   `json:"player1"`
	Player2       *string   `json:"player2"`
	Round         int       `json:"round"`
	LockedPlayer1 bool      `json:"locked_player1"`
	RoundWins     roundWins `json:"round_wins"`
	MaxRounds     int       `json:"max_rounds"`
	LastRound     *outcome  `json:"last_round"`
}

type outcome struct {
	Player1Choice string `json:"player1_choice"`
	Player2Choice string `json:"player2_choice"`
	Winner        string `json:"winner"`
}

type roundResponse struct {
	Round         int       `json:"round"`
	Player1Choice string    `json:"player1_choice"`
	Player2Choice string    `json:"player2_choice"`
	Winner        string    `json:"winner"`
	LockedPlayer1 bool      `json:"locked_player1"`
	NextPlayer1   *string   `json:"next_player1"`
	RoundWins     roundWins `json:"round_wins"`
	Finished      bool      `json:"finished"`
}

type leaderboardResponse struct {
	By      string           `json:"by"`
	Players []playerResponse `json:"players"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type eventLine struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t, game.DefaultConfig())
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_PlayerCommands(t *testing.T) {
	ts := startTestServer(t, game.DefaultConfig())
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("player", "register", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)

	var player playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &player))
	assert.Equal(t, playerResponse{Name: "Alice"}, player)

	// Registering again is a no-op
	output, err = cli.run("player", "register", "--name", "  Alice  ")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &player))
	assert.Equal(t, "Alice", player.Name)

	output, err = cli.run("player", "get", "Alice")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &player))
	assert.Equal(t, "Alice", player.Name)

	output, err = cli.run("player", "get", "Nobody")
	require.Error(t, err)
	assert.Contains(t, output, "PLAYER_NOT_FOUND")

	// Names with a slash round-trip through the escaped path
	output, err = cli.run("player", "register", "--name", "a/b")
	require.NoError(t, err, "output: %s", output)
	output, err = cli.run("player", "get", "a/b")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &player))
	assert.Equal(t, "a/b", player.Name)
}

func TestCLI_FullGameFlow(t *testing.T) {
	ts := startTestServer(t, game.DefaultConfig())
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	for _, name := range []string{"Alice", "Bob"} {
		output, err := cli.run("player", "register", "--name", name)
		require.NoError(t, err, "output: %s", output)
	}

	// Playing before any start is rejected
	output, err := cli.run("game", "play")
	require.Error(t, err)
	assert.Contains(t, output, "NO_ACTIVE_MATCH")

	output, err = cli.run("game", "start", "--player1", "Alice", "--player2", "Bob")
	require.NoError(t, err, "output: %s", output)

	var session sessionResponse
	require.NoError(t, json.Unmarshal([]byte(output), &session))
	assert.Equal(t, "active", session.Status)
	require.NotNil(t, session.MatchID)
	assert.Equal(t, 0, session.Round)
	assert.False(t, session.LockedPlayer1)

	// Alice wins and is locked in
	output, err = cli.run("game", "play", "--choice1", "rock", "--choice2", "scissors")
	require.NoError(t, err, "output: %s", output)

	var round roundResponse
	require.NoError(t, json.Unmarshal([]byte(output), &round))
	assert.Equal(t, "player1", round.Winner)
	assert.True(t, round.LockedPlayer1)
	require.NotNil(t, round.NextPlayer1)
	assert.Equal(t, "Alice", *round.NextPlayer1)
	assert.Equal(t, roundWins{Player1: 1}, round.RoundWins)

	// Bob wins and the lock is released
	output, err = cli.run("game", "play", "--choice1", "rock", "--choice2", "paper")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &round))
	assert.Equal(t, "player2", round.Winner)
	assert.False(t, round.LockedPlayer1)
	assert.Nil(t, round.NextPlayer1)

	// Random choices are always valid
	output, err = cli.run("game", "play")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &round))
	assert.Contains(t, []string{"rock", "paper", "scissors"}, round.Player1Choice)
	assert.Contains(t, []string{"rock", "paper", "scissors"}, round.Player2Choice)
	assert.Equal(t, 3, round.Round)

	output, err = cli.run("game", "status")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &session))
	assert.Equal(t, 3, session.Round)
	require.NotNil(t, session.LastRound)
	assert.Equal(t, round.Winner, session.LastRound.Winner)
	assert.False(t, round.Finished)

	output, err = cli.run("leaderboard", "--by", "name")
	require.NoError(t, err, "output: %s", output)

	var board leaderboardResponse
	require.NoError(t, json.Unmarshal([]byte(output), &board))
	require.Len(t, board.Players, 2)
	assert.Equal(t, "Alice", board.Players[0].Name)
	assert.Equal(t, "Bob", board.Players[1].Name)
	assert.GreaterOrEqual(t, board.Players[0].Score, 1)
	assert.GreaterOrEqual(t, board.Players[1].Score, 1)
}

func TestCLI_InvalidInput(t *testing.T) {
	ts := startTestServer(t, game.DefaultConfig())
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("player", "register", "--name", "   ")
	require.Error(t, err)
	assert.Contains(t, output, "INVALID_NAME")

	output, err = cli.run("player", "register", "--name", "Alice")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("game", "start", "--player1", "Alice", "--player2", "Alice")
	require.Error(t, err)
	assert.Contains(t, output, "SAME_PLAYER")

	output, err = cli.run("game", "start", "--player1", "Alice", "--player2", "Ghost")
	require.Error(t, err)
	assert.Contains(t, output, "PLAYER_NOT_FOUND")

	output, err = cli.run("leaderboard", "--by", "height")
	require.Error(t, err)
	assert.Contains(t, output, "invalid --by")
}

func TestCLI_MatchLimit(t *testing.T) {
	ts := startTestServer(t, game.Config{LockPolicy: game.LockPolicyAllow, MaxRounds: 1})
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	for _, name := range []string{"Alice", "Bob"} {
		_, err := cli.run("player", "register", "--name", name)
		require.NoError(t, err)
	}
	_, err := cli.run("game", "start", "--player1", "Alice", "--player2", "Bob")
	require.NoError(t, err)

	_, err = cli.run("game", "play")
	require.NoError(t, err)

	output, err := cli.run("game", "play")
	require.Error(t, err)
	assert.Contains(t, output, "MATCH_FINISHED")
}

func TestCLI_EventStream(t *testing.T) {
	ts := startTestServer(t, game.DefaultConfig())
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// connected + player_registered
	stream, out, err := cli.start("events", "--limit", "2")
	require.NoError(t, err)

	require.Eventually(t, func() bool { return ts.app.Hub.ClientCount() == 1 }, 5*time.Second, 20*time.Millisecond)

	_, err = cli.run("player", "register", "--name", "Alice")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- stream.Wait() }()
	select {
	case err := <-done:
		require.NoError(t, err, "output: %s", out.String())
	case <-time.After(5 * time.Second):
		_ = stream.Process.Kill()
		t.Fatalf("event stream did not finish: %s", out.String())
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	var first, second eventLine
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, "connected", first.Event)
	assert.Equal(t, "player_registered", second.Event)
	assert.Contains(t, string(second.Data), `"Alice"`)
}
