// Command slideduel runs the Slide Duel game.
//
// It supports two modes:
//  1. "serve" – runs the matchmaking server exposing the websocket game
//     endpoint, with an optional ngrok tunnel for external access
//  2. "play" – connects to a server as a player and drives a game from the
//     terminal
//
// Flags control host/port, logging, and tunneling; every flag also has an
// environment variable (and .env file) counterpart.
package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/slideduel/slideduel/api"
	"github.com/slideduel/slideduel/client"
	"github.com/slideduel/slideduel/config"
	"github.com/slideduel/slideduel/game/board"
	"github.com/slideduel/slideduel/game/history"
	"github.com/slideduel/slideduel/game/match"
	"github.com/slideduel/slideduel/logging"
	transport "github.com/slideduel/slideduel/transport/websocket"
	"github.com/slideduel/slideduel/validate"
)

const (
	Version = "1.0.0"
	AppName = "Slide Duel"
)

func main() {
	cfg := config.Load()

	cmd := &cli.Command{
		Name:    "slideduel",
		Usage:   "two-player real-time sliding-tile race",
		Version: Version,
		Commands: []*cli.Command{
			serveCommand(cfg),
			playCommand(cfg),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the matchmaking server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Value: cfg.Host, Usage: "listen host"},
			&cli.IntFlag{Name: "port", Value: cfg.Port, Usage: "listen port"},
			&cli.StringFlag{Name: "log-file", Value: cfg.LogFile, Usage: "log file path (stderr when empty)"},
			&cli.BoolFlag{Name: "debug", Value: cfg.Debug, Usage: "enable debug logging"},
			&cli.StringFlag{Name: "history-dir", Value: cfg.HistoryDir, Usage: "match history directory (empty disables recording)"},
			&cli.BoolFlag{Name: "ngrok", Value: cfg.NgrokEnabled, Usage: "expose the server through an ngrok tunnel"},
			&cli.StringFlag{Name: "ngrok-auth", Value: cfg.NgrokAuthToken, Usage: "ngrok auth token"},
			&cli.StringFlag{Name: "ngrok-domain", Value: cfg.NgrokDomain, Usage: "custom ngrok domain (optional)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg.Host = cmd.String("host")
			cfg.Port = int(cmd.Int("port"))
			cfg.LogFile = cmd.String("log-file")
			cfg.Debug = cmd.Bool("debug")
			cfg.HistoryDir = cmd.String("history-dir")
			cfg.NgrokEnabled = cmd.Bool("ngrok")
			cfg.NgrokAuthToken = cmd.String("ngrok-auth")
			cfg.NgrokDomain = cmd.String("ngrok-domain")
			return runServe(ctx, cfg)
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	if err := validate.Addr(cfg.Host, cfg.Port); err != nil {
		return err
	}

	log := logging.New(cfg.LogFile, cfg.Debug)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store *history.FileStore
	recorder := history.Discard
	if cfg.HistoryDir != "" {
		var err error
		store, err = history.NewFileStore(cfg.HistoryDir)
		if err != nil {
			return err
		}
		recorder = store
	}

	pool := match.NewPool(log, recorder)
	go pool.Run(ctx)

	var matches api.MatchStore = emptyStore{}
	if store != nil {
		matches = store
	}
	handler := api.NewServer(transport.NewHandler(ctx, pool, log), matches, log)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("%s v%s listening on %s", AppName, Version, cfg.Addr())
		log.Infof("game endpoint: ws://%s/connect", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	if cfg.NgrokEnabled {
		go serveNgrok(ctx, cfg, handler, log)
	}

	<-ctx.Done()
	log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warnf("server shutdown: %v", err)
	}
	return nil
}

// emptyStore serves the history endpoints when recording is disabled.
type emptyStore struct{}

func (emptyStore) List() ([]history.Record, error) { return nil, nil }
func (emptyStore) Get(string) (history.Record, error) {
	return history.Record{}, history.ErrNotFound
}

// serveNgrok provisions a public tunnel and serves the same routes
// through it.
func serveNgrok(ctx context.Context, cfg *config.Config, handler http.Handler, log *zap.SugaredLogger) {
	if cfg.NgrokAuthToken == "" {
		log.Warn("ngrok enabled but no auth token provided (use --ngrok-auth or NGROK_AUTHTOKEN)")
		return
	}

	tunnel := ngrokConfig.HTTPEndpoint()
	if cfg.NgrokDomain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(cfg.NgrokDomain))
		log.Infof("using custom ngrok domain: %s", cfg.NgrokDomain)
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(cfg.NgrokAuthToken))
	if err != nil {
		log.Warnf("failed to start ngrok tunnel: %v", err)
		return
	}
	defer tun.Close()

	log.Infof("ngrok tunnel established: %s", tun.URL())
	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Warnf("ngrok server error: %v", err)
	}
}

func playCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "play",
		Usage: "connect to a server and play from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "server", Value: cfg.ServerURL, Usage: "server websocket URL"},
			&cli.StringFlag{Name: "log-file", Value: "slideduel-client.log", Usage: "log file path"},
			&cli.BoolFlag{Name: "debug", Value: cfg.Debug, Usage: "enable debug logging"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runPlay(ctx, cmd.String("server"), cmd.String("log-file"), cmd.Bool("debug"))
		},
	}
}

func runPlay(ctx context.Context, serverURL, logFile string, debug bool) error {
	if err := validate.ServerURL(serverURL); err != nil {
		return err
	}

	// logs go to a file so they don't garble the board output
	log := logging.New(logFile, debug)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := client.Dial(ctx, serverURL, log)
	if err != nil {
		return err
	}
	defer sess.Close()

	fmt.Println("Waiting for opponent...")

	go func() {
		for {
			select {
			case <-sess.Updates():
				render(sess.Snapshot())
			case <-sess.Done():
				return
			}
		}
	}()

	go readClicks(sess)

	<-sess.Done()

	snap := sess.Snapshot()
	switch snap.State {
	case client.GameEnd:
		if snap.IsWin {
			fmt.Println("You win!")
		} else {
			fmt.Println("You lose!")
		}
	case client.OpponentLeft:
		fmt.Println("Opponent left the game")
	case client.ConnectionError:
		fmt.Println("Server connection error")
	}
	return nil
}

// readClicks feeds "row col" lines from stdin into the session.
func readClicks(sess *client.Session) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			fmt.Println("enter a click as: <row> <col>")
			continue
		}
		var pos board.Position
		if _, err := fmt.Sscanf(fields[0]+" "+fields[1], "%d %d", &pos.Row, &pos.Col); err != nil {
			fmt.Println("enter a click as: <row> <col>")
			continue
		}
		if !pos.InBounds() {
			fmt.Printf("coordinates must be 0..%d\n", board.Size-1)
			continue
		}
		sess.Click(pos)
	}
}

func render(snap client.Snapshot) {
	if snap.Own == nil {
		return
	}

	fmt.Println()
	fmt.Println("Target:")
	for _, row := range snap.Target {
		var sb strings.Builder
		for _, c := range row {
			sb.WriteByte(colorLetter(c))
			sb.WriteByte(' ')
		}
		fmt.Println("  " + sb.String())
	}

	fmt.Println("Your board:            Opponent:")
	for i := 0; i < board.Size; i++ {
		var own, opp strings.Builder
		for j := 0; j < board.Size; j++ {
			own.WriteByte(tileLetter(snap.Own.Cells[i][j]))
			own.WriteByte(' ')
			opp.WriteByte(tileLetter(snap.Opponent.Cells[i][j]))
			opp.WriteByte(' ')
		}
		fmt.Printf("  %s           %s\n", own.String(), opp.String())
	}

	if snap.State == client.Playing {
		fmt.Print("click> ")
	}
}

func colorLetter(c board.Color) byte {
	return strings.ToUpper(c.String())[0]
}

func tileLetter(cell board.TileCell) byte {
	if !cell.Occupied {
		return '.'
	}
	return colorLetter(cell.Tile.Color)
}
