package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	"github.com/muesli/termenv"

	"github.com/tomz197/pong/internal/config"
	"github.com/tomz197/pong/internal/draw"
	"github.com/tomz197/pong/internal/loop"
	lconfig "github.com/tomz197/pong/internal/loop/config"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

// gameSettings applies to every session on this server.
type gameSettings struct {
	matchTicks  int
	idleTimeout time.Duration
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "pong",
	})

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	settings := gameSettings{
		matchTicks:  config.GetEnvInt("PONG_MATCH_SECONDS", 0) * lconfig.TargetFPS,
		idleTimeout: config.GetEnvDuration("PONG_IDLE_TIMEOUT", lconfig.InactivityDisconnectUser),
	}
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath,
		"matchTicks", settings.matchTicks, "idleTimeout", settings.idleTimeout)

	// Sessions still playing when the server shuts down
	sessions := &sessionGroup{}
	ctx, cancelSessions := context.WithCancel(context.Background())
	defer cancelSessions()

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			gameMiddleware(ctx, sessions, settings, logger),
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Refuse new games, then end running ones so their sessions can close
	sessions.close()
	cancelSessions()
	if sessions.wait(5 * time.Second) {
		logger.Info("all sessions closed")
	} else {
		logger.Warn("sessions still open after shutdown timeout")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware runs an independent game for each SSH session.
func gameMiddleware(ctx context.Context, sessions *sessionGroup, settings gameSettings, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			if !sessions.enter() {
				fmt.Fprintln(sess, "Server is shutting down, try again shortly.")
				return
			}
			defer sessions.leave()

			id := uuid.NewString()
			sessLogger := logger.WithPrefix("pong " + id[:8]).With("user", sess.User())
			sessLogger.Info("new game session", "id", id, "terminal", pty.Term,
				"width", pty.Window.Width, "height", pty.Window.Height)

			// Create a terminal size tracker that updates on window changes
			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

			// Listen for window size changes in a goroutine
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			gameCtx, cancel := context.WithCancel(ctx)
			defer cancel()
			go func() {
				// The client hung up
				select {
				case <-sess.Context().Done():
					cancel()
				case <-gameCtx.Done():
				}
			}()

			// Pick escape sequences the client's terminal understands
			renderer := lipgloss.NewRenderer(sess,
				termenv.WithEnvironment(newSessionEnv(sess.Environ(), pty.Term)),
				termenv.WithUnsafe(),
			)
			profile := renderer.ColorProfile()
			sessLogger.Debug("color profile", "profile", profileName(profile))

			game := loop.NewSession(bufio.NewReader(sess), sess, loop.SessionOptions{
				TermSizeFunc: sizeTracker.getSize,
				ColorProfile: profile,
				MatchTicks:   settings.matchTicks,
				IdleTimeout:  settings.idleTimeout,
				Logger:       sessLogger,
			})
			if err := game.Run(gameCtx); err != nil {
				sessLogger.Error("game error", "err", err)
			}

			state := game.Loop().State()
			sessLogger.Info("session ended", "score1", state.Player1.Score, "score2", state.Player2.Score)
			next(sess)
		}
	}
}

// sessionGroup counts running games. Once closed it admits no new ones,
// so wait never races with enter.
type sessionGroup struct {
	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// enter registers a game; false once the group is closed.
func (g *sessionGroup) enter() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return false
	}
	g.wg.Add(1)
	return true
}

func (g *sessionGroup) leave() {
	g.wg.Done()
}

func (g *sessionGroup) close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
}

// wait blocks until every game has left or d passes. Reports whether all left.
// Call close first.
func (g *sessionGroup) wait(d time.Duration) bool {
	finished := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		return true
	case <-time.After(d):
		return false
	}
}

// sessionEnv exposes an SSH session's environment to termenv.
// Clients do not always forward TERM, so the PTY's terminal type fills it in.
type sessionEnv struct {
	vars []string
}

func newSessionEnv(environ []string, ptyTerm string) sessionEnv {
	env := sessionEnv{vars: append([]string(nil), environ...)}
	if env.Getenv("TERM") == "" && ptyTerm != "" {
		env.vars = append(env.vars, "TERM="+ptyTerm)
	}
	return env
}

func (e sessionEnv) Environ() []string {
	return e.vars
}

func (e sessionEnv) Getenv(key string) string {
	prefix := key + "="
	for _, kv := range e.vars {
		if strings.HasPrefix(kv, prefix) {
			return strings.TrimPrefix(kv, prefix)
		}
	}
	return ""
}

var _ termenv.Environ = sessionEnv{}

func profileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "ansi256"
	case termenv.ANSI:
		return "ansi"
	default:
		return "ascii"
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
