package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nstehr/vanguard/vanguard-core/agent"
	"github.com/nstehr/vanguard/vanguard-core/combat"
	"github.com/nstehr/vanguard/vanguard-core/config"
	"github.com/nstehr/vanguard/vanguard-core/ipc"
	"github.com/nstehr/vanguard/vanguard-core/partyfeed"
	"github.com/nstehr/vanguard/vanguard-core/skills"
)

const banner = `
██╗   ██╗ █████╗ ███╗   ██╗ ██████╗ ██╗   ██╗ █████╗ ██████╗ ██████╗
██║   ██║██╔══██╗████╗  ██║██╔════╝ ██║   ██║██╔══██╗██╔══██╗██╔══██╗
██║   ██║███████║██╔██╗ ██║██║  ███╗██║   ██║███████║██████╔╝██║  ██║
╚██╗ ██╔╝██╔══██║██║╚██╗██║██║   ██║██║   ██║██╔══██║██╔══██╗██║  ██║
 ╚████╔╝ ██║  ██║██║ ╚████║╚██████╔╝╚██████╔╝██║  ██║██║  ██║██████╔╝
  ╚═══╝  ╚═╝  ╚═╝╚═╝  ╚═══╝ ╚═════╝  ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝

Skill-Rotation Combat Engine`

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Listen for game clients and run the combat engine",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("socket", "", "unix socket path")
	serveCmd.Flags().String("mode", "", "targeting mode (smart or assist)")
	serveCmd.Flags().String("party-feed", "", "websocket URL of the party relay")
	_ = viper.BindPFlag("socket", serveCmd.Flags().Lookup("socket"))
	_ = viper.BindPFlag("targeting_mode", serveCmd.Flags().Lookup("mode"))
	_ = viper.BindPFlag("party_feed_url", serveCmd.Flags().Lookup("party-feed"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)
	slog.Info("starting vanguard", "mode", cfg.TargetingMode, "customTiers", len(cfg.CustomTiers))

	catalog, err := skills.LoadFile(cfg.SkillsFile)
	if err != nil {
		return err
	}
	slog.Info("skill catalog loaded", "path", cfg.SkillsFile, "skills", catalog.Len())

	// Compile once up front so a bad tier fails the process, not every session.
	if _, err := combat.NewOrderer(cfg.CustomTiers); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var feed *partyfeed.Feed
	if cfg.PartyFeedURL != "" {
		feed = partyfeed.New(cfg.PartyFeedURL, logger)
		go feed.Run(ctx)
	}

	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(cfg.Socket); err != nil {
		return fmt.Errorf("clean up socket %s: %w", cfg.Socket, err)
	}

	listener, err := net.Listen("unix", cfg.Socket)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Socket, err)
	}
	defer listener.Close()
	defer os.Remove(cfg.Socket)

	slog.Info("listening on domain socket", "path", cfg.Socket)

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				slog.Info("shutting down")
				return nil
			default:
				slog.Error("failed to accept connection", "error", err)
				continue
			}
		}
		slog.Info("new connection accepted")
		go handleConn(ctx, conn, cfg, catalog, feed)
	}
}

func handleConn(ctx context.Context, conn net.Conn, cfg *config.Config, catalog *skills.Catalog, feed *partyfeed.Feed) {
	c := ipc.NewConnection(conn, nil)

	opts := agent.Options{
		Catalog:          catalog,
		Controller:       cfg.Controller(nil),
		DisableCombat:    !*cfg.CombatEnabled,
		DisableTargeting: !*cfg.TargetingEnabled,
	}

	sessionCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if feed != nil {
		opts.Party = feed
		opts.Publisher = agent.NewPublisher(feed, 0, nil)
		go opts.Publisher.Start(sessionCtx)
	}

	a, err := agent.New(c, opts)
	if err != nil {
		slog.Error("failed to create session", "error", err)
		conn.Close()
		return
	}
	c.RegisterHandler(ipc.TypeHello, a.HandleHello)
	c.RegisterHandler(ipc.TypeWorldState, a.HandleWorldState)
	c.ReadLoop()
	slog.Info("session ended", "session", a.ID, "player", a.Player)
}
