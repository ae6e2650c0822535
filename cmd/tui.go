package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/simonvc/shopledger/internal/client"
	"github.com/simonvc/shopledger/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		serverAddr := cfg.ServerURL

		if !cmd.Flags().Changed("server") {
			// Embedded server on a free loopback port; logs would corrupt the
			// alternate screen, so it runs with a no-op logger.
			ln, err := net.Listen("tcp", "127.0.0.1:0")
			if err != nil {
				return fmt.Errorf("listen: %w", err)
			}
			a, err := newApp(cfg, ln.Addr().String(), zap.NewNop())
			if err != nil {
				ln.Close()
				return fmt.Errorf("open database: %w", err)
			}
			defer a.Close()

			go func() {
				if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					baseLogger.Error("embedded server error", zap.Error(err))
				}
			}()
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
				defer cancel()
				_ = a.server.Shutdown(ctx)
			}()
			serverAddr = "http://" + ln.Addr().String()

			// Wait for server to be ready
			c := client.New(serverAddr)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			for {
				if err := c.Ping(ctx); err == nil {
					break
				}
				if ctx.Err() != nil {
					return fmt.Errorf("timeout waiting for embedded server")
				}
				time.Sleep(50 * time.Millisecond)
			}
		}

		ui := tui.NewApp(client.New(serverAddr), cfg.Currency)
		p := tea.NewProgram(ui, tea.WithAltScreen())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
