package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/lesezeit/internal/llm"
	"github.com/abhisek/lesezeit/internal/server"
	"github.com/abhisek/lesezeit/internal/speech"
	"github.com/abhisek/lesezeit/internal/tutor"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the library and tutor over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg := server.ConfigFromEnv()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		if origins, _ := cmd.Flags().GetStringSlice("cors-origin"); len(origins) > 0 {
			cfg.CORSOrigins = origins
		}

		logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		lib, err := loadLibrary(cmd)
		if err != nil {
			return err
		}

		opts := []server.Option{server.WithLogger(logger)}
		if llmCfg, ok := llm.Resolve(); ok {
			provider, err := llm.NewProvider(ctx, llmCfg, st.EventRepo())
			if err != nil {
				return fmt.Errorf("configure LLM provider: %w", err)
			}
			opts = append(opts, server.WithTutor(tutor.NewService(provider, tutor.DefaultConfig())))
		} else {
			logger.Warn("no LLM provider configured; tutor endpoints return 503")
		}
		synth, trans := speech.New(speechConfig())
		opts = append(opts, server.WithSpeech(synth, trans))

		srv := server.New(cfg, lib, opts...)

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			logger.Info("listening", "addr", cfg.Addr, "texts", lib.Len())
			return srv.ListenAndServe(ctx)
		})
		g.Go(func() error {
			<-ctx.Done()
			logger.Info("shutting down")
			return nil
		})
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides LESEZEIT_ADDR, default :8080)")
	serveCmd.Flags().StringSlice("cors-origin", nil, "Allowed CORS origin, repeatable (overrides LESEZEIT_CORS_ORIGINS)")
}
