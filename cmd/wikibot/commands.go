package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wikibot/internal/api"
	"wikibot/internal/logger"
	"wikibot/internal/service"
	"wikibot/internal/session"
	"wikibot/internal/tui"
)

func chatCMD(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "chat [topic]",
		Short: "Start the interactive terminal chat",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(*cfgPath, args)
		},
	}
}

func runChat(cfgPath string, args []string) error {
	a, err := newApp(cfgPath, nil)
	if err != nil {
		return err
	}
	defer a.log.Sync() //nolint:errcheck

	m := tui.New(a.newBot(), a.fetcher, a.fetchBudget(), strings.Join(args, " "))
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func askCMD(cfgPath *string) *cobra.Command {
	var topic string
	var more bool
	cmd := &cobra.Command{
		Use:   "ask --topic TOPIC QUESTION",
		Short: "Answer a single question about a topic and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*cfgPath, logger.Stderr())
			if err != nil {
				return err
			}
			defer a.log.Sync() //nolint:errcheck

			ctx, cancel := context.WithTimeout(cmd.Context(), a.fetchBudget())
			defer cancel()

			return runAsk(ctx, a.newBot(), cmd.OutOrStdout(), topic, strings.Join(args, " "), more)
		},
	}
	cmd.Flags().StringVarP(&topic, "topic", "t", "", "article to load")
	cmd.Flags().BoolVar(&more, "more", false, "also print the paragraph containing the answer")
	_ = cmd.MarkFlagRequired("topic")
	return cmd
}

// runAsk loads topic into bot and writes the answer to question, plus the
// owning paragraph when more is set. Failures come back as user messages.
func runAsk(ctx context.Context, bot *service.Bot, out io.Writer, topic, question string, more bool) error {
	if _, err := bot.SetTopic(ctx, topic); err != nil {
		return errors.New(service.Message(err))
	}
	ans, err := bot.Ask(question)
	if err != nil {
		return errors.New(service.Message(err))
	}
	if !ans.Matched {
		fmt.Fprintln(out, service.NoMatchMessage)
		return nil
	}
	fmt.Fprintln(out, ans.Sentence)
	if more {
		para, err := bot.MoreInfo()
		if err != nil {
			return errors.New(service.Message(err))
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, para)
	}
	return nil
}

func serveCMD(cfgPath *string) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*cfgPath, logger.Stderr())
			if err != nil {
				return err
			}
			defer a.log.Sync() //nolint:errcheck

			if addr == "" {
				addr = a.cfg.Server.Address
			}
			ttl := time.Duration(a.cfg.Server.SessionTTLMins) * time.Minute
			srv := api.NewServer(session.NewStore(a.newBot, ttl), a.log)

			httpServer := &http.Server{
				Addr:         addr,
				Handler:      srv,
				ReadTimeout:  30 * time.Second,
				WriteTimeout: a.fetchBudget() + 30*time.Second,
				IdleTimeout:  60 * time.Second,
			}

			// Graceful shutdown.
			go func() {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
				<-sigCh
				a.log.Info("shutting down...")

				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer shutdownCancel()
				_ = httpServer.Shutdown(shutdownCtx)
			}()

			a.log.Info("starting wikibot", zap.String("addr", addr))
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
