package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Akari202/wordle/internal/console"
	"github.com/Akari202/wordle/internal/game"
	"github.com/Akari202/wordle/internal/httpserver"
	"github.com/Akari202/wordle/internal/matrix"
	"github.com/Akari202/wordle/internal/pattern"
)

func (a *app) serveCmd() *cobra.Command {
	var port string
	var warm bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, done, err := a.openCache()
			if err != nil {
				return err
			}
			defer done()

			if warm {
				go func() {
					if _, err := c.LoadOrBuild(context.Background()); err != nil && !errors.Is(err, matrix.ErrCachePersist) {
						log.Error().Err(err).Msg("warm pattern matrix")
					}
				}()
			}

			srv := httpserver.New(c, httpserver.Options{
				ClientOrigin: a.cfg.ClientOrigin,
				AdminSecret:  a.cfg.AdminSecret,
				DailySalt:    a.cfg.DailySalt,
				RateLimit:    a.cfg.RateLimit,
			})
			if port == "" {
				port = a.cfg.Port
			}
			log.Info().Str("port", port).Str("cache", a.cfg.CacheBackend).Msg("starting server")
			return srv.Start(":" + port)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (env PORT)")
	cmd.Flags().BoolVar(&warm, "warm", false, "load or build the pattern matrix at start-up")
	return cmd
}

func (a *app) buildCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Load or generate the pattern matrix and persist it",
		RunE: func(cmd *cobra.Command, args []string) error {
			var bar *progressbar.ProgressBar
			c, done, err := a.openCache(matrix.WithProgress(func(rows int) {
				if bar != nil {
					_ = bar.Add(rows)
				}
			}))
			if err != nil {
				return err
			}
			defer done()

			_, guesses := c.Vocabulary().Stats()
			bar = progressbar.Default(int64(guesses), "generating")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			build := c.LoadOrBuild
			if force {
				build = c.Rebuild
			}
			s, err := build(ctx)
			if errors.Is(err, matrix.ErrCacheLoad) {
				log.Warn().Err(err).Msg("stored matrix unusable, rebuilding")
				bar.Reset()
				s, err = c.Rebuild(ctx)
			}
			_ = bar.Finish()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d x %d patterns, %d built, store %s\n",
				s.Matrix.Rows(), s.Matrix.Cols(), c.Builds(), a.cfg.CachePath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "regenerate even if a stored matrix exists")
	return cmd
}

func (a *app) playCmd() *cobra.Command {
	var answer string
	var daily bool
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, done, err := a.openCache()
			if err != nil {
				return err
			}
			defer done()

			e := game.NewEngine(c.Vocabulary(), c)
			var g *game.Game
			if daily {
				g, err = e.Daily(time.Now(), a.cfg.DailySalt)
			} else {
				g, err = e.New(answer)
			}
			if err != nil {
				return err
			}
			return e.Play(cmd.InOrStdin(), cmd.OutOrStdout(), g)
		},
	}
	cmd.Flags().StringVar(&answer, "answer", "", "fixed answer instead of a random one")
	cmd.Flags().BoolVar(&daily, "daily", false, "play today's daily answer")
	return cmd
}

func (a *app) exploreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "Explore how guesses split the remaining answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, done, err := a.openCache()
			if err != nil {
				return err
			}
			defer done()

			ctx := cmd.Context()
			if _, err := c.LoadOrBuild(ctx); err != nil && !errors.Is(err, matrix.ErrCachePersist) {
				return err
			}
			return console.Explore(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), c, c.Vocabulary().Answers)
		},
	}
}

func (a *app) patternCmd() *cobra.Command {
	var decode bool
	cmd := &cobra.Command{
		Use:   "pattern GUESS ANSWER | pattern --decode VALUE|TERNARY",
		Short: "Score one pair, or decode a pattern",
		// Scoring needs no vocabulary or store.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if decode {
				if len(args) != 1 {
					return errors.New("--decode takes one argument")
				}
				p, err := parsePattern(strings.TrimSpace(args[0]))
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%d %s %s\n", p, p.Ternary(), p)
				return nil
			}
			if len(args) != 2 {
				return errors.New("want GUESS ANSWER")
			}
			g, err := pattern.EncodeWord(strings.ToLower(strings.TrimSpace(args[0])))
			if err != nil {
				return err
			}
			ans, err := pattern.EncodeWord(strings.ToLower(strings.TrimSpace(args[1])))
			if err != nil {
				return err
			}
			p := pattern.Score(g, ans)
			fmt.Fprintf(out, "%d %s %s\n", p, p.Ternary(), p)
			return nil
		},
	}
	cmd.Flags().BoolVar(&decode, "decode", false, "decode a pattern value (0-242) or 5-digit ternary")
	return cmd
}

// parsePattern accepts a 5-digit ternary clue or a decimal value.
func parsePattern(s string) (pattern.Pattern, error) {
	if len(s) == pattern.WordLength {
		if p, err := pattern.ParseTernary(s); err == nil {
			return p, nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", pattern.ErrInvalidPattern, s)
	}
	return pattern.FromInt(n)
}

func (a *app) tokenCmd() *cobra.Command {
	var subject string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin bearer token signed with ADMIN_JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.AdminSecret == "" {
				return errors.New("ADMIN_JWT_SECRET is not set")
			}
			tok, err := httpserver.SignAdminToken(a.cfg.AdminSecret, subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "operator", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
