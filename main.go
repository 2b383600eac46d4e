package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Akari202/wordle/internal/config"
	"github.com/Akari202/wordle/internal/matrix"
	"github.com/Akari202/wordle/internal/words"
)

// app carries what every sub-command shares once the root pre-run is done.
type app struct {
	cfg *config.Config

	// flag overrides
	backend   string
	cachePath string
	workers   int
	wordsFile string
}

func main() {
	a := &app{}
	root := &cobra.Command{
		Use:           "wordle",
		Short:         "Wordle feedback patterns: precompute, query, play and explore",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.backend, "cache-backend", "", "matrix store: file, sqlite or memory (env CACHE_BACKEND)")
	pf.StringVar(&a.cachePath, "cache-path", "", "matrix store location (env CACHE_PATH)")
	pf.IntVar(&a.workers, "workers", -1, "generation workers, 0 = all CPUs (env GEN_WORKERS)")
	pf.StringVar(&a.wordsFile, "words", "", "JSON word list (env WORDS_FILE)")

	root.AddCommand(
		a.serveCmd(),
		a.buildCmd(),
		a.playCmd(),
		a.exploreCmd(),
		a.patternCmd(),
		a.tokenCmd(),
	)

	if err := root.Execute(); err != nil {
		log.Fatal().Err(err).Msg("wordle")
	}
}

func (a *app) setup() error {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	if a.backend != "" {
		cfg.CacheBackend = a.backend
		if a.cachePath == "" && os.Getenv("CACHE_PATH") == "" {
			cfg.CachePath = config.DefaultCachePath(a.backend)
		}
	}
	if a.cachePath != "" {
		cfg.CachePath = a.cachePath
	}
	if a.workers >= 0 {
		cfg.GenWorkers = a.workers
	}
	if a.wordsFile != "" {
		cfg.Words = words.Paths{JSON: a.wordsFile}
	}
	a.cfg = cfg
	return nil
}

// openCache loads the vocabulary and opens the configured store. Call the
// returned func on exit.
func (a *app) openCache(opts ...matrix.Option) (*matrix.Cache, func(), error) {
	v, err := words.Load(a.cfg.Words)
	if err != nil {
		return nil, nil, err
	}
	st, closer, err := a.cfg.OpenStore()
	if err != nil {
		return nil, nil, err
	}
	answers, guesses := v.Stats()
	log.Debug().Int("answers", answers).Int("guesses", guesses).
		Str("store", st.Location()).Msg("vocabulary loaded")

	opts = append([]matrix.Option{matrix.WithWorkers(a.cfg.GenWorkers)}, opts...)
	return matrix.New(v, st, opts...), func() {
		if err := closer.Close(); err != nil {
			log.Warn().Err(err).Msg("close store")
		}
	}, nil
}
