package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/latestcomment/headline-bias-game/internal/services"
)

type Config struct {
	apiKey            string
	baseURL           string
	bind              string
	factsFile         string
	generationTimeout time.Duration
	maxTokens         int
	model             string
	port              int
	temperature       float64
	verbose           bool
	version           bool
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.apiKey) == "" {
		return errors.New("an api key is required (--api-key, HEADLINE_GAME_API_KEY or OPENROUTER_API_KEY)")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.temperature < 0 || c.temperature > 2 {
		return fmt.Errorf("invalid temperature (must be between 0-2 inclusive): %v", c.temperature)
	}
	if c.generationTimeout <= 0 {
		return fmt.Errorf("invalid generation timeout: %s", c.generationTimeout)
	}
	return nil
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("HEADLINE_GAME")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "headline-bias-game",
		Short:         "A trivia game about putting biased headlines back in order.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return Serve(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVar(&cfg.apiKey, "api-key", "", "text generation api key (env: HEADLINE_GAME_API_KEY, OPENROUTER_API_KEY)")
	fs.StringVar(&cfg.baseURL, "base-url", services.DefaultBaseURL, "OpenAI-compatible api base url (env: HEADLINE_GAME_BASE_URL)")
	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: HEADLINE_GAME_BIND)")
	fs.StringVar(&cfg.factsFile, "facts-file", "", "JSON array of the 10 facts to play, instead of the built-in list (env: HEADLINE_GAME_FACTS_FILE)")
	fs.DurationVar(&cfg.generationTimeout, "generation-timeout", services.DefaultGenerationTimeout, "time allowed to generate the headlines of a round (env: HEADLINE_GAME_GENERATION_TIMEOUT)")
	fs.IntVar(&cfg.maxTokens, "max-tokens", 1024, "token limit of a generator reply (env: HEADLINE_GAME_MAX_TOKENS)")
	fs.StringVar(&cfg.model, "model", services.DefaultModel, "model used to write headlines (env: HEADLINE_GAME_MODEL, AI_MODEL)")
	fs.IntVarP(&cfg.port, "port", "p", 3000, "port to listen on (env: HEADLINE_GAME_PORT)")
	fs.Float64Var(&cfg.temperature, "temperature", 0.8, "sampling temperature of the generator (env: HEADLINE_GAME_TEMPERATURE)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: HEADLINE_GAME_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: HEADLINE_GAME_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
	_ = v.BindEnv("api-key", "HEADLINE_GAME_API_KEY", "OPENROUTER_API_KEY")
	_ = v.BindEnv("model", "HEADLINE_GAME_MODEL", "AI_MODEL")
	for _, name := range []string{"api-key", "model"} {
		if f := fs.Lookup(name); !f.Changed && v.IsSet(name) {
			_ = fs.Set(name, v.GetString(name))
		}
	}

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("headline-bias-game v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
