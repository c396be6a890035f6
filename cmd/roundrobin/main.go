package main

import (
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/derekprior/roundrobin/internal/config"
	"github.com/derekprior/roundrobin/internal/excel"
	"github.com/derekprior/roundrobin/internal/fixture"
	"github.com/derekprior/roundrobin/internal/render"
	"github.com/derekprior/roundrobin/internal/validator"
)

const (
	defaultConfigFile = "league.yaml"
	configEnv         = "ROUNDROBIN_CONFIG"
	xdgConfigFile     = "roundrobin/league.yaml"
)

// resolveConfigPath picks the league file: --config, then $ROUNDROBIN_CONFIG,
// then ./league.yaml, then the user's XDG config directory.
func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if env := os.Getenv(configEnv); env != "" {
		return env, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	if path, err := xdg.SearchConfigFile(xdgConfigFile); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("no league file found. Either create %s in the current directory, set %s or pass --config", defaultConfigFile, configEnv)
}

func setupLogger(verbose bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "⚠ reading .env: %s\n", err)
	}

	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var verbose bool
	rootCmd := &cobra.Command{
		Use:   "roundrobin",
		Short: "Round-robin league fixture generator",
		Long: heredoc.Doc(`
			roundrobin builds a single round-robin fixture list for a league:
			every team meets every other team exactly once. With an odd number
			of teams one team rests each round.
		`),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(verbose)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug details to stderr")

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter league.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.OutOrStdout(), initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the league file")

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate, show and validate schedules",
	}

	var configFile string
	var seed int64
	scheduleCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to league file (default: league.yaml in current directory)")
	scheduleCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Seed for a reproducible schedule (default: the league file's seed, else random)")

	seedFlag := func(cmd *cobra.Command) *int64 {
		if cmd.Flags().Changed("seed") {
			return &seed
		}
		return nil
	}

	var outputFile string
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a schedule and save it as an Excel workbook",
		Long: heredoc.Doc(`
			Generate draws a new schedule from the league file and writes a
			workbook with printable pages of rounds, a Fixtures sheet and one
			sheet per team. The seed used is printed so the same schedule can
			be produced again with --seed.
		`),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runGenerate(cmd.OutOrStdout(), configPath, outputFile, seedFlag(cmd))
		},
	}
	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "schedule.xlsx", "Output Excel file path")

	showCmd := &cobra.Command{
		Use:          "show",
		Short:        "Print a schedule to the terminal",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runShow(cmd.OutOrStdout(), configPath, seedFlag(cmd))
		},
	}

	validateCmd := &cobra.Command{
		Use:          "validate <schedule.xlsx>",
		Short:        "Check an edited schedule is still a valid round-robin",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runValidate(cmd.OutOrStdout(), configPath, args[0])
		},
	}

	scheduleCmd.AddCommand(generateCmd, showCmd, validateCmd)
	rootCmd.AddCommand(initCmd, scheduleCmd)
	return rootCmd
}

func runInit(out io.Writer, outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(out, "✓ Created %s\n", outputPath)
	return nil
}

var configTemplate = heredoc.Doc(`
	# League configuration
	# ====================
	# Every team plays every other team once. With an odd number of teams,
	# one team rests each round.

	# Name printed at the top of every page.
	league: "Liga Local"

	# Upper-case the league and team names.
	uppercase: true

	# Fix the seed to get the same schedule on every run. Leave it out to
	# draw a new schedule each time; the seed used is always printed.
	# seed: 42

	# Teams, as plain names or as mappings with an explicit id:
	#   - name: Atlas
	#     id: atlas
	# Teams without an id get a generated one.
	teams:
	  - Atlas
	  - América
	  - Barcelona
	  - Real Madrid
	  - Juventus
	  - Manchester City

	# Printable page layout for the Excel export.
	export:
	  rounds_per_page: 9   # rounds on each page
	  columns: 3           # rounds side by side
`)

// generate loads the league file and draws a schedule, preferring an
// explicit seed over the one in the file.
func generate(configPath string, seed *int64) (*config.Config, *fixture.Schedule, error) {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	var opts []fixture.Option
	switch {
	case seed != nil:
		opts = append(opts, fixture.WithSeed(*seed))
	case cfg.Seed != nil:
		opts = append(opts, fixture.WithSeed(*cfg.Seed))
	}

	s, err := fixture.Generate(cfg.League, cfg.FixtureTeams(), opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("generating schedule: %w", err)
	}
	log.Debug().
		Str("config", configPath).
		Str("league", s.LeagueName).
		Int("teams", len(cfg.Teams)).
		Int64("seed", s.Seed).
		Bool("bye", s.HasBye()).
		Msg("schedule generated")
	return cfg, s, nil
}

func runGenerate(out io.Writer, configPath, outputPath string, seed *int64) error {
	cfg, s, err := generate(configPath, seed)
	if err != nil {
		return err
	}

	rounds := s.Rounds()
	fmt.Fprintf(out, "✓ %s: %d teams, %d rounds, %d matches\n", s.LeagueName, len(cfg.Teams), len(rounds), s.MatchCount())
	if s.HasBye() {
		fmt.Fprintln(out, "  One team rests every round")
	}
	fmt.Fprintf(out, "  Seed: %d\n", s.Seed)

	f, err := excel.Generate(cfg, s)
	if err != nil {
		return fmt.Errorf("generating Excel: %w", err)
	}
	defer f.Close()

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}
	log.Debug().Str("path", outputPath).Int("pages", excel.PageCount(cfg, s)).Msg("workbook saved")

	fmt.Fprintf(out, "\n✓ Schedule saved to %s\n", outputPath)
	return nil
}

func runShow(out io.Writer, configPath string, seed *int64) error {
	_, s, err := generate(configPath, seed)
	if err != nil {
		return err
	}
	if err := render.Text(out, s); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nSeed: %d\n", s.Seed)
	return nil
}

func runValidate(out io.Writer, configPath, schedulePath string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	violations, err := validator.Validate(cfg, schedulePath)
	if err != nil {
		return fmt.Errorf("validating: %w", err)
	}

	errs := 0
	warnings := 0
	for _, v := range violations {
		switch v.Type {
		case "error":
			errs++
			fmt.Fprintf(out, "✗ %s\n", v.Message)
		case "warning":
			warnings++
			fmt.Fprintf(out, "⚠ %s\n", v.Message)
		}
	}

	fmt.Fprintf(out, "\nValidation complete: %d errors, %d warnings\n", errs, warnings)

	// Regenerate team sheets from the Fixtures sheet
	if err := excel.UpdateTeamSheets(schedulePath, cfg); err != nil {
		return fmt.Errorf("updating team sheets: %w", err)
	}
	fmt.Fprintf(out, "✓ Team sheets updated in %s\n", schedulePath)

	if errs > 0 {
		return fmt.Errorf("%d schedule errors found", errs)
	}
	return nil
}
