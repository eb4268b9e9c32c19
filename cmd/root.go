package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"schemascan/internal/analyzer"
	"schemascan/internal/generators"
	"schemascan/pkg/config"
)

var (
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "schemascan",
	Short: "Analyze a SQLite database schema",
	Long: `A CLI tool that opens a SQLite database file, introspects its tables and
declared foreign-key relationships, and reports them as a JSON summary or
as an ER diagram in Mermaid, PlantUML, or Graphviz format.

Examples:
  schemascan -d app.db
  schemascan -d app.db -f mermaid -o schema.md
  schemascan -d app.db -f graphviz -o schema.dot`,
	RunE: runAnalysis,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.schemascan.yaml)")
	rootCmd.Flags().StringP("database", "d", "database.db", "Path to the SQLite database file")
	rootCmd.Flags().StringP("format", "f", "json", "Output format: json, mermaid, plantuml, graphviz")
	rootCmd.Flags().StringP("output", "o", "", "Diagram output file path (default: schema.<format>)")
	rootCmd.Flags().BoolP("verbose", "v", false, "Enable debug logging")

	viper.BindPFlag("database.path", rootCmd.Flags().Lookup("database"))
	viper.BindPFlag("output.format", rootCmd.Flags().Lookup("format"))
	viper.BindPFlag("output.file", rootCmd.Flags().Lookup("output"))
	viper.BindPFlag("log.verbose", rootCmd.Flags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".schemascan")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("SCHEMASCAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validFormats := []string{"json", "mermaid", "plantuml", "graphviz"}
	if !contains(validFormats, cfg.Output.Format) {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s", cfg.Output.Format, strings.Join(validFormats, ", "))
	}

	log := newLogger(cfg.Log.Verbose)

	sch, err := analyzer.Analyze(cfg.Database.Path, log)

	if cfg.Output.Format == "json" {
		// Analysis failure is reported inside the JSON document; the
		// process still exits 0 so consumers can always parse stdout.
		if err != nil {
			log.Error().Err(err).Str("database", cfg.Database.Path).Msg("analysis failed")
		}

		out, renderErr := analyzer.ResultOf(sch, err).Render()
		if renderErr != nil {
			return fmt.Errorf("failed to render result: %w", renderErr)
		}

		fmt.Fprintln(os.Stdout, string(out))

		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to analyze schema: %w", err)
	}

	if cfg.Output.File == "" {
		ext := map[string]string{
			"mermaid":  ".md",
			"plantuml": ".puml",
			"graphviz": ".dot",
		}
		cfg.Output.File = "schema" + ext[cfg.Output.Format]
	}

	var content string
	switch cfg.Output.Format {
	case "mermaid":
		content = generators.GenerateMermaid(sch)
	case "plantuml":
		content = generators.GeneratePlantUML(sch)
	case "graphviz":
		content = generators.GenerateGraphviz(sch)
	}

	if dir := filepath.Dir(cfg.Output.File); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(cfg.Output.File, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Printf("Schema diagram generated: %s\n", cfg.Output.File)
	fmt.Printf("Format: %s\n", cfg.Output.Format)
	fmt.Printf("Tables: %d\n", len(sch.Tables))
	fmt.Printf("Foreign keys: %d\n", len(sch.ForeignKeys))

	return nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
