package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/cobra"

	"github.com/typecast-ai/typecast/pkg/typecast"
	"github.com/typecast-ai/typecast/providers/observability"
	slogobs "github.com/typecast-ai/typecast/providers/observability/slog"
)

var (
	configFile string
	strategy   string
	logLevel   string
	htmlInput  bool

	observer observability.Observer = observability.Noop()
)

var rootCmd = &cobra.Command{
	Use:   "typecast",
	Short: "Recover structured payloads from noisy model output",
	Long: `typecast locates JSON or XML payloads buried in conversational model
output, repairs common syntax damage, and returns the clean document.

Input is read from a file argument, or from stdin when no file is given.
Settings can also come from a YAML config file (--config, or .typecast.yaml
in the working directory) and a .env file in the working directory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env file is not an error.
		_ = godotenv.Load()

		cfg, err := loadConfig(configFile)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("strategy") && cfg.Strategy != "" {
			strategy = cfg.Strategy
		}
		if !cmd.Flags().Changed("html") && cfg.HTMLPreprocessing {
			htmlInput = true
		}
		if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" {
			logLevel = cfg.LogLevel
		}

		level, err := slogobs.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		observer = slogobs.New(slog.New(handler))
		return nil
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean [file]",
	Short: "Extract and print the structured payload from noisy text",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(args)
		if err != nil {
			return err
		}
		payload, err := typecast.CleanPayload(text, typecast.Strategy(strategy), cleanOptions()...)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), payload)
		return nil
	},
}

var schemaFile string

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Extract a JSON payload and validate it against a JSON Schema",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if typecast.Strategy(strategy) != typecast.JSON {
			return fmt.Errorf("validate supports the json strategy only, got %q", strategy)
		}

		compiled, err := jsonschema.Compile(schemaFile)
		if err != nil {
			return fmt.Errorf("failed to compile schema %s: %w", schemaFile, err)
		}

		text, err := readInput(args)
		if err != nil {
			return err
		}
		payload, err := typecast.CleanPayload(text, typecast.JSON, cleanOptions()...)
		if err != nil {
			return err
		}

		var doc any
		if err := json.Unmarshal([]byte(payload), &doc); err != nil {
			return fmt.Errorf("failed to decode payload: %w", err)
		}
		if err := compiled.Validate(doc); err != nil {
			return fmt.Errorf("payload does not conform to schema: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "payload conforms to schema")
		return nil
	},
}

func cleanOptions() []typecast.Option {
	opts := []typecast.Option{typecast.WithObserver(observer)}
	if htmlInput {
		opts = append(opts, typecast.WithHTMLPreprocessing())
	}
	return opts
}

func readInput(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVarP(&strategy, "strategy", "s", "json", "extraction strategy: json or xml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&htmlInput, "html", false, "convert HTML input to markdown before extraction")

	validateCmd.Flags().StringVar(&schemaFile, "schema-file", "", "path to the JSON Schema to validate against")
	_ = validateCmd.MarkFlagRequired("schema-file")

	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(validateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
