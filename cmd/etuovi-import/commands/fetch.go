package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/asuntosalkku/etuovi-import/internal/logger"
	"github.com/asuntosalkku/etuovi-import/internal/output"
	"github.com/asuntosalkku/etuovi-import/pkg/etuovi"
	"github.com/asuntosalkku/etuovi-import/pkg/fetcher"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch listing URLs and print the extracted property data",
	Long: `Fetch runs the import pipeline for each URL: validate, fetch the
page, extract the listing fields and map them to the normalized record.

A URL that fails is reported and skipped; the command exits non-zero if
any URL failed.`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	flags := fetchCmd.Flags()
	flags.StringSliceP("url", "u", nil, "listing URL(s) to import (can be repeated)")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "json", "output format: json, jsonl, yaml")
	flags.String("fetch-mode", "static", "fetch mode: static, dynamic")
	flags.Duration("timeout", fetcher.DefaultTimeout, "request timeout")
	flags.String("user-agent", "", "override the browser user agent")
	flags.Bool("create-input", false, "emit the host property-creation shape instead of the raw record")

	_ = fetchCmd.MarkFlagRequired("url")

	_ = viper.BindPFlag("fetch_mode", flags.Lookup("fetch-mode"))
	_ = viper.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = viper.BindPFlag("user_agent", flags.Lookup("user-agent"))
}

func runFetch(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("log_json"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	urls, _ := cmd.Flags().GetStringSlice("url")
	outPath, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")
	createInput, _ := cmd.Flags().GetBool("create-input")

	client, err := buildClient()
	if err != nil {
		logError("%v", err)
		return err
	}
	defer client.Close()

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			logError("cannot open output file: %v", err)
			return err
		}
		defer f.Close()
		out = f
	}

	writer, err := output.NewWriter(out, output.Format(format))
	if err != nil {
		logError("%v", err)
		return err
	}

	failed := 0
	for _, url := range urls {
		start := time.Now()
		data, err := client.FetchPropertyData(ctx, url)
		if err != nil {
			logger.Error("import failed", "url", url, "error", err)
			failed++
			continue
		}
		logger.Info("listing imported", "url", url, "duration", time.Since(start))

		var record any = data
		if createInput {
			record = etuovi.ToCreateInput(data)
		}
		if err := writer.Write(record); err != nil {
			logError("write failed: %v", err)
			return err
		}
	}

	if err := writer.Flush(); err != nil {
		logError("flush failed: %v", err)
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d imports failed", failed, len(urls))
	}
	return nil
}

// buildClient assembles the client from flags and config.
func buildClient() (*etuovi.Client, error) {
	timeout := viper.GetDuration("timeout")
	userAgent := viper.GetString("user_agent")

	opts := []etuovi.Option{}
	if timeout > 0 {
		opts = append(opts, etuovi.WithTimeout(timeout))
	}
	if userAgent != "" {
		opts = append(opts, etuovi.WithUserAgent(userAgent))
	}

	switch mode := viper.GetString("fetch_mode"); mode {
	case "", "static":
		// default fetcher
	case "dynamic":
		cfg := fetcher.Config{UserAgent: userAgent, Timeout: timeout}
		dyn, err := fetcher.NewDynamic(cfg)
		if err != nil {
			return nil, fmt.Errorf("cannot start headless browser: %w", err)
		}
		opts = append(opts, etuovi.WithFetcher(dyn))
	default:
		return nil, fmt.Errorf("unknown fetch mode: %s (use static or dynamic)", mode)
	}

	return etuovi.New(opts...), nil
}
