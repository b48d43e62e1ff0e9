package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fakturo/fakturo-go/config"
	"github.com/fakturo/fakturo-go/fakturo"
)

var (
	cfgFile    string
	cfg        *config.Config
	logger     zerolog.Logger
	client     *fakturo.Client
	operations *fakturo.Operations

	version   = "dev"
	buildTime = "unknown"

	// Command flags
	filterExpr string
	preset     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fakturo",
	Short: "A tool to manage invoices, clients and products on Fakturo",
	Long: `fakturo is a CLI tool for the Fakturo invoicing service. It lists and
filters invoices, downloads PDF exports, records payments, sends invoice
mails and reminders, and manages client and product records.`,
	PersistentPreRunE: initializeApp,
}

// SetVersion records the build version information
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", v, bt)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(vatCmd)
}

// initializeApp initializes the configuration and the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Create Fakturo client
	client, err = fakturo.NewClient(
		cfg.Fakturo.URL,
		cfg.Fakturo.APIKey,
		logger,
		fakturo.WithTimeout(time.Duration(cfg.Fakturo.Timeout)*time.Second),
		fakturo.WithBasicAuth(cfg.Fakturo.Login, cfg.Fakturo.Password),
	)
	if err != nil {
		return fmt.Errorf("failed to create Fakturo client: %w", err)
	}

	operations = fakturo.NewOperations(client, logger)

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only on a real terminal
	useColor := cfg.Color && isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !useColor,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to Fakturo",
	Long:  `Test the connection to Fakturo and display basic account information.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to Fakturo at %s...\n", cfg.Fakturo.URL)

	ctx := context.Background()
	vatRequired, err := client.VATRequired(ctx)
	if err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	fmt.Println("✓ Connection successful!")

	customers, err := client.GetCustomers(ctx)
	if err != nil {
		return fmt.Errorf("failed to get clients: %w", err)
	}

	products, err := client.GetProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to get products: %w", err)
	}

	fmt.Printf("\nAccount statistics:\n")
	fmt.Printf("- Clients: %d\n", len(customers))
	fmt.Printf("- Products: %d\n", len(products))
	fmt.Printf("- VAT required: %s\n", boolToStatus(vatRequired))

	return nil
}

// vatCmd represents the vat command group
var vatCmd = &cobra.Command{
	Use:   "vat",
	Short: "VAT related helpers",
}

var vatVerifyCmd = &cobra.Command{
	Use:   "verify <vat-id>",
	Short: "Verify a VAT identifier",
	Args:  cobra.ExactArgs(1),
	RunE:  runVATVerify,
}

func init() {
	vatCmd.AddCommand(vatVerifyCmd)
}

func runVATVerify(cmd *cobra.Command, args []string) error {
	valid, err := client.VerifyVAT(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("failed to verify VAT ID: %w", err)
	}

	if valid {
		fmt.Printf("✓ %s is a valid VAT identifier\n", args[0])
	} else {
		fmt.Printf("✗ %s is not a valid VAT identifier\n", args[0])
	}
	return nil
}

func boolToStatus(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// getFilterExpression determines the filter expression to use
func getFilterExpression() (string, error) {
	// Priority: command line filter > preset > default
	if filterExpr != "" {
		return filterExpr, nil
	}

	if preset != "" {
		if presetFilter, ok := cfg.Filter.Presets[preset]; ok {
			return presetFilter.Expression, nil
		}
		return "", fmt.Errorf("preset '%s' not found in config", preset)
	}

	return cfg.Filter.DefaultExpression, nil
}
