package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/foxbe/netbox-trust-boundary/pkg/client"
	"github.com/foxbe/netbox-trust-boundary/pkg/config"
	"github.com/foxbe/netbox-trust-boundary/pkg/export"
	"github.com/foxbe/netbox-trust-boundary/pkg/inventory"
	"github.com/foxbe/netbox-trust-boundary/pkg/loader"
	"github.com/foxbe/netbox-trust-boundary/pkg/models"
	"github.com/foxbe/netbox-trust-boundary/pkg/utils"
	"github.com/foxbe/netbox-trust-boundary/pkg/validator"
)

var (
	configFile    string
	siteOverride  string
	namingPattern string
	inventoryFile string
	outputFile    string
	exportFilter  string
	verbose       bool
	noFail        bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "netbox-trust <placements.csv>",
		Short: "NetBox Trust Boundary",
		Long:  `Read-only validation of proposed rack-device placements against NetBox before import`,
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate,
	}

	rootCmd.Flags().StringVar(&configFile, "config", "config.yaml", "Configuration file path")
	rootCmd.Flags().StringVar(&siteOverride, "site", "", "Site slug or ID (overrides config)")
	rootCmd.Flags().StringVar(&namingPattern, "pattern", "", "Hostname naming-convention regex (overrides config)")
	rootCmd.Flags().StringVar(&inventoryFile, "inventory", "", "Offline inventory YAML file (skips the NetBox API)")
	rootCmd.Flags().StringVar(&outputFile, "output", "", "Export results to file (.csv, .json or .md)")
	rootCmd.Flags().StringVar(&exportFilter, "filter", "", "Export filter: ready_to_import, needs_data, available, blocked")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "Enable debug output")
	rootCmd.Flags().BoolVar(&noFail, "no-fail", false, "Exit zero even when rows are blocked")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	logger := utils.NewLogger(verbose)
	csvPath := args[0]

	cfg, err := config.Load(configFile)
	if err != nil {
		logger.Error("Failed to load configuration", err)
		return err
	}

	pattern := namingPattern
	if pattern == "" {
		pattern = cfg.NamingPattern
	}
	var namingRegex *regexp.Regexp
	if pattern != "" {
		namingRegex, err = regexp.Compile(pattern)
		if err != nil {
			logger.Error("Invalid naming pattern", err)
			return err
		}
	}

	// Load placement rows
	csvLoader := loader.NewCSVLoader(logger)
	csvLoader.SetColumnAliases(cfg.ColumnAliases)
	rows, err := csvLoader.Load(csvPath)
	if err != nil {
		logger.Error("Failed to load CSV", err)
		return err
	}
	for _, loadErr := range csvLoader.Errors {
		logger.Warning("%s", loadErr)
	}
	logger.Info("Loaded %d rows from %s", len(rows), csvPath)

	// Build the inventory snapshot
	snapshot, err := buildSnapshot(cfg, logger)
	if err != nil {
		logger.Error("Failed to build inventory snapshot", err)
		return err
	}
	logger.Info("Snapshot: site '%s', %d racks, %d devices", snapshot.SiteName, snapshot.RackCount(), snapshot.DeviceCount())
	logger.Debug("Known racks: %s", strings.Join(snapshot.RackNames(), ", "))

	// Validate
	engine := validator.NewEngine(snapshot, namingRegex)
	results := engine.ValidateAll(rows)

	printSummary(results, logger)

	// Export
	if outputFile != "" {
		opts := export.Options{
			Filter:     exportFilter,
			SiteName:   snapshot.SiteName,
			SourceFile: csvPath,
		}
		if err := export.Export(results, outputFile, opts); err != nil {
			logger.Error("Failed to export results", err)
			return err
		}
		logger.Success("Results exported to %s", outputFile)
	}

	if !noFail && hasBlockedRows(results) {
		return fmt.Errorf("validation found blocked rows")
	}
	return nil
}

// buildSnapshot loads inventory from the offline file when given, else from
// the NetBox API.
func buildSnapshot(cfg *config.Config, logger *utils.Logger) (*inventory.Snapshot, error) {
	if inventoryFile != "" {
		logger.Info("Using offline inventory: %s", inventoryFile)
		return inventory.LoadSnapshotFile(inventoryFile)
	}

	if !cfg.IsConfigured() {
		return nil, fmt.Errorf("NETBOX_URL and NETBOX_TOKEN must be set (or use --inventory)")
	}

	site := siteOverride
	if site == "" {
		site = cfg.NetBox.Site
	}

	c := client.NewClient(cfg.NetBox.URL, cfg.NetBox.Token, cfg.VerifySSL(), logger)

	version, err := c.TestConnection()
	if err != nil {
		return nil, fmt.Errorf("cannot reach NetBox: %w", err)
	}
	logger.Debug("Connected to NetBox %s", version)

	return c.BuildSnapshot(site)
}

// printSummary renders per-row outcomes and the classification totals.
func printSummary(results []*models.RowResult, logger *utils.Logger) {
	logger.Info("═══════════════════════════════════════════════════════")
	logger.Info("Validation results")
	logger.Info("═══════════════════════════════════════════════════════")

	counts := make(map[models.Classification]int)
	for _, result := range results {
		counts[result.Classification]++

		severity := utils.SeverityColor(result.Severity())(result.Severity().String())
		label := utils.ClassificationColor(result.Classification)(utils.ClassificationLabel(result.Classification))
		fmt.Printf("Row %d  %s  %s  [%s] %s\n",
			result.Row.RowNumber, severity, label,
			result.Row.ImportReadiness(), result.Row.DeviceIdentifier())

		for _, finding := range result.Findings {
			logger.Debug("    %s %s: %s", finding.Severity, finding.Code, finding.Message)
		}
	}

	logger.Info("───────────────────────────────────────────────────────")
	for _, classification := range []models.Classification{
		models.ClassificationNetBoxUpdate,
		models.ClassificationNoAction,
		models.ClassificationReviewRequired,
		models.ClassificationInvalid,
	} {
		if counts[classification] > 0 {
			colored := utils.ClassificationColor(classification)(utils.ClassificationLabel(classification))
			logger.Info("%s: %d", colored, counts[classification])
		}
	}
}

// hasBlockedRows reports whether any row ended FAIL or INVALID.
func hasBlockedRows(results []*models.RowResult) bool {
	for _, result := range results {
		severity := result.Severity()
		if severity == models.SeverityFail || severity == models.SeverityInvalid {
			return true
		}
	}
	return false
}
