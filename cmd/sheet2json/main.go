// Package main provides the CLI entry point for sheet2json.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ArtUshak/sheet2json/pkg/sheet2json"
	"github.com/ArtUshak/sheet2json/pkg/sheet2json/api"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
)

var (
	inputPath  string
	outputPath string
	inputType  string
	sheetName  string
	mode       string
	pretty     bool
	checkMX    bool
	serveAddr  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sheet2json",
		Short: "Convert receipt spreadsheets to JSON",
		Long: `sheet2json reads a spreadsheet of receipt data (XLSX or CSV) and
writes an equivalent JSON representation.

Modes:
  table     one JSON object per data row, keyed by header name
  receipts  rows grouped into fiscal receipts by bill ID`,
		Args: cobra.NoArgs,
		RunE: runConvert,
	}

	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "input/input.xlsx", "Input spreadsheet path")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "output/output.json", "Output JSON path")
	rootCmd.Flags().StringVarP(&inputType, "input-type", "t", "", "Input format: xlsx or csv (default: from extension)")
	rootCmd.Flags().StringVar(&sheetName, "sheet", "", "Worksheet name (default: first sheet)")
	rootCmd.Flags().StringVar(&mode, "mode", "table", "Conversion mode: table or receipts")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().BoolVar(&checkMX, "check-mx", false, "Verify e-mail domains have MX records (receipts mode)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the converter over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	opts := sheet2json.DefaultOptions()
	opts.SheetName = sheetName
	opts.Pretty = pretty
	opts.CheckMX = checkMX

	switch inputType {
	case "":
		opts.Format = sheet2json.FormatAuto
	case "xlsx":
		opts.Format = sheet2json.FormatXLSX
	case "csv":
		opts.Format = sheet2json.FormatCSV
	default:
		return fmt.Errorf("invalid input type: %s (must be xlsx or csv)", inputType)
	}

	switch mode {
	case "table":
		opts.Mode = sheet2json.ModeTable
	case "receipts":
		opts.Mode = sheet2json.ModeReceipts
	default:
		return fmt.Errorf("invalid mode: %s (must be table or receipts)", mode)
	}

	if err := sheet2json.ConvertFile(cmd.Context(), inputPath, outputPath, opts); err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	fmt.Printf("Converted %s -> %s\n", inputPath, outputPath)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	app := fiber.New(fiber.Config{
		AppName: "sheet2json",
	})
	api.RegisterRoutes(app)

	slog.Info("serving converter API", "addr", serveAddr)
	return app.Listen(serveAddr)
}
