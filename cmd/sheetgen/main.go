// sheetgen renders driver daily log sheets from a saved trip plan.
// It reads the planner's JSON response from a file and writes one SVG
// per day, optionally resolving remark location labels against a
// geocoding service when a token is supplied.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openhaul/dispatch/internal/geocode"
	"github.com/openhaul/dispatch/internal/log"
	"github.com/openhaul/dispatch/internal/logsheet"
	"github.com/openhaul/dispatch/internal/planner"
	"github.com/openhaul/dispatch/pkg/config"
)

const appVersion = "1.2"

func main() {
	var (
		inputPath string
		outDir    string
		token     string
		endpoint  string
		debug     bool
	)

	cmd := &cobra.Command{
		Use:   "sheetgen",
		Short: "Render daily log sheet SVGs from a trip plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ok, _ := cmd.Flags().GetBool("version"); ok {
				fmt.Printf("sheetgen v%s\n", appVersion)
				return nil
			}
			if inputPath == "" {
				return fmt.Errorf("--input is required")
			}
			if err := log.Init(debug); err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			defer log.Sync()

			return render(cmd.Context(), inputPath, outDir, token, endpoint)
		},
	}

	cmd.Flags().BoolP("version", "v", false, "Show version and exit")
	cmd.Flags().StringVar(&inputPath, "input", "", "Path to a trip plan JSON file")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "Directory to write day-N.svg files into")
	cmd.Flags().StringVar(&token, "geocoder-token", "", "Geocoding API token for remark labels (omit to skip resolution)")
	cmd.Flags().StringVar(&endpoint, "geocoder-endpoint", "", "Geocoding API endpoint override")
	cmd.Flags().BoolVar(&debug, "debug", false, "Turn on debugging output")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func render(ctx context.Context, inputPath, outDir, token, endpoint string) error {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading plan: %w", err)
	}

	var plan planner.PlanResponse
	if err := json.Unmarshal(raw, &plan); err != nil {
		return fmt.Errorf("decoding plan: %w", err)
	}
	if len(plan.Logs) == 0 {
		return fmt.Errorf("plan contains no daily logs")
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	logger := log.GetSugaredLogger()
	geocoder := geocode.NewClient(config.GeocoderData{Endpoint: endpoint, Token: token}, logger)
	resolver := geocode.NewResolver(geocoder)
	defer resolver.Close()

	geom := logsheet.DefaultGeometry()
	for _, day := range plan.Logs {
		events := logsheet.NormalizeEvents(day.Events)
		remarks := logsheet.NormalizeRemarks(day.Remarks)
		labels := resolver.Resolve(ctx, remarks)

		sheet := logsheet.Sheet{
			Day:     day.Day,
			Events:  events,
			Remarks: remarks,
			Labels:  labels,
		}

		outPath := filepath.Join(outDir, fmt.Sprintf("day-%d.svg", day.Day))
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		if err := logsheet.RenderSVG(f, sheet, geom); err != nil {
			f.Close()
			return fmt.Errorf("rendering %s: %w", outPath, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		logger.Infof("wrote %s", outPath)
	}

	return nil
}
