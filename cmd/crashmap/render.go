package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/crash-map/internal/domain"
	"github.com/couchcryptid/crash-map/internal/render"
	"github.com/couchcryptid/crash-map/internal/viewer"
)

var renderCmd = &cobra.Command{
	Use:       "render map|chart",
	Short:     "Render the map or bar chart to a file",
	Long:      "Renders the choropleth map or the ranked bar chart for the selected years. SVG is available for both; PNG only for the chart.",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{string(viewer.ViewMap), string(viewer.ViewChart)},
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := viewer.ParseView(args[0])
		if err != nil {
			return err
		}
		years, err := yearsFlag(cmd)
		if err != nil {
			return err
		}
		formatName, _ := cmd.Flags().GetString("format")
		format, err := render.ParseImageFormat(formatName)
		if err != nil {
			return err
		}
		if view == viewer.ViewMap && format != render.FormatSVG {
			return fmt.Errorf("map renders as svg only")
		}
		selected, _ := cmd.Flags().GetString("selected")
		width, _ := cmd.Flags().GetInt("width")
		if width <= 0 {
			width = cfg.ViewportWidth
		}
		if width > cfg.MaxViewportWidth {
			return fmt.Errorf("width %d exceeds MAX_VIEWPORT_WIDTH %d", width, cfg.MaxViewportWidth)
		}
		height, _ := cmd.Flags().GetInt("height")
		if height <= 0 || height > cfg.MaxImageHeight {
			return fmt.Errorf("height %d must be in [1, %d]", height, cfg.MaxImageHeight)
		}

		v, err := buildViewer()
		if err != nil {
			return err
		}

		state := viewer.State{View: view, Years: years, ViewportWidth: width}.
			Select(domain.FeatureID(selected))

		var body []byte
		switch {
		case view == viewer.ViewMap:
			body, err = v.MapSVG(state)
		case format == render.FormatPNG:
			body, err = v.ChartImage(state, format, height)
		default:
			body, err = v.ChartSVG(state)
		}
		if err != nil {
			return fmt.Errorf("render %s: %w", view, err)
		}

		out, _ := cmd.Flags().GetString("out")
		return writeOutput(cmd.OutOrStdout(), out, body)
	},
}

// writeOutput writes body to path, or to stdout when path is "" or "-".
func writeOutput(stdout io.Writer, path string, body []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(body)
		return err
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logger.Info("rendered", "path", path, "bytes", len(body))
	return nil
}

func init() {
	f := renderCmd.Flags()
	addYearsFlag(renderCmd)
	f.String("selected", "", "county id to highlight")
	f.String("format", string(render.FormatSVG), "output format (svg or png)")
	f.String("out", "-", "output file, - for stdout")
	f.Int("width", 0, "chart viewport width in pixels (default VIEWPORT_WIDTH)")
	f.Int("height", 400, "png chart height in pixels")
	rootCmd.AddCommand(renderCmd)
}
