package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var locateCmd = &cobra.Command{
	Use:   "locate <lon> <lat>",
	Short: "Find the county containing a point",
	Long: "Prints the id and name of the county whose boundary contains the lon/lat point.\n" +
		"Flag parsing is off so negative coordinates pass as-is; --dataset is still accepted.",
	Example: "  crashmap locate -77.03 38.925",
	// Western longitudes start with '-' and would otherwise parse as shorthand flags.
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		args, dataset, help, err := splitLocateArgs(args)
		if err != nil {
			return err
		}
		if help {
			return cmd.Help()
		}
		if len(args) != 2 {
			return fmt.Errorf("locate: accepts 2 arg(s), received %d", len(args))
		}

		lon, errLon := strconv.ParseFloat(args[0], 64)
		lat, errLat := strconv.ParseFloat(args[1], 64)
		if err := errors.Join(errLon, errLat); err != nil {
			return fmt.Errorf("parse point: %w", err)
		}

		if dataset != "" {
			cfg.DatasetPath = dataset
		}
		v, err := buildViewer()
		if err != nil {
			return err
		}

		county, ok := v.Locate(lon, lat)
		if !ok {
			return fmt.Errorf("no county contains %g,%g", lon, lat)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", county.ID, county.Name)
		return nil
	},
}

// splitLocateArgs separates the coordinates from --dataset and --help, which
// cobra does not parse for this command. A bare "--" is dropped.
func splitLocateArgs(raw []string) (coords []string, dataset string, help bool, err error) {
	for i := 0; i < len(raw); i++ {
		a := raw[i]
		switch {
		case a == "--":
		case a == "-h" || a == "--help":
			help = true
		case a == "--dataset":
			if i+1 >= len(raw) {
				return nil, "", false, errors.New("flag needs an argument: --dataset")
			}
			i++
			dataset = raw[i]
		case strings.HasPrefix(a, "--dataset="):
			dataset = strings.TrimPrefix(a, "--dataset=")
		default:
			coords = append(coords, a)
		}
	}
	return coords, dataset, help, nil
}

func init() {
	rootCmd.AddCommand(locateCmd)
}
