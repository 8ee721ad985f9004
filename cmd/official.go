package cmd

import (
	"fmt"
	"strconv"

	"chartrender/chart"

	"github.com/spf13/cobra"
)

var officialOut string

func init() {
	officialCmd.Flags().StringVarP(&officialOut, "out", "o", "", "output PNG (default <songID>_<difficulty>.png)")
	rootCmd.AddCommand(officialCmd)
}

var officialCmd = &cobra.Command{
	Use:   "official <songID> <difficulty>",
	Short: "Render an official chart from Bestdori",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		songID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("song id: %w", err)
		}
		d, err := chart.ParseDifficulty(args[1])
		if err != nil {
			return err
		}

		r, assets, err := newRenderer()
		if err != nil {
			return err
		}
		client, err := newClient(assets)
		if err != nil {
			return err
		}

		out := officialOut
		if out == "" {
			out = officialFileName(songID, d)
		}
		return renderOfficial(cmd.Context(), r, client, songID, d, out)
	},
}
