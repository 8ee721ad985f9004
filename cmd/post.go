package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var postOut string

func init() {
	postCmd.Flags().StringVarP(&postOut, "out", "o", "", "output PNG (default post_<postID>.png)")
	rootCmd.AddCommand(postCmd)
}

var postCmd = &cobra.Command{
	Use:   "post <postID>",
	Short: "Render a fan-made chart post from Bestdori",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		postID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("post id: %w", err)
		}

		r, assets, err := newRenderer()
		if err != nil {
			return err
		}
		client, err := newClient(assets)
		if err != nil {
			return err
		}

		in, err := client.UserPost(cmd.Context(), postID)
		if err != nil {
			return err
		}
		out := postOut
		if out == "" {
			out = fmt.Sprintf("post_%d.png", postID)
		}
		return renderTo(r, in, out)
	},
}
