package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"chartrender/bestdori"
	"chartrender/chart"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	fileOut    string
	fileMeta   string
	fileJacket string
)

func init() {
	fileCmd.Flags().StringVarP(&fileOut, "out", "o", "", "output PNG (default: chart file name with .png)")
	fileCmd.Flags().StringVar(&fileMeta, "meta", "", "YAML or JSON chart meta")
	fileCmd.Flags().StringVar(&fileJacket, "jacket", "", "jacket image (default: built-in jacket)")
	rootCmd.AddCommand(fileCmd)
}

var fileCmd = &cobra.Command{
	Use:   "file <chart.json>",
	Short: "Render a chart from a local Bestdori JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, assets, err := newRenderer()
		if err != nil {
			return err
		}

		in, err := loadLocalInput(args[0], fileMeta, fileJacket)
		if err != nil {
			return err
		}
		if in.Jacket == nil {
			in.Jacket = assets.DefaultJacket
		}

		out := fileOut
		if out == "" {
			out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".png"
		}
		return renderTo(r, in, out)
	},
}

func loadLocalInput(chartPath, metaPath, jacketPath string) (*bestdori.Input, error) {
	c, err := chart.ParseFile(chartPath)
	if err != nil {
		return nil, err
	}
	in := &bestdori.Input{Chart: c}

	if metaPath != "" {
		data, err := os.ReadFile(metaPath)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &in.Meta); err != nil {
			return nil, err
		}
	}
	if jacketPath != "" {
		if in.Jacket, err = os.ReadFile(jacketPath); err != nil {
			return nil, err
		}
	}
	return in, nil
}
