package cmd

import (
	"context"
	"fmt"

	"chartrender/bestdori"
	"chartrender/chart"
	"chartrender/logger"
	"chartrender/renderer"
)

func newRenderer() (*renderer.Renderer, *renderer.Assets, error) {
	theme := renderer.DefaultTheme()
	if cfg.Theme != "" {
		var err error
		if theme, err = renderer.LoadTheme(cfg.Theme); err != nil {
			return nil, nil, err
		}
	}
	assets, err := renderer.LoadAssets(cfg.Assets)
	if err != nil {
		return nil, nil, fmt.Errorf("load assets: %w", err)
	}
	return renderer.New(theme, assets, logger.GetLogger()), assets, nil
}

func newClient(assets *renderer.Assets) (*bestdori.Client, error) {
	tags, err := cfg.Bestdori.Tags()
	if err != nil {
		return nil, err
	}
	return bestdori.NewClient(bestdori.Options{
		BaseURL:        cfg.Bestdori.BaseURL,
		Timeout:        cfg.Bestdori.Timeout,
		Languages:      tags,
		FallbackJacket: assets.DefaultJacket,
		Logger:         logger.GetLogger(),
	})
}

type officialFetcher interface {
	Official(ctx context.Context, songID int, d chart.Difficulty) (*bestdori.Input, error)
}

func renderTo(r *renderer.Renderer, in *bestdori.Input, out string) error {
	res, err := r.Render(in.Chart, in.Meta, in.Jacket)
	if err != nil {
		return err
	}
	if err := res.Save(out); err != nil {
		return fmt.Errorf("save %s: %w", out, err)
	}
	logger.GetLogger().Info("chart saved", "path", out)
	return nil
}

func renderOfficial(ctx context.Context, r *renderer.Renderer, f officialFetcher, songID int, d chart.Difficulty, out string) error {
	in, err := f.Official(ctx, songID, d)
	if err != nil {
		return err
	}
	return renderTo(r, in, out)
}

func officialFileName(songID int, d chart.Difficulty) string {
	return fmt.Sprintf("%d_%s.png", songID, d.Slug())
}
