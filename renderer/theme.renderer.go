package renderer

import (
	"fmt"
	"os"

	"chartrender/chart"

	"gopkg.in/yaml.v3"
)

type FontSizes struct {
	Tempo      float64 `yaml:"tempo"`
	Bar        float64 `yaml:"bar"`
	SkillFever float64 `yaml:"skill_fever"`
	Meta       float64 `yaml:"meta"`
	MetaTitle  float64 `yaml:"meta_title"`
	Watermark  float64 `yaml:"watermark"`
}

// Theme holds colours, font sizes and the watermark. It is read-only while
// rendering.
type Theme struct {
	TrackBackground Color `yaml:"track_background"`

	DividerLane Color `yaml:"divider_lane"`
	DividerBeat Color `yaml:"divider_beat"`
	DividerBar  Color `yaml:"divider_bar"`

	Slide        Color `yaml:"slide"`
	Simultaneous Color `yaml:"simultaneous"`

	Tempo        Color `yaml:"tempo"`
	Time         Color `yaml:"time"`
	Skill        Color `yaml:"skill"`
	SkillOutline Color `yaml:"skill_outline"`
	SkillFill    Color `yaml:"skill_fill"`
	Fever        Color `yaml:"fever"`
	FeverOutline Color `yaml:"fever_outline"`
	FeverFill    Color `yaml:"fever_fill"`

	MetaText Color `yaml:"meta_text"`
	// Difficulty colours the footer band, indexed by chart.Difficulty.
	Difficulty []Color `yaml:"difficulty"`

	FontSizes FontSizes `yaml:"font_sizes"`
	Watermark string    `yaml:"watermark"`
}

func DefaultTheme() *Theme {
	var divider = rgba(51, 255, 255, 100)
	return &Theme{
		TrackBackground: rgba(0, 0, 0, 190),

		DividerLane: divider,
		DividerBeat: divider,
		DividerBar:  rgba(204, 255, 255, 210),

		Slide:        rgba(75, 227, 113, 190),
		Simultaneous: rgba(255, 255, 255, 180),

		Tempo:        rgba(51, 204, 255, 255),
		Time:         rgba(255, 255, 255, 255),
		Skill:        rgba(255, 209, 0, 255),
		SkillOutline: rgba(255, 209, 0, 120),
		SkillFill:    rgba(255, 209, 0, 50),
		Fever:        rgba(255, 58, 114, 255),
		FeverOutline: rgba(242, 126, 231, 120),
		FeverFill:    rgba(242, 126, 231, 30),

		MetaText: rgba(255, 255, 255, 255),
		Difficulty: []Color{
			rgba(48, 81, 250, 190),
			rgba(25, 183, 26, 190),
			rgba(255, 164, 27, 190),
			rgba(238, 62, 64, 190),
			rgba(239, 47, 156, 190),
		},

		FontSizes: FontSizes{
			Tempo:      16,
			Bar:        12,
			SkillFever: 14,
			Meta:       36,
			MetaTitle:  42,
			Watermark:  36,
		},
		Watermark: "Generated by chartrender",
	}
}

// LoadTheme reads a YAML file over the default theme.
func LoadTheme(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	t := DefaultTheme()
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("theme %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("theme %s: %w", path, err)
	}
	return t, nil
}

func (t *Theme) Validate() error {
	if len(t.Difficulty) != int(chart.Special)+1 {
		return fmt.Errorf("difficulty needs %d colors, got %d", int(chart.Special)+1, len(t.Difficulty))
	}
	sizes := []float64{t.FontSizes.Tempo, t.FontSizes.Bar, t.FontSizes.SkillFever, t.FontSizes.Meta, t.FontSizes.MetaTitle, t.FontSizes.Watermark}
	for _, s := range sizes {
		if s <= 0 {
			return fmt.Errorf("font sizes must be positive")
		}
	}
	return nil
}

func (t *Theme) difficultyColor(d chart.Difficulty) Color {
	if int(d) < 0 || int(d) >= len(t.Difficulty) {
		return t.Difficulty[chart.Expert]
	}
	return t.Difficulty[d]
}
