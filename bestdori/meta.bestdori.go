package bestdori

import (
	"context"
	"time"

	"chartrender/chart"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

// serverLanguages lists the language of each Localized entry.
var serverLanguages = []language.Tag{
	language.Japanese,
	language.English,
	language.TraditionalChinese,
	language.SimplifiedChinese,
	language.Korean,
}

// namePicker walks the preferred languages and takes the first server
// that has a value.
type namePicker struct {
	order []int
}

func newNamePicker(prefs []language.Tag) *namePicker {
	m := language.NewMatcher(serverLanguages)
	seen := map[int]bool{}
	p := &namePicker{}
	for _, pref := range prefs {
		_, i, conf := m.Match(pref)
		if conf == language.No || seen[i] {
			continue
		}
		seen[i] = true
		p.order = append(p.order, i)
	}
	for i := range serverLanguages {
		if !seen[i] {
			p.order = append(p.order, i)
		}
	}
	return p
}

func (p *namePicker) pick(l Localized) string {
	for _, i := range p.order {
		if s := l.at(i); s != "" {
			return s
		}
	}
	return ""
}

// OfficialMeta builds the meta panel of an official chart.
func (c *Client) OfficialMeta(song *Song, songID int, d chart.Difficulty, artist string) chart.ChartMeta {
	return chart.ChartMeta{
		ID:         songID,
		Title:      c.names.pick(song.MusicTitle),
		Level:      song.Difficulty[int(d)].PlayLevel,
		Difficulty: &d,
		Release:    unixMilli(song.PublishedAt.at(serverJP)),
		Official:   true,
		Artist:     artist,
		Lyricist:   c.names.pick(song.Lyricist),
		Composer:   c.names.pick(song.Composer),
		Arranger:   c.names.pick(song.Arranger),
	}
}

// PostMeta builds the meta panel of a fan-made chart.
func PostMeta(p *Post, postID int) chart.ChartMeta {
	designer := p.Author.Nickname
	if designer == "" {
		designer = p.Author.Username
	}
	var release time.Time
	if p.Time > 0 {
		release = time.UnixMilli(p.Time).UTC()
	}
	return chart.ChartMeta{
		ID:            postID,
		Title:         p.Title,
		Level:         p.Level,
		Release:       release,
		Artist:        p.Artists,
		ChartDesigner: designer,
	}
}

// Official fetches an official chart with its song, band and jacket.
func (c *Client) Official(ctx context.Context, songID int, d chart.Difficulty) (*Input, error) {
	var (
		ch   chart.Chart
		song *Song
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		ch, err = c.Chart(gctx, songID, d)
		return err
	})
	g.Go(func() (err error) {
		song, err = c.Song(gctx, songID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var (
		artist string
		jacket []byte
	)
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		artist, err = c.BandName(gctx, song.BandID)
		return err
	})
	g.Go(func() error {
		var ref string
		if len(song.JacketImage) > 0 {
			ref = c.JacketURL(songID, song.JacketImage[0])
		}
		jacket = c.Jacket(gctx, ref)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Input{
		Chart:  ch,
		Meta:   c.OfficialMeta(song, songID, d, artist),
		Jacket: jacket,
	}, nil
}

// UserPost fetches a fan-made chart and its cover.
func (c *Client) UserPost(ctx context.Context, postID int) (*Input, error) {
	p, err := c.Post(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &Input{
		Chart:  p.Chart,
		Meta:   PostMeta(p, postID),
		Jacket: c.Jacket(ctx, p.Song.Cover),
	}, nil
}
