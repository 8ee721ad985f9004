package bestdori

import (
	"encoding/json"
	"strconv"
	"time"

	"chartrender/chart"
)

// Localized holds one value per game server, in server order. Servers
// without the value have nil.
type Localized []*string

// serverJP is the index of the Japanese server, which has every song.
const serverJP = 0

func (l Localized) at(i int) string {
	if i < 0 || i >= len(l) || l[i] == nil {
		return ""
	}
	return *l[i]
}

type SongDifficulty struct {
	PlayLevel int `json:"playLevel"`
}

// Song is the subset of /api/songs/{id}.json the meta panel needs.
type Song struct {
	BandID      int                    `json:"bandId"`
	JacketImage []string               `json:"jacketImage"`
	MusicTitle  Localized              `json:"musicTitle"`
	PublishedAt Localized              `json:"publishedAt"`
	Lyricist    Localized              `json:"lyricist"`
	Composer    Localized              `json:"composer"`
	Arranger    Localized              `json:"arranger"`
	Difficulty  map[int]SongDifficulty `json:"difficulty"`
}

type band struct {
	BandName Localized `json:"bandName"`
}

type Author struct {
	Username string `json:"username"`
	Nickname string `json:"nickname"`
}

type PostSong struct {
	Type  string `json:"type"`
	Audio string `json:"audio"`
	Cover string `json:"cover"`
}

// Post is a fan-made chart from /api/post/details.
type Post struct {
	Title   string      `json:"title"`
	Song    PostSong    `json:"song"`
	Artists string      `json:"artists"`
	Diff    int         `json:"diff"`
	Level   int         `json:"level"`
	Chart   chart.Chart `json:"chart"`
	Time    int64       `json:"time"`
	Author  Author      `json:"author"`
}

type postDetails struct {
	Result bool    `json:"result"`
	Post   rawPost `json:"post"`
}

// rawPost defers the chart so a broken chart is told apart from a broken
// post envelope.
type rawPost struct {
	Post
	Chart json.RawMessage `json:"chart"`
}

// Input is everything a render needs, fully fetched.
type Input struct {
	Chart  chart.Chart
	Meta   chart.ChartMeta
	Jacket []byte
}

// unixMilli parses a millisecond timestamp string. Bad input gives the zero time.
func unixMilli(s string) time.Time {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
