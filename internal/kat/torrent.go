package kat

import (
	"encoding/json"
	"time"
)

// Torrent is one result row of a search page.
type Torrent struct {
	Title       string
	Category    string
	Link        string
	Verified    int
	Comments    Int
	Magnet      string
	TorrentLink string
	Size        Int
	Files       Int
	PubDate     Int // epoch milliseconds
	Seeds       Int
	Leechs      Int
}

// GUID is the detail-page URL; it is the same value as Link.
func (t Torrent) GUID() string {
	return t.Link
}

// Peers is Seeds plus Leechs, NaN if either failed to parse.
func (t Torrent) Peers() Int {
	return t.Seeds.Add(t.Leechs)
}

// Published returns PubDate as a time, false when it failed to parse.
func (t Torrent) Published() (time.Time, bool) {
	if t.PubDate.IsNaN() {
		return time.Time{}, false
	}
	return time.UnixMilli(t.PubDate.Value), true
}

// Health returns a health score 0-100 based on the seeders/leechers ratio.
func (t Torrent) Health() int {
	seeds, leechs := t.Seeds.Or(0), t.Leechs.Or(0)
	if seeds <= 0 {
		return 0
	}
	if leechs <= 0 {
		return 100
	}
	return int(float64(seeds) / float64(seeds+leechs) * 100)
}

// torrentJSON is the wire shape, with guid and peers filled in.
type torrentJSON struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Link        string `json:"link"`
	GUID        string `json:"guid"`
	Verified    int    `json:"verified"`
	Comments    Int    `json:"comments"`
	Magnet      string `json:"magnet,omitempty"`
	TorrentLink string `json:"torrentLink,omitempty"`
	Size        Int    `json:"size"`
	Files       Int    `json:"files"`
	PubDate     Int    `json:"pubDate"`
	Seeds       Int    `json:"seeds"`
	Leechs      Int    `json:"leechs"`
	Peers       Int    `json:"peers"`
}

func (t Torrent) MarshalJSON() ([]byte, error) {
	return json.Marshal(torrentJSON{
		Title:       t.Title,
		Category:    t.Category,
		Link:        t.Link,
		GUID:        t.GUID(),
		Verified:    t.Verified,
		Comments:    t.Comments,
		Magnet:      t.Magnet,
		TorrentLink: t.TorrentLink,
		Size:        t.Size,
		Files:       t.Files,
		PubDate:     t.PubDate,
		Seeds:       t.Seeds,
		Leechs:      t.Leechs,
		Peers:       t.Peers(),
	})
}

// Result is a parsed search page.
type Result struct {
	ResponseTime int64     `json:"response_time"`
	Page         int       `json:"page"`
	TotalResults int       `json:"totalResults"`
	TotalPages   Int       `json:"totalPages"`
	Results      []Torrent `json:"results"`
}
