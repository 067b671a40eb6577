package kat

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Selectors for the search results page. They are matched literally.
const (
	totalHeaderSelector = "table#mainSearchTable.doublecelltable"
	pagerSelector       = "div.pages.botmarg5px.floatright"
	pagerLinkSelector   = "a.turnoverButton.siteButton.bigButton"
	rowSelector         = "table.data tr[id]"

	titleSelector       = "a.cellMainLink"
	linkSelector        = "a.cellMainLink[href]"
	categorySelector    = "span.font11px.lightgrey.block"
	verifiedSelector    = "i.ka.ka16.ka-verify.ka-green"
	commentsSelector    = "a.icommentjs.kaButton.smallButton.rightButton"
	magnetSelector      = "a.icon16[data-nop]"
	torrentLinkSelector = "a.icon16[data-download]"
	cellSelector        = "td.center"
)

// Positions of the td.center cells within a row.
const (
	cellSize = iota
	cellFiles
	cellPubDate
	cellSeeds
	cellLeechs
)

// totalMatcher matches headers like " results 1-25 from 1234".
var totalMatcher = regexp.MustCompile(`\s+[a-zA-Z]+\s\d+[-]\d+\s[a-zA-Z]+\s(\d+)`)

// ParsePage extracts a Result from a search results page. page and elapsed
// are copied into the result. A page without the total-results header
// fails with ErrMissingTotal; single fields that fail to parse become NaN.
func ParsePage(body string, page int, elapsed time.Duration) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	header := doc.Find(totalHeaderSelector).Find("h2").Find("span").Text()
	m := totalMatcher.FindStringSubmatch(header)
	if m == nil {
		return nil, ErrMissingTotal
	}

	result := &Result{
		ResponseTime: elapsed.Milliseconds(),
		Page:         page,
		TotalResults: int(ParseInt(m[1]).Or(0)),
		TotalPages:   IntOf(1),
		Results:      []Torrent{},
	}

	if last := doc.Find(pagerSelector).ChildrenFiltered(pagerLinkSelector).Last().Text(); last != "" {
		result.TotalPages = ParseInt(last)
	}

	doc.Find(rowSelector).Each(func(_ int, row *goquery.Selection) {
		result.Results = append(result.Results, parseRow(row))
	})

	return result, nil
}

func parseRow(row *goquery.Selection) Torrent {
	cells := row.Find(cellSelector)
	cellText := func(i int) Int {
		return ParseInt(cells.Eq(i).Text())
	}
	pubDate, _ := cells.Eq(cellPubDate).Attr("title")
	link, _ := row.Find(linkSelector).Attr("href")
	magnet, _ := row.Find(magnetSelector).Attr("href")
	torrentLink, _ := row.Find(torrentLinkSelector).Attr("href")

	return Torrent{
		Title:       row.Find(titleSelector).Text(),
		Category:    row.Find(categorySelector).Find("a[href]").Last().Text(),
		Link:        link,
		Verified:    row.Find(verifiedSelector).Length(),
		Comments:    ParseInt(row.Find(commentsSelector).Text()),
		Magnet:      magnet,
		TorrentLink: torrentLink,
		Size:        cellText(cellSize),
		Files:       cellText(cellFiles),
		PubDate:     ParseDate(pubDate),
		Seeds:       cellText(cellSeeds),
		Leechs:      cellText(cellLeechs),
	}
}
