// Package fetcher pulls live job listings from an external board for the
// career page. Listings are fetched on demand and never persisted.
package fetcher

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/aagmanpal/Intervyo/pkg/model"
)

type JobFetcher struct {
	boardURL string
	http     *http.Client
}

func NewJobFetcher(boardURL string) *JobFetcher {
	return &JobFetcher{
		boardURL: boardURL,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch scrapes the configured board and returns up to limit listings.
// A keyword, when given, filters titles case-insensitively.
func (f *JobFetcher) Fetch(keyword, userAgent string, limit int) ([]model.JobListing, error) {
	base, err := url.Parse(f.boardURL)
	if err != nil {
		return nil, fmt.Errorf("invalid board url: %w", err)
	}

	req, err := http.NewRequest("GET", f.boardURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("job board returned %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 25
	}
	keyword = strings.ToLower(keyword)

	var jobs []model.JobListing
	doc.Find("tr.job, li.job, article.job, div.job-listing").EachWithBreak(func(i int, s *goquery.Selection) bool {
		title := cleanText(s.Find("h2, h3, .title, [itemprop=title]").First().Text())
		if title == "" {
			return true
		}
		if keyword != "" && !strings.Contains(strings.ToLower(title), keyword) {
			return true
		}

		href, _ := s.Find("a").First().Attr("href")
		link := href
		if u, err := url.Parse(href); err == nil {
			link = base.ResolveReference(u).String()
		}

		jobs = append(jobs, model.JobListing{
			Title:    title,
			Company:  cleanText(s.Find(".company, [itemprop=name], h4").First().Text()),
			Location: cleanText(s.Find(".location, [itemprop=jobLocation]").First().Text()),
			URL:      link,
			Posted:   cleanText(s.Find("time, .date, .posted").First().Text()),
		})
		return len(jobs) < limit
	})

	return jobs, nil
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
