package verify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/veriscope/veriscope-api/internal/models"
)

// NewsArticle parsing: the news provider serves an HTML results page rather
// than JSON, so results are extracted with selectors.

// SearchNews fetches and parses the news search page for a query.
func (c *Client) SearchNews(ctx context.Context, query string) ([]models.NewsArticle, error) {
	q := url.Values{}
	q.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/news?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news API returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse news page: %w", err)
	}

	return parseNewsDocument(doc), nil
}

func parseNewsDocument(doc *goquery.Document) []models.NewsArticle {
	var results []models.NewsArticle

	doc.Find("article.news-result, div.news-result").Each(func(i int, s *goquery.Selection) {
		var result models.NewsArticle

		link := s.Find("a.headline, h3 a").First()
		result.Title = strings.TrimSpace(link.Text())
		if href, ok := link.Attr("href"); ok {
			result.URL = href
		}

		result.Source = strings.TrimSpace(s.Find(".source").First().Text())
		result.Summary = strings.TrimSpace(s.Find(".summary, p.snippet").First().Text())
		result.PublishedAt = strings.TrimSpace(s.Find("time").First().AttrOr("datetime", ""))

		if result.Title != "" {
			results = append(results, result)
		}
	})

	return results
}
