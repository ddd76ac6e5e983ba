package services

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/nejmigmc-soft/landmarkweb/models"
)

// Currency codes the listing pages price in besides TRY.
var trackedCurrencyCodes = map[string]bool{
	"USD": true,
	"EUR": true,
}

// CurrencyParser scrapes buy/sell TRY rates from an HTML rates page.
type CurrencyParser struct {
	sourceURL string
	client    *http.Client
}

func NewCurrencyParser(sourceURL string) *CurrencyParser {
	return &CurrencyParser{
		sourceURL: sourceURL,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchRates downloads the source page and extracts one rate per tracked
// code. Rows that do not parse are skipped, not fatal.
func (cp *CurrencyParser) FetchRates() ([]models.CurrencyRate, error) {
	req, err := http.NewRequest(http.MethodGet, cp.sourceURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")

	resp, err := cp.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates page returned %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	return cp.extractRates(doc), nil
}

// extractRates walks every table row looking for a tracked currency code
// followed by two numeric cells (buy, sell).
func (cp *CurrencyParser) extractRates(doc *goquery.Document) []models.CurrencyRate {
	seen := map[string]bool{}
	var rates []models.CurrencyRate

	doc.Find("table tr").Each(func(i int, row *goquery.Selection) {
		var cells []string
		row.Find("td, th").Each(func(j int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) < 3 {
			return
		}

		code := extractCurrencyCode(cells[0])
		if code == "" || seen[code] {
			return
		}

		buy, okBuy := parseRateNumber(cells[1])
		sell, okSell := parseRateNumber(cells[2])
		if !okBuy || !okSell {
			return
		}

		seen[code] = true
		rates = append(rates, models.CurrencyRate{
			Code:   code,
			Buy:    buy,
			Sell:   sell,
			Source: cp.sourceURL,
		})
	})

	return rates
}

func extractCurrencyCode(s string) string {
	up := strings.ToUpper(s)
	for code := range trackedCurrencyCodes {
		if strings.Contains(up, code) {
			return code
		}
	}
	return ""
}

// parseRateNumber handles both "34.1234" and the Turkish "34,1234".
func parseRateNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		// "1.234,56" -> "1234.56"
		s = strings.ReplaceAll(s, ".", "")
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
