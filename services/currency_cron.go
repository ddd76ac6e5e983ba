package services

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/nejmigmc-soft/landmarkweb/utils"
)

// StartCurrencyCron refreshes exchange rates once at startup and then
// hourly. A failed run is logged and skipped; the next tick retries.
func StartCurrencyCron(parser *CurrencyParser, service *CurrencyService) *cron.Cron {
	go refreshRates(parser, service)

	c := cron.New()
	// top of every hour
	_, _ = c.AddFunc("0 * * * *", func() { refreshRates(parser, service) })
	c.Start()
	log.Printf("[CURRENCY CRON] Scheduler started, rates refresh hourly")
	return c
}

func refreshRates(parser *CurrencyParser, service *CurrencyService) {
	rates, err := parser.FetchRates()
	if err != nil {
		utils.LogError(err, "currency rates fetch")
		log.Printf("[CURRENCY CRON] fetch failed: %v", err)
		return
	}
	if len(rates) == 0 {
		log.Printf("[CURRENCY CRON] no rates found on source page")
		return
	}
	if err := service.SaveRates(context.Background(), rates); err != nil {
		utils.LogError(err, "currency rates save")
		log.Printf("[CURRENCY CRON] save failed: %v", err)
		return
	}
	log.Printf("[CURRENCY CRON] saved %d rates", len(rates))
}
