package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

var properties = []string{"prop-001", "prop-002", "prop-003"}

func main() {
	targetURL := flag.String("url", "http://localhost:8080/v1/dashboard/summary", "Summary endpoint URL")
	apiKey := flag.String("api-key", "demo-tenant-a", "API Key for authentication")
	concurrency := flag.Int("c", 10, "Number of concurrent workers")
	duration := flag.Duration("d", 30*time.Second, "Duration of the load test")
	rps := flag.Int("rps", 1000, "Requests per second limit")
	flag.Parse()

	log.Printf("Starting load test on %s", *targetURL)
	log.Printf("Concurrency: %d, Duration: %s, RPS: %d", *concurrency, *duration, *rps)

	var wg sync.WaitGroup
	var successCount, errorCount atomic.Int64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	limiter := rate.NewLimiter(rate.Limit(*rps), 100) // Allow bursts up to 100

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			client := &http.Client{
				Timeout: 5 * time.Second,
			}

			for n := 0; ; n++ {
				select {
				case <-ctx.Done():
					return
				default:
					limiter.Wait(ctx) // Wait for token from rate limiter

					property := properties[n%len(properties)]
					url := fmt.Sprintf("%s?property_id=%s", *targetURL, property)

					req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
					if err != nil {
						continue // Should not happen
					}
					req.Header.Set("X-API-Key", *apiKey)
					req.Header.Set("X-Request-ID", uuid.NewString())

					resp, err := client.Do(req)
					if err != nil {
						errorCount.Add(1)
						continue
					}

					if resp.StatusCode == http.StatusOK {
						successCount.Add(1)
					} else {
						errorCount.Add(1)
					}
					resp.Body.Close()
				}
			}
		}(i)
	}

	wg.Wait()

	total := successCount.Load() + errorCount.Load()
	log.Printf("Load test finished. Total: %d, Success: %d, Errors: %d", total, successCount.Load(), errorCount.Load())
	if total > 0 {
		log.Printf("Effective RPS: %.1f", float64(total) / duration.Seconds())
	}
}
