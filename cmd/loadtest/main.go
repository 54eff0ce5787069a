package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"
	"sync/atomic"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

var (
	targetHost = flag.String("target", "http://localhost:8085", "base URL of the sync service")
	rps        = flag.Int("rps", 5, "requests per second")
	duration   = flag.Duration("duration", time.Minute, "attack duration")
	runsShare  = flag.Float64("runs-share", 0.2, "share of requests hitting /sync/runs instead of the trigger")
)

// Targeter: триггер синхронизации вперемешку с чтением истории.
// Вызывается из нескольких воркеров одновременно. Параллельные триггеры
// должны схлопываться в один проход на стороне сервиса.
func makeTargeter(apiKey string) vegeta.Targeter {
	header := http.Header{
		"Accept":    {"application/json"},
		"X-Api-Key": {apiKey},
	}

	var n atomic.Uint64
	every := 0
	if *runsShare > 0 {
		every = int(1 / *runsShare)
	}

	return func(t *vegeta.Target) error {
		i := n.Add(1)
		t.Method = http.MethodGet
		t.Header = header.Clone()
		t.Body = nil

		if every > 0 && i%uint64(every) == 0 {
			t.URL = *targetHost + "/sync/runs?limit=10"
			return nil
		}
		t.URL = *targetHost + "/sync/outline"
		return nil
	}
}

// Attack
func runAttack(apiKey string) {
	rate := vegeta.Rate{Freq: *rps, Per: time.Second}
	attacker := vegeta.NewAttacker(vegeta.Timeout(30 * time.Second))
	targeter := makeTargeter(apiKey)

	var metrics vegeta.Metrics

	log.Printf("Starting attack: %s for %s", *targetHost, *duration)
	for res := range attacker.Attack(targeter, rate, *duration, "sync-load-test") {
		metrics.Add(res)
	}
	metrics.Close()

	codes := make([]string, 0, len(metrics.StatusCodes))
	for code := range metrics.StatusCodes {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	fmt.Println("=== Results ===")
	fmt.Printf("Requests: %d\n", metrics.Requests)
	fmt.Printf("Success rate: %.4f%%\n", metrics.Success*100)
	fmt.Printf("Latency mean: %s\n", metrics.Latencies.Mean)
	fmt.Printf("Latency P95: %s\n", metrics.Latencies.P95)
	fmt.Printf("Latency P99: %s\n", metrics.Latencies.P99)
	for _, code := range codes {
		fmt.Printf("Status %s: %d\n", code, metrics.StatusCodes[code])
	}
}

func main() {
	flag.Parse()

	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		log.Fatal("API_KEY must be set")
	}

	runAttack(apiKey)
}
