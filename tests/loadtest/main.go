package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"net"
	"net/http"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

const (
	numWorkers = 50
	maxSets    = 10
)

var (
	baseURL      = flag.String("url", "http://127.0.0.1:18090", "server base URL")
	testDuration = flag.Duration("duration", 10*time.Second, "duration of each phase")
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

type batchRef struct {
	ID      string            `json:"id"`
	Results []json.RawMessage `json:"results"`
}

func main() {
	flag.Parse()

	fmt.Println("=== LuckyPick Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Target: %s\n\n", numWorkers, *testDuration, *baseURL)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(*baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Generation (POST /generate) ---")
	runPhase(*testDuration, doGenerate)

	fmt.Println("\n--- Phase 2: Mixed load (40% generate+save, 60% reads) ---")
	runPhase(*testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.40:
			return doGenerateAndSave(rng)
		case r < 0.60:
			return doGet("/stats")
		case r < 0.80:
			return doGet("/frequency")
		case r < 0.90:
			return doGet("/saved")
		default:
			return doGet(fmt.Sprintf("/analysis?i=%d", rng.IntN(maxSets)))
		}
	})

	fmt.Println("\n--- Phase 3: Read-heavy load (5% generate, 95% GET) ---")
	runPhase(*testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.05:
			return doGenerate(rng)
		case r < 0.40:
			return doGet("/stats")
		case r < 0.75:
			return doGet("/frequency")
		case r < 0.90:
			return doGet("/saved")
		default:
			return doGet("/premium")
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			rng := rand.New(rand.NewPCG(seed, seed>>1))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Uint64() + uint64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	slices.Sort(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors
		slices.Sort(s.latencies)

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

// do sends one request; ok lists the statuses that count as success.
func do(method, path string, body []byte, ok ...int) (result, []byte) {
	endpoint := method + " " + strings.SplitN(path, "?", 2)[0]
	req, err := http.NewRequest(method, *baseURL+path, bytes.NewReader(body))
	if err != nil {
		return result{endpoint, 0, 0, true}, nil
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}, nil
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return result{endpoint, resp.StatusCode, lat, !slices.Contains(ok, resp.StatusCode)}, data
}

func generateBody(rng *rand.Rand) []byte {
	kind := "lotto"
	if rng.Float64() < 0.3 {
		kind = "pension"
	}
	data, _ := json.Marshal(map[string]any{"count": rng.IntN(maxSets) + 1, "type": kind})
	return data
}

func doGenerate(rng *rand.Rand) result {
	r, _ := do(http.MethodPost, "/generate", generateBody(rng), http.StatusOK, http.StatusTooManyRequests)
	return r
}

// doGenerateAndSave reports the save; duplicates and lost races on the batch are expected.
func doGenerateAndSave(rng *rand.Rand) result {
	r, data := do(http.MethodPost, "/generate", generateBody(rng), http.StatusOK)
	if r.err || r.status != http.StatusOK {
		return r
	}
	var batch batchRef
	if err := json.Unmarshal(data, &batch); err != nil || len(batch.Results) == 0 {
		return result{r.endpoint, r.status, r.latency, true}
	}

	body, _ := json.Marshal(map[string]any{"batch": batch.ID, "index": rng.IntN(len(batch.Results))})
	r, _ = do(http.MethodPost, "/saved", body, http.StatusCreated, http.StatusConflict, http.StatusGone)
	return r
}

func doGet(path string) result {
	r, _ := do(http.MethodGet, path, nil, http.StatusOK, http.StatusNotFound, http.StatusUnprocessableEntity, http.StatusNoContent)
	return r
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
