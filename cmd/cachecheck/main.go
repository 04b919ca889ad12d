package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"seatflow/internal/shared/config"
	"seatflow/internal/shared/constants"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// CheckResult is one request against a cached public endpoint
type CheckResult struct {
	Endpoint     string        `json:"endpoint"`
	Pass         int           `json:"pass"`
	CacheKey     string        `json:"cache_key"`
	KeyPresent   bool          `json:"key_present"`
	ResponseTime time.Duration `json:"response_time"`
	DataSize     int           `json:"data_size"`
	Success      bool          `json:"success"`
	Error        string        `json:"error,omitempty"`
}

type CheckSuite struct {
	BaseURL string
	Redis   *redis.Client
	Client  *http.Client
	Results []CheckResult
}

type activeEvent struct {
	Data struct {
		ID       string `json:"id"`
		Slug     string `json:"slug"`
		Sessions []struct {
			ID string `json:"id"`
		} `json:"sessions"`
	} `json:"data"`
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	baseURL := os.Getenv("CACHECHECK_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Port + cfg.GetAPIBasePath()
	}

	suite := &CheckSuite{
		BaseURL: baseURL,
		Redis:   redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
	defer suite.Redis.Close()

	fmt.Println("🧪 Checking seatflow response caches...")
	ctx := context.Background()
	if err := suite.Redis.Ping(ctx).Err(); err != nil {
		log.Fatalf("❌ Redis connection failed: %v", err)
	}
	fmt.Println("✅ Redis connection: OK")

	var active activeEvent
	if err := suite.getJSON("/events/active", &active); err != nil {
		log.Fatalf("❌ No active event to check against: %v", err)
	}

	cases := []struct {
		name     string
		endpoint string
		key      string
	}{
		{"Active event", "/events/active", constants.CACHE_KEY_EVENT_ACTIVE},
		{"Event by slug", "/events/slug/" + active.Data.Slug, constants.BuildEventBySlugKey(active.Data.Slug)},
	}
	for _, session := range active.Data.Sessions {
		cases = append(cases, struct {
			name     string
			endpoint string
			key      string
		}{
			"Seat map " + session.ID,
			"/events/" + active.Data.ID + "/sessions/" + session.ID + "/seats",
			constants.BuildSeatMapKey(active.Data.ID, session.ID),
		})
	}

	for _, tc := range cases {
		fmt.Printf("\n🔍 %s\n", tc.name)
		// first pass fills the cache, second pass should be served from it
		for pass := 1; pass <= 2; pass++ {
			result := suite.check(ctx, tc.endpoint, tc.key, pass)
			suite.Results = append(suite.Results, result)
			time.Sleep(100 * time.Millisecond)
		}
	}

	if !suite.report() {
		os.Exit(1)
	}
}

func (s *CheckSuite) getJSON(endpoint string, dest interface{}) error {
	resp, err := s.Client.Get(s.BaseURL + endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

func (s *CheckSuite) check(ctx context.Context, endpoint, key string, pass int) CheckResult {
	result := CheckResult{Endpoint: endpoint, Pass: pass, CacheKey: key}

	start := time.Now()
	resp, err := s.Client.Get(s.BaseURL + endpoint)
	if err != nil {
		result.Error = err.Error()
		fmt.Printf("   ❌ pass %d: %v\n", pass, err)
		return result
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	result.ResponseTime = time.Since(start)
	result.DataSize = len(body)
	result.Success = resp.StatusCode == http.StatusOK
	if !result.Success {
		result.Error = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}

	n, err := s.Redis.Exists(ctx, key).Result()
	result.KeyPresent = err == nil && n == 1

	icon := "✅"
	if !result.Success || !result.KeyPresent {
		icon = "❌"
	}
	fmt.Printf("   %s pass %d %v (%d bytes) key=%s present=%t\n", icon, pass, result.ResponseTime, result.DataSize, key, result.KeyPresent)
	return result
}

// report prints the summary and returns whether every check passed
func (s *CheckSuite) report() bool {
	fmt.Println("\n📊 CACHE CHECK REPORT")
	fmt.Println("=====================")

	passed := 0
	var first, second time.Duration
	var firstN, secondN int
	for _, r := range s.Results {
		if r.Success && r.KeyPresent {
			passed++
		}
		if r.Pass == 1 {
			first += r.ResponseTime
			firstN++
		} else {
			second += r.ResponseTime
			secondN++
		}
	}

	fmt.Printf("Checks: %d, passed: %d\n", len(s.Results), passed)
	if firstN > 0 && secondN > 0 {
		fmt.Printf("Average first pass: %v, average cached pass: %v\n", first/time.Duration(firstN), second/time.Duration(secondN))
	}

	if path := os.Getenv("CACHECHECK_REPORT"); path != "" {
		data, _ := json.MarshalIndent(s.Results, "", "  ")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			fmt.Printf("⚠️  could not write %s: %v\n", path, err)
		} else {
			fmt.Printf("💾 Detailed results saved to %s\n", path)
		}
	}
	return passed == len(s.Results)
}
