package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Booking load generator for the appointment scheduler. Many workers
// hammer a small pool of slots so most requests collide; the run is a
// pass if the scheduler never double-books a slot, i.e. conflicts show
// up as 400s instead of duplicate rows.

type SimConfig struct {
	APIBaseURL   string
	Duration     time.Duration
	Workers      int
	PatientLimit int64 // patient ids are drawn from [1, PatientLimit]
	DayLimit     int   // bookings target the next DayLimit days
}

// The dashboard's fixed choices; the server accepts any string, the
// simulator just books what a real client would.
var doctors = []string{"Dr. Gregory House", "Dr. Meredith Grey", "Dr. Shaun Murphy"}

var timeSlots = []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00"}

type OperationMetrics struct {
	Total    int64
	Success  int64
	Conflict int64
	Error    int64

	mu        sync.Mutex
	latencies []time.Duration
}

func (om *OperationMetrics) Record(latency time.Duration, status int) {
	atomic.AddInt64(&om.Total, 1)
	switch {
	case status == http.StatusOK:
		atomic.AddInt64(&om.Success, 1)
	case status == http.StatusBadRequest:
		// Conflict and unknown-patient share the status code.
		atomic.AddInt64(&om.Conflict, 1)
	default:
		atomic.AddInt64(&om.Error, 1)
	}

	om.mu.Lock()
	om.latencies = append(om.latencies, latency)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (avg, min, max, p95 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if len(om.latencies) == 0 {
		return 0, 0, 0, 0
	}

	latencies := make([]time.Duration, len(om.latencies))
	copy(latencies, om.latencies)

	sort.Slice(latencies, func(i, j int) bool {
		return latencies[i] < latencies[j]
	})

	var sum time.Duration
	for _, l := range latencies {
		sum += l
	}

	avg = sum / time.Duration(len(latencies))
	min = latencies[0]
	max = latencies[len(latencies)-1]

	p95Idx := len(latencies) * 95 / 100
	if p95Idx >= len(latencies) {
		p95Idx = len(latencies) - 1
	}
	p95 = latencies[p95Idx]

	return avg, min, max, p95
}

type bookRequest struct {
	PatientID int64  `json:"patient_id"`
	Doctor    string `json:"doctor"`
	Date      string `json:"date"`
	TimeSlot  string `json:"time_slot"`
}

type Simulator struct {
	config  SimConfig
	client  *http.Client
	metrics OperationMetrics
}

func (s *Simulator) bookOnce(ctx context.Context) {
	req := bookRequest{
		PatientID: 1 + rand.Int63n(s.config.PatientLimit),
		Doctor:    doctors[rand.Intn(len(doctors))],
		Date:      time.Now().AddDate(0, 0, 1+rand.Intn(s.config.DayLimit)).Format("2006-01-02"),
		TimeSlot:  timeSlots[rand.Intn(len(timeSlots))],
	}

	body, err := json.Marshal(req)
	if err != nil {
		log.Printf("marshal booking: %v", err)
		return
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.config.APIBaseURL+"/appointments/", bytes.NewReader(body))
	if err != nil {
		log.Printf("build booking request: %v", err)
		return
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := s.client.Do(httpReq)
	latency := time.Since(start)

	if err != nil {
		s.metrics.Record(latency, 0)
		return
	}
	_ = resp.Body.Close()

	s.metrics.Record(latency, resp.StatusCode)
}

func (s *Simulator) worker(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		default:
			s.bookOnce(ctx)
		}
	}
}

func (s *Simulator) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Duration)
	defer cancel()

	log.Printf("simulating workers=%d duration=%s target=%s",
		s.config.Workers, s.config.Duration, s.config.APIBaseURL)

	var wg sync.WaitGroup
	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)
		go s.worker(ctx, &wg)
	}
	wg.Wait()

	s.report()
}

func (s *Simulator) report() {
	avg, min, max, p95 := s.metrics.Stats()

	fmt.Println("--- booking results ---")
	fmt.Printf("total:     %d\n", s.metrics.Total)
	fmt.Printf("booked:    %d\n", s.metrics.Success)
	fmt.Printf("conflicts: %d\n", s.metrics.Conflict)
	fmt.Printf("errors:    %d\n", s.metrics.Error)
	fmt.Printf("latency avg=%s min=%s max=%s p95=%s\n", avg, min, max, p95)
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := SimConfig{
		APIBaseURL:   envOr("SIM_TARGET", "http://127.0.0.1:8002"),
		Duration:     envDuration("SIM_DURATION", 30*time.Second),
		Workers:      envInt("SIM_WORKERS", 20),
		PatientLimit: int64(envInt("SIM_PATIENTS", 200)),
		DayLimit:     envInt("SIM_DAYS", 7),
	}

	sim := &Simulator{
		config: cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}

	sim.Run()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
