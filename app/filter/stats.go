package filter

import (
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	suppressedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feed_comb_suppressed_items_total",
		Help: "Items suppressed, by reason.",
	}, []string{"reason"})

	exemptedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feed_comb_exempted_items_total",
		Help: "Items kept by an allow-list, by the reason they would have been suppressed for.",
	}, []string{"reason"})
)

type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int64  `json:"count"`
}

// Stats tallies suppressions per reason for one session. Counts only grow
// until Reset.
type Stats struct {
	mu       sync.Mutex
	counts   map[string]int64
	total    int64
	exempted int64
}

func NewStats() *Stats {
	return &Stats{counts: make(map[string]int64)}
}

func (s *Stats) Record(reason string) {
	s.mu.Lock()
	s.counts[reason]++
	s.total++
	s.mu.Unlock()

	suppressedTotal.WithLabelValues(reason).Inc()
}

func (s *Stats) RecordExemption(reason string) {
	s.mu.Lock()
	s.exempted++
	s.mu.Unlock()

	exemptedTotal.WithLabelValues(reason).Inc()
}

func (s *Stats) Count(reason string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[reason]
}

func (s *Stats) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *Stats) Exempted() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exempted
}

// Summary lists reasons by descending count, ties by reason.
func (s *Stats) Summary() []ReasonCount {
	s.mu.Lock()
	out := make([]ReasonCount, 0, len(s.counts))
	for reason, count := range s.counts {
		out = append(out, ReasonCount{Reason: reason, Count: count})
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Reason < out[j].Reason
	})
	return out
}

func (s *Stats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts = make(map[string]int64)
	s.total = 0
	s.exempted = 0
}
