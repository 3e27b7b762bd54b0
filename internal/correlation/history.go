package correlation

import (
	"encoding/json"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/abelbrown/vigil/internal/logging"
)

const (
	hourMillis   = 3_600_000
	minuteMillis = 60_000

	maxHourlyBuckets = 168 // 7 days
	minuteWindow     = 30  // Minutes of per-minute history retained
	velocityWindow   = 5   // Minute buckets feeding the velocity average
	velocitySeries   = 10  // Velocity samples kept for acceleration
	minHistoryPoints = 3   // Below this, z-scores stay 0
)

// KV is the persistence interface for hourly history. A file or database
// backed implementation can be swapped in without touching engine logic.
// Failures are absorbed: the engine degrades to empty history.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Clear() error
}

// MemoryKV is the in-memory default KV.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryKV creates an empty in-memory KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string][]byte)}
}

func (m *MemoryKV) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKV) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string][]byte)
	return nil
}

// hourlyBucket is one persisted observation of a topic's hourly count.
type hourlyBucket struct {
	Hour  int64 `json:"hour"` // floor(unixMillis / 3600000)
	Count int   `json:"count"`
}

// History owns all rolling statistical state for the correlation engine:
// persisted hourly counts per topic, the in-memory per-minute window, and
// the velocity series. All methods are safe for concurrent use.
type History struct {
	mu sync.Mutex
	kv KV

	// minuteBucket -> topicID -> count. Repeated records within the same
	// minute overwrite, so re-analysis inside a minute is idempotent.
	minute map[int64]map[string]int

	// topicID -> last velocitySeries velocity samples.
	velocities map[string][]float64
}

// NewHistory creates a History backed by the given KV store.
// A nil kv degrades to in-memory only.
func NewHistory(kv KV) *History {
	if kv == nil {
		kv = NewMemoryKV()
	}
	return &History{
		kv:         kv,
		minute:     make(map[int64]map[string]int),
		velocities: make(map[string][]float64),
	}
}

// hourlyKey is the KV key for a topic's hourly series.
func hourlyKey(topicID string) string {
	return "hourly:" + topicID
}

// loadHourly reads a topic's persisted hourly series. Persistence failures
// fail soft: an empty series is returned and the error is logged.
func (h *History) loadHourly(topicID string) []hourlyBucket {
	data, ok, err := h.kv.Get(hourlyKey(topicID))
	if err != nil {
		logging.Warn("History: hourly load failed, using empty history", "topic", topicID, "err", err)
		return nil
	}
	if !ok {
		return nil
	}
	var buckets []hourlyBucket
	if err := json.Unmarshal(data, &buckets); err != nil {
		logging.Warn("History: hourly history corrupt, using empty history", "topic", topicID, "err", err)
		return nil
	}
	return buckets
}

// ObserveHourly computes the z-score of count against the topic's stored
// hourly history, then appends the observation for the current hour.
// Appending happens at most once per distinct hour: later observations in
// the same hour update the bucket in place rather than adding a new one.
//
// The z-score is 0 when fewer than minHistoryPoints prior buckets exist or
// when the history has zero variance.
func (h *History) ObserveHourly(topicID string, count int, now time.Time) float64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	buckets := h.loadHourly(topicID)
	hour := now.UnixMilli() / hourMillis

	// Prior history excludes the current hour's own bucket.
	prior := buckets
	if n := len(buckets); n > 0 && buckets[n-1].Hour == hour {
		prior = buckets[:n-1]
	}
	z := zScore(count, prior)

	if n := len(buckets); n > 0 && buckets[n-1].Hour == hour {
		buckets[n-1].Count = count
	} else {
		buckets = append(buckets, hourlyBucket{Hour: hour, Count: count})
		if len(buckets) > maxHourlyBuckets {
			buckets = buckets[len(buckets)-maxHourlyBuckets:]
		}
	}

	data, err := json.Marshal(buckets)
	if err == nil {
		err = h.kv.Set(hourlyKey(topicID), data)
	}
	if err != nil {
		// Soft failure: this analysis still returns, future z-scores
		// just see thinner history.
		logging.Warn("History: hourly save failed", "topic", topicID, "err", err)
	}

	return z
}

// zScore returns (x - mean) / stddev over the history, guarding both the
// thin-history and the zero-variance cases.
func zScore(x int, history []hourlyBucket) float64 {
	if len(history) < minHistoryPoints {
		return 0
	}
	var sum float64
	for _, b := range history {
		sum += float64(b.Count)
	}
	mean := sum / float64(len(history))

	var variance float64
	for _, b := range history {
		d := float64(b.Count) - mean
		variance += d * d
	}
	variance /= float64(len(history))
	stddev := math.Sqrt(variance)
	if stddev == 0 {
		return 0
	}
	return (float64(x) - mean) / stddev
}

// RecordMinute stores the per-topic counts for the current minute bucket and
// prunes buckets older than the retention window.
func (h *History) RecordMinute(counts map[string]int, now time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()

	bucket := now.UnixMilli() / minuteMillis
	snapshot := make(map[string]int, len(counts))
	for id, c := range counts {
		snapshot[id] = c
	}
	h.minute[bucket] = snapshot

	cutoff := bucket - minuteWindow
	for b := range h.minute {
		if b < cutoff {
			delete(h.minute, b)
		}
	}
}

// CountAgo returns the topic's count at the newest minute bucket at least
// `minutes` old, or 0 if the window holds nothing that old.
func (h *History) CountAgo(topicID string, minutes int, now time.Time) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	target := now.UnixMilli()/minuteMillis - int64(minutes)
	var best int64 = -1
	for b := range h.minute {
		if b <= target && b > best {
			best = b
		}
	}
	if best < 0 {
		return 0
	}
	return h.minute[best][topicID]
}

// ObserveVelocity computes the topic's velocity (mean of per-minute deltas
// over the most recent velocityWindow buckets), appends it to the velocity
// series, and returns (velocity, acceleration). Acceleration is the finite
// difference of the last two velocity samples.
func (h *History) ObserveVelocity(topicID string, now time.Time) (float64, float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	buckets := make([]int64, 0, len(h.minute))
	for b := range h.minute {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i] < buckets[j] })

	if len(buckets) > velocityWindow {
		buckets = buckets[len(buckets)-velocityWindow:]
	}

	velocity := 0.0
	if len(buckets) >= 2 {
		var deltaSum float64
		for i := 1; i < len(buckets); i++ {
			prev := h.minute[buckets[i-1]][topicID]
			curr := h.minute[buckets[i]][topicID]
			deltaSum += float64(curr - prev)
		}
		velocity = deltaSum / float64(len(buckets)-1)
	}

	series := append(h.velocities[topicID], velocity)
	if len(series) > velocitySeries {
		series = series[len(series)-velocitySeries:]
	}
	h.velocities[topicID] = series

	accel := 0.0
	if len(series) >= 2 {
		accel = series[len(series)-1] - series[len(series)-2]
	}
	return velocity, accel
}

// Clear drops the in-memory minute window and velocity series.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.minute = make(map[int64]map[string]int)
	h.velocities = make(map[string][]float64)
}

// ClearPersisted drops the persisted hourly history.
func (h *History) ClearPersisted() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.kv.Clear(); err != nil {
		logging.Warn("History: persisted clear failed", "err", err)
	}
}
