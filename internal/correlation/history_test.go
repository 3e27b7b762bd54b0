package correlation

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestZScoreGuards(t *testing.T) {
	// Thin history: fewer than three points always scores 0.
	thin := []hourlyBucket{{Hour: 1, Count: 1}, {Hour: 2, Count: 9}}
	if z := zScore(100, thin); z != 0 {
		t.Errorf("z = %v with 2 history points, want 0", z)
	}

	// Zero variance: identical counts always score 0, never NaN/Inf.
	flat := []hourlyBucket{{Hour: 1, Count: 4}, {Hour: 2, Count: 4}, {Hour: 3, Count: 4}}
	if z := zScore(9, flat); z != 0 {
		t.Errorf("z = %v with zero-variance history, want 0", z)
	}
}

func TestZScoreComputed(t *testing.T) {
	history := []hourlyBucket{{Hour: 1, Count: 1}, {Hour: 2, Count: 2}, {Hour: 3, Count: 3}}
	// mean 2, population stddev sqrt(2/3); z(5) = 3 / 0.8165 = 3.674.
	z := zScore(5, history)
	want := 3.0 / math.Sqrt(2.0/3.0)
	if math.Abs(z-want) > 1e-9 {
		t.Errorf("z = %v, want %v", z, want)
	}
}

func TestObserveHourlyAppendsOncePerHour(t *testing.T) {
	h := NewHistory(nil)
	base := time.Date(2026, 8, 30, 10, 5, 0, 0, time.UTC)

	h.ObserveHourly("topic", 3, base)
	h.ObserveHourly("topic", 7, base.Add(20*time.Minute)) // same hour

	buckets := h.loadHourly("topic")
	if len(buckets) != 1 {
		t.Fatalf("same-hour observations appended %d buckets, want 1", len(buckets))
	}
	if buckets[0].Count != 7 {
		t.Errorf("bucket count = %d, want in-place update to 7", buckets[0].Count)
	}

	h.ObserveHourly("topic", 2, base.Add(time.Hour))
	buckets = h.loadHourly("topic")
	if len(buckets) != 2 {
		t.Fatalf("new hour should append, got %d buckets", len(buckets))
	}
}

func TestObserveHourlyExcludesCurrentHourFromBaseline(t *testing.T) {
	h := NewHistory(nil)
	base := time.Date(2026, 8, 30, 0, 30, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		h.ObserveHourly("topic", i+1, base.Add(time.Duration(i)*time.Hour))
	}

	at := base.Add(3 * time.Hour)
	first := h.ObserveHourly("topic", 5, at)
	// Re-observing within the hour must score against the same baseline:
	// the current hour's own bucket is not part of its history.
	second := h.ObserveHourly("topic", 5, at.Add(10*time.Minute))
	if first != second {
		t.Errorf("same-hour re-observation changed z: %v then %v", first, second)
	}
	want := 3.0 / math.Sqrt(2.0/3.0)
	if math.Abs(first-want) > 1e-9 {
		t.Errorf("z = %v, want %v", first, want)
	}
}

func TestObserveHourlyCapsBuckets(t *testing.T) {
	h := NewHistory(nil)
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < maxHourlyBuckets+10; i++ {
		h.ObserveHourly("topic", i, base.Add(time.Duration(i)*time.Hour))
	}
	buckets := h.loadHourly("topic")
	if len(buckets) != maxHourlyBuckets {
		t.Errorf("bucket count = %d, want cap %d", len(buckets), maxHourlyBuckets)
	}
	// Oldest evicted first.
	if buckets[0].Count != 10 {
		t.Errorf("oldest surviving count = %d, want 10", buckets[0].Count)
	}
}

func TestRecordMinutePrunesWindow(t *testing.T) {
	h := NewHistory(nil)
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	h.RecordMinute(map[string]int{"topic": 2}, base)
	h.RecordMinute(map[string]int{"topic": 5}, base.Add(31*time.Minute))

	if len(h.minute) != 1 {
		t.Errorf("minute window holds %d buckets, want 1 after pruning", len(h.minute))
	}
	if got := h.CountAgo("topic", 0, base.Add(31*time.Minute)); got != 5 {
		t.Errorf("current count = %d, want 5", got)
	}
}

func TestRecordMinuteSameMinuteOverwrites(t *testing.T) {
	h := NewHistory(nil)
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	h.RecordMinute(map[string]int{"topic": 2}, base)
	h.RecordMinute(map[string]int{"topic": 4}, base.Add(20*time.Second))

	if len(h.minute) != 1 {
		t.Fatalf("same minute produced %d buckets, want 1", len(h.minute))
	}
	if got := h.CountAgo("topic", 0, base); got != 4 {
		t.Errorf("count = %d, want overwrite to 4", got)
	}
}

func TestCountAgo(t *testing.T) {
	h := NewHistory(nil)
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	h.RecordMinute(map[string]int{"topic": 1}, base)
	h.RecordMinute(map[string]int{"topic": 3}, base.Add(5*time.Minute))
	h.RecordMinute(map[string]int{"topic": 8}, base.Add(10*time.Minute))

	now := base.Add(10 * time.Minute)
	if got := h.CountAgo("topic", 10, now); got != 1 {
		t.Errorf("10 minutes ago = %d, want 1", got)
	}
	// Newest bucket at or older than target wins.
	if got := h.CountAgo("topic", 4, now); got != 3 {
		t.Errorf("4 minutes ago = %d, want 3", got)
	}
	if got := h.CountAgo("topic", 30, now); got != 0 {
		t.Errorf("beyond window = %d, want 0", got)
	}
	if got := h.CountAgo("other", 5, now); got != 0 {
		t.Errorf("unknown topic = %d, want 0", got)
	}
}

func TestObserveVelocity(t *testing.T) {
	h := NewHistory(nil)
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	// One bucket: no deltas, velocity 0.
	h.RecordMinute(map[string]int{"topic": 1}, base)
	v, a := h.ObserveVelocity("topic", base)
	if v != 0 || a != 0 {
		t.Errorf("single bucket: v=%v a=%v, want 0, 0", v, a)
	}

	// Counts 1, 3, 5 across three minutes: mean delta 2.
	h.RecordMinute(map[string]int{"topic": 3}, base.Add(time.Minute))
	h.RecordMinute(map[string]int{"topic": 5}, base.Add(2*time.Minute))
	v, a = h.ObserveVelocity("topic", base.Add(2*time.Minute))
	if v != 2 {
		t.Errorf("velocity = %v, want 2", v)
	}
	// Acceleration is the step from the previous sample (0) to 2.
	if a != 2 {
		t.Errorf("acceleration = %v, want 2", a)
	}

	// Flat counts: velocity decays to 0, acceleration goes negative.
	h.RecordMinute(map[string]int{"topic": 5}, base.Add(3*time.Minute))
	h.RecordMinute(map[string]int{"topic": 5}, base.Add(4*time.Minute))
	h.RecordMinute(map[string]int{"topic": 5}, base.Add(5*time.Minute))
	h.RecordMinute(map[string]int{"topic": 5}, base.Add(6*time.Minute))
	v, a = h.ObserveVelocity("topic", base.Add(6*time.Minute))
	if v != 0 {
		t.Errorf("flat window velocity = %v, want 0", v)
	}
	if a >= 0 {
		t.Errorf("deceleration expected, got a=%v", a)
	}
}

// failingKV errors on every operation, modelling a broken database.
type failingKV struct{}

func (failingKV) Get(string) ([]byte, bool, error) { return nil, false, errors.New("kv down") }
func (failingKV) Set(string, []byte) error         { return errors.New("kv down") }
func (failingKV) Clear() error                     { return errors.New("kv down") }

func TestHistorySurvivesFailingKV(t *testing.T) {
	h := NewHistory(failingKV{})
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	// No panic, z degrades to 0.
	if z := h.ObserveHourly("topic", 5, now); z != 0 {
		t.Errorf("z = %v with failing KV, want 0", z)
	}
	h.ClearPersisted()

	// In-memory paths unaffected.
	h.RecordMinute(map[string]int{"topic": 2}, now)
	if got := h.CountAgo("topic", 0, now); got != 2 {
		t.Errorf("count = %d, want 2", got)
	}
}

func TestMemoryKVRoundtrip(t *testing.T) {
	kv := NewMemoryKV()
	if _, ok, _ := kv.Get("missing"); ok {
		t.Error("missing key reported present")
	}
	if err := kv.Set("k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	got, ok, err := kv.Get("k")
	if err != nil || !ok || string(got) != "v" {
		t.Errorf("Get = %q, %v, %v", got, ok, err)
	}
	if err := kv.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := kv.Get("k"); ok {
		t.Error("key survived Clear")
	}
}
