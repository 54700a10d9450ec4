package metrics

import (
	"sync"
	"testing"
	"time"
)

type mockStatsProvider struct {
	mu    sync.Mutex
	stats Stats
	calls int
}

func (m *mockStatsProvider) GetStats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.stats
}

func (m *mockStatsProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestNewCollector(t *testing.T) {
	provider := &mockStatsProvider{}
	collector := NewCollector(provider, time.Minute)

	if collector == nil {
		t.Fatal("NewCollector returned nil")
	}
	if collector.interval != time.Minute {
		t.Errorf("interval = %v, want %v", collector.interval, time.Minute)
	}
	if collector.statsProvider != provider {
		t.Error("statsProvider not set")
	}
}

func TestCollectorCollect(t *testing.T) {
	provider := &mockStatsProvider{
		stats: Stats{
			TotalVideos:  12,
			TotalAudio:   34,
			TotalFolders: 5,
			MetadataBySource: map[string]int{
				"omdb":     10,
				"filename": 2,
			},
		},
	}
	collector := NewCollector(provider, time.Minute)

	collector.collect()

	if provider.callCount() != 1 {
		t.Errorf("GetStats called %d times, want 1", provider.callCount())
	}
}

func TestCollectorNilProvider(t *testing.T) {
	collector := NewCollector(nil, time.Minute)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("collect with nil provider panicked: %v", r)
		}
	}()
	collector.collect()
}

func TestCollectorStartStop(t *testing.T) {
	provider := &mockStatsProvider{}
	collector := NewCollector(provider, 10*time.Millisecond)

	collector.Start()

	// The loop collects once immediately, then on each tick
	time.Sleep(35 * time.Millisecond)
	collector.Stop()

	calls := provider.callCount()
	if calls < 2 {
		t.Errorf("GetStats called %d times, want at least 2", calls)
	}

	// No further collections after Stop
	time.Sleep(25 * time.Millisecond)
	if after := provider.callCount(); after > calls+1 {
		t.Errorf("GetStats called %d times after Stop, was %d at Stop", after, calls)
	}
}
