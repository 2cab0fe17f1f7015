package metrics

import (
	"sync/atomic"
	"time"

	"santorini/game"
)

type SearchMetric struct {
	Budget       int // Iterations requested
	Episodes     int // Iterations completed
	FullPlayouts int // Rollouts that reached a result
	TreeSize     int
	Duration     time.Duration
}

type MoveMetric struct {
	Step   int
	Player game.Player
	Move   game.Move
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Player
	Winner         game.Player
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(budget int)
	AddFullPlayout()
	AddEpisode()
	SetTreeSize(size int)
	Complete() SearchMetric
}

type collector struct {
	budget       int
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	treeSize     atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(budget int) {
	m.startTime = time.Now()
	m.budget = budget
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.treeSize.Store(0)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) SetTreeSize(size int) {
	m.treeSize.Store(int32(size))
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Budget:       m.budget,
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		TreeSize:     int(m.treeSize.Load()),
		Duration:     time.Since(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(budget int)       {}
func (m *dummyCollector) AddFullPlayout()        {}
func (m *dummyCollector) AddEpisode()            {}
func (m *dummyCollector) SetTreeSize(size int)   {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
