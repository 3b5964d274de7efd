package execution

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundRobinScheduler_Schedule(t *testing.T) {
	s := NewRoundRobinScheduler()

	tests := []struct {
		name    string
		total   int
		workers int
		want    [][]int
	}{
		{name: "even split", total: 4, workers: 2, want: [][]int{{0, 2}, {1, 3}}},
		{name: "uneven split", total: 5, workers: 3, want: [][]int{{0, 3}, {1, 4}, {2}}},
		{name: "single worker", total: 3, workers: 1, want: [][]int{{0, 1, 2}}},
		{name: "zero workers treated as one", total: 2, workers: 0, want: [][]int{{0, 1}}},
		{name: "nothing to do", total: 0, workers: 2, want: [][]int{{}, {}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Schedule(tt.total, tt.workers))
		})
	}
}
