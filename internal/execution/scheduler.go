package execution

// Scheduler distributes cases across workers
type Scheduler interface {
	Schedule(total int, workerCount int) [][]int
}

// RoundRobinScheduler distributes cases evenly across workers
type RoundRobinScheduler struct{}

// NewRoundRobinScheduler creates a new RoundRobinScheduler
func NewRoundRobinScheduler() *RoundRobinScheduler {
	return &RoundRobinScheduler{}
}

// Schedule assigns case indexes 0..total-1 to workers using round-robin.
// Each worker's list is in ascending order.
func (s *RoundRobinScheduler) Schedule(total int, workerCount int) [][]int {
	if workerCount <= 0 {
		workerCount = 1
	}

	distribution := make([][]int, workerCount)
	for i := range distribution {
		distribution[i] = make([]int, 0, total/workerCount+1)
	}

	for i := 0; i < total; i++ {
		workerIndex := i % workerCount
		distribution[workerIndex] = append(distribution[workerIndex], i)
	}

	return distribution
}
