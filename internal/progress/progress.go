// Package progress keeps the append-only cynicism score history.
package progress

import (
	"sync"
	"time"
)

// Point is one sentiment observation. The date is a short display label
// matching the original chart axis ("Jan 2").
type Point struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

// Log is an append-only sequence of points; entries are never mutated or
// removed.
type Log struct {
	mu     sync.Mutex
	points []Point
}

func NewLog(points []Point) *Log {
	return &Log{points: points}
}

// Append records a score observed at now and returns the new point.
func (l *Log) Append(score int, now time.Time) Point {
	p := Point{Date: now.Format("Jan 2"), Score: score}
	l.mu.Lock()
	l.points = append(l.points, p)
	l.mu.Unlock()
	return p
}

// Points returns a copy of the sequence in append order.
func (l *Log) Points() []Point {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Point, len(l.points))
	copy(out, l.points)
	return out
}

// Len reports the number of recorded points.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.points)
}
