package ranker

import (
	"errors"
	"fmt"
	"math"

	"github.com/dimtools/armortrim/pkg/armor"
)

// Order is one stat priority ordering, most important first.
type Order [armor.StatCount]armor.Stat

// Schedule holds the multiplier for each priority position.
type Schedule [armor.StatCount]float64

// DefaultSchedule makes the primary stat three times as important as the
// sixth.
var DefaultSchedule = Schedule{3.0, 2.8, 2.0, 1.6, 1.3, 1.0}

// Validate checks that multipliers are positive and non-increasing.
func (s Schedule) Validate() error {
	for i, m := range s {
		if m <= 0 {
			return fmt.Errorf("multiplier %d must be positive, got %v", i+1, m)
		}
		if i > 0 && m > s[i-1] {
			return errors.New("multipliers must be in non-increasing order")
		}
	}
	return nil
}

// ScheduleFromSlice converts a configured list into a Schedule.
func ScheduleFromSlice(vals []float64) (Schedule, error) {
	var s Schedule
	if len(vals) != armor.StatCount {
		return s, fmt.Errorf("expected %d multipliers, got %d", armor.StatCount, len(vals))
	}
	copy(s[:], vals)
	return s, s.Validate()
}

var allOrders = buildOrders()

// Permutations returns all 720 stat orderings in lexicographic order of
// armor.AllStats. The returned slice is shared and must not be modified.
func Permutations() []Order {
	return allOrders
}

func buildOrders() []Order {
	var out []Order
	var cur Order
	var used [armor.StatCount]bool
	var walk func(depth int)
	walk = func(depth int) {
		if depth == armor.StatCount {
			out = append(out, cur)
			return
		}
		for _, s := range armor.AllStats {
			if used[s] {
				continue
			}
			used[s] = true
			cur[depth] = s
			walk(depth + 1)
			used[s] = false
		}
	}
	walk(0)
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// WeightedTotal scores stats under one ordering. Each product is rounded to
// two decimals before summing, and the sum is rounded again.
func WeightedTotal(stats armor.Stats, order Order, sched Schedule) float64 {
	total := 0.0
	for k, s := range order {
		total += round2(float64(stats[s]) * sched[k])
	}
	return round2(total)
}
