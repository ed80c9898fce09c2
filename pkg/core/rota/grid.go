package rota

import (
	"fmt"
	"math"
)

// SlotGrid assigns one person (or BlankMarker) to each hourly slot of a day
type SlotGrid []Person

// Run is a contiguous block of slots held by the same person
type Run struct {
	Person Person
	Start  int
	Length int
}

// Expand stretches an order across slotCount slots.
//
// Each person gets slotCount/len(order) slots on average. Slot i goes to
// order[min(floor(i/width), len(order)-1)], where width is the real-valued quotient,
// so when the division is inexact the earlier people may get the larger runs.
// An empty order gives a grid of BlankMarker.
func Expand(order []Person, slotCount int) SlotGrid {
	grid := make(SlotGrid, slotCount)

	if len(order) == 0 {
		for i := range grid {
			grid[i] = BlankMarker
		}
		return grid
	}

	width := float64(slotCount) / float64(len(order))
	for i := range grid {
		idx := min(int(floorDiv(float64(i), width)), len(order)-1)
		grid[i] = order[idx]
	}

	return grid
}

// floorDiv is floored division computed from the exact remainder, so a quotient that only
// rounds up to an integer (e.g. 8 / 1.6) is not promoted to it.
// Operands are non-negative and b > 0.
func floorDiv(a, b float64) float64 {
	mod := math.Mod(a, b)
	div := (a - mod) / b
	floor := math.Floor(div)
	if div-floor > 0.5 {
		floor++
	}
	return floor
}

// Runs collapses the grid into contiguous blocks, in slot order
func (g SlotGrid) Runs() []Run {
	var runs []Run
	for i, p := range g {
		if len(runs) > 0 && runs[len(runs)-1].Person == p {
			runs[len(runs)-1].Length++
			continue
		}
		runs = append(runs, Run{Person: p, Start: i, Length: 1})
	}
	return runs
}

// IsBlank reports whether nobody was scheduled in the grid
func (g SlotGrid) IsBlank() bool {
	for _, p := range g {
		if p != BlankMarker {
			return false
		}
	}
	return true
}

// SlotLabels returns "HH:00-HH:00" labels for count hourly slots starting at firstHour
func SlotLabels(firstHour, count int) []string {
	labels := make([]string, count)
	for i := range labels {
		start := (firstHour + i) % 24
		labels[i] = fmt.Sprintf("%02d:00-%02d:00", start, start+1)
	}
	return labels
}
