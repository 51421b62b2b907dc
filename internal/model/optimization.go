package model

import "sort"

// SpendingRecord maps a category name to the amount spent in it.
type SpendingRecord map[string]float64

// Categories returns the record's category names in sorted order.
func (s SpendingRecord) Categories() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Total sums every amount in the record.
func (s SpendingRecord) Total() float64 {
	var total float64
	for _, v := range s {
		total += v
	}
	return total
}

// OptimizationRequest is the validated input of a budget optimization call.
type OptimizationRequest struct {
	Spending SpendingRecord
	Goals    string
}

// OptimizationResult maps a category name to its suggested allocation.
type OptimizationResult map[string]float64

// Categories returns the result's category names in sorted order.
func (r OptimizationResult) Categories() []string {
	return SpendingRecord(r).Categories()
}

// Total sums every suggested allocation.
func (r OptimizationResult) Total() float64 {
	return SpendingRecord(r).Total()
}
