package models

import "testing"

func TestRound1(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1.0, 1.0},
		{1.04, 1.0},
		{1.05, 1.1},
		{16.666, 16.7},
		{-2.35, -2.4},
	}
	for _, tt := range tests {
		if got := Round1(tt.in); got != tt.want {
			t.Errorf("Round1(%v) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}

func TestCategorizeComplexity(t *testing.T) {
	tests := []struct {
		complexity int
		want       ComplexityCategory
	}{
		{1, CategorySimple},
		{5, CategorySimple},
		{6, CategoryModerate},
		{10, CategoryModerate},
		{11, CategoryComplex},
		{40, CategoryComplex},
	}
	for _, tt := range tests {
		if got := CategorizeComplexity(tt.complexity); got != tt.want {
			t.Errorf("CategorizeComplexity(%d) = %s, expected %s", tt.complexity, got, tt.want)
		}
	}
}

func TestPriorityTierWeight(t *testing.T) {
	order := []PriorityTier{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
	for i := 1; i < len(order); i++ {
		if order[i].Weight() <= order[i-1].Weight() {
			t.Errorf("%s should outweigh %s", order[i], order[i-1])
		}
	}
	if PriorityTier("bogus").Weight() != 0 {
		t.Error("unknown tier should weigh 0")
	}
}

func TestDebtBreakdownTotal(t *testing.T) {
	b := DebtBreakdown{
		Duplication:   10,
		Complexity:    45,
		Documentation: 5,
		LongFunctions: 20,
		Quality:       3,
	}
	if got := b.Total(); got != 83 {
		t.Errorf("Total() = %d, expected 83", got)
	}
	if (DebtBreakdown{}).Total() != 0 {
		t.Error("empty breakdown should total 0")
	}
}
