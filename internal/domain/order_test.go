package domain

import "testing"

func TestOrderStatusValid(t *testing.T) {
	valid := []OrderStatus{OrderStatusPending, OrderStatusCompleted}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}

	invalid := []OrderStatus{"", "pending", "Cancelled", "Shipped"}
	for _, s := range invalid {
		if s.Valid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderStatusPending, OrderStatusCompleted, true},
		{OrderStatusPending, OrderStatusPending, true},
		{OrderStatusCompleted, OrderStatusCompleted, true},
		{OrderStatusCompleted, OrderStatusPending, false},
	}

	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}
