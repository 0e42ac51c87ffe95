package enums

import "testing"

func TestOrderStatusIsValid(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled} {
		if !status.IsValid() {
			t.Fatalf("expected %s to be valid", status)
		}
	}
	if OrderStatus("Refunded").IsValid() {
		t.Fatal("unknown status should be invalid")
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("Shipped")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != OrderStatusShipped {
		t.Fatalf("expected Shipped, got %s", status)
	}
	if _, err := ParseOrderStatus("shipped"); err == nil {
		t.Fatal("status parsing is case sensitive")
	}
}
