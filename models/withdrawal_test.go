package models

import "testing"

func TestMaskAccountNumber(t *testing.T) {
	cases := map[string]string{
		"123456789012": "1234****9012",
		"1234567":      "1234****4567",
		"123456":       "123456",
		"":             "",
	}
	for in, want := range cases {
		if got := MaskAccountNumber(in); got != want {
			t.Fatalf("MaskAccountNumber(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWithdrawalResolved(t *testing.T) {
	for status, want := range map[string]bool{
		WithdrawalStatusPending:   false,
		WithdrawalStatusApproved:  false,
		WithdrawalStatusRejected:  true,
		WithdrawalStatusCompleted: true,
	} {
		w := Withdrawal{Status: status}
		if got := w.Resolved(); got != want {
			t.Fatalf("Resolved() for %s = %v, want %v", status, got, want)
		}
	}
}
