package models

import "testing"

func TestParseApplicationStatus(t *testing.T) {
	for _, valid := range []string{"Pending", "UnderReview", "Forwarded", "Rejected"} {
		status, ok := ParseApplicationStatus(valid)
		if !ok || string(status) != valid {
			t.Errorf("ParseApplicationStatus(%q) = (%q, %v)", valid, status, ok)
		}
	}

	for _, invalid := range []string{"", "pending", "Approved", "Forwarded!", "PENDING"} {
		if _, ok := ParseApplicationStatus(invalid); ok {
			t.Errorf("ParseApplicationStatus(%q) accepted an out-of-set value", invalid)
		}
	}
}
