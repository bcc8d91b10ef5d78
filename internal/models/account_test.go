package models

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		input  string
		want   AccountRole
		wantOK bool
	}{
		{"athlete", RoleAthlete, true},
		{"Athlete", RoleAthlete, true},
		{"ATHLETES", RoleAthlete, true},
		{" coach ", RoleCoach, true},
		{"coaches", RoleCoach, true},
		{"sponsor", RoleSponsor, true},
		{"Sponsors", RoleSponsor, true},
		{"admin", "", false},
		{"referee", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseRole(tc.input)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("ParseRole(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestDisplayName(t *testing.T) {
	account := &Account{Email: "jane.doe@example.com"}

	if got := DisplayName(account, "Jane Doe"); got != "Jane Doe" {
		t.Errorf("expected profile name to win, got %q", got)
	}
	if got := DisplayName(account, ""); got != "jane.doe" {
		t.Errorf("expected email local part, got %q", got)
	}

	bare := &Account{Email: "no-at-sign"}
	if got := DisplayName(bare, ""); got != "no-at-sign" {
		t.Errorf("expected full email fallback, got %q", got)
	}
}
