package authz

import (
	"testing"

	"catalog_system/internal/domain"
)

var (
	admin = &domain.User{Username: "root", IsAdmin: true}
	alice = &domain.User{Username: "alice"}
	bob   = &domain.User{Username: "bob"}
)

var nobody *domain.User

func TestCanManageItems(t *testing.T) {
	cases := []struct {
		name  string
		actor *domain.User
		want  bool
	}{
		{"admin", admin, true},
		{"regular user", alice, false},
		{"unauthenticated", nobody, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := CanManageItems(c.actor); got != c.want {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestCanEditUser(t *testing.T) {
	cases := []struct {
		name     string
		actor    *domain.User
		username string
		want     bool
	}{
		{"owner edits self", alice, "alice", true},
		{"other user", bob, "alice", false},
		{"admin edits anyone", admin, "alice", true},
		{"unauthenticated", nobody, "alice", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := CanEditUser(c.actor, c.username); got != c.want {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestCanRemoveUser(t *testing.T) {
	cases := []struct {
		name          string
		actor, target *domain.User
		want          bool
	}{
		{"owner removes self", alice, alice, true},
		{"other user", bob, alice, false},
		{"admin removes regular user", admin, alice, true},
		{"admin target is untouchable", admin, admin, false},
		{"regular user cannot remove admin", alice, admin, false},
		{"missing target", alice, nil, false},
		{"unauthenticated", nobody, alice, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := CanRemoveUser(c.actor, c.target); got != c.want {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestCanRate(t *testing.T) {
	if !CanRate(alice) {
		t.Error("authenticated user should be able to rate")
	}
	if CanRate(nobody) {
		t.Error("unauthenticated request should not be able to rate")
	}
}
