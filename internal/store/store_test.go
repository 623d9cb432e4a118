package store

import "testing"

func TestPageCount(t *testing.T) {
	cases := []struct {
		total    int64
		pageSize int
		want     int
	}{
		{0, 12, 0},
		{1, 12, 1},
		{12, 12, 1},
		{13, 12, 2},
		{30, 12, 3},
		{3, 3, 1},
		{4, 3, 2},
	}
	for _, c := range cases {
		if got := pageCount(c.total, c.pageSize); got != c.want {
			t.Errorf("pageCount(%d, %d) = %d, want %d", c.total, c.pageSize, got, c.want)
		}
	}
}

func TestNamePattern(t *testing.T) {
	valid := []string{"alice", "Bob", "user_42", "___", "0"}
	for _, s := range valid {
		if !namePattern.MatchString(s) {
			t.Errorf("namePattern rejected %q", s)
		}
	}
	invalid := []string{"", "a b", "a-b", "a.b", "ない", "a/b", " alice", "alice\n"}
	for _, s := range invalid {
		if namePattern.MatchString(s) {
			t.Errorf("namePattern accepted %q", s)
		}
	}
}

func TestBlank(t *testing.T) {
	empty := ""
	spaces := "   "
	value := "x"
	if blank(nil) {
		t.Error("nil is unset, not blank")
	}
	if !blank(&empty) || !blank(&spaces) {
		t.Error("empty and whitespace strings should be blank")
	}
	if blank(&value) {
		t.Error("non-empty string should not be blank")
	}
}

func TestClampRating(t *testing.T) {
	cases := []struct{ in, want int16 }{
		{-5, 1}, {0, 1}, {1, 1}, {5, 5}, {10, 10}, {11, 10}, {100, 10},
	}
	for _, c := range cases {
		if got := clampRating(c.in); got != c.want {
			t.Errorf("clampRating(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestNewDefaultsThreshold(t *testing.T) {
	s := New(nil, 0)
	if s.similarityThreshold != DefaultSimilarityThreshold {
		t.Errorf("threshold = %v, want default %v", s.similarityThreshold, DefaultSimilarityThreshold)
	}
	s = New(nil, 0.45)
	if s.similarityThreshold != 0.45 {
		t.Errorf("threshold = %v, want 0.45", s.similarityThreshold)
	}
}
