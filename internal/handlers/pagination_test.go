package handlers

import "testing"

func TestParseListQueryParams(t *testing.T) {
	cases := []struct {
		name      string
		rawSkip   string
		rawLimit  string
		wantSkip  int
		wantLimit int
	}{
		{"defaults", "", "", 0, defaultPageLimit},
		{"explicit", "10", "25", 10, 25},
		{"clamped limit", "0", "100000", 0, maxPageLimit},
		{"negative skip ignored", "-5", "20", 0, 20},
		{"zero limit ignored", "3", "0", 3, defaultPageLimit},
		{"garbage ignored", "abc", "xyz", 0, defaultPageLimit},
		{"whitespace tolerated", " 2 ", " 4 ", 2, 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := parseListQueryParams(tc.rawSkip, tc.rawLimit)
			if params.Skip != tc.wantSkip {
				t.Fatalf("skip: expected %d, got %d", tc.wantSkip, params.Skip)
			}
			if params.Limit != tc.wantLimit {
				t.Fatalf("limit: expected %d, got %d", tc.wantLimit, params.Limit)
			}
		})
	}
}
