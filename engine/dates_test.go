package engine

import (
	"reflect"
	"testing"
)

func avail(userID string, dates ...string) AvailabilityRecord {
	m := make(map[string]DateStatus, len(dates))
	for _, d := range dates {
		m[d] = DateStatus{IsAvailable: true}
	}
	return AvailabilityRecord{UserID: userID, Dates: m}
}

func TestScoreDates(t *testing.T) {
	tests := []struct {
		name    string
		records []AvailabilityRecord
		members []string
		want    []DateScore
	}{
		{
			name:    "empty input",
			records: nil,
			members: []string{"alice", "bob"},
			want:    []DateScore{},
		},
		{
			name: "most available date wins, missing set completes it",
			records: []AvailabilityRecord{
				avail("alice", "2024-06-01", "2024-06-02"),
				avail("bob", "2024-06-01"),
			},
			members: []string{"alice", "bob", "charlie"},
			want: []DateScore{
				{
					Date:           "2024-06-01",
					AvailableCount: 2,
					AvailableUsers: []string{"alice", "bob"},
					MissingUsers:   []string{"charlie"},
				},
				{
					Date:           "2024-06-02",
					AvailableCount: 1,
					AvailableUsers: []string{"alice"},
					MissingUsers:   []string{"bob", "charlie"},
				},
			},
		},
		{
			name: "equal counts tie-break chronologically",
			records: []AvailabilityRecord{
				avail("alice", "2024-07-20", "2024-07-05"),
				avail("bob", "2024-07-05", "2024-07-20"),
			},
			members: []string{"alice", "bob"},
			want: []DateScore{
				{Date: "2024-07-05", AvailableCount: 2, AvailableUsers: []string{"alice", "bob"}, MissingUsers: []string{}},
				{Date: "2024-07-20", AvailableCount: 2, AvailableUsers: []string{"alice", "bob"}, MissingUsers: []string{}},
			},
		},
		{
			name: "unavailable answers are not tallied",
			records: []AvailabilityRecord{
				{
					UserID: "alice",
					Dates: map[string]DateStatus{
						"2024-06-01": {IsAvailable: true},
						"2024-06-02": {IsAvailable: false},
					},
				},
			},
			members: []string{"alice"},
			want: []DateScore{
				{Date: "2024-06-01", AvailableCount: 1, AvailableUsers: []string{"alice"}, MissingUsers: []string{}},
			},
		},
		{
			name: "user outside member list is still tallied",
			records: []AvailabilityRecord{
				avail("ghost", "2024-06-01"),
			},
			members: []string{"alice"},
			want: []DateScore{
				{Date: "2024-06-01", AvailableCount: 1, AvailableUsers: []string{"ghost"}, MissingUsers: []string{"alice"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreDates(tt.records, tt.members)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d scores, want %d: %+v", len(got), len(tt.want), got)
			}
			for i := range got {
				if !reflect.DeepEqual(got[i], tt.want[i]) {
					t.Errorf("score[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestScoreDatesMissingSetIsComplete(t *testing.T) {
	members := []string{"alice", "bob", "charlie", "dana"}
	records := []AvailabilityRecord{
		avail("alice", "2024-06-01", "2024-06-03"),
		avail("bob", "2024-06-01"),
		avail("charlie", "2024-06-03"),
		avail("dana", "2024-06-01", "2024-06-03"),
	}

	for _, score := range ScoreDates(records, members) {
		seen := make(map[string]int)
		for _, u := range score.AvailableUsers {
			seen[u]++
		}
		for _, u := range score.MissingUsers {
			seen[u]++
		}
		if len(seen) != len(members) {
			t.Errorf("%s: available + missing covers %d users, want %d", score.Date, len(seen), len(members))
		}
		for u, n := range seen {
			if n != 1 {
				t.Errorf("%s: user %s appears in both sets", score.Date, u)
			}
		}
		if score.AvailableCount != len(score.AvailableUsers) {
			t.Errorf("%s: count %d != len(available) %d", score.Date, score.AvailableCount, len(score.AvailableUsers))
		}
	}
}

func TestScoreDatesMissingUsersFollowMemberOrder(t *testing.T) {
	members := []string{"dana", "alice", "charlie", "bob"}
	records := []AvailabilityRecord{
		avail("eve", "2024-06-01"),
	}

	scores := ScoreDates(records, members)
	if len(scores) != 1 {
		t.Fatalf("got %d scores, want 1", len(scores))
	}
	if !reflect.DeepEqual(scores[0].MissingUsers, members) {
		t.Errorf("MissingUsers = %v, want member order %v", scores[0].MissingUsers, members)
	}
}

func TestScoreDatesDeterministic(t *testing.T) {
	members := []string{"alice", "bob", "charlie"}
	records := []AvailabilityRecord{
		avail("alice", "2024-06-01", "2024-06-02", "2024-06-03"),
		avail("bob", "2024-06-02", "2024-06-03"),
		avail("charlie", "2024-06-03"),
	}

	first := ScoreDates(records, members)
	for i := 0; i < 20; i++ {
		if got := ScoreDates(records, members); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}

	for i := 1; i < len(first); i++ {
		prev, cur := first[i-1], first[i]
		if cur.AvailableCount > prev.AvailableCount {
			t.Errorf("not sorted by count: %+v before %+v", prev, cur)
		}
		if cur.AvailableCount == prev.AvailableCount && cur.Date < prev.Date {
			t.Errorf("tie not sorted by date: %+v before %+v", prev, cur)
		}
	}
}
