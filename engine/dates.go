package engine

import "sort"

// DateStatus is one member's answer for a single calendar day.
type DateStatus struct {
	IsAvailable bool     `json:"is_available"`
	TimeSlots   []string `json:"time_slots,omitempty"`
}

// AvailabilityRecord holds one member's answers, keyed by "YYYY-MM-DD".
// A date absent from the map means "no opinion", not "unavailable".
type AvailabilityRecord struct {
	UserID string
	Dates  map[string]DateStatus
}

// DateScore ranks a candidate date by how many members are free on it.
type DateScore struct {
	Date           string   `json:"date"`
	AvailableCount int      `json:"available_count"`
	AvailableUsers []string `json:"available_users"`
	MissingUsers   []string `json:"missing_users"`
}

// ScoreDates tallies availability for every date anyone marked free and
// returns the candidates sorted by available count (descending), earliest
// date first among ties. Dates nobody marked available are never emitted.
//
// Membership is not cross-validated: a record for a user missing from
// allMemberIDs still counts toward AvailableUsers. Callers filter members
// who left the room before invoking.
func ScoreDates(records []AvailabilityRecord, allMemberIDs []string) []DateScore {
	scores := make(map[string]*DateScore)

	for _, rec := range records {
		for date, status := range rec.Dates {
			if !status.IsAvailable {
				continue
			}

			entry, ok := scores[date]
			if !ok {
				// Assume everyone is missing until proven otherwise.
				missing := make([]string, len(allMemberIDs))
				copy(missing, allMemberIDs)
				entry = &DateScore{
					Date:           date,
					AvailableUsers: []string{},
					MissingUsers:   missing,
				}
				scores[date] = entry
			}

			entry.AvailableCount++
			entry.AvailableUsers = append(entry.AvailableUsers, rec.UserID)
			entry.MissingUsers = removeUser(entry.MissingUsers, rec.UserID)
		}
	}

	result := make([]DateScore, 0, len(scores))
	for _, entry := range scores {
		sort.Strings(entry.AvailableUsers)
		result = append(result, *entry)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].AvailableCount != result[j].AvailableCount {
			return result[i].AvailableCount > result[j].AvailableCount
		}
		// ISO dates compare chronologically as strings.
		return result[i].Date < result[j].Date
	})

	return result
}

func removeUser(users []string, userID string) []string {
	out := users[:0]
	for _, u := range users {
		if u != userID {
			out = append(out, u)
		}
	}
	return out
}
