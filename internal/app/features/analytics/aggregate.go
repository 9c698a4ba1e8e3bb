// internal/app/features/analytics/aggregate.go
package analytics

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Gaucho-Racing/Sentinel/internal/domain/models"
)

type nameCount struct {
	Name  string
	Count int
}

type dayCount struct {
	Date  string
	Count int
}

// loginWindowDays is how far back the logins-per-day series reaches.
const loginWindowDays = 30

func genderCounts(roster []models.User) []nameCount {
	m := map[string]int{}
	for _, u := range roster {
		g := strings.TrimSpace(u.Gender)
		if g == "" {
			g = "Unknown"
		}
		m[g]++
	}
	return sortedByCount(m)
}

// gradYearCounts buckets the roster by graduation year, ascending, with
// Unknown last.
func gradYearCounts(roster []models.User) []nameCount {
	m := map[string]int{}
	for _, u := range roster {
		y := "Unknown"
		if u.GraduationYear != 0 {
			y = strconv.Itoa(u.GraduationYear)
		}
		m[y]++
	}
	out := make([]nameCount, 0, len(m))
	for name, count := range m {
		out = append(out, nameCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == "Unknown" {
			return false
		}
		if out[j].Name == "Unknown" {
			return true
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func subteamCounts(roster []models.User) []nameCount {
	m := map[string]int{}
	for _, u := range roster {
		for _, s := range u.Subteams {
			m[s.Name]++
		}
	}
	return sortedByCount(m)
}

// roleCounts tallies Discord-sourced roles only.
func roleCounts(roster []models.User) []nameCount {
	m := map[string]int{}
	for _, u := range roster {
		for _, role := range u.Roles {
			if strings.HasPrefix(role, "d_") {
				m[role]++
			}
		}
	}
	return sortedByCount(m)
}

func destinationCounts(logins []models.UserLogin) []nameCount {
	m := map[string]int{}
	for _, l := range logins {
		m[l.Destination]++
	}
	return sortedByCount(m)
}

func loginTypeCounts(logins []models.UserLogin) []nameCount {
	m := map[string]int{}
	for _, l := range logins {
		m[l.LoginType]++
	}
	return sortedByCount(m)
}

// loginSeries buckets logins per day over the trailing window, oldest
// first, with zero-filled gaps so the chart has a continuous axis.
func loginSeries(logins []models.UserLogin) []dayCount {
	return loginSeriesAt(logins, time.Now().UTC())
}

func loginSeriesAt(logins []models.UserLogin, now time.Time) []dayCount {
	buckets := map[string]int{}
	out := make([]dayCount, 0, loginWindowDays)
	for i := loginWindowDays - 1; i >= 0; i-- {
		key := now.AddDate(0, 0, -i).Format("2006-01-02")
		buckets[key] = 0
		out = append(out, dayCount{Date: key})
	}
	for _, l := range logins {
		key := l.CreatedAt.UTC().Format("2006-01-02")
		if _, ok := buckets[key]; ok {
			buckets[key]++
		}
	}
	for i := range out {
		out[i].Count = buckets[out[i].Date]
	}
	return out
}

// sortedByCount flattens a tally map, descending by count with name as
// the tiebreak so output is stable across requests.
func sortedByCount(m map[string]int) []nameCount {
	out := make([]nameCount, 0, len(m))
	for name, count := range m {
		out = append(out, nameCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
