// Package stats derives aggregate statistics from a normalized message list.
// Everything here is recomputed per request and never persisted. Counting is
// insertion-stable so ties resolve to the first sender or day encountered.
package stats

import (
	"time"

	"chatscrub/internal/core/normalize"
	"chatscrub/internal/platform/timex"
)

// NameCount is one participant bucket; Percent is the share of the total
type NameCount struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// DayCount is one calendar-day bucket; Date is formatted 2006-01-02
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DateRange is the inclusive active period of the conversation
type DateRange struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	TotalDays int       `json:"total_days"`
}

// Statistics is the derived aggregate view of a normalized message list
type Statistics struct {
	TotalMessages      int         `json:"total_messages"`
	UniqueParticipants int         `json:"unique_participants"`
	MessageCounts      []NameCount `json:"message_counts"`
	OriginalCounts     []NameCount `json:"original_counts"`
	DateRange          *DateRange  `json:"date_range,omitempty"`
	DailyCounts        []DayCount  `json:"daily_counts,omitempty"`
	MostActiveDay      *DayCount   `json:"most_active_day,omitempty"`
	AveragePerDay      float64     `json:"average_per_day"`

	// best-effort first-write-wins lookup tables for display layers
	NameToEmail       map[string]string `json:"name_to_email,omitempty"`
	DisplayToOriginal map[string]string `json:"display_to_original,omitempty"`
}

// counter is a frequency map that remembers first-seen key order
type counter struct {
	keys   []string
	counts map[string]int
}

func newCounter() *counter { return &counter{counts: map[string]int{}} }

func (c *counter) add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.keys = append(c.keys, key)
	}
	c.counts[key]++
}

func (c *counter) pairs(total int) []NameCount {
	out := make([]NameCount, 0, len(c.keys))
	for _, k := range c.keys {
		n := c.counts[k]
		out = append(out, NameCount{Name: k, Count: n, Percent: float64(n) / float64(total) * 100})
	}
	return out
}

// Aggregate computes the full statistics set for msgs.
// Empty input yields an empty Statistics value, not an error
func Aggregate(msgs []normalize.Message) Statistics {
	s := Statistics{}
	if len(msgs) == 0 {
		return s
	}

	byDisplay := newCounter()
	byOriginal := newCounter()
	byDay := newCounter()
	nameToEmail := map[string]string{}
	displayToOriginal := map[string]string{}

	minTS, maxTS := msgs[0].Timestamp, msgs[0].Timestamp
	for _, m := range msgs {
		byDisplay.add(m.DisplayName)
		byOriginal.add(m.OriginalName)
		byDay.add(timex.Day(m.Timestamp).Format("2006-01-02"))

		if m.Timestamp.Before(minTS) {
			minTS = m.Timestamp
		}
		if m.Timestamp.After(maxTS) {
			maxTS = m.Timestamp
		}

		if m.Email != "" {
			if _, ok := nameToEmail[m.OriginalName]; !ok {
				nameToEmail[m.OriginalName] = m.Email
			}
		}
		if m.DisplayName != m.OriginalName {
			if _, ok := displayToOriginal[m.DisplayName]; !ok {
				displayToOriginal[m.DisplayName] = m.OriginalName
			}
		}
	}

	totalDays := timex.WholeDays(minTS, maxTS)

	s.TotalMessages = len(msgs)
	s.UniqueParticipants = len(byDisplay.keys)
	s.MessageCounts = byDisplay.pairs(len(msgs))
	s.OriginalCounts = byOriginal.pairs(len(msgs))
	s.DateRange = &DateRange{Start: minTS, End: maxTS, TotalDays: totalDays}
	s.AveragePerDay = float64(len(msgs)) / float64(max(totalDays, 1))

	daily := make([]DayCount, 0, len(byDay.keys))
	var most *DayCount
	for _, d := range byDay.keys {
		dc := DayCount{Date: d, Count: byDay.counts[d]}
		daily = append(daily, dc)
		// ties keep the first-encountered day
		if most == nil || dc.Count > most.Count {
			c := dc
			most = &c
		}
	}
	s.DailyCounts = daily
	s.MostActiveDay = most

	if len(nameToEmail) > 0 {
		s.NameToEmail = nameToEmail
	}
	if len(displayToOriginal) > 0 {
		s.DisplayToOriginal = displayToOriginal
	}
	return s
}
