package scheduler

import (
	"github.com/alexanderramin/rueda/internal/domain"
	"github.com/alexanderramin/rueda/internal/preference"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes a schedule.
type Stats struct {
	Meetings             int                  `json:"meetings"`
	Encounters           int                  `json:"encounters"`
	SlotCount            int                  `json:"slot_count"`
	SlotsUsed            int                  `json:"slots_used"`
	MeetingsPerSlot      []int                `json:"meetings_per_slot"`
	ByPhase              map[domain.Phase]int `json:"by_phase"`
	RequesterCount       int                  `json:"requester_count"`
	RequestersScheduled  int                  `json:"requesters_scheduled"`
	ProviderCount        int                  `json:"provider_count"`
	ProvidersScheduled   int                  `json:"providers_scheduled"`
	ProviderLoadMean     float64              `json:"provider_load_mean"`
	ProviderLoadStdDev   float64              `json:"provider_load_stddev"`
	RequesterLoadMean    float64              `json:"requester_load_mean"`
	RequesterLoadStdDev  float64              `json:"requester_load_stddev"`
	PreferencesTotal     int                  `json:"preferences_total"`
	PreferencesFulfilled int                  `json:"preferences_fulfilled"`
}

// FulfillmentRate is the fulfilled share of preferences, 1 when none exist.
func (s Stats) FulfillmentRate() float64 {
	if s.PreferencesTotal == 0 {
		return 1
	}
	return float64(s.PreferencesFulfilled) / float64(s.PreferencesTotal)
}

// Utilization is the share of slots holding at least one meeting.
func (s Stats) Utilization() float64 {
	if s.SlotCount == 0 {
		return 0
	}
	return float64(s.SlotsUsed) / float64(s.SlotCount)
}

// ComputeStats derives the summary from a finished schedule. Loads cover every
// roster participant, including those without meetings.
func ComputeStats(schedule *domain.Schedule, roster *domain.Roster, prefs *preference.Graph) Stats {
	st := Stats{
		Meetings:        schedule.Len(),
		Encounters:      schedule.Encounters(),
		SlotCount:       schedule.SlotCount(),
		MeetingsPerSlot: make([]int, schedule.SlotCount()),
		ByPhase:         make(map[domain.Phase]int),
		RequesterCount:  roster.RequesterCount(),
		ProviderCount:   roster.ProviderCount(),
	}
	if prefs != nil {
		st.PreferencesTotal = prefs.Total()
		st.PreferencesFulfilled = prefs.Fulfilled()
	}

	reqLoad := make(map[string]int)
	provLoad := make(map[string]int)
	for slot := 0; slot < schedule.SlotCount(); slot++ {
		ms := schedule.Meetings(slot)
		st.MeetingsPerSlot[slot] = len(ms)
		if len(ms) > 0 {
			st.SlotsUsed++
		}
		for _, m := range ms {
			st.ByPhase[m.Phase]++
			reqLoad[m.Requester]++
			for _, p := range m.Providers {
				provLoad[p]++
			}
		}
	}

	reqs := loads(roster.Requesters(), reqLoad, &st.RequestersScheduled)
	provs := loads(roster.Providers(), provLoad, &st.ProvidersScheduled)
	st.RequesterLoadMean, st.RequesterLoadStdDev = meanStdDev(reqs)
	st.ProviderLoadMean, st.ProviderLoadStdDev = meanStdDev(provs)
	return st
}

func loads(ids []string, counts map[string]int, scheduled *int) []float64 {
	out := make([]float64, len(ids))
	for i, id := range ids {
		out[i] = float64(counts[id])
		if counts[id] > 0 {
			*scheduled++
		}
	}
	return out
}

func meanStdDev(x []float64) (float64, float64) {
	if len(x) == 0 {
		return 0, 0
	}
	return stat.PopMeanStdDev(x, nil)
}
