package model

import (
	"slices"
	"strings"
)

// Row is one raw tabular record keyed by header name.
type Row map[string]string

// Get returns the trimmed value for key, or "" when missing.
func (r Row) Get(key string) string { return strings.TrimSpace(r[key]) }

// RawSnapshot is the untyped input handed over by the sync layer.
type RawSnapshot struct {
	Pilots   []Row `json:"pilots"`
	Drones   []Row `json:"drones"`
	Missions []Row `json:"missions"`
}

// Snapshot is an immutable point-in-time view of pilots, drones and missions.
// Callers must treat the returned slices as read-only.
type Snapshot struct {
	pilots   []Pilot
	drones   []Drone
	missions []Mission

	pilotIdx   map[string]int
	droneIdx   map[string]int
	missionIdx map[string]int
}

// NewSnapshot indexes the records by id. On duplicate ids the first record wins.
func NewSnapshot(pilots []Pilot, drones []Drone, missions []Mission) *Snapshot {
	s := &Snapshot{
		pilots:     slices.Clone(pilots),
		drones:     slices.Clone(drones),
		missions:   slices.Clone(missions),
		pilotIdx:   make(map[string]int, len(pilots)),
		droneIdx:   make(map[string]int, len(drones)),
		missionIdx: make(map[string]int, len(missions)),
	}
	for i, p := range s.pilots {
		if _, ok := s.pilotIdx[p.ID]; !ok {
			s.pilotIdx[p.ID] = i
		}
	}
	for i, d := range s.drones {
		if _, ok := s.droneIdx[d.ID]; !ok {
			s.droneIdx[d.ID] = i
		}
	}
	for i, m := range s.missions {
		if _, ok := s.missionIdx[m.ID]; !ok {
			s.missionIdx[m.ID] = i
		}
	}
	return s
}

func (s *Snapshot) Pilots() []Pilot     { return s.pilots }
func (s *Snapshot) Drones() []Drone     { return s.drones }
func (s *Snapshot) Missions() []Mission { return s.missions }

func (s *Snapshot) Pilot(id string) (Pilot, bool) {
	i, ok := s.pilotIdx[id]
	if !ok {
		return Pilot{}, false
	}
	return s.pilots[i], true
}

func (s *Snapshot) Drone(id string) (Drone, bool) {
	i, ok := s.droneIdx[id]
	if !ok {
		return Drone{}, false
	}
	return s.drones[i], true
}

func (s *Snapshot) Mission(id string) (Mission, bool) {
	i, ok := s.missionIdx[id]
	if !ok {
		return Mission{}, false
	}
	return s.missions[i], true
}

// Resources returns pilots followed by drones.
func (s *Snapshot) Resources() []Resource {
	out := make([]Resource, 0, len(s.pilots)+len(s.drones))
	for _, p := range s.pilots {
		out = append(out, p)
	}
	for _, d := range s.drones {
		out = append(out, d)
	}
	return out
}

// AssignedPilots returns the pilots linked to mission m, ordered by pilot id.
func (s *Snapshot) AssignedPilots(m Mission) []Pilot {
	var out []Pilot
	for _, p := range s.pilots {
		if m.LinkedTo(p) {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b Pilot) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// AssignedDrones returns the drones linked to mission m, ordered by drone id.
func (s *Snapshot) AssignedDrones(m Mission) []Drone {
	var out []Drone
	for _, d := range s.drones {
		if m.LinkedTo(d) {
			out = append(out, d)
		}
	}
	slices.SortFunc(out, func(a, b Drone) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// LinkedMissions returns every mission r is tied to, ordered by mission id.
func (s *Snapshot) LinkedMissions(r Resource) []Mission {
	var out []Mission
	for _, m := range s.missions {
		if m.LinkedTo(r) {
			out = append(out, m)
		}
	}
	slices.SortFunc(out, func(a, b Mission) int { return strings.Compare(a.ID, b.ID) })
	return out
}
