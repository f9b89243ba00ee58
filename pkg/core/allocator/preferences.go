package allocator

import (
	"strings"

	"github.com/jakechorley/trip-rooms/pkg/core/model"
)

// ChoiceDelimiter separates roommate names in the raw choices field
const ChoiceDelimiter = ";"

// ParseChoices splits a raw choices field into trimmed, non-empty names.
// Order is preserved since it is the pupil's ranking.
func ParseChoices(raw string) []string {
	choices := []string{}
	for _, part := range strings.Split(raw, ChoiceDelimiter) {
		name := strings.TrimSpace(part)
		if name != "" {
			choices = append(choices, name)
		}
	}
	return choices
}

// Preferences maps each pupil to their ordered list of desired roommates.
//
// Pupils are kept in insertion order, which every allocator uses as its
// iteration order so results are reproducible for the same roster.
// Names in a choice list that are not themselves pupils are kept but can
// never be matched.
type Preferences struct {
	names   []string
	choices map[string][]string
	lookup  map[string]map[string]int // pupil -> chosen name -> 1-based rank
}

// NewPreferences creates an empty preference mapping
func NewPreferences() *Preferences {
	return &Preferences{
		choices: make(map[string][]string),
		lookup:  make(map[string]map[string]int),
	}
}

// PreferencesFromPupils parses the raw choices of each pupil
func PreferencesFromPupils(pupils []model.Pupil) *Preferences {
	prefs := NewPreferences()
	for _, p := range pupils {
		prefs.Add(p.Name, ParseChoices(p.RawChoices))
	}
	return prefs
}

// Add sets the choices for a pupil. Adding an existing pupil replaces its
// choices without changing its position.
func (p *Preferences) Add(name string, choices []string) {
	if _, exists := p.choices[name]; !exists {
		p.names = append(p.names, name)
	}

	list := make([]string, len(choices))
	copy(list, choices)
	p.choices[name] = list

	ranks := make(map[string]int, len(list))
	for i, c := range list {
		if _, seen := ranks[c]; !seen {
			ranks[c] = i + 1
		}
	}
	p.lookup[name] = ranks
}

// Names returns pupils in insertion order
func (p *Preferences) Names() []string {
	return p.names
}

// Len returns the number of pupils
func (p *Preferences) Len() int {
	return len(p.names)
}

// Has reports whether name is a pupil (a key of the mapping)
func (p *Preferences) Has(name string) bool {
	_, ok := p.choices[name]
	return ok
}

// Choices returns the ordered choices of a pupil
func (p *Preferences) Choices(name string) []string {
	return p.choices[name]
}

// Lists reports whether pupil a listed b
func (p *Preferences) Lists(a, b string) bool {
	_, ok := p.lookup[a][b]
	return ok
}

// Rank returns the 1-based position of b in a's list, or 0 if a did not list b
func (p *Preferences) Rank(a, b string) int {
	return p.lookup[a][b]
}

// Inbound returns, for each pupil, the set of pupils who listed them.
// Only pupils that are keys are counted on either side.
func (p *Preferences) Inbound() map[string]map[string]bool {
	incoming := make(map[string]map[string]bool, len(p.names))
	for _, a := range p.names {
		for _, b := range p.choices[a] {
			if !p.Has(b) {
				continue
			}
			if incoming[b] == nil {
				incoming[b] = make(map[string]bool)
			}
			incoming[b][a] = true
		}
	}
	return incoming
}
