package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/moodk/moodk/internal/locale"
)

//go:embed catalog.yaml
var defaultDocument []byte

type labels map[string]string

func (l labels) get(lang locale.Language) string {
	if v, ok := l[string(lang)]; ok && v != "" {
		return v
	}
	return l[string(locale.English)]
}

type moodEntry struct {
	Mood   `yaml:",inline"`
	Labels labels `yaml:"labels"`
}

type regionEntry struct {
	Region    `yaml:",inline"`
	Labels    labels `yaml:"labels"`
	SubLabels labels `yaml:"sub_labels"`
}

type timeEntry struct {
	TimeBudget `yaml:",inline"`
	Labels     labels `yaml:"labels"`
	SubLabels  labels `yaml:"sub_labels"`
}

type document struct {
	Moods   []moodEntry            `yaml:"moods"`
	Regions []regionEntry          `yaml:"regions"`
	Times   map[string][]timeEntry `yaml:"times"`
}

// Catalog holds the fixed wizard options.
type Catalog struct {
	moods   []moodEntry
	regions []regionEntry
	times   map[MediaKind][]timeEntry
}

// Load parses a catalogue document.
func Load(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{
		moods:   doc.Moods,
		regions: doc.Regions,
		times:   make(map[MediaKind][]timeEntry, len(doc.Times)),
	}
	for k, entries := range doc.Times {
		kind, err := ParseMediaKind(k)
		if err != nil {
			return nil, fmt.Errorf("catalog times: %q: %w", k, err)
		}
		c.times[kind] = entries
	}

	return c, nil
}

// Default returns the embedded catalogue.
func Default() *Catalog {
	c, err := Load(defaultDocument)
	if err != nil {
		panic(err)
	}
	return c
}

// Moods returns all moods localized to lang.
func (c *Catalog) Moods(lang locale.Language) []Mood {
	out := make([]Mood, len(c.moods))
	for i, e := range c.moods {
		out[i] = e.localize(lang)
	}
	return out
}

// Regions returns all regions localized to lang.
func (c *Catalog) Regions(lang locale.Language) []Region {
	out := make([]Region, len(c.regions))
	for i, e := range c.regions {
		out[i] = e.localize(lang)
	}
	return out
}

// Times returns the time budgets offered for kind.
func (c *Catalog) Times(kind MediaKind, lang locale.Language) []TimeBudget {
	entries := c.times[kind]
	out := make([]TimeBudget, len(entries))
	for i, e := range entries {
		out[i] = e.localize(lang)
	}
	return out
}

// Mood looks up a mood by id.
func (c *Catalog) Mood(id string, lang locale.Language) (Mood, bool) {
	for _, e := range c.moods {
		if e.ID == id {
			return e.localize(lang), true
		}
	}
	return Mood{}, false
}

// Region looks up a region by id.
func (c *Catalog) Region(id string, lang locale.Language) (Region, bool) {
	for _, e := range c.regions {
		if e.ID == id {
			return e.localize(lang), true
		}
	}
	return Region{}, false
}

// Time looks up a time budget for kind by id.
func (c *Catalog) Time(kind MediaKind, id string, lang locale.Language) (TimeBudget, bool) {
	for _, e := range c.times[kind] {
		if e.ID == id {
			return e.localize(lang), true
		}
	}
	return TimeBudget{}, false
}

// Criteria assembles a SelectionCriteria from option ids. Empty ids are
// treated as "not selected".
func (c *Catalog) Criteria(kind MediaKind, moodID, regionID, timeID string, lang locale.Language) (SelectionCriteria, error) {
	if !kind.Valid() {
		return SelectionCriteria{}, ErrInvalidMediaKind
	}

	criteria := SelectionCriteria{MediaKind: kind}

	if moodID != "" {
		m, ok := c.Mood(moodID, lang)
		if !ok {
			return SelectionCriteria{}, fmt.Errorf("%w: mood %q", ErrUnknownOption, moodID)
		}
		criteria.Mood = &m
	}

	if regionID != "" {
		r, ok := c.Region(regionID, lang)
		if !ok {
			return SelectionCriteria{}, fmt.Errorf("%w: region %q", ErrUnknownOption, regionID)
		}
		criteria.Region = &r
	}

	if timeID != "" {
		t, ok := c.Time(kind, timeID, lang)
		if !ok {
			return SelectionCriteria{}, fmt.Errorf("%w: time %q for %s", ErrUnknownOption, timeID, kind)
		}
		criteria.Time = &t
	}

	return criteria, nil
}

func (e moodEntry) localize(lang locale.Language) Mood {
	m := e.Mood
	m.Label = e.Labels.get(lang)
	m.GenreIDs = make([]int, len(e.GenreIDs))
	copy(m.GenreIDs, e.GenreIDs)
	return m
}

func (e regionEntry) localize(lang locale.Language) Region {
	r := e.Region
	r.Label = e.Labels.get(lang)
	r.SubLabel = e.SubLabels.get(lang)
	r.Languages = append([]string(nil), e.Languages...)
	r.Countries = append([]string(nil), e.Countries...)
	r.ExtraGenres = append([]int(nil), e.ExtraGenres...)
	return r
}

func (e timeEntry) localize(lang locale.Language) TimeBudget {
	t := e.TimeBudget
	t.Label = e.Labels.get(lang)
	t.SubLabel = e.SubLabels.get(lang)
	if e.MinMinutes != nil {
		v := *e.MinMinutes
		t.MinMinutes = &v
	}
	if e.MaxMinutes != nil {
		v := *e.MaxMinutes
		t.MaxMinutes = &v
	}
	return t
}
