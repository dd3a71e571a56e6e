// Package seeder generates synthetic story snapshots for demos and load
// testing. Snapshots mix independent stories with deliberately correlated
// groups so every analysis pass has something to find.
package seeder

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/crosswatch-systems/crosswatch/internal/models"
)

var (
	regions    = []string{"gulf", "pacific-nw", "northeast", "midwest", "alps", "baltic"}
	categories = []string{"industrial", "transport", "supply", "weather", "security", "energy"}
	keywords   = []string{
		"fire", "strike", "flood", "outage", "shortage", "closure",
		"protest", "spill", "storm", "recall", "breach", "delay",
	}
)

// Seeder generates story snapshots from a deterministic seed.
type Seeder struct {
	faker *gofakeit.Faker
}

// New creates a seeder. The same seed yields the same snapshot.
func New(seed uint64) *Seeder {
	return &Seeder{faker: gofakeit.New(int64(seed))}
}

// Generate produces count stories spread over the 72 hours before now.
func (s *Seeder) Generate(count int) []models.Event {
	return s.GenerateAt(count, time.Now().UTC())
}

// GenerateAt produces count stories spread over the 72 hours before the
// anchor. Roughly a third are grouped into correlated triples sharing
// keywords, region, nearby coordinates, and a regular time cadence; the rest
// are independent noise.
func (s *Seeder) GenerateAt(count int, anchor time.Time) []models.Event {
	if count <= 0 {
		return nil
	}

	base := anchor.Add(-72 * time.Hour)
	stories := make([]models.Event, 0, count)

	grouped := count / 3
	for len(stories) < grouped {
		group := s.correlatedGroup(len(stories), base)
		stories = append(stories, group...)
	}
	for i := len(stories); i < count; i++ {
		stories = append(stories, s.randomStory(i, base))
	}

	return stories[:count]
}

// correlatedGroup emits three stories in one region, 24h apart, within a few
// kilometers of a shared anchor, with two shared keywords.
func (s *Seeder) correlatedGroup(offset int, base time.Time) []models.Event {
	region := s.pick(regions)
	first := s.pick(keywords)
	second := s.pick(keywords)
	for second == first {
		second = s.pick(keywords)
	}
	shared := []string{first, second}
	anchorLat := s.faker.Float64Range(-60, 60)
	anchorLon := s.faker.Float64Range(-170, 170)
	start := base.Add(time.Duration(s.faker.IntRange(0, 12)) * time.Hour)

	group := make([]models.Event, 0, 3)
	for i := 0; i < 3; i++ {
		lat := anchorLat + s.faker.Float64Range(-0.05, 0.05)
		lon := anchorLon + s.faker.Float64Range(-0.05, 0.05)
		group = append(group, models.Event{
			ID:        fmt.Sprintf("seed-%04d", offset+i),
			Title:     s.faker.Sentence(4),
			Timestamp: start.Add(time.Duration(i) * 24 * time.Hour),
			Latitude:  &lat,
			Longitude: &lon,
			Region:    region,
			Category:  s.pick(categories),
			Source:    s.faker.Company(),
			Keywords:  append([]string{}, shared...),
		})
	}
	return group
}

func (s *Seeder) randomStory(offset int, base time.Time) models.Event {
	story := models.Event{
		ID:        fmt.Sprintf("seed-%04d", offset),
		Title:     s.faker.Sentence(4),
		Timestamp: base.Add(time.Duration(s.faker.IntRange(0, 72*60)) * time.Minute),
		Region:    s.pick(regions),
		Category:  s.pick(categories),
		Source:    s.faker.Company(),
		Keywords:  []string{s.pick(keywords)},
	}
	// Most noise stories carry coordinates; some are location-free.
	if s.faker.IntRange(0, 9) < 7 {
		lat := s.faker.Float64Range(-60, 60)
		lon := s.faker.Float64Range(-170, 170)
		story.Latitude = &lat
		story.Longitude = &lon
	}
	return story
}

func (s *Seeder) pick(options []string) string {
	return options[s.faker.IntRange(0, len(options)-1)]
}
