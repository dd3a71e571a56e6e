// Package webhook delivers signed event notifications to registered
// subscriber URLs. Delivery failures are logged, never retried, and never
// block other subscribers.
package webhook

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Subscriber is one registered webhook endpoint.
type Subscriber struct {
	ID     string   `yaml:"id"`
	URL    string   `yaml:"url"`
	Secret string   `yaml:"secret"`
	Events []string `yaml:"events"`
}

// Registry holds the subscriber set, keyed by subscriber ID. It is built
// once at startup and passed by reference; there is no process-wide
// singleton.
type Registry struct {
	subscribers map[string]Subscriber
}

type registryFile struct {
	Subscribers []Subscriber `yaml:"subscribers"`
}

// NewRegistry builds a registry from an explicit subscriber list.
func NewRegistry(subscribers []Subscriber) (*Registry, error) {
	byID := make(map[string]Subscriber, len(subscribers))
	for _, sub := range subscribers {
		if sub.ID == "" || sub.URL == "" {
			return nil, fmt.Errorf("subscriber requires id and url (id=%q)", sub.ID)
		}
		if _, exists := byID[sub.ID]; exists {
			return nil, fmt.Errorf("duplicate subscriber id: %s", sub.ID)
		}
		byID[sub.ID] = sub
	}
	return &Registry{subscribers: byID}, nil
}

// LoadRegistry reads a subscriber registry from a YAML file.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read webhook registry: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse webhook registry: %w", err)
	}

	return NewRegistry(file.Subscribers)
}

// Matching returns the subscribers subscribed to the named event.
func (r *Registry) Matching(event string) []Subscriber {
	var matched []Subscriber
	for _, sub := range r.subscribers {
		for _, name := range sub.Events {
			if name == event {
				matched = append(matched, sub)
				break
			}
		}
	}
	return matched
}

// Len returns the number of registered subscribers.
func (r *Registry) Len() int {
	return len(r.subscribers)
}
