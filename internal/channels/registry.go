package channels

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"uploadnotify/internal/config"
)

// Channel is a registered notification channel.
type Channel struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Importance string `json:"importance"`
}

// Registry is a concurrency-safe set of channels keyed by id.
type Registry struct {
	mu       sync.RWMutex
	channels map[string]Channel
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{channels: make(map[string]Channel)}
}

// FromConfig registers every channel declared in cfg.
func FromConfig(cfg *config.Config) (*Registry, error) {
	r := NewRegistry()
	if cfg == nil {
		return r, nil
	}
	for _, ch := range cfg.Channels {
		if err := r.Register(Channel{ID: ch.ID, Name: ch.Name, Importance: ch.Importance}); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds ch. Registering an id again replaces its name and importance.
func (r *Registry) Register(ch Channel) error {
	ch.ID = strings.TrimSpace(ch.ID)
	if ch.ID == "" {
		return fmt.Errorf("register channel: id must be set")
	}
	if ch.Name == "" {
		ch.Name = ch.ID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels[ch.ID] = ch
	return nil
}

// ChannelExists reports whether id has been registered.
func (r *Registry) ChannelExists(id string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.channels[id]
	return ok
}

// List returns the registered channels sorted by id.
func (r *Registry) List() []Channel {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	out := make([]Channel, 0, len(r.channels))
	for _, ch := range r.channels {
		out = append(out, ch)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
