// Package catalog holds the set of bookable services. The catalog is loaded
// once at startup from a JSON file and consulted when workers publish their
// profiles and when customers create bookings.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	BaseRate    float64 `json:"base_rate"`
}

type servicesFile struct {
	Services []Service `json:"services"`
}

type Catalog struct {
	mu       sync.RWMutex
	services map[string]*Service
}

func New() *Catalog {
	return &Catalog{services: make(map[string]*Service)}
}

func LoadFromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read services config: %w", err)
	}

	var file servicesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse services config: %w", err)
	}

	c := New()
	for i := range file.Services {
		c.Register(&file.Services[i])
	}
	return c, nil
}

func (c *Catalog) Register(s *Service) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[s.ID] = s
}

func (c *Catalog) Get(id string) *Service {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.services[id]
}

func (c *Catalog) Exists(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.services[id]
	return ok
}

func (c *Catalog) All() []*Service {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]*Service, 0, len(c.services))
	for _, s := range c.services {
		result = append(result, s)
	}
	return result
}
