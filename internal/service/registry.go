// Package service manages provider registration, discovery and tool
// execution.
package service

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/alejandrogranizo/tractusx-sdk/internal/types"
)

// Provider is implemented by every service backend.
type Provider interface {
	Definition() types.Service
	Execute(toolID string, params map[string]interface{}, ctx *types.Context) (*types.Result, error)
}

// Registry manages service discovery and execution.
type Registry struct {
	services sync.Map
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a provider under its definition ID.
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return fmt.Errorf("service ID cannot be empty")
	}
	r.services.Store(def.ID, provider)
	return nil
}

// Unregister removes a provider.
func (r *Registry) Unregister(serviceID string) {
	r.services.Delete(serviceID)
}

// Get retrieves a provider by ID.
func (r *Registry) Get(serviceID string) (Provider, bool) {
	val, ok := r.services.Load(serviceID)
	if !ok {
		return nil, false
	}
	return val.(Provider), true
}

// List returns all registered service definitions, optionally filtered
// by category.
func (r *Registry) List(category *types.Category) []types.Service {
	var services []types.Service
	r.services.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		if category == nil || def.Category == *category {
			services = append(services, def)
		}
		return true
	})
	sort.Slice(services, func(i, j int) bool { return services[i].ID < services[j].ID })
	return services
}

// Discover ranks services by relevance to a free-form intent and
// returns the top matches.
func (r *Registry) Discover(intent string, limit int) []types.Service {
	type scored struct {
		service types.Service
		score   float64
	}

	intentLower := strings.ToLower(intent)
	var results []scored

	r.services.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		if score := relevance(intentLower, def); score > 0 {
			results = append(results, scored{service: def, score: score})
		}
		return true
	})

	sort.Slice(results, func(i, j int) bool { return results[i].score > results[j].score })

	out := make([]types.Service, 0, limit)
	for i := 0; i < len(results) && i < limit; i++ {
		out = append(out, results[i].service)
	}
	return out
}

// Execute dispatches a tool call to the owning provider. Tool IDs are
// "<service>.<tool>".
func (r *Registry) Execute(toolID string, params map[string]interface{}, ctx *types.Context) (*types.Result, error) {
	parts := strings.SplitN(toolID, ".", 2)
	if len(parts) < 2 {
		return failure("invalid tool ID format"), fmt.Errorf("invalid tool ID format: %s", toolID)
	}

	provider, ok := r.Get(parts[0])
	if !ok {
		return failure(fmt.Sprintf("service not found: %s", parts[0])), fmt.Errorf("service not found: %s", parts[0])
	}
	return provider.Execute(toolID, params, ctx)
}

// Stats returns registry statistics.
func (r *Registry) Stats() map[string]interface{} {
	var total, totalTools int
	categories := make(map[string]int)

	r.services.Range(func(_, value interface{}) bool {
		def := value.(Provider).Definition()
		total++
		totalTools += len(def.Tools)
		categories[string(def.Category)]++
		return true
	})

	return map[string]interface{}{
		"total_services": total,
		"total_tools":    totalTools,
		"categories":     categories,
	}
}

func relevance(intent string, service types.Service) float64 {
	score := 0.0
	if strings.Contains(intent, service.ID) || strings.Contains(intent, strings.ToLower(service.Name)) {
		score += 10.0
	}
	for _, word := range strings.Fields(strings.ToLower(service.Description)) {
		if strings.Contains(intent, word) {
			score += 5.0
		}
	}
	for _, cap := range service.Capabilities {
		if strings.Contains(intent, strings.ReplaceAll(strings.ToLower(cap), "_", " ")) {
			score += 3.0
		}
	}
	if strings.Contains(intent, string(service.Category)) {
		score += 2.0
	}
	return score
}

func failure(message string) *types.Result {
	return &types.Result{Success: false, Error: &message}
}
