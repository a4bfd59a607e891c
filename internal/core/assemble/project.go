package assemble

import (
	"errors"
	"fmt"

	"github.com/compose-spec/compose-go/v2/types"
)

// =============================================================================
// Service Set
// =============================================================================

// ErrDuplicateService means two service definitions claimed the same name.
var ErrDuplicateService = errors.New("duplicate service name")

// ServiceSet accumulates service definitions in insertion order and
// rejects duplicate names. The deployment document is built from a set,
// never from an ad hoc map, so name collisions fail at compile time.
type ServiceSet struct {
	order    []string
	services map[string]types.ServiceConfig
}

// NewServiceSet returns an empty set.
func NewServiceSet() *ServiceSet {
	return &ServiceSet{services: make(map[string]types.ServiceConfig)}
}

// Add appends a service, failing on a name collision.
func (s *ServiceSet) Add(svc types.ServiceConfig) error {
	if _, exists := s.services[svc.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateService, svc.Name)
	}
	s.order = append(s.order, svc.Name)
	s.services[svc.Name] = svc
	return nil
}

// Len returns the number of services in the set.
func (s *ServiceSet) Len() int { return len(s.order) }

// Names returns the service names in insertion order.
func (s *ServiceSet) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Get returns the named service definition.
func (s *ServiceSet) Get(name string) (types.ServiceConfig, bool) {
	svc, ok := s.services[name]
	return svc, ok
}

// =============================================================================
// Project Assembly
// =============================================================================

// Project wraps the accumulated services into the final deployment
// specification: one network carrying the subnet, the grafana volume,
// and every service in the set.
func Project(set *ServiceSet, networkName, subnet string) *types.Project {
	services := make(types.Services, set.Len())
	for name, svc := range set.services {
		services[name] = svc
	}
	return &types.Project{
		Name:     networkName,
		Services: services,
		Volumes: types.Volumes{
			GrafanaVolume: types.VolumeConfig{},
		},
		Networks: types.Networks{
			networkName: types.NetworkConfig{
				Name: networkName,
				Ipam: types.IPAMConfig{
					Config: []*types.IPAMPool{
						{Subnet: subnet},
					},
				},
			},
		},
	}
}
