package cache

import (
	"sort"
	"sync"
)

// Resource is one route a role may call, identified by a stable code the
// views use to gate buttons and links.
type Resource struct {
	UserResourceCode string
	Path             string
	Method           string
	Role             string
}

// RbacRolesCache indexes registered resources by role. Registration
// happens once during route setup; afterwards it is read-only.
type RbacRolesCache struct {
	mu     sync.RWMutex
	byRole map[string][]Resource
	codes  map[string]bool
}

func NewRbacRolesCache() *RbacRolesCache {
	return &RbacRolesCache{
		byRole: make(map[string][]Resource),
		codes:  make(map[string]bool),
	}
}

func (c *RbacRolesCache) Add(role string, r Resource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byRole[role] = append(c.byRole[role], r)
	c.codes[r.UserResourceCode] = true
}

// GetRolesAndResources returns the union of resources across roles.
func (c *RbacRolesCache) GetRolesAndResources(roles []string) []Resource {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []Resource
	for _, role := range roles {
		out = append(out, c.byRole[role]...)
	}
	return out
}

// GetAllRouteNames returns every registered resource code as a permission
// map; handed to admin sessions, which skip per-route validation.
func (c *RbacRolesCache) GetAllRouteNames() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]int, len(c.codes))
	for code := range c.codes {
		out[code] = 1
	}
	return out
}

// RouteNamesSorted lists the registered codes in stable order.
func (c *RbacRolesCache) RouteNamesSorted() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.codes))
	for name := range c.codes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
