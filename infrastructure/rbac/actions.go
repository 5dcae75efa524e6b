package rbac

// Action is one row-level or page-level operation a view can offer.
// Handlers build the full action list; Gate trims it to what the session's
// screen permissions allow, so permission checks live here instead of
// being scattered through handler bodies.
type Action struct {
	Key    string
	Label  string
	Method string
	URL    string
}

// Gate returns only the actions whose key appears in the permission map.
func Gate(actions []Action, perms map[string]int) []Action {
	out := make([]Action, 0, len(actions))
	for _, a := range actions {
		if perms[a.Key] > 0 {
			out = append(out, a)
		}
	}
	return out
}

// Allowed reports whether a single named capability is granted.
func Allowed(perms map[string]int, key string) bool {
	return perms[key] > 0
}
