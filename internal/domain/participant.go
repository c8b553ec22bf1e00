package domain

// Participant is a role-tagged attendee. Identifiers are unique within a role.
type Participant struct {
	ID   string
	Role Role
}

// Roster holds both participant pools in load order. Order matters: it is
// the canonical tie-break order used by the scheduler.
type Roster struct {
	requesters []string
	providers  []string
	reqIndex   map[string]int
	provIndex  map[string]int
}

// NewRoster builds a roster, dropping empty and duplicate identifiers while
// keeping first-appearance order.
func NewRoster(requesters, providers []string) *Roster {
	r := &Roster{
		reqIndex:  make(map[string]int),
		provIndex: make(map[string]int),
	}
	for _, id := range requesters {
		r.Add(id, RoleRequester)
	}
	for _, id := range providers {
		r.Add(id, RoleProvider)
	}
	return r
}

// Add registers id under role. It reports whether the id was new.
func (r *Roster) Add(id string, role Role) bool {
	if id == "" {
		return false
	}
	switch role {
	case RoleRequester:
		if _, ok := r.reqIndex[id]; ok {
			return false
		}
		r.reqIndex[id] = len(r.requesters)
		r.requesters = append(r.requesters, id)
	case RoleProvider:
		if _, ok := r.provIndex[id]; ok {
			return false
		}
		r.provIndex[id] = len(r.providers)
		r.providers = append(r.providers, id)
	default:
		return false
	}
	return true
}

// Has reports whether id is registered under role.
func (r *Roster) Has(id string, role Role) bool {
	switch role {
	case RoleRequester:
		_, ok := r.reqIndex[id]
		return ok
	case RoleProvider:
		_, ok := r.provIndex[id]
		return ok
	}
	return false
}

// Position returns the load-order position of id within its role, or -1.
func (r *Roster) Position(id string, role Role) int {
	var idx map[string]int
	if role == RoleRequester {
		idx = r.reqIndex
	} else {
		idx = r.provIndex
	}
	if i, ok := idx[id]; ok {
		return i
	}
	return -1
}

// Requesters returns a copy of the requester pool in load order.
func (r *Roster) Requesters() []string {
	out := make([]string, len(r.requesters))
	copy(out, r.requesters)
	return out
}

// Providers returns a copy of the provider pool in load order.
func (r *Roster) Providers() []string {
	out := make([]string, len(r.providers))
	copy(out, r.providers)
	return out
}

func (r *Roster) RequesterCount() int { return len(r.requesters) }
func (r *Roster) ProviderCount() int  { return len(r.providers) }
