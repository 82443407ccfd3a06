package project

import (
	"strings"

	"github.com/google/uuid"
)

const (
	commitProgressStep = 5
	maxProgress        = 100
)

// Store owns every project. It is mutated only from the UI goroutine.
type Store struct {
	Projects []Project
}

func NewStore(projects ...Project) *Store {
	return &Store{Projects: projects}
}

func (s *Store) Project(idx int) *Project {
	if s == nil || idx < 0 || idx >= len(s.Projects) {
		return nil
	}
	return &s.Projects[idx]
}

func (s *Store) AddModule(projectIdx int, name string) (uuid.UUID, bool) {
	p := s.Project(projectIdx)
	name = strings.TrimSpace(name)
	if p == nil || name == "" {
		return uuid.Nil, false
	}
	m := Module{ID: uuid.New(), Name: name, Status: Pending}
	p.Modules = append(p.Modules, m)
	return m.ID, true
}

func (s *Store) UpdateModule(projectIdx int, moduleID uuid.UUID, name string) bool {
	p := s.Project(projectIdx)
	name = strings.TrimSpace(name)
	if p == nil || name == "" {
		return false
	}
	i := p.ModuleIndex(moduleID)
	if i < 0 {
		return false
	}
	p.Modules[i].Name = name
	return true
}

func (s *Store) DeleteModule(projectIdx int, moduleID uuid.UUID) bool {
	p := s.Project(projectIdx)
	if p == nil {
		return false
	}
	i := p.ModuleIndex(moduleID)
	if i < 0 {
		return false
	}
	p.Modules = append(p.Modules[:i], p.Modules[i+1:]...)
	return true
}

// AssignOwner sets or clears (developerID == nil) a module's owner. The
// developer must belong to the same project.
func (s *Store) AssignOwner(projectIdx int, moduleID uuid.UUID, developerID *uuid.UUID) bool {
	p := s.Project(projectIdx)
	if p == nil {
		return false
	}
	i := p.ModuleIndex(moduleID)
	if i < 0 {
		return false
	}
	if developerID == nil {
		p.Modules[i].Owner = nil
		return true
	}
	if _, ok := p.Developer(*developerID); !ok {
		return false
	}
	id := *developerID
	p.Modules[i].Owner = &id
	return true
}

func (s *Store) SetModuleStatus(projectIdx int, moduleID uuid.UUID, status ModuleStatus) bool {
	p := s.Project(projectIdx)
	if p == nil {
		return false
	}
	i := p.ModuleIndex(moduleID)
	if i < 0 {
		return false
	}
	p.Modules[i].Status = status
	return true
}

// AdvanceModule moves a module one step along Pending→Current→Completed.
// changed is false when the module was already Completed or missing.
func (s *Store) AdvanceModule(projectIdx int, moduleID uuid.UUID) (ModuleStatus, bool) {
	p := s.Project(projectIdx)
	if p == nil {
		return Pending, false
	}
	i := p.ModuleIndex(moduleID)
	if i < 0 {
		return Pending, false
	}
	old := p.Modules[i].Status
	next := old.Next()
	p.Modules[i].Status = next
	return next, next != old
}

func (s *Store) AddDeveloper(projectIdx int, name string) (uuid.UUID, bool) {
	p := s.Project(projectIdx)
	name = strings.TrimSpace(name)
	if p == nil || name == "" {
		return uuid.Nil, false
	}
	d := Developer{ID: uuid.New(), Name: name}
	p.Developers = append(p.Developers, d)
	return d.ID, true
}

// DeleteDeveloper removes a developer and unassigns every module it owned.
func (s *Store) DeleteDeveloper(projectIdx int, developerID uuid.UUID) bool {
	p := s.Project(projectIdx)
	if p == nil {
		return false
	}
	removed := false
	kept := p.Developers[:0]
	for _, d := range p.Developers {
		if d.ID == developerID {
			removed = true
			continue
		}
		kept = append(kept, d)
	}
	p.Developers = kept
	for i := range p.Modules {
		if p.Modules[i].Owner != nil && *p.Modules[i].Owner == developerID {
			p.Modules[i].Owner = nil
		}
	}
	return removed
}

// AutoPopulateDevelopers adds a developer for each committer name not
// already present. Running it twice with the same names is a no-op.
func (s *Store) AutoPopulateDevelopers(projectIdx int, names []string) int {
	p := s.Project(projectIdx)
	if p == nil {
		return 0
	}
	known := make(map[string]struct{}, len(p.Developers))
	for _, d := range p.Developers {
		known[d.Name] = struct{}{}
	}
	added := 0
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, ok := known[name]; ok {
			continue
		}
		known[name] = struct{}{}
		p.Developers = append(p.Developers, Developer{ID: uuid.New(), Name: name})
		added++
	}
	return added
}

// BumpProgressOnCommit raises the first Current module's progress by 5,
// capped at 100. It returns the module index touched, or -1.
func (s *Store) BumpProgressOnCommit(projectIdx int) int {
	p := s.Project(projectIdx)
	if p == nil {
		return -1
	}
	for i := range p.Modules {
		if p.Modules[i].Status != Current {
			continue
		}
		p.Modules[i].Progress = min(p.Modules[i].Progress+commitProgressStep, maxProgress)
		return i
	}
	return -1
}

// FilterByName returns the indices of projects whose name contains query,
// case-insensitively. An empty query matches everything.
func (s *Store) FilterByName(query string) []int {
	if s == nil {
		return nil
	}
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]int, 0, len(s.Projects))
	for i, p := range s.Projects {
		if query == "" || strings.Contains(strings.ToLower(p.Name), query) {
			out = append(out, i)
		}
	}
	return out
}
