// Package project holds the in-memory project model: projects, their pending
// changes, modules and developers.
package project

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type FileStatus int

const (
	Modified FileStatus = iota
	Added
	Deleted
)

func (s FileStatus) String() string {
	switch s {
	case Added:
		return "Added"
	case Deleted:
		return "Deleted"
	default:
		return "Modified"
	}
}

// Short is the one-letter marker used in file lists.
func (s FileStatus) Short() string {
	switch s {
	case Added:
		return "A"
	case Deleted:
		return "D"
	default:
		return "M"
	}
}

type Change struct {
	Path        string
	Status      FileStatus
	Staged      bool
	DiffPreview string
	// LocalPreview and IncomingPreview feed the merge panes; empty means
	// fall back to DiffPreview.
	LocalPreview    string
	IncomingPreview string
}

func (c Change) Local() string {
	if c.LocalPreview != "" {
		return c.LocalPreview
	}
	return c.DiffPreview
}

func (c Change) Incoming() string {
	if c.IncomingPreview != "" {
		return c.IncomingPreview
	}
	return c.DiffPreview
}

type ModuleStatus int

const (
	Pending ModuleStatus = iota
	Current
	Completed
)

var moduleStatusNames = [...]string{"Pending", "Current", "Completed"}

func (s ModuleStatus) String() string {
	if s < Pending || s > Completed {
		return "Unknown"
	}
	return moduleStatusNames[s]
}

// Next is the single forward board transition. Completed is terminal.
func (s ModuleStatus) Next() ModuleStatus {
	switch s {
	case Pending:
		return Current
	default:
		return Completed
	}
}

func (s ModuleStatus) MarshalText() ([]byte, error) {
	if s < Pending || s > Completed {
		return nil, fmt.Errorf("invalid module status %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *ModuleStatus) UnmarshalText(text []byte) error {
	parsed, ok := ParseModuleStatus(string(text))
	if !ok {
		return fmt.Errorf("unknown module status %q", string(text))
	}
	*s = parsed
	return nil
}

func ParseModuleStatus(value string) (ModuleStatus, bool) {
	for i, name := range moduleStatusNames {
		if strings.EqualFold(strings.TrimSpace(value), name) {
			return ModuleStatus(i), true
		}
	}
	return Pending, false
}

// BoardColumns lists the module statuses in board order.
var BoardColumns = []ModuleStatus{Pending, Current, Completed}

type Developer struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type Module struct {
	ID       uuid.UUID    `json:"id"`
	Name     string       `json:"name"`
	Owner    *uuid.UUID   `json:"owner,omitempty"`
	Status   ModuleStatus `json:"status"`
	Progress int          `json:"progress"`
}

type Project struct {
	ID          uuid.UUID
	Name        string
	Branch      string
	Description string
	Changes     []Change
	Modules     []Module
	Developers  []Developer
}

func (p *Project) ModuleIndex(id uuid.UUID) int {
	for i := range p.Modules {
		if p.Modules[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *Project) Developer(id uuid.UUID) (Developer, bool) {
	for _, d := range p.Developers {
		if d.ID == id {
			return d, true
		}
	}
	return Developer{}, false
}

// OwnerName returns the owning developer's name, or "" when unassigned.
func (p *Project) OwnerName(m Module) string {
	if m.Owner == nil {
		return ""
	}
	if d, ok := p.Developer(*m.Owner); ok {
		return d.Name
	}
	return ""
}

// ModulesWithStatus returns the modules in one board column, in project order.
func (p *Project) ModulesWithStatus(status ModuleStatus) []Module {
	out := make([]Module, 0, len(p.Modules))
	for _, m := range p.Modules {
		if m.Status == status {
			out = append(out, m)
		}
	}
	return out
}
