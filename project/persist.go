package project

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SidecarName is the directory beside the working copy that holds forge's
// own files. It is never part of the change list.
const SidecarName = ".forge"

const (
	projectFileName  = "project.json"
	progressFileName = "progress.json"
	fileVersion      = 1
)

type projectFile struct {
	Version  int             `json:"version"`
	Projects []projectRecord `json:"projects"`
}

type projectRecord struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Modules     []Module    `json:"modules"`
	Developers  []Developer `json:"developers"`
}

type progressFile struct {
	Version int             `json:"version"`
	Entries []progressEntry `json:"entries"`
}

type progressEntry struct {
	Project  string       `json:"project"`
	Module   string       `json:"module"`
	Status   ModuleStatus `json:"status"`
	Progress int          `json:"progress"`
}

func SidecarDir(workdir string) string {
	return filepath.Join(workdir, SidecarName)
}

// Save writes project.json and progress.json beside workdir.
func (s *Store) Save(workdir string) error {
	workdir = strings.TrimSpace(workdir)
	if workdir == "" {
		return errors.New("workdir required")
	}
	dir := SidecarDir(workdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := ensureIgnoreFile(dir); err != nil {
		return fmt.Errorf("save ignore file: %w", err)
	}

	pf := projectFile{Version: fileVersion, Projects: make([]projectRecord, 0, len(s.Projects))}
	prog := progressFile{Version: fileVersion}
	for _, p := range s.Projects {
		pf.Projects = append(pf.Projects, projectRecord{
			Name:        p.Name,
			Description: p.Description,
			Modules:     nonNil(p.Modules),
			Developers:  nonNil(p.Developers),
		})
		for _, m := range p.Modules {
			prog.Entries = append(prog.Entries, progressEntry{
				Project:  p.Name,
				Module:   m.Name,
				Status:   m.Status,
				Progress: m.Progress,
			})
		}
	}
	if err := writeJSONAtomic(filepath.Join(dir, projectFileName), pf); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	if err := writeJSONAtomic(filepath.Join(dir, progressFileName), prog); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// ensureIgnoreFile keeps the sidecar directory out of git status.
func ensureIgnoreFile(dir string) error {
	path := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte("*\n"), 0o644)
}

// Load merges the sidecar files into the store. Missing files are not an
// error. Projects are matched by name; progress is applied last.
func (s *Store) Load(workdir string) error {
	dir := SidecarDir(workdir)

	var pf projectFile
	found, err := readJSON(filepath.Join(dir, projectFileName), &pf)
	if err != nil {
		return fmt.Errorf("load project: %w", err)
	}
	if found {
		for _, rec := range pf.Projects {
			p := s.projectByName(rec.Name)
			if p == nil {
				continue
			}
			if rec.Description != "" {
				p.Description = rec.Description
			}
			p.Developers = append([]Developer(nil), rec.Developers...)
			p.Modules = append([]Module(nil), rec.Modules...)
			p.dropDanglingOwners()
		}
	}

	var prog progressFile
	found, err = readJSON(filepath.Join(dir, progressFileName), &prog)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}
	if found {
		for _, e := range prog.Entries {
			p := s.projectByName(e.Project)
			if p == nil {
				continue
			}
			for i := range p.Modules {
				if p.Modules[i].Name != e.Module {
					continue
				}
				p.Modules[i].Status = e.Status
				p.Modules[i].Progress = max(0, min(e.Progress, maxProgress))
				break
			}
		}
	}
	return nil
}

func (s *Store) projectByName(name string) *Project {
	for i := range s.Projects {
		if s.Projects[i].Name == name {
			return &s.Projects[i]
		}
	}
	return nil
}

func (p *Project) dropDanglingOwners() {
	for i := range p.Modules {
		if p.Modules[i].Owner == nil {
			continue
		}
		if _, ok := p.Developer(*p.Modules[i].Owner); !ok {
			p.Modules[i].Owner = nil
		}
	}
}

func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, err
	}
	return true, nil
}

func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	tmpPath := path + "." + randomToken() + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

func randomToken() string {
	var b [6]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "tmp"
	}
	return hex.EncodeToString(b[:])
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
