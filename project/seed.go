package project

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// New builds a project for the repository at workdir with a starter set of
// modules.
func New(workdir string, branch string) Project {
	name := strings.TrimSpace(filepath.Base(workdir))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "forge"
	}
	if strings.TrimSpace(branch) == "" {
		branch = "main"
	}
	return Project{
		ID:          uuid.New(),
		Name:        name,
		Branch:      branch,
		Description: "Working copy at " + workdir,
		Modules:     starterModules(),
	}
}

// Demo is the project shown when no Git repository was found. Its change
// list is static so the Changes and Merge views have something to show.
func Demo() Project {
	dev := Developer{ID: uuid.New(), Name: "Forge"}
	modules := starterModules()
	owner := dev.ID
	modules[0].Owner = &owner
	return Project{
		ID:          uuid.New(),
		Name:        "demo",
		Branch:      "main",
		Description: "Sample project (no Git repository detected)",
		Developers:  []Developer{dev},
		Modules:     modules,
		Changes: []Change{
			{
				Path:            "src/main.go",
				Status:          Modified,
				DiffPreview:     "@@ -1,3 +1,4 @@\n package main\n+import \"fmt\"\n",
				LocalPreview:    "func main() {\n\tfmt.Println(\"local\")\n}\n",
				IncomingPreview: "func main() {\n\tfmt.Println(\"incoming\")\n}\n",
			},
			{
				Path:        "README.md",
				Status:      Added,
				DiffPreview: "@@ -0,0 +1 @@\n+# demo\n",
			},
			{
				Path:        "old/legacy.txt",
				Status:      Deleted,
				DiffPreview: "@@ -1 +0,0 @@\n-legacy\n",
			},
		},
	}
}

func starterModules() []Module {
	return []Module{
		{ID: uuid.New(), Name: "Core", Status: Current, Progress: 10},
		{ID: uuid.New(), Name: "Interface", Status: Pending},
		{ID: uuid.New(), Name: "Setup", Status: Completed, Progress: 100},
	}
}
