package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mrbonezy/forge/app"
	"github.com/mrbonezy/forge/gitclient"
	"github.com/mrbonezy/forge/ui"
)

func runStatus(w io.Writer, dir string) error {
	client, err := gitclient.Discover(dir)
	if err != nil {
		return errors.New(gitclient.ExplainError(err))
	}
	store := app.LoadStore(client)
	p := store.Project(0)

	branch, ok := client.HeadBranch()
	if !ok {
		branch = "(detached)"
	}
	staged := 0
	for _, c := range p.Changes {
		if c.Staged {
			staged++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Repository: %s\n", client.Workdir())
	fmt.Fprintf(&b, "Branch:     %s\n", branch)
	fmt.Fprintf(&b, "Changes:    %d (%d staged)\n", len(p.Changes), staged)
	for _, c := range p.Changes {
		marker := " "
		if c.Staged {
			marker = "+"
		}
		fmt.Fprintf(&b, "  %s%s %s\n", c.Status.Short(), marker, c.Path)
	}
	if len(p.Modules) > 0 {
		b.WriteString("Modules:\n")
	}
	for _, m := range p.Modules {
		owner := p.OwnerName(m)
		if owner == "" {
			owner = "-"
		}
		fmt.Fprintf(&b, "  %s %s %s %3d%%\n",
			ui.PadOrTrim(m.Name, 20),
			ui.PadOrTrim(m.Status.String(), 10),
			ui.PadOrTrim(owner, 16),
			m.Progress)
	}
	_, err = io.WriteString(w, b.String())
	return err
}
