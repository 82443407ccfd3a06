package app

// Context is the read-only projection of State the reducer decides on. It
// is passed by value.
type Context struct {
	Focus        Focus
	View         View
	ShowHelp     bool
	SearchActive bool
	MenuIndex    int
	HasGitClient bool
	Remote       string

	ProjectIndex   int
	ProjectCount   int
	ChangeIndex    int
	ChangeCount    int
	CommitIndex    int
	CommitCount    int
	BranchIndex    int
	BranchCount    int
	MergeFileIndex int
	MergeFileCount int
	MergeFocus     MergeFocus
	BoardColumn    int
	BoardItem      int
	BoardColumnLen int
	ModuleIndex    int
	ModuleCount    int
	DeveloperIndex int
	DeveloperCount int
	SettingIndex   int
	SettingCount   int

	CommitMessageEmpty bool
	BranchInputEmpty   bool
	ModuleInputEmpty   bool

	BranchMode BranchMode
	ModuleMode ModuleMode

	// PaneRatio belongs to the active view; zero when it has none.
	PaneRatio int
}

// inTextEntry reports whether printable keys should be typed into a buffer
// instead of being treated as shortcuts.
func (c Context) inTextEntry() bool {
	if c.SearchActive {
		return true
	}
	if c.Focus != FocusView {
		return false
	}
	switch c.View {
	case ViewChanges:
		return !c.CommitMessageEmpty
	case ViewBranchManager:
		return c.BranchMode == BranchCreate
	case ViewModuleManager:
		return c.ModuleMode.takesInput()
	}
	return false
}

// inModal reports whether the active view is in a sub-mode that Esc leaves.
func (c Context) inModal() bool {
	switch c.View {
	case ViewBranchManager:
		return c.BranchMode == BranchCreate
	case ViewModuleManager:
		return c.ModuleMode != ModuleList && c.ModuleMode != DeveloperList
	}
	return false
}

type ActionResult struct {
	Quit bool
	// Message replaces the status line; empty leaves the view's own status
	// line in place.
	Message string
}

// StateUpdate is the set of changes the reducer asks for. Nil pointers and
// false markers mean "leave alone". Only State.Apply acts on it.
type StateUpdate struct {
	Focus        *Focus
	View         *View
	ShowHelp     *bool
	SearchActive *bool
	SearchBuffer *string
	SearchAppend *rune
	SearchPop    bool

	MenuIndex      *int
	ProjectIndex   *int
	ChangeIndex    *int
	CommitIndex    *int
	BranchIndex    *int
	MergeFileIndex *int
	ModuleIndex    *int
	DeveloperIndex *int
	SettingIndex   *int
	BoardColumn    *int
	BoardItem      *int
	MergeFocus     *MergeFocus
	// ClampSelections re-validates the selections that depend on the
	// active project.
	ClampSelections bool

	CommitMessageAppend *rune
	CommitMessagePop    bool
	CommitMessageClear  bool
	BranchInputAppend   *rune
	BranchInputPop      bool
	BranchInputClear    bool
	ModuleInputAppend   *rune
	ModuleInputPop      bool
	ModuleInputClear    bool

	BranchMode *BranchMode
	ModuleMode *ModuleMode

	ScrollDelta int
	PaneRatio   *int

	CommitRequested          bool
	ToggleStagingRequested   bool
	FetchRequested           bool
	PushRequested            bool
	PullRequested            bool
	RefreshRequested         bool
	CopyCommitHashRequested  bool
	BranchCreateRequested    bool
	BranchDeleteRequested    bool
	BranchSwitchRequested    bool
	ModuleEditStarted        bool
	ModuleCreateRequested    bool
	ModuleUpdateRequested    bool
	ModuleDeleteRequested    bool
	ModuleAssignRequested    bool
	DeveloperCreateRequested bool
	DeveloperDeleteRequested bool
	ToggleModuleList         bool
	MoveBoardItem            bool
	AcceptMergePane          bool
	ToggleSetting            bool
}

func (u StateUpdate) IsEmpty() bool {
	return u == StateUpdate{}
}
