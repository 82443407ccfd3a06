package app

import (
	"github.com/mrbonezy/forge/tasks"
)

const (
	pageScroll = 5
	paneStep   = 5

	menuHelpMessage     = "Menu: Tab to navigate, ↵ to select, q to quit"
	searchHelpMessage   = "Search projects (type to filter, Esc to exit)"
	searchOnlyDashboard = "Search is available only in Dashboard"
	emptyCommitMessage  = "Commit message cannot be empty"
	mockCommitMessage   = "Committed (mock only; no Git repository detected)"
)

// Reduce decides what an action means in the given context. It reads nothing
// but its arguments and never fails.
func Reduce(a Action, ctx Context) (ActionResult, StateUpdate) {
	if a.Rune != 0 && isRuneShortcut(a.Kind) && ctx.inTextEntry() {
		a = InputChar(a.Rune)
	}

	switch a.Kind {
	case ActionQuit:
		return ActionResult{Quit: true}, StateUpdate{}
	case ActionHelp:
		return ActionResult{}, StateUpdate{ShowHelp: ptr(!ctx.ShowHelp)}
	case ActionBack:
		return reduceBack(ctx)
	case ActionNextView:
		return ActionResult{}, nextView(ctx)
	case ActionSwitchModuleList:
		if ctx.View == ViewModuleManager && ctx.Focus == FocusView &&
			(ctx.ModuleMode == ModuleList || ctx.ModuleMode == DeveloperList) {
			return ActionResult{}, StateUpdate{ToggleModuleList: true}
		}
		return ActionResult{}, nextView(ctx)
	case ActionSelect:
		return reduceSelect(ctx)
	case ActionNavigateUp:
		return ActionResult{}, navigateUp(ctx)
	case ActionNavigateDown:
		return ActionResult{}, navigateDown(ctx)
	case ActionNavigateLeft, ActionNavigateRight:
		return ActionResult{}, navigateSideways(ctx, a.Kind == ActionNavigateRight)
	case ActionScrollPageUp:
		return ActionResult{}, scrollPage(ctx, -pageScroll)
	case ActionScrollPageDown:
		return ActionResult{}, scrollPage(ctx, pageScroll)
	case ActionInputChar:
		return reduceInput(ctx, a.Rune)
	case ActionBackspace:
		return ActionResult{}, reduceBackspace(ctx)
	case ActionSearch:
		return reduceSearch(ctx)
	case ActionToggleStaging:
		if ctx.Focus == FocusView && ctx.View == ViewChanges && ctx.ChangeCount > 0 {
			return ActionResult{}, StateUpdate{ToggleStagingRequested: true}
		}
		return ActionResult{}, StateUpdate{}
	case ActionPaneNarrow:
		return ActionResult{}, adjustPane(ctx, -paneStep)
	case ActionPaneWiden:
		return ActionResult{}, adjustPane(ctx, paneStep)
	case ActionFetch:
		if ctx.Focus == FocusView && (ctx.View == ViewDashboard || ctx.View == ViewChanges) {
			return fetch(ctx)
		}
		return ActionResult{}, StateUpdate{}
	case ActionPush:
		if ctx.Focus == FocusView && ctx.View == ViewChanges {
			return push(ctx)
		}
		return ActionResult{}, StateUpdate{}
	case ActionPull:
		if ctx.Focus == FocusView && ctx.View == ViewChanges {
			return ActionResult{Message: tasks.PullOp(remoteName(ctx)).ProgressMessage()}, StateUpdate{PullRequested: true}
		}
		return ActionResult{}, StateUpdate{}
	}
	return ActionResult{}, StateUpdate{}
}

func isRuneShortcut(k ActionKind) bool {
	switch k {
	case ActionNavigateUp, ActionNavigateDown, ActionNavigateLeft, ActionNavigateRight, ActionToggleStaging:
		return true
	}
	return false
}

func remoteName(ctx Context) string {
	if ctx.Remote == "" {
		return "origin"
	}
	return ctx.Remote
}

func fetch(ctx Context) (ActionResult, StateUpdate) {
	return ActionResult{Message: tasks.FetchOp(remoteName(ctx)).ProgressMessage()}, StateUpdate{FetchRequested: true}
}

func push(ctx Context) (ActionResult, StateUpdate) {
	return ActionResult{Message: tasks.PushOp(remoteName(ctx)).ProgressMessage()}, StateUpdate{PushRequested: true}
}

func reduceBack(ctx Context) (ActionResult, StateUpdate) {
	if ctx.ShowHelp {
		return ActionResult{}, StateUpdate{ShowHelp: ptr(false)}
	}
	if ctx.SearchActive {
		return ActionResult{Message: "Exited search"}, StateUpdate{
			SearchActive: ptr(false),
			SearchBuffer: ptr(""),
			ProjectIndex: ptr(0),
		}
	}
	if ctx.inModal() {
		u := StateUpdate{}
		switch ctx.View {
		case ViewBranchManager:
			u.BranchMode = ptr(BranchList)
			u.BranchInputClear = true
		case ViewModuleManager:
			u.ModuleMode = ptr(ctx.ModuleMode.listMode())
			u.ModuleInputClear = true
		}
		return ActionResult{Message: "Cancelled"}, u
	}
	if ctx.Focus == FocusMenu {
		return ActionResult{Quit: true}, StateUpdate{}
	}
	return ActionResult{Message: menuHelpMessage}, StateUpdate{Focus: ptr(FocusMenu)}
}

func nextView(ctx Context) StateUpdate {
	if ctx.Focus == FocusMenu {
		return StateUpdate{MenuIndex: ptr((ctx.MenuIndex + 1) % MenuLen)}
	}
	return switchTo(ctx.View.Next())
}

// switchTo moves to v, keeps the menu in sync and drops search outside the
// dashboard.
func switchTo(v View) StateUpdate {
	u := StateUpdate{View: ptr(v), MenuIndex: ptr(v.MenuIndex())}
	if v != ViewDashboard {
		u.SearchActive = ptr(false)
		u.SearchBuffer = ptr("")
	}
	return u
}

func reduceSelect(ctx Context) (ActionResult, StateUpdate) {
	if ctx.Focus == FocusMenu {
		u := switchTo(ViewAt(ctx.MenuIndex))
		u.Focus = ptr(FocusView)
		return ActionResult{}, u
	}

	switch ctx.View {
	case ViewDashboard:
		if ctx.ProjectCount == 0 {
			return ActionResult{Message: "No project selected"}, StateUpdate{}
		}
		return ActionResult{}, switchTo(ViewChanges)
	case ViewChanges:
		if ctx.CommitMessageEmpty {
			return ActionResult{Message: emptyCommitMessage}, StateUpdate{}
		}
		if ctx.HasGitClient {
			return ActionResult{Message: "Attempting commit..."}, StateUpdate{CommitRequested: true}
		}
		return ActionResult{Message: mockCommitMessage}, StateUpdate{CommitMessageClear: true}
	case ViewBranchManager:
		if ctx.BranchMode == BranchCreate {
			if ctx.BranchInputEmpty {
				return ActionResult{Message: "Branch name cannot be empty"}, StateUpdate{}
			}
			return ActionResult{}, StateUpdate{BranchCreateRequested: true}
		}
		if ctx.BranchCount == 0 {
			return ActionResult{Message: "No branch selected"}, StateUpdate{}
		}
		return ActionResult{}, StateUpdate{BranchSwitchRequested: true}
	case ViewMergeVisualizer:
		return ActionResult{}, StateUpdate{AcceptMergePane: true}
	case ViewProjectBoard:
		return ActionResult{}, StateUpdate{MoveBoardItem: true}
	case ViewModuleManager:
		return selectModule(ctx)
	case ViewSettings:
		return ActionResult{}, StateUpdate{ToggleSetting: true}
	}
	return ActionResult{}, StateUpdate{}
}

func selectModule(ctx Context) (ActionResult, StateUpdate) {
	switch ctx.ModuleMode {
	case AssignDeveloper:
		if ctx.DeveloperCount == 0 {
			return ActionResult{Message: "No developers to assign"}, StateUpdate{}
		}
		if ctx.ModuleCount == 0 {
			return ActionResult{Message: "No modules"}, StateUpdate{}
		}
		return ActionResult{}, StateUpdate{ModuleAssignRequested: true}
	case CreateModule:
		if ctx.ModuleInputEmpty {
			return ActionResult{Message: "Module name cannot be empty"}, StateUpdate{}
		}
		return ActionResult{}, StateUpdate{ModuleCreateRequested: true}
	case EditModule:
		if ctx.ModuleInputEmpty {
			return ActionResult{Message: "Module name cannot be empty"}, StateUpdate{}
		}
		return ActionResult{}, StateUpdate{ModuleUpdateRequested: true}
	case CreateDeveloper:
		if ctx.ModuleInputEmpty {
			return ActionResult{Message: "Developer name cannot be empty"}, StateUpdate{}
		}
		return ActionResult{}, StateUpdate{DeveloperCreateRequested: true}
	}
	return ActionResult{}, StateUpdate{}
}

func navigateUp(ctx Context) StateUpdate {
	if ctx.Focus == FocusMenu {
		return StateUpdate{MenuIndex: ptr(max(ctx.MenuIndex-1, 0))}
	}
	up := func(idx int) *int {
		if idx > 0 {
			return ptr(idx - 1)
		}
		return nil
	}
	switch ctx.View {
	case ViewDashboard:
		if ctx.ProjectIndex > 0 {
			return StateUpdate{ProjectIndex: up(ctx.ProjectIndex), ClampSelections: true}
		}
	case ViewChanges:
		return StateUpdate{ChangeIndex: up(ctx.ChangeIndex)}
	case ViewCommitHistory:
		return StateUpdate{CommitIndex: up(ctx.CommitIndex)}
	case ViewBranchManager:
		return StateUpdate{BranchIndex: up(ctx.BranchIndex)}
	case ViewMergeVisualizer:
		return StateUpdate{MergeFileIndex: up(ctx.MergeFileIndex)}
	case ViewProjectBoard:
		return StateUpdate{BoardItem: up(ctx.BoardItem)}
	case ViewModuleManager:
		if ctx.ModuleMode == AssignDeveloper || ctx.ModuleMode == DeveloperList {
			return StateUpdate{DeveloperIndex: up(ctx.DeveloperIndex)}
		}
		return StateUpdate{ModuleIndex: up(ctx.ModuleIndex)}
	case ViewSettings:
		return StateUpdate{SettingIndex: up(ctx.SettingIndex)}
	}
	return StateUpdate{}
}

func navigateDown(ctx Context) StateUpdate {
	if ctx.Focus == FocusMenu {
		return StateUpdate{MenuIndex: ptr(min(ctx.MenuIndex+1, MenuLen-1))}
	}
	down := func(idx, n int) *int {
		if idx < n-1 {
			return ptr(idx + 1)
		}
		return nil
	}
	switch ctx.View {
	case ViewDashboard:
		if idx := down(ctx.ProjectIndex, ctx.ProjectCount); idx != nil {
			return StateUpdate{ProjectIndex: idx, ClampSelections: true}
		}
	case ViewChanges:
		return StateUpdate{ChangeIndex: down(ctx.ChangeIndex, ctx.ChangeCount)}
	case ViewCommitHistory:
		return StateUpdate{CommitIndex: down(ctx.CommitIndex, ctx.CommitCount)}
	case ViewBranchManager:
		return StateUpdate{BranchIndex: down(ctx.BranchIndex, ctx.BranchCount)}
	case ViewMergeVisualizer:
		return StateUpdate{MergeFileIndex: down(ctx.MergeFileIndex, ctx.MergeFileCount)}
	case ViewProjectBoard:
		return StateUpdate{BoardItem: down(ctx.BoardItem, ctx.BoardColumnLen)}
	case ViewModuleManager:
		if ctx.ModuleMode == AssignDeveloper || ctx.ModuleMode == DeveloperList {
			return StateUpdate{DeveloperIndex: down(ctx.DeveloperIndex, ctx.DeveloperCount)}
		}
		return StateUpdate{ModuleIndex: down(ctx.ModuleIndex, ctx.ModuleCount)}
	case ViewSettings:
		return StateUpdate{SettingIndex: down(ctx.SettingIndex, ctx.SettingCount)}
	}
	return StateUpdate{}
}

func navigateSideways(ctx Context, right bool) StateUpdate {
	if ctx.Focus != FocusView {
		return StateUpdate{}
	}
	switch ctx.View {
	case ViewProjectBoard:
		step := 2
		if right {
			step = 1
		}
		return StateUpdate{BoardColumn: ptr((ctx.BoardColumn + step) % 3)}
	case ViewMergeVisualizer:
		if right {
			return StateUpdate{MergeFocus: ptr(ctx.MergeFocus.Next())}
		}
		return StateUpdate{MergeFocus: ptr(ctx.MergeFocus.Prev())}
	}
	return StateUpdate{}
}

func scrollPage(ctx Context, delta int) StateUpdate {
	if ctx.Focus != FocusView {
		return StateUpdate{}
	}
	switch ctx.View {
	case ViewDashboard, ViewChanges, ViewMergeVisualizer, ViewCommitHistory:
		return StateUpdate{ScrollDelta: delta}
	}
	return StateUpdate{}
}

func adjustPane(ctx Context, delta int) StateUpdate {
	if ctx.Focus != FocusView || !ctx.View.hasPane() || ctx.PaneRatio == 0 {
		return StateUpdate{}
	}
	next := clampPane(ctx.PaneRatio + delta)
	if next == ctx.PaneRatio {
		return StateUpdate{}
	}
	return StateUpdate{PaneRatio: ptr(next)}
}

func reduceInput(ctx Context, c rune) (ActionResult, StateUpdate) {
	if ctx.SearchActive {
		return ActionResult{}, StateUpdate{SearchAppend: ptr(c)}
	}
	if ctx.Focus != FocusView {
		return ActionResult{}, StateUpdate{}
	}

	switch ctx.View {
	case ViewDashboard:
		switch c {
		case 'f':
			return fetch(ctx)
		case 'r':
			return ActionResult{}, StateUpdate{RefreshRequested: true}
		}
	case ViewChanges:
		if ctx.CommitMessageEmpty {
			switch c {
			case 'f':
				return fetch(ctx)
			case 'p':
				return push(ctx)
			}
		}
		return ActionResult{}, StateUpdate{CommitMessageAppend: ptr(c)}
	case ViewCommitHistory:
		switch c {
		case 'y':
			if ctx.CommitCount == 0 {
				return ActionResult{Message: "No commit selected"}, StateUpdate{}
			}
			return ActionResult{}, StateUpdate{CopyCommitHashRequested: true}
		case 'r':
			return ActionResult{}, StateUpdate{RefreshRequested: true}
		}
	case ViewBranchManager:
		return branchInput(ctx, c)
	case ViewModuleManager:
		return moduleInput(ctx, c)
	}
	return ActionResult{}, StateUpdate{}
}

func branchInput(ctx Context, c rune) (ActionResult, StateUpdate) {
	if ctx.BranchMode == BranchCreate {
		return ActionResult{}, StateUpdate{BranchInputAppend: ptr(c)}
	}
	switch c {
	case 'n':
		return ActionResult{Message: "New branch: type a name, ↵ to create, Esc to cancel"}, StateUpdate{
			BranchMode:       ptr(BranchCreate),
			BranchInputClear: true,
		}
	case 'd':
		if ctx.BranchCount == 0 {
			return ActionResult{Message: "No branch selected"}, StateUpdate{}
		}
		return ActionResult{}, StateUpdate{BranchDeleteRequested: true}
	case 'r':
		return ActionResult{}, StateUpdate{RefreshRequested: true}
	}
	return ActionResult{}, StateUpdate{}
}

func moduleInput(ctx Context, c rune) (ActionResult, StateUpdate) {
	if ctx.ModuleMode.takesInput() {
		return ActionResult{}, StateUpdate{ModuleInputAppend: ptr(c)}
	}
	switch ctx.ModuleMode {
	case ModuleList:
		switch c {
		case 'a':
			if ctx.ModuleCount == 0 {
				return ActionResult{Message: "No modules"}, StateUpdate{}
			}
			if ctx.DeveloperCount == 0 {
				return ActionResult{Message: "No developers to assign"}, StateUpdate{}
			}
			return ActionResult{Message: "Assign: ↑↓ pick developer, ↵ to assign, Esc to cancel"}, StateUpdate{ModuleMode: ptr(AssignDeveloper)}
		case 'n':
			return ActionResult{Message: "New module: type a name, ↵ to create, Esc to cancel"}, StateUpdate{
				ModuleMode:       ptr(CreateModule),
				ModuleInputClear: true,
			}
		case 'e':
			if ctx.ModuleCount == 0 {
				return ActionResult{Message: "No modules"}, StateUpdate{}
			}
			return ActionResult{Message: "Edit module: ↵ to save, Esc to cancel"}, StateUpdate{
				ModuleMode:        ptr(EditModule),
				ModuleEditStarted: true,
			}
		case 'd':
			if ctx.ModuleCount == 0 {
				return ActionResult{Message: "No modules"}, StateUpdate{}
			}
			return ActionResult{}, StateUpdate{ModuleDeleteRequested: true}
		}
	case DeveloperList:
		switch c {
		case 'n':
			return ActionResult{Message: "New developer: type a name, ↵ to create, Esc to cancel"}, StateUpdate{
				ModuleMode:       ptr(CreateDeveloper),
				ModuleInputClear: true,
			}
		case 'd':
			if ctx.DeveloperCount == 0 {
				return ActionResult{Message: "No developers"}, StateUpdate{}
			}
			return ActionResult{}, StateUpdate{DeveloperDeleteRequested: true}
		}
	}
	return ActionResult{}, StateUpdate{}
}

func reduceBackspace(ctx Context) StateUpdate {
	if ctx.SearchActive {
		return StateUpdate{SearchPop: true}
	}
	if ctx.Focus != FocusView {
		return StateUpdate{}
	}
	switch ctx.View {
	case ViewChanges:
		return StateUpdate{CommitMessagePop: true}
	case ViewBranchManager:
		if ctx.BranchMode == BranchCreate {
			return StateUpdate{BranchInputPop: true}
		}
	case ViewModuleManager:
		if ctx.ModuleMode.takesInput() {
			return StateUpdate{ModuleInputPop: true}
		}
	}
	return StateUpdate{}
}

func reduceSearch(ctx Context) (ActionResult, StateUpdate) {
	if ctx.Focus != FocusView {
		return ActionResult{}, StateUpdate{}
	}
	if ctx.View != ViewDashboard {
		return ActionResult{Message: searchOnlyDashboard}, StateUpdate{}
	}
	active := !ctx.SearchActive
	u := StateUpdate{SearchActive: ptr(active), SearchBuffer: ptr(""), ProjectIndex: ptr(0)}
	if !active {
		return ActionResult{Message: "Exited search"}, u
	}
	return ActionResult{Message: searchHelpMessage}, u
}
