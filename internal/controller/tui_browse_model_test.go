package controller

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestBrowseModel_PlainViewListsEverything(t *testing.T) {
	model := newBrowseModel(sampleReport())

	view := model.plainView()

	for _, want := range []string{
		"events/a.txt:4:9: error(unknown-token): unknown token `leige`",
		"did you mean `liege`?",
		"events/b.txt:2:1: scope was supplied by the game engine",
		"1 errors",
		"1 warnings",
		"2 files checked",
	} {
		if !strings.Contains(view, want) {
			t.Fatalf("plain view missing %q\nview:\n%s", want, view)
		}
	}
}

func TestBrowseModel_NeedsPaginationDependsOnHeight(t *testing.T) {
	model := newBrowseModel(sampleReport())

	// Unknown terminal size prints directly.
	if model.needsPagination() {
		t.Fatalf("needsPagination() = true with zero height")
	}

	model.height = 8
	if model.needsPagination() {
		t.Fatalf("needsPagination() = true, two diagnostics fit in 8 rows")
	}

	model.height = 7
	if !model.needsPagination() {
		t.Fatalf("needsPagination() = false with no room for the list")
	}
}

func TestBrowseModel_WindowSizeResizesList(t *testing.T) {
	model := newBrowseModel(sampleReport())

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	bm, ok := updated.(browseModel)
	if !ok {
		t.Fatalf("Update returned %T, want browseModel", updated)
	}

	if bm.width != 120 || bm.height != 40 {
		t.Fatalf("size = %dx%d, want 120x40", bm.width, bm.height)
	}
}

func TestBrowseModel_QuitKey(t *testing.T) {
	model := newBrowseModel(sampleReport())

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}

	if msg := cmd(); msg == nil {
		t.Fatalf("quit command produced nil message")
	}
}

func TestBrowseModel_ViewShowsSelectedDetail(t *testing.T) {
	model := newBrowseModel(sampleReport())
	model.width = 120
	model.height = 40
	model.diagList.SetWidth(120)
	model.diagList.SetHeight(35)

	view := model.View()

	if !strings.Contains(view, "did you mean `liege`?") {
		t.Fatalf("view missing detail pane for first diagnostic\nview:\n%s", view)
	}
}

func TestDiagItem_FilterValue(t *testing.T) {
	item := diagItem{d: sampleReport().Diagnostics[0]}

	fv := item.FilterValue()
	if !strings.Contains(fv, "events/a.txt") || !strings.Contains(fv, "leige") {
		t.Fatalf("FilterValue() = %q", fv)
	}
}
