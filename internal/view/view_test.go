package view_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/msomdec/wish-tracker/internal/domain"
	"github.com/msomdec/wish-tracker/internal/view"
)

func TestBoardFragment_RendersColumnsAndActions(t *testing.T) {
	achieved := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	categoryID := int64(3)
	v := view.BoardView{
		Board: &domain.Board{
			Wish:       []domain.Wish{{ID: 1, Title: "Visit Japan", Status: domain.StatusWish, CategoryName: "Travel", CategoryColor: "#3B82F6"}},
			InProgress: []domain.Wish{{ID: 2, Title: "Learn Go", Status: domain.StatusInProgress}},
			Achieved:   []domain.Wish{{ID: 3, Title: "Run 5k", Status: domain.StatusAchieved, AchievedAt: &achieved}},
		},
		CategoryID: &categoryID,
	}

	var buf bytes.Buffer
	if err := view.BoardFragment(v).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := buf.String()

	for _, want := range []string{`id="board"`, "Visit Japan", "In Progress", "Achieved Apr 2, 2026", `id="wish-3"`} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in output", want)
		}
	}
	if !strings.Contains(html, "/wishes/1/status/IN_PROGRESS") {
		t.Error("expected start action for wish 1")
	}
	if !strings.Contains(html, "/wishes/2/status/ACHIEVED") {
		t.Error("expected achieve action for wish 2")
	}
	if strings.Contains(html, "/wishes/3/status/") {
		t.Error("achieved wish must not offer a transition")
	}
}

func TestBoardFragment_EscapesUserContent(t *testing.T) {
	v := view.BoardView{Board: &domain.Board{
		Wish: []domain.Wish{{ID: 1, Title: "<script>alert(1)</script>", Status: domain.StatusWish}},
	}}

	var buf bytes.Buffer
	if err := view.BoardFragment(v).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(buf.String(), "<script>alert(1)</script>") {
		t.Fatal("title was not escaped")
	}
}

func TestFlashFragment(t *testing.T) {
	var buf bytes.Buffer
	err := view.FlashFragment(view.Flash{Kind: "error", Message: "invalid move from Achieved to In Progress"}).
		Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), `id="flash"`) || !strings.Contains(buf.String(), "invalid move from Achieved to In Progress") {
		t.Fatalf("unexpected flash output: %s", buf.String())
	}
}

func TestBoardPage_IncludesCategoriesAndBoard(t *testing.T) {
	v := view.BoardView{
		UserName:   "Alice",
		Board:      &domain.Board{},
		Categories: []domain.Category{{ID: 9, Name: "Books", Color: "#10B981", WishCount: 2}},
	}

	var buf bytes.Buffer
	if err := view.BoardPage(v).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := buf.String()
	for _, want := range []string{"Alice", "Books (2)", `id="board"`, `id="flash"`, "datastar"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}
