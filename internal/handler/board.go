package handler

import (
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/msomdec/wish-tracker/internal/domain"
	"github.com/msomdec/wish-tracker/internal/service"
	"github.com/msomdec/wish-tracker/internal/view"
)

// BoardHandler serves the Kanban board page and its status actions.
type BoardHandler struct {
	wishes     *service.WishService
	categories *service.CategoryService
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(wishes *service.WishService, categories *service.CategoryService) *BoardHandler {
	return &BoardHandler{wishes: wishes, categories: categories}
}

// HandleBoard renders the board page.
// GET /wishes?categoryId=
func (h *BoardHandler) HandleBoard(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	v, err := h.load(r, user)
	if err != nil {
		e := classify(err)
		if e.Status == http.StatusInternalServerError {
			slog.ErrorContext(r.Context(), "load board", "error", err, "request_id", RequestIDFromContext(r.Context()))
		}
		http.Error(w, e.Message, e.Status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.BoardPage(v).Render(r.Context(), w); err != nil {
		slog.ErrorContext(r.Context(), "render board", "error", err)
	}
}

// HandleChangeStatus moves a wish and patches the board and flash message.
// POST /wishes/{id}/status/{status}?categoryId=
func (h *BoardHandler) HandleChangeStatus(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	flash := view.Flash{Kind: "ok"}
	id, err := pathID(r)
	if err == nil {
		var status domain.WishStatus
		status, err = domain.ParseWishStatus(r.PathValue("status"))
		if err == nil {
			var wish *domain.Wish
			wish, err = h.wishes.ChangeStatus(r.Context(), user, id, status)
			if err == nil {
				flash.Message = wish.Title + " moved to " + wish.Status.Label()
			}
		}
	}
	if err != nil {
		e := classify(err)
		if e.Status == http.StatusInternalServerError {
			slog.ErrorContext(r.Context(), "change wish status", "error", err, "request_id", RequestIDFromContext(r.Context()))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		flash = view.Flash{Kind: "error", Message: e.Message}
	}

	v, err := h.load(r, user)
	if err != nil {
		slog.ErrorContext(r.Context(), "reload board", "error", err, "request_id", RequestIDFromContext(r.Context()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(view.FlashFragment(flash), datastar.WithSelectorID("flash")); err != nil {
		slog.ErrorContext(r.Context(), "patch flash", "error", err)
		return
	}
	if err := sse.PatchElementTempl(view.BoardFragment(v), datastar.WithSelectorID("board")); err != nil {
		slog.ErrorContext(r.Context(), "patch board", "error", err)
	}
}

func (h *BoardHandler) load(r *http.Request, user *domain.User) (view.BoardView, error) {
	categoryID, err := queryID(r, "categoryId")
	if err != nil {
		return view.BoardView{}, err
	}

	board, err := h.wishes.Board(r.Context(), user, categoryID)
	if err != nil {
		return view.BoardView{}, err
	}
	categories, err := h.categories.ListForUser(r.Context(), user)
	if err != nil {
		return view.BoardView{}, err
	}

	return view.BoardView{
		UserName:   user.DisplayName,
		Board:      board,
		Categories: categories,
		CategoryID: categoryID,
	}, nil
}
