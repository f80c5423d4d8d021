package handler

import (
	"net/http"

	"github.com/msomdec/wish-tracker/internal/domain"
	"github.com/msomdec/wish-tracker/internal/service"
)

// WishHandler serves the wish JSON API.
type WishHandler struct {
	wishes *service.WishService
}

// NewWishHandler creates a new WishHandler.
func NewWishHandler(wishes *service.WishService) *WishHandler {
	return &WishHandler{wishes: wishes}
}

// HandleList returns the user's wishes, newest first.
// GET /api/wishes?status=&categoryId=
func (h *WishHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var filter domain.WishFilter
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := domain.ParseWishStatus(raw)
		if err != nil {
			writeServiceError(w, r, "parse status", err)
			return
		}
		filter.Status = &status
	}
	categoryID, err := queryID(r, "categoryId")
	if err != nil {
		writeServiceError(w, r, "parse category id", err)
		return
	}
	filter.CategoryID = categoryID

	wishes, err := h.wishes.List(r.Context(), user, filter)
	if err != nil {
		writeServiceError(w, r, "list wishes", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"wishes": toWishDTOs(wishes)})
}

// HandleCreate creates a wish.
// POST /api/wishes
// Request: {"title":"...","description":"...","remarks":"...","categoryId":1,"status":"WISH"}
func (h *WishHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	var in service.WishInput
	if err := readJSON(w, r, &in); err != nil {
		writeServiceError(w, r, "decode wish", err)
		return
	}

	wish, err := h.wishes.Create(r.Context(), user, in)
	if err != nil {
		writeServiceError(w, r, "create wish", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"wish": toWishDTO(wish)})
}

// HandleGet returns one wish.
// GET /api/wishes/{id}
func (h *WishHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, "parse wish id", err)
		return
	}

	wish, err := h.wishes.Get(r.Context(), user, id)
	if err != nil {
		writeServiceError(w, r, "get wish", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"wish": toWishDTO(wish)})
}

// HandleUpdate replaces a wish's fields; a differing status goes through
// the workflow.
// PUT /api/wishes/{id}
func (h *WishHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, "parse wish id", err)
		return
	}

	var in service.WishInput
	if err := readJSON(w, r, &in); err != nil {
		writeServiceError(w, r, "decode wish", err)
		return
	}

	wish, err := h.wishes.Update(r.Context(), user, id, in)
	if err != nil {
		writeServiceError(w, r, "update wish", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"wish": toWishDTO(wish)})
}

// HandleChangeStatus moves a wish to the requested status.
// POST /api/wishes/{id}/status
// Request: {"status":"IN_PROGRESS"}
func (h *WishHandler) HandleChangeStatus(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, "parse wish id", err)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeServiceError(w, r, "decode status", err)
		return
	}
	status, err := domain.ParseWishStatus(req.Status)
	if err != nil {
		writeServiceError(w, r, "parse status", err)
		return
	}

	wish, err := h.wishes.ChangeStatus(r.Context(), user, id, status)
	if err != nil {
		writeServiceError(w, r, "change wish status", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"wish": toWishDTO(wish)})
}

// HandleDelete deletes a wish.
// DELETE /api/wishes/{id}
func (h *WishHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	id, err := pathID(r)
	if err != nil {
		writeServiceError(w, r, "parse wish id", err)
		return
	}

	if err := h.wishes.Delete(r.Context(), user, id); err != nil {
		writeServiceError(w, r, "delete wish", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleBoard returns the wishes grouped into workflow columns.
// GET /api/board?categoryId=
func (h *WishHandler) HandleBoard(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	categoryID, err := queryID(r, "categoryId")
	if err != nil {
		writeServiceError(w, r, "parse category id", err)
		return
	}

	board, err := h.wishes.Board(r.Context(), user, categoryID)
	if err != nil {
		writeServiceError(w, r, "load board", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"columns": toBoardDTO(board)})
}
