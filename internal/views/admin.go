package views

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"tableside/internal/api"
	"tableside/internal/domain"
	"tableside/internal/qr"
)

// adminMenu is the menu management board: full menu plus category and
// dish controls. The backend rejects non-staff callers.
func (h *Handler) adminMenu(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := strconv.Atoi(mux.Vars(r)["restaurantId"])

	menu, err := h.API.Menu(r.Context(), restaurantID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, map[string]interface{}{"menu": menu})
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := strconv.Atoi(mux.Vars(r)["restaurantId"])

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.fail(w, r, &api.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}

	category, err := h.API.CreateCategory(r.Context(), restaurantID, body.Name)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, category)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.API.DeleteCategory(r.Context(), categoryID); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createDish(w http.ResponseWriter, r *http.Request) {
	var req api.DishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, &api.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}

	dish, err := h.API.CreateDish(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, dish)
}

func (h *Handler) toggleStopList(w http.ResponseWriter, r *http.Request) {
	dishID, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.API.ToggleStopList(r.Context(), dishID); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, map[string]string{"message": "availability toggled"})
}

func (h *Handler) halls(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := strconv.Atoi(mux.Vars(r)["restaurantId"])

	halls, err := h.API.Halls(r.Context(), restaurantID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, halls)
}

// hallTables lists a hall's tables with their current links and QR
// image URLs for the ones that already carry a short code.
func (h *Handler) hallTables(w http.ResponseWriter, r *http.Request) {
	hallID, _ := strconv.Atoi(mux.Vars(r)["hallId"])

	tables, err := h.API.HallTables(r.Context(), hallID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	type tableView struct {
		domain.Table
		Link    string `json:"link,omitempty"`
		QRImage string `json:"qr_image,omitempty"`
	}
	list := make([]tableView, 0, len(tables))
	for _, table := range tables {
		view := tableView{Table: table}
		if table.ShortCode != "" {
			link := qr.TableLink(h.PublicBaseURL, table.ShortCode)
			view.Link = link
			view.QRImage = qr.ExternalImageURL(h.QRImageURL, link, 200)
		}
		list = append(list, view)
	}
	h.respond(w, list)
}

// generateLink asks the backend for a fresh short code and returns the
// printable artifacts: the link, the external image URL for downloads
// and the local PNG endpoint for offline kiosks.
func (h *Handler) generateLink(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	restaurantID, _ := strconv.Atoi(vars["restaurantId"])
	hallID, _ := strconv.Atoi(vars["hallId"])
	tableID, _ := strconv.Atoi(vars["tableId"])

	link, err := h.API.GenerateTableLink(r.Context(), restaurantID, hallID, tableID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	publicLink := qr.TableLink(h.PublicBaseURL, link.ShortCode)
	h.respond(w, map[string]interface{}{
		"table_id":     link.TableID,
		"table_number": link.TableNumber,
		"short_code":   link.ShortCode,
		"link":         publicLink,
		"qr_image":     qr.ExternalImageURL(h.QRImageURL, publicLink, 500),
		"qr_png":       "/admin/qr/" + link.ShortCode,
	})
}

// qrImage renders the QR PNG locally.
func (h *Handler) qrImage(w http.ResponseWriter, r *http.Request) {
	shortCode := mux.Vars(r)["shortCode"]

	size := 256
	if s, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil && s > 0 {
		size = s
	}

	png, err := h.QR.Generate(qr.TableLink(h.PublicBaseURL, shortCode), size)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(png)
}

func (h *Handler) reservations(w http.ResponseWriter, r *http.Request) {
	list, err := h.API.Reservations(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, list)
}

func (h *Handler) setReservationStatus(w http.ResponseWriter, r *http.Request) {
	reservationID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var body struct {
		Status domain.ReservationStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		h.fail(w, r, &api.ValidationError{Field: "status", Reason: "required"})
		return
	}

	if err := h.API.UpdateReservationStatus(r.Context(), reservationID, body.Status); err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, map[string]string{"status": string(body.Status)})
}

func (h *Handler) analytics(w http.ResponseWriter, r *http.Request) {
	overview, err := h.API.AnalyticsOverview(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, overview)
}
