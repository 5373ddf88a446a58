package event

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/psucr/campus-review-server/cmd/models"
	"github.com/psucr/campus-review-server/cmd/utils"
	"gorm.io/gorm"
)

type EventHandler struct {
	db *gorm.DB
}

func NewEventHandler(db *gorm.DB) *EventHandler {
	return &EventHandler{db: db}
}

func (h *EventHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/events", utils.AuthMiddleware(h.CreateEvent)).Methods("POST")
	router.HandleFunc("/events", h.GetEvents).Methods("GET")
	router.HandleFunc("/events/{id}", h.GetEvent).Methods("GET")
	router.HandleFunc("/events/{id}", utils.AuthMiddleware(h.UpdateEvent)).Methods("PUT")
	router.HandleFunc("/events/{id}", utils.AuthMiddleware(h.DeleteEvent)).Methods("DELETE")
}

// CreateEvent creates a campus event owned by the authenticated user. The
// author name is snapshotted at creation.
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		EventTitle       string `json:"event_title" validate:"required"`
		EventDescription string `json:"event_description"`
		EventDate        string `json:"event_date" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !utils.ValidatePayload(w, &payload) {
		return
	}

	var author models.User
	if err := h.db.First(&author, userID).Error; err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	event := models.Event{
		EventTitle:       payload.EventTitle,
		EventDescription: payload.EventDescription,
		EventDate:        payload.EventDate,
		AuthorName:       author.AuthorName(),
		UserID:           userID,
	}

	if err := h.db.Create(&event).Error; err != nil {
		http.Error(w, "Error creating event", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(event)
}

// GetEvents retrieves all events with pagination
func (h *EventHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	page := utils.ParsePage(r)

	var events []models.Event
	var total int64

	query := h.db.Model(&models.Event{})
	query.Count(&total)

	offset, limit := utils.PageWindow(page, utils.SizePerPage)
	if err := query.Offset(offset).Limit(limit).Order("id ASC").Find(&events).Error; err != nil {
		http.Error(w, "Error retrieving events", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"items":         events,
		"page":          page,
		"page_count":    utils.PageCount(total, utils.SizePerPage),
		"size_per_page": utils.SizePerPage,
	})
}

// GetEvent retrieves a specific event
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	eventID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid event ID", http.StatusBadRequest)
		return
	}

	var event models.Event
	if err := h.db.First(&event, eventID).Error; err != nil {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(event)
}

// UpdateEvent updates an event's editable fields. The author snapshot and
// owner are never taken from the payload.
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	eventID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid event ID", http.StatusBadRequest)
		return
	}

	var updateData struct {
		EventTitle       string `json:"event_title"`
		EventDescription string `json:"event_description"`
		EventDate        string `json:"event_date"`
		LikesAmount      *int   `json:"likes_amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var event models.Event
	if err := h.db.First(&event, eventID).Error; err != nil {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}

	if !utils.RequireOwner(w, event.UserID, userID, "event") {
		return
	}

	if updateData.EventTitle != "" {
		event.EventTitle = updateData.EventTitle
	}
	if updateData.EventDescription != "" {
		event.EventDescription = updateData.EventDescription
	}
	if updateData.EventDate != "" {
		event.EventDate = updateData.EventDate
	}
	if updateData.LikesAmount != nil {
		event.LikesAmount = *updateData.LikesAmount
	}

	if err := h.db.Save(&event).Error; err != nil {
		http.Error(w, "Error updating event", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(event)
}

// DeleteEvent deletes an event
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	eventID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid event ID", http.StatusBadRequest)
		return
	}

	var event models.Event
	if err := h.db.First(&event, eventID).Error; err != nil {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}

	if !utils.RequireOwner(w, event.UserID, userID, "event") {
		return
	}

	if err := h.db.Delete(&event).Error; err != nil {
		http.Error(w, "Error deleting event", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Event deleted",
	})
}
