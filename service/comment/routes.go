package comment

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/psucr/campus-review-server/cmd/models"
	"github.com/psucr/campus-review-server/cmd/utils"
	"gorm.io/gorm"
)

type CommentHandler struct {
	db *gorm.DB
}

func NewCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{db: db}
}

func (h *CommentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/comments", utils.AuthMiddleware(h.CreateComment)).Methods("POST")
	router.HandleFunc("/comments", h.GetComments).Methods("GET")
	router.HandleFunc("/comments/{id}", h.GetComment).Methods("GET")
	router.HandleFunc("/comments/{id}", utils.AuthMiddleware(h.UpdateComment)).Methods("PUT")
	router.HandleFunc("/comments/{id}", utils.AuthMiddleware(h.DeleteComment)).Methods("DELETE")
}

// CreateComment creates a comment under a review post and increments the
// post's comments_amount in the same transaction
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		CommentText  string `json:"comment_text" validate:"required"`
		ReviewPostID uint   `json:"review_post_id" validate:"required"`
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

	var post models.ReviewPost
	if err := h.db.First(&post, payload.ReviewPostID).Error; err != nil {
		http.Error(w, "Review Post not found", http.StatusNotFound)
		return
	}

	tx := h.db.Begin()

	comment := models.Comment{
		CommentText:   payload.CommentText,
		CommentAuthor: author.AuthorName(),
		ReviewPostID:  post.ID,
		UserID:        userID,
	}

	if err := tx.Create(&comment).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Error creating comment", http.StatusInternalServerError)
		return
	}

	if err := utils.BumpCounter(tx, &models.ReviewPost{}, post.ID, "comments_amount", 1); err != nil {
		tx.Rollback()
		http.Error(w, "Error updating comments count", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Error saving comment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(comment)
}

// GetComments retrieves comments with pagination, optionally filtered by
// review post
func (h *CommentHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	page := utils.ParsePage(r)

	var comments []models.Comment
	var total int64

	query := h.db.Model(&models.Comment{})
	if postID := r.URL.Query().Get("review_post_id"); postID != "" {
		query = query.Where("review_post_id = ?", postID)
	}
	query.Count(&total)

	offset, limit := utils.PageWindow(page, utils.SizePerPage)
	if err := query.Offset(offset).Limit(limit).Order("id ASC").Find(&comments).Error; err != nil {
		http.Error(w, "Error retrieving comments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"items":         comments,
		"page":          page,
		"page_count":    utils.PageCount(total, utils.SizePerPage),
		"size_per_page": utils.SizePerPage,
	})
}

// GetComment retrieves a specific comment
func (h *CommentHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	commentID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid comment ID", http.StatusBadRequest)
		return
	}

	var comment models.Comment
	if err := h.db.First(&comment, commentID).Error; err != nil {
		http.Error(w, "Comment not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(comment)
}

// UpdateComment updates a comment's editable fields. The author snapshot,
// parent post and owner are never taken from the payload.
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	commentID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid comment ID", http.StatusBadRequest)
		return
	}

	var updateData struct {
		CommentText string `json:"comment_text"`
		LikesAmount *int   `json:"likes_amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var comment models.Comment
	if err := h.db.First(&comment, commentID).Error; err != nil {
		http.Error(w, "Comment not found", http.StatusNotFound)
		return
	}

	if !utils.RequireOwner(w, comment.UserID, userID, "comment") {
		return
	}

	if updateData.CommentText != "" {
		comment.CommentText = updateData.CommentText
	}
	if updateData.LikesAmount != nil {
		comment.LikesAmount = *updateData.LikesAmount
	}

	if err := h.db.Save(&comment).Error; err != nil {
		http.Error(w, "Error updating comment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(comment)
}

// DeleteComment deletes a comment and decrements the review post's
// comments_amount in the same transaction
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	commentID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid comment ID", http.StatusBadRequest)
		return
	}

	var comment models.Comment
	if err := h.db.First(&comment, commentID).Error; err != nil {
		http.Error(w, "Comment not found", http.StatusNotFound)
		return
	}

	if !utils.RequireOwner(w, comment.UserID, userID, "comment") {
		return
	}

	tx := h.db.Begin()

	if err := tx.Delete(&comment).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Error deleting comment", http.StatusInternalServerError)
		return
	}

	if err := utils.BumpCounter(tx, &models.ReviewPost{}, comment.ReviewPostID, "comments_amount", -1); err != nil {
		tx.Rollback()
		http.Error(w, "Error updating comments count", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Error deleting comment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Comment deleted",
	})
}
