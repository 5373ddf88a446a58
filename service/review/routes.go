package review

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/psucr/campus-review-server/cmd/models"
	"github.com/psucr/campus-review-server/cmd/utils"
	"gorm.io/gorm"
)

type ReviewPostHandler struct {
	db *gorm.DB
}

func NewReviewPostHandler(db *gorm.DB) *ReviewPostHandler {
	return &ReviewPostHandler{db: db}
}

func (h *ReviewPostHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/review_posts", utils.AuthMiddleware(h.CreateReviewPost)).Methods("POST")
	router.HandleFunc("/review_posts", h.GetReviewPosts).Methods("GET")
	router.HandleFunc("/review_posts/{id}", h.GetReviewPost).Methods("GET")
	router.HandleFunc("/review_posts/{id}", utils.AuthMiddleware(h.UpdateReviewPost)).Methods("PUT")
	router.HandleFunc("/review_posts/{id}", utils.AuthMiddleware(h.DeleteReviewPost)).Methods("DELETE")
}

// CreateReviewPost creates a review post under a course. The author name
// and the course code/name are snapshotted at creation, and the course's
// review_posts_amount is incremented in the same transaction.
func (h *ReviewPostHandler) CreateReviewPost(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		ReviewPostTitle string `json:"review_post_title" validate:"required"`
		ReviewPostText  string `json:"review_post_text" validate:"required"`
		CourseID        uint   `json:"course_id" validate:"required"`
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

	var course models.Course
	if err := h.db.First(&course, payload.CourseID).Error; err != nil {
		http.Error(w, "Course not found", http.StatusNotFound)
		return
	}

	tx := h.db.Begin()

	post := models.ReviewPost{
		ReviewPostTitle: payload.ReviewPostTitle,
		ReviewPostText:  payload.ReviewPostText,
		AuthorName:      author.AuthorName(),
		CourseID:        course.ID,
		CourseCode:      course.CourseCode,
		CourseName:      course.CourseName,
		UserID:          userID,
	}

	if err := tx.Create(&post).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Error creating review post", http.StatusInternalServerError)
		return
	}

	if err := utils.BumpCounter(tx, &models.Course{}, course.ID, "review_posts_amount", 1); err != nil {
		tx.Rollback()
		http.Error(w, "Error updating review posts count", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Error saving review post", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(post)
}

// GetReviewPosts retrieves review posts with pagination, optionally
// filtered by course
func (h *ReviewPostHandler) GetReviewPosts(w http.ResponseWriter, r *http.Request) {
	page := utils.ParsePage(r)

	var posts []models.ReviewPost
	var total int64

	query := h.db.Model(&models.ReviewPost{})
	if courseID := r.URL.Query().Get("course_id"); courseID != "" {
		query = query.Where("course_id = ?", courseID)
	}
	query.Count(&total)

	offset, limit := utils.PageWindow(page, utils.SizePerPage)
	if err := query.Offset(offset).Limit(limit).Order("id ASC").Find(&posts).Error; err != nil {
		http.Error(w, "Error retrieving review posts", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"items":         posts,
		"page":          page,
		"page_count":    utils.PageCount(total, utils.SizePerPage),
		"size_per_page": utils.SizePerPage,
	})
}

// GetReviewPost retrieves a specific review post
func (h *ReviewPostHandler) GetReviewPost(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid review post ID", http.StatusBadRequest)
		return
	}

	var post models.ReviewPost
	if err := h.db.First(&post, postID).Error; err != nil {
		http.Error(w, "Review Post not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(post)
}

// UpdateReviewPost updates a review post's editable fields. The author
// name, comment counter, course snapshot and owner are never taken from
// the payload.
func (h *ReviewPostHandler) UpdateReviewPost(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	postID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid review post ID", http.StatusBadRequest)
		return
	}

	var updateData struct {
		ReviewPostTitle string `json:"review_post_title"`
		ReviewPostText  string `json:"review_post_text"`
		LikesAmount     *int   `json:"likes_amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var post models.ReviewPost
	if err := h.db.First(&post, postID).Error; err != nil {
		http.Error(w, "Review Post not found", http.StatusNotFound)
		return
	}

	if !utils.RequireOwner(w, post.UserID, userID, "review post") {
		return
	}

	if updateData.ReviewPostTitle != "" {
		post.ReviewPostTitle = updateData.ReviewPostTitle
	}
	if updateData.ReviewPostText != "" {
		post.ReviewPostText = updateData.ReviewPostText
	}
	if updateData.LikesAmount != nil {
		post.LikesAmount = *updateData.LikesAmount
	}

	if err := h.db.Save(&post).Error; err != nil {
		http.Error(w, "Error updating review post", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(post)
}

// DeleteReviewPost deletes a review post and its comments, decrementing
// the course's review_posts_amount in the same transaction
func (h *ReviewPostHandler) DeleteReviewPost(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	postID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid review post ID", http.StatusBadRequest)
		return
	}

	var post models.ReviewPost
	if err := h.db.First(&post, postID).Error; err != nil {
		http.Error(w, "Review Post not found", http.StatusNotFound)
		return
	}

	if !utils.RequireOwner(w, post.UserID, userID, "review post") {
		return
	}

	tx := h.db.Begin()

	// Delete comments
	if err := tx.Where("review_post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Error deleting comments", http.StatusInternalServerError)
		return
	}

	if err := tx.Delete(&post).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Error deleting review post", http.StatusInternalServerError)
		return
	}

	if err := utils.BumpCounter(tx, &models.Course{}, post.CourseID, "review_posts_amount", -1); err != nil {
		tx.Rollback()
		http.Error(w, "Error updating review posts count", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Error deleting review post", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Review Post deleted",
	})
}
