package course

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/psucr/campus-review-server/cmd/models"
	"github.com/psucr/campus-review-server/cmd/utils"
	"gorm.io/gorm"
)

type CourseHandler struct {
	db *gorm.DB
}

func NewCourseHandler(db *gorm.DB) *CourseHandler {
	return &CourseHandler{db: db}
}

func (h *CourseHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/courses", utils.AuthMiddleware(h.CreateCourse)).Methods("POST")
	router.HandleFunc("/courses", h.GetCourses).Methods("GET")
	router.HandleFunc("/courses/{id}", h.GetCourse).Methods("GET")
	router.HandleFunc("/courses/{id}", utils.AuthMiddleware(h.UpdateCourse)).Methods("PUT")
	router.HandleFunc("/courses/{id}", utils.AuthMiddleware(h.DeleteCourse)).Methods("DELETE")
}

// CreateCourse creates a new course owned by the authenticated user
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		CourseCode        string `json:"course_code" validate:"required"`
		CourseName        string `json:"course_name" validate:"required"`
		CourseDescription string `json:"course_description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !utils.ValidatePayload(w, &payload) {
		return
	}

	course := models.Course{
		CourseCode:        payload.CourseCode,
		CourseName:        payload.CourseName,
		CourseDescription: payload.CourseDescription,
		UserID:            userID,
	}

	if err := h.db.Create(&course).Error; err != nil {
		http.Error(w, "Error creating course", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(course)
}

// GetCourses retrieves all courses with pagination
func (h *CourseHandler) GetCourses(w http.ResponseWriter, r *http.Request) {
	page := utils.ParsePage(r)

	var courses []models.Course
	var total int64

	query := h.db.Model(&models.Course{})
	query.Count(&total)

	offset, limit := utils.PageWindow(page, utils.SizePerPage)
	if err := query.Offset(offset).Limit(limit).Order("id ASC").Find(&courses).Error; err != nil {
		http.Error(w, "Error retrieving courses", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"items":         courses,
		"page":          page,
		"page_count":    utils.PageCount(total, utils.SizePerPage),
		"size_per_page": utils.SizePerPage,
	})
}

// GetCourse retrieves a specific course
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	courseID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid course ID", http.StatusBadRequest)
		return
	}

	var course models.Course
	if err := h.db.First(&course, courseID).Error; err != nil {
		http.Error(w, "Course not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(course)
}

// UpdateCourse updates a course's editable fields. The owner, counter and
// id fields are never taken from the payload.
func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	courseID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid course ID", http.StatusBadRequest)
		return
	}

	var updateData struct {
		CourseCode        string `json:"course_code"`
		CourseName        string `json:"course_name"`
		CourseDescription string `json:"course_description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var course models.Course
	if err := h.db.First(&course, courseID).Error; err != nil {
		http.Error(w, "Course not found", http.StatusNotFound)
		return
	}

	if !utils.RequireOwner(w, course.UserID, userID, "course") {
		return
	}

	if updateData.CourseCode != "" {
		course.CourseCode = updateData.CourseCode
	}
	if updateData.CourseName != "" {
		course.CourseName = updateData.CourseName
	}
	if updateData.CourseDescription != "" {
		course.CourseDescription = updateData.CourseDescription
	}

	if err := h.db.Save(&course).Error; err != nil {
		http.Error(w, "Error updating course", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(course)
}

// DeleteCourse deletes a course together with its review posts and their
// comments
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	courseID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid course ID", http.StatusBadRequest)
		return
	}

	var course models.Course
	if err := h.db.First(&course, courseID).Error; err != nil {
		http.Error(w, "Course not found", http.StatusNotFound)
		return
	}

	if !utils.RequireOwner(w, course.UserID, userID, "course") {
		return
	}

	tx := h.db.Begin()

	var postIDs []uint
	if err := tx.Model(&models.ReviewPost{}).Where("course_id = ?", courseID).Pluck("id", &postIDs).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Error deleting course", http.StatusInternalServerError)
		return
	}

	if len(postIDs) > 0 {
		if err := tx.Where("review_post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
			tx.Rollback()
			http.Error(w, "Error deleting comments", http.StatusInternalServerError)
			return
		}
		if err := tx.Where("course_id = ?", courseID).Delete(&models.ReviewPost{}).Error; err != nil {
			tx.Rollback()
			http.Error(w, "Error deleting review posts", http.StatusInternalServerError)
			return
		}
	}

	if err := tx.Delete(&course).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Error deleting course", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Error deleting course", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Course deleted",
	})
}
