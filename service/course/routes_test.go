package course

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"github.com/psucr/campus-review-server/cmd/models"
	"github.com/psucr/campus-review-server/cmd/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) (*gorm.DB, *mux.Router) {
	t.Helper()
	t.Setenv("SECRET_KEY", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Course{}, &models.ReviewPost{}, &models.Comment{}))

	router := mux.NewRouter()
	NewCourseHandler(db).RegisterRoutes(router)
	return db, router
}

func doRequest(t *testing.T, router *mux.Router, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createTestUser(t *testing.T, db *gorm.DB, username string) (models.User, string) {
	t.Helper()
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    "Alice",
		LastName:     "Smith",
		PasswordHash: "irrelevant",
	}
	require.NoError(t, db.Create(&user).Error)

	token, _, err := utils.GenerateJWT(user.ID, time.Hour)
	require.NoError(t, err)
	return user, token
}

func TestCreateCourse(t *testing.T) {
	db, router := setupTest(t)
	user, token := createTestUser(t, db, "user1")

	rec := doRequest(t, router, "POST", "/courses", token, map[string]string{
		"course_code":        "CS101",
		"course_name":        "Intro to Computing",
		"course_description": "Fundamentals",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var course models.Course
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&course))
	assert.Greater(t, course.ID, uint(0))
	assert.Equal(t, "CS101", course.CourseCode)
	assert.Equal(t, 0, course.ReviewPostsAmount)
	assert.Equal(t, user.ID, course.UserID)
}

func TestCreateCourseRequiresAuth(t *testing.T) {
	_, router := setupTest(t)

	rec := doRequest(t, router, "POST", "/courses", "", map[string]string{
		"course_code": "CS101",
		"course_name": "Intro to Computing",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateCourseInvalidPayload(t *testing.T) {
	db, router := setupTest(t)
	_, token := createTestUser(t, db, "user1")

	rec := doRequest(t, router, "POST", "/courses", token, map[string]string{
		"course_description": "no code or name",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetCourseNotFound(t *testing.T) {
	_, router := setupTest(t)

	rec := doRequest(t, router, "GET", "/courses/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListCoursesEmpty(t *testing.T) {
	_, router := setupTest(t)

	rec := doRequest(t, router, "GET", "/courses", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items       []models.Course `json:"items"`
		Page        int             `json:"page"`
		PageCount   int64           `json:"page_count"`
		SizePerPage int             `json:"size_per_page"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Empty(t, resp.Items)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, int64(0), resp.PageCount)
	assert.Equal(t, 50, resp.SizePerPage)
}

func TestListCourses(t *testing.T) {
	db, router := setupTest(t)
	user, _ := createTestUser(t, db, "user1")

	for i := 0; i < 3; i++ {
		course := models.Course{
			CourseCode: fmt.Sprintf("CS10%d", i),
			CourseName: "Course",
			UserID:     user.ID,
		}
		require.NoError(t, db.Create(&course).Error)
	}

	rec := doRequest(t, router, "GET", "/courses", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items     []models.Course `json:"items"`
		PageCount int64           `json:"page_count"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Items, 3)
	assert.Equal(t, int64(1), resp.PageCount)

	// Out-of-range page returns an empty list with the same page count
	rec = doRequest(t, router, "GET", "/courses?page=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Empty(t, resp.Items)
	assert.Equal(t, int64(1), resp.PageCount)
}

func TestUpdateCoursePartial(t *testing.T) {
	db, router := setupTest(t)
	user, token := createTestUser(t, db, "user1")

	course := models.Course{
		CourseCode:        "CS101",
		CourseName:        "Intro",
		CourseDescription: "Old description",
		UserID:            user.ID,
	}
	require.NoError(t, db.Create(&course).Error)

	rec := doRequest(t, router, "PUT", fmt.Sprintf("/courses/%d", course.ID), token, map[string]interface{}{
		"course_name": "Intro to Computing",
		// Attempts to rewrite server-owned fields are ignored
		"review_posts_amount": 42,
		"user_id":             9999,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Course
	require.NoError(t, db.First(&got, course.ID).Error)
	assert.Equal(t, "Intro to Computing", got.CourseName)
	assert.Equal(t, "CS101", got.CourseCode)
	assert.Equal(t, "Old description", got.CourseDescription)
	assert.Equal(t, 0, got.ReviewPostsAmount)
	assert.Equal(t, user.ID, got.UserID)
}

func TestUpdateCourseForbiddenForNonOwner(t *testing.T) {
	db, router := setupTest(t)
	user, _ := createTestUser(t, db, "user1")
	_, otherToken := createTestUser(t, db, "user2")

	course := models.Course{CourseCode: "CS101", CourseName: "Intro", UserID: user.ID}
	require.NoError(t, db.Create(&course).Error)

	rec := doRequest(t, router, "PUT", fmt.Sprintf("/courses/%d", course.ID), otherToken, map[string]string{
		"course_name": "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, router, "PUT", fmt.Sprintf("/courses/%d", course.ID), "", map[string]string{
		"course_name": "Hijacked",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeleteCourse(t *testing.T) {
	db, router := setupTest(t)
	user, token := createTestUser(t, db, "user1")

	course := models.Course{CourseCode: "CS101", CourseName: "Intro", UserID: user.ID}
	require.NoError(t, db.Create(&course).Error)

	post := models.ReviewPost{
		ReviewPostTitle: "Review",
		ReviewPostText:  "Text",
		CourseID:        course.ID,
		UserID:          user.ID,
	}
	require.NoError(t, db.Create(&post).Error)

	comment := models.Comment{CommentText: "Nice", ReviewPostID: post.ID, UserID: user.ID}
	require.NoError(t, db.Create(&comment).Error)

	rec := doRequest(t, router, "DELETE", fmt.Sprintf("/courses/%d", course.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Course deleted")

	// The course and its dependents are gone
	var count int64
	require.NoError(t, db.Model(&models.Course{}).Where("id = ?", course.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
	require.NoError(t, db.Model(&models.ReviewPost{}).Where("course_id = ?", course.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
	require.NoError(t, db.Model(&models.Comment{}).Where("review_post_id = ?", post.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestDeleteCourseForbiddenForNonOwner(t *testing.T) {
	db, router := setupTest(t)
	user, _ := createTestUser(t, db, "user1")
	_, otherToken := createTestUser(t, db, "user2")

	course := models.Course{CourseCode: "CS101", CourseName: "Intro", UserID: user.ID}
	require.NoError(t, db.Create(&course).Error)

	rec := doRequest(t, router, "DELETE", fmt.Sprintf("/courses/%d", course.ID), otherToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, router, "DELETE", fmt.Sprintf("/courses/%d", course.ID), "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
