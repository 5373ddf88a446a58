package utils

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/psucr/campus-review-server/cmd/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCounterDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Course{}))
	return db
}

func TestBumpCounterIncrementAndDecrement(t *testing.T) {
	db := setupCounterDB(t)

	course := models.Course{CourseCode: "CS101", CourseName: "Intro", UserID: 1}
	require.NoError(t, db.Create(&course).Error)

	require.NoError(t, BumpCounter(db, &models.Course{}, course.ID, "review_posts_amount", 1))
	require.NoError(t, BumpCounter(db, &models.Course{}, course.ID, "review_posts_amount", 1))

	var got models.Course
	require.NoError(t, db.First(&got, course.ID).Error)
	assert.Equal(t, 2, got.ReviewPostsAmount)

	require.NoError(t, BumpCounter(db, &models.Course{}, course.ID, "review_posts_amount", -1))
	require.NoError(t, db.First(&got, course.ID).Error)
	assert.Equal(t, 1, got.ReviewPostsAmount)
}

func TestBumpCounterClampsAtZero(t *testing.T) {
	db := setupCounterDB(t)

	course := models.Course{CourseCode: "CS101", CourseName: "Intro", UserID: 1}
	require.NoError(t, db.Create(&course).Error)

	// Decrementing an already-zero counter must not go negative and must
	// not be treated as a missing parent.
	require.NoError(t, BumpCounter(db, &models.Course{}, course.ID, "review_posts_amount", -1))

	var got models.Course
	require.NoError(t, db.First(&got, course.ID).Error)
	assert.Equal(t, 0, got.ReviewPostsAmount)
}

func TestBumpCounterMissingParent(t *testing.T) {
	db := setupCounterDB(t)

	err := BumpCounter(db, &models.Course{}, 9999, "review_posts_amount", 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = BumpCounter(db, &models.Course{}, 9999, "review_posts_amount", -1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBumpCounterRollsBackWithTransaction(t *testing.T) {
	db := setupCounterDB(t)

	course := models.Course{CourseCode: "CS101", CourseName: "Intro", UserID: 1}
	require.NoError(t, db.Create(&course).Error)

	tx := db.Begin()
	require.NoError(t, BumpCounter(tx, &models.Course{}, course.ID, "review_posts_amount", 1))
	tx.Rollback()

	var got models.Course
	require.NoError(t, db.First(&got, course.ID).Error)
	assert.Equal(t, 0, got.ReviewPostsAmount)
}
