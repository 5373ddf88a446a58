package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/psucr/campus-review-server/service/comment"
	"github.com/psucr/campus-review-server/service/course"
	"github.com/psucr/campus-review-server/service/event"
	"github.com/psucr/campus-review-server/service/review"
	"github.com/psucr/campus-review-server/service/user"
	"gorm.io/gorm"
)

type APIServer struct {
	address string
	db      *gorm.DB
}

func NewApiServer(address string, db *gorm.DB) *APIServer {
	return &APIServer{
		address: address,
		db:      db,
	}
}

func (s *APIServer) Run() error {
	router := mux.NewRouter()
	subrouter := router.PathPrefix("/api/v1").Subrouter()

	subrouter.HandleFunc("/", handleIndex).Methods("GET")

	userHandler := user.NewHandler(s.db)
	userHandler.RegisterRoutes(subrouter)

	courseHandler := course.NewCourseHandler(s.db)
	courseHandler.RegisterRoutes(subrouter)

	reviewHandler := review.NewReviewPostHandler(s.db)
	reviewHandler.RegisterRoutes(subrouter)

	commentHandler := comment.NewCommentHandler(s.db)
	commentHandler.RegisterRoutes(subrouter)

	eventHandler := event.NewEventHandler(s.db)
	eventHandler.RegisterRoutes(subrouter)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	log.Println("Server running at", s.address)
	return http.ListenAndServe(s.address, cors(router))
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "PSU Course Review API",
	})
}
