// Package server exposes visitor arcades over HTTP and websockets.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"github.com/minaorangina/arcade"
	"github.com/minaorangina/arcade/internal/random"
	"github.com/minaorangina/arcade/registry"
	"github.com/minaorangina/arcade/store"
)

type NewArcadeRes struct {
	ArcadeID    string                `json:"arcade_id"`
	Departments []registry.Department `json:"departments"`
}

type DepartmentRes struct {
	ID         string              `json:"id"`
	Known      bool                `json:"known"`
	Descriptor registry.Descriptor `json:"descriptor"`
}

type ResultsRes struct {
	Department string         `json:"department,omitempty"`
	Results    []store.Result `json:"results"`
}

type ServerOpts struct {
	Registry registry.Registry
	Hubs     store.HubStore[*arcade.Hub]
	// Results is optional; without it wins are only logged
	Results store.ResultStore
	// Seed fixes every arcade's random source; 0 seeds each one freshly
	Seed  int64
	Frame time.Duration
	// IdleTimeout closes and forgets an arcade nobody has been connected
	// to for this long. Zero keeps arcades until they are deleted.
	IdleTimeout time.Duration
	// AllowedOrigins defaults to any origin
	AllowedOrigins []string
	Logger         *log.Logger
	AccessLog      io.Writer
}

// ArcadeServer is an arcade server
type ArcadeServer struct {
	opts     ServerOpts
	upgrader websocket.Upgrader
	http.Server
}

// NewServer creates a new ArcadeServer
func NewServer(opts ServerOpts) *ArcadeServer {
	if opts.Registry == nil {
		opts.Registry = registry.Default()
	}
	if opts.Hubs == nil {
		opts.Hubs = store.NewInMemoryHubStore[*arcade.Hub]()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.AccessLog == nil {
		opts.AccessLog = os.Stdout
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	s := &ArcadeServer{opts: opts}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	router := http.NewServeMux()
	router.HandleFunc("GET /departments", s.HandleDepartments)
	router.HandleFunc("GET /departments/{id}", s.HandleDepartment)
	router.HandleFunc("POST /arcade", s.HandleNewArcade)
	router.HandleFunc("GET /arcade/{id}", s.HandleFindArcade)
	router.HandleFunc("DELETE /arcade/{id}", s.HandleCloseArcade)
	router.HandleFunc("GET /ws", s.HandleWS)
	router.HandleFunc("GET /results", s.HandleResults)

	cors := handlers.CORS(
		handlers.AllowedOrigins(opts.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(opts.Logger),
		handlers.PrintRecoveryStack(true),
	)
	s.Handler = recovery(cors(handlers.LoggingHandler(opts.AccessLog, router)))

	return s
}

// ServeHTTP serves http
func (s *ArcadeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Handler.ServeHTTP(w, r)
}

// CloseArcades disposes of every live arcade
func (s *ArcadeServer) CloseArcades() {
	for _, id := range s.opts.Hubs.IDs() {
		s.opts.Hubs.Remove(id)
	}
}

func (s *ArcadeServer) forgetArcade(id string) {
	if err := s.opts.Hubs.Remove(id); err == nil {
		s.opts.Logger.Printf("arcade %s closed", id)
	}
}

func (s *ArcadeServer) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.opts.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func (s *ArcadeServer) HandleDepartments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.opts.Registry.Departments())
}

// HandleDepartment resolves a department's descriptor. Unknown ids get the
// fallback descriptor rather than a 404.
func (s *ArcadeServer) HandleDepartment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	writeJSON(w, http.StatusOK, DepartmentRes{
		ID:         id,
		Known:      s.opts.Registry.Known(id),
		Descriptor: s.opts.Registry.Resolve(id),
	})
}

// HandleNewArcade starts a hub for a new visitor
func (s *ArcadeServer) HandleNewArcade(w http.ResponseWriter, r *http.Request) {
	rnd, err := random.New(s.opts.Seed)
	if err != nil {
		writeServerError(s.opts.Logger, w, err)
		return
	}

	hub, err := arcade.NewHub(arcade.HubOpts{
		Registry: s.opts.Registry,
		Rand:     rnd,
		Frame:    s.opts.Frame,
		Results:  s.opts.Results,
		Logger:   s.opts.Logger,

		IdleTimeout: s.opts.IdleTimeout,
		OnIdle:      s.forgetArcade,
	})
	if err != nil {
		writeServerError(s.opts.Logger, w, err)
		return
	}

	if err := s.opts.Hubs.Add(hub); err != nil {
		hub.Close()
		writeServerError(s.opts.Logger, w, err)
		return
	}
	s.opts.Logger.Printf("arcade %s opened", hub.ID())

	writeJSON(w, http.StatusCreated, NewArcadeRes{
		ArcadeID:    hub.ID(),
		Departments: hub.Departments(),
	})
}

func (s *ArcadeServer) HandleFindArcade(w http.ResponseWriter, r *http.Request) {
	hub, ok := s.findHub(w, r.PathValue("id"))
	if !ok {
		return
	}

	snap, err := hub.Snapshot(r.Context())
	if err != nil {
		writeServerError(s.opts.Logger, w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *ArcadeServer) HandleCloseArcade(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	err := s.opts.Hubs.Remove(id)
	if errors.Is(err, store.ErrUnknownArcadeID) {
		writeText(w, http.StatusNotFound, unknownArcadeIDMsg(id))
		return
	}
	if err != nil {
		writeServerError(s.opts.Logger, w, err)
		return
	}
	s.opts.Logger.Printf("arcade %s closed", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *ArcadeServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	arcadeID := r.URL.Query().Get("arcade_id")
	if arcadeID == "" {
		writeText(w, http.StatusBadRequest, "missing arcade ID")
		return
	}

	hub, ok := s.findHub(w, arcadeID)
	if !ok {
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied
		s.opts.Logger.Println(err)
		return
	}

	if _, err := arcade.NewWSClient(hub, conn); err != nil {
		s.opts.Logger.Printf("arcade %s: could not add client: %v", arcadeID, err)
		conn.Close()
	}
}

func (s *ArcadeServer) HandleResults(w http.ResponseWriter, r *http.Request) {
	department := r.URL.Query().Get("department")
	res := ResultsRes{Department: department, Results: []store.Result{}}

	if s.opts.Results != nil {
		results, err := s.opts.Results.List(r.Context(), department)
		if err != nil {
			writeServerError(s.opts.Logger, w, err)
			return
		}
		res.Results = results
	}

	writeJSON(w, http.StatusOK, res)
}

func (s *ArcadeServer) findHub(w http.ResponseWriter, id string) (*arcade.Hub, bool) {
	hub, err := s.opts.Hubs.Find(id)
	if errors.Is(err, store.ErrUnknownArcadeID) {
		writeText(w, http.StatusNotFound, unknownArcadeIDMsg(id))
		return nil, false
	}
	if err != nil {
		writeServerError(s.opts.Logger, w, err)
		return nil, false
	}
	return hub, true
}

func unknownArcadeIDMsg(unknownID string) string {
	return fmt.Sprintf("unknown arcade ID '%s'", unknownID)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		log.Println(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}
