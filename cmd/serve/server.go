package serve

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/pdrpinto/graphsearch"
	"github.com/pdrpinto/graphsearch/grid"
	"github.com/pdrpinto/graphsearch/internal/telemetry"
)

// ErrTooManySessions is returned when the session limit is reached.
var ErrTooManySessions = errors.New("too many sessions")

// CreateSessionRequest starts a stepping session. When Maze is empty a random
// grid is generated from the remaining fields.
type CreateSessionRequest struct {
	Strategy string  `json:"strategy"`
	Maze     string  `json:"maze,omitempty"`
	Width    int     `json:"w,omitempty"`
	Height   int     `json:"h,omitempty"`
	Clusters int     `json:"clusters,omitempty"`
	Steps    int     `json:"steps,omitempty"`
	Density  float64 `json:"density,omitempty"`
	Seed     int64   `json:"seed,omitempty"`
}

// CreateSessionResponse identifies a new session.
type CreateSessionResponse struct {
	ID       string `json:"id"`
	Strategy string `json:"strategy"`
	W        int    `json:"w"`
	H        int    `json:"h"`
}

// Snapshot is the JSON view of one expansion.
type Snapshot struct {
	Step     int      `json:"step"`
	W        int      `json:"w"`
	H        int      `json:"h"`
	Walls    [][2]int `json:"walls"`
	Frontier [][2]int `json:"open,omitempty"`
	Visited  [][2]int `json:"closed,omitempty"`
	Current  [2]int   `json:"current"`
	Start    [2]int   `json:"start"`
	Goal     [2]int   `json:"goal"`
	Done     bool     `json:"done"`
	Found    bool     `json:"found"`
	Cost     float64  `json:"cost,omitempty"`
	Path     [][2]int `json:"path,omitempty"`
}

type session struct {
	mu       sync.Mutex
	grid     *grid.Grid
	stepper  *graphsearch.Stepper[grid.Point]
	strategy graphsearch.Strategy
	created  time.Time
}

func (sess *session) close() {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.stepper.Close()
}

// Server owns the live stepping sessions.
type Server struct {
	logger      *slog.Logger
	options     []graphsearch.Option
	maxSessions int

	mu       sync.Mutex
	sessions map[string]*session
}

// NewServer creates a server. options are applied to every stepper it creates.
func NewServer(logger *slog.Logger, maxSessions int, options ...graphsearch.Option) *Server {
	return &Server{
		logger:      logger,
		options:     options,
		maxSessions: maxSessions,
		sessions:    make(map[string]*session),
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("graphsearch"))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", func(c *gin.Context) {
		handler := telemetry.MetricsHandler()
		if handler == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "prometheus exporter disabled"})
			return
		}
		handler.ServeHTTP(c.Writer, c.Request)
	})

	v1 := router.Group("/v1")
	v1.POST("/sessions", s.handleCreate)
	v1.POST("/sessions/:id/step", s.handleStep)
	v1.DELETE("/sessions/:id", s.handleDelete)
	return router
}

// Close stops every session.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		sess.close()
		delete(s.sessions, id)
	}
}

func (s *Server) handleCreate(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	strategy := graphsearch.AStar
	if req.Strategy != "" {
		parsed, err := graphsearch.ParseStrategy(req.Strategy)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		strategy = parsed
	}

	g, err := buildGrid(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// the stepper outlives this request, so it must not inherit its context
	stepper, err := graphsearch.NewStepper(context.Background(), g.Problem(strategy == graphsearch.AStar), g.Start, strategy, s.options...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	id := uuid.NewString()
	if err := s.add(id, &session{grid: g, stepper: stepper, strategy: strategy, created: time.Now()}); err != nil {
		stepper.Close()
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
		return
	}

	s.logger.Info("session created",
		slog.String("session_id", id),
		slog.String("strategy", strategy.String()),
		slog.Int("w", g.Width),
		slog.Int("h", g.Height),
	)
	c.JSON(http.StatusCreated, CreateSessionResponse{ID: id, Strategy: strategy.String(), W: g.Width, H: g.Height})
}

func (s *Server) handleStep(c *gin.Context) {
	sess, ok := s.get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	st, err := sess.stepper.Step()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	snapshot := toSnapshot(sess.grid, st)
	if st.Found {
		snapshot.Cost = sess.stepper.Result().TotalCost
	}
	c.JSON(http.StatusOK, snapshot)
}

func (s *Server) handleDelete(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	sess.close()
	s.logger.Info("session closed", slog.String("session_id", id), slog.Duration("age", time.Since(sess.created)))
	c.Status(http.StatusNoContent)
}

func (s *Server) add(id string, sess *session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sessions) >= s.maxSessions {
		return ErrTooManySessions
	}
	s.sessions[id] = sess
	return nil
}

func (s *Server) get(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func buildGrid(req CreateSessionRequest) (*grid.Grid, error) {
	if req.Maze != "" {
		return grid.Parse(strings.NewReader(req.Maze))
	}

	wVal, hVal := 40, 24
	clusters, steps := 8, 200
	density := 0.25
	if req.Width > 4 {
		wVal = req.Width
	}
	if req.Height > 4 {
		hVal = req.Height
	}
	if req.Clusters > 0 {
		clusters = req.Clusters
	}
	if req.Steps > 0 {
		steps = req.Steps
	}
	if req.Density > 0 && req.Density <= 1 {
		density = req.Density
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return grid.Generate(wVal, hVal, clusters, steps, density, rand.New(rand.NewSource(seed))), nil
}

func toSnapshot(g *grid.Grid, st graphsearch.StepSnapshot[grid.Point]) Snapshot {
	s := Snapshot{
		Step:  st.StepIndex,
		W:     g.Width,
		H:     g.Height,
		Walls: setToList(g.Walls),
		Start: pointToPair(g.Start),
		Goal:  pointToPair(g.Goal),
		Done:  st.Done,
		Found: st.Found,
	}
	s.Current = pointToPair(st.Current)
	if len(st.Frontier) > 0 {
		s.Frontier = make([][2]int, 0, len(st.Frontier))
		for _, p := range st.Frontier {
			s.Frontier = append(s.Frontier, pointToPair(p))
		}
	}
	if len(st.Visited) > 0 {
		s.Visited = setToList(st.Visited)
	}
	if st.Found && len(st.Path) > 0 {
		s.Path = make([][2]int, 0, len(st.Path))
		for _, p := range st.Path {
			s.Path = append(s.Path, pointToPair(p))
		}
	}
	return s
}

func pointToPair(p grid.Point) [2]int { return [2]int{p.X, p.Y} }

// setToList lists the members of m in row-major order.
func setToList(m map[grid.Point]bool) [][2]int {
	res := make([][2]int, 0, len(m))
	for p, ok := range m {
		if ok {
			res = append(res, pointToPair(p))
		}
	}
	slices.SortFunc(res, func(a, b [2]int) int {
		if a[1] != b[1] {
			return a[1] - b[1]
		}
		return a[0] - b[0]
	})
	return res
}
