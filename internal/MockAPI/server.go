// Package mockapi is an in-process stand-in for the platform's admin API,
// used by tests and for local development. It speaks the same envelope
// contract as production and keeps its fixtures in memory.
package mockapi

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	api "MoveDesk/internal/API"
)

const (
	// AccessToken is the bearer token the mock issues and accepts.
	AccessToken  = "mock-access-token"
	RefreshToken = "mock-refresh-token"
)

type envelope struct {
	Success    bool            `json:"success"`
	Data       any             `json:"data,omitempty"`
	Error      string          `json:"error,omitempty"`
	Message    string          `json:"message,omitempty"`
	Pagination *api.Pagination `json:"pagination,omitempty"`
}

// Server holds the mutable fixture state behind an echo router.
type Server struct {
	echo *echo.Echo

	mu          sync.Mutex
	users       []api.User
	moves       []api.DanceMove
	styles      []api.DanceStyle
	submissions []api.MoveSubmission
	activity    []api.ActivityEntry
	nextID      int64
}

func NewServer() *Server {
	s := &Server{nextID: 1000}
	s.seed()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.POST("/api/auth/login", s.login)
	e.POST("/api/auth/refresh", s.refresh)
	e.POST("/api/auth/logout", s.logout)

	admin := e.Group("/api", s.requireToken)
	admin.GET("/admin/users", s.listUsers)
	admin.POST("/admin/users", s.createUser)
	admin.GET("/admin/users/:id", s.getUser)
	admin.PUT("/admin/users/:id", s.updateUser)
	admin.DELETE("/admin/users/:id", s.deleteUser)

	admin.GET("/admin/moves", s.listMoves)
	admin.POST("/admin/moves", s.createMove)
	admin.GET("/admin/moves/:id", s.getMove)
	admin.PUT("/admin/moves/:id", s.updateMove)
	admin.DELETE("/admin/moves/:id", s.deleteMove)

	admin.GET("/dance-styles", s.listStyles)
	admin.POST("/dance-styles", s.createStyle)
	admin.GET("/dance-styles/:id", s.getStyle)
	admin.PUT("/dance-styles/:id", s.updateStyle)
	admin.DELETE("/dance-styles/:id", s.deleteStyle)

	admin.GET("/admin/move-submissions", s.listSubmissions)
	admin.GET("/admin/move-submissions/:id", s.getSubmission)
	admin.PUT("/admin/move-submissions/:id/review", s.reviewSubmission)

	admin.GET("/admin/stats", s.stats)
	admin.GET("/admin/activity", s.recentActivity)

	s.echo = e
	return s
}

// Handler exposes the router for httptest servers.
func (s *Server) Handler() http.Handler { return s.echo }

// Start serves on addr until the process exits.
func (s *Server) Start(addr string) error { return s.echo.Start(addr) }

func (s *Server) seed() {
	now := time.Now().UTC()

	s.styles = []api.DanceStyle{
		{ID: 1, Name: "Breaking", Description: "Street dance born in the Bronx", Origin: "USA", MoveCount: 2},
		{ID: 2, Name: "House", Description: "Club style built on footwork and jacking", Origin: "USA", MoveCount: 1},
		{ID: 3, Name: "Popping", Description: "Funk style based on muscle contraction", Origin: "USA"},
	}
	s.users = []api.User{
		{ID: 1, Username: "admin", Email: "admin@movedesk.io", Role: "admin", Active: true, CreatedAt: now.Add(-90 * 24 * time.Hour)},
		{ID: 2, Username: "bboy_flow", Email: "flow@example.com", Role: "moderator", Active: true, CreatedAt: now.Add(-30 * 24 * time.Hour)},
		{ID: 3, Username: "jackin_jo", Email: "jo@example.com", Role: "member", Active: false, CreatedAt: now.Add(-7 * 24 * time.Hour)},
	}
	s.moves = []api.DanceMove{
		{ID: 1, Name: "Six Step", StyleID: 1, StyleName: "Breaking", Difficulty: "beginner", Status: api.MoveStatusPublished, CreatedAt: now.Add(-60 * 24 * time.Hour)},
		{ID: 2, Name: "Windmill", StyleID: 1, StyleName: "Breaking", Difficulty: "advanced", Status: api.MoveStatusPublished, CreatedAt: now.Add(-45 * 24 * time.Hour)},
		{ID: 3, Name: "Farmer", StyleID: 2, StyleName: "House", Difficulty: "intermediate", Status: api.MoveStatusDraft, CreatedAt: now.Add(-5 * 24 * time.Hour)},
	}
	s.submissions = []api.MoveSubmission{
		{ID: 1, MoveName: "Headspin", StyleID: 1, StyleName: "Breaking", SubmittedBy: "bboy_flow", VideoURL: "https://videos.example.com/headspin.mp4", Status: api.SubmissionPending, SubmittedAt: now.Add(-48 * time.Hour)},
		{ID: 2, MoveName: "Loose Legs", StyleID: 2, StyleName: "House", SubmittedBy: "jackin_jo", VideoURL: "https://videos.example.com/looselegs.mp4", Status: api.SubmissionPending, SubmittedAt: now.Add(-12 * time.Hour)},
	}
	s.activity = []api.ActivityEntry{
		{ID: 1, Type: "submission", Actor: "bboy_flow", Detail: "submitted Headspin", At: now.Add(-48 * time.Hour)},
		{ID: 2, Type: "move", Actor: "admin", Detail: "published Windmill", At: now.Add(-45 * 24 * time.Hour)},
	}
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

func ok(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

func okPaged(c echo.Context, data any, p *api.Pagination) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Data: data, Pagination: p})
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, envelope{Success: false, Error: msg})
}

func (s *Server) requireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		if header != "Bearer "+AccessToken {
			return fail(c, http.StatusUnauthorized, "invalid or expired session")
		}
		return next(c)
	}
}

func (s *Server) login(c echo.Context) error {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{}
	if err := c.Bind(&body); err != nil || body.Username == "" || body.Password == "" {
		return fail(c, http.StatusBadRequest, "username and password are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == body.Username && u.Active {
			return ok(c, map[string]any{
				"accessToken":  AccessToken,
				"refreshToken": RefreshToken,
				"user":         u,
			})
		}
	}

	return fail(c, http.StatusUnauthorized, "invalid credentials")
}

func (s *Server) refresh(c echo.Context) error {
	body := struct {
		RefreshToken string `json:"refreshToken"`
	}{}
	if err := c.Bind(&body); err != nil || body.RefreshToken != RefreshToken {
		return fail(c, http.StatusUnauthorized, "invalid refresh token")
	}

	return ok(c, map[string]string{
		"accessToken":  AccessToken,
		"refreshToken": RefreshToken,
	})
}

func (s *Server) logout(c echo.Context) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Message: "session revoked"})
}

func intParam(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func paginate[T any](c echo.Context, items []T) ([]T, *api.Pagination) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	total := len(items)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	pages := (total + limit - 1) / limit
	return items[start:end], &api.Pagination{Total: total, Page: page, Limit: limit, Pages: pages}
}

func int64String(v int64) string {
	return strconv.FormatInt(v, 10)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
