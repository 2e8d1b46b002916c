package mockapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	api "MoveDesk/internal/API"
)

// ---- users ----

func (s *Server) listUsers(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	role := c.QueryParam("role")
	search := c.QueryParam("search")
	active := c.QueryParam("active")

	var filtered []api.User
	for _, u := range s.users {
		if role != "" && u.Role != role {
			continue
		}
		if search != "" && !containsFold(u.Username, search) && !containsFold(u.Email, search) {
			continue
		}
		if active == "true" && !u.Active || active == "false" && u.Active {
			continue
		}
		filtered = append(filtered, u)
	}

	pageItems, pagination := paginate(c, filtered)
	return okPaged(c, pageItems, pagination)
}

func (s *Server) getUser(c echo.Context) error {
	id, err := intParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid user id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return ok(c, u)
		}
	}

	return fail(c, http.StatusNotFound, "user not found")
}

func (s *Server) createUser(c echo.Context) error {
	params := api.UserParams{}
	if err := c.Bind(&params); err != nil || params.Username == "" || params.Email == "" {
		return fail(c, http.StatusBadRequest, "username and email are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := api.User{
		ID:        s.id(),
		Username:  params.Username,
		Email:     params.Email,
		Role:      params.Role,
		Active:    params.Active == nil || *params.Active,
		CreatedAt: time.Now().UTC(),
	}
	if user.Role == "" {
		user.Role = "member"
	}
	s.users = append(s.users, user)

	return ok(c, user)
}

func (s *Server) updateUser(c echo.Context) error {
	id, err := intParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid user id")
	}

	params := api.UserParams{}
	if err := c.Bind(&params); err != nil {
		return fail(c, http.StatusBadRequest, "malformed body")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		if params.Username != "" {
			s.users[i].Username = params.Username
		}
		if params.Email != "" {
			s.users[i].Email = params.Email
		}
		if params.Role != "" {
			s.users[i].Role = params.Role
		}
		if params.Active != nil {
			s.users[i].Active = *params.Active
		}
		return ok(c, s.users[i])
	}

	return fail(c, http.StatusNotFound, "user not found")
}

func (s *Server) deleteUser(c echo.Context) error {
	id, err := intParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid user id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return c.JSON(http.StatusOK, envelope{Success: true, Message: "user deleted"})
		}
	}

	return fail(c, http.StatusNotFound, "user not found")
}

// ---- moves ----

func (s *Server) listMoves(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	styleID := c.QueryParam("styleId")
	difficulty := c.QueryParam("difficulty")
	status := c.QueryParam("status")
	search := c.QueryParam("search")

	var filtered []api.DanceMove
	for _, m := range s.moves {
		if styleID != "" && styleID != int64String(m.StyleID) {
			continue
		}
		if difficulty != "" && m.Difficulty != difficulty {
			continue
		}
		if status != "" && m.Status != status {
			continue
		}
		if search != "" && !containsFold(m.Name, search) {
			continue
		}
		filtered = append(filtered, m)
	}

	pageItems, pagination := paginate(c, filtered)
	return okPaged(c, pageItems, pagination)
}

func (s *Server) getMove(c echo.Context) error {
	id, err := intParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid move id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.moves {
		if m.ID == id {
			return ok(c, m)
		}
	}

	return fail(c, http.StatusNotFound, "move not found")
}

func (s *Server) createMove(c echo.Context) error {
	params := api.MoveParams{}
	if err := c.Bind(&params); err != nil || params.Name == "" {
		return fail(c, http.StatusBadRequest, "move name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	move := api.DanceMove{
		ID:          s.id(),
		Name:        params.Name,
		StyleID:     params.StyleID,
		StyleName:   s.styleName(params.StyleID),
		Difficulty:  params.Difficulty,
		Description: params.Description,
		VideoURL:    params.VideoURL,
		Status:      params.Status,
		CreatedAt:   time.Now().UTC(),
	}
	if move.Status == "" {
		move.Status = api.MoveStatusDraft
	}
	s.moves = append(s.moves, move)

	return ok(c, move)
}

func (s *Server) updateMove(c echo.Context) error {
	id, err := intParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid move id")
	}

	params := api.MoveParams{}
	if err := c.Bind(&params); err != nil {
		return fail(c, http.StatusBadRequest, "malformed body")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.moves {
		if s.moves[i].ID != id {
			continue
		}
		if params.Name != "" {
			s.moves[i].Name = params.Name
		}
		if params.StyleID > 0 {
			s.moves[i].StyleID = params.StyleID
			s.moves[i].StyleName = s.styleName(params.StyleID)
		}
		if params.Difficulty != "" {
			s.moves[i].Difficulty = params.Difficulty
		}
		if params.Description != "" {
			s.moves[i].Description = params.Description
		}
		if params.VideoURL != "" {
			s.moves[i].VideoURL = params.VideoURL
		}
		if params.Status != "" {
			s.moves[i].Status = params.Status
		}
		return ok(c, s.moves[i])
	}

	return fail(c, http.StatusNotFound, "move not found")
}

func (s *Server) deleteMove(c echo.Context) error {
	id, err := intParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid move id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.moves {
		if s.moves[i].ID == id {
			s.moves = append(s.moves[:i], s.moves[i+1:]...)
			return c.JSON(http.StatusOK, envelope{Success: true, Message: "move deleted"})
		}
	}

	return fail(c, http.StatusNotFound, "move not found")
}

// ---- styles ----

func (s *Server) listStyles(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	search := c.QueryParam("search")
	var filtered []api.DanceStyle
	for _, st := range s.styles {
		if search != "" && !containsFold(st.Name, search) {
			continue
		}
		filtered = append(filtered, st)
	}

	return ok(c, filtered)
}

func (s *Server) getStyle(c echo.Context) error {
	id, err := intParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid style id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.styles {
		if st.ID == id {
			return ok(c, st)
		}
	}

	return fail(c, http.StatusNotFound, "style not found")
}

func (s *Server) createStyle(c echo.Context) error {
	params := api.StyleParams{}
	if err := c.Bind(&params); err != nil || params.Name == "" {
		return fail(c, http.StatusBadRequest, "style name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	style := api.DanceStyle{
		ID:          s.id(),
		Name:        params.Name,
		Description: params.Description,
		Origin:      params.Origin,
	}
	s.styles = append(s.styles, style)

	return ok(c, style)
}

func (s *Server) updateStyle(c echo.Context) error {
	id, err := intParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid style id")
	}

	params := api.StyleParams{}
	if err := c.Bind(&params); err != nil {
		return fail(c, http.StatusBadRequest, "malformed body")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.styles {
		if s.styles[i].ID != id {
			continue
		}
		if params.Name != "" {
			s.styles[i].Name = params.Name
		}
		if params.Description != "" {
			s.styles[i].Description = params.Description
		}
		if params.Origin != "" {
			s.styles[i].Origin = params.Origin
		}
		return ok(c, s.styles[i])
	}

	return fail(c, http.StatusNotFound, "style not found")
}

func (s *Server) deleteStyle(c echo.Context) error {
	id, err := intParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid style id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.styles {
		if s.styles[i].ID == id {
			s.styles = append(s.styles[:i], s.styles[i+1:]...)
			return c.JSON(http.StatusOK, envelope{Success: true, Message: "style deleted"})
		}
	}

	return fail(c, http.StatusNotFound, "style not found")
}

// ---- submissions ----

func (s *Server) listSubmissions(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := c.QueryParam("status")
	var filtered []api.MoveSubmission
	for _, sub := range s.submissions {
		if status != "" && sub.Status != status {
			continue
		}
		filtered = append(filtered, sub)
	}

	pageItems, pagination := paginate(c, filtered)
	return okPaged(c, pageItems, pagination)
}

func (s *Server) getSubmission(c echo.Context) error {
	id, err := intParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid submission id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sub := range s.submissions {
		if sub.ID == id {
			return ok(c, sub)
		}
	}

	return fail(c, http.StatusNotFound, "submission not found")
}

func (s *Server) reviewSubmission(c echo.Context) error {
	id, err := intParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid submission id")
	}

	decision := api.ReviewDecision{}
	if err := c.Bind(&decision); err != nil {
		return fail(c, http.StatusBadRequest, "malformed body")
	}
	if decision.Status != api.SubmissionApproved && decision.Status != api.SubmissionRejected {
		return fail(c, http.StatusBadRequest, "status must be approved or rejected")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.submissions {
		if s.submissions[i].ID != id {
			continue
		}
		if s.submissions[i].Status != api.SubmissionPending {
			return fail(c, http.StatusConflict, "submission already reviewed")
		}

		now := time.Now().UTC()
		s.submissions[i].Status = decision.Status
		s.submissions[i].ReviewNote = decision.Note
		s.submissions[i].ReviewedAt = &now
		return ok(c, s.submissions[i])
	}

	return fail(c, http.StatusNotFound, "submission not found")
}

// ---- dashboard ----

func (s *Server) stats(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := api.PlatformStats{
		TotalUsers:  len(s.users),
		TotalMoves:  len(s.moves),
		TotalStyles: len(s.styles),
	}
	for _, u := range s.users {
		if u.Active {
			stats.ActiveUsers++
		}
	}
	for _, sub := range s.submissions {
		if sub.Status == api.SubmissionPending {
			stats.PendingSubmissions++
		}
	}

	return ok(c, stats)
}

func (s *Server) recentActivity(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return ok(c, s.activity)
}

func (s *Server) styleName(id int64) string {
	for _, st := range s.styles {
		if st.ID == id {
			return st.Name
		}
	}
	return ""
}
