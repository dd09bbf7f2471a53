// Package apitest provides an in-process fake of the after-school backend
// for client tests. It implements the consumed REST surface with in-memory
// state and owns the authoritative capacity counts, the way the real backend
// does.
package apitest

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/klabu/core/notice"
	"github.com/trezcool/klabu/core/program"
	"github.com/trezcool/klabu/core/stats"
)

// Claims is the token payload the fake backend issues on login.
type Claims struct {
	jwt.StandardClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Account is a registered user of any role.
type Account struct {
	ID            int
	Role          string // student, teacher, admin
	Name          string
	Email         string
	Password      string
	PhoneNumber   string
	Grade         int
	ClassNo       int
	ClassNumber   int
	StudentNumber int
}

// RequestLog records one received request, for assertions on what the client
// actually sent.
type RequestLog struct {
	Method string
	Path   string
	Auth   string // raw Authorization header
}

type Server struct {
	app    *echo.Echo
	secret []byte

	mu          sync.Mutex
	accounts    map[string]*Account // by email
	programs    []*program.Program
	enrollments map[int]map[string]struct{} // classID -> student emails
	notices     []*notice.Notice
	requests    []RequestLog

	nextAccountID int
	nextClassID   int
	nextNoticeID  int
}

var _ http.Handler = (*Server)(nil)

func NewServer() *Server {
	s := &Server{
		app:         echo.New(),
		secret:      []byte("apitest-secret"),
		accounts:    make(map[string]*Account),
		enrollments: make(map[int]map[string]struct{}),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.HideBanner = true
	s.app.Logger.SetLevel(log.OFF) // keep test output clean
	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(s.record)
	s.app.Use(middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey:    s.secret,
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    "userToken",
		Claims:        new(Claims),
		Skipper: func(ctx echo.Context) bool {
			return strings.HasPrefix(ctx.Path(), "/api/auth/")
		},
	}))

	s.app.POST("/api/auth/login/:role", s.login)
	s.app.POST("/api/auth/signup/:role", s.signup)

	s.app.GET("/api/classes", s.listPrograms)
	s.app.POST("/api/classes", s.createProgram)
	s.app.PUT("/api/classes/:id", s.updateProgram)
	s.app.DELETE("/api/classes/:id", s.deleteProgram)
	s.app.POST("/api/classes/:id/enroll", s.enroll)
	s.app.GET("/api/classes/:id/students", s.roster)
	s.app.GET("/api/students/me/classes", s.myClasses)
	s.app.GET("/api/teachers/me/classes", s.teacherClasses)

	s.app.GET("/api/users/students", s.listStudents)
	s.app.GET("/api/users/teachers", s.listTeachers)
	s.app.DELETE("/api/users/students/:id", s.deleteStudent)

	s.app.GET("/api/teachers/me/notices", s.teacherNotices)
	s.app.GET("/api/students/me/notices", s.studentNotices)
	s.app.POST("/api/classes/:id/notices", s.createNotice)
	s.app.PUT("/api/notices/:id", s.updateNotice)
	s.app.DELETE("/api/notices/:id", s.deleteNotice)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}

func (s *Server) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		s.mu.Lock()
		s.requests = append(s.requests, RequestLog{
			Method: ctx.Request().Method,
			Path:   ctx.Request().URL.Path,
			Auth:   ctx.Request().Header.Get("Authorization"),
		})
		s.mu.Unlock()
		return next(ctx)
	}
}

// Requests returns a copy of everything received so far.
func (s *Server) Requests() []RequestLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	reqs := make([]RequestLog, len(s.requests))
	copy(reqs, s.requests)
	return reqs
}

func (s *Server) claims(ctx echo.Context) *Claims {
	token, ok := ctx.Get("userToken").(*jwt.Token)
	if !ok {
		return &Claims{}
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return &Claims{}
	}
	return claims
}

func httpErr(ctx echo.Context, code int, msg string) error {
	return ctx.JSON(code, echo.Map{"error": msg})
}

// auth

func (s *Server) login(ctx echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := ctx.Bind(&req); err != nil {
		return httpErr(ctx, http.StatusBadRequest, "malformed body")
	}

	s.mu.Lock()
	acc, ok := s.accounts[req.Email]
	s.mu.Unlock()
	if !ok || acc.Password != req.Password || acc.Role != ctx.Param("role") {
		return httpErr(ctx, http.StatusUnauthorized, "authentication failed")
	}

	now := time.Now()
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.Itoa(acc.ID),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(time.Hour).Unix(),
		},
		Email: acc.Email,
		Role:  acc.Role,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return httpErr(ctx, http.StatusInternalServerError, "signing token")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"accessToken": token})
}

func (s *Server) signup(ctx echo.Context) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := ctx.Bind(&req); err != nil {
		return httpErr(ctx, http.StatusBadRequest, "malformed body")
	}
	role := ctx.Param("role")
	switch role {
	case "student", "teacher", "admin":
	default:
		return httpErr(ctx, http.StatusBadRequest, "unknown role")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[req.Email]; exists {
		return httpErr(ctx, http.StatusConflict, "email already registered")
	}
	s.nextAccountID++
	s.accounts[req.Email] = &Account{
		ID:       s.nextAccountID,
		Role:     role,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	return ctx.NoContent(http.StatusCreated)
}

// programs

func (s *Server) listPrograms(ctx echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ctx.JSON(http.StatusOK, s.programsLocked())
}

func (s *Server) programsLocked() []program.Program {
	out := make([]program.Program, 0, len(s.programs))
	for _, p := range s.programs {
		out = append(out, *p)
	}
	return out
}

func (s *Server) createProgram(ctx echo.Context) error {
	var req program.NewProgram
	if err := ctx.Bind(&req); err != nil {
		return httpErr(ctx, http.StatusBadRequest, "malformed body")
	}
	claims := s.claims(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextClassID++
	p := &program.Program{
		ID:          s.nextClassID,
		Title:       req.Title,
		Description: req.Description,
		TeacherName: s.accountNameLocked(claims.Email),
		Location:    req.Location,
		Capacity:    req.Capacity,
		Schedules:   req.Schedules,
	}
	s.programs = append(s.programs, p)
	s.enrollments[p.ID] = make(map[string]struct{})
	return ctx.JSON(http.StatusCreated, *p)
}

func (s *Server) updateProgram(ctx echo.Context) error {
	id, _ := strconv.Atoi(ctx.Param("id"))
	var req program.UpdateProgram
	if err := ctx.Bind(&req); err != nil {
		return httpErr(ctx, http.StatusBadRequest, "malformed body")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.programLocked(id)
	if p == nil {
		return httpErr(ctx, http.StatusNotFound, "class not found")
	}
	p.Title = req.Title
	p.Description = req.Description
	p.Location = req.Location
	p.Capacity = req.Capacity
	p.Schedules = req.Schedules
	return ctx.JSON(http.StatusOK, *p)
}

func (s *Server) deleteProgram(ctx echo.Context) error {
	id, _ := strconv.Atoi(ctx.Param("id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.programs {
		if p.ID == id {
			s.programs = append(s.programs[:i], s.programs[i+1:]...)
			delete(s.enrollments, id)
			return ctx.NoContent(http.StatusNoContent)
		}
	}
	return httpErr(ctx, http.StatusNotFound, "class not found")
}

func (s *Server) programLocked(id int) *program.Program {
	for _, p := range s.programs {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Server) accountNameLocked(email string) string {
	if acc, ok := s.accounts[email]; ok {
		return acc.Name
	}
	return ""
}

// enrollment; the fake owns the true capacity state

func (s *Server) enroll(ctx echo.Context) error {
	id, _ := strconv.Atoi(ctx.Param("id"))
	claims := s.claims(ctx)
	if claims.Role != "student" {
		return httpErr(ctx, http.StatusForbidden, "students only")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.programLocked(id)
	if p == nil {
		return httpErr(ctx, http.StatusNotFound, "class not found")
	}
	enrolled := s.enrollments[id]
	if _, dup := enrolled[claims.Email]; dup {
		return httpErr(ctx, http.StatusConflict, "already enrolled")
	}
	if p.CurrentCount >= p.Capacity {
		return httpErr(ctx, http.StatusConflict, "class is full")
	}
	enrolled[claims.Email] = struct{}{}
	p.CurrentCount++
	return ctx.NoContent(http.StatusOK)
}

func (s *Server) roster(ctx echo.Context) error {
	id, _ := strconv.Atoi(ctx.Param("id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.programLocked(id) == nil {
		return httpErr(ctx, http.StatusNotFound, "class not found")
	}
	roster := make([]program.RosterEntry, 0)
	for email := range s.enrollments[id] {
		if acc, ok := s.accounts[email]; ok {
			roster = append(roster, program.RosterEntry{
				StudentID:     acc.ID,
				Name:          acc.Name,
				Grade:         acc.Grade,
				ClassNumber:   acc.ClassNumber,
				StudentNumber: acc.StudentNumber,
			})
		}
	}
	return ctx.JSON(http.StatusOK, roster)
}

func (s *Server) myClasses(ctx echo.Context) error {
	claims := s.claims(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	classes := make([]program.Program, 0)
	for _, p := range s.programs {
		if _, ok := s.enrollments[p.ID][claims.Email]; ok {
			classes = append(classes, *p)
		}
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (s *Server) teacherClasses(ctx echo.Context) error {
	claims := s.claims(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	name := s.accountNameLocked(claims.Email)
	classes := make([]program.Program, 0)
	for _, p := range s.programs {
		if p.TeacherName == name {
			classes = append(classes, *p)
		}
	}
	return ctx.JSON(http.StatusOK, classes)
}

// admin users

func (s *Server) listStudents(ctx echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	students := make([]stats.Student, 0)
	for _, acc := range s.accounts {
		if acc.Role == "student" {
			students = append(students, stats.Student{
				ID:          acc.ID,
				Email:       acc.Email,
				Name:        acc.Name,
				Grade:       acc.Grade,
				ClassNo:     acc.ClassNo,
				ClassNumber: acc.ClassNumber,
				PhoneNumber: acc.PhoneNumber,
			})
		}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (s *Server) listTeachers(ctx echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	teachers := make([]stats.Teacher, 0)
	for _, acc := range s.accounts {
		if acc.Role == "teacher" {
			teachers = append(teachers, stats.Teacher{
				ID:          acc.ID,
				Email:       acc.Email,
				Name:        acc.Name,
				PhoneNumber: acc.PhoneNumber,
			})
		}
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (s *Server) deleteStudent(ctx echo.Context) error {
	id, _ := strconv.Atoi(ctx.Param("id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	for email, acc := range s.accounts {
		if acc.ID == id && acc.Role == "student" {
			delete(s.accounts, email)
			for _, enrolled := range s.enrollments {
				delete(enrolled, email)
			}
			return ctx.NoContent(http.StatusNoContent)
		}
	}
	return httpErr(ctx, http.StatusNotFound, "student not found")
}

// notices

func (s *Server) teacherNotices(ctx echo.Context) error {
	claims := s.claims(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	name := s.accountNameLocked(claims.Email)
	notices := make([]notice.Notice, 0)
	for _, n := range s.notices {
		if n.TeacherName == name {
			notices = append(notices, *n)
		}
	}
	return ctx.JSON(http.StatusOK, notices)
}

func (s *Server) studentNotices(ctx echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	notices := make([]notice.Notice, 0, len(s.notices))
	for _, n := range s.notices {
		notices = append(notices, *n)
	}
	return ctx.JSON(http.StatusOK, notices)
}

func (s *Server) createNotice(ctx echo.Context) error {
	id, _ := strconv.Atoi(ctx.Param("id"))
	var req notice.NewNotice
	if err := ctx.Bind(&req); err != nil {
		return httpErr(ctx, http.StatusBadRequest, "malformed body")
	}
	claims := s.claims(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.programLocked(id)
	if p == nil {
		return httpErr(ctx, http.StatusNotFound, "class not found")
	}
	s.nextNoticeID++
	n := &notice.Notice{
		ID:          s.nextNoticeID,
		ClassTitle:  p.Title, // by name; no foreign key in the payload
		TeacherName: s.accountNameLocked(claims.Email),
		Title:       req.Title,
		Content:     req.Content,
		Type:        req.Type,
		CreatedAt:   time.Now().UTC(),
	}
	s.notices = append(s.notices, n)
	return ctx.JSON(http.StatusCreated, *n)
}

func (s *Server) updateNotice(ctx echo.Context) error {
	id, _ := strconv.Atoi(ctx.Param("id"))
	var req notice.UpdateNotice
	if err := ctx.Bind(&req); err != nil {
		return httpErr(ctx, http.StatusBadRequest, "malformed body")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notices {
		if n.ID == id {
			n.Title = req.Title
			n.Content = req.Content
			n.Type = req.Type
			return ctx.JSON(http.StatusOK, *n)
		}
	}
	return httpErr(ctx, http.StatusNotFound, "notice not found")
}

func (s *Server) deleteNotice(ctx echo.Context) error {
	id, _ := strconv.Atoi(ctx.Param("id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notices {
		if n.ID == id {
			s.notices = append(s.notices[:i], s.notices[i+1:]...)
			return ctx.NoContent(http.StatusNoContent)
		}
	}
	return httpErr(ctx, http.StatusNotFound, "notice not found")
}
