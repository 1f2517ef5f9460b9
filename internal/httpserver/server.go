// Package httpserver exposes the JSON API and the live-audio websocket.
package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mwestphal/pandachat/internal/achievements"
	"github.com/mwestphal/pandachat/internal/chat"
	"github.com/mwestphal/pandachat/internal/config"
	"github.com/mwestphal/pandachat/internal/convo"
	"github.com/mwestphal/pandachat/internal/store"
)

// Server bundles the router and its dependencies.
type Server struct {
	Echo *echo.Echo
	cfg  config.Config
	svc  *chat.Service
	db   *store.Store
}

// New constructs the configured Echo server with all routes registered.
func New(cfg config.Config, svc *chat.Service, db *store.Store) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{Echo: e, cfg: cfg, svc: svc, db: db}

	e.GET("/healthz", s.healthz)

	api := e.Group("/api")
	api.GET("/conversations", s.listConversations)
	api.POST("/conversations", s.createConversation)
	api.PUT("/conversations/:id/select", s.selectConversation)
	api.DELETE("/conversations/:id", s.deleteConversation)
	api.POST("/conversations/:id/messages", s.sendMessage)

	api.GET("/achievements", s.listAchievements)
	api.GET("/achievements/unlocks", s.drainUnlocks)
	api.GET("/streak", s.getStreak)
	api.GET("/progress", s.getProgress)
	api.POST("/daily-truth", s.dailyTruth)

	api.GET("/theme", s.getTheme)
	api.PUT("/theme", s.putTheme)

	api.POST("/history/pin", s.setPIN)
	api.POST("/history/unlock", s.unlockPIN)
	api.DELETE("/history/pin", s.clearPIN)

	api.GET("/live", s.handleLive)
	return s
}

func (s *Server) healthz(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (s *Server) listConversations(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"conversations": s.svc.Convos.List(),
		"activeId":      s.svc.Convos.ActiveID(),
	})
}

func (s *Server) createConversation(c echo.Context) error {
	created := s.svc.Convos.Create()
	s.svc.Persist()
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) selectConversation(c echo.Context) error {
	if !s.svc.Convos.Select(c.Param("id")) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "unknown conversation"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) deleteConversation(c echo.Context) error {
	s.svc.Convos.Delete(c.Param("id"))
	s.svc.Persist()
	return c.NoContent(http.StatusNoContent)
}

type sendRequest struct {
	Text string    `json:"text"`
	Mode chat.Mode `json:"mode"`
}

type replyPayload struct {
	Role     convo.Role     `json:"role"`
	Text     string         `json:"text"`
	Reaction convo.Reaction `json:"reaction,omitempty"`
	Audio    []byte         `json:"audio,omitempty"`
}

func (s *Server) sendMessage(c echo.Context) error {
	var req sendRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "text is required"})
	}
	switch req.Mode {
	case chat.ModeFree, chat.ModePremium, chat.ModeElite:
	case "":
		req.Mode = chat.ModeFree
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown mode"})
	}

	reply, ok := s.svc.Send(c.Request().Context(), c.Param("id"), req.Text, req.Mode)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "unknown conversation"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"reply": replyPayload{
			Role:     reply.Role,
			Text:     reply.Text,
			Reaction: reply.Reaction,
			Audio:    reply.Audio,
		},
		"unlocks": unlocksOrEmpty(s.svc.DrainUnlocks()),
	})
}

func (s *Server) listAchievements(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"achievements": s.svc.Engine.Snapshot(),
		"unlocked":     s.svc.Engine.UnlockedCount(),
		"total":        achievements.TotalCount(),
		"completed":    s.svc.Engine.FinalUnlocked(),
	})
}

func (s *Server) drainUnlocks(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"unlocks": unlocksOrEmpty(s.svc.DrainUnlocks()),
	})
}

func unlocksOrEmpty(u []achievements.Achievement) []achievements.Achievement {
	if u == nil {
		return []achievements.Achievement{}
	}
	return u
}

func (s *Server) getStreak(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"count":    s.svc.Streak.Count(),
		"lastDate": s.svc.Streak.LastDate(),
	})
}

func (s *Server) getProgress(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"points": s.svc.Progress.Points()})
}

func (s *Server) dailyTruth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"truth": s.svc.DailyTruth(c.Request().Context()),
	})
}

type themeRequest struct {
	Theme string `json:"theme"`
}

func (s *Server) getTheme(c echo.Context) error {
	theme, ok, err := s.db.Get(store.KeyTheme)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "storage unavailable"})
	}
	if !ok {
		theme = "dark"
	}
	return c.JSON(http.StatusOK, themeRequest{Theme: theme})
}

func (s *Server) putTheme(c echo.Context) error {
	var req themeRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Theme) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "theme is required"})
	}
	if err := s.db.Put(store.KeyTheme, req.Theme); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "storage unavailable"})
	}
	return c.NoContent(http.StatusNoContent)
}

type pinRequest struct {
	PIN string `json:"pin"`
}

func (s *Server) setPIN(c echo.Context) error {
	var req pinRequest
	if err := c.Bind(&req); err != nil || len(req.PIN) < 4 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "pin must be at least 4 characters"})
	}
	if err := s.db.Put(store.KeyHistoryPIN, req.PIN); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "storage unavailable"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) unlockPIN(c echo.Context) error {
	var req pinRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "pin is required"})
	}
	stored, ok, err := s.db.Get(store.KeyHistoryPIN)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "storage unavailable"})
	}
	unlocked := !ok || stored == req.PIN
	return c.JSON(http.StatusOK, map[string]bool{"unlocked": unlocked})
}

func (s *Server) clearPIN(c echo.Context) error {
	var req pinRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "pin is required"})
	}
	stored, ok, err := s.db.Get(store.KeyHistoryPIN)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "storage unavailable"})
	}
	if ok && stored != req.PIN {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "wrong pin"})
	}
	if err := s.db.Delete(store.KeyHistoryPIN); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "storage unavailable"})
	}
	return c.NoContent(http.StatusNoContent)
}
