package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kelsos/makerspace-demo/internal/models"
	"github.com/kelsos/makerspace-demo/internal/session"
)

// fail turns any failure into a bare 500, the API has no error envelope
func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatus(http.StatusInternalServerError)
}

func (s *Server) notImplemented(c *gin.Context) {
	c.Status(http.StatusNotImplemented)
}

func (s *Server) sessionSeeded() {
	if s.observer != nil {
		s.observer.SessionSeeded()
	}
}

// User handlers

func (s *Server) handleLogin(c *gin.Context) {
	// TODO: issue an auth token once the dashboard verifies one
	c.JSON(http.StatusOK, models.UserEnvelope{
		Envelope: models.OK(""),
		User:     s.services.Users.Login(),
	})
}

func (s *Server) handleCreateUser(c *gin.Context) {
	c.JSON(http.StatusOK, models.UserEnvelope{
		Envelope: models.OK(""),
		User:     s.services.Users.Create(),
	})
}

func (s *Server) handleDeleteUser(c *gin.Context) {
	c.JSON(http.StatusOK, models.OK(s.services.Users.Delete()))
}

func (s *Server) handleListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, models.UsersEnvelope{
		Envelope: models.OK(""),
		Users:    s.services.Users.List(),
	})
}

func (s *Server) handleUpdateUser(c *gin.Context) {
	s.notImplemented(c)
}

// Task handlers

func (s *Server) handleListTasks(c *gin.Context) {
	tasks, seeded, err := s.services.Tasks.Tasks(session.FromContext(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	if seeded {
		s.sessionSeeded()
	}

	c.JSON(http.StatusOK, models.TasksEnvelope{
		Envelope: models.OK(""),
		Tasks:    tasks,
	})
}

func (s *Server) handleCreateTask(c *gin.Context) {
	s.notImplemented(c)
}

func (s *Server) handleResolveTask(c *gin.Context) {
	// the body is optional
	var req models.DeleteTaskRequest
	_ = c.ShouldBindJSON(&req)

	seeded, err := s.services.Tasks.Resolve(session.FromContext(c), req.TaskID)
	if err != nil {
		s.fail(c, err)
		return
	}
	if seeded {
		s.sessionSeeded()
	}

	c.JSON(http.StatusOK, models.OK(""))
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	s.notImplemented(c)
}

// Fixture handlers

func (s *Server) handleMachines(c *gin.Context) {
	machines, err := s.services.Fixtures.Machines()
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MachinesEnvelope{
		Envelope: models.OK(""),
		Machines: machines,
	})
}

func (s *Server) handleVisitors(c *gin.Context) {
	visitors, err := s.services.Fixtures.Visitors()
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, models.VisitorsEnvelope{
		Envelope: models.OK(""),
		Visitors: visitors,
	})
}
