package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"leguru.net/keybindd/binding"
	"leguru.net/keybindd/logger"
	"leguru.net/keybindd/profile"
	"leguru.net/keybindd/utils"
)

type Handler struct {
	manager *binding.Manager
}

func NewHandler(manager *binding.Manager) Handler {
	return Handler{manager: manager}
}

func routeFrontend(c *gin.Context) {
	c.Status(http.StatusFound)
	c.Writer.Header().Set("Location", "/api/v1/status")
}

// errorStatus maps store and manager errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, profile.ErrProfileNotFound),
		errors.Is(err, profile.ErrMapNotFound),
		errors.Is(err, profile.ErrActionNotFound):
		return http.StatusNotFound
	case errors.Is(err, profile.ErrInvalidAction),
		errors.Is(err, profile.ErrInvalidMatrix),
		errors.Is(err, profile.ErrEmptyName):
		return http.StatusBadRequest
	case errors.Is(err, profile.ErrMapExists),
		errors.Is(err, profile.ErrLastProfile),
		errors.Is(err, profile.ErrProfileInUse):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func abortWithError(c *gin.Context, err error) {
	code := errorStatus(err)
	if code == http.StatusInternalServerError {
		logger.WithFields(logger.Fields{"path": c.FullPath(), "err": err}).Error("REST request failed")
	}
	c.AbortWithStatusJSON(code, ErrorReply{Error: err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorReply{Error: err.Error()})
}

func profileParam(c *gin.Context) (profile.ID, bool) {
	id, err := profile.ParseID(c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return 0, false
	}
	return id, true
}

// keyParams decodes :id, :map and :key.
func keyParams(c *gin.Context) (profile.ID, string, int, bool) {
	id, ok := profileParam(c)
	if !ok {
		return 0, "", 0, false
	}
	key, err := utils.ParseKeyCode(c.Param("key"))
	if err != nil {
		badRequest(c, err)
		return 0, "", 0, false
	}
	return id, c.Param("map"), key, true
}
