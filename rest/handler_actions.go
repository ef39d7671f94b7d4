package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"leguru.net/keybindd/profile"
)

func (h Handler) getActions(c *gin.Context) {
	id, mapName, key, ok := keyParams(c)
	if !ok {
		return
	}
	actions, err := h.manager.GetActions(id, mapName, key)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, actions)
}

func (h Handler) createAction(c *gin.Context) {
	id, mapName, key, ok := keyParams(c)
	if !ok {
		return
	}
	var action profile.Action
	if err := c.ShouldBindJSON(&action); err != nil {
		badRequest(c, err)
		return
	}
	pos, err := h.manager.AddAction(id, mapName, key, action)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ActionIDReply{ActionID: pos})
}

func actionParam(c *gin.Context) (int, bool) {
	pos, err := strconv.Atoi(c.Param("action"))
	if err != nil {
		badRequest(c, err)
		return 0, false
	}
	return pos, true
}

func (h Handler) updateAction(c *gin.Context) {
	id, mapName, key, ok := keyParams(c)
	if !ok {
		return
	}
	pos, ok := actionParam(c)
	if !ok {
		return
	}
	var action profile.Action
	if err := c.ShouldBindJSON(&action); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.manager.UpdateAction(id, mapName, key, pos, action); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, action)
}

func (h Handler) deleteAction(c *gin.Context) {
	id, mapName, key, ok := keyParams(c)
	if !ok {
		return
	}
	pos, ok := actionParam(c)
	if !ok {
		return
	}
	if err := h.manager.RemoveAction(id, mapName, key, pos); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h Handler) clearActions(c *gin.Context) {
	id, mapName, key, ok := keyParams(c)
	if !ok {
		return
	}
	if err := h.manager.ClearActions(id, mapName, key); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
