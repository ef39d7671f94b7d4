package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"leguru.net/keybindd/binding"
	"leguru.net/keybindd/profile"
)

func (h Handler) getLEDs(c *gin.Context) {
	id, ok := profileParam(c)
	if !ok {
		return
	}
	leds, err := h.manager.GetProfileLEDs(id, c.Param("map"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, leds)
}

func (h Handler) setLEDs(c *gin.Context) {
	id, ok := profileParam(c)
	if !ok {
		return
	}
	var leds binding.LEDs
	if err := c.ShouldBindJSON(&leds); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.manager.SetProfileLEDs(id, c.Param("map"), leds); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, leds)
}

func (h Handler) getMatrix(c *gin.Context) {
	id, ok := profileParam(c)
	if !ok {
		return
	}
	matrix, err := h.manager.GetMatrix(id, c.Param("map"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if matrix == nil {
		matrix = profile.Matrix{}
	}
	c.JSON(http.StatusOK, matrix)
}

func (h Handler) setMatrix(c *gin.Context) {
	id, ok := profileParam(c)
	if !ok {
		return
	}
	var matrix profile.Matrix
	if err := c.ShouldBindJSON(&matrix); err != nil {
		badRequest(c, err)
		return
	}
	if matrix == nil {
		badRequest(c, errors.New("matrix is missing"))
		return
	}
	if err := h.manager.SetMatrix(id, c.Param("map"), matrix); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, matrix)
}

func (h Handler) getMacro(c *gin.Context) {
	on, key := h.manager.MacroMode()
	c.JSON(http.StatusOK, MacroReply{On: on, Key: key})
}

func (h Handler) setMacroMode(c *gin.Context) {
	var req MacroModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.manager.SetMacroMode(req.On); err != nil {
		abortWithError(c, err)
		return
	}
	h.getMacro(c)
}

func (h Handler) setMacroKey(c *gin.Context) {
	var req MacroKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.manager.SetMacroKey(req.Key); err != nil {
		abortWithError(c, err)
		return
	}
	h.getMacro(c)
}

func (h Handler) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, StatusReply{Status: h.manager.Status(), Layers: h.manager.LayerReports()})
}

func (h Handler) getLayers(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager.LayerReports())
}
