package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h Handler) getProfiles(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager.ListProfiles())
}

func (h Handler) getOneProfile(c *gin.Context) {
	id, ok := profileParam(c)
	if !ok {
		return
	}
	info, err := h.manager.Profile(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h Handler) createProfile(c *gin.Context) {
	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	id, err := h.manager.AddProfile(req.Name, req.DefaultMap)
	if err != nil {
		abortWithError(c, err)
		return
	}
	info, err := h.manager.Profile(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, info)
}

func (h Handler) deleteProfile(c *gin.Context) {
	id, ok := profileParam(c)
	if !ok {
		return
	}
	if err := h.manager.RemoveProfile(id); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h Handler) getMaps(c *gin.Context) {
	id, ok := profileParam(c)
	if !ok {
		return
	}
	maps, err := h.manager.ListMaps(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, maps)
}

func (h Handler) getOneMap(c *gin.Context) {
	id, ok := profileParam(c)
	if !ok {
		return
	}
	name := c.Param("map")
	m, err := h.manager.GetMap(id, name)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapReply{Name: name, Map: m})
}

func (h Handler) createMap(c *gin.Context) {
	id, ok := profileParam(c)
	if !ok {
		return
	}
	var req CreateMapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.manager.AddMap(id, req.Name); err != nil {
		abortWithError(c, err)
		return
	}
	m, err := h.manager.GetMap(id, req.Name)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapReply{Name: req.Name, Map: m})
}

func (h Handler) getActive(c *gin.Context) {
	c.JSON(http.StatusOK, ActiveReply{Profile: h.manager.ActiveProfile(), Map: h.manager.ActiveMap()})
}

func (h Handler) setActiveProfile(c *gin.Context) {
	var req ActiveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.manager.SetActiveProfile(*req.ProfileID); err != nil {
		abortWithError(c, err)
		return
	}
	h.getActive(c)
}

func (h Handler) setActiveMap(c *gin.Context) {
	var req ActiveMapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.manager.SetActiveMap(req.Map); err != nil {
		abortWithError(c, err)
		return
	}
	h.getActive(c)
}
