package rest

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Router interface {
	Register(g gin.IRouter)
}

type router struct {
	handler Handler
}

func NewRouter(handler Handler) Router {
	return &router{handler: handler}
}

func (s router) Register(g gin.IRouter) {
	h := s.handler

	g.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{"*"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r := g.Group("/api/v1")
	r.GET("/status", h.getStatus)
	r.GET("/layers", h.getLayers)

	activeGroup := r.Group("/active")
	{
		activeGroup.GET("", h.getActive)
		activeGroup.PUT("/profile", h.setActiveProfile)
		activeGroup.PUT("/map", h.setActiveMap)
	}

	macroGroup := r.Group("/macro")
	{
		macroGroup.GET("", h.getMacro)
		macroGroup.PUT("", h.setMacroMode)
		macroGroup.PUT("/key", h.setMacroKey)
	}

	profilesGroup := r.Group("/profiles")
	{
		profilesGroup.GET("", h.getProfiles)
		profilesGroup.POST("", h.createProfile)
		profilesGroup.GET("/:id", h.getOneProfile)
		profilesGroup.DELETE("/:id", h.deleteProfile)
	}

	mapsGroup := profilesGroup.Group("/:id/maps")
	{
		mapsGroup.GET("", h.getMaps)
		mapsGroup.POST("", h.createMap)
		mapsGroup.GET("/:map", h.getOneMap)
		mapsGroup.GET("/:map/leds", h.getLEDs)
		mapsGroup.PUT("/:map/leds", h.setLEDs)
		mapsGroup.GET("/:map/matrix", h.getMatrix)
		mapsGroup.PUT("/:map/matrix", h.setMatrix)
	}

	actionsGroup := mapsGroup.Group("/:map/keys/:key/actions")
	{
		actionsGroup.GET("", h.getActions)
		actionsGroup.POST("", h.createAction)
		actionsGroup.DELETE("", h.clearActions)
		actionsGroup.PUT("/:action", h.updateAction)
		actionsGroup.DELETE("/:action", h.deleteAction)
	}
}
