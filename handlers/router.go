package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Router holds every handler the HTTP server exposes
type Router struct {
	Search           *SearchHandler
	Assistant        *AssistantHandler
	Contract         *ContractHandler
	GeminiConfigured bool
}

// Register mounts all routes on r
func (rt *Router) Register(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":           "JustLaw API'ye Hoş Geldiniz",
			"version":           "1.0.0",
			"status":            "active",
			"gemini_configured": rt.GeminiConfigured,
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "gemini": rt.GeminiConfigured})
	})

	if rt.Search != nil {
		r.GET("/search", rt.Search.Search)
	}

	api := r.Group("/api")
	{
		if rt.Search != nil {
			api.GET("/legal/search", rt.Search.Search)
			api.GET("/legal/searches", rt.Search.ListSearches)
			api.GET("/yargitay/search", rt.Search.SearchYargitay)
			api.GET("/mevzuat/search", rt.Search.SearchStatutes)
		}

		if rt.Assistant != nil {
			api.POST("/chat", rt.Assistant.Chat)
			api.POST("/dilekce", rt.Assistant.CreatePetition)
			api.POST("/dilekce/generate", rt.Assistant.GeneratePetition)
			api.POST("/dilekce/generate-field", rt.Assistant.GeneratePetitionField)
			api.GET("/dilekce", rt.Assistant.ListPetitions)
			api.GET("/dilekce/:id", rt.Assistant.GetPetition)
		}

		if rt.Contract != nil {
			api.POST("/sozlesme-analiz", rt.Contract.AnalyzeContract)
			api.GET("/sozlesme", rt.Contract.ListContractFiles)
			api.GET("/sozlesme/:id/file", rt.Contract.GetContractFile)
		}
	}
}
