package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"missionctl/internal/models"
	"missionctl/internal/search"
)

func handleMemoryGet(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		dates, err := data.ListMemoryDates()
		if err != nil {
			log.Printf("failed to list memory dates: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})

			return
		}
		c.JSON(http.StatusOK, gin.H{"dates": dates})
		return
	}

	conv, err := data.GetConversation(date)
	if err != nil {
		respondStoreError(c, err, "conversation")
		return
	}

	c.JSON(http.StatusOK, conv)
}

func handleMemorySearch(c *gin.Context) {
	tokens := search.Tokenize(c.Query("q"))
	if len(tokens) == 0 {
		c.JSON(http.StatusOK, gin.H{"items": []models.MemoryHit{}})
		return
	}

	seen := map[string]bool{}
	items := []models.MemoryHit{}
	for _, tok := range tokens {
		hits, err := data.SearchMemory(tok)
		if err != nil {
			log.Printf("failed to search memory: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})

			return
		}
		for _, h := range hits {
			key := h.Date + "#" + strconv.Itoa(h.MessageIndex)
			if !seen[key] {
				seen[key] = true
				items = append(items, h)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func handleFavoritesList(c *gin.Context) {
	favs, err := data.ListFavorites()
	if err != nil {
		log.Printf("failed to list favorites: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})

		return
	}

	c.JSON(http.StatusOK, gin.H{"dates": favs})
}

func handleFavoriteToggle(c *gin.Context) {
	var req models.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	favs, favorite, err := data.ToggleFavorite(req.Date)
	if err != nil {
		respondStoreError(c, err, "favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{"dates": favs, "favorite": favorite})
}

// handleGlobalSearch assembles the full corpus and runs the ranking engine.
func handleGlobalSearch(c *gin.Context) {
	query := c.Query("q")
	if len(search.Tokenize(query)) == 0 {
		c.JSON(http.StatusOK, gin.H{"items": []search.Result{}})
		return
	}

	projects, err := data.ListProjects()
	if err != nil {
		log.Printf("failed to build search corpus: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})

		return
	}

	tasks := []models.ProjectTask{}
	for _, p := range projects {
		projectTasks, err := data.ListTasks(p.Slug)
		if err != nil {
			log.Printf("failed to build search corpus: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})

			return
		}
		for _, t := range projectTasks {
			tasks = append(tasks, models.ProjectTask{Task: t, ProjectSlug: p.Slug, ProjectName: p.Name})
		}
	}

	documents, err := data.ListDocuments()
	if err != nil {
		log.Printf("failed to build search corpus: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})

		return
	}

	members, err := data.ListMembers()
	if err != nil {
		log.Printf("failed to build search corpus: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})

		return
	}

	results, err := search.Search(query, search.Corpus{
		Projects:  projects,
		Tasks:     tasks,
		Documents: documents,
		Members:   members,
		Memory:    data,
	})
	if err != nil {
		log.Printf("search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage error"})

		return
	}

	c.JSON(http.StatusOK, gin.H{"items": results})
}
