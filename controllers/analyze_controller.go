package controllers

import (
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type AnalyzeController struct {
	analysis *services.AnalysisService
}

func NewAnalyzeController(analysis *services.AnalysisService) *AnalyzeController {
	return &AnalyzeController{analysis: analysis}
}

// AnalyzeRequest mirrors the public contract. ingredients_text must be
// present but may be blank; a pointer distinguishes the two.
type AnalyzeRequest struct {
	IngredientsText *string            `json:"ingredients_text" binding:"required"`
	OptimizeFor     string             `json:"optimize_for"`
	UserPrefs       services.UserPrefs `json:"user_prefs"`
}

// POST /api/analyze
func (ac *AnalyzeController) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredients_text is required"})
		return
	}

	prefs := req.UserPrefs
	if uid := c.GetUint("userID"); uid != 0 {
		if stored, err := services.GetPreferences(uid); err == nil {
			prefs = services.MergePrefs(stored, req.UserPrefs)
		}
	}

	out := ac.analysis.Analyze(*req.IngredientsText, req.OptimizeFor, prefs)
	c.JSON(http.StatusOK, out)
}
