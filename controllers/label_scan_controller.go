package controllers

import (
	"log"
	"net/http"
	"os"
	"strings"

	"backend/services"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

type ScanController struct {
	analysis *services.AnalysisService
}

func NewScanController(analysis *services.AnalysisService) *ScanController {
	return &ScanController{analysis: analysis}
}

type ScanRequest struct {
	ImageBase64 string             `json:"image_base64" binding:"required"`
	OptimizeFor string             `json:"optimize_for"`
	UserPrefs   services.UserPrefs `json:"user_prefs"`
}

func dataURIContentType(dataURI string) string {
	// "data:image/jpeg;base64,..." -> "image/jpeg"
	rest := strings.TrimPrefix(dataURI, "data:")
	if idx := strings.IndexAny(rest, ";,"); idx > 0 {
		return rest[:idx]
	}
	return "image/jpeg"
}

// POST /api/scan  { "image_base64": "data:image/jpeg;base64,..." }
func (sc *ScanController) Scan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_base64 is required"})
		return
	}

	imageBytes, err := services.DecodeImageDataURI(req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// archive the photo when a bucket is configured; scanning works without it
	if os.Getenv("S3_BUCKET") != "" {
		if _, err := utils.UploadLabelImage(imageBytes, dataURIContentType(req.ImageBase64)); err != nil {
			log.Printf("label archive failed: %v", err)
		}
	}

	scanner, err := services.NewLabelScanService()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	text, err := scanner.ExtractLabelText(imageBytes)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	prefs := req.UserPrefs
	if uid := c.GetUint("userID"); uid != 0 {
		if stored, perr := services.GetPreferences(uid); perr == nil {
			prefs = services.MergePrefs(stored, req.UserPrefs)
		}
	}

	out := sc.analysis.Analyze(text, req.OptimizeFor, prefs)
	out.Debug["extracted_text"] = text
	c.JSON(http.StatusOK, out)
}
