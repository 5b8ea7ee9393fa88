package controllers

import (
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type ChatController struct {
	hub *services.ChatHub
}

func NewChatController(hub *services.ChatHub) *ChatController {
	return &ChatController{hub: hub}
}

type ChatRequest struct {
	Message       *string                `json:"message" binding:"required"`
	AnalysisState services.AnalysisState `json:"analysis_state"`
}

// POST /api/chat
func (cc *ChatController) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	reply, actions := services.AnswerFollowup(*req.Message, req.AnalysisState)
	c.JSON(http.StatusOK, gin.H{"reply": reply, "suggested_actions": actions})
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind a proxy if needed
}

// GET /ws/chat. Each client frame is a chat request, each server frame the
// matching chat response.
func (cc *ChatController) ChatWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	session := cc.hub.Register(conn)
	defer cc.hub.Unregister(session)

	for {
		var req ChatRequest
		if err := conn.ReadJSON(&req); err != nil {
			return
		}

		msg := ""
		if req.Message != nil {
			msg = *req.Message
		}
		reply, actions := services.AnswerFollowup(msg, req.AnalysisState)
		if err := session.Send(gin.H{"reply": reply, "suggested_actions": actions}); err != nil {
			return
		}
	}
}
