package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yeremiapane/pos-engine/kds"
	"github.com/yeremiapane/pos-engine/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// KDSHandler upgrades a staff screen to a websocket and registers it with
// the hub. The connection only receives broadcasts; reads are drained to
// detect the close.
func KDSHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("kds upgrade: %v", err)
		return
	}

	role := c.Param("role")
	if role == "" {
		role = "staff"
	}
	kds.RegisterClient(conn, role)

	go func() {
		defer kds.UnregisterClient(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
