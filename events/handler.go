package events

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/parking-app/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler meng-upgrade koneksi ke websocket. Token dikirim lewat query
// karena browser tidak bisa set Authorization header pada websocket.
func Handler(c *gin.Context) {
	token := c.Query("token")
	claims, err := utils.ParseToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Error upgrading websocket: %v", err)
		return
	}

	RegisterClient(conn, claims.Role)
	defer UnregisterClient(conn)

	// Read loop hanya untuk mendeteksi close dari client
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
