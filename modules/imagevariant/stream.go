package imagevariant

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	streamWriteWait = 10 * time.Second
	streamReadWait  = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// CORS 미들웨어와 동일하게 모든 origin 허용
		return true
	},
}

// HandleProcessStream - GET /process-images/stream (WebSocket)
// 클라이언트가 요청 JSON 하나를 보내면 이미지별 이벤트 후 complete 전송
func (h *Handler) HandleProcessStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("❌ [ImageVariant] WebSocket upgrade failed")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(h.maxBody)
	conn.SetReadDeadline(time.Now().Add(streamReadWait))

	send := func(event StreamEvent) error {
		conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		return conn.WriteJSON(event)
	}

	var req ProcessRequest
	if err := conn.ReadJSON(&req); err != nil {
		if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
			log.Warn().Err(err).Msg("⚠️  [ImageVariant] Stream read failed")
		}
		send(StreamEvent{Type: "error", Error: "Invalid request format"})
		return
	}

	log.Info().Int("images", len(req.Images)).Msg("🔍 [ImageVariant] Stream started")

	count, err := h.service.ProcessStream(r.Context(), &req, func(img ProcessedImage) error {
		return send(StreamEvent{Type: "image", Image: &img})
	})
	if err != nil {
		log.Warn().Err(err).Int("sent", count).Msg("⚠️  [ImageVariant] Stream aborted")
		send(StreamEvent{Type: "error", Error: err.Error()})
		return
	}

	send(StreamEvent{Type: "complete", Count: &count})
	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(streamWriteWait))
}
