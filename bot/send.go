package bot

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// The server throttles clients; pace outbound messages accordingly.
const sendThrottle = 600 * time.Millisecond

// Send queues one raw message for delivery. Safe to call from any goroutine;
// the write pump is the only writer on the connection.
func (b *Bot) Send(text string) {
	select {
	case b.send <- text:
	case <-b.done:
	}
}

func (b *Bot) writePump() {
	for {
		select {
		case <-b.done:
			return
		case msg := <-b.send:
			if err := b.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				log.Error().Err(err).Str("module", "bot").Msg("writePump set deadline")
				return
			}
			if err := b.conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				log.Error().Err(err).Str("module", "bot").Msg("writePump write error")
				return
			}
			time.Sleep(sendThrottle)
		}
	}
}
