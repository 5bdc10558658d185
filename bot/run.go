package bot

import (
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"showdown-bot/model"
)

// Run connects to the server and processes inbound messages until the
// connection drops or the process receives an interrupt.
func (b *Bot) Run() error {
	cfg := b.GetConfig()

	conn, _, err := websocket.DefaultDialer.Dial(cfg.Server, nil)
	if err != nil {
		return err
	}
	b.conn = conn
	log.Info().Str("module", "bot").Str("server", cfg.Server).Msg("connected")

	go b.writePump()

	readErr := make(chan error, 1)
	go func() {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				readErr <- err
				return
			}
			b.handleFrame(string(data))
		}
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	select {
	case err := <-readErr:
		log.Error().Err(err).Str("module", "bot").Msg("connection lost")
		return err
	case <-sc:
		log.Info().Str("module", "bot").Msg("interrupt received")
		return nil
	case <-b.done:
		return nil
	}
}

// handleFrame splits one websocket frame into protocol lines. A leading
// '>roomid' line selects the room all following lines belong to; frames
// without one carry global messages.
func (b *Bot) handleFrame(frame string) {
	var room *model.Room
	lines := strings.Split(frame, "\n")
	for _, line := range lines {
		if strings.HasPrefix(line, ">") {
			room = b.Rooms.Add(line[1:])
			continue
		}
		if line == "" {
			continue
		}
		b.Parser.Parse(line, room)
	}
}
