package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	watchWSWriteWait = 10 * time.Second
	watchWSPongWait  = 60 * time.Second
	watchWSPingEvery = (watchWSPongWait * 9) / 10
)

var watchWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type watchWSOutbound struct {
	Type    string          `json:"type"`
	Canvas  *canvasResponse `json:"canvas,omitempty"`
	Message string          `json:"message,omitempty"`
}

// HandleWatch streams a snapshot on connect and after every change, plus
// user-visible notices. Inbound messages are only read to detect close.
func (h *CanvasHandler) HandleWatch(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	conn, err := watchWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(watchWSPongWait)); err != nil {
		log.Printf("watch ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(watchWSPongWait))
	})

	changes, unsubscribe := s.Store().Subscribe()
	defer unsubscribe()
	notices, unsubscribeNotices := s.Notices()
	defer unsubscribeNotices()

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		defer cancel()
		ticker := time.NewTicker(watchWSPingEvery)
		defer ticker.Stop()

		write := func(out watchWSOutbound) bool {
			if err := conn.SetWriteDeadline(time.Now().Add(watchWSWriteWait)); err != nil {
				return false
			}
			return conn.WriteJSON(out) == nil
		}
		snapshot := func() bool {
			snap := snapshotOf(s)
			return write(watchWSOutbound{Type: "snapshot", Canvas: &snap})
		}

		if !snapshot() {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case <-changes:
				if !snapshot() {
					return
				}
			case msg := <-notices:
				if !write(watchWSOutbound{Type: "notice", Message: msg}) {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(watchWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	<-writerDone
}
