package session

import (
	"log"
	"sync"

	"kamicanvas/internal/assist"
	"kamicanvas/internal/canvas"
	"kamicanvas/internal/controller"
)

// Session is one browser canvas: its store, its controller and the notice
// fan-out for connected watchers.
type Session struct {
	ID         string
	Controller *controller.Controller

	mu      sync.Mutex
	nextSub int
	subs    map[int]chan string
}

func newSession(id string, ai *assist.Client, credentialsMissing bool, logger *log.Logger) *Session {
	s := &Session{ID: id, subs: make(map[int]chan string)}
	store := canvas.NewStore(credentialsMissing)
	s.Controller = controller.New(store, ai, controller.NotifierFunc(s.publish), logger)
	return s
}

func (s *Session) Store() *canvas.Store { return s.Controller.Store() }

// Notices subscribes to user-visible notices. Notices are dropped for a
// watcher whose buffer is full.
func (s *Session) Notices() (<-chan string, func()) {
	ch := make(chan string, 8)
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Session) publish(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- message:
		default:
		}
	}
}
