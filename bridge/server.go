package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/phanxgames/willowxr"
)

const (
	// DefaultMaxMessageBytes limits inbound WebSocket frame size.
	DefaultMaxMessageBytes int64 = 4096
	// DefaultReadTimeout drops clients that stop sending. Headsets send poses
	// every frame, so a short timeout is safe.
	DefaultReadTimeout = 10 * time.Second
	// releaseTimeout bounds how long a disconnect waits to queue releases.
	releaseTimeout = time.Second
)

// Message types.
const (
	TypePose        = "pose"
	TypeSelectStart = "selectstart"
	TypeSelectEnd   = "selectend"
)

// Message is one client-to-server message.
type Message struct {
	Type       string `json:"type"`
	Controller int    `json:"controller"`
	// Position is world-space meters.
	Position [3]float64 `json:"position,omitempty"`
	// Orientation is a quaternion in WebXR order (x, y, z, w). All zeros
	// means identity.
	Orientation [4]float64 `json:"orientation,omitempty"`
}

// Pose converts a pose message.
func (m Message) Pose() willowxr.Pose {
	q := mgl64.Quat{W: m.Orientation[3], V: mgl64.Vec3{m.Orientation[0], m.Orientation[1], m.Orientation[2]}}
	if q.Len() == 0 {
		q = mgl64.QuatIdent()
	}
	return willowxr.Pose{Position: mgl64.Vec3(m.Position), Orientation: q.Normalize()}
}

// Server is an http.Handler accepting WebXR input connections.
type Server struct {
	// ReadTimeout drops a connection that sends nothing for this long.
	ReadTimeout time.Duration
	// MaxMessageBytes limits inbound frame size.
	MaxMessageBytes int64

	queue    *willowxr.InputQueue
	poses    *willowxr.PoseBuffer
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	id      string
	conn    *websocket.Conn
	pressed map[willowxr.ControllerID]bool
	posed   map[willowxr.ControllerID]bool
}

// New returns a server delivering into queue and poses. A nil logger
// discards logs.
func New(queue *willowxr.InputQueue, poses *willowxr.PoseBuffer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		ReadTimeout:     DefaultReadTimeout,
		MaxMessageBytes: DefaultMaxMessageBytes,
		queue:           queue,
		poses:           poses,
		logger:          logger,
		upgrader: websocket.Upgrader{
			// Headset browsers load the page from arbitrary dev hosts.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		sessions: make(map[string]*session),
	}
}

// Sessions returns the number of connected clients.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ServeHTTP upgrades the request and reads messages until the client leaves.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", slog.String("remote", r.RemoteAddr), slog.Any("error", err))
		return
	}
	sess := &session{
		id:      uuid.NewString(),
		conn:    conn,
		pressed: make(map[willowxr.ControllerID]bool),
		posed:   make(map[willowxr.ControllerID]bool),
	}
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	log := s.logger.With(slog.String("session", sess.id), slog.String("remote", r.RemoteAddr))
	log.Info("client connected")

	err = s.readLoop(r.Context(), sess, log)
	s.closeSession(sess)
	if err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		log.Warn("client dropped", slog.Any("error", err))
		return
	}
	log.Info("client disconnected")
}

func (s *Server) readLoop(ctx context.Context, sess *session, log *slog.Logger) error {
	sess.conn.SetReadLimit(s.MaxMessageBytes)
	for {
		if s.ReadTimeout > 0 {
			if err := sess.conn.SetReadDeadline(time.Now().Add(s.ReadTimeout)); err != nil {
				return err
			}
		}
		_, data, err := sess.conn.ReadMessage()
		if err != nil {
			return err
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Warn("malformed message", slog.Any("error", err))
			continue
		}
		if err := s.apply(ctx, sess, msg); err != nil {
			log.Warn("message rejected", slog.String("type", msg.Type), slog.Any("error", err))
		}
	}
}

// apply routes one message to the pose buffer or the input queue.
func (s *Server) apply(ctx context.Context, sess *session, msg Message) error {
	id := willowxr.ControllerID(msg.Controller)
	switch msg.Type {
	case TypePose:
		s.poses.Set(id, msg.Pose())
		sess.posed[id] = true
		return nil
	case TypeSelectStart:
		if err := s.queue.Send(ctx, willowxr.InputMessage{Kind: willowxr.InputSelectStart, Controller: id}); err != nil {
			return fmt.Errorf("queue select start: %w", err)
		}
		sess.pressed[id] = true
		return nil
	case TypeSelectEnd:
		if err := s.queue.Send(ctx, willowxr.InputMessage{Kind: willowxr.InputSelectEnd, Controller: id}); err != nil {
			return fmt.Errorf("queue select end: %w", err)
		}
		delete(sess.pressed, id)
		return nil
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
}

// closeSession releases everything the session still presses and stops
// reporting its poses.
func (s *Server) closeSession(sess *session) {
	ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
	defer cancel()
	for id := range sess.pressed {
		if err := s.queue.Send(ctx, willowxr.InputMessage{Kind: willowxr.InputSelectEnd, Controller: id}); err != nil {
			s.logger.Warn("release on disconnect dropped", slog.Int("controller", int(id)), slog.Any("error", err))
		}
	}
	for id := range sess.posed {
		s.poses.Forget(id)
	}
	_ = sess.conn.Close()

	s.mu.Lock()
	delete(s.sessions, sess.id)
	s.mu.Unlock()
}

// ListenAndServe serves the bridge on addr at path "/xr" until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/xr", s)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("bridge listening", slog.String("addr", addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("bridge: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("bridge shutdown: %w", err)
		}
		return nil
	}
}
