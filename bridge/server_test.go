package bridge

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/willowxr"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func newTestServer(t *testing.T) (*Server, *willowxr.InputQueue, *willowxr.PoseBuffer, *httptest.Server) {
	t.Helper()
	queue := willowxr.NewInputQueue(16)
	poses := willowxr.NewPoseBuffer()
	s := New(queue, poses, nil)
	hs := httptest.NewServer(s)
	t.Cleanup(hs.Close)
	return s, queue, poses, hs
}

func TestMessagePoseIdentityFallback(t *testing.T) {
	p := Message{Type: TypePose, Position: [3]float64{1, 2, 3}}.Pose()
	assert.Equal(t, willowxr.Vec3{1, 2, 3}, p.Position)
	assert.InDelta(t, 1.0, p.Orientation.W, 1e-9)
	assert.InDelta(t, -1.0, p.Direction()[2], 1e-9)
}

func TestMessagePoseWebXROrder(t *testing.T) {
	// 180 degrees about Y: x=0 y=1 z=0 w=0.
	p := Message{Type: TypePose, Orientation: [4]float64{0, 1, 0, 0}}.Pose()
	assert.InDelta(t, 1.0, p.Direction()[2], 1e-9)
}

func TestPoseReachesBuffer(t *testing.T) {
	_, _, poses, hs := newTestServer(t)
	conn := dial(t, hs)

	require.NoError(t, conn.WriteJSON(Message{
		Type:        TypePose,
		Controller:  1,
		Position:    [3]float64{0.5, 1.2, 0},
		Orientation: [4]float64{0, 0, 0, 1},
	}))

	require.Eventually(t, func() bool {
		_, ok := poses.Pose(1)
		return ok
	}, time.Second, 5*time.Millisecond)
	p, _ := poses.Pose(1)
	assert.Equal(t, willowxr.Vec3{0.5, 1.2, 0}, p.Position)
}

func TestSelectEventsQueued(t *testing.T) {
	_, queue, _, hs := newTestServer(t)
	conn := dial(t, hs)

	require.NoError(t, conn.WriteJSON(Message{Type: TypeSelectStart, Controller: 0}))
	require.NoError(t, conn.WriteJSON(Message{Type: TypeSelectEnd, Controller: 0}))

	require.Eventually(t, func() bool { return queue.Len() == 2 }, time.Second, 5*time.Millisecond)
}

func TestMalformedAndUnknownMessagesIgnored(t *testing.T) {
	s, queue, _, hs := newTestServer(t)
	conn := dial(t, hs)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	require.NoError(t, conn.WriteJSON(Message{Type: "squeeze", Controller: 0}))
	require.NoError(t, conn.WriteJSON(Message{Type: TypeSelectStart, Controller: 0}))

	require.Eventually(t, func() bool { return queue.Len() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, s.Sessions())
}

func TestDisconnectReleasesPressedControllers(t *testing.T) {
	s, queue, poses, hs := newTestServer(t)
	conn := dial(t, hs)

	require.NoError(t, conn.WriteJSON(Message{Type: TypePose, Controller: 0}))
	require.NoError(t, conn.WriteJSON(Message{Type: TypeSelectStart, Controller: 0}))
	require.Eventually(t, func() bool { return queue.Len() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	conn.Close()

	require.Eventually(t, func() bool { return s.Sessions() == 0 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, queue.Len(), "select start plus release on disconnect")
	_, ok := poses.Pose(0)
	assert.False(t, ok, "pose forgotten on disconnect")
}

func TestReleasedControllerNotReleasedTwice(t *testing.T) {
	s, queue, _, hs := newTestServer(t)
	conn := dial(t, hs)

	require.NoError(t, conn.WriteJSON(Message{Type: TypeSelectStart, Controller: 0}))
	require.NoError(t, conn.WriteJSON(Message{Type: TypeSelectEnd, Controller: 0}))
	require.Eventually(t, func() bool { return queue.Len() == 2 }, time.Second, 5*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return s.Sessions() == 0 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, queue.Len())
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	s := New(willowxr.NewInputQueue(1), willowxr.NewPoseBuffer(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("ListenAndServe did not return after cancel")
	}
}
