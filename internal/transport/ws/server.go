package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"saltpeter.ai/internal/protocol"
	"saltpeter.ai/internal/sim/world"
)

// outQueue bounds the per-connection OBS queue; the world keeps only the latest frames.
const outQueue = 8

type Server struct {
	world     *world.World
	log       *log.Logger
	validator *protocol.Validator

	upgrader websocket.Upgrader
}

// NewServer serves the player protocol for w. A nil validator disables schema checks.
func NewServer(w *world.World, v *protocol.Validator, logger *log.Logger) *Server {
	s := &Server{
		world:     w,
		log:       logger,
		validator: v,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
	return s
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		actorID, out := s.handshake(r.Context(), conn)
		if actorID == "" {
			return
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Errors for messages that never reach the world are written by the
		// same goroutine as OBS frames.
		errs := make(chan []byte, outQueue)

		// Writer goroutine.
		go func() {
			for {
				var b []byte
				var ok bool
				select {
				case <-ctx.Done():
					return
				case b, ok = <-out:
				case b, ok = <-errs:
				}
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					cancel()
					return
				}
			}
		}()

		reject := func(code, msg string) {
			b, _ := json.Marshal(protocol.NewError(code, msg))
			select {
			case errs <- b:
			default:
			}
		}

		// Reader loop.
		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				cancel()
				break
			}
			act, code, reason := s.decodeAct(msg)
			if code != "" {
				reject(code, reason)
				continue
			}
			select {
			case s.world.Inbox() <- world.ActionEnvelope{ActorID: actorID, Act: act}:
			case <-ctx.Done():
			}
		}

		// Cleanup.
		select {
		case s.world.Leave() <- actorID:
		case <-time.After(5 * time.Second):
			s.log.Printf("leave %s: world not responding", actorID)
		}
	}
}

// decodeAct checks one client frame and returns the action, or an error code
// and reason when the frame must be rejected.
func (s *Server) decodeAct(msg []byte) (protocol.ActMsg, string, string) {
	var act protocol.ActMsg
	base, err := protocol.DecodeBase(msg)
	if err != nil {
		return act, protocol.ErrProtoBadRequest, "malformed json"
	}
	if base.Type != protocol.TypeAct {
		return act, protocol.ErrProtoBadRequest, "unexpected message type " + base.Type
	}
	if base.ProtocolVersion != protocol.Version {
		return act, protocol.ErrProtoBadRequest, "bad protocol_version"
	}
	if s.validator != nil {
		if err := s.validator.Validate(protocol.TypeAct, msg); err != nil {
			return act, protocol.ErrProtoBadRequest, err.Error()
		}
	}
	if err := json.Unmarshal(msg, &act); err != nil {
		return act, protocol.ErrProtoBadRequest, "malformed act"
	}
	return act, "", ""
}

func (s *Server) handshake(ctx context.Context, conn *websocket.Conn) (actorID string, out chan []byte) {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return "", nil
	}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello {
		closeWith(conn, "expected HELLO")
		return "", nil
	}
	if s.validator != nil {
		if err := s.validator.Validate(protocol.TypeHello, msg); err != nil {
			closeWith(conn, "bad HELLO")
			return "", nil
		}
	}

	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		return "", nil
	}
	if hello.ProtocolVersion != protocol.Version {
		closeWith(conn, "bad protocol_version")
		return "", nil
	}
	name := strings.TrimSpace(hello.PlayerName)
	if name == "" {
		name = "player"
	}

	out = make(chan []byte, outQueue)
	respCh := make(chan world.JoinResponse, 1)
	select {
	case s.world.Join() <- world.JoinRequest{Name: name, Out: out, Resp: respCh}:
	case <-ctx.Done():
		return "", nil
	}
	var resp world.JoinResponse
	select {
	case resp = <-respCh:
	case <-ctx.Done():
		return "", nil
	}

	if err := writeJSON(conn, resp.Welcome); err != nil {
		return "", nil
	}
	s.log.Printf("join %s as %s", name, resp.Welcome.ActorID)
	return resp.Welcome.ActorID, out
}

func closeWith(conn *websocket.Conn, reason string) {
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, reason), time.Now().Add(time.Second))
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}
