package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/alexiusacademia/gofluid/internal/transition"
	"github.com/alexiusacademia/gofluid/internal/worksheet"
)

// Message types sent on a stream
const (
	MessageFrame  = "frame"
	MessageResult = "result"
	MessageError  = "error"
)

// StreamMessage is one message sent to a stream client. A client posts
// calculator inputs as plain JSON documents and receives a run of frames
// easing the displayed results from their previous values to the new ones,
// followed by the full result.
type StreamMessage struct {
	Type   string             `json:"type"`
	Step   int                `json:"step,omitempty"`
	Steps  int                `json:"steps,omitempty"`
	Values map[string]float64 `json:"values,omitempty"`
	Result any                `json:"result,omitempty"`
	Sheet  *worksheet.Sheet   `json:"sheet,omitempty"`
	Error  string             `json:"error,omitempty"`
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["calculator"]
	calc, ok := Lookup(name)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown calculator %q", name))
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade")
		return
	}
	defer conn.Close()
	log.WithFields(log.Fields{"calculator": name, "remote": r.RemoteAddr}).Debug("stream opened")

	inputs := make(chan []byte, 4)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(inputs)
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.WithError(err).Debug("stream read")
				}
				return
			}
			select {
			case inputs <- msg:
			case <-done:
				return
			}
		}
	}()

	if err := s.stream(conn, calc, inputs); err != nil {
		log.WithError(err).Debug("stream closed")
	}
}

// stream is the only writer on conn. A new input that arrives mid-animation
// retargets the transition from the values currently on screen.
func (s *Server) stream(conn *websocket.Conn, calc Calculator, inputs <-chan []byte) error {
	interval := s.cfg.Server.StreamInterval
	if interval <= 0 {
		interval = 25 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	shown := map[string]float64{}
	var (
		set     transition.Set
		pending *Outcome
		step    int
		steps   int
	)

	for {
		select {
		case <-s.closing:
			return conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))

		case body, ok := <-inputs:
			if !ok {
				return nil
			}
			out, err := calc.Run(body, s.cfg.Physics)
			if err != nil {
				if err := conn.WriteJSON(StreamMessage{Type: MessageError, Error: err.Error()}); err != nil {
					return err
				}
				continue
			}
			next, err := transition.NewSet(shown, out.Sheet.Values(), s.cfg.Server.StreamSteps)
			if err != nil {
				return err
			}
			set, pending, step = next, out, 0
			steps = max(set.Len(), 1)

		case <-ticker.C:
			if pending == nil {
				continue
			}
			step++
			shown = set.Frame(step)
			if err := conn.WriteJSON(StreamMessage{Type: MessageFrame, Step: step, Steps: steps, Values: shown}); err != nil {
				return err
			}
			if step < steps {
				continue
			}
			if err := conn.WriteJSON(StreamMessage{Type: MessageResult, Result: pending.Result, Sheet: pending.Sheet}); err != nil {
				return err
			}
			set, pending = nil, nil
		}
	}
}
