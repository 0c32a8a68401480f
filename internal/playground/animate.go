package playground

import (
	"errors"
	"log"
	"net/http"

	"github.com/ziadkadry99/cipherlab/internal/animator"
	"github.com/ziadkadry99/cipherlab/internal/ciphers"
	"github.com/ziadkadry99/cipherlab/internal/session"
)

// handleAnimate drives one cipher page over a websocket. The session lives
// exactly as long as the connection.
func (p *Playground) handleAnimate(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("cipher")
	if id == "" {
		id = p.opts.DefaultCipher
	}
	if _, ok := ciphers.Lookup(id); !ok {
		http.Error(w, `{"error":"unknown cipher"}`, http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("playground: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()
	c := newWSConn(conn, "animate")

	sess, err := p.openSession(c, id)
	if err != nil {
		c.sendError(err.Error())
		return
	}
	defer func() { p.sessions.Close(sess.ID) }()

	c.readLoop(func(msg clientMessage) {
		if msg.Type == "cipher" {
			next, err := p.openSession(c, msg.Value)
			if err != nil {
				c.sendError(err.Error())
				return
			}
			p.sessions.Close(sess.ID)
			sess = next
			return
		}
		if err := applyMessage(sess, msg); err != nil {
			c.sendError(err.Error())
		}
		c.send(serverMessage{Type: "state", State: sess.View()})
	})
}

// openSession creates a session that streams its views to c.
func (p *Playground) openSession(c *wsConn, cipherID string) (*session.Session, error) {
	sess, err := p.sessions.Create(cipherID)
	if err != nil {
		return nil, err
	}
	sess.OnChange(func(v session.View) {
		c.send(serverMessage{Type: "state", State: v})
	})
	c.send(serverMessage{Type: "state", State: sess.View()})
	return sess, nil
}

// applyMessage performs one client action on the session.
func applyMessage(sess *session.Session, msg clientMessage) error {
	switch msg.Type {
	case "input":
		sess.SetInput(msg.Value)
	case "key":
		sess.SetKey(msg.Value)
	case "mode":
		mode, err := ciphers.ParseMode(msg.Value)
		if err != nil {
			return err
		}
		sess.SetMode(mode)
	case "toggle":
		sess.ToggleMode()
	case "start":
		return ignoreRunning(sess.Start())
	case "pause":
		sess.Pause()
	case "resume":
		return ignoreRunning(sess.Resume())
	case "reset":
		sess.Reset()
	case "state":
	default:
		return errors.New("unknown message type: " + msg.Type)
	}
	return nil
}

// ignoreRunning drops the error for a second press of play while a run
// is already going.
func ignoreRunning(err error) error {
	if errors.Is(err, animator.ErrAlreadyAnimating) {
		return nil
	}
	return err
}
