package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	channerics "github.com/niceyeti/channerics/channels"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/SeamusWaldron/cubesim"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = time.Second
	// Maximum message size allowed from peer.
	maxMessageSize = 8192
	// Send pings to peer with this period.
	pingPeriod = 5 * time.Second
	// Pings the peer may miss before it is considered gone.
	pongWait = 3 * pingPeriod
)

var upgrader = websocket.Upgrader{}

var (
	ErrPongDeadlineExceeded = errors.New("server: client disconnect, pong deadline exceeded")
	errClientClosed         = errors.New("server: client closed")
)

// client streams engine events to one websocket and applies the commands
// it sends back.
type client struct {
	engine *Engine
	logger *zap.Logger
	ws     *websocket.Conn
	ctx    context.Context

	// gorilla allows one concurrent writer.
	writeMu  sync.Mutex
	lastPong atomic.Int64
}

func newClient(engine *Engine, logger *zap.Logger, w http.ResponseWriter, r *http.Request) (*client, error) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	ws.SetReadLimit(maxMessageSize)

	return &client{engine: engine, logger: logger, ws: ws, ctx: r.Context()}, nil
}

// Sync runs the read, ping and publish loops until the peer goes away or
// the request context ends. A normal close returns nil.
func (cli *client) Sync() error {
	events, unsubscribe := cli.engine.Subscribe()
	defer unsubscribe()

	group, groupCtx := errgroup.WithContext(cli.ctx)

	group.Go(func() error {
		return cli.readMessages(groupCtx)
	})
	group.Go(func() error {
		return cli.pingPong(groupCtx)
	})
	group.Go(func() error {
		return cli.publish(groupCtx, events)
	})
	group.Go(func() error {
		<-groupCtx.Done()
		cli.close()
		return nil
	})

	err := group.Wait()
	if errors.Is(err, errClientClosed) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (cli *client) readMessages(ctx context.Context) error {
	for {
		_, data, err := cli.ws.ReadMessage()
		if err != nil {
			if isClosure(err) || ctx.Err() != nil {
				return errClientClosed
			}
			return fmt.Errorf("read failed: %w", err)
		}

		var msg ClientMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			cli.logger.Debug("ignoring malformed client message", zap.Error(err))
			continue
		}
		if err := cli.apply(ctx, msg); err != nil {
			return err
		}
	}
}

func (cli *client) apply(ctx context.Context, msg ClientMsg) error {
	if msg.Moves != "" {
		if _, err := cli.engine.Enqueue(ctx, msg.Moves); err != nil {
			return err
		}
	}
	if msg.Pause == nil && msg.Speed <= 0 {
		return nil
	}
	return cli.engine.Do(ctx, func(a *cubesim.Animator) {
		if msg.Pause != nil {
			if *msg.Pause {
				a.Pause()
			} else {
				a.Resume()
			}
		}
		if msg.Speed > 0 {
			a.SetSpeed(msg.Speed)
		}
	})
}

// pingPong requires readMessages to be running so the pong handler fires.
func (cli *client) pingPong(ctx context.Context) error {
	cli.lastPong.Store(time.Now().UnixNano())
	cli.ws.SetPongHandler(func(string) error {
		cli.lastPong.Store(time.Now().UnixNano())
		return nil
	})

	pinger := channerics.NewTicker(ctx.Done(), pingPeriod)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-pinger:
			if time.Since(time.Unix(0, cli.lastPong.Load())) > pongWait {
				return ErrPongDeadlineExceeded
			}
			cli.writeMu.Lock()
			err := cli.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			cli.writeMu.Unlock()
			if err != nil {
				if isClosure(err) {
					return errClientClosed
				}
				return fmt.Errorf("ping failed: %w", err)
			}
		}
	}
}

func (cli *client) publish(ctx context.Context, events <-chan Event) error {
	state, err := cli.engine.State(ctx)
	if err != nil {
		return err
	}
	if err := cli.write(Event{Type: EventState, Status: &state.Status, Cube: &state.Cube}); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if err := cli.write(ev); err != nil {
				return err
			}
		}
	}
}

func (cli *client) write(v any) error {
	cli.writeMu.Lock()
	defer cli.writeMu.Unlock()

	if err := cli.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set deadline: %w", err)
	}
	if err := cli.ws.WriteJSON(v); err != nil {
		if isClosure(err) {
			return errClientClosed
		}
		return fmt.Errorf("publish failed: %w", err)
	}
	return nil
}

func (cli *client) close() {
	cli.writeMu.Lock()
	_ = cli.ws.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
	cli.writeMu.Unlock()
	cli.ws.Close()
}

func isClosure(err error) bool {
	return err != nil && (websocket.IsCloseError(
		err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway) || errors.Is(err, websocket.ErrCloseSent))
}
