package arcade

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/minaorangina/arcade/engine"
	"github.com/minaorangina/arcade/game"
	"github.com/minaorangina/arcade/internal/random"
	"github.com/minaorangina/arcade/protocol"
	"github.com/minaorangina/arcade/registry"
	"github.com/minaorangina/arcade/sched"
	"github.com/minaorangina/arcade/store"
	uuid "github.com/satori/go.uuid"
)

const (
	recordTimeout = 5 * time.Second
	recordQueue   = 32
)

// NewID constructs an arcade or result ID
func NewID() string {
	return uuid.NewV4().String()
}

type HubOpts struct {
	ID       string
	Registry registry.Registry
	// Rand defaults to a freshly seeded generator
	Rand  game.Rand
	Frame time.Duration
	// Results is optional; wins are only logged when it is set
	Results store.ResultStore
	Logger  *log.Logger
	// IdleTimeout closes a hub that has had no client for this long.
	// Zero keeps it open until Close.
	IdleTimeout time.Duration
	// OnIdle replaces Close when the idle timeout fires, so the owner can
	// forget the hub as well
	OnIdle func(id string)
}

// Hub is one visitor's arcade. Everything that touches the shell, the stage
// or the game runs on the hub's event loop.
type Hub struct {
	id        string
	loop      *sched.Loop
	shell     *Shell
	results   store.ResultStore
	logger    *log.Logger
	cancel    context.CancelFunc
	closeOnce sync.Once
	stopped   chan struct{}

	records  chan store.Result
	recorded chan struct{}

	idleTimeout time.Duration
	onIdle      func(id string)

	// loop only
	clients map[string]Client
	last    []byte
	won     bool
	idle    sched.Timer
}

// NewHub constructs a Hub and starts its event loop
func NewHub(opts HubOpts) (*Hub, error) {
	if opts.ID == "" {
		opts.ID = NewID()
	}
	if opts.Registry == nil {
		opts.Registry = registry.Default()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Rand == nil {
		r, err := random.New(0)
		if err != nil {
			return nil, err
		}
		opts.Rand = r
	}

	loop := sched.NewLoop(opts.Frame)
	h := &Hub{
		id:          opts.ID,
		loop:        loop,
		results:     opts.Results,
		logger:      opts.Logger,
		stopped:     make(chan struct{}),
		records:     make(chan store.Result, recordQueue),
		recorded:    make(chan struct{}),
		idleTimeout: opts.IdleTimeout,
		onIdle:      opts.OnIdle,
		clients:     map[string]Client{},
	}

	stage, err := engine.NewStage(engine.StageOpts{
		Registry:  opts.Registry,
		Scheduler: loop,
		Rand:      opts.Rand,
		OnEvent:   h.onEvent,
	})
	if err != nil {
		return nil, err
	}
	h.shell = NewShell(opts.Registry, stage)

	loop.AfterEach(h.broadcast)
	// nobody has connected yet, so the idle clock starts now
	h.armIdle()

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go h.recordLoop()
	go func() {
		loop.Run(ctx)
		close(h.stopped)
	}()

	return h, nil
}

func (h *Hub) ID() string {
	return h.id
}

func (h *Hub) Departments() []registry.Department {
	return h.shell.Departments()
}

// Done is closed once the hub's loop has stopped
func (h *Hub) Done() <-chan struct{} {
	return h.loop.Done()
}

// Do applies msg on the loop and waits for the resulting snapshot
func (h *Hub) Do(ctx context.Context, msg protocol.InboundMessage) (OutboundMessage, error) {
	var (
		reply     OutboundMessage
		handleErr error
	)
	if err := h.loop.Call(ctx, func() {
		reply, handleErr = h.handle(msg)
	}); err != nil {
		return OutboundMessage{}, err
	}
	return reply, handleErr
}

func (h *Hub) Snapshot(ctx context.Context) (engine.Snapshot, error) {
	var snap engine.Snapshot
	err := h.loop.Call(ctx, func() {
		snap = h.shell.Snapshot()
	})
	return snap, err
}

// Receive queues a message from one of the hub's clients. Errors and
// replies go back to that client only.
func (h *Hub) Receive(clientID string, msg protocol.InboundMessage) {
	h.loop.Post(func() {
		reply, err := h.handle(msg)

		c, ok := h.clients[clientID]
		if !ok {
			return
		}
		if err != nil {
			h.send(c, buildErrorMessage(h.id, err))
			return
		}
		// a refresh is deduped out of the broadcast, so it is answered here
		if msg.Command == protocol.Departments || msg.Command == protocol.Snapshot {
			h.send(c, reply)
		}
	})
}

// Register adds a client and sends it the current snapshot
func (h *Hub) Register(c Client) error {
	if !h.loop.Post(func() {
		h.clients[c.ID()] = c
		if h.idle != nil {
			h.idle.Stop()
		}
		msg := buildSnapshotMessage(h.id, h.shell.Snapshot())
		if data, err := json.Marshal(msg); err == nil {
			h.last = data
		}
		h.send(c, msg)
	}) {
		return sched.ErrLoopStopped
	}
	return nil
}

func (h *Hub) Unregister(clientID string) {
	h.loop.Post(func() {
		delete(h.clients, clientID)
		h.armIdle()
	})
}

// Close unmounts the stage, disconnects every client, stops the loop and
// waits for pending wins to be recorded
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		h.loop.Call(ctx, func() {
			h.shell.Close()
			for id, c := range h.clients {
				c.Close()
				delete(h.clients, id)
			}
		})
		h.cancel()
		h.loop.Stop()

		<-h.stopped
		close(h.records)
		<-h.recorded
	})
}

func (h *Hub) handle(msg protocol.InboundMessage) (OutboundMessage, error) {
	err := h.shell.Receive(msg)
	reply := buildSnapshotMessage(h.id, h.shell.Snapshot())
	if msg.Command == protocol.Departments {
		reply.Command = protocol.Departments
		reply.Departments = h.shell.Departments()
	}
	return reply, err
}

func (h *Hub) send(c Client, msg OutboundMessage) {
	if err := c.Send(msg); err != nil {
		h.logger.Printf("arcade %s: dropping client %s: %v", h.id, c.ID(), err)
		delete(h.clients, c.ID())
		c.Close()
		h.armIdle()
	}
}

// armIdle starts the idle clock once the last client has gone
func (h *Hub) armIdle() {
	if h.idleTimeout <= 0 || len(h.clients) > 0 {
		return
	}
	if h.idle != nil && h.idle.Active() {
		return
	}
	h.idle = h.loop.After(h.idleTimeout, h.expire)
}

func (h *Hub) expire() {
	if len(h.clients) > 0 {
		return
	}
	h.logger.Printf("arcade %s: idle for %s, closing", h.id, h.idleTimeout)

	// Close waits on the loop, so it cannot run on it
	if h.onIdle != nil {
		go h.onIdle(h.id)
		return
	}
	go h.Close()
}

// broadcast runs after every loop turn and fans the snapshot out when it
// has changed
func (h *Hub) broadcast() {
	won := h.won
	h.won = false
	if len(h.clients) == 0 {
		return
	}

	msg := buildSnapshotMessage(h.id, h.shell.Snapshot())
	if won {
		msg.Command = protocol.Won
	}
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Printf("arcade %s: %v", h.id, err)
		return
	}
	if !won && bytes.Equal(data, h.last) {
		return
	}
	h.last = data

	for _, c := range h.clients {
		h.send(c, msg)
	}
}

func (h *Hub) onEvent(e engine.Event) {
	h.logger.Printf("arcade %s: %s %s (%s) session %d", h.id, e.Type, e.DepartmentID, e.Kind, e.Session)
	if e.Type != engine.Won {
		return
	}
	h.won = true
	h.record(e)
}

// record queues a win for the recorder so a slow store never holds up the
// loop
func (h *Hub) record(e engine.Event) {
	if h.results == nil {
		return
	}

	r := store.Result{
		ID:           NewID(),
		ArcadeID:     h.id,
		DepartmentID: e.DepartmentID,
		Kind:         e.Kind,
		StartedAt:    e.StartedAt,
		WonAt:        e.At,
	}
	select {
	case h.records <- r:
	default:
		h.logger.Printf("arcade %s: recorder is backed up, dropping result %s", h.id, r.ID)
	}
}

func (h *Hub) recordLoop() {
	defer close(h.recorded)

	for r := range h.records {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		err := h.results.Record(ctx, r)
		cancel()
		if err != nil {
			h.logger.Printf("arcade %s: %v", h.id, err)
		}
	}
}
