package feed

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"net"
	"sync"
	"time"

	dto "bingo_caller/internal/api/dto/draw"
	"bingo_caller/internal/converter"
	"bingo_caller/internal/model"
	"bingo_caller/internal/service"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"
	"github.com/smallnest/goframe"
)

const writeTimeout = 2 * time.Second

var (
	encoderConfig = goframe.EncoderConfig{
		ByteOrder:                       binary.BigEndian,
		LengthFieldLength:               4,
		LengthAdjustment:                0,
		LengthIncludesLengthFieldLength: false,
	}

	decoderConfig = goframe.DecoderConfig{
		ByteOrder:           binary.BigEndian,
		LengthFieldOffset:   0,
		LengthFieldLength:   4,
		LengthAdjustment:    0,
		InitialBytesToStrip: 4,
	}
)

// NewFrameConn Кадры с 4-байтовой длиной (big-endian) поверх TCP
func NewFrameConn(conn net.Conn) goframe.FrameConn {
	return goframe.NewLengthFieldBasedFrameConn(encoderConfig, decoderConfig, conn)
}

type ServerDeps struct {
	Address string
	Workers int
	Serv    service.DrawService
	Logger  *logrus.Logger
}

// Server Рассылает события розыгрыша табло в зале
type Server struct {
	address string
	serv    service.DrawService
	logger  *logrus.Logger
	workers *ants.Pool

	listenerMutex sync.Mutex
	listener      net.Listener

	clientsMutex sync.RWMutex
	clients      map[uint64]*client
	nextID       uint64
}

type client struct {
	id     uint64
	remote string
	frames goframe.FrameConn
	// Снимок и события пишутся из разных горутин
	writeMutex sync.Mutex
}

func NewServer(deps ServerDeps) (*Server, error) {
	workers, err := ants.NewPool(deps.Workers)
	if err != nil {
		return nil, err
	}
	return &Server{
		address: deps.Address,
		serv:    deps.Serv,
		logger:  deps.Logger,
		workers: workers,
		clients: map[uint64]*client{},
	}, nil
}

// Listen Открыть порт. Вызывается до Run, чтобы узнать адрес при ":0"
func (s *Server) Listen() error {
	s.listenerMutex.Lock()
	defer s.listenerMutex.Unlock()
	if s.listener != nil {
		return nil
	}
	l, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	s.listener = l
	return nil
}

// Addr Адрес открытого порта, nil до Listen
func (s *Server) Addr() net.Addr {
	s.listenerMutex.Lock()
	defer s.listenerMutex.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Run Принимать клиентов и транслировать им события до отмены ctx
func (s *Server) Run(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	s.listenerMutex.Lock()
	listener := s.listener
	s.listenerMutex.Unlock()

	unsubscribe := s.serv.Subscribe("feed", s.Broadcast)
	defer unsubscribe()

	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	s.logger.Infof("display feed listening on %s", listener.Addr())
	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				s.closeClients()
				return nil
			}
			s.logger.Warnf("feed accept: %v", err)
			continue
		}
		go s.handle(conn)
	}
}

// Broadcast Отправить событие всем клиентам и дождаться отправки, чтобы сохранить порядок
func (s *Server) Broadcast(ev model.Event) {
	payload, err := json.Marshal(converter.ToEventMessage(ev))
	if err != nil {
		s.logger.Errorf("feed marshal %s: %v", ev.Kind, err)
		return
	}

	s.clientsMutex.RLock()
	targets := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		targets = append(targets, c)
	}
	s.clientsMutex.RUnlock()

	var wg sync.WaitGroup
	for _, c := range targets {
		wg.Add(1)
		send := func() {
			defer wg.Done()
			if err := c.write(payload); err != nil {
				s.logger.Warnf("feed client %s dropped: %v", c.remote, err)
				s.drop(c)
			}
		}
		if err := s.workers.Submit(send); err != nil {
			// Пул закрыт или переполнен, пишем сами
			send()
		}
	}
	wg.Wait()
}

// Clients Число подключённых табло
func (s *Server) Clients() int {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()
	return len(s.clients)
}

// Close Закрыть порт, клиентов и пул
func (s *Server) Close() error {
	s.listenerMutex.Lock()
	var err error
	if s.listener != nil {
		err = s.listener.Close()
		if errors.Is(err, net.ErrClosed) {
			err = nil
		}
	}
	s.listenerMutex.Unlock()

	s.closeClients()
	s.workers.Release()
	return err
}

func (s *Server) handle(conn net.Conn) {
	c := &client{
		remote: conn.RemoteAddr().String(),
		frames: NewFrameConn(conn),
	}

	// Рассылка ждёт writeMutex, поэтому снимок уходит первым
	c.writeMutex.Lock()
	s.clientsMutex.Lock()
	s.nextID++
	c.id = s.nextID
	s.clients[c.id] = c
	s.clientsMutex.Unlock()
	s.logger.Infof("feed client %s connected", c.remote)

	payload, err := json.Marshal(s.snapshot())
	if err == nil {
		err = c.writeLocked(payload)
	}
	c.writeMutex.Unlock()
	if err != nil {
		s.logger.Warnf("feed client %s: send snapshot: %v", c.remote, err)
		s.drop(c)
		return
	}

	// Табло ничего не шлёт, чтение нужно только чтобы заметить отключение
	for {
		if _, err := c.frames.ReadFrame(); err != nil {
			s.drop(c)
			return
		}
	}
}

func (s *Server) snapshot() dto.SnapshotMessage {
	snap := s.serv.Snapshot()
	return dto.SnapshotMessage{
		Type:    "snapshot",
		State:   converter.ToStateResponse(snap),
		History: converter.ToHistoryResponse(snap.History, s.serv.ColumnOf, false),
	}
}

func (s *Server) drop(c *client) {
	s.clientsMutex.Lock()
	_, ok := s.clients[c.id]
	delete(s.clients, c.id)
	s.clientsMutex.Unlock()
	if !ok {
		return
	}
	_ = c.frames.Close()
	s.logger.Infof("feed client %s disconnected", c.remote)
}

func (s *Server) closeClients() {
	s.clientsMutex.Lock()
	all := s.clients
	s.clients = map[uint64]*client{}
	s.clientsMutex.Unlock()

	for _, c := range all {
		_ = c.frames.Close()
	}
}

func (c *client) write(payload []byte) error {
	c.writeMutex.Lock()
	defer c.writeMutex.Unlock()
	return c.writeLocked(payload)
}

func (c *client) writeLocked(payload []byte) error {
	if err := c.frames.Conn().SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return c.frames.WriteFrame(payload)
}
