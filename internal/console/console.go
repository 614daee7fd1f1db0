package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"bingo_caller/internal/model"
	"bingo_caller/internal/service"

	"github.com/sirupsen/logrus"
)

const (
	// bell звонок терминала
	bell = "\a"
	// clearLine возврат каретки и очистка строки
	clearLine = "\r\033[K"
)

type Deps struct {
	Serv   service.DrawService
	In     io.Reader
	Out    io.Writer
	Logger *logrus.Logger
}

// Console Ведущий в терминале: Enter - вытянуть номер, q - выход
type Console struct {
	serv   service.DrawService
	in     io.Reader
	logger *logrus.Logger

	outMutex sync.Mutex
	out      io.Writer
}

func New(deps Deps) *Console {
	return &Console{
		serv:   deps.Serv,
		in:     deps.In,
		out:    deps.Out,
		logger: deps.Logger,
	}
}

// Run Читать команды до q, конца ввода или отмены ctx
func (c *Console) Run(ctx context.Context) error {
	unsubscribe := c.serv.Subscribe("console", c.render)
	defer unsubscribe()

	c.printf("Press Enter to draw a number, q to quit. %d numbers in the drum.\n", c.serv.Remaining())

	lines := make(chan string)
	readErr := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			return err
		case line := <-lines:
			if strings.EqualFold(strings.TrimSpace(line), "q") {
				c.logger.Debug("console: quit")
				return nil
			}
			c.request(ctx)
		}
	}
}

func (c *Console) request(ctx context.Context) {
	outcome, cycle := c.serv.RequestDraw(ctx)
	if outcome == model.OutcomeBusy {
		c.printf("%sdraw %d in progress, wait for the number\n", clearLine, cycle)
	}
}

func (c *Console) render(ev model.Event) {
	switch ev.Kind {
	case model.DrawStarted:
		c.printf("%s%sDrawing #%d... ", bell, clearLine, ev.Cycle)
	case model.CandidateShown:
		c.printf("%sDrawing #%d... %2d", clearLine, ev.Cycle, ev.Number)
	case model.DrawCompleted:
		c.printf("%s%s%s   (%d left)\n", clearLine, bell+bell, model.FormatLabel(ev.Column, ev.Number), ev.Remaining)
	case model.AllNumbersDrawn:
		c.printf("%sAll numbers drawn.\n", clearLine)
	}
}

func (c *Console) printf(format string, args ...any) {
	c.outMutex.Lock()
	defer c.outMutex.Unlock()
	if _, err := fmt.Fprintf(c.out, format, args...); err != nil {
		c.logger.Warnf("console write: %v", err)
	}
}
