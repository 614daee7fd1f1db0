package service

import (
	"context"

	"bingo_caller/internal/events"
	"bingo_caller/internal/model"
)

type DrawService interface {
	// RequestDraw запускает цикл розыгрыша, номер цикла валиден для OutcomeAccepted и OutcomeBusy
	RequestDraw(ctx context.Context) (model.Outcome, uint64)
	// Await ждёт окончания цикла: DrawCompleted или AllNumbersDrawn
	Await(ctx context.Context, cycle uint64) (*model.DrawResult, error)
	Snapshot() model.Snapshot
	Remaining() int
	History() []int
	ColumnOf(n int) (model.Column, error)
	Subscribe(name string, handler events.Handler, kinds ...model.EventKind) (unsubscribe func())
}

type AuthService interface {
	Login(ctx context.Context, login, password string) (accessToken string, err error)
	Verify(accessToken string) (*model.Host, error)
}

type JournalService interface {
	Start(ctx context.Context) error
	Handle(ev model.Event)
}
