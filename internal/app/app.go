package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"bingo_caller/internal/config"
	"bingo_caller/internal/model"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

type Options struct {
	// EnvPath .env, отсутствие файла не ошибка
	EnvPath string
	// ConfigPath YAML с настройками розыгрыша
	ConfigPath string
	// Console ведущий в терминале
	Console bool
}

type App struct {
	ServiceProvider *ServiceProvider
	opts            Options
}

func NewApp(opts Options) *App {
	return &App{opts: opts}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider(s.opts.ConfigPath)
}

// Run Запустить HTTP, табло и консоль; возвращает после отмены ctx или выхода из консоли
func (s *App) Run(ctx context.Context) (err error) {
	envErr := config.Load(s.opts.EnvPath)
	s.initServiceProvider()
	sp := s.ServiceProvider
	logger := sp.Logger()
	if envErr != nil {
		logger.Warnf("error loading %s: %v", s.opts.EnvPath, envErr)
	}

	defer func() {
		err = multierr.Append(err, sp.Close())
	}()

	drawServ := sp.DrawService()
	if journal := sp.JournalService(ctx); journal != nil {
		if err := journal.Start(ctx); err != nil {
			return err
		}
		unsubscribe := drawServ.Subscribe("journal", journal.Handle, model.DrawCompleted, model.AllNumbersDrawn)
		defer unsubscribe()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	server := &http.Server{
		Addr:              sp.HTTPCfg().Address(),
		Handler:           sp.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		logger.Infof("starting server at %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	if feedServer := sp.FeedServer(); feedServer != nil {
		g.Go(func() error {
			return feedServer.Run(gctx)
		})
	}

	if s.opts.Console {
		g.Go(func() error {
			// q в консоли останавливает всё приложение
			defer cancel()
			return sp.Console().Run(gctx)
		})
	}

	err = g.Wait()
	logger.Info("stopped")
	return err
}
