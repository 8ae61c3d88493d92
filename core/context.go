package core

import (
	"context"

	"github.com/gookit/event"
	"go.lumeweb.com/queuemailer/config"
	"gorm.io/gorm"
)

type ContextBuilderOption func(Context) (Context, error)

type StartupFunc func(Context) error
type ExitFunc func(Context) error

type Context struct {
	context.Context
	services     map[string]any
	cfg          config.Manager
	logger       *Logger
	exitFuncs    []func(Context) error
	startupFuncs []func(Context) error
	db           *gorm.DB
	cancel       context.CancelFunc
	event        *event.Manager
}

func NewContext(config config.Manager, logger *Logger, options ...ContextBuilderOption) (Context, error) {
	newCtx := Context{
		Context:  context.Background(),
		services: make(map[string]any),
		cfg:      config,
		logger:   logger,
		event:    event.NewManager(""),
	}
	c, cancel := context.WithCancel(newCtx.Context)

	newCtx.Context = c
	newCtx.cancel = cancel

	return newCtx.With(options...)
}

// With applies further options on top of an existing context.
func (ctx Context) With(options ...ContextBuilderOption) (Context, error) {
	var err error

	for _, opt := range options {
		ctx, err = opt(ctx)
		if err != nil {
			return ctx, err
		}
	}

	return ctx, nil
}

func (ctx *Context) Service(id string) any {
	if svc, ok := ctx.services[id]; ok {
		return svc
	}

	return nil
}

func (ctx *Context) OnExit(f func(Context) error) {
	ctx.exitFuncs = append(ctx.exitFuncs, f)
}

func (ctx *Context) OnStartup(f func(Context) error) {
	ctx.startupFuncs = append(ctx.startupFuncs, f)
}

func (ctx *Context) StartupFuncs() []func(Context) error {
	return ctx.startupFuncs
}

func (ctx *Context) ExitFuncs() []func(Context) error {
	return ctx.exitFuncs
}

// Startup runs the startup funcs in registration order, stopping at the first error.
func (ctx Context) Startup() error {
	for _, f := range ctx.startupFuncs {
		if err := f(ctx); err != nil {
			return err
		}
	}

	return nil
}

// Exit runs every exit func in reverse registration order and returns the first error seen.
func (ctx Context) Exit() error {
	var firstErr error

	for i := len(ctx.exitFuncs) - 1; i >= 0; i-- {
		if err := ctx.exitFuncs[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	ctx.cancel()

	return firstErr
}

func (ctx *Context) DB() *gorm.DB {
	return ctx.db
}

func (ctx *Context) Logger() *Logger {
	return ctx.logger
}

func (ctx *Context) Config() config.Manager {
	return ctx.cfg
}

func (ctx *Context) Cancel() {
	ctx.cancel()
}

func (ctx *Context) Event() *event.Manager {
	return ctx.event
}

func ContextWithService(id string, svc any) ContextBuilderOption {
	return func(ctx Context) (Context, error) {
		ctx.services[id] = svc
		return ctx, nil
	}
}

func ContextWithStartupFunc(f StartupFunc) ContextBuilderOption {
	return func(ctx Context) (Context, error) {
		ctx.OnStartup(f)
		return ctx, nil
	}
}

func ContextWithExitFunc(f ExitFunc) ContextBuilderOption {
	return func(ctx Context) (Context, error) {
		ctx.OnExit(f)
		return ctx, nil
	}
}

func ContextWithDB(db *gorm.DB) ContextBuilderOption {
	return func(ctx Context) (Context, error) {
		ctx.db = db
		return ctx, nil
	}
}

func ContextWithEvents(events ...Eventer) ContextBuilderOption {
	return func(ctx Context) (Context, error) {
		for _, evt := range events {
			ctx.event.AddEvent(evt)
		}
		return ctx, nil
	}
}

func ContextOptions(options ...ContextBuilderOption) []ContextBuilderOption {
	return options
}
