package runtime

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/wudi/hey/registry"
	"github.com/wudi/hey/runtime/spl"
	"github.com/wudi/hey/values"
)

// FiberStatus mirrors the lifecycle PHP's Fiber class exposes through
// isStarted/isSuspended/isRunning/isTerminated.
type FiberStatus int

const (
	FiberNotStarted FiberStatus = iota
	FiberRunning
	FiberSuspended
	FiberTerminated
)

// fiberResumeMsg carries a value (or thrown exception) back into a suspended
// fiber's Suspend() call.
type fiberResumeMsg struct {
	value *values.Value
	throw *values.Value
}

// fiberSuspendMsg carries a value (or terminal result) out of a running
// fiber to whichever goroutine called Start/Resume.
type fiberSuspendMsg struct {
	value       *values.Value
	terminated  bool
	returnValue *values.Value
	err         error
}

// Fiber implements PHP's cooperative coroutine: a dedicated goroutine runs
// the callback, handing control back and forth over unbuffered channels so
// that only one side is ever doing work at a time, matching the
// single-threaded cooperative model real PHP fibers describe.
type Fiber struct {
	mu       sync.Mutex
	id       uuid.UUID
	status   FiberStatus
	callback *values.Value

	resumeCh  chan fiberResumeMsg
	suspendCh chan fiberSuspendMsg

	returnValue *values.Value
	fatalErr    error
}

var (
	fiberStackMu sync.Mutex
	fiberStack   []*Fiber
)

func pushRunningFiber(f *Fiber) {
	fiberStackMu.Lock()
	fiberStack = append(fiberStack, f)
	fiberStackMu.Unlock()
}

func popRunningFiber() {
	fiberStackMu.Lock()
	if n := len(fiberStack); n > 0 {
		fiberStack = fiberStack[:n-1]
	}
	fiberStackMu.Unlock()
}

func currentRunningFiber() *Fiber {
	fiberStackMu.Lock()
	defer fiberStackMu.Unlock()
	if n := len(fiberStack); n > 0 {
		return fiberStack[n-1]
	}
	return nil
}

func NewFiber(callback *values.Value) *Fiber {
	return &Fiber{id: uuid.New(), callback: callback, status: FiberNotStarted}
}

// ID returns the fiber's opaque identity tag, used to disambiguate fibers in
// diagnostic error messages (two fibers can otherwise look identical once
// terminated).
func (f *Fiber) ID() string {
	return f.id.String()
}

func resolveCallableFunction(ctx registry.BuiltinCallContext, callback *values.Value) (*registry.Function, error) {
	if callback == nil {
		return nil, fmt.Errorf("callback must be a valid callable")
	}
	if callback.IsCallable() {
		closure := callback.ClosureGet()
		if closure == nil {
			return nil, fmt.Errorf("callback must be a valid callable")
		}
		if fn, ok := closure.Function.(*registry.Function); ok {
			return fn, nil
		}
		return nil, fmt.Errorf("callback must be a valid callable")
	}
	if callback.Type == values.TypeString {
		name := callback.ToString()
		if reg := ctx.SymbolRegistry(); reg != nil {
			if fn, ok := reg.GetFunction(name); ok {
				return fn, nil
			}
		}
		if fn, ok := ctx.LookupUserFunction(name); ok {
			return fn, nil
		}
		return nil, fmt.Errorf("fiber callback function \"%s\" not found", name)
	}
	return nil, fmt.Errorf("Fiber::__construct(): Argument #1 ($callback) must be a valid callback")
}

// Start runs the fiber's callback on a new goroutine until it first
// suspends or returns, blocking the caller until that happens.
func (f *Fiber) Start(ctx registry.BuiltinCallContext, args []*values.Value) (*values.Value, error) {
	f.mu.Lock()
	if f.status != FiberNotStarted {
		f.mu.Unlock()
		return nil, fmt.Errorf("Cannot start a fiber (%s) that has already been started", f.id)
	}
	f.status = FiberRunning
	f.resumeCh = make(chan fiberResumeMsg)
	f.suspendCh = make(chan fiberSuspendMsg)
	f.mu.Unlock()

	fn, err := resolveCallableFunction(ctx, f.callback)
	if err != nil {
		f.mu.Lock()
		f.status = FiberTerminated
		f.fatalErr = err
		f.mu.Unlock()
		return nil, err
	}

	go func() {
		pushRunningFiber(f)
		defer popRunningFiber()
		ret, callErr := ctx.CallUserFunction(fn, args)
		f.mu.Lock()
		f.status = FiberTerminated
		f.returnValue = ret
		f.fatalErr = callErr
		f.mu.Unlock()
		f.suspendCh <- fiberSuspendMsg{terminated: true, returnValue: ret, err: callErr}
	}()

	msg := <-f.suspendCh
	if msg.err != nil {
		return nil, msg.err
	}
	if msg.terminated {
		return msg.returnValue, nil
	}
	return msg.value, nil
}

// Resume hands control back to a suspended fiber, returning the value (or
// final return value) it next produces.
func (f *Fiber) Resume(value *values.Value) (*values.Value, error) {
	f.mu.Lock()
	if f.status != FiberSuspended {
		f.mu.Unlock()
		return nil, fmt.Errorf("Cannot resume a fiber (%s) that is not suspended", f.id)
	}
	f.status = FiberRunning
	f.mu.Unlock()

	pushRunningFiber(f)
	f.resumeCh <- fiberResumeMsg{value: value}
	msg := <-f.suspendCh
	popRunningFiber()

	if msg.err != nil {
		return nil, msg.err
	}
	if msg.terminated {
		return msg.returnValue, nil
	}
	return msg.value, nil
}

// Suspend is invoked by Fiber::suspend() from inside the currently running
// fiber's goroutine. It blocks that goroutine until Resume() is called.
func Suspend(value *values.Value) (*values.Value, error) {
	f := currentRunningFiber()
	if f == nil {
		return nil, fmt.Errorf("Cannot suspend outside of a fiber")
	}

	f.mu.Lock()
	f.status = FiberSuspended
	f.mu.Unlock()

	f.suspendCh <- fiberSuspendMsg{value: value}
	msg := <-f.resumeCh

	f.mu.Lock()
	f.status = FiberRunning
	f.mu.Unlock()

	if msg.throw != nil {
		return nil, fmt.Errorf("%s", msg.throw.ToString())
	}
	return msg.value, nil
}

func (f *Fiber) IsStarted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status != FiberNotStarted
}

func (f *Fiber) IsRunning() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status == FiberRunning
}

func (f *Fiber) IsSuspended() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status == FiberSuspended
}

func (f *Fiber) IsTerminated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status == FiberTerminated
}

func (f *Fiber) GetReturn() (*values.Value, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status != FiberTerminated {
		return nil, fmt.Errorf("Cannot get fiber (%s) return value: the fiber has not been terminated", f.id)
	}
	if f.returnValue == nil {
		return values.NewNull(), nil
	}
	return f.returnValue, nil
}

// GetFiberClass returns the builtin Fiber class descriptor: a goroutine and
// channel handoff under the registry/SPL builtin-method wiring pattern.
func GetFiberClass() *registry.ClassDescriptor {
	fiberOf := func(thisObj *values.Value) (*Fiber, error) {
		if !thisObj.IsObject() {
			return nil, fmt.Errorf("method called on non-object")
		}
		obj := thisObj.Data.(*values.Object)
		raw, ok := obj.Properties["__fiber"]
		if !ok || raw.Data == nil {
			return nil, fmt.Errorf("Fiber not initialized")
		}
		fiber, ok := raw.Data.(*Fiber)
		if !ok {
			return nil, fmt.Errorf("Fiber not initialized")
		}
		return fiber, nil
	}

	constructorImpl := &registry.Function{
		Name:      "__construct",
		IsBuiltin: true,
		Builtin: func(ctx registry.BuiltinCallContext, args []*values.Value) (*values.Value, error) {
			if len(args) < 2 {
				return nil, fmt.Errorf("Fiber::__construct() expects at least 1 argument, %d given", len(args)-1)
			}
			thisObj := args[0]
			if !thisObj.IsObject() {
				return nil, fmt.Errorf("__construct called on non-object")
			}
			obj := thisObj.Data.(*values.Object)
			if obj.Properties == nil {
				obj.Properties = make(map[string]*values.Value)
			}
			fiber := NewFiber(args[1])
			obj.Properties["__fiber"] = &values.Value{Type: values.TypeResource, Data: fiber}
			return values.NewNull(), nil
		},
		Parameters: []*registry.Parameter{{Name: "callback", Type: "callable"}},
	}

	startImpl := &registry.Function{
		Name:       "start",
		IsBuiltin:  true,
		IsVariadic: true,
		Builtin: func(ctx registry.BuiltinCallContext, args []*values.Value) (*values.Value, error) {
			fiber, err := fiberOf(args[0])
			if err != nil {
				return nil, err
			}
			return fiber.Start(ctx, args[1:])
		},
	}

	resumeImpl := &registry.Function{
		Name:      "resume",
		IsBuiltin: true,
		Builtin: func(ctx registry.BuiltinCallContext, args []*values.Value) (*values.Value, error) {
			fiber, err := fiberOf(args[0])
			if err != nil {
				return nil, err
			}
			var value *values.Value
			if len(args) > 1 {
				value = args[1]
			} else {
				value = values.NewNull()
			}
			return fiber.Resume(value)
		},
		Parameters: []*registry.Parameter{{Name: "value", Type: "mixed", HasDefault: true, DefaultValue: values.NewNull()}},
	}

	getReturnImpl := &registry.Function{
		Name:      "getReturn",
		IsBuiltin: true,
		Builtin: func(ctx registry.BuiltinCallContext, args []*values.Value) (*values.Value, error) {
			fiber, err := fiberOf(args[0])
			if err != nil {
				return nil, err
			}
			return fiber.GetReturn()
		},
	}

	isStartedImpl := &registry.Function{
		Name:      "isStarted",
		IsBuiltin: true,
		Builtin: func(ctx registry.BuiltinCallContext, args []*values.Value) (*values.Value, error) {
			fiber, err := fiberOf(args[0])
			if err != nil {
				return nil, err
			}
			return values.NewBool(fiber.IsStarted()), nil
		},
	}

	isRunningImpl := &registry.Function{
		Name:      "isRunning",
		IsBuiltin: true,
		Builtin: func(ctx registry.BuiltinCallContext, args []*values.Value) (*values.Value, error) {
			fiber, err := fiberOf(args[0])
			if err != nil {
				return nil, err
			}
			return values.NewBool(fiber.IsRunning()), nil
		},
	}

	isSuspendedImpl := &registry.Function{
		Name:      "isSuspended",
		IsBuiltin: true,
		Builtin: func(ctx registry.BuiltinCallContext, args []*values.Value) (*values.Value, error) {
			fiber, err := fiberOf(args[0])
			if err != nil {
				return nil, err
			}
			return values.NewBool(fiber.IsSuspended()), nil
		},
	}

	isTerminatedImpl := &registry.Function{
		Name:      "isTerminated",
		IsBuiltin: true,
		Builtin: func(ctx registry.BuiltinCallContext, args []*values.Value) (*values.Value, error) {
			fiber, err := fiberOf(args[0])
			if err != nil {
				return nil, err
			}
			return values.NewBool(fiber.IsTerminated()), nil
		},
	}

	// Fiber::suspend() is a static call: no receiver is prepended to args.
	suspendImpl := &registry.Function{
		Name:       "suspend",
		IsBuiltin:  true,
		IsVariadic: true,
		Builtin: func(ctx registry.BuiltinCallContext, args []*values.Value) (*values.Value, error) {
			var value *values.Value
			if len(args) > 0 {
				value = args[0]
			} else {
				value = values.NewNull()
			}
			return Suspend(value)
		},
		Parameters: []*registry.Parameter{{Name: "value", Type: "mixed", HasDefault: true, DefaultValue: values.NewNull()}},
	}

	methods := map[string]*registry.MethodDescriptor{
		"__construct": {Name: "__construct", Visibility: "public",
			Parameters:     []*registry.ParameterDescriptor{{Name: "callback", Type: "callable"}},
			Implementation: spl.NewBuiltinMethodImpl(constructorImpl)},
		"start": {Name: "start", Visibility: "public",
			Parameters:     []*registry.ParameterDescriptor{},
			Implementation: spl.NewBuiltinMethodImpl(startImpl)},
		"resume": {Name: "resume", Visibility: "public",
			Parameters:     []*registry.ParameterDescriptor{{Name: "value", Type: "mixed"}},
			Implementation: spl.NewBuiltinMethodImpl(resumeImpl)},
		"getReturn": {Name: "getReturn", Visibility: "public",
			Parameters:     []*registry.ParameterDescriptor{},
			Implementation: spl.NewBuiltinMethodImpl(getReturnImpl)},
		"isStarted": {Name: "isStarted", Visibility: "public",
			Parameters:     []*registry.ParameterDescriptor{},
			Implementation: spl.NewBuiltinMethodImpl(isStartedImpl)},
		"isRunning": {Name: "isRunning", Visibility: "public",
			Parameters:     []*registry.ParameterDescriptor{},
			Implementation: spl.NewBuiltinMethodImpl(isRunningImpl)},
		"isSuspended": {Name: "isSuspended", Visibility: "public",
			Parameters:     []*registry.ParameterDescriptor{},
			Implementation: spl.NewBuiltinMethodImpl(isSuspendedImpl)},
		"isTerminated": {Name: "isTerminated", Visibility: "public",
			Parameters:     []*registry.ParameterDescriptor{},
			Implementation: spl.NewBuiltinMethodImpl(isTerminatedImpl)},
		"suspend": {Name: "suspend", Visibility: "public", IsStatic: true,
			Parameters:     []*registry.ParameterDescriptor{{Name: "value", Type: "mixed"}},
			Implementation: spl.NewBuiltinMethodImpl(suspendImpl)},
	}

	return &registry.ClassDescriptor{
		Name:       "Fiber",
		Parent:     "",
		Interfaces: []string{},
		Properties: make(map[string]*registry.PropertyDescriptor),
		Methods:    methods,
		Constants:  make(map[string]*registry.ConstantDescriptor),
	}
}
