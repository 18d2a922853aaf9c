package sdk

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/minepkg/modio/internals/downloadmgr"
	"github.com/minepkg/modio/pkg/modio"
)

// Response describes the outcome of an async call
type Response struct {
	// Code is the HTTP status code. 0 if the request did not reach mod.io
	Code int
	// ResultCount is the number of returned items of list calls
	ResultCount  int
	ResultOffset int
	ResultLimit  int
	// ResultTotal is the number of items matching the query of list calls
	ResultTotal int
	Err         error
}

// OK returns true if the call succeeded
func (r Response) OK() bool {
	return r.Err == nil
}

// newResponse builds the response of a call that succeeds with `okCode`
func newResponse(okCode int, err error) Response {
	if err == nil {
		return Response{Code: okCode}
	}
	return Response{Code: statusOf(err), Err: err}
}

// statusOf returns the HTTP status responsible for err
func statusOf(err error) int {
	var downloadStatus *downloadmgr.ErrStatus
	switch {
	case errors.Is(err, ErrNoModfile):
		return http.StatusNotFound
	case errors.As(err, &downloadStatus):
		return downloadStatus.StatusCode
	}
	return modio.StatusCode(err)
}

// begin registers a new call. It returns false after Shutdown
func (i *Instance) begin() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.shutdown {
		return false
	}
	i.inFlight++
	i.wg.Add(1)
	return true
}

// finish queues the completion of a call registered with begin
func (i *Instance) finish(complete func()) {
	i.mu.Lock()
	i.inFlight--
	i.completions = append(i.completions, complete)
	i.mu.Unlock()
	i.wg.Done()
}

// enqueue queues a completion that was not preceded by begin
func (i *Instance) enqueue(complete func()) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.completions = append(i.completions, complete)
}

// async runs `run` on a new goroutine and queues `cb` with its result
func async[T any](i *Instance, name string, okCode int, run func(ctx context.Context) (T, error), cb func(Response, T)) {
	var zero T
	if cb == nil {
		cb = func(Response, T) {}
	}
	if !i.begin() {
		i.enqueue(func() { cb(Response{Err: ErrShutdown}, zero) })
		return
	}

	callID := uuid.NewString()
	logger := i.logger.With("call", name, "id", callID[:8])

	go func() {
		select {
		case i.sem <- struct{}{}:
		case <-i.ctx.Done():
			i.finish(func() { cb(Response{Err: ErrShutdown}, zero) })
			return
		}

		logger.Debug("started")
		result, err := run(i.ctx)
		<-i.sem

		res := newResponse(okCode, err)
		if err != nil {
			logger.Debug("failed", "code", res.Code, "err", err)
		} else {
			logger.Debug("done", "code", res.Code)
		}
		i.finish(func() { cb(res, result) })
	}()
}

// asyncPage is async for list calls. The pagination info is copied into the Response
func asyncPage[T any](i *Instance, name string, run func(ctx context.Context) (*modio.Page[T], error), cb func(Response, []T)) {
	async(i, name, http.StatusOK, run, func(res Response, page *modio.Page[T]) {
		var data []T
		if page != nil {
			res.ResultCount = page.ResultCount
			res.ResultOffset = page.ResultOffset
			res.ResultLimit = page.ResultLimit
			res.ResultTotal = page.ResultTotal
			data = page.Data
		}
		if cb != nil {
			cb(res, data)
		}
	})
}
