package service

import (
	"context"
	"time"
)

// defaultCloseTimeout bounds closing when the context has no deadline.
const defaultCloseTimeout = 30 * time.Second

// Closer is implemented by the executors that hold connections or other resources.
type Closer interface {
	Close(ctx context.Context) error
}

// Close releases the executor if it is a Closer. It doesn't wait longer than the context allows.
func (s *Service) Close(ctx context.Context) error {
	closer, ok := s.Executor.(Closer)
	if !ok {
		return nil
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultCloseTimeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() { done <- closer.Close(ctx) }()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err != nil {
		logger.Errorf("Closing executor: %T failed: %v", closer, err)
		return err
	}
	logger.Debugf("Executor: %T closed", closer)
	return nil
}
