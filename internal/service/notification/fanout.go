package notification

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/soclink/notify/internal/directory"
	"github.com/soclink/notify/internal/model"
)

// FanOut dispatches one copy of a notification to every recipient in
// the list. Admin only. Recipients are dispatched concurrently by a
// bounded worker pool; one recipient failing never stops the rest.
func (s *Service) FanOut(ctx context.Context, requesterID uuid.UUID, in CreateInput, recipients []uuid.UUID) (model.BulkResult, error) {
	role, err := s.directory.Role(ctx, requesterID)
	if err != nil {
		zlog.Logger.Warn().Err(err).Str("requester_id", requesterID.String()).Msg("role lookup failed")
		return model.BulkResult{}, ErrForbidden
	}
	if role != directory.RoleAdmin {
		return model.BulkResult{}, ErrForbidden
	}

	result := model.BulkResult{Total: len(recipients)}
	if len(recipients) == 0 {
		return result, nil
	}

	type failure struct {
		recipient uuid.UUID
		err       error
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		failures []failure
	)

	sem := make(chan struct{}, s.fanoutWorkers)

	for _, recipient := range recipients {
		wg.Add(1)
		sem <- struct{}{}

		go func(recipient uuid.UUID) {
			defer wg.Done()
			defer func() { <-sem }()

			input := in
			input.RecipientID = recipient

			if _, err := s.Create(ctx, input); err != nil {
				zlog.Logger.Error().Err(err).
					Str("recipient_id", recipient.String()).
					Msg("fan-out dispatch failed")

				mu.Lock()
				failures = append(failures, failure{recipient: recipient, err: err})
				mu.Unlock()
			}
		}(recipient)
	}

	wg.Wait()

	result.Failed = len(failures)
	result.Successful = result.Total - result.Failed
	for _, f := range failures {
		result.FailedIDs = append(result.FailedIDs, f.recipient)
		result.Errors = append(result.Errors, f.err.Error())
	}

	return result, nil
}
