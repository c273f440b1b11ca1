// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package moderation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/android-cat/ChordProgressShare/auth"
	"github.com/android-cat/ChordProgressShare/models"
	"github.com/android-cat/ChordProgressShare/store"
)

// Workflow moves submissions from pending to approved or rejected and
// manages the IP block list. Admin operations take the caller's credential
// and compare it with the configured password.
type Workflow struct {
	store         *store.Store
	adminPassword string
	now           func() time.Time
}

func New(st *store.Store, adminPassword string) *Workflow {
	return &Workflow{
		store:         st,
		adminPassword: adminPassword,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (w *Workflow) authorize(credential string) error {
	if err := auth.ValidateAdminPassword(credential, w.adminPassword); err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return nil
}

func (w *Workflow) checkBlocked(ctx context.Context, originIP string) error {
	blocked, err := w.store.IsBlocked(ctx, originIP)
	if err != nil {
		return err
	}
	if blocked {
		return ErrBlocked
	}
	return nil
}

// Submit stores payload as a pending submission. originalID is nil for a
// new post and names a published progression for an edit request.
func (w *Workflow) Submit(ctx context.Context, payload models.ProgressionPayload, originalID *string, originIP string) (models.Submission, error) {
	if err := w.checkBlocked(ctx, originIP); err != nil {
		return models.Submission{}, err
	}

	payload, patterns, songs, err := normalizePayload(payload)
	if err != nil {
		return models.Submission{}, err
	}

	if originalID != nil {
		exists, err := w.store.ProgressionExists(ctx, *originalID)
		if err != nil {
			return models.Submission{}, err
		}
		if !exists {
			return models.Submission{}, fmt.Errorf("%w: progression %s", ErrNotFound, *originalID)
		}
	}

	sub := models.Submission{
		ID:         auth.GenerateID(),
		Title:      payload.Title,
		Remarks:    payload.Remarks,
		Patterns:   patterns,
		Songs:      songs,
		OriginalID: originalID,
		Status:     models.StatusPending,
		IPAddress:  originIP,
		CreatedAt:  w.now(),
	}
	if err := w.store.CreateSubmission(ctx, sub); err != nil {
		return models.Submission{}, err
	}

	slog.Info("submission received", "submission_id", sub.ID, "edit_request", sub.IsEditRequest())
	return sub, nil
}

// ListPending returns pending submissions in submission order.
func (w *Workflow) ListPending(ctx context.Context, credential string) ([]models.Submission, error) {
	if err := w.authorize(credential); err != nil {
		return nil, err
	}

	list, err := w.store.ListSubmissions(ctx, models.StatusPending)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].SubmittedAgo = humanize.Time(list[i].CreatedAt)
	}
	return list, nil
}

// Diff returns a pending submission together with the published
// progression it would replace. Original is nil for new posts, and also
// when the target has since been deleted.
func (w *Workflow) Diff(ctx context.Context, id, credential string) (models.DiffResponse, error) {
	if err := w.authorize(credential); err != nil {
		return models.DiffResponse{}, err
	}

	sub, err := w.store.GetPendingSubmission(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.DiffResponse{}, fmt.Errorf("%w: no pending submission %s", ErrNotFound, id)
	}
	if err != nil {
		return models.DiffResponse{}, err
	}
	sub.SubmittedAgo = humanize.Time(sub.CreatedAt)

	resp := models.DiffResponse{Updated: sub}
	if sub.OriginalID != nil {
		original, err := w.store.GetProgression(ctx, *sub.OriginalID)
		switch {
		case err == nil:
			resp.Original = &original
		case errors.Is(err, store.ErrNotFound):
			slog.Warn("edit request targets missing progression", "submission_id", id, "original_id", *sub.OriginalID)
		default:
			return models.DiffResponse{}, err
		}
	}
	return resp, nil
}

// Process approves or rejects a pending submission. Of two concurrent
// calls for the same id exactly one succeeds; the other gets ErrNotFound.
func (w *Workflow) Process(ctx context.Context, id, action, credential string) (models.ProcessResponse, error) {
	if err := w.authorize(credential); err != nil {
		return models.ProcessResponse{}, err
	}

	switch action {
	case models.ActionApprove:
		publishedID, err := w.store.ApproveSubmission(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return models.ProcessResponse{}, fmt.Errorf("%w: no pending submission %s", ErrNotFound, id)
		}
		if errors.Is(err, store.ErrOriginalNotFound) {
			return models.ProcessResponse{}, fmt.Errorf("%w: the progression this edit request targets no longer exists", ErrNotFound)
		}
		if err != nil {
			return models.ProcessResponse{}, err
		}

		slog.Info("submission approved", "submission_id", id, "progression_id", publishedID)
		return models.ProcessResponse{
			Message:       "Submission approved",
			Status:        models.StatusApproved,
			ProgressionID: publishedID,
		}, nil

	case models.ActionReject:
		err := w.store.RejectSubmission(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return models.ProcessResponse{}, fmt.Errorf("%w: no pending submission %s", ErrNotFound, id)
		}
		if err != nil {
			return models.ProcessResponse{}, err
		}

		slog.Info("submission rejected", "submission_id", id)
		return models.ProcessResponse{
			Message: "Submission rejected",
			Status:  models.StatusRejected,
		}, nil

	default:
		return models.ProcessResponse{}, fmt.Errorf("%w: action must be %q or %q", ErrValidation, models.ActionApprove, models.ActionReject)
	}
}

// BlockIP adds ip to the block list. Blocking an address twice is a
// conflict.
func (w *Workflow) BlockIP(ctx context.Context, ip, reason, credential string) (models.BlockedIP, error) {
	if err := w.authorize(credential); err != nil {
		return models.BlockedIP{}, err
	}

	ip = strings.TrimSpace(ip)
	if ip == "" {
		return models.BlockedIP{}, fmt.Errorf("%w: ip_address is required", ErrValidation)
	}

	b := models.BlockedIP{
		ID:        auth.GenerateID(),
		IPAddress: ip,
		Reason:    strings.TrimSpace(reason),
		BlockedAt: w.now(),
	}
	err := w.store.CreateBlockedIP(ctx, b)
	if errors.Is(err, store.ErrDuplicate) {
		return models.BlockedIP{}, fmt.Errorf("%w: %s is already blocked", ErrConflict, ip)
	}
	if err != nil {
		return models.BlockedIP{}, err
	}

	slog.Info("ip blocked", "block_id", b.ID)
	return b, nil
}

// UnblockIP removes a block list entry by its ID.
func (w *Workflow) UnblockIP(ctx context.Context, id, credential string) error {
	if err := w.authorize(credential); err != nil {
		return err
	}

	err := w.store.DeleteBlockedIP(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: no block entry %s", ErrNotFound, id)
	}
	if err != nil {
		return err
	}

	slog.Info("ip unblocked", "block_id", id)
	return nil
}

// ListBlocked returns the block list, most recent first.
func (w *Workflow) ListBlocked(ctx context.Context, credential string) ([]models.BlockedIP, error) {
	if err := w.authorize(credential); err != nil {
		return nil, err
	}
	return w.store.ListBlockedIPs(ctx)
}

// DeleteProgression takes a published progression down. Pending edit
// requests that target it stay queued and fail on approval.
func (w *Workflow) DeleteProgression(ctx context.Context, id, credential string) error {
	if err := w.authorize(credential); err != nil {
		return err
	}

	err := w.store.DeleteProgression(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: progression %s", ErrNotFound, id)
	}
	if err != nil {
		return err
	}

	slog.Info("progression deleted", "progression_id", id)
	return nil
}

// SubmitFeedback stores a feedback message. Blocked addresses are refused
// like submissions.
func (w *Workflow) SubmitFeedback(ctx context.Context, content, originIP string) (models.Feedback, error) {
	if err := w.checkBlocked(ctx, originIP); err != nil {
		return models.Feedback{}, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return models.Feedback{}, fmt.Errorf("%w: content is required", ErrValidation)
	}
	if len([]rune(content)) > maxFeedbackChars {
		return models.Feedback{}, fmt.Errorf("%w: content must be at most %d characters", ErrValidation, maxFeedbackChars)
	}

	f := models.Feedback{
		ID:        auth.GenerateID(),
		Content:   content,
		IPAddress: originIP,
		CreatedAt: w.now(),
	}
	if err := w.store.CreateFeedback(ctx, f); err != nil {
		return models.Feedback{}, err
	}
	return f, nil
}

// ListFeedback returns feedback, most recent first.
func (w *Workflow) ListFeedback(ctx context.Context, credential string) ([]models.Feedback, error) {
	if err := w.authorize(credential); err != nil {
		return nil, err
	}
	return w.store.ListFeedback(ctx)
}
