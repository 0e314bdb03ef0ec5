package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/contaec/contaledger/internal/domain"
	"github.com/contaec/contaledger/internal/infrastructure/metrics"
)

// PostResult is the outcome of a post or reverse operation. Created is
// false when the operation was an idempotent replay (or, for reversals,
// when there was nothing to reverse and Entry is nil).
type PostResult struct {
	Entry    *domain.JournalEntry
	Created  bool
	Warnings []Warning
}

// BatchPostItem is the per-invoice outcome of a batch posting run.
type BatchPostItem struct {
	InvoiceID string
	EntryID   string
	Created   bool
	Warnings  []Warning
	Error     string
}

// PostingUseCase guarantees at-most-one journal entry per invoice and
// one mirrored reversal per cancellation. Both operations are an atomic
// check-and-create against the entry reference, backed by a unique
// constraint, so concurrent callers converge on a single entry.
type PostingUseCase struct {
	txManager TransactionManager
	invoices  InvoiceRepository
	entries   JournalEntryRepository
	audits    AuditRepository
	builder   *JournalEntryBuilder
	idGen     IDGenerator
	retrier   Retrier
	logger    zerolog.Logger
	metrics   *metrics.Metrics
}

// NewPostingUseCase creates a PostingUseCase.
func NewPostingUseCase(
	txManager TransactionManager,
	invoices InvoiceRepository,
	entries JournalEntryRepository,
	audits AuditRepository,
	builder *JournalEntryBuilder,
	idGen IDGenerator,
	retrier Retrier,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *PostingUseCase {
	return &PostingUseCase{
		txManager: txManager,
		invoices:  invoices,
		entries:   entries,
		audits:    audits,
		builder:   builder,
		idGen:     idGen,
		retrier:   retrier,
		logger:    logger,
		metrics:   m,
	}
}

// Post creates the journal entry for a sent invoice. Calling it again
// for the same invoice returns the existing entry unchanged; it is safe
// to invoke from retried requests and batch actions.
func (uc *PostingUseCase) Post(ctx context.Context, invoiceID string) (*PostResult, error) {
	start := time.Now()

	invoice, err := uc.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if invoice.Status != domain.InvoiceStatusSent && invoice.Status != domain.InvoiceStatusPaid {
		return nil, domain.ErrInvoiceNotSent
	}

	reference := domain.InvoiceReference(invoice.ID)

	// Fast path outside the transaction.
	existing, err := uc.entries.GetByReference(ctx, invoice.CompanyID, reference)
	if err == nil {
		uc.audit(ctx, invoice, domain.AuditActionReplay, reference, domain.AuditStatusSuccess, "")
		if uc.metrics != nil {
			uc.metrics.PostingsReplayed.Inc()
		}
		return &PostResult{Entry: existing, Created: false}, nil
	}
	if !errors.Is(err, domain.ErrEntryNotFound) {
		return nil, err
	}

	result, err := uc.builder.Build(ctx, invoice)
	if err != nil {
		uc.audit(ctx, invoice, domain.AuditActionPost, reference, domain.AuditStatusFailure, err.Error())
		if uc.metrics != nil {
			uc.metrics.PostingErrors.WithLabelValues("build").Inc()
		}
		if result != nil {
			return &PostResult{Warnings: result.Warnings}, err
		}
		return nil, err
	}

	entry, created, err := uc.persistEntry(ctx, invoice.CompanyID, result.Entry)
	if err != nil {
		uc.audit(ctx, invoice, domain.AuditActionPost, reference, domain.AuditStatusFailure, err.Error())
		if uc.metrics != nil {
			uc.metrics.PostingErrors.WithLabelValues("persist").Inc()
		}
		return nil, err
	}

	action := domain.AuditActionPost
	if !created {
		action = domain.AuditActionReplay
	}
	uc.audit(ctx, invoice, action, reference, domain.AuditStatusSuccess, "")

	if uc.metrics != nil {
		if created {
			uc.metrics.PostingsCreated.Inc()
		} else {
			uc.metrics.PostingsReplayed.Inc()
		}
		for _, w := range result.Warnings {
			uc.metrics.PostingWarnings.WithLabelValues(w.Code).Inc()
		}
		uc.metrics.PostingDuration.Observe(time.Since(start).Seconds())
	}

	uc.logger.Info().
		Str("invoice_id", invoice.ID).
		Str("reference", reference).
		Str("entry_id", entry.ID).
		Bool("created", created).
		Msg("invoice posted")

	return &PostResult{Entry: entry, Created: created, Warnings: result.Warnings}, nil
}

// Reverse creates the mirror entry for a cancelled invoice. A cancelled
// draft that was never posted has nothing to reverse: the call reports a
// warning and is a no-op. Re-triggering a cancellation returns the
// existing reversal unchanged.
func (uc *PostingUseCase) Reverse(ctx context.Context, invoiceID string) (*PostResult, error) {
	invoice, err := uc.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if invoice.Status != domain.InvoiceStatusCancelled {
		return nil, domain.ErrInvoiceNotPosted
	}

	reference := domain.InvoiceReference(invoice.ID)
	reversalRef := domain.ReversalReference(invoice.ID)

	original, err := uc.entries.GetByReference(ctx, invoice.CompanyID, reference)
	if errors.Is(err, domain.ErrEntryNotFound) {
		uc.audit(ctx, invoice, domain.AuditActionReverse, reversalRef, domain.AuditStatusSkipped, "no original entry")
		return &PostResult{
			Warnings: []Warning{warningf(WarnReversalWithoutOriginal,
				"invoice %s was never posted; nothing to reverse", invoice.ID)},
		}, nil
	}
	if err != nil {
		return nil, err
	}

	existing, err := uc.entries.GetByReference(ctx, invoice.CompanyID, reversalRef)
	if err == nil {
		uc.audit(ctx, invoice, domain.AuditActionReverse, reversalRef, domain.AuditStatusSuccess, "")
		return &PostResult{Entry: existing, Created: false}, nil
	}
	if !errors.Is(err, domain.ErrEntryNotFound) {
		return nil, err
	}

	reversal := original.Reversed()
	reversal.Date = time.Now().UTC()
	reversal.CreatedBy = invoice.CreatedBy

	entry, created, err := uc.persistEntry(ctx, invoice.CompanyID, reversal)
	if err != nil {
		uc.audit(ctx, invoice, domain.AuditActionReverse, reversalRef, domain.AuditStatusFailure, err.Error())
		return nil, err
	}

	uc.audit(ctx, invoice, domain.AuditActionReverse, reversalRef, domain.AuditStatusSuccess, "")

	if uc.metrics != nil && created {
		uc.metrics.PostingsReversed.Inc()
	}

	uc.logger.Info().
		Str("invoice_id", invoice.ID).
		Str("reference", reversalRef).
		Str("entry_id", entry.ID).
		Bool("created", created).
		Msg("posting reversed")

	return &PostResult{Entry: entry, Created: created}, nil
}

// PostBatch posts many invoices independently. A failure on one invoice
// neither rolls back entries already committed nor blocks the rest of
// the batch.
func (uc *PostingUseCase) PostBatch(ctx context.Context, invoiceIDs []string) []BatchPostItem {
	items := make([]BatchPostItem, 0, len(invoiceIDs))

	for _, id := range invoiceIDs {
		item := BatchPostItem{InvoiceID: id}

		result, err := uc.Post(ctx, id)
		if err != nil {
			item.Error = err.Error()
		}
		if result != nil {
			item.Created = result.Created
			item.Warnings = result.Warnings
			if result.Entry != nil {
				item.EntryID = result.Entry.ID
			}
		}

		items = append(items, item)
	}

	return items
}

// GetEntry retrieves a journal entry with its lines.
func (uc *PostingUseCase) GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	return uc.entries.GetByID(ctx, id)
}

// GetEntryByReference retrieves a journal entry by its idempotency key.
func (uc *PostingUseCase) GetEntryByReference(ctx context.Context, companyID, reference string) (*domain.JournalEntry, error) {
	return uc.entries.GetByReference(ctx, companyID, reference)
}

// AuditTrail lists the recorded post/reverse attempts.
func (uc *PostingUseCase) AuditTrail(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	filter.Limit, filter.Offset = domain.ValidatePagination(filter.Limit, filter.Offset)
	return uc.audits.List(ctx, filter)
}

// persistEntry writes header and lines inside one transaction, guarded
// by the unique reference constraint. When a concurrent caller wins the
// race, the existing entry is returned with created=false.
func (uc *PostingUseCase) persistEntry(ctx context.Context, companyID string, draft *domain.JournalEntry) (*domain.JournalEntry, bool, error) {
	var (
		entry   *domain.JournalEntry
		created bool
	)

	operation := func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if existing, err := uc.entries.GetByReferenceForUpdate(ctx, tx, companyID, draft.Reference); err == nil {
			entry = existing
			created = false
			return tx.Commit(ctx)
		} else if !errors.Is(err, domain.ErrEntryNotFound) {
			return err
		}

		now := time.Now().UTC()
		candidate := *draft
		candidate.ID = uc.idGen.Generate()
		candidate.CreatedAt = now
		candidate.Lines = make([]*domain.JournalEntryLine, len(draft.Lines))
		for i, line := range draft.Lines {
			copied := *line
			copied.ID = uc.idGen.Generate()
			copied.EntryID = candidate.ID
			candidate.Lines[i] = &copied
		}

		if err := uc.entries.Create(ctx, tx, &candidate); err != nil {
			if errors.Is(err, domain.ErrDuplicateEntry) {
				// Lost the race; the winner's entry is authoritative.
				existing, lookupErr := uc.entries.GetByReference(ctx, companyID, draft.Reference)
				if lookupErr != nil {
					return lookupErr
				}
				entry = existing
				created = false
				return nil
			}
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		entry = &candidate
		created = true
		return nil
	}

	if err := uc.retrier.Retry(ctx, operation); err != nil {
		return nil, false, err
	}

	return entry, created, nil
}

func (uc *PostingUseCase) audit(ctx context.Context, invoice *domain.Invoice, action, reference, status, errMsg string) {
	log := &domain.AuditLog{
		CompanyID:    invoice.CompanyID,
		UserID:       invoice.CreatedBy,
		Action:       action,
		ResourceType: "invoice",
		ResourceID:   invoice.ID,
		Reference:    reference,
		Status:       status,
		ErrorMessage: errMsg,
		CreatedAt:    time.Now().UTC(),
	}

	// The audit trail must never block the posting itself.
	if err := uc.audits.Create(ctx, log); err != nil {
		uc.logger.Error().Err(err).Str("reference", reference).Msg("failed to write audit log")
	}
}
