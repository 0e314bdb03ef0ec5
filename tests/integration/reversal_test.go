package integration

import (
	"context"
	"testing"

	"github.com/contaec/contaledger/internal/domain"
	"github.com/contaec/contaledger/internal/usecase"
	"github.com/contaec/contaledger/tests/testutil"
)

func TestReverseInvoice(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	db := testutil.NewTestDB(t)
	defer db.Cleanup()
	db.TruncateAll(ctx)

	uc := newEngine(db)
	c := seedChart(ctx, db)
	invoice := seedSentInvoice(ctx, db, c)

	posted, err := uc.Post(ctx, invoice.ID)
	if err != nil {
		t.Fatalf("failed to post invoice: %v", err)
	}

	db.SetInvoiceStatus(ctx, invoice.ID, domain.InvoiceStatusCancelled)

	t.Run("creates the mirror entry", func(t *testing.T) {
		result, err := uc.Reverse(ctx, invoice.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Created {
			t.Fatalf("expected a new reversal entry")
		}
		if result.Entry.Reference != "REV-FAC-"+invoice.ID {
			t.Fatalf("unexpected reference %s", result.Entry.Reference)
		}

		if len(result.Entry.Lines) != len(posted.Entry.Lines) {
			t.Fatalf("expected %d lines, got %d", len(posted.Entry.Lines), len(result.Entry.Lines))
		}
		for i, line := range result.Entry.Lines {
			original := posted.Entry.Lines[i]
			if !line.Debit.Equal(original.Credit) || !line.Credit.Equal(original.Debit) {
				t.Fatalf("line %d is not mirrored: %s/%s vs %s/%s",
					i, line.Debit, line.Credit, original.Debit, original.Credit)
			}
		}
	})

	t.Run("reversal is idempotent", func(t *testing.T) {
		result, err := uc.Reverse(ctx, invoice.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Created {
			t.Fatalf("expected replay of existing reversal")
		}

		if got := countEntries(ctx, t, db, c.companyID); got != 2 {
			t.Fatalf("expected 2 entries, got %d", got)
		}
	})

	t.Run("reversed ledger stays consistent", func(t *testing.T) {
		report, err := newLedger(db).CheckConsistency(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !report.Consistent {
			t.Fatalf("expected consistent ledger, got %+v", report)
		}
	})
}

func TestReverseNeverPostedInvoice(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	db := testutil.NewTestDB(t)
	defer db.Cleanup()
	db.TruncateAll(ctx)

	uc := newEngine(db)
	c := seedChart(ctx, db)
	invoice := seedSentInvoice(ctx, db, c)
	db.SetInvoiceStatus(ctx, invoice.ID, domain.InvoiceStatusCancelled)

	result, err := uc.Reverse(ctx, invoice.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Entry != nil {
		t.Fatalf("expected no entry, got %+v", result.Entry)
	}
	if len(result.Warnings) != 1 || result.Warnings[0].Code != usecase.WarnReversalWithoutOriginal {
		t.Fatalf("expected reversal-without-original warning, got %v", result.Warnings)
	}

	if got := countEntries(ctx, t, db, c.companyID); got != 0 {
		t.Fatalf("expected no entries, got %d", got)
	}
}
