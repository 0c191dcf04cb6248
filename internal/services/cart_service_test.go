package services_test

import (
	"errors"
	"testing"

	"muraqqa/internal/domain"
	"muraqqa/internal/repos"
	"muraqqa/internal/services"
)

func newCart(t *testing.T) (*services.CartService, *repos.MemStore) {
	t.Helper()
	mem := repos.NewMemStore().SeedDemo()
	return services.NewCartService(mem, mem), mem
}

func TestCartAddOriginalSnapshotsPrice(t *testing.T) {
	svc, _ := newCart(t)

	line, err := svc.Add("sid-1", "art-001", domain.KindOriginal, "", 3)
	if err != nil {
		t.Fatal(err)
	}
	if line.Qty != 1 {
		t.Fatalf("an original must collapse to qty 1, got %d", line.Qty)
	}
	if line.PrintSize != "" {
		t.Fatalf("original carries no print size, got %q", line.PrintSize)
	}
	if line.UnitPrice != 450000 {
		t.Fatalf("want snapshot 450000, got %d", line.UnitPrice)
	}

	cv, err := svc.View("sid-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 1 || cv.Subtotal != 450000 {
		t.Fatalf("bad cart view: %+v", cv)
	}
}

func TestCartAddPrintRequiresSize(t *testing.T) {
	svc, _ := newCart(t)

	if _, err := svc.Add("sid-1", "art-001", domain.KindPrint, "A1", 1); !errors.Is(err, services.ErrInvalidSelection) {
		t.Fatalf("want ErrInvalidSelection, got %v", err)
	}
	if _, err := svc.Add("sid-1", "art-001", domain.KindPrint, "", 1); !errors.Is(err, services.ErrInvalidSelection) {
		t.Fatalf("want ErrInvalidSelection for missing size, got %v", err)
	}

	line, err := svc.Add("sid-1", "art-001", domain.KindPrint, domain.PrintA4, 2)
	if err != nil {
		t.Fatal(err)
	}
	if line.Qty != 2 || line.LinePrice() != 45000 {
		t.Fatalf("bad print line: %+v", line)
	}
}

func TestCartAddSoldOriginalBlockedPrintAllowed(t *testing.T) {
	svc, mem := newCart(t)
	if err := mem.MarkSold("art-001"); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Add("sid-1", "art-001", domain.KindOriginal, "", 1); !errors.Is(err, services.ErrOutOfStock) {
		t.Fatalf("want ErrOutOfStock, got %v", err)
	}
	// prints of a sold original stay purchasable
	if _, err := svc.Add("sid-1", "art-001", domain.KindPrint, domain.PrintCanvas, 1); err != nil {
		t.Fatalf("print of sold original should succeed: %v", err)
	}
}

func TestCartLinesStayDistinct(t *testing.T) {
	svc, _ := newCart(t)

	l1, err := svc.Add("sid-1", "art-002", domain.KindPrint, domain.PrintA4, 1)
	if err != nil {
		t.Fatal(err)
	}
	l2, err := svc.Add("sid-1", "art-002", domain.KindPrint, domain.PrintA4, 1)
	if err != nil {
		t.Fatal(err)
	}
	if l1.ID == l2.ID {
		t.Fatal("repeated adds must create distinct lines")
	}

	if err := svc.Remove("sid-1", l1.ID); err != nil {
		t.Fatal(err)
	}
	items, err := svc.Items("sid-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].ID != l2.ID {
		t.Fatalf("remove took the wrong line: %+v", items)
	}
}

func TestCartSessionsIsolated(t *testing.T) {
	svc, _ := newCart(t)

	if _, err := svc.Add("sid-a", "art-001", domain.KindOriginal, "", 1); err != nil {
		t.Fatal(err)
	}
	items, err := svc.Items("sid-b")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Fatalf("sessions leaked lines: %+v", items)
	}

	if err := svc.Clear("sid-a"); err != nil {
		t.Fatal(err)
	}
	items, _ = svc.Items("sid-a")
	if len(items) != 0 {
		t.Fatalf("clear left lines behind: %+v", items)
	}
}
