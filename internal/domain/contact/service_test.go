package contact

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/ambulance/ambulance/internal/platform/apperr"
)

func mustCreate(t *testing.T, svc *Service, owner uuid.UUID, name string, primary bool) *Contact {
	t.Helper()
	c, err := svc.Create(context.Background(), owner, CreateInput{Name: name, Phone: "+91-900000000", IsPrimary: primary})
	if err != nil {
		t.Fatalf("Create(%s): %v", name, err)
	}
	return c
}

func TestService_Create_FirstIsPrimary(t *testing.T) {
	svc, _ := newTestService()
	owner := uuid.New()

	c1 := mustCreate(t, svc, owner, "C1", false)
	if !c1.IsPrimary {
		t.Error("expected first contact to be primary")
	}
	if c1.Relationship != "family" {
		t.Errorf("expected default relationship family, got %s", c1.Relationship)
	}

	c2 := mustCreate(t, svc, owner, "C2", false)
	if c2.IsPrimary {
		t.Error("expected second contact not to be primary")
	}
}

func TestService_Create_NewPrimaryDemotesOld(t *testing.T) {
	svc, repo := newTestService()
	owner := uuid.New()

	mustCreate(t, svc, owner, "C1", false)
	c2 := mustCreate(t, svc, owner, "C2", true)

	primaries := repo.primaries(owner)
	if len(primaries) != 1 || primaries[0] != c2.ID {
		t.Errorf("expected only %s primary, got %v", c2.ID, primaries)
	}
}

func TestService_Create_Validation(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{Relationship: "neighbour"})
	ae, ok := apperr.As(err)
	if !ok || ae.Kind != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, f := range []string{"name", "phone", "relationship"} {
		if _, ok := ae.Fields[f]; !ok {
			t.Errorf("expected field error for %s, got %v", f, ae.Fields)
		}
	}
}

func TestService_Delete_PromotesOldest(t *testing.T) {
	svc, repo := newTestService()
	owner := uuid.New()

	c1 := mustCreate(t, svc, owner, "C1", false)
	c2 := mustCreate(t, svc, owner, "C2", false)

	if err := svc.Delete(context.Background(), owner, c1.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	list, _ := svc.ListMine(context.Background(), owner)
	if len(list) != 1 || list[0].ID != c2.ID || !list[0].IsPrimary {
		t.Errorf("expected C2 as the only, primary contact, got %+v", list)
	}
	if p := repo.primaries(owner); len(p) != 1 {
		t.Errorf("expected exactly one primary, got %v", p)
	}
}

func TestService_Delete_OldestRemainingWins(t *testing.T) {
	svc, repo := newTestService()
	owner := uuid.New()

	mustCreate(t, svc, owner, "C1", false)
	c2 := mustCreate(t, svc, owner, "C2", false)
	mustCreate(t, svc, owner, "C3", false)
	c4 := mustCreate(t, svc, owner, "C4", true)

	if err := svc.Delete(context.Background(), owner, c4.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	p := repo.primaries(owner)
	if len(p) != 1 {
		t.Fatalf("expected one primary, got %v", p)
	}
	if repo.contacts[p[0]].Name != "C1" {
		t.Errorf("expected oldest contact C1 to be promoted, got %s", repo.contacts[p[0]].Name)
	}

	// Deleting a non-primary contact promotes nobody.
	if err := svc.Delete(context.Background(), owner, c2.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if p := repo.primaries(owner); len(p) != 1 || repo.contacts[p[0]].Name != "C1" {
		t.Errorf("expected C1 to stay primary, got %v", p)
	}
}

func TestService_Delete_LastContact(t *testing.T) {
	svc, _ := newTestService()
	owner := uuid.New()
	c := mustCreate(t, svc, owner, "C1", false)

	if err := svc.Delete(context.Background(), owner, c.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	list, _ := svc.ListMine(context.Background(), owner)
	if len(list) != 0 {
		t.Errorf("expected no contacts, got %d", len(list))
	}
}

func TestService_Delete_NotOwner(t *testing.T) {
	svc, repo := newTestService()
	owner := uuid.New()
	c := mustCreate(t, svc, owner, "C1", false)

	if err := svc.Delete(context.Background(), uuid.New(), c.ID); !errors.Is(err, ErrNotFoundOrForbidden) {
		t.Errorf("expected ErrNotFoundOrForbidden, got %v", err)
	}
	if _, ok := repo.contacts[c.ID]; !ok {
		t.Error("expected contact to survive")
	}
}

func TestService_Update(t *testing.T) {
	svc, repo := newTestService()
	owner := uuid.New()
	c1 := mustCreate(t, svc, owner, "C1", false)
	c2 := mustCreate(t, svc, owner, "C2", false)

	primary := true
	rel := "doctor"
	updated, err := svc.Update(context.Background(), owner, c2.ID, UpdateInput{IsPrimary: &primary, Relationship: &rel})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if !updated.IsPrimary || updated.Relationship != "doctor" || updated.Name != "C2" {
		t.Errorf("unexpected update result: %+v", updated)
	}
	if repo.contacts[c1.ID].IsPrimary {
		t.Error("expected C1 to be demoted")
	}
}

func TestService_Update_NotOwner(t *testing.T) {
	svc, _ := newTestService()
	c := mustCreate(t, svc, uuid.New(), "C1", false)

	name := "X"
	if _, err := svc.Update(context.Background(), uuid.New(), c.ID, UpdateInput{Name: &name}); !errors.Is(err, ErrNotFoundOrForbidden) {
		t.Errorf("expected ErrNotFoundOrForbidden, got %v", err)
	}
}

func TestService_Update_CannotUnsetPrimary(t *testing.T) {
	svc, repo := newTestService()
	owner := uuid.New()
	c1 := mustCreate(t, svc, owner, "C1", false)
	mustCreate(t, svc, owner, "C2", false)

	off := false
	_, err := svc.Update(context.Background(), owner, c1.ID, UpdateInput{IsPrimary: &off})
	if kind := apperr.KindOf(err); kind != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if p := repo.primaries(owner); len(p) != 1 || p[0] != c1.ID {
		t.Errorf("expected C1 to stay the only primary, got %v", p)
	}
}

func TestService_Update_UnsetOnNonPrimaryIsNoop(t *testing.T) {
	svc, repo := newTestService()
	owner := uuid.New()
	c1 := mustCreate(t, svc, owner, "C1", false)
	c2 := mustCreate(t, svc, owner, "C2", false)

	off := false
	if _, err := svc.Update(context.Background(), owner, c2.ID, UpdateInput{IsPrimary: &off}); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if p := repo.primaries(owner); len(p) != 1 || p[0] != c1.ID {
		t.Errorf("expected C1 to stay the only primary, got %v", p)
	}
}

func TestService_SetPrimary(t *testing.T) {
	svc, repo := newTestService()
	owner := uuid.New()
	mustCreate(t, svc, owner, "C1", false)
	c2 := mustCreate(t, svc, owner, "C2", false)

	for i := 0; i < 2; i++ {
		c, err := svc.SetPrimary(context.Background(), owner, c2.ID)
		if err != nil {
			t.Fatalf("SetPrimary() error: %v", err)
		}
		if !c.IsPrimary {
			t.Error("expected returned contact to be primary")
		}
		if p := repo.primaries(owner); len(p) != 1 || p[0] != c2.ID {
			t.Errorf("expected only C2 primary, got %v", p)
		}
	}
}
