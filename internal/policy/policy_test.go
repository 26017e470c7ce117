package policy_test

import (
	"errors"
	"testing"

	"github.com/craftlink/craftlink-backend/internal/policy"
	"github.com/google/uuid"
)

type ownedThing struct {
	ownerID uuid.UUID
}

func (o *ownedThing) AllowsActor(actor policy.Actor, action policy.Action) bool {
	return actor.ID == o.ownerID
}

func TestAuthorize(t *testing.T) {
	owner := policy.Actor{ID: uuid.New(), Role: "customer"}
	stranger := policy.Actor{ID: uuid.New(), Role: "customer"}
	thing := &ownedThing{ownerID: owner.ID}

	if err := policy.Authorize(owner, policy.ActionDeleteJob, thing); err != nil {
		t.Fatalf("expected owner to be allowed, got %v", err)
	}
	if err := policy.Authorize(stranger, policy.ActionDeleteJob, thing); !errors.Is(err, policy.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for stranger, got %v", err)
	}
}

func TestAuthorizeNilResource(t *testing.T) {
	actor := policy.Actor{ID: uuid.New()}
	if err := policy.Authorize(actor, policy.ActionDeleteJob, nil); !errors.Is(err, policy.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for nil resource, got %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	worker := policy.Actor{ID: uuid.New(), Role: "worker"}
	if err := policy.RequireRole(worker, "worker"); err != nil {
		t.Fatalf("expected role check to pass, got %v", err)
	}
	if err := policy.RequireRole(worker, "customer"); !errors.Is(err, policy.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
