package tests

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/aretw0/idx/pkg/domain"
	"github.com/aretw0/idx/pkg/ports"
)

// ClaimStoreContractTest is a reusable test suite that verifies if an adapter complies with ports.ClaimStore.
// The store must be empty when passed in.
func ClaimStoreContractTest(t *testing.T, store ports.ClaimStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("List_Empty", func(t *testing.T) {
		ids, err := store.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing claims: %v", err)
		}
		if len(ids) != 0 {
			t.Errorf("expected no claims, got %v", ids)
		}
	})

	t.Run("Claim_And_List_Sorted", func(t *testing.T) {
		for _, id := range []string{"inc-b", "inc-a", "inc-c"} {
			if err := store.Claim(ctx, id); err != nil {
				t.Fatalf("unexpected error claiming %s: %v", id, err)
			}
		}

		ids, err := store.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing claims: %v", err)
		}
		want := []string{"inc-a", "inc-b", "inc-c"}
		if fmt.Sprint(ids) != fmt.Sprint(want) {
			t.Errorf("got %v, want %v", ids, want)
		}
	})

	t.Run("Claim_Is_Idempotent", func(t *testing.T) {
		if err := store.Claim(ctx, "inc-a"); err != nil {
			t.Fatalf("unexpected error re-claiming: %v", err)
		}
		ids, err := store.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing claims: %v", err)
		}
		if len(ids) != 3 {
			t.Errorf("expected 3 claims after duplicate, got %v", ids)
		}
	})

	t.Run("Claim_Rejects_Empty_ID", func(t *testing.T) {
		err := store.Claim(ctx, "")
		if !errors.Is(err, domain.ErrEmptyIncidentID) {
			t.Errorf("expected ErrEmptyIncidentID, got %v", err)
		}
	})

	t.Run("Concurrent_Claims", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				if err := store.Claim(ctx, fmt.Sprintf("concurrent-%02d", n%10)); err != nil {
					t.Errorf("concurrent claim failed: %v", err)
				}
			}(i)
		}
		wg.Wait()

		ids, err := store.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing claims: %v", err)
		}
		if len(ids) != 13 {
			t.Errorf("expected 13 claims, got %d: %v", len(ids), ids)
		}
	})
}
