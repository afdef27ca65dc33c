package memory_test

import (
	"testing"

	"github.com/aretw0/idx/pkg/adapters/memory"
	"github.com/aretw0/idx/pkg/ports/tests"
)

func TestMemoryClaimStore_Contract(t *testing.T) {
	store := memory.NewClaimStore()
	tests.ClaimStoreContractTest(t, store)
}
