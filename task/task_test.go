package task

import (
	"errors"
	"testing"

	"github.com/cypherstack/cs-monero/cs"
)

func TestIDUniqueness(t *testing.T) {
	const n = 10000
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		tsk := New(FnBalance, &BalanceArgs{Handle: 1})
		if tsk.ID == "" {
			t.Fatalf("empty task id")
		}
		if seen[tsk.ID] {
			t.Fatalf("duplicate task id %s after %d tasks", tsk.ID, i)
		}
		seen[tsk.ID] = true
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		args Validator
		ok   bool
	}{
		{"create wallet ok", &CreateWalletArgs{Path: "/tmp/w"}, true},
		{"create wallet no path", &CreateWalletArgs{}, false},
		{"restore seed no mnemonic", &RestoreFromSeedArgs{Path: "/tmp/w"}, false},
		{"restore keys no view key", &RestoreFromKeysArgs{Path: "/tmp/w", Address: "4abc"}, false},
		{"freeze ok", &FreezeOutputArgs{Handle: 7, KeyImage: "beef"}, true},
		{"freeze empty key image", &FreezeOutputArgs{Handle: 7}, false},
		{"thaw empty key image", &ThawOutputArgs{Handle: 7}, false},
		{"balance zero handle", &BalanceArgs{}, false},
		{"create tx zero amount", &CreateTransactionArgs{Handle: 1, Dest: "4abc"}, false},
		{"create tx sweep all", &CreateTransactionArgs{Handle: 1, Dest: "4abc", SweepAll: true}, true},
		{"start polling bad interval", &StartPollingArgs{Handle: 1}, false},
		{"stop polling", &StopPollingArgs{}, true},
	}

	for _, tt := range tests {
		err := tt.args.Validate()
		if tt.ok && err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if !tt.ok {
			if err == nil {
				t.Fatalf("%s: expected a validation error", tt.name)
			}
			if !errors.Is(err, cs.ErrBadArguments) {
				t.Fatalf("%s: error is not ErrBadArguments: %v", tt.name, err)
			}
		}
	}
}
