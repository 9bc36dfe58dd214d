package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creatorvault/creatorvault-backend/pkg/migrate"
)

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir failed validation: %v", err)
	}
}

func TestPaymentsMigrationContainsLedgerConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_payments.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no payments migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS payments",
		"CREATE UNIQUE INDEX idx_payments_contract_type ON payments (contract_id, type)",
		"CREATE UNIQUE INDEX idx_payments_creator_period ON payments (creator_id, period_key)",
		"CHECK (platform_fee + net_amount = amount)",
		"DROP TABLE IF EXISTS payments",
	}
	for _, want := range checks {
		if !strings.Contains(content, want) {
			t.Fatalf("payments migration missing %q", want)
		}
	}
}

func TestContractsMigrationFreezesSplit(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_contracts.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no contracts migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"application_id uuid NOT NULL UNIQUE",
		"CHECK (platform_fee + creator_payout = payment_amount)",
	}
	for _, want := range checks {
		if !strings.Contains(content, want) {
			t.Fatalf("contracts migration missing %q", want)
		}
	}
}
