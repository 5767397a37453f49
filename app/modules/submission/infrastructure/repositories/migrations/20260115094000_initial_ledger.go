package submissionmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	submissiondb "github.com/TanzimK12/pvm-kingdom/app/modules/submission/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating submission ledger table...")

		if _, err := db.NewCreateTable().Model((*submissiondb.Ledger)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, `
			CREATE INDEX IF NOT EXISTS idx_submission_ledger_lookup_key ON submission_ledger(lookup_key);
		`); err != nil {
			return fmt.Errorf("failed to add ledger index: %w", err)
		}

		fmt.Println("Submission ledger table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping submission ledger table...")

		if _, err := db.NewDropTable().Model((*submissiondb.Ledger)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Submission ledger table dropped successfully!")
		return nil
	})
}
