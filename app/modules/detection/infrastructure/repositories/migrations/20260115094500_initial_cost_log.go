package detectionmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	detectiondb "github.com/TanzimK12/pvm-kingdom/app/modules/detection/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating api cost log table...")

		if _, err := db.NewCreateTable().Model((*detectiondb.APICost)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Api cost log table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping api cost log table...")

		if _, err := db.NewDropTable().Model((*detectiondb.APICost)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Api cost log table dropped successfully!")
		return nil
	})
}
