package progressmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	progressdb "github.com/TanzimK12/pvm-kingdom/app/modules/progress/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating compiled messages table...")

		if _, err := db.NewCreateTable().Model((*progressdb.CompiledMessage)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Compiled messages table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping compiled messages table...")

		if _, err := db.NewDropTable().Model((*progressdb.CompiledMessage)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Compiled messages table dropped successfully!")
		return nil
	})
}
