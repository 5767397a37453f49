package taxonomymigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	taxonomydb "github.com/TanzimK12/pvm-kingdom/app/modules/taxonomy/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating tiles table...")

		if _, err := db.NewCreateTable().Model((*taxonomydb.Tile)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Tiles table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping tiles table...")

		if _, err := db.NewDropTable().Model((*taxonomydb.Tile)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Tiles table dropped successfully!")
		return nil
	})
}
