package routingmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	routingdb "github.com/TanzimK12/pvm-kingdom/app/modules/routing/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating routing tables...")

		if _, err := db.NewCreateTable().Model((*routingdb.RoutingEntry)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*routingdb.CompetitionSetting)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Routing tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping routing tables...")

		if _, err := db.NewDropTable().Model((*routingdb.RoutingEntry)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*routingdb.CompetitionSetting)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Routing tables dropped successfully!")
		return nil
	})
}
