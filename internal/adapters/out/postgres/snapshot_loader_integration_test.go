//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"pricing/internal/adapters/out/postgres"
	"pricing/internal/adapters/out/postgres/pricingrepo"
	"pricing/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// SnapshotLoaderIntegrationTestSuite runs the loader against a real
// PostgreSQL, which exercises the jsonb columns and the read-only
// repeatable-read transaction.
type SnapshotLoaderIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	loader    *postgres.SnapshotLoader
}

func (suite *SnapshotLoaderIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(pricingrepo.AutoMigrate(ctx, db))
	suite.loader = postgres.NewSnapshotLoader(db)
}

func (suite *SnapshotLoaderIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE pricing_zones, carriers, weight_rules, discount_rules, additional_services, customers",
	).Error
	suite.Require().NoError(err)
}

func (suite *SnapshotLoaderIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *SnapshotLoaderIntegrationTestSuite) TestLoad() {
	ctx := context.Background()
	seed(suite.T(), suite.db)

	snap, err := suite.loader.Load(ctx)
	suite.Require().NoError(err)

	rules, err := snap.WeightRules().ListForTariff(ctx, "dpd", "domestic", kernel.ServiceStandard)
	suite.Require().NoError(err)
	suite.Require().Len(rules, 1)
	suite.Equal("14.99", rules[0].BaseRate().String())

	zones, err := snap.Zones().ListZones(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(zones, 1)
	suite.Equal([]string{"PL"}, zones[0].Countries())
}

func (suite *SnapshotLoaderIntegrationTestSuite) TestLoad_EmptyDatabase() {
	snap, err := suite.loader.Load(context.Background())
	suite.Require().NoError(err)

	carriers, err := snap.Carriers().ListActive(context.Background())
	suite.Require().NoError(err)
	suite.Empty(carriers)
}

func TestSnapshotLoaderIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(SnapshotLoaderIntegrationTestSuite))
}
