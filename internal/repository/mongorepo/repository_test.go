package mongorepo_test

import (
	"testing"

	"github.com/dom/meucoracao/internal/repository/mongorepo"
	"github.com/dom/meucoracao/internal/repository/repotest"
	"github.com/dom/meucoracao/internal/testutil"
)

func TestRepositories_Mongo(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	db := testutil.NewMongoDB(t)
	repotest.Run(t, mongorepo.NewRepositories(db.DB))
}
