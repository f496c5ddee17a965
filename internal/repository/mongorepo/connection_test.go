package mongorepo

import (
	"errors"
	"testing"

	"github.com/dom/meucoracao/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestDatabaseName(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{uri: "mongodb://localhost:27017/cardio", want: "cardio"},
		{uri: "mongodb://localhost:27017/", want: DefaultDatabase},
		{uri: "mongodb://localhost:27017", want: DefaultDatabase},
		{uri: "mongodb+srv://u:p@cluster.example.com/prod?retryWrites=true", want: "prod"},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := databaseName(tt.uri)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTranslate(t *testing.T) {
	assert.ErrorIs(t, translate(mongo.ErrNoDocuments), domain.ErrNotFound)

	other := errors.New("boom")
	assert.Equal(t, other, translate(other))
}
