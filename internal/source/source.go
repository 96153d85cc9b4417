package source

import (
	"context"

	"noteagent/internal/domain/models"
)

// Loader produces the documents one external source currently holds. Called
// once per rebuild; implementations fetch everything fresh each time.
type Loader interface {
	Name() string
	Load(ctx context.Context) ([]models.Document, error)
}
