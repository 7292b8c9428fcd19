package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"
)

// InitModule registers the sheepshead match handler with Nakama.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := initializer.RegisterMatch(MatchName, NewMatch); err != nil {
		return err
	}

	logger.Info("Sheepshead Go module loaded.")
	return nil
}
