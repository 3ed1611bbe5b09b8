package postgres

import (
	"context"
	"testing"

	"uav-roster/internal/infrastructure/config"
)

func TestOpen_NoDSN(t *testing.T) {
	db, err := Open(context.Background(), config.DBConfig{})
	if err != nil || db != nil {
		t.Errorf("expected nil pool without DSN, got %v, %v", db, err)
	}
}
