package db

import (
	"context"
	"testing"
)

func TestInitPostgres_NoDSN(t *testing.T) {
	pool, err := InitPostgres(context.Background(), "")
	if err != nil || pool != nil {
		t.Fatalf("expected nil pool without error, got %v %v", pool, err)
	}
}

func TestInitPostgres_MalformedDSN(t *testing.T) {
	if _, err := InitPostgres(context.Background(), "postgres://%zz"); err == nil {
		t.Fatal("expected parse error for malformed dsn")
	}
}
