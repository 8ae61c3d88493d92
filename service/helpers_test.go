package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.lumeweb.com/queuemailer/config"
	"go.lumeweb.com/queuemailer/core"
	"go.lumeweb.com/queuemailer/db"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")

	gdb, err := db.OpenDatabase(config.DatabaseConfig{
		Type: "sqlite",
		File: fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	}, "", core.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return gdb
}
