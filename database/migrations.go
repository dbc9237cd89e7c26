package database

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"gorm.io/gorm"
)

// dumpDatabase shells out to mysqldump so a schema change never runs without a
// restorable snapshot. Credentials and target flags come from DB_BACKUP_FLAGS;
// the dump is written to outPath.
func dumpDatabase(outPath string) error {
	if _, err := exec.LookPath("mysqldump"); err != nil {
		return fmt.Errorf("mysqldump not found in PATH: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	cmd := exec.CommandContext(ctx, "mysqldump", os.Getenv("DB_BACKUP_FLAGS"))
	outFile, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer outFile.Close()
	cmd.Stdout = outFile
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("mysqldump failed: %w", err)
	}
	return nil
}

// migrateWithBackup dumps the database first when DB_BACKUP_PATH is set, then
// runs AutoMigrate for the given models inside a transaction. The campaign and
// withdrawal tables hold money balances, so a failed backup aborts the
// migration instead of proceeding without a snapshot.
func migrateWithBackup(db *gorm.DB, entities ...interface{}) error {
	if backupPath := os.Getenv("DB_BACKUP_PATH"); backupPath != "" {
		if err := dumpDatabase(backupPath); err != nil {
			return fmt.Errorf("pre-migration backup: %w", err)
		}
	}

	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := tx.AutoMigrate(entities...); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
