package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// BackupPath returns the sibling backup path for a translation file.
func BackupPath(path string) string {
	return path + ".bak"
}

// writeWithBackup first writes the exact pre-mutation bytes to the .bak
// sibling, then replaces path atomically via a temp file renamed into
// place. A backup failure aborts before anything destructive happens; a
// failure of the final write leaves the backup behind as the recovery
// artifact. The tool never deletes a backup it created.
func writeWithBackup(path string, original, updated []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	backup := BackupPath(path)
	if err := os.WriteFile(backup, original, mode); err != nil {
		return fmt.Errorf("writing backup %s: %w", backup, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".elm-i18n-*")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(updated); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting mode on %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
